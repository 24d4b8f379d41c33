package service

import (
	"context"
	"crypto/md5"
	"fmt"
	"strings"

	"devconnect/internal/cache"
	"devconnect/internal/models"
	"devconnect/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService implements account registration, login, and removal.
type AccountService struct {
	userRepo repository.UserRepository
	db       *gorm.DB
}

// RegisterInput is the payload for creating an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// NewAccountService returns an AccountService. The db handle is used for the
// multi-table delete cascade.
func NewAccountService(userRepo repository.UserRepository, db *gorm.DB) *AccountService {
	return &AccountService{userRepo: userRepo, db: db}
}

// Register creates a new account with a hashed credential and a gravatar
// avatar derived from the email. A duplicate email yields a single
// validation error.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("User already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hashed),
		Avatar:   GravatarURL(in.Email),
	}

	// The unique index on email backstops the existence check above.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credential and returns the account.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthorizedError("Invalid Credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid Credentials")
	}
	return user, nil
}

// GetAccount returns the account for the given id.
func (s *AccountService) GetAccount(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// DeleteAccount removes the user's posts, profile, and account in one
// transaction so a failure leaves nothing orphaned. The rows are hard
// deleted: the unique email index covers soft-deleted rows, so anything
// less would leave the address unregistrable forever.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Unscoped().Delete(&models.User{}, userID).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateUser(ctx, userID)
	return nil
}

// GravatarURL returns the gravatar image URL for the given email (200px,
// PG rated, mystery-man default), the signup default avatar.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", sum)
}
