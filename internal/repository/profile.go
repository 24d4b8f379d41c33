package repository

import (
	"context"
	"errors"

	"devconnect/internal/models"
	"devconnect/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNoProfile is returned by operations that require an existing profile.
var ErrNoProfile = models.NewNotFoundError("There is no profile for this user")

// upsertColumns is the field set replaced on conflict. Experience and
// education are deliberately excluded: a profile re-submit must not clear
// the embedded histories.
var upsertColumns = []string{
	"status", "company", "location", "website", "bio",
	"github_username", "skills", "social", "updated_at",
}

// ProfileRepository defines persistence operations for developer profiles.
type ProfileRepository interface {
	// GetByUserID returns (nil, nil) if the user has no profile.
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	// Upsert atomically creates or replaces the profile field set keyed by
	// user id and returns the resulting record.
	Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	// UpdateEntries applies mutate to the profile row under a row lock so
	// concurrent embedded-list edits cannot lose updates.
	UpdateEntries(ctx context.Context, userID uint, mutate func(*models.Profile) error) (*models.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

// ownerFields limits the joined account to its public fields. Profiles are
// readable without authentication, so the owner's email must never ride
// along on the join.
func ownerFields(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "avatar")
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	defer observability.TrackQuery("get_by_user_id", "profiles")()

	var profile models.Profile
	err := r.db.WithContext(ctx).
		Preload("User", ownerFields).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]models.Profile, error) {
	defer observability.TrackQuery("list", "profiles")()

	var profiles []models.Profile
	if err := r.db.WithContext(ctx).Preload("User", ownerFields).Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	defer observability.TrackQuery("upsert", "profiles")()

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(profile).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return r.reload(ctx, profile.UserID)
}

func (r *profileRepository) UpdateEntries(ctx context.Context, userID uint, mutate func(*models.Profile) error) (*models.Profile, error) {
	defer observability.TrackQuery("update_entries", "profiles")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&profile).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoProfile
			}
			return models.NewInternalError(err)
		}

		if err := mutate(&profile); err != nil {
			return err
		}

		if err := tx.Save(&profile).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.reload(ctx, userID)
}

// reload fetches the profile with its owning account joined in.
func (r *profileRepository) reload(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Preload("User", ownerFields).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &profile, nil
}
