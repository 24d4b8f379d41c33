package seed

import (
	"fmt"
	"log"

	"devconnect/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seed populates the database with demo developers, profiles, and posts.
// Roughly three quarters of the users get a profile, matching a community
// where some accounts never fill one in.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("clear existing data: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)

		if i%4 != 3 {
			if _, err := f.CreateProfile(user); err != nil {
				return err
			}
		}
	}

	for i := 0; i < opts.NumPosts; i++ {
		author := users[f.r.Intn(len(users))]
		if _, err := f.CreatePost(author); err != nil {
			return err
		}
	}

	log.Printf("Seeding complete. All users have the password \"password123\".")
	return nil
}

// clearData removes existing rows in dependency order. Unscoped bypasses
// soft deletes so reseeding starts from a truly empty state.
func clearData(db *gorm.DB) error {
	for _, model := range []any{&models.Post{}, &models.Profile{}, &models.User{}} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
