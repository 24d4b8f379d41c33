// Package service contains the business logic between handlers and repositories.
package service

import (
	"context"

	"devconnect/internal/models"
	"devconnect/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// ProfileService implements the profile lifecycle: the atomic upsert of the
// profile field set and the ordered edits of the embedded experience and
// education histories.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// UpsertProfileInput is the replaceable profile field set. Status and Skills
// are required; websites and social links are normalized before persistence.
type UpsertProfileInput struct {
	UserID         uint
	Status         string
	Company        string
	Location       string
	Website        string
	Bio            string
	GithubUsername string
	Skills         []string
	Social         models.SocialLinks
}

// ExperienceInput is the payload for adding a work-history entry.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

// EducationInput is the payload for adding an education entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

// NewProfileService returns a ProfileService backed by the given repository.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// ListProfiles returns all profiles with their owning accounts joined in.
func (s *ProfileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// GetProfileByUserID returns (nil, nil) when the user has no profile.
func (s *ProfileService) GetProfileByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// UpsertProfile normalizes the field set and writes it in a single atomic
// upsert keyed by the account id. Embedded experience/education histories
// are untouched by a re-submit.
func (s *ProfileService) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	profile := &models.Profile{
		UserID:         in.UserID,
		Status:         in.Status,
		Company:        in.Company,
		Location:       in.Location,
		Website:        NormalizeURL(in.Website),
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Skills:         pq.StringArray(in.Skills),
		Social: datatypes.NewJSONType(models.SocialLinks{
			Youtube:   NormalizeURL(in.Social.Youtube),
			Twitter:   NormalizeURL(in.Social.Twitter),
			Instagram: NormalizeURL(in.Social.Instagram),
			Linkedin:  NormalizeURL(in.Social.Linkedin),
			Facebook:  NormalizeURL(in.Social.Facebook),
		}),
		Experience: datatypes.JSONSlice[models.Experience]{},
		Education:  datatypes.JSONSlice[models.Education]{},
	}

	return s.profileRepo.Upsert(ctx, profile)
}

// AddExperience prepends a new entry with a fresh identifier to the user's
// experience history.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, in ExperienceInput) (*models.Profile, error) {
	entry := models.Experience{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}

	return s.profileRepo.UpdateEntries(ctx, userID, func(p *models.Profile) error {
		p.Experience = append(datatypes.JSONSlice[models.Experience]{entry}, p.Experience...)
		return nil
	})
}

// DeleteExperience removes the entry with the given identifier. An unknown
// identifier is rejected rather than silently ignored.
func (s *ProfileService) DeleteExperience(ctx context.Context, userID uint, entryID string) (*models.Profile, error) {
	return s.profileRepo.UpdateEntries(ctx, userID, func(p *models.Profile) error {
		idx := -1
		for i, e := range p.Experience {
			if e.ID == entryID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return models.NewNotFoundError("Experience entry not found")
		}
		p.Experience = append(p.Experience[:idx], p.Experience[idx+1:]...)
		return nil
	})
}

// AddEducation prepends a new entry with a fresh identifier to the user's
// education history.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, in EducationInput) (*models.Profile, error) {
	entry := models.Education{
		ID:           uuid.NewString(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}

	return s.profileRepo.UpdateEntries(ctx, userID, func(p *models.Profile) error {
		p.Education = append(datatypes.JSONSlice[models.Education]{entry}, p.Education...)
		return nil
	})
}

// DeleteEducation removes the entry with the given identifier. An unknown
// identifier is rejected rather than silently ignored.
func (s *ProfileService) DeleteEducation(ctx context.Context, userID uint, entryID string) (*models.Profile, error) {
	return s.profileRepo.UpdateEntries(ctx, userID, func(p *models.Profile) error {
		idx := -1
		for i, e := range p.Education {
			if e.ID == entryID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return models.NewNotFoundError("Education entry not found")
		}
		p.Education = append(p.Education[:idx], p.Education[idx+1:]...)
		return nil
	})
}
