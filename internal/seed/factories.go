// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var statuses = []string{
	"Developer", "Junior Developer", "Senior Developer", "Manager",
	"Student or Learning", "Instructor or Teacher", "Intern", "Other",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Rust", "HTML", "CSS",
	"React", "Node.js", "PostgreSQL", "Redis", "Docker", "Kubernetes",
	"GraphQL", "AWS", "Terraform", "Linux", "Git",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample user. All seeded users share
// the password "password123". Optional overrides may modify the user before
// saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	email := strings.ToLower(gofakeit.Email())
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: string(hashed),
		Avatar:   service.GravatarURL(email),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	return user, nil
}

// CreateProfile persists a profile for the user with randomized skills and a
// short work and education history.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	profile := &models.Profile{
		UserID:         user.ID,
		Status:         statuses[f.r.Intn(len(statuses))],
		Company:        gofakeit.Company(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Website:        strings.ToLower(gofakeit.URL()),
		Bio:            gofakeit.Sentence(12),
		GithubUsername: strings.ToLower(gofakeit.Username()),
		Skills:         pq.StringArray(f.pickSkills()),
		Social: datatypes.NewJSONType(models.SocialLinks{
			Twitter:  fmt.Sprintf("https://twitter.com/%s", strings.ToLower(gofakeit.Username())),
			Linkedin: fmt.Sprintf("https://linkedin.com/in/%s", strings.ToLower(gofakeit.Username())),
		}),
		Experience: datatypes.JSONSlice[models.Experience]{f.buildExperience()},
		Education:  datatypes.JSONSlice[models.Education]{f.buildEducation()},
	}

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, fmt.Errorf("seed profile: %w", err)
	}
	return profile, nil
}

// CreatePost persists a post authored by the user, with the author's name
// and avatar snapshotted the way the API does it.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID: user.ID,
		Text:   gofakeit.Paragraph(1, 3, 8, " "),
		Name:   user.Name,
		Avatar: user.Avatar,
	}

	// Spread creation times over the last 90 days so the feed looks lived-in.
	daysBack := f.r.Intn(90)
	post.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(f.r.Intn(24))*time.Hour)

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, fmt.Errorf("seed post: %w", err)
	}
	return post, nil
}

func (f *Factory) pickSkills() []string {
	n := 3 + f.r.Intn(5)
	picked := make([]string, 0, n)
	for _, i := range f.r.Perm(len(skillPool))[:n] {
		picked = append(picked, skillPool[i])
	}
	return picked
}

func (f *Factory) buildExperience() models.Experience {
	from := time.Now().AddDate(-1-f.r.Intn(5), 0, 0)
	return models.Experience{
		ID:          uuid.NewString(),
		Title:       gofakeit.JobTitle(),
		Company:     gofakeit.Company(),
		Location:    gofakeit.City(),
		From:        from.Format("2006-01-02"),
		Current:     true,
		Description: gofakeit.Sentence(10),
	}
}

func (f *Factory) buildEducation() models.Education {
	from := time.Now().AddDate(-6-f.r.Intn(4), 0, 0)
	return models.Education{
		ID:           uuid.NewString(),
		School:       fmt.Sprintf("%s University", gofakeit.LastName()),
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         from.Format("2006-01-02"),
		To:           from.AddDate(4, 0, 0).Format("2006-01-02"),
		Description:  gofakeit.Sentence(8),
	}
}
