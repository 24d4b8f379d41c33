package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnect/internal/config"
	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// stubProfileRepo is an in-memory ProfileRepository for handler tests.
type stubProfileRepo struct {
	profiles map[uint]*models.Profile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: map[uint]*models.Profile{}}
}

func (f *stubProfileRepo) GetByUserID(_ context.Context, userID uint) (*models.Profile, error) {
	return f.profiles[userID], nil
}

func (f *stubProfileRepo) List(_ context.Context) ([]models.Profile, error) {
	var out []models.Profile
	for _, p := range f.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (f *stubProfileRepo) Upsert(_ context.Context, profile *models.Profile) (*models.Profile, error) {
	if existing, ok := f.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.Experience = existing.Experience
		profile.Education = existing.Education
	} else {
		profile.ID = uint(len(f.profiles) + 1)
	}
	f.profiles[profile.UserID] = profile
	return profile, nil
}

func (f *stubProfileRepo) UpdateEntries(_ context.Context, userID uint, mutate func(*models.Profile) error) (*models.Profile, error) {
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrNoProfile
	}
	if err := mutate(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

var _ repository.ProfileRepository = (*stubProfileRepo)(nil)

// asUser fakes the auth middleware for a fixed account.
func asUser(id uint) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", id)
		return c.Next()
	}
}

func newProfileTestServer(repo repository.ProfileRepository) (*Server, *fiber.App) {
	app := fiber.New()
	s := &Server{
		app:      app,
		config:   &config.Config{JWTSecret: "test_secret"},
		profiles: service.NewProfileService(repo),
	}
	return s, app
}

func jsonRequest(t *testing.T, app *fiber.App, method, path string, payload any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeMsg(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Msg
}

func TestGetProfiles_OmitsOwnerEmail(t *testing.T) {
	repo := newStubProfileRepo()
	repo.profiles[1] = &models.Profile{
		ID:     1,
		UserID: 1,
		User:   models.User{ID: 1, Name: "Test Dev", Avatar: "https://www.gravatar.com/avatar/abc"},
		Status: "Developer",
	}

	s, app := newProfileTestServer(repo)
	app.Get("/api/profile", s.GetProfiles)

	resp := jsonRequest(t, app, http.MethodGet, "/api/profile", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"name":"Test Dev"`)
	assert.Contains(t, string(body), `"avatar"`)
	// Public profile listings never render the owner's email key.
	assert.NotContains(t, string(body), `"email"`)
}

func TestGetMyProfile_NoProfile(t *testing.T) {
	s, app := newProfileTestServer(newStubProfileRepo())
	app.Get("/api/profile/me", asUser(1), s.GetMyProfile)

	resp := jsonRequest(t, app, http.MethodGet, "/api/profile/me", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "There is no profile for this user", decodeMsg(t, resp))
}

func TestGetProfileByUserID_MalformedID(t *testing.T) {
	s, app := newProfileTestServer(newStubProfileRepo())
	app.Get("/api/profile/user/:user_id", s.GetProfileByUserID)

	resp := jsonRequest(t, app, http.MethodGet, "/api/profile/user/abc", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Profile not found", decodeMsg(t, resp))
}

func TestGetProfileByUserID_Unknown(t *testing.T) {
	s, app := newProfileTestServer(newStubProfileRepo())
	app.Get("/api/profile/user/:user_id", s.GetProfileByUserID)

	resp := jsonRequest(t, app, http.MethodGet, "/api/profile/user/42", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Profile not found", decodeMsg(t, resp))
}

func TestUpsertProfile_Validation(t *testing.T) {
	s, app := newProfileTestServer(newStubProfileRepo())
	app.Post("/api/profile", asUser(1), s.UpsertProfile)

	resp := jsonRequest(t, app, http.MethodPost, "/api/profile", map[string]any{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs := decodeErrors(t, resp)
	require.Len(t, errs, 2)
	assert.Equal(t, "Status is required", errs[0].Msg)
	assert.Equal(t, "Skills is required", errs[1].Msg)
}

func TestUpsertProfile_SkillsString(t *testing.T) {
	repo := newStubProfileRepo()
	s, app := newProfileTestServer(repo)
	app.Post("/api/profile", asUser(1), s.UpsertProfile)

	resp := jsonRequest(t, app, http.MethodPost, "/api/profile", map[string]any{
		"status":  "Developer",
		"skills":  "go, rust",
		"website": "example.com",
		"twitter": "twitter.com/dev",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile models.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.Equal(t, []string{"go", "rust"}, []string(profile.Skills))
	assert.Equal(t, "https://example.com", profile.Website)
	assert.Equal(t, "https://twitter.com/dev", profile.Social.Data().Twitter)
}

func TestAddExperience_Validation(t *testing.T) {
	s, app := newProfileTestServer(newStubProfileRepo())
	app.Put("/api/profile/experience", asUser(1), s.AddExperience)

	resp := jsonRequest(t, app, http.MethodPut, "/api/profile/experience", map[string]any{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs := decodeErrors(t, resp)
	require.Len(t, errs, 3)
	assert.Equal(t, "Title is required", errs[0].Msg)
	assert.Equal(t, "Company is required", errs[1].Msg)
	assert.Equal(t, "From date is required", errs[2].Msg)
}

func TestAddExperience_NoProfile(t *testing.T) {
	s, app := newProfileTestServer(newStubProfileRepo())
	app.Put("/api/profile/experience", asUser(1), s.AddExperience)

	resp := jsonRequest(t, app, http.MethodPut, "/api/profile/experience", map[string]any{
		"title":   "Engineer",
		"company": "Acme",
		"from":    "2020-01-01",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "There is no profile for this user", decodeMsg(t, resp))
}

func TestExperienceLifecycle(t *testing.T) {
	repo := newStubProfileRepo()
	repo.profiles[1] = &models.Profile{
		ID:         1,
		UserID:     1,
		Status:     "Developer",
		Experience: datatypes.JSONSlice[models.Experience]{},
	}

	s, app := newProfileTestServer(repo)
	app.Put("/api/profile/experience", asUser(1), s.AddExperience)
	app.Delete("/api/profile/experience/:exp_id", asUser(1), s.DeleteExperience)

	resp := jsonRequest(t, app, http.MethodPut, "/api/profile/experience", map[string]any{
		"title":   "Engineer",
		"company": "Acme",
		"from":    "2020-01-01",
		"current": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile models.Profile
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	resp.Body.Close()
	require.Len(t, profile.Experience, 1)
	entryID := profile.Experience[0].ID
	require.NotEmpty(t, entryID)

	// Deleting an unknown id is an explicit error, not a no-op.
	resp = jsonRequest(t, app, http.MethodDelete, "/api/profile/experience/bogus", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Experience entry not found", decodeMsg(t, resp))
	resp.Body.Close()

	resp = jsonRequest(t, app, http.MethodDelete, "/api/profile/experience/"+entryID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	resp.Body.Close()
	assert.Empty(t, profile.Experience)
}

func TestAddEducation_Validation(t *testing.T) {
	s, app := newProfileTestServer(newStubProfileRepo())
	app.Put("/api/profile/education", asUser(1), s.AddEducation)

	resp := jsonRequest(t, app, http.MethodPut, "/api/profile/education", map[string]any{
		"school": "State University",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errs := decodeErrors(t, resp)
	require.Len(t, errs, 3)
	assert.Equal(t, "Degree is required", errs[0].Msg)
	assert.Equal(t, "Field of Study is required", errs[1].Msg)
	assert.Equal(t, "From date is required", errs[2].Msg)
}
