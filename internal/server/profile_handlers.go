package server

import (
	"strconv"

	"devconnect/internal/models"
	"devconnect/internal/service"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type upsertProfileRequest struct {
	Status         string            `json:"status"`
	Company        string            `json:"company"`
	Location       string            `json:"location"`
	Website        string            `json:"website"`
	Bio            string            `json:"bio"`
	GithubUsername string            `json:"githubusername"`
	Skills         service.SkillList `json:"skills"`
	Youtube        string            `json:"youtube"`
	Twitter        string            `json:"twitter"`
	Instagram      string            `json:"instagram"`
	Linkedin       string            `json:"linkedin"`
	Facebook       string            `json:"facebook"`
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// GetProfiles godoc
// @Summary List all profiles
// @Tags profile
// @Produce json
// @Success 200 {array} models.Profile
// @Router /api/profile [get]
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	profiles, err := s.profiles.ListProfiles(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(profiles)
}

// GetProfileByUserID godoc
// @Summary Get a profile by user id
// @Tags profile
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /api/profile/user/{user_id} [get]
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	// A malformed id is indistinguishable from an unknown user to clients.
	userID, err := strconv.ParseUint(c.Params("user_id"), 10, 64)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewNotFoundError("Profile not found"))
	}

	profile, err := s.profiles.GetProfileByUserID(c.UserContext(), uint(userID))
	if err != nil {
		return handleError(c, err)
	}
	if profile == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewNotFoundError("Profile not found"))
	}
	return c.JSON(profile)
}

// GetMyProfile godoc
// @Summary Get the authenticated user's profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /api/profile/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profiles.GetProfileByUserID(c.UserContext(), currentUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	if profile == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewNotFoundError("There is no profile for this user"))
	}
	return c.JSON(profile)
}

// UpsertProfile godoc
// @Summary Create or update the authenticated user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body upsertProfileRequest true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} map[string][]models.FieldError
// @Router /api/profile [post]
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req upsertProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var errs []models.FieldError
	if err := validation.Required(req.Status, "Status is required"); err != nil {
		errs = append(errs, models.FieldError{Msg: err.Error(), Param: "status"})
	}
	if len(req.Skills) == 0 {
		errs = append(errs, models.FieldError{Msg: "Skills is required", Param: "skills"})
	}
	if len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	profile, err := s.profiles.UpsertProfile(c.UserContext(), service.UpsertProfileInput{
		UserID:         currentUserID(c),
		Status:         req.Status,
		Company:        req.Company,
		Location:       req.Location,
		Website:        req.Website,
		Bio:            req.Bio,
		GithubUsername: req.GithubUsername,
		Skills:         req.Skills,
		Social: models.SocialLinks{
			Youtube:   req.Youtube,
			Twitter:   req.Twitter,
			Instagram: req.Instagram,
			Linkedin:  req.Linkedin,
			Facebook:  req.Facebook,
		},
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(profile)
}

// AddExperience godoc
// @Summary Prepend a work-history entry
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body experienceRequest true "Experience entry"
// @Success 200 {object} models.Profile
// @Failure 400 {object} map[string][]models.FieldError
// @Router /api/profile/experience [put]
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var errs []models.FieldError
	if err := validation.Required(req.Title, "Title is required"); err != nil {
		errs = append(errs, models.FieldError{Msg: err.Error(), Param: "title"})
	}
	if err := validation.Required(req.Company, "Company is required"); err != nil {
		errs = append(errs, models.FieldError{Msg: err.Error(), Param: "company"})
	}
	if err := validation.Required(req.From, "From date is required"); err != nil {
		errs = append(errs, models.FieldError{Msg: err.Error(), Param: "from"})
	}
	if len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	profile, err := s.profiles.AddExperience(c.UserContext(), currentUserID(c), service.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(profile)
}

// DeleteExperience godoc
// @Summary Remove a work-history entry
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param exp_id path string true "Experience entry ID"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /api/profile/experience/{exp_id} [delete]
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	profile, err := s.profiles.DeleteExperience(c.UserContext(), currentUserID(c), c.Params("exp_id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(profile)
}

// AddEducation godoc
// @Summary Prepend an education entry
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body educationRequest true "Education entry"
// @Success 200 {object} models.Profile
// @Failure 400 {object} map[string][]models.FieldError
// @Router /api/profile/education [put]
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req educationRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var errs []models.FieldError
	if err := validation.Required(req.School, "School is required"); err != nil {
		errs = append(errs, models.FieldError{Msg: err.Error(), Param: "school"})
	}
	if err := validation.Required(req.Degree, "Degree is required"); err != nil {
		errs = append(errs, models.FieldError{Msg: err.Error(), Param: "degree"})
	}
	if err := validation.Required(req.FieldOfStudy, "Field of Study is required"); err != nil {
		errs = append(errs, models.FieldError{Msg: err.Error(), Param: "fieldofstudy"})
	}
	if err := validation.Required(req.From, "From date is required"); err != nil {
		errs = append(errs, models.FieldError{Msg: err.Error(), Param: "from"})
	}
	if len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	profile, err := s.profiles.AddEducation(c.UserContext(), currentUserID(c), service.EducationInput{
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(profile)
}

// DeleteEducation godoc
// @Summary Remove an education entry
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param edu_id path string true "Education entry ID"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /api/profile/education/{edu_id} [delete]
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	profile, err := s.profiles.DeleteEducation(c.UserContext(), currentUserID(c), c.Params("edu_id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount godoc
// @Summary Delete the authenticated account, its profile, and its posts
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ErrorResponse
// @Router /api/profile [delete]
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.accounts.DeleteAccount(c.UserContext(), currentUserID(c)); err != nil {
		return handleError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "User deleted"})
}
