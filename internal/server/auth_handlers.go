package server

import (
	"devconnect/internal/models"
	"devconnect/internal/service"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register godoc
// @Summary Register a new account
// @Tags users
// @Accept json
// @Produce json
// @Param request body registerRequest true "Account details"
// @Success 200 {object} authResponse
// @Failure 400 {object} map[string][]models.FieldError
// @Router /api/users [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var errs []models.FieldError
	if err := validation.Required(req.Name, "Name is required"); err != nil {
		errs = append(errs, models.FieldError{Msg: err.Error(), Param: "name"})
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		errs = append(errs, models.FieldError{Msg: err.Error(), Param: "email"})
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		errs = append(errs, models.FieldError{Msg: err.Error(), Param: "password"})
	}
	if len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	user, err := s.accounts.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeValidation {
			return models.RespondWithFieldErrors(c, []models.FieldError{{Msg: appErr.Message}})
		}
		return handleError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return handleError(c, models.NewInternalError(err))
	}

	return c.JSON(authResponse{Token: token, User: user})
}

// Login godoc
// @Summary Authenticate and obtain a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} authResponse
// @Failure 400 {object} map[string][]models.FieldError
// @Router /api/auth [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	var errs []models.FieldError
	if err := validation.ValidateEmail(req.Email); err != nil {
		errs = append(errs, models.FieldError{Msg: err.Error(), Param: "email"})
	}
	if err := validation.Required(req.Password, "Password is required"); err != nil {
		errs = append(errs, models.FieldError{Msg: err.Error(), Param: "password"})
	}
	if len(errs) > 0 {
		return models.RespondWithFieldErrors(c, errs)
	}

	user, err := s.accounts.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeUnauthorized {
			// Bad credentials mirror the validator shape so clients handle
			// them with the same code path.
			return models.RespondWithFieldErrors(c, []models.FieldError{{Msg: appErr.Message}})
		}
		return handleError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return handleError(c, models.NewInternalError(err))
	}

	return c.JSON(authResponse{Token: token, User: user})
}

// GetCurrentAccount godoc
// @Summary Get the authenticated account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth [get]
func (s *Server) GetCurrentAccount(c *fiber.Ctx) error {
	user, err := s.accounts.GetAccount(c.UserContext(), currentUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(user)
}
