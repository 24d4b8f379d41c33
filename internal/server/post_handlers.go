package server

import (
	"devconnect/internal/models"
	"devconnect/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Text string `json:"text"`
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body createPostRequest true "Post body"
// @Success 200 {object} models.Post
// @Failure 400 {object} map[string][]models.FieldError
// @Router /api/posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := validation.Required(req.Text, "Text is required"); err != nil {
		return models.RespondWithFieldErrors(c, []models.FieldError{
			{Msg: err.Error(), Param: "text"},
		})
	}

	post, err := s.posts.CreatePost(c.UserContext(), currentUserID(c), req.Text)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(post)
}

// GetPosts godoc
// @Summary List posts, newest first
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} models.Post
// @Router /api/posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 100 {
		limit = 50
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	posts, err := s.posts.ListPosts(c.UserContext(), limit, offset)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(posts)
}
