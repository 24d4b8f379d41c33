package server

import (
	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetGithubRepos godoc
// @Summary List a user's latest public GitHub repositories
// @Tags profile
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {array} github.Repo
// @Failure 404 {object} models.ErrorResponse
// @Router /api/profile/github/{username} [get]
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	repos, err := s.github.ListRepos(c.UserContext(), c.Params("username"))
	if err != nil {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("No Github profile found"))
	}
	return c.JSON(repos)
}
