package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetGithubRepos handles GET /api/profile/github/:username
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	username := c.Params("username")

	repos, err := s.githubClient.Repos(c.Context(), username)
	if err != nil {
		return fail(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(repos)
}
