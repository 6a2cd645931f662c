package server

import (
	"devbook/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.Context(), currentUserID(c), req.Text)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	post, err := s.postService.GetByID(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := s.postService.Delete(c.Context(), currentUserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post removed"})
}

// LikePost handles PUT /api/posts/like/:id
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	likes, err := s.postService.Like(c.Context(), currentUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(likes)
}

// UnlikePost handles PUT /api/posts/unlike/:id
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	likes, err := s.postService.Unlike(c.Context(), currentUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(likes)
}

// AddComment handles POST /api/posts/comment/:id
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	comments, err := s.postService.AddComment(c.Context(), currentUserID(c), id, req.Text)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comments)
}

// DeleteComment handles DELETE /api/posts/comment/:id/:comment_id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	commentID, err := parseIDParam(c, "comment_id")
	if err != nil {
		return fail(c, err)
	}

	comments, err := s.postService.RemoveComment(c.Context(), currentUserID(c), postID, commentID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(comments)
}
