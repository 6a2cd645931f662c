package server

import (
	"devbook/internal/models"
	"devbook/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profile/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetByUserID(c.Context(), currentUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

// GetProfiles handles GET /api/profile
func (s *Server) GetProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.List(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profiles)
}

// GetProfileByUserID handles GET /api/profile/user/:user_id
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "user_id")
	if err != nil {
		return fail(c, err)
	}
	profile, err := s.profileService.GetByUserID(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req service.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.Upsert(c.Context(), currentUserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.profileService.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// AddExperience handles PUT /api/profile/experience
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req service.ExperienceInput
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddExperience(c.Context(), currentUserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

// DeleteExperience handles DELETE /api/profile/experience/:exp_id
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	entryID, err := parseIDParam(c, "exp_id")
	if err != nil {
		return fail(c, err)
	}
	profile, err := s.profileService.RemoveExperience(c.Context(), currentUserID(c), entryID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req service.EducationInput
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.AddEducation(c.Context(), currentUserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

// DeleteEducation handles DELETE /api/profile/education/:edu_id
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	entryID, err := parseIDParam(c, "edu_id")
	if err != nil {
		return fail(c, err)
	}
	profile, err := s.profileService.RemoveEducation(c.Context(), currentUserID(c), entryID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}
