// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /create_profile/
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetOwnProfile(c.Context(), currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles POST /create_profile/. All fields are optional;
// the authenticated user is always taken from the token, never the body.
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var patch service.ProfilePatch
	if err := c.BodyParser(&patch); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateOwnProfile(c.Context(), currentUserID(c), patch)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(profile)
}

// CheckProfile handles GET /check-profile/
func (s *Server) CheckProfile(c *fiber.Ctx) error {
	complete, err := s.profileService.HasCompletedProfile(c.Context(), currentUserID(c))
	if err != nil {
		return mapServiceError(c, err)
	}
	if !complete {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("You need to complete your profile before creating a post."))
	}
	return c.JSON(fiber.Map{"has_profile": true})
}

// Dashboard handles GET /dashboard/
func (s *Server) Dashboard(c *fiber.Ctx) error {
	userID := currentUserID(c)

	complete, err := s.profileService.HasCompletedProfile(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	if !complete {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":        "You need to complete your profile before creating a post.",
			"redirect_url": "/create_profile/",
		})
	}

	profile, posts, err := s.profileService.Dashboard(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"profile": profile,
		"posts":   posts,
	})
}

// PublicProfile handles GET /profile/:username/
func (s *Server) PublicProfile(c *fiber.Ctx) error {
	profile, posts, err := s.profileService.PublicProfile(c.Context(), c.Params("username"))
	if err != nil {
		return mapServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"profile": profile,
		"posts":   posts,
	})
}
