package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"social-service/internal/middleware"
	"social-service/internal/models"
	"social-service/internal/service"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(app *fiber.App) {
	// PUBLIC ROUTES - viewer identity is optional; the visibility resolver
	// decides what an anonymous or identified viewer gets to see.
	publicGroup := app.Group("/public/profiles")
	publicGroup.Get("/user/:userId", h.GetProfileView)

	// PROTECTED ROUTES - the gateway authenticated the caller
	protectedGroup := app.Group("/protected/profiles")
	protectedGroup.Get("/me", h.GetMe, middleware.AuthRequired())
	protectedGroup.Post("/me", h.CreateMe, middleware.AuthRequired())
	protectedGroup.Put("/me", h.UpdateMe, middleware.AuthRequired(), middleware.PermissionRequired(middleware.UpdateProfilePermission))
	protectedGroup.Put("/me/visibility", h.UpdateMyVisibility, middleware.AuthRequired(), middleware.PermissionRequired(middleware.UpdateProfilePermission))
}

// GetProfileView renders the target profile as the current viewer may see
// it. Hidden profiles are reported as not found so the endpoint does not
// leak which private profiles exist.
func (h *ProfileHandler) GetProfileView(c fiber.Ctx) error {
	targetUserID := c.Params("userId")
	if targetUserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User ID is required",
		})
	}
	viewerID := middleware.ViewerID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	view, err := h.profileService.GetProfileView(ctx, viewerID, targetUserID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) || errors.Is(err, service.ErrProfileHidden) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Profile not found",
			})
		}

		log.Printf("Failed to resolve profile view for user %s: %v", targetUserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"profile": view,
		},
	})
}

func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	userID := middleware.ViewerID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	profile, err := h.profileService.GetOwnProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Profile not found for this user",
			})
		}

		log.Printf("Failed to get profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"profile": profile,
		},
	})
}

func (h *ProfileHandler) CreateMe(c fiber.Ctx) error {
	userID := middleware.ViewerID(c)

	var req models.CreateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	req.UserID = userID

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	profile, err := h.profileService.CreateProfile(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrProfileExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Profile already exists",
			})
		}

		log.Printf("Failed to create profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"profile": profile,
		},
	})
}

func (h *ProfileHandler) UpdateMe(c fiber.Ctx) error {
	userID := middleware.ViewerID(c)

	var req models.UpdateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	profile, err := h.profileService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Profile not found for this user",
			})
		}

		log.Printf("Failed to update profile for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"profile": profile,
		},
	})
}

// UpdateMyVisibility replaces the owner's whole visibility settings record.
func (h *ProfileHandler) UpdateMyVisibility(c fiber.Ctx) error {
	userID := middleware.ViewerID(c)

	var req models.UpdateVisibilityRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	profile, err := h.profileService.UpdateVisibility(ctx, userID, req.Visibility)
	if err != nil {
		log.Printf("Failed to update visibility for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update visibility settings",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"profile": profile,
		},
	})
}
