package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"social-service/internal/middleware"
	"social-service/internal/models"
	"social-service/internal/service"

	"github.com/gofiber/fiber/v3"
)

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{
		followService: followService,
	}
}

func (h *FollowHandler) RegisterRoutes(app *fiber.App) {
	publicGroup := app.Group("/public/profiles")
	publicGroup.Get("/user/:userId/followers", h.ListFollowers)
	publicGroup.Get("/user/:userId/following", h.ListFollowing)

	protectedGroup := app.Group("/protected/follows")
	protectedGroup.Post("/:userId", h.Follow, middleware.AuthRequired(), middleware.PermissionRequired(middleware.WriteFollowPermission))
	protectedGroup.Delete("/:userId", h.Unfollow, middleware.AuthRequired(), middleware.PermissionRequired(middleware.WriteFollowPermission))
}

func (h *FollowHandler) Follow(c fiber.Ctx) error {
	viewerID := middleware.ViewerID(c)
	targetUserID := c.Params("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := h.followService.Follow(ctx, viewerID, targetUserID)
	if err != nil {
		log.Printf("Failed to follow %s as %s: %v", targetUserID, viewerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to follow user",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": result,
	})
}

func (h *FollowHandler) Unfollow(c fiber.Ctx) error {
	viewerID := middleware.ViewerID(c)
	targetUserID := c.Params("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := h.followService.Unfollow(ctx, viewerID, targetUserID)
	if err != nil {
		log.Printf("Failed to unfollow %s as %s: %v", targetUserID, viewerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to unfollow user",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": result,
	})
}

func (h *FollowHandler) ListFollowers(c fiber.Ctx) error {
	return h.listConnections(c, h.followService.ListFollowers)
}

func (h *FollowHandler) ListFollowing(c fiber.Ctx) error {
	return h.listConnections(c, h.followService.ListFollowing)
}

func (h *FollowHandler) listConnections(
	c fiber.Ctx,
	list func(ctx context.Context, viewerID, targetUserID string, page, limit int) (*models.FollowListResult, error),
) error {
	targetUserID := c.Params("userId")
	if targetUserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User ID is required",
		})
	}
	viewerID := middleware.ViewerID(c)

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := list(ctx, viewerID, targetUserID, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Profile not found",
			})
		}
		if errors.Is(err, service.ErrSectionHidden) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "This list is not visible",
			})
		}

		log.Printf("Failed to list connections for %s: %v", targetUserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list connections",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": result,
	})
}
