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

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) RegisterRoutes(app *fiber.App) {
	publicGroup := app.Group("/public/profiles")
	publicGroup.Get("/user/:userId/goals", h.ListUserGoals)

	protectedGroup := app.Group("/protected/goals")
	protectedGroup.Post("/", h.CreateGoal, middleware.AuthRequired(), middleware.PermissionRequired(middleware.WriteGoalPermission))
	protectedGroup.Get("/:id", h.GetGoal, middleware.AuthRequired())
	protectedGroup.Put("/:id", h.UpdateGoal, middleware.AuthRequired(), middleware.PermissionRequired(middleware.UpdateGoalPermission))
	protectedGroup.Delete("/:id", h.DeleteGoal, middleware.AuthRequired(), middleware.PermissionRequired(middleware.DeleteGoalPermission))
	protectedGroup.Post("/:id/partners/:userId", h.AddPartner, middleware.AuthRequired(), middleware.PermissionRequired(middleware.UpdateGoalPermission))
	protectedGroup.Delete("/:id/partners/:userId", h.RemovePartner, middleware.AuthRequired(), middleware.PermissionRequired(middleware.UpdateGoalPermission))
}

// ListUserGoals returns the subset of the target's goals the viewer may see.
func (h *GoalHandler) ListUserGoals(c fiber.Ctx) error {
	targetUserID := c.Params("userId")
	if targetUserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User ID is required",
		})
	}
	viewerID := middleware.ViewerID(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := h.goalService.ListUserGoals(ctx, viewerID, targetUserID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Profile not found",
			})
		}

		log.Printf("Failed to list goals for %s: %v", targetUserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list goals",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": result,
	})
}

func (h *GoalHandler) CreateGoal(c fiber.Ctx) error {
	userID := middleware.ViewerID(c)

	var req models.CreateGoalRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	goal, err := h.goalService.CreateGoal(ctx, userID, &req)
	if err != nil {
		log.Printf("Failed to create goal for user %s: %v", userID, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"goal": goal,
		},
	})
}

// GetGoal returns one goal if the viewer passes the goal gate. Hidden goals
// read as not found.
func (h *GoalHandler) GetGoal(c fiber.Ctx) error {
	viewerID := middleware.ViewerID(c)
	goalID := c.Params("id")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	goal, err := h.goalService.GetGoal(ctx, viewerID, goalID)
	if err != nil {
		if errors.Is(err, service.ErrGoalNotFound) || errors.Is(err, service.ErrGoalHidden) || errors.Is(err, service.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Goal not found",
			})
		}

		log.Printf("Failed to get goal %s: %v", goalID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve goal",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"goal": goal,
		},
	})
}

func (h *GoalHandler) UpdateGoal(c fiber.Ctx) error {
	userID := middleware.ViewerID(c)
	goalID := c.Params("id")

	var req models.UpdateGoalRequest
	if err := c.Bind().Body(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	goal, err := h.goalService.UpdateGoal(ctx, userID, goalID, &req)
	if err != nil {
		return h.goalWriteError(c, goalID, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"goal": goal,
		},
	})
}

func (h *GoalHandler) DeleteGoal(c fiber.Ctx) error {
	userID := middleware.ViewerID(c)
	goalID := c.Params("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.goalService.DeleteGoal(ctx, userID, goalID); err != nil {
		return h.goalWriteError(c, goalID, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Goal deleted successfully",
	})
}

func (h *GoalHandler) AddPartner(c fiber.Ctx) error {
	userID := middleware.ViewerID(c)
	goalID := c.Params("id")
	partnerID := c.Params("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	goal, err := h.goalService.AddPartner(ctx, userID, goalID, partnerID)
	if err != nil {
		return h.goalWriteError(c, goalID, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"goal": goal,
		},
	})
}

func (h *GoalHandler) RemovePartner(c fiber.Ctx) error {
	userID := middleware.ViewerID(c)
	goalID := c.Params("id")
	partnerID := c.Params("userId")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	goal, err := h.goalService.RemovePartner(ctx, userID, goalID, partnerID)
	if err != nil {
		return h.goalWriteError(c, goalID, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": fiber.Map{
			"goal": goal,
		},
	})
}

func (h *GoalHandler) goalWriteError(c fiber.Ctx, goalID string, err error) error {
	if errors.Is(err, service.ErrGoalNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Goal not found",
		})
	}
	if errors.Is(err, service.ErrNotGoalOwner) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the goal owner may do this",
		})
	}

	log.Printf("Failed to modify goal %s: %v", goalID, err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}
