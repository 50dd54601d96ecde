package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"
)

const (
	// Profile permissions
	ReadProfilePermission   = "read:profile"
	UpdateProfilePermission = "update:profile"
	DeleteProfilePermission = "delete:profile"

	// Goal permissions
	WriteGoalPermission  = "write:goal"
	UpdateGoalPermission = "update:goal"
	DeleteGoalPermission = "delete:goal"

	// Follow permissions
	WriteFollowPermission = "write:follow"

	// Admin permissions (for backward compatibility)
	AdminPermission   = "admin"
	ManagerPermission = "manager"
)

// ViewerID extracts the authenticated user id injected by the gateway.
// Empty string means an anonymous viewer.
func ViewerID(c fiber.Ctx) string {
	return c.Get("X-User-ID")
}

func PermissionRequired(requiredPermission string) fiber.Handler {
	return func(c fiber.Ctx) error {
		userPermissions := c.Get("X-User-Permissions")
		hasPermission := false
		if userPermissions != "" {
			permissions := strings.Split(userPermissions, ",")

			for _, perm := range permissions {
				if perm == requiredPermission || strings.HasPrefix(perm, "admin") || strings.HasPrefix(perm, "manager") {
					hasPermission = true
					break
				}
			}
		}

		if !hasPermission {
			log.Printf("Permission %s denied for %s %s", requiredPermission, c.Method(), c.OriginalURL())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}

func AuthRequired() fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Get("X-User-ID") == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}

func OwnerPermissionRequired(userID string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if userID == "" {
			userID = c.Params("userId")
			if userID == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Unauthorized",
				})
			}
		}

		currentUserID := c.Get("X-User-ID")
		if currentUserID == "" || currentUserID != userID {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		return c.Next()
	}
}
