package middleware

import (
	"slices"
	"strings"

	"wellness-analytics/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
)

// RequireRoles lets the request through when the caller holds any of roles.
// Must run after AuthMiddleware.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(utils.UserClaimsKey).(*utils.UserClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		for _, held := range claims.Roles {
			if slices.Contains(roles, normalizeRole(held)) {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden: Insufficient permissions",
		})
	}
}

// normalizeRole accepts "admin" and "ROLE_ADMIN" as ADMIN.
func normalizeRole(role string) string {
	return strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(role)), "ROLE_")
}
