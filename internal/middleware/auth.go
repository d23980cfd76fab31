package middleware

import (
	"strings"

	"wellness-analytics/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates the bearer JWT and stores its claims under
// utils.UserClaimsKey. With skipAuth every request runs as a dev ADMIN.
func AuthMiddleware(skipAuth bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if skipAuth {
			c.Locals(utils.UserClaimsKey, &utils.UserClaims{
				UserID: "dev-admin-id",
				Roles:  []string{RoleAdmin},
			})
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "Authorization header required")
		}
		token, ok := bearerToken(header)
		if !ok {
			return unauthorized(c, "Invalid authorization header format")
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			return unauthorized(c, "Invalid token")
		}

		c.Locals(utils.UserClaimsKey, claims)
		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}
