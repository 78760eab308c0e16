package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	helper "sekolahku_backend/internals/helpers"
)

// OnlyRoles: dipasang setelah AuthMiddleware.
func OnlyRoles(customMessage string, roles ...string) fiber.Handler {
	if customMessage == "" {
		customMessage = "Forbidden: Anda tidak punya akses ke resource ini"
	}
	return func(c *fiber.Ctx) error {
		role := helper.GetRoleFromToken(c)
		if role == "" {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized: missing role information")
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		log.Printf("[AUTH] role %q ditolak untuk %s %s", role, c.Method(), c.Path())
		return helper.JsonError(c, fiber.StatusForbidden, customMessage)
	}
}
