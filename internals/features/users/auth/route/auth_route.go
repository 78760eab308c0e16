package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/users/auth/controller"
	rateLimiter "sekolahku_backend/internals/middlewares"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
)

// AuthRoutes: base /api/auth
func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctl := controller.NewAuthController(db)

	r.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)

	auth := authMiddleware.AuthMiddleware(db)
	r.Get("/me", auth, ctl.Me)
	r.Post("/change-password", auth, ctl.ChangePassword)
}
