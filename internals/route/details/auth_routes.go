package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	AuthRoutes "sekolahku_backend/internals/features/users/auth/route"
	UserRoutes "sekolahku_backend/internals/features/users/user/route"
)

/* ===================== PUBLIC ===================== */
// Base: /api/auth (login publik, /me & change-password pakai JWT)
func AuthPublicRoutes(r fiber.Router, db *gorm.DB) {
	AuthRoutes.AuthRoutes(r, db)
}

/* ===================== ADMIN ===================== */
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	UserRoutes.AdminUserRoutes(r, db)
}
