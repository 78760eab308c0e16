package auth

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "sekolahku_backend/internals/features/users/auth/service"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
)

// AuthMiddleware memverifikasi bearer token lalu mengisi Locals user_id, user_role, user_name.
// Role diambil dari tabel users, jadi perubahan role langsung berlaku tanpa login ulang.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		claims, err := authService.ParseToken(tokenString)
		if err != nil {
			if errors.Is(err, authService.ErrMissingSecret) {
				log.Println("[ERROR] JWT_SECRET kosong")
				return helper.JsonError(c, fiber.StatusInternalServerError, "")
			}
			return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - Token tidak valid atau kedaluwarsa")
		}

		var u userModel.User
		if err := db.WithContext(c.UserContext()).
			Select("user_id", "user_nama", "user_role").
			Where("user_id = ?", claims.UserID).
			Take(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized - User tidak ditemukan")
			}
			log.Println("[ERROR] cek user:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "")
		}

		c.Locals(helper.LocUserID, u.UserID.String())
		c.Locals(helper.LocUserRole, u.UserRole)
		c.Locals(helper.LocUserName, u.UserNama)
		return c.Next()
	}
}
