package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/users/auth/service"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// POST /api/auth/login
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var in loginRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	in.Identifier = strings.TrimSpace(in.Identifier)
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	u, err := service.Authenticate(c.UserContext(), ac.DB, in.Identifier, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Username/email atau password salah")
		}
		return helper.FromFiberError(c, err)
	}

	token, exp, err := service.IssueToken(*u)
	if err != nil {
		log.Println("[ERROR] issue token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat access token")
	}
	log.Printf("[AUTH] login %s (%s)", u.UserUsername, u.UserRole)
	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"user":         u,
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   exp,
	})
}

func (ac *AuthController) current(c *fiber.Ctx) (*userModel.User, error) {
	id, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	var u userModel.User
	if err := ac.DB.WithContext(c.UserContext()).Where("user_id = ?", id).Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, err
	}
	return &u, nil
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	u, err := ac.current(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Profil user", u)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// POST /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	u, err := ac.current(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var in changePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	if err := service.CheckPassword(u.UserPassword, in.OldPassword); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"old_password": {"Password lama salah"}})
	}
	hash, err := service.HashPassword(in.NewPassword)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := ac.DB.WithContext(c.UserContext()).Model(u).Update("user_password", hash).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Password berhasil diubah", nil)
}
