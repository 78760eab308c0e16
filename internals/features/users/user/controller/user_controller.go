package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	transaksiModel "sekolahku_backend/internals/features/finance/transaksi/model"
	authService "sekolahku_backend/internals/features/users/auth/service"
	"sekolahku_backend/internals/features/users/user/dto"
	"sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

func duplicateMessage(err error) string {
	name := helper.UniqueConstraintName(err)
	if name == "" {
		name = err.Error()
	}
	if strings.Contains(strings.ToLower(name), "email") {
		return "Email sudah dipakai"
	}
	return "Username sudah dipakai"
}

// GET /api/a/users?q=&role=
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 100)

	q := uc.DB.WithContext(c.UserContext()).Model(&model.User{})
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(user_nama) LIKE ? OR LOWER(user_username) LIKE ? OR LOWER(user_email) LIKE ?", like, like, like)
	}
	if v := strings.TrimSpace(c.Query("role")); v != "" {
		q = q.Where("user_role = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	var users []model.User
	if err := q.Order("user_nama ASC").Limit(pg.Limit).Offset(pg.Offset).Find(&users).Error; err != nil {
		log.Println("[ERROR] Failed to fetch users:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil user")
	}
	return helper.JsonList(c, "Daftar user", users, helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage))
}

func (uc *UserController) load(c *fiber.Ctx) (*model.User, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var u model.User
	if err := uc.DB.WithContext(c.UserContext()).Where("user_id = ?", id).Take(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		return nil, err
	}
	return &u, nil
}

// GET /api/a/users/:id
func (uc *UserController) GetUser(c *fiber.Ctx) error {
	u, err := uc.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail user", u)
}

// POST /api/a/users
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	in.Normalize()
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}
	hash, err := authService.HashPassword(in.UserPassword)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	u := in.ToModel(hash)
	if err := uc.DB.WithContext(c.UserContext()).Create(&u).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, duplicateMessage(err))
		}
		return helper.FromFiberError(c, err)
	}
	log.Printf("[SUCCESS] user %s dibuat (%s)", u.UserUsername, u.UserRole)
	return helper.JsonCreated(c, "User berhasil dibuat", u)
}

// PUT /api/a/users/:id
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	u, err := uc.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	in.Normalize()
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	if u.IsAdmin() && in.UserRole != nil && *in.UserRole != model.RoleAdmin {
		if last, err := uc.isLastAdmin(c, u); err != nil {
			return helper.FromFiberError(c, err)
		} else if last {
			return helper.JsonError(c, fiber.StatusConflict, "Admin terakhir tidak boleh diturunkan menjadi staff")
		}
	}

	in.Apply(u)
	if in.UserPassword != nil {
		hash, err := authService.HashPassword(*in.UserPassword)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		u.UserPassword = hash
	}
	if err := uc.DB.WithContext(c.UserContext()).Save(u).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, duplicateMessage(err))
		}
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "User berhasil diperbarui", u)
}

// DELETE /api/a/users/:id
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	u, err := uc.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if me, _ := helper.GetUserIDFromToken(c); me == u.UserID {
		return helper.JsonError(c, fiber.StatusConflict, "Tidak bisa menghapus akun sendiri")
	}
	if u.IsAdmin() {
		if last, err := uc.isLastAdmin(c, u); err != nil {
			return helper.FromFiberError(c, err)
		} else if last {
			return helper.JsonError(c, fiber.StatusConflict, "Admin terakhir tidak boleh dihapus")
		}
	}

	var n int64
	if err := uc.DB.WithContext(c.UserContext()).Model(&transaksiModel.Transaksi{}).
		Where("transaksi_petugas_id = ?", u.UserID).
		Count(&n).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "User sudah mencatat transaksi dan tidak dapat dihapus")
	}

	if err := uc.DB.WithContext(c.UserContext()).Delete(u).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "User berhasil dihapus", fiber.Map{"user_id": u.UserID})
}

func (uc *UserController) isLastAdmin(c *fiber.Ctx, u *model.User) (bool, error) {
	var n int64
	err := uc.DB.WithContext(c.UserContext()).Model(&model.User{}).
		Where("user_role = ? AND user_id <> ?", model.RoleAdmin, u.UserID).
		Count(&n).Error
	return n == 0, err
}
