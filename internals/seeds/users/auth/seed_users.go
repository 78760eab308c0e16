package user

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	authService "sekolahku_backend/internals/features/users/auth/service"
	"sekolahku_backend/internals/features/users/user/model"
)

// SeedAdminFromEnv membuat admin awal dari ADMIN_* kalau tabel users belum punya admin.
func SeedAdminFromEnv(ctx context.Context, db *gorm.DB) error {
	created, err := authService.EnsureAdmin(ctx, db, authService.AdminSeed{
		Nama:     configs.GetEnv("ADMIN_NAME", "Administrator"),
		Username: configs.GetEnv("ADMIN_USERNAME"),
		Email:    configs.GetEnv("ADMIN_EMAIL"),
		Password: configs.GetEnv("ADMIN_PASSWORD"),
	})
	if err != nil {
		return err
	}
	if created {
		log.Printf("✅ Admin awal %q dibuat", configs.GetEnv("ADMIN_USERNAME"))
	}
	return nil
}

type UserSeed struct {
	Nama     string `json:"user_nama"`
	Username string `json:"user_username"`
	Email    string `json:"user_email"`
	Password string `json:"user_password"`
	Role     string `json:"user_role"`
}

// SeedUsersFromJSON menambah petugas dari file JSON; username yang sudah ada dilewati.
func SeedUsersFromJSON(db *gorm.DB, filePath string) error {
	log.Println("📥 Membaca file user:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("baca %s: %w", filePath, err)
	}
	var inputs []UserSeed
	if err := json.Unmarshal(file, &inputs); err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}

	for _, data := range inputs {
		var n int64
		if err := db.Model(&model.User{}).Where("user_username = ?", data.Username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			log.Printf("ℹ️ User '%s' sudah ada, dilewati.", data.Username)
			continue
		}

		hashedPassword, err := authService.HashPassword(data.Password)
		if err != nil {
			log.Printf("❌ Gagal hash password untuk '%s': %v", data.Username, err)
			continue
		}
		role := strings.ToLower(strings.TrimSpace(data.Role))
		if role != model.RoleAdmin {
			role = model.RoleStaff
		}
		u := model.User{
			UserNama:     data.Nama,
			UserUsername: data.Username,
			UserEmail:    strings.ToLower(data.Email),
			UserPassword: hashedPassword,
			UserRole:     role,
		}
		if err := db.Create(&u).Error; err != nil {
			log.Printf("❌ Gagal insert user '%s': %v", data.Username, err)
			continue
		}
		log.Printf("✅ User '%s' (%s) ditambahkan", u.UserUsername, u.UserRole)
	}
	return nil
}
