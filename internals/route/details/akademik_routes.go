package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	KelasRoutes "sekolahku_backend/internals/features/akademik/kelas/route"
	SiswaRoutes "sekolahku_backend/internals/features/akademik/siswa/route"
)

func AkademikAdminRoutes(r fiber.Router, db *gorm.DB) {
	KelasRoutes.AdminKelasRoutes(r, db)
	SiswaRoutes.AdminSiswaRoutes(r, db)
}

// Staff hanya baca kelas (untuk filter di halaman pembayaran).
func AkademikStaffRoutes(r fiber.Router, db *gorm.DB) {
	KelasRoutes.StaffKelasRoutes(r, db)
}
