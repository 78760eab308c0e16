package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	LaporanRoutes "sekolahku_backend/internals/features/finance/laporan/route"
	PembayaranRoutes "sekolahku_backend/internals/features/finance/pembayaran/route"
	PosRoutes "sekolahku_backend/internals/features/finance/pos_pembayaran/route"
)

func FinanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	PosRoutes.AdminPosRoutes(r, db)
	PembayaranRoutes.PembayaranRoutes(r, db)
	LaporanRoutes.LaporanRoutes(r, db)
}

func FinanceStaffRoutes(r fiber.Router, db *gorm.DB) {
	PosRoutes.StaffPosRoutes(r, db)
	PembayaranRoutes.PembayaranRoutes(r, db)
}
