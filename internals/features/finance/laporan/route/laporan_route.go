package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	laporanController "sekolahku_backend/internals/features/finance/laporan/controller"
)

func LaporanRoutes(r fiber.Router, db *gorm.DB) {
	ctl := laporanController.NewLaporanHandler(db)
	g := r.Group("/laporan")
	g.Get("/data", ctl.Data)
}
