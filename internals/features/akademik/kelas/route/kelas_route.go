package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	kelasController "sekolahku_backend/internals/features/akademik/kelas/controller"
)

func AdminKelasRoutes(r fiber.Router, db *gorm.DB) {
	ctl := kelasController.NewKelasHandler(db)
	g := r.Group("/kelas")
	{
		g.Get("/", ctl.List)
		g.Get("/angkatan", ctl.Angkatan)
		g.Get("/:id", ctl.Get)
		g.Post("/", ctl.Create)
		g.Patch("/:id", ctl.Update)
		g.Delete("/:id", ctl.Delete)
	}
}

// Staff cukup baca (dropdown filter pembayaran).
func StaffKelasRoutes(r fiber.Router, db *gorm.DB) {
	ctl := kelasController.NewKelasHandler(db)
	g := r.Group("/kelas")
	{
		g.Get("/", ctl.List)
		g.Get("/angkatan", ctl.Angkatan)
	}
}
