package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	posController "sekolahku_backend/internals/features/finance/pos_pembayaran/controller"
)

func AdminPosRoutes(r fiber.Router, db *gorm.DB) {
	ctl := posController.NewPosHandler(db)
	g := r.Group("/pos")
	{
		g.Get("/", ctl.List)
		g.Post("/", ctl.Create)
		g.Put("/:id", ctl.Update)
		g.Delete("/:id", ctl.Delete)
	}
}

func StaffPosRoutes(r fiber.Router, db *gorm.DB) {
	ctl := posController.NewPosHandler(db)
	g := r.Group("/pos")
	{
		g.Get("/", ctl.List)
		g.Post("/", ctl.Create)
	}
}
