package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	siswaController "sekolahku_backend/internals/features/akademik/siswa/controller"
)

func AdminSiswaRoutes(r fiber.Router, db *gorm.DB) {
	ctl := siswaController.NewSiswaHandler(db)
	g := r.Group("/siswa")
	{
		g.Get("/", ctl.List)
		g.Get("/:id", ctl.Get)
		g.Post("/", ctl.Create)
		g.Post("/batch", ctl.Batch)
		g.Put("/:id", ctl.Update)
		g.Delete("/:id", ctl.Delete)
	}
}
