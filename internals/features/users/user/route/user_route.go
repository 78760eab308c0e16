package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "sekolahku_backend/internals/features/users/user/controller"
)

func AdminUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := userController.NewUserController(db)
	g := r.Group("/users")
	{
		g.Get("/", ctl.GetUsers)
		g.Get("/:id", ctl.GetUser)
		g.Post("/", ctl.CreateUser)
		g.Put("/:id", ctl.UpdateUser)
		g.Delete("/:id", ctl.DeleteUser)
	}
}
