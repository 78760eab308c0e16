package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	authMiddleware "sekolahku_backend/internals/middlewares/auth"
	routeDetails "sekolahku_backend/internals/route/details"
)

var startTime = time.Now()

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthPublicRoutes(app.Group("/api/auth"), db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("ini"), constants.AdminOnly...),
	)

	// ===================== STAFF =====================
	log.Println("[INFO] Setting up STAFF group (Auth + RoleCheck)...")
	staff := app.Group("/api/s",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.OnlyRoles(constants.RoleErrorStaff("ini"), constants.StaffAndAbove...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Akademik routes...")
	routeDetails.AkademikAdminRoutes(admin, db)
	routeDetails.AkademikStaffRoutes(staff, db)

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinanceAdminRoutes(admin, db)
	routeDetails.FinanceStaffRoutes(staff, db)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserAdminRoutes(admin, db)
}
