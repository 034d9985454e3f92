// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"hibahku_backend/internals/constants"
	authMiddleware "hibahku_backend/internals/middlewares/auth"
	routeDetails "hibahku_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== BASE (tanpa auth) =====================
	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthMiddleware(),
		authMiddleware.OnlyRoles(
			constants.RoleErrorAdmin("pengelolaan hibah"),
			constants.AdminOnly...,
		),
	)
	routeDetails.EvaluationAdminRoutes(admin, db)

	// ===================== PRIVATE (USER) =====================
	// Tim pengusul + evaluator; pembagian per-role dilakukan per sub-route.
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMiddleware.AuthMiddleware())
	routeDetails.EvaluationUserRoutes(private, db)
}
