// internals/features/evaluation/finalization/route/finalization_route.go
package router

import (
	finalizationController "hibahku_backend/internals/features/evaluation/finalization/controller"
	"hibahku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
Admin routes: finalisasi batch (irreversible) + riwayat record.
Mount contoh: FinalizationAdminRoutes(app.Group("/api/a"), db)
*/
func FinalizationAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &finalizationController.FinalizationController{DB: db}
	f := r.Group("/finalization")

	f.Get("/records", ctl.ListRecords) // GET /a/finalization/records

	// finalisasi tidak bisa dibatalkan, mutasi batch dibatasi rate limiter khusus
	f.Post("/", middlewares.BatchMutationRateLimiter(), ctl.FinalizeBatch) // POST /a/finalization
}
