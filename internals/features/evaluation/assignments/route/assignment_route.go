// internals/features/evaluation/assignments/route/assignment_route.go
package router

import (
	assignmentController "hibahku_backend/internals/features/evaluation/assignments/controller"
	"hibahku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
Admin routes: distribusi otomatis/manual, reassign, riwayat.
Mount contoh: DistributionAdminRoutes(app.Group("/api/a"), db)
*/
func DistributionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &assignmentController.DistributionController{DB: db}
	d := r.Group("/distribution")

	d.Get("/proposals", ctl.ListEligibleProposals) // GET /a/distribution/proposals
	d.Get("/preview", ctl.PreviewAutoDistribution) // GET /a/distribution/preview
	d.Get("/history", ctl.ListDistributionHistory) // GET /a/distribution/history

	// mutasi batch dibatasi rate limiter khusus
	d.Post("/auto", middlewares.BatchMutationRateLimiter(), ctl.ExecuteAutoDistribution)       // POST /a/distribution/auto
	d.Post("/manual", middlewares.BatchMutationRateLimiter(), ctl.ExecuteManualDistribution)   // POST /a/distribution/manual
	d.Post("/reassign", middlewares.BatchMutationRateLimiter(), ctl.ReassignEvaluator)         // POST /a/distribution/reassign
}
