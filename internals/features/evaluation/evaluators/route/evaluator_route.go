// internals/features/evaluation/evaluators/route/evaluator_route.go
package router

import (
	evaluatorController "hibahku_backend/internals/features/evaluation/evaluators/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func EvaluatorAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &evaluatorController.EvaluatorController{DB: db}
	evaluators := r.Group("/evaluators")
	evaluators.Post("/", ctl.CreateEvaluator)                    // POST  /a/evaluators
	evaluators.Patch("/:id/deactivate", ctl.DeactivateEvaluator) // PATCH /a/evaluators/:id/deactivate

	// daftar calon penerima penugasan, satu layar dengan distribusi
	r.Get("/distribution/assignees", ctl.ListEligibleAssignees) // GET /a/distribution/assignees
}
