// internals/features/evaluation/criteria/route/criterion_route.go
package router

import (
	criterionController "hibahku_backend/internals/features/evaluation/criteria/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CriterionAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &criterionController.CriterionController{DB: db}
	r.Post("/stages/:stageId/criteria", ctl.CreateCriterion) // POST /a/stages/:stageId/criteria
	r.Get("/stages/:stageId/criteria", ctl.ListCriteria)     // GET  /a/stages/:stageId/criteria
	r.Put("/criteria/:id", ctl.UpdateCriterion)              // PUT  /a/criteria/:id
}
