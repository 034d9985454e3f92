// internals/features/evaluation/programs/route/program_route.go
package router

import (
	programController "hibahku_backend/internals/features/evaluation/programs/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ProgramAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &programController.ProgramController{DB: db}
	programs := r.Group("/programs")
	programs.Post("/", ctl.CreateProgram)          // POST /a/programs
	programs.Get("/", ctl.ListPrograms)            // GET  /a/programs
	programs.Post("/:id/stages", ctl.CreateStage)  // POST /a/programs/:id/stages
	programs.Get("/:id/stages", ctl.ListStages)    // GET  /a/programs/:id/stages
}
