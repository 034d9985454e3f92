// internals/features/evaluation/scores/route/score_route.go
package router

import (
	scoreController "hibahku_backend/internals/features/evaluation/scores/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
Evaluator routes: respon penugasan + penilaian.
Mount contoh: ScoreEvaluatorRoutes(app.Group("/api/u"), db)
*/
func ScoreEvaluatorRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &scoreController.ScoreController{DB: db}
	assignments := r.Group("/assignments")
	assignments.Get("/", ctl.ListMyAssignments)            // GET  /u/assignments?status=
	assignments.Post("/:id/respond", ctl.RespondAssignment) // POST /u/assignments/:id/respond
	assignments.Post("/:id/scores", ctl.SubmitScore)        // POST /u/assignments/:id/scores
}

/*
Admin routes: rekap penilaian per proposal.
*/
func RecapAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &scoreController.ScoreController{DB: db}
	r.Get("/recap", ctl.GetRecap) // GET /a/recap?program_id=&stage=&proposal_id=
}
