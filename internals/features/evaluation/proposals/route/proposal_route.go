// internals/features/evaluation/proposals/route/proposal_route.go
package router

import (
	proposalController "hibahku_backend/internals/features/evaluation/proposals/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

/*
Team routes: draft + submit + detail
Mount contoh: ProposalTeamRoutes(app.Group("/api/u"), db)
*/
func ProposalTeamRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &proposalController.ProposalController{DB: db}
	proposals := r.Group("/proposals")
	proposals.Post("/", ctl.CreateProposal)          // POST /u/proposals
	proposals.Get("/", ctl.ListMyProposals)          // GET  /u/proposals?status=
	proposals.Get("/:id", ctl.GetProposal)           // GET  /u/proposals/:id
	proposals.Post("/:id/submit", ctl.SubmitProposal) // POST /u/proposals/:id/submit
}

/*
Admin routes: mentor flow (7→8→9), dipicu kolaborator eksternal.
*/
func ProposalAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &proposalController.ProposalController{DB: db}
	proposals := r.Group("/proposals")
	proposals.Get("/:id", ctl.GetProposal)                       // GET  /a/proposals/:id
	proposals.Post("/:id/mentor/propose", ctl.ProposeMentor)     // POST /a/proposals/:id/mentor/propose
	proposals.Post("/:id/mentor/approve", ctl.ApproveMentor)     // POST /a/proposals/:id/mentor/approve
}
