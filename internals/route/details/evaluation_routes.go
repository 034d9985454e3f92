// file: internals/route/details/evaluation_routes.go
package details

import (
	"hibahku_backend/internals/constants"
	assignmentRoute "hibahku_backend/internals/features/evaluation/assignments/route"
	criterionRoute "hibahku_backend/internals/features/evaluation/criteria/route"
	evaluatorRoute "hibahku_backend/internals/features/evaluation/evaluators/route"
	finalizationRoute "hibahku_backend/internals/features/evaluation/finalization/route"
	programRoute "hibahku_backend/internals/features/evaluation/programs/route"
	proposalRoute "hibahku_backend/internals/features/evaluation/proposals/route"
	scoreRoute "hibahku_backend/internals/features/evaluation/scores/route"
	authMiddleware "hibahku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// EvaluationAdminRoutes: seluruh fitur admin panitia hibah.
// Group sudah melewati AuthMiddleware + OnlyRoles(admin) di index.go.
func EvaluationAdminRoutes(r fiber.Router, db *gorm.DB) {
	programRoute.ProgramAdminRoutes(r, db)
	criterionRoute.CriterionAdminRoutes(r, db)
	evaluatorRoute.EvaluatorAdminRoutes(r, db)
	assignmentRoute.DistributionAdminRoutes(r, db)
	scoreRoute.RecapAdminRoutes(r, db)
	finalizationRoute.FinalizationAdminRoutes(r, db)
	proposalRoute.ProposalAdminRoutes(r, db)
}

// EvaluationUserRoutes: tim pengusul + evaluator; pembagian role per sub-group.
func EvaluationUserRoutes(r fiber.Router, db *gorm.DB) {
	team := r.Group("",
		authMiddleware.OnlyRoles(
			constants.RoleErrorTeam("pengajuan proposal"),
			constants.RoleTeam,
		),
	)
	proposalRoute.ProposalTeamRoutes(team, db)

	evaluator := r.Group("",
		authMiddleware.OnlyRoles(
			constants.RoleErrorEvaluator("penilaian proposal"),
			constants.EvaluatorRoles...,
		),
	)
	scoreRoute.ScoreEvaluatorRoutes(evaluator, db)
}
