// internals/features/evaluation/assignments/dto/assignment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	m "hibahku_backend/internals/features/evaluation/assignments/model"
	"hibahku_backend/internals/features/evaluation/assignments/service"
)

/* =========================================================
   REQUESTS
   ========================================================= */

type AutoDistributionRequest struct {
	ProgramID uuid.UUID `json:"program_id" form:"program_id" validate:"required"`
	Stage     int       `json:"stage" form:"stage" validate:"required,oneof=1 2"`
}

type ManualDistributionRequest struct {
	ProgramID   uuid.UUID   `json:"program_id" form:"program_id" validate:"required"`
	Stage       int         `json:"stage" form:"stage" validate:"required,oneof=1 2"`
	EvaluatorID uuid.UUID   `json:"evaluator_id" form:"evaluator_id" validate:"required"`
	ProposalIDs []uuid.UUID `json:"proposal_ids" form:"proposal_ids" validate:"required,min=1,dive,required"`
}

type ReassignRequest struct {
	ProgramID      uuid.UUID `json:"program_id" form:"program_id" validate:"required"`
	Stage          int       `json:"stage" form:"stage" validate:"required,oneof=1 2"`
	AssignmentID   uuid.UUID `json:"assignment_id" form:"assignment_id" validate:"required"`
	NewEvaluatorID uuid.UUID `json:"new_evaluator_id" form:"new_evaluator_id" validate:"required"`
}

/* =========================================================
   RESPONSES
   ========================================================= */

// PreviewResponse: rencana distribusi read-only (tidak ada mutasi).
type PreviewResponse struct {
	Stage          int                         `json:"stage"`
	TotalProposals int                         `json:"total_proposals"`
	TotalEvaluator int                         `json:"total_evaluator"`
	TotalPlanned   int                         `json:"total_planned"`
	Plan           []service.PlannedAssignment `json:"plan"`
	PerEvaluator   map[string][]uuid.UUID      `json:"per_evaluator"`
}

type DistributionResultResponse struct {
	TotalAssigned int                `json:"total_assigned"`
	TotalFailed   int                `json:"total_failed"`
	Failed        []FailedProposalID `json:"failed,omitempty"`
}

type FailedProposalID struct {
	ProposalID uuid.UUID `json:"proposal_id"`
	Reason     string    `json:"reason"`
}

type AssignmentResponse struct {
	AssignmentID          uuid.UUID  `json:"assignment_id"`
	AssignmentProposalID  uuid.UUID  `json:"assignment_proposal_id"`
	AssignmentEvaluatorID uuid.UUID  `json:"assignment_evaluator_id"`
	AssignmentStageID     uuid.UUID  `json:"assignment_stage_id"`
	AssignmentRole        string     `json:"assignment_role"`
	AssignmentStatus      string     `json:"assignment_status"`
	AssignmentAssignedBy  uuid.UUID  `json:"assignment_assigned_by"`
	AssignmentAssignedAt  time.Time  `json:"assignment_assigned_at"`
	AssignmentRespondedAt *time.Time `json:"assignment_responded_at,omitempty"`
	AssignmentNote        *string    `json:"assignment_note,omitempty"`
}

func FromAssignmentModel(a m.AssignmentModel) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID:          a.AssignmentID,
		AssignmentProposalID:  a.AssignmentProposalID,
		AssignmentEvaluatorID: a.AssignmentEvaluatorID,
		AssignmentStageID:     a.AssignmentStageID,
		AssignmentRole:        a.AssignmentRole,
		AssignmentStatus:      a.AssignmentStatus,
		AssignmentAssignedBy:  a.AssignmentAssignedBy,
		AssignmentAssignedAt:  a.AssignmentAssignedAt,
		AssignmentRespondedAt: a.AssignmentRespondedAt,
		AssignmentNote:        a.AssignmentNote,
	}
}

func FromAssignmentModels(rows []m.AssignmentModel) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, FromAssignmentModel(a))
	}
	return out
}
