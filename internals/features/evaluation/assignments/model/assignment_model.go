// internals/features/evaluation/assignments/model/assignment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Status distribusi (assignment). "superseded" hanya lahir dari reassign:
// record lama tidak pernah dihapus, cuma ditandai terminal.
const (
	AssignmentStatusPending     = "pending"
	AssignmentStatusApproved    = "approved"
	AssignmentStatusRejected    = "rejected"
	AssignmentStatusDraftScored = "draft_scored"
	AssignmentStatusCompleted   = "completed"
	AssignmentStatusSuperseded  = "superseded"
)

// InactiveStatuses: status yang TIDAK dihitung sebagai penugasan aktif.
// Maksimal satu assignment aktif per (proposal, evaluator), ditegakkan DB lewat
// migrations/0001_init.sql:
//
//	CREATE UNIQUE INDEX uq_assignment_active_pair
//	    ON assignments (assignment_proposal_id, assignment_evaluator_id)
//	    WHERE assignment_status NOT IN ('rejected', 'superseded');
//
// Index parsial tidak bisa diekspresikan via tag GORM.
var InactiveStatuses = []string{AssignmentStatusRejected, AssignmentStatusSuperseded}

type AssignmentModel struct {
	AssignmentID          uuid.UUID `gorm:"column:assignment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"assignment_id"`
	AssignmentProposalID  uuid.UUID `gorm:"column:assignment_proposal_id;type:uuid;not null;index" json:"assignment_proposal_id"`
	AssignmentEvaluatorID uuid.UUID `gorm:"column:assignment_evaluator_id;type:uuid;not null;index" json:"assignment_evaluator_id"`
	AssignmentStageID     uuid.UUID `gorm:"column:assignment_stage_id;type:uuid;not null;index" json:"assignment_stage_id"`

	AssignmentRole   string `gorm:"column:assignment_role;type:varchar(16);not null" json:"assignment_role"`
	AssignmentStatus string `gorm:"column:assignment_status;type:varchar(16);not null;default:pending;index" json:"assignment_status"`

	AssignmentAssignedBy  uuid.UUID  `gorm:"column:assignment_assigned_by;type:uuid;not null" json:"assignment_assigned_by"`
	AssignmentAssignedAt  time.Time  `gorm:"column:assignment_assigned_at;not null;autoCreateTime" json:"assignment_assigned_at"`
	AssignmentRespondedAt *time.Time `gorm:"column:assignment_responded_at" json:"assignment_responded_at,omitempty"`
	AssignmentNote        *string    `gorm:"column:assignment_note;type:text" json:"assignment_note,omitempty"`

	AssignmentCreatedAt time.Time `gorm:"column:assignment_created_at;not null;autoCreateTime" json:"assignment_created_at"`
	AssignmentUpdatedAt time.Time `gorm:"column:assignment_updated_at;not null;autoUpdateTime" json:"assignment_updated_at"`
}

func (AssignmentModel) TableName() string { return "assignments" }

func ActiveStatus(status string) bool {
	for _, s := range InactiveStatuses {
		if s == status {
			return false
		}
	}
	return true
}
