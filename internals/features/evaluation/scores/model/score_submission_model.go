// internals/features/evaluation/scores/model/score_submission_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// NOTE:
// - submission_assignment_id UNIQUE: satu baris per assignment (draft atau
//   final); submit final ganda ditolak oleh constraint (at-most-once),
//   bukan di-overwrite. Draft boleh direvisi, final tidak.
// - submission_total: numeric(6,2), sudah dibulatkan 2 desimal oleh aggregator.
type ScoreSubmissionModel struct {
	SubmissionID           uuid.UUID `gorm:"column:submission_id;type:uuid;default:gen_random_uuid();primaryKey" json:"submission_id"`
	SubmissionAssignmentID uuid.UUID `gorm:"column:submission_assignment_id;type:uuid;not null;uniqueIndex:uq_submission_per_assignment" json:"submission_assignment_id"`

	SubmissionTotal       float64   `gorm:"column:submission_total;type:numeric(6,2);not null" json:"submission_total"`
	SubmissionIsDraft     bool      `gorm:"column:submission_is_draft;not null;default:false" json:"submission_is_draft"`
	SubmissionSubmittedAt time.Time `gorm:"column:submission_submitted_at;not null;autoCreateTime" json:"submission_submitted_at"`

	SubmissionCreatedAt time.Time `gorm:"column:submission_created_at;not null;autoCreateTime" json:"submission_created_at"`

	Details []ScoreSubmissionDetailModel `gorm:"foreignKey:DetailSubmissionID;references:SubmissionID" json:"details,omitempty"`
}

func (ScoreSubmissionModel) TableName() string { return "score_submissions" }

type ScoreSubmissionDetailModel struct {
	DetailID           uuid.UUID `gorm:"column:detail_id;type:uuid;default:gen_random_uuid();primaryKey" json:"detail_id"`
	DetailSubmissionID uuid.UUID `gorm:"column:detail_submission_id;type:uuid;not null;index" json:"detail_submission_id"`
	DetailCriterionID  uuid.UUID `gorm:"column:detail_criterion_id;type:uuid;not null" json:"detail_criterion_id"`

	DetailRawScore int     `gorm:"column:detail_raw_score;not null" json:"detail_raw_score"`
	DetailNote     *string `gorm:"column:detail_note;type:text" json:"detail_note,omitempty"`
}

func (ScoreSubmissionDetailModel) TableName() string { return "score_submission_details" }
