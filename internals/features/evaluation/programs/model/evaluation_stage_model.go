// internals/features/evaluation/programs/model/evaluation_stage_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// NOTE:
// - stage_ordinal: 1 (desk review) atau 2 (panel); unik per program,
//   maksimal dua tahap per program (dijaga controller + unique index).
type EvaluationStageModel struct {
	StageID        uuid.UUID `gorm:"column:stage_id;type:uuid;default:gen_random_uuid();primaryKey" json:"stage_id"`
	StageProgramID uuid.UUID `gorm:"column:stage_program_id;type:uuid;not null;index;uniqueIndex:uq_stage_ordinal_per_program" json:"stage_program_id"`
	StageOrdinal   int       `gorm:"column:stage_ordinal;not null;uniqueIndex:uq_stage_ordinal_per_program" json:"stage_ordinal"`

	StageStartedAt *time.Time `gorm:"column:stage_started_at" json:"stage_started_at,omitempty"`
	StageEndedAt   *time.Time `gorm:"column:stage_ended_at" json:"stage_ended_at,omitempty"`

	StageCreatedAt time.Time `gorm:"column:stage_created_at;not null;autoCreateTime" json:"stage_created_at"`
	StageUpdatedAt time.Time `gorm:"column:stage_updated_at;not null;autoUpdateTime" json:"stage_updated_at"`
}

func (EvaluationStageModel) TableName() string { return "evaluation_stages" }
