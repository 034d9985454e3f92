// internals/features/evaluation/criteria/model/criterion_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// NOTE:
// - criterion_weight: 1..100; jumlah bobot aktif per tahap DIHARAPKAN ≈100
//   tapi tidak dipaksa mesin (keputusan data, bukan invariant).
// - criterion_position unik per tahap.
type CriterionModel struct {
	CriterionID      uuid.UUID `gorm:"column:criterion_id;type:uuid;default:gen_random_uuid();primaryKey" json:"criterion_id"`
	CriterionStageID uuid.UUID `gorm:"column:criterion_stage_id;type:uuid;not null;index;uniqueIndex:uq_criterion_position_per_stage" json:"criterion_stage_id"`

	CriterionName     string `gorm:"column:criterion_name;type:varchar(160);not null" json:"criterion_name"`
	CriterionWeight   int    `gorm:"column:criterion_weight;not null" json:"criterion_weight"`
	CriterionPosition int    `gorm:"column:criterion_position;not null;uniqueIndex:uq_criterion_position_per_stage" json:"criterion_position"`

	CriterionIsActive  bool      `gorm:"column:criterion_is_active;not null;default:true" json:"criterion_is_active"`
	CriterionCreatedAt time.Time `gorm:"column:criterion_created_at;not null;autoCreateTime" json:"criterion_created_at"`
	CriterionUpdatedAt time.Time `gorm:"column:criterion_updated_at;not null;autoUpdateTime" json:"criterion_updated_at"`
}

func (CriterionModel) TableName() string { return "criteria" }
