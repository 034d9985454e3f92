// internals/features/evaluation/finalization/model/finalization_record_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NOTE:
// - append-only: tidak ada update/delete; satu record per BATCH finalisasi
//   (bukan per proposal), menyimpan himpunan id pass/fail untuk audit.
type FinalizationRecordModel struct {
	RecordID           uuid.UUID `gorm:"column:record_id;type:uuid;default:gen_random_uuid();primaryKey" json:"record_id"`
	RecordProgramID    uuid.UUID `gorm:"column:record_program_id;type:uuid;not null;index" json:"record_program_id"`
	RecordStageOrdinal int       `gorm:"column:record_stage_ordinal;not null" json:"record_stage_ordinal"`

	RecordPassedIDs datatypes.JSON `gorm:"column:record_passed_ids;type:jsonb;not null" json:"record_passed_ids"`
	RecordFailedIDs datatypes.JSON `gorm:"column:record_failed_ids;type:jsonb;not null" json:"record_failed_ids"`

	RecordActor     uuid.UUID `gorm:"column:record_actor;type:uuid;not null" json:"record_actor"`
	RecordCreatedAt time.Time `gorm:"column:record_created_at;not null;autoCreateTime" json:"record_created_at"`
}

func (FinalizationRecordModel) TableName() string { return "finalization_records" }
