// internals/features/evaluation/programs/model/program_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgramModel struct {
	ProgramID   uuid.UUID `gorm:"column:program_id;type:uuid;default:gen_random_uuid();primaryKey" json:"program_id"`
	ProgramName string    `gorm:"column:program_name;type:varchar(160);not null" json:"program_name"`
	ProgramYear int       `gorm:"column:program_year;not null" json:"program_year"`

	ProgramIsActive  bool           `gorm:"column:program_is_active;not null;default:true" json:"program_is_active"`
	ProgramCreatedAt time.Time      `gorm:"column:program_created_at;not null;autoCreateTime" json:"program_created_at"`
	ProgramUpdatedAt time.Time      `gorm:"column:program_updated_at;not null;autoUpdateTime" json:"program_updated_at"`
	ProgramDeletedAt gorm.DeletedAt `gorm:"column:program_deleted_at;index" json:"program_deleted_at,omitempty"`
}

func (ProgramModel) TableName() string { return "programs" }
