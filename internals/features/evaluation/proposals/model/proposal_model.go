// internals/features/evaluation/proposals/model/proposal_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NOTE:
// - proposal_status: kontrak wire berupa integer (lihat status.go), jangan diubah
//   jadi string — klien lama membaca angka.
// - proposal_file_url hanya referensi; penyimpanan file ada di layanan lain.
type ProposalModel struct {
	ProposalID        uuid.UUID `gorm:"column:proposal_id;type:uuid;default:gen_random_uuid();primaryKey" json:"proposal_id"`
	ProposalProgramID uuid.UUID `gorm:"column:proposal_program_id;type:uuid;not null;index" json:"proposal_program_id"`
	ProposalTeamID    uuid.UUID `gorm:"column:proposal_team_id;type:uuid;not null;index" json:"proposal_team_id"`

	ProposalTitle           string  `gorm:"column:proposal_title;type:varchar(200);not null" json:"proposal_title"`
	ProposalCategory        string  `gorm:"column:proposal_category;type:varchar(80);not null" json:"proposal_category"`
	ProposalRequestedAmount int64   `gorm:"column:proposal_requested_amount;not null;default:0" json:"proposal_requested_amount"`
	ProposalFileURL         *string `gorm:"column:proposal_file_url;type:text" json:"proposal_file_url,omitempty"`

	ProposalStatus      ProposalStatus `gorm:"column:proposal_status;not null;default:0;index" json:"proposal_status"`
	ProposalSubmittedAt *time.Time     `gorm:"column:proposal_submitted_at" json:"proposal_submitted_at,omitempty"`

	ProposalCreatedAt time.Time      `gorm:"column:proposal_created_at;not null;autoCreateTime" json:"proposal_created_at"`
	ProposalUpdatedAt time.Time      `gorm:"column:proposal_updated_at;not null;autoUpdateTime" json:"proposal_updated_at"`
	ProposalDeletedAt gorm.DeletedAt `gorm:"column:proposal_deleted_at;index" json:"proposal_deleted_at,omitempty"`
}

func (ProposalModel) TableName() string { return "proposals" }
