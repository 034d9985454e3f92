// internals/features/evaluation/finalization/dto/finalization_dto.go
package dto

import (
	"github.com/google/uuid"

	"hibahku_backend/internals/features/evaluation/finalization/service"
)

type FinalizeBatchRequest struct {
	ProgramID uuid.UUID   `json:"program_id" form:"program_id" validate:"required"`
	Stage     int         `json:"stage" form:"stage" validate:"required,oneof=1 2"`
	Pass      []uuid.UUID `json:"pass" form:"pass"`
	Fail      []uuid.UUID `json:"fail" form:"fail"`
}

type FinalizeBatchResponse struct {
	RecordID    uuid.UUID `json:"record_id"`
	TotalPassed int       `json:"total_passed"`
	TotalFailed int       `json:"total_failed"`
}

// IneligibleDetail dipakai ulang dari service agar alasan per-id konsisten.
type IneligibleDetail = service.IneligibleItem
