// internals/features/evaluation/programs/dto/program_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "hibahku_backend/internals/features/evaluation/programs/model"
)

type CreateProgramRequest struct {
	Name     string `json:"program_name" form:"program_name" validate:"required,min=3,max=160"`
	Year     int    `json:"program_year" form:"program_year" validate:"required,gte=2000,lte=2100"`
	IsActive *bool  `json:"program_is_active" form:"program_is_active"`
}

func (r *CreateProgramRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r CreateProgramRequest) ToModel() m.ProgramModel {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return m.ProgramModel{
		ProgramName:     r.Name,
		ProgramYear:     r.Year,
		ProgramIsActive: active,
	}
}

type CreateStageRequest struct {
	// ProgramID diambil dari path oleh controller.
	ProgramID uuid.UUID  `json:"-"`
	Ordinal   int        `json:"stage_ordinal" form:"stage_ordinal" validate:"required,oneof=1 2"`
	StartedAt *time.Time `json:"stage_started_at" form:"stage_started_at"`
	EndedAt   *time.Time `json:"stage_ended_at" form:"stage_ended_at"`
}

func (r CreateStageRequest) ToModel() m.EvaluationStageModel {
	return m.EvaluationStageModel{
		StageProgramID: r.ProgramID,
		StageOrdinal:   r.Ordinal,
		StageStartedAt: r.StartedAt,
		StageEndedAt:   r.EndedAt,
	}
}

type ProgramResponse struct {
	ProgramID       uuid.UUID `json:"program_id"`
	ProgramName     string    `json:"program_name"`
	ProgramYear     int       `json:"program_year"`
	ProgramIsActive bool      `json:"program_is_active"`
	ProgramCreatedAt time.Time `json:"program_created_at"`
}

func FromProgramModel(p m.ProgramModel) ProgramResponse {
	return ProgramResponse{
		ProgramID:        p.ProgramID,
		ProgramName:      p.ProgramName,
		ProgramYear:      p.ProgramYear,
		ProgramIsActive:  p.ProgramIsActive,
		ProgramCreatedAt: p.ProgramCreatedAt,
	}
}

func FromProgramModels(rows []m.ProgramModel) []ProgramResponse {
	out := make([]ProgramResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, FromProgramModel(p))
	}
	return out
}
