// internals/features/evaluation/evaluators/dto/evaluator_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	m "hibahku_backend/internals/features/evaluation/evaluators/model"
)

type CreateEvaluatorRequest struct {
	UserID uuid.UUID `json:"evaluator_user_id" form:"evaluator_user_id" validate:"required"`
	Name   string    `json:"evaluator_name" form:"evaluator_name" validate:"required,min=2,max=120"`
	Role   string    `json:"evaluator_role" form:"evaluator_role" validate:"required,oneof=reviewer juri"`
}

func (r *CreateEvaluatorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

func (r CreateEvaluatorRequest) ToModel() m.EvaluatorModel {
	return m.EvaluatorModel{
		EvaluatorUserID:   r.UserID,
		EvaluatorName:     r.Name,
		EvaluatorRole:     r.Role,
		EvaluatorIsActive: true,
	}
}

// EvaluatorWithLoad: evaluator + jumlah penugasan aktif (untuk layar distribusi).
type EvaluatorWithLoad struct {
	EvaluatorID       uuid.UUID `json:"evaluator_id"`
	EvaluatorName     string    `json:"evaluator_name"`
	EvaluatorRole     string    `json:"evaluator_role"`
	EvaluatorIsActive bool      `json:"evaluator_is_active"`
	ActiveAssignments int       `json:"active_assignments"`
}
