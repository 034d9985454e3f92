// internals/features/evaluation/criteria/dto/criterion_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	m "hibahku_backend/internals/features/evaluation/criteria/model"
)

type CreateCriterionRequest struct {
	// StageID diambil dari path oleh controller.
	StageID  uuid.UUID `json:"-"`
	Name     string    `json:"criterion_name" form:"criterion_name" validate:"required,min=2,max=160"`
	Weight   int       `json:"criterion_weight" form:"criterion_weight" validate:"required,gte=1,lte=100"`
	Position int       `json:"criterion_position" form:"criterion_position" validate:"required,gte=1"`
	IsActive *bool     `json:"criterion_is_active" form:"criterion_is_active"`
}

func (r *CreateCriterionRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r CreateCriterionRequest) ToModel() m.CriterionModel {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return m.CriterionModel{
		CriterionStageID:  r.StageID,
		CriterionName:     r.Name,
		CriterionWeight:   r.Weight,
		CriterionPosition: r.Position,
		CriterionIsActive: active,
	}
}

type UpdateCriterionRequest struct {
	Name     *string `json:"criterion_name" form:"criterion_name" validate:"omitempty,min=2,max=160"`
	Weight   *int    `json:"criterion_weight" form:"criterion_weight" validate:"omitempty,gte=1,lte=100"`
	Position *int    `json:"criterion_position" form:"criterion_position" validate:"omitempty,gte=1"`
	IsActive *bool   `json:"criterion_is_active" form:"criterion_is_active"`
}

func (r UpdateCriterionRequest) Apply(mm *m.CriterionModel) {
	if r.Name != nil {
		mm.CriterionName = strings.TrimSpace(*r.Name)
	}
	if r.Weight != nil {
		mm.CriterionWeight = *r.Weight
	}
	if r.Position != nil {
		mm.CriterionPosition = *r.Position
	}
	if r.IsActive != nil {
		mm.CriterionIsActive = *r.IsActive
	}
}
