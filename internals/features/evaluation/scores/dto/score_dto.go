// internals/features/evaluation/scores/dto/score_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"
)

type RespondAssignmentRequest struct {
	Action string  `json:"action" form:"action" validate:"required,oneof=approve reject"`
	Note   *string `json:"note" form:"note" validate:"omitempty,max=2000"`
}

func (r *RespondAssignmentRequest) Normalize() {
	r.Action = strings.ToLower(strings.TrimSpace(r.Action))
	if r.Note != nil {
		v := strings.TrimSpace(*r.Note)
		if v == "" {
			r.Note = nil
		} else {
			r.Note = &v
		}
	}
}

type ScoreItemRequest struct {
	CriterionID uuid.UUID `json:"criterion_id" form:"criterion_id" validate:"required"`
	RawScore    int       `json:"raw_score" form:"raw_score" validate:"gte=0,lte=100"`
	Note        *string   `json:"note" form:"note" validate:"omitempty,max=2000"`
}

type SubmitScoreRequest struct {
	Items []ScoreItemRequest `json:"items" form:"items" validate:"required,min=1,dive"`
	// Draft=true: simpan sementara (assignment → draft_scored), belum final.
	Draft bool `json:"draft" form:"draft"`
}
