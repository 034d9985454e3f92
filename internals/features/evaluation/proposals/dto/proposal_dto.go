// internals/features/evaluation/proposals/dto/proposal_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "hibahku_backend/internals/features/evaluation/proposals/model"
)

/* =========================================================
   CREATE (draft)
   ========================================================= */

type CreateProposalRequest struct {
	ProgramID uuid.UUID `json:"proposal_program_id" form:"proposal_program_id" validate:"required"`
	// TeamID dipaksa dari token oleh controller, bukan dari payload.
	TeamID uuid.UUID `json:"-"`

	Title           string  `json:"proposal_title" form:"proposal_title" validate:"required,min=3,max=200"`
	Category        string  `json:"proposal_category" form:"proposal_category" validate:"required,min=2,max=80"`
	RequestedAmount int64   `json:"proposal_requested_amount" form:"proposal_requested_amount" validate:"gte=0"`
	FileURL         *string `json:"proposal_file_url" form:"proposal_file_url"`
}

func (r *CreateProposalRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	if r.FileURL != nil {
		v := strings.TrimSpace(*r.FileURL)
		if v == "" {
			r.FileURL = nil
		} else {
			r.FileURL = &v
		}
	}
}

func (r CreateProposalRequest) ToModel() m.ProposalModel {
	return m.ProposalModel{
		ProposalProgramID:       r.ProgramID,
		ProposalTeamID:          r.TeamID,
		ProposalTitle:           r.Title,
		ProposalCategory:        r.Category,
		ProposalRequestedAmount: r.RequestedAmount,
		ProposalFileURL:         r.FileURL,
		ProposalStatus:          m.StatusDraft,
	}
}

/* =========================================================
   RESPONSE
   ========================================================= */

type ProposalResponse struct {
	ProposalID        uuid.UUID `json:"proposal_id"`
	ProposalProgramID uuid.UUID `json:"proposal_program_id"`
	ProposalTeamID    uuid.UUID `json:"proposal_team_id"`

	ProposalTitle           string  `json:"proposal_title"`
	ProposalCategory        string  `json:"proposal_category"`
	ProposalRequestedAmount int64   `json:"proposal_requested_amount"`
	ProposalFileURL         *string `json:"proposal_file_url,omitempty"`

	ProposalStatus      int        `json:"proposal_status"`
	ProposalStatusLabel string     `json:"proposal_status_label"`
	ProposalSubmittedAt *time.Time `json:"proposal_submitted_at,omitempty"`
	ProposalCreatedAt   time.Time  `json:"proposal_created_at"`
	ProposalUpdatedAt   time.Time  `json:"proposal_updated_at"`
}

func FromProposalModel(p m.ProposalModel) ProposalResponse {
	return ProposalResponse{
		ProposalID:              p.ProposalID,
		ProposalProgramID:       p.ProposalProgramID,
		ProposalTeamID:          p.ProposalTeamID,
		ProposalTitle:           p.ProposalTitle,
		ProposalCategory:        p.ProposalCategory,
		ProposalRequestedAmount: p.ProposalRequestedAmount,
		ProposalFileURL:         p.ProposalFileURL,
		ProposalStatus:          int(p.ProposalStatus),
		ProposalStatusLabel:     p.ProposalStatus.Label(),
		ProposalSubmittedAt:     p.ProposalSubmittedAt,
		ProposalCreatedAt:       p.ProposalCreatedAt,
		ProposalUpdatedAt:       p.ProposalUpdatedAt,
	}
}

func FromProposalModels(rows []m.ProposalModel) []ProposalResponse {
	out := make([]ProposalResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, FromProposalModel(p))
	}
	return out
}
