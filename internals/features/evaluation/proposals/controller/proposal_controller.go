// internals/features/evaluation/proposals/controller/proposal_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	proposalDTO "hibahku_backend/internals/features/evaluation/proposals/dto"
	proposalModel "hibahku_backend/internals/features/evaluation/proposals/model"
	helper "hibahku_backend/internals/helpers"
	helperAuth "hibahku_backend/internals/helpers/auth"
)

type ProposalController struct {
	DB *gorm.DB
}

var validate = validator.New()

// CREATE (draft)
// POST /u/proposals
func (h *ProposalController) CreateProposal(c *fiber.Ctx) error {
	teamID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req proposalDTO.CreateProposalRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	req.TeamID = teamID

	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat proposal")
	}

	return helper.JsonCreated(c, "Proposal draft berhasil dibuat", proposalDTO.FromProposalModel(m))
}

// SUBMIT (0 → 1)
// POST /u/proposals/:id/submit
// File + field wajib harus lengkap; re-submit = conflict.
func (h *ProposalController) SubmitProposal(c *fiber.Ctx) error {
	teamID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var m proposalModel.ProposalModel
		if err := tx.First(&m, "proposal_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Proposal tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
		}
		if m.ProposalTeamID != teamID {
			return fiber.NewError(fiber.StatusForbidden, "Tidak boleh mengajukan proposal milik tim lain")
		}

		if !proposalModel.CanTransition(m.ProposalStatus, proposalModel.StatusSubmitted) {
			return fiber.NewError(fiber.StatusConflict, "Proposal sudah diajukan atau tidak dalam status draft")
		}

		// kelengkapan wajib sebelum submit
		missing := []string{}
		if strings.TrimSpace(m.ProposalTitle) == "" {
			missing = append(missing, "proposal_title")
		}
		if strings.TrimSpace(m.ProposalCategory) == "" {
			missing = append(missing, "proposal_category")
		}
		if m.ProposalFileURL == nil || strings.TrimSpace(*m.ProposalFileURL) == "" {
			missing = append(missing, "proposal_file_url")
		}
		if len(missing) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Kelengkapan belum terpenuhi: "+strings.Join(missing, ", "))
		}

		now := time.Now()
		res := tx.Model(&proposalModel.ProposalModel{}).
			Where("proposal_id = ? AND proposal_status = ?", m.ProposalID, proposalModel.StatusDraft).
			Updates(map[string]interface{}{
				"proposal_status":       proposalModel.StatusSubmitted,
				"proposal_submitted_at": now,
			})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengajukan proposal")
		}
		if res.RowsAffected == 0 {
			// status berubah di tengah jalan (submit ganda)
			return fiber.NewError(fiber.StatusConflict, "Proposal sudah diajukan")
		}

		m.ProposalStatus = proposalModel.StatusSubmitted
		m.ProposalSubmittedAt = &now
		c.Locals("submitted_proposal", m)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	m := c.Locals("submitted_proposal").(proposalModel.ProposalModel)
	return helper.JsonUpdated(c, "Proposal berhasil diajukan", proposalDTO.FromProposalModel(m))
}

// GET BY ID
// GET /u/proposals/:id
func (h *ProposalController) GetProposal(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var m proposalModel.ProposalModel
	if err := helper.WithReadRetry(c.UserContext(), func() error {
		return h.DB.WithContext(c.UserContext()).
			First(&m, "proposal_id = ?", id).Error
	}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Proposal tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonOK(c, "Detail proposal ditemukan", proposalDTO.FromProposalModel(m))
}

// LIST milik tim
// GET /u/proposals?status=
func (h *ProposalController) ListMyProposals(c *fiber.Ctx) error {
	teamID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)

	tx := h.DB.WithContext(c.UserContext()).
		Model(&proposalModel.ProposalModel{}).
		Where("proposal_team_id = ?", teamID)

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		st, perr := parseStatus(raw)
		if perr != nil {
			return perr
		}
		tx = tx.Where("proposal_status = ?", st)
	}

	var total int64
	var rows []proposalModel.ProposalModel
	if err := helper.WithReadRetry(c.UserContext(), func() error {
		if err := tx.Count(&total).Error; err != nil {
			return err
		}
		return tx.Order("proposal_created_at DESC").
			Limit(p.Limit).Offset(p.Offset).
			Find(&rows).Error
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonList(c, "Daftar proposal",
		proposalDTO.FromProposalModels(rows),
		helper.BuildPagination(total, p, len(rows)),
	)
}

/* =========================================================
   MENTOR FLOW (7 → 8 → 9) — dipicu kolaborator eksternal,
   tetap lewat tabel transisi.
   ========================================================= */

// POST /a/proposals/:id/mentor/propose
func (h *ProposalController) ProposeMentor(c *fiber.Ctx) error {
	return h.mentorTransition(c, proposalModel.StatusMentorProposed, "Pengajuan mentor dicatat")
}

// POST /a/proposals/:id/mentor/approve
func (h *ProposalController) ApproveMentor(c *fiber.Ctx) error {
	return h.mentorTransition(c, proposalModel.StatusMentorApproved, "Mentor disetujui")
}

func (h *ProposalController) mentorTransition(c *fiber.Ctx, target proposalModel.ProposalStatus, okMsg string) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var m proposalModel.ProposalModel
		if err := tx.First(&m, "proposal_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Proposal tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
		}
		if !proposalModel.CanTransition(m.ProposalStatus, target) {
			return fiber.NewError(fiber.StatusConflict,
				"Transisi tidak sah dari status "+m.ProposalStatus.Label())
		}

		res := tx.Model(&proposalModel.ProposalModel{}).
			Where("proposal_id = ? AND proposal_status = ?", m.ProposalID, m.ProposalStatus).
			Update("proposal_status", target)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui status")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "Status berubah, muat ulang data")
		}
		m.ProposalStatus = target
		c.Locals("mentor_proposal", m)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	m := c.Locals("mentor_proposal").(proposalModel.ProposalModel)
	return helper.JsonUpdated(c, okMsg, proposalDTO.FromProposalModel(m))
}

func parseStatus(raw string) (proposalModel.ProposalStatus, error) {
	n := 0
	for _, ch := range raw {
		if ch < '0' || ch > '9' {
			return 0, fiber.NewError(fiber.StatusBadRequest, "Status harus angka 0..9")
		}
		n = n*10 + int(ch-'0')
	}
	st := proposalModel.ProposalStatus(n)
	if !st.Valid() {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Status di luar jangkauan 0..9")
	}
	return st, nil
}
