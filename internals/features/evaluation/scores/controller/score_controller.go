// internals/features/evaluation/scores/controller/score_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentModel "hibahku_backend/internals/features/evaluation/assignments/model"
	criterionModel "hibahku_backend/internals/features/evaluation/criteria/model"
	evaluatorModel "hibahku_backend/internals/features/evaluation/evaluators/model"
	scoreDTO "hibahku_backend/internals/features/evaluation/scores/dto"
	scoreModel "hibahku_backend/internals/features/evaluation/scores/model"
	"hibahku_backend/internals/features/evaluation/scores/service"
	helper "hibahku_backend/internals/helpers"
	helperAuth "hibahku_backend/internals/helpers/auth"
)

type ScoreController struct {
	DB *gorm.DB
}

var validate = validator.New()

/* =========================================================
   LIST PENUGASAN SAYA
   GET /u/assignments?status=
   ========================================================= */
func (h *ScoreController) ListMyAssignments(c *fiber.Ctx) error {
	evaluator, err := h.currentEvaluator(c)
	if err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 200)

	tx := h.DB.WithContext(c.UserContext()).
		Model(&assignmentModel.AssignmentModel{}).
		Where("assignment_evaluator_id = ?", evaluator.EvaluatorID)
	if st := strings.ToLower(strings.TrimSpace(c.Query("status"))); st != "" {
		tx = tx.Where("assignment_status = ?", st)
	}

	var total int64
	var rows []assignmentModel.AssignmentModel
	if err := helper.WithReadRetry(c.UserContext(), func() error {
		if err := tx.Count(&total).Error; err != nil {
			return err
		}
		return tx.Order("assignment_assigned_at DESC").
			Limit(p.Limit).Offset(p.Offset).
			Find(&rows).Error
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonList(c, "Daftar penugasan", rows, helper.BuildPagination(total, p, len(rows)))
}

/* =========================================================
   RESPON PENUGASAN (pending → approved | rejected)
   POST /u/assignments/:id/respond
   ========================================================= */
func (h *ScoreController) RespondAssignment(c *fiber.Ctx) error {
	evaluator, err := h.currentEvaluator(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req scoreDTO.RespondAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	newStatus := assignmentModel.AssignmentStatusApproved
	if req.Action == "reject" {
		newStatus = assignmentModel.AssignmentStatusRejected
	}

	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var a assignmentModel.AssignmentModel
		if err := tx.First(&a, "assignment_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Penugasan tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
		}
		if a.AssignmentEvaluatorID != evaluator.EvaluatorID {
			return fiber.NewError(fiber.StatusForbidden, "Bukan penugasan Anda")
		}
		if a.AssignmentStatus != assignmentModel.AssignmentStatusPending {
			return fiber.NewError(fiber.StatusConflict,
				"Penugasan sudah direspon (status: "+a.AssignmentStatus+")")
		}

		now := time.Now()
		res := tx.Model(&assignmentModel.AssignmentModel{}).
			Where("assignment_id = ? AND assignment_status = ?",
				a.AssignmentID, assignmentModel.AssignmentStatusPending).
			Updates(map[string]interface{}{
				"assignment_status":       newStatus,
				"assignment_responded_at": now,
				"assignment_note":         req.Note,
			})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan respon")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "Status penugasan berubah, muat ulang data")
		}

		a.AssignmentStatus = newStatus
		a.AssignmentRespondedAt = &now
		a.AssignmentNote = req.Note
		c.Locals("responded_assignment", a)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	a := c.Locals("responded_assignment").(assignmentModel.AssignmentModel)
	return helper.JsonUpdated(c, "Respon penugasan tersimpan", a)
}

/* =========================================================
   SUBMIT NILAI
   POST /u/assignments/:id/scores  {items, draft}
   - draft=true  : simpan sementara, assignment → draft_scored, boleh direvisi
   - draft=false : final, semua kriteria aktif wajib dinilai, assignment →
                   completed, submission kunci permanen (submit ulang = 409)
   ========================================================= */
func (h *ScoreController) SubmitScore(c *fiber.Ctx) error {
	evaluator, err := h.currentEvaluator(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req scoreDTO.SubmitScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var a assignmentModel.AssignmentModel
		if err := tx.First(&a, "assignment_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Penugasan tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
		}
		if a.AssignmentEvaluatorID != evaluator.EvaluatorID {
			return fiber.NewError(fiber.StatusForbidden, "Bukan penugasan Anda")
		}
		if a.AssignmentStatus != assignmentModel.AssignmentStatusApproved &&
			a.AssignmentStatus != assignmentModel.AssignmentStatusDraftScored {
			return fiber.NewError(fiber.StatusConflict,
				"Penilaian hanya untuk penugasan approved/draft_scored (status: "+a.AssignmentStatus+")")
		}

		// kriteria aktif tahap ini
		var criteriaRows []criterionModel.CriterionModel
		if err := tx.
			Where("criterion_stage_id = ?", a.AssignmentStageID).
			Order("criterion_position ASC").
			Find(&criteriaRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil kriteria")
		}
		criteria := make([]service.CriterionWeight, 0, len(criteriaRows))
		for _, cr := range criteriaRows {
			criteria = append(criteria, service.CriterionWeight{
				CriterionID: cr.CriterionID,
				Weight:      cr.CriterionWeight,
				Active:      cr.CriterionIsActive,
			})
		}

		scores := make([]service.RawScore, 0, len(req.Items))
		for _, it := range req.Items {
			scores = append(scores, service.RawScore{
				CriterionID: it.CriterionID,
				Score:       it.RawScore,
				Note:        it.Note,
			})
		}

		var total float64
		if req.Draft {
			// draft: cukup validasi jangkauan, kelengkapan belum wajib
			for _, s := range scores {
				if s.Score < 0 || s.Score > 100 {
					return fiber.NewError(fiber.StatusBadRequest, "Nilai mentah di luar jangkauan 0..100")
				}
			}
		} else {
			var aggErr error
			total, aggErr = service.WeightedTotal(criteria, scores)
			if aggErr != nil {
				return fiber.NewError(fiber.StatusBadRequest, aggErr.Error())
			}
		}

		// ambil submission yang ada (draft boleh direvisi, final terkunci)
		var existing scoreModel.ScoreSubmissionModel
		err := tx.First(&existing, "submission_assignment_id = ?", a.AssignmentID).Error
		switch {
		case err == nil && !existing.SubmissionIsDraft:
			return fiber.NewError(fiber.StatusConflict, "Nilai sudah dikirim final untuk penugasan ini")
		case err == nil:
			// revisi draft: buang detail lama
			if err := tx.
				Where("detail_submission_id = ?", existing.SubmissionID).
				Delete(&scoreModel.ScoreSubmissionDetailModel{}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus draft lama")
			}
			if err := tx.Model(&scoreModel.ScoreSubmissionModel{}).
				Where("submission_id = ?", existing.SubmissionID).
				Updates(map[string]interface{}{
					"submission_total":        total,
					"submission_is_draft":     req.Draft,
					"submission_submitted_at": time.Now(),
				}).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui submission")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			existing = scoreModel.ScoreSubmissionModel{
				SubmissionAssignmentID: a.AssignmentID,
				SubmissionTotal:        total,
				SubmissionIsDraft:      req.Draft,
			}
			if err := tx.Create(&existing).Error; err != nil {
				msg := strings.ToLower(err.Error())
				if strings.Contains(msg, "uq_submission_per_assignment") ||
					strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
					// submit ganda paralel kalah oleh constraint
					return fiber.NewError(fiber.StatusConflict, "Nilai sudah dikirim untuk penugasan ini")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan submission")
			}
		default:
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil submission")
		}

		details := make([]scoreModel.ScoreSubmissionDetailModel, 0, len(scores))
		for _, s := range scores {
			details = append(details, scoreModel.ScoreSubmissionDetailModel{
				DetailSubmissionID: existing.SubmissionID,
				DetailCriterionID:  s.CriterionID,
				DetailRawScore:     s.Score,
				DetailNote:         s.Note,
			})
		}
		if err := tx.Create(&details).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan rincian nilai")
		}

		newStatus := assignmentModel.AssignmentStatusCompleted
		if req.Draft {
			newStatus = assignmentModel.AssignmentStatusDraftScored
		}
		res := tx.Model(&assignmentModel.AssignmentModel{}).
			Where("assignment_id = ? AND assignment_status IN ?", a.AssignmentID,
				[]string{assignmentModel.AssignmentStatusApproved, assignmentModel.AssignmentStatusDraftScored}).
			Update("assignment_status", newStatus)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui status penugasan")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "Status penugasan berubah, muat ulang data")
		}

		existing.SubmissionTotal = total
		existing.SubmissionIsDraft = req.Draft
		c.Locals("saved_submission", existing)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	sub := c.Locals("saved_submission").(scoreModel.ScoreSubmissionModel)
	if sub.SubmissionIsDraft {
		return helper.JsonOK(c, "Draft nilai tersimpan", sub)
	}
	return helper.JsonCreated(c, "Nilai berhasil dikirim", sub)
}

/* =========================================================
   REKAP (read-only)
   GET /a/recap?program_id=&stage=&proposal_id=
   ========================================================= */
func (h *ScoreController) GetRecap(c *fiber.Ctx) error {
	proposalID, err := uuid.Parse(strings.TrimSpace(c.Query("proposal_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID proposal tidak valid")
	}
	programID, err := uuid.Parse(strings.TrimSpace(c.Query("program_id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID program tidak valid")
	}
	stage := c.QueryInt("stage", 0)
	if stage != 1 && stage != 2 {
		return fiber.NewError(fiber.StatusBadRequest, "Tahap harus 1 atau 2")
	}

	type row struct {
		AssignmentID uuid.UUID
		EvaluatorID  uuid.UUID
		Role         string
		Total        float64
	}
	var rows []row
	if err := helper.WithReadRetry(c.UserContext(), func() error {
		return h.DB.WithContext(c.UserContext()).
			Table("score_submissions s").
			Select(`
				a.assignment_id,
				a.assignment_evaluator_id AS evaluator_id,
				a.assignment_role AS role,
				s.submission_total AS total
			`).
			Joins("JOIN assignments a ON a.assignment_id = s.submission_assignment_id").
			Joins("JOIN evaluation_stages st ON st.stage_id = a.assignment_stage_id").
			Where(`a.assignment_proposal_id = ?
			       AND st.stage_program_id = ?
			       AND st.stage_ordinal = ?
			       AND a.assignment_status = ?
			       AND s.submission_is_draft = FALSE`,
				proposalID, programID, stage, assignmentModel.AssignmentStatusCompleted).
			Order("a.assignment_role ASC, a.assignment_id ASC").
			Scan(&rows).Error
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil rekap")
	}

	summaries := make([]service.SubmissionSummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, service.SubmissionSummary{
			AssignmentID: r.AssignmentID,
			EvaluatorID:  r.EvaluatorID,
			Role:         r.Role,
			Total:        r.Total,
		})
	}

	return helper.JsonOK(c, "Rekap penilaian", service.BuildRecap(summaries))
}

/* =========================================================
   Internal
   ========================================================= */

func (h *ScoreController) currentEvaluator(c *fiber.Ctx) (evaluatorModel.EvaluatorModel, error) {
	var evaluator evaluatorModel.EvaluatorModel

	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return evaluator, err
	}

	if err := h.DB.WithContext(c.UserContext()).
		First(&evaluator, "evaluator_user_id = ? AND evaluator_is_active = TRUE", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return evaluator, fiber.NewError(fiber.StatusForbidden, "Akun Anda tidak terdaftar sebagai evaluator aktif")
		}
		return evaluator, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data evaluator")
	}
	return evaluator, nil
}
