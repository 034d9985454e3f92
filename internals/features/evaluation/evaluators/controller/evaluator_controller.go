// internals/features/evaluation/evaluators/controller/evaluator_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentModel "hibahku_backend/internals/features/evaluation/assignments/model"
	evaluatorDTO "hibahku_backend/internals/features/evaluation/evaluators/dto"
	evaluatorModel "hibahku_backend/internals/features/evaluation/evaluators/model"
	programController "hibahku_backend/internals/features/evaluation/programs/controller"
	helper "hibahku_backend/internals/helpers"
)

type EvaluatorController struct {
	DB *gorm.DB
}

var validate = validator.New()

// CREATE
// POST /a/evaluators
func (h *EvaluatorController) CreateEvaluator(c *fiber.Ctx) error {
	var req evaluatorDTO.CreateEvaluatorRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "User tersebut sudah terdaftar sebagai evaluator")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mendaftarkan evaluator")
	}
	return helper.JsonCreated(c, "Evaluator berhasil didaftarkan", m)
}

// LIST ELIGIBLE ASSIGNEES (dengan beban penugasan aktif)
// GET /a/distribution/assignees?program_id=&stage=&role=
// role kosong = semua role; beban dihitung dari assignment aktif
// (status bukan rejected/superseded), dibatasi tahap bila diberikan.
func (h *EvaluatorController) ListEligibleAssignees(c *fiber.Ctx) error {
	role := strings.ToLower(strings.TrimSpace(c.Query("role")))
	if role != "" && !evaluatorModel.ValidRole(role) {
		return fiber.NewError(fiber.StatusBadRequest, "Role harus reviewer atau juri")
	}

	var stageID *uuid.UUID
	if rawProgram := strings.TrimSpace(c.Query("program_id")); rawProgram != "" {
		programID, err := uuid.Parse(rawProgram)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "ID program tidak valid")
		}
		stage := c.QueryInt("stage", 0)
		if stage != 1 && stage != 2 {
			return fiber.NewError(fiber.StatusBadRequest, "Tahap harus 1 atau 2")
		}
		st, err := programController.FindStage(h.DB.WithContext(c.UserContext()), programID, stage)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		stageID = &st.StageID
	}

	type row struct {
		EvaluatorID       uuid.UUID
		EvaluatorName     string
		EvaluatorRole     string
		EvaluatorIsActive bool
		ActiveAssignments int
	}

	q := h.DB.WithContext(c.UserContext()).
		Table("evaluators e").
		Select(`
			e.evaluator_id,
			e.evaluator_name,
			e.evaluator_role,
			e.evaluator_is_active,
			COUNT(a.assignment_id) AS active_assignments
		`)
	if stageID != nil {
		q = q.Joins(`
			LEFT JOIN assignments a
			  ON a.assignment_evaluator_id = e.evaluator_id
			 AND a.assignment_status NOT IN ?
			 AND a.assignment_stage_id = ?
		`, assignmentModel.InactiveStatuses, *stageID)
	} else {
		q = q.Joins(`
			LEFT JOIN assignments a
			  ON a.assignment_evaluator_id = e.evaluator_id
			 AND a.assignment_status NOT IN ?
		`, assignmentModel.InactiveStatuses)
	}
	q = q.Where("e.evaluator_is_active = TRUE AND e.evaluator_deleted_at IS NULL")
	if role != "" {
		q = q.Where("e.evaluator_role = ?", role)
	}
	q = q.Group("e.evaluator_id, e.evaluator_name, e.evaluator_role, e.evaluator_is_active").
		Order("e.evaluator_role ASC, active_assignments ASC, e.evaluator_id ASC")

	var rows []row
	if err := helper.WithReadRetry(c.UserContext(), func() error {
		return q.Scan(&rows).Error
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	out := make([]evaluatorDTO.EvaluatorWithLoad, 0, len(rows))
	for _, r := range rows {
		out = append(out, evaluatorDTO.EvaluatorWithLoad{
			EvaluatorID:       r.EvaluatorID,
			EvaluatorName:     r.EvaluatorName,
			EvaluatorRole:     r.EvaluatorRole,
			EvaluatorIsActive: r.EvaluatorIsActive,
			ActiveAssignments: r.ActiveAssignments,
		})
	}

	return helper.JsonOK(c, "Daftar evaluator", out)
}

// DEACTIVATE
// PATCH /a/evaluators/:id/deactivate
func (h *EvaluatorController) DeactivateEvaluator(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var m evaluatorModel.EvaluatorModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "evaluator_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Evaluator tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	if err := h.DB.WithContext(c.UserContext()).
		Model(&evaluatorModel.EvaluatorModel{}).
		Where("evaluator_id = ?", id).
		Update("evaluator_is_active", false).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menonaktifkan evaluator")
	}

	m.EvaluatorIsActive = false
	return helper.JsonUpdated(c, "Evaluator dinonaktifkan", m)
}
