// internals/features/evaluation/programs/controller/program_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	programDTO "hibahku_backend/internals/features/evaluation/programs/dto"
	programModel "hibahku_backend/internals/features/evaluation/programs/model"
	helper "hibahku_backend/internals/helpers"
)

type ProgramController struct {
	DB *gorm.DB
}

var validate = validator.New()

// CREATE
// POST /a/programs
func (h *ProgramController) CreateProgram(c *fiber.Ctx) error {
	var req programDTO.CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	m := req.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat program")
	}
	return helper.JsonCreated(c, "Program berhasil dibuat", programDTO.FromProgramModel(m))
}

// LIST
// GET /a/programs?is_active=
func (h *ProgramController) ListPrograms(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	tx := h.DB.WithContext(c.UserContext()).Model(&programModel.ProgramModel{})
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		tx = tx.Where("program_is_active = ?", strings.EqualFold(raw, "true"))
	}

	var total int64
	var rows []programModel.ProgramModel
	if err := helper.WithReadRetry(c.UserContext(), func() error {
		if err := tx.Count(&total).Error; err != nil {
			return err
		}
		return tx.Order("program_year DESC, program_created_at DESC").
			Limit(p.Limit).Offset(p.Offset).
			Find(&rows).Error
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonList(c, "Daftar program",
		programDTO.FromProgramModels(rows),
		helper.BuildPagination(total, p, len(rows)),
	)
}

// CREATE STAGE (tahap)
// POST /a/programs/:id/stages
// Maksimal dua tahap per program; ordinal unik.
func (h *ProgramController) CreateStage(c *fiber.Ctx) error {
	programID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID program tidak valid")
	}

	var req programDTO.CreateStageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.ProgramID = programID
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.StartedAt != nil && req.EndedAt != nil && req.EndedAt.Before(*req.StartedAt) {
		return fiber.NewError(fiber.StatusBadRequest, "Rentang penilaian tidak valid (end < start)")
	}

	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var program programModel.ProgramModel
		if err := tx.First(&program, "program_id = ?", programID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Program tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
		}

		var cnt int64
		if err := tx.Model(&programModel.EvaluationStageModel{}).
			Where("stage_program_id = ?", programID).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek jumlah tahap")
		}
		if cnt >= 2 {
			return fiber.NewError(fiber.StatusConflict, "Program sudah memiliki dua tahap")
		}

		m := req.ToModel()
		if err := tx.Create(&m).Error; err != nil {
			msg := strings.ToLower(err.Error())
			if strings.Contains(msg, "uq_stage_ordinal_per_program") ||
				strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
				return fiber.NewError(fiber.StatusConflict, "Tahap dengan ordinal tersebut sudah ada")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat tahap")
		}

		c.Locals("created_stage", m)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	m := c.Locals("created_stage").(programModel.EvaluationStageModel)
	return helper.JsonCreated(c, "Tahap berhasil dibuat", m)
}

// LIST STAGES
// GET /a/programs/:id/stages
func (h *ProgramController) ListStages(c *fiber.Ctx) error {
	programID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID program tidak valid")
	}

	var rows []programModel.EvaluationStageModel
	if err := helper.WithReadRetry(c.UserContext(), func() error {
		return h.DB.WithContext(c.UserContext()).
			Where("stage_program_id = ?", programID).
			Order("stage_ordinal ASC").
			Find(&rows).Error
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonOK(c, "Daftar tahap", rows)
}

// FindStage mencari tahap per (program, ordinal). Dipakai lintas controller.
func FindStage(tx *gorm.DB, programID uuid.UUID, ordinal int) (programModel.EvaluationStageModel, error) {
	var stage programModel.EvaluationStageModel
	err := tx.
		Where("stage_program_id = ? AND stage_ordinal = ?", programID, ordinal).
		First(&stage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return stage, fiber.NewError(fiber.StatusNotFound, "Tahap tidak ditemukan untuk program ini")
	}
	return stage, err
}
