// internals/features/evaluation/criteria/controller/criterion_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	criterionDTO "hibahku_backend/internals/features/evaluation/criteria/dto"
	criterionModel "hibahku_backend/internals/features/evaluation/criteria/model"
	helper "hibahku_backend/internals/helpers"
)

type CriterionController struct {
	DB *gorm.DB
}

var validate = validator.New()

// CREATE
// POST /a/stages/:stageId/criteria
func (h *CriterionController) CreateCriterion(c *fiber.Ctx) error {
	stageID, err := uuid.Parse(strings.TrimSpace(c.Params("stageId")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tahap tidak valid")
	}

	var req criterionDTO.CreateCriterionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Normalize()
	req.StageID = stageID
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		// posisi harus unik per tahap
		var cnt int64
		if err := tx.Model(&criterionModel.CriterionModel{}).
			Where("criterion_stage_id = ? AND criterion_position = ?", stageID, req.Position).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek duplikasi posisi")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Posisi kriteria sudah dipakai di tahap ini")
		}

		m := req.ToModel()
		if err := tx.Create(&m).Error; err != nil {
			msg := strings.ToLower(err.Error())
			if strings.Contains(msg, "uq_criterion_position_per_stage") ||
				strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
				return fiber.NewError(fiber.StatusConflict, "Posisi kriteria sudah dipakai di tahap ini")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat kriteria")
		}

		c.Locals("created_criterion", m)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	m := c.Locals("created_criterion").(criterionModel.CriterionModel)
	return helper.JsonCreated(c, "Kriteria berhasil dibuat", m)
}

// LIST per tahap
// GET /a/stages/:stageId/criteria?active_only=true
func (h *CriterionController) ListCriteria(c *fiber.Ctx) error {
	stageID, err := uuid.Parse(strings.TrimSpace(c.Params("stageId")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tahap tidak valid")
	}

	tx := h.DB.WithContext(c.UserContext()).
		Model(&criterionModel.CriterionModel{}).
		Where("criterion_stage_id = ?", stageID)
	if strings.EqualFold(c.Query("active_only"), "true") {
		tx = tx.Where("criterion_is_active = TRUE")
	}

	var rows []criterionModel.CriterionModel
	if err := helper.WithReadRetry(c.UserContext(), func() error {
		return tx.Order("criterion_position ASC").Find(&rows).Error
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	// total bobot aktif ikut dikirim; ≈100 adalah urusan kualitas data admin
	weightSum := 0
	for _, r := range rows {
		if r.CriterionIsActive {
			weightSum += r.CriterionWeight
		}
	}

	return helper.JsonOK(c, "Daftar kriteria", fiber.Map{
		"criteria":          rows,
		"active_weight_sum": weightSum,
	})
}

// UPDATE (partial)
// PUT /a/criteria/:id
func (h *CriterionController) UpdateCriterion(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req criterionDTO.UpdateCriterionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var m criterionModel.CriterionModel
		if err := tx.First(&m, "criterion_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Kriteria tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
		}

		if req.Position != nil && *req.Position != m.CriterionPosition {
			var cnt int64
			if err := tx.Model(&criterionModel.CriterionModel{}).
				Where("criterion_stage_id = ? AND criterion_position = ? AND criterion_id <> ?",
					m.CriterionStageID, *req.Position, m.CriterionID).
				Count(&cnt).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek duplikasi posisi")
			}
			if cnt > 0 {
				return fiber.NewError(fiber.StatusConflict, "Posisi kriteria sudah dipakai di tahap ini")
			}
		}

		req.Apply(&m)
		if err := tx.Model(&criterionModel.CriterionModel{}).
			Where("criterion_id = ?", m.CriterionID).
			Updates(map[string]interface{}{
				"criterion_name":      m.CriterionName,
				"criterion_weight":    m.CriterionWeight,
				"criterion_position":  m.CriterionPosition,
				"criterion_is_active": m.CriterionIsActive,
			}).Error; err != nil {
			msg := strings.ToLower(err.Error())
			if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
				return fiber.NewError(fiber.StatusConflict, "Posisi kriteria sudah dipakai di tahap ini")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui kriteria")
		}

		c.Locals("updated_criterion", m)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	m := c.Locals("updated_criterion").(criterionModel.CriterionModel)
	return helper.JsonUpdated(c, "Kriteria berhasil diperbarui", m)
}
