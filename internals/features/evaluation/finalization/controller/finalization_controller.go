// internals/features/evaluation/finalization/controller/finalization_controller.go
package controller

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentModel "hibahku_backend/internals/features/evaluation/assignments/model"
	finalizationDTO "hibahku_backend/internals/features/evaluation/finalization/dto"
	finalizationModel "hibahku_backend/internals/features/evaluation/finalization/model"
	"hibahku_backend/internals/features/evaluation/finalization/service"
	programController "hibahku_backend/internals/features/evaluation/programs/controller"
	proposalModel "hibahku_backend/internals/features/evaluation/proposals/model"
	helper "hibahku_backend/internals/helpers"
	helperAuth "hibahku_backend/internals/helpers/auth"
)

type FinalizationController struct {
	DB *gorm.DB
}

var validate = validator.New()

/* =========================================================
   FINALIZE BATCH (irreversible)
   POST /a/finalization  {program_id, stage, pass: [...], fail: [...]}
   Satu id tidak layak = seluruh batch batal, tanpa tulisan parsial.
   Re-check kelayakan + seluruh penulisan status + satu record audit
   berada dalam SATU transaksi.
   ========================================================= */
func (h *FinalizationController) FinalizeBatch(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req finalizationDTO.FinalizeBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	// id ganda dalam satu daftar bermakna satu; tanpa ini RowsAffected
	// tidak akan pernah sama dengan panjang daftar
	req.Pass = service.DedupIDs(req.Pass)
	req.Fail = service.DedupIDs(req.Fail)
	if len(req.Pass)+len(req.Fail) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Daftar pass dan fail tidak boleh dua-duanya kosong")
	}

	passStatus, _ := proposalModel.FinalizationOutcome(req.Stage, true)
	failStatus, _ := proposalModel.FinalizationOutcome(req.Stage, false)
	source, _ := proposalModel.FinalizationSource(req.Stage)

	var resp finalizationDTO.FinalizeBatchResponse
	txErr := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		stageRow, err := programController.FindStage(tx, req.ProgramID, req.Stage)
		if err != nil {
			return err
		}

		allIDs := append(append([]uuid.UUID{}, req.Pass...), req.Fail...)

		// potret status DI DALAM transaksi (bukan snapshot sebelum request)
		var proposals []proposalModel.ProposalModel
		if err := tx.
			Where("proposal_id IN ? AND proposal_program_id = ?", allIDs, req.ProgramID).
			Find(&proposals).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data proposal")
		}

		states := make(map[uuid.UUID]service.ProposalFinalState, len(proposals))
		for _, p := range proposals {
			states[p.ProposalID] = service.ProposalFinalState{
				ProposalID: p.ProposalID,
				Status:     p.ProposalStatus,
			}
		}

		if req.Stage == 2 {
			// hitung panel aktif vs yang sudah mengirim nilai per proposal
			type panelRow struct {
				ProposalID uuid.UUID
				Active     int
				Completed  int
			}
			var panels []panelRow
			if err := tx.
				Table("assignments a").
				Select(`
					a.assignment_proposal_id AS proposal_id,
					COUNT(*) FILTER (WHERE a.assignment_status NOT IN ?) AS active,
					COUNT(*) FILTER (WHERE a.assignment_status = ?) AS completed
				`, assignmentModel.InactiveStatuses, assignmentModel.AssignmentStatusCompleted).
				Where("a.assignment_proposal_id IN ? AND a.assignment_stage_id = ?", allIDs, stageRow.StageID).
				Group("a.assignment_proposal_id").
				Scan(&panels).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghitung panel")
			}
			for _, pr := range panels {
				st := states[pr.ProposalID]
				st.ActivePanel = pr.Active
				st.CompletedPanel = pr.Completed
				states[pr.ProposalID] = st
			}
		}

		if items := service.ValidateBatch(req.Stage, req.Pass, req.Fail, states); len(items) > 0 {
			c.Locals("ineligible_items", items)
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Sebagian proposal tidak layak difinalkan")
		}

		// tulis status: kondisional pada status sumber; selisih baris = race → batal total
		apply := func(ids []uuid.UUID, target proposalModel.ProposalStatus) error {
			if len(ids) == 0 {
				return nil
			}
			res := tx.Model(&proposalModel.ProposalModel{}).
				Where("proposal_id IN ? AND proposal_status = ?", ids, source).
				Update("proposal_status", target)
			if res.Error != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui status proposal")
			}
			if res.RowsAffected != int64(len(ids)) {
				return fiber.NewError(fiber.StatusConflict, "Finalisasi bentrok dengan proses lain, tidak ada perubahan disimpan")
			}
			return nil
		}
		if err := apply(req.Pass, passStatus); err != nil {
			return err
		}
		if err := apply(req.Fail, failStatus); err != nil {
			return err
		}

		passJSON, err := json.Marshal(req.Pass)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyusun record audit")
		}
		failJSON, err := json.Marshal(req.Fail)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyusun record audit")
		}

		record := finalizationModel.FinalizationRecordModel{
			RecordProgramID:    req.ProgramID,
			RecordStageOrdinal: req.Stage,
			RecordPassedIDs:    passJSON,
			RecordFailedIDs:    failJSON,
			RecordActor:        adminID,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan record finalisasi")
		}

		resp = finalizationDTO.FinalizeBatchResponse{
			RecordID:    record.RecordID,
			TotalPassed: len(req.Pass),
			TotalFailed: len(req.Fail),
		}
		return nil
	})
	if txErr != nil {
		if items, ok := c.Locals("ineligible_items").([]service.IneligibleItem); ok {
			return helper.JsonErrorWithDetails(c, fiber.StatusUnprocessableEntity,
				"Sebagian proposal tidak layak difinalkan, batch dibatalkan", items)
		}
		return helper.FromFiberError(c, txErr)
	}

	return helper.JsonCreated(c, "Finalisasi batch berhasil", resp)
}

/* =========================================================
   LIST RECORDS (audit)
   GET /a/finalization/records?program_id=&stage=
   ========================================================= */
func (h *FinalizationController) ListRecords(c *fiber.Ctx) error {
	programID, err := uuid.Parse(c.Query("program_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID program tidak valid")
	}

	p := helper.ResolvePaging(c, 20, 200)

	tx := h.DB.WithContext(c.UserContext()).
		Model(&finalizationModel.FinalizationRecordModel{}).
		Where("record_program_id = ?", programID)
	if stage := c.QueryInt("stage", 0); stage == 1 || stage == 2 {
		tx = tx.Where("record_stage_ordinal = ?", stage)
	}

	var total int64
	var rows []finalizationModel.FinalizationRecordModel
	if err := helper.WithReadRetry(c.UserContext(), func() error {
		if err := tx.Count(&total).Error; err != nil {
			return err
		}
		return tx.Order("record_created_at DESC").
			Limit(p.Limit).Offset(p.Offset).
			Find(&rows).Error
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonList(c, "Riwayat finalisasi", rows, helper.BuildPagination(total, p, len(rows)))
}
