// internals/features/evaluation/assignments/controller/distribution_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentDTO "hibahku_backend/internals/features/evaluation/assignments/dto"
	assignmentModel "hibahku_backend/internals/features/evaluation/assignments/model"
	"hibahku_backend/internals/features/evaluation/assignments/service"
	evaluatorModel "hibahku_backend/internals/features/evaluation/evaluators/model"
	programController "hibahku_backend/internals/features/evaluation/programs/controller"
	programModel "hibahku_backend/internals/features/evaluation/programs/model"
	proposalModel "hibahku_backend/internals/features/evaluation/proposals/model"
	helper "hibahku_backend/internals/helpers"
	helperAuth "hibahku_backend/internals/helpers/auth"
)

type DistributionController struct {
	DB *gorm.DB
}

var validate = validator.New()

/* =========================================================
   LIST ELIGIBLE PROPOSALS
   GET /a/distribution/proposals?program_id=&stage=&filter=
   filter: eligible (default) | all
   ========================================================= */
func (h *DistributionController) ListEligibleProposals(c *fiber.Ctx) error {
	programID, stage, err := parseProgramStage(c)
	if err != nil {
		return err
	}

	source, _ := proposalModel.DistributionSource(stage)
	target, _ := proposalModel.DistributionTarget(stage)

	p := helper.ResolvePaging(c, 50, 500)

	tx := h.DB.WithContext(c.UserContext()).
		Model(&proposalModel.ProposalModel{}).
		Where("proposal_program_id = ?", programID)

	switch strings.ToLower(strings.TrimSpace(c.Query("filter", "eligible"))) {
	case "eligible":
		tx = tx.Where("proposal_status = ?", source)
	case "all":
		// semua proposal yang relevan dengan tahap ini (belum/sudah terdistribusi)
		tx = tx.Where("proposal_status IN ?", []proposalModel.ProposalStatus{source, target})
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Filter harus eligible atau all")
	}

	var total int64
	var rows []proposalModel.ProposalModel
	if err := helper.WithReadRetry(c.UserContext(), func() error {
		if err := tx.Count(&total).Error; err != nil {
			return err
		}
		return tx.Order("proposal_id ASC").
			Limit(p.Limit).Offset(p.Offset).
			Find(&rows).Error
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	type item struct {
		ProposalID  uuid.UUID `json:"proposal_id"`
		Title       string    `json:"proposal_title"`
		Status      int       `json:"proposal_status"`
		StatusLabel string    `json:"proposal_status_label"`
	}
	out := make([]item, 0, len(rows))
	for _, r := range rows {
		out = append(out, item{
			ProposalID:  r.ProposalID,
			Title:       r.ProposalTitle,
			Status:      int(r.ProposalStatus),
			StatusLabel: r.ProposalStatus.Label(),
		})
	}

	return helper.JsonList(c, "Daftar proposal", out, helper.BuildPagination(total, p, len(out)))
}

/* =========================================================
   PREVIEW AUTO DISTRIBUTION (read-only, tanpa mutasi)
   GET /a/distribution/preview?program_id=&stage=
   ========================================================= */
func (h *DistributionController) PreviewAutoDistribution(c *fiber.Ctx) error {
	programID, stage, err := parseProgramStage(c)
	if err != nil {
		return err
	}

	var plan []service.PlannedAssignment
	var proposalCount, evaluatorCount int
	if err := helper.WithReadRetry(c.UserContext(), func() error {
		db := h.DB.WithContext(c.UserContext())
		stageRow, err := programController.FindStage(db, programID, stage)
		if err != nil {
			return err
		}
		p, evals, err := h.loadPlanInputs(c, db, programID, stage, stageRow)
		if err != nil {
			return err
		}
		proposalCount, evaluatorCount = len(p), len(evals)
		plan, err = buildPlan(c, stage, p, evals)
		return err
	}); err != nil {
		return planErrToHTTP(c, err)
	}

	grouped := map[string][]uuid.UUID{}
	for evalID, ids := range service.GroupByEvaluator(plan) {
		grouped[evalID.String()] = ids
	}

	return helper.JsonOK(c, "Rencana distribusi", assignmentDTO.PreviewResponse{
		Stage:          stage,
		TotalProposals: proposalCount,
		TotalEvaluator: evaluatorCount,
		TotalPlanned:   len(plan),
		Plan:           plan,
		PerEvaluator:   grouped,
	})
}

/* =========================================================
   EXECUTE AUTO DISTRIBUTION
   POST /a/distribution/auto {program_id, stage}
   Satu transaksi: re-validasi eligibility DI DALAM transaksi,
   insert assignment + naikkan status proposal sekaligus.
   ========================================================= */
func (h *DistributionController) ExecuteAutoDistribution(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req assignmentDTO.AutoDistributionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	source, _ := proposalModel.DistributionSource(req.Stage)
	target, _ := proposalModel.DistributionTarget(req.Stage)

	var result assignmentDTO.DistributionResultResponse
	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		stageRow, err := programController.FindStage(tx, req.ProgramID, req.Stage)
		if err != nil {
			return err
		}

		// re-validasi DI DALAM transaksi, bukan hanya sebelum
		proposalIDs, evals, err := h.loadPlanInputs(c, tx, req.ProgramID, req.Stage, stageRow)
		if err != nil {
			return err
		}

		plan, err := buildPlan(c, req.Stage, proposalIDs, evals)
		if err != nil {
			return err
		}

		rows := make([]assignmentModel.AssignmentModel, 0, len(plan))
		for _, pa := range plan {
			rows = append(rows, assignmentModel.AssignmentModel{
				AssignmentProposalID:  pa.ProposalID,
				AssignmentEvaluatorID: pa.EvaluatorID,
				AssignmentStageID:     stageRow.StageID,
				AssignmentRole:        pa.Role,
				AssignmentStatus:      assignmentModel.AssignmentStatusPending,
				AssignmentAssignedBy:  adminID,
			})
		}
		if err := tx.CreateInBatches(rows, 200).Error; err != nil {
			msg := strings.ToLower(err.Error())
			if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
				return fiber.NewError(fiber.StatusConflict, "Sebagian proposal sudah terdistribusi, muat ulang data")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan distribusi")
		}

		// naikkan status secara kondisional; selisih baris = ada run lain yang menyalip
		res := tx.Model(&proposalModel.ProposalModel{}).
			Where("proposal_id IN ? AND proposal_status = ?", proposalIDs, source).
			Update("proposal_status", target)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui status proposal")
		}
		if res.RowsAffected != int64(len(proposalIDs)) {
			return fiber.NewError(fiber.StatusConflict, "Distribusi bentrok dengan proses lain, tidak ada perubahan disimpan")
		}

		result = assignmentDTO.DistributionResultResponse{
			TotalAssigned: len(plan),
			TotalFailed:   0,
		}
		return nil
	}); err != nil {
		return planErrToHTTP(c, err)
	}

	return helper.JsonCreated(c, "Distribusi otomatis berhasil", result)
}

/* =========================================================
   EXECUTE MANUAL DISTRIBUTION
   POST /a/distribution/manual {program_id, stage, evaluator_id, proposal_ids}
   Id yang sudah aktif di evaluator tsb ditolak satu per satu (per-id reason).
   ========================================================= */
func (h *DistributionController) ExecuteManualDistribution(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req assignmentDTO.ManualDistributionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	source, _ := proposalModel.DistributionSource(req.Stage)
	target, _ := proposalModel.DistributionTarget(req.Stage)

	var result assignmentDTO.DistributionResultResponse
	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		stageRow, err := programController.FindStage(tx, req.ProgramID, req.Stage)
		if err != nil {
			return err
		}

		var evaluator evaluatorModel.EvaluatorModel
		if err := tx.First(&evaluator,
			"evaluator_id = ? AND evaluator_is_active = TRUE", req.EvaluatorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Evaluator tidak ditemukan atau nonaktif")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data evaluator")
		}
		if req.Stage == 1 && evaluator.EvaluatorRole != evaluatorModel.RoleReviewer {
			return fiber.NewError(fiber.StatusBadRequest, "Tahap 1 hanya untuk reviewer")
		}

		// status proposal dalam program
		var proposals []proposalModel.ProposalModel
		if err := tx.
			Where("proposal_id IN ? AND proposal_program_id = ?", req.ProposalIDs, req.ProgramID).
			Find(&proposals).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data proposal")
		}
		statusByID := make(map[uuid.UUID]proposalModel.ProposalStatus, len(proposals))
		for _, p := range proposals {
			statusByID[p.ProposalID] = p.ProposalStatus
		}

		// assignment aktif evaluator ini untuk proposal terkait
		var activeIDs []uuid.UUID
		if err := tx.Model(&assignmentModel.AssignmentModel{}).
			Where(`assignment_evaluator_id = ?
			       AND assignment_proposal_id IN ?
			       AND assignment_status NOT IN ?`,
				req.EvaluatorID, req.ProposalIDs, assignmentModel.InactiveStatuses).
			Pluck("assignment_proposal_id", &activeIDs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek penugasan aktif")
		}
		activeSet := make(map[uuid.UUID]struct{}, len(activeIDs))
		for _, id := range activeIDs {
			activeSet[id] = struct{}{}
		}

		okIDs := make([]uuid.UUID, 0, len(req.ProposalIDs))
		needBump := make([]uuid.UUID, 0, len(req.ProposalIDs))
		failed := make([]assignmentDTO.FailedProposalID, 0)
		seen := make(map[uuid.UUID]struct{}, len(req.ProposalIDs))
		for _, id := range req.ProposalIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			st, found := statusByID[id]
			switch {
			case !found:
				failed = append(failed, assignmentDTO.FailedProposalID{ProposalID: id, Reason: "proposal tidak ditemukan di program ini"})
			case st != source && st != target:
				failed = append(failed, assignmentDTO.FailedProposalID{ProposalID: id, Reason: "status proposal tidak memenuhi tahap ini (" + st.Label() + ")"})
			default:
				if _, already := activeSet[id]; already {
					failed = append(failed, assignmentDTO.FailedProposalID{ProposalID: id, Reason: "sudah ditugaskan aktif ke evaluator ini"})
					continue
				}
				okIDs = append(okIDs, id)
				if st == source {
					needBump = append(needBump, id)
				}
			}
		}

		if len(okIDs) == 0 {
			return fiber.NewError(fiber.StatusConflict, "Semua proposal ditolak: tidak ada yang bisa ditugaskan")
		}

		rows := make([]assignmentModel.AssignmentModel, 0, len(okIDs))
		for _, id := range okIDs {
			rows = append(rows, assignmentModel.AssignmentModel{
				AssignmentProposalID:  id,
				AssignmentEvaluatorID: req.EvaluatorID,
				AssignmentStageID:     stageRow.StageID,
				AssignmentRole:        evaluator.EvaluatorRole,
				AssignmentStatus:      assignmentModel.AssignmentStatusPending,
				AssignmentAssignedBy:  adminID,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			msg := strings.ToLower(err.Error())
			if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
				return fiber.NewError(fiber.StatusConflict, "Sebagian proposal sudah ditugaskan, muat ulang data")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan penugasan")
		}

		if len(needBump) > 0 {
			res := tx.Model(&proposalModel.ProposalModel{}).
				Where("proposal_id IN ? AND proposal_status = ?", needBump, source).
				Update("proposal_status", target)
			if res.Error != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui status proposal")
			}
			if res.RowsAffected != int64(len(needBump)) {
				return fiber.NewError(fiber.StatusConflict, "Distribusi bentrok dengan proses lain, tidak ada perubahan disimpan")
			}
		}

		result = assignmentDTO.DistributionResultResponse{
			TotalAssigned: len(okIDs),
			TotalFailed:   len(failed),
			Failed:        failed,
		}
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonCreated(c, "Distribusi manual berhasil", result)
}

/* =========================================================
   REASSIGN (hanya dari assignment berstatus rejected)
   POST /a/distribution/reassign
   Record lama ditandai superseded (tidak dihapus), record
   pending baru dibuat untuk evaluator pengganti.
   ========================================================= */
func (h *DistributionController) ReassignEvaluator(c *fiber.Ctx) error {
	adminID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req assignmentDTO.ReassignRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		stageRow, err := programController.FindStage(tx, req.ProgramID, req.Stage)
		if err != nil {
			return err
		}

		var old assignmentModel.AssignmentModel
		if err := tx.First(&old,
			"assignment_id = ? AND assignment_stage_id = ?", req.AssignmentID, stageRow.StageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Assignment tidak ditemukan di tahap ini")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data")
		}
		if old.AssignmentStatus != assignmentModel.AssignmentStatusRejected {
			return fiber.NewError(fiber.StatusConflict,
				"Reassign hanya boleh untuk assignment berstatus rejected (sekarang: "+old.AssignmentStatus+")")
		}

		var replacement evaluatorModel.EvaluatorModel
		if err := tx.First(&replacement,
			"evaluator_id = ? AND evaluator_is_active = TRUE", req.NewEvaluatorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Evaluator pengganti tidak ditemukan atau nonaktif")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil data evaluator")
		}

		// pengganti tidak boleh sudah aktif di proposal yang sama
		var cnt int64
		if err := tx.Model(&assignmentModel.AssignmentModel{}).
			Where(`assignment_proposal_id = ?
			       AND assignment_evaluator_id = ?
			       AND assignment_status NOT IN ?`,
				old.AssignmentProposalID, req.NewEvaluatorID, assignmentModel.InactiveStatuses).
			Count(&cnt).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal cek penugasan aktif")
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, "Evaluator pengganti sudah memegang proposal ini")
		}

		// tandai lama sebagai superseded secara kondisional (guard race)
		res := tx.Model(&assignmentModel.AssignmentModel{}).
			Where("assignment_id = ? AND assignment_status = ?",
				old.AssignmentID, assignmentModel.AssignmentStatusRejected).
			Update("assignment_status", assignmentModel.AssignmentStatusSuperseded)
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal menandai assignment lama")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, "Status assignment berubah, muat ulang data")
		}

		fresh := assignmentModel.AssignmentModel{
			AssignmentProposalID:  old.AssignmentProposalID,
			AssignmentEvaluatorID: req.NewEvaluatorID,
			AssignmentStageID:     stageRow.StageID,
			AssignmentRole:        replacement.EvaluatorRole,
			AssignmentStatus:      assignmentModel.AssignmentStatusPending,
			AssignmentAssignedBy:  adminID,
		}
		if err := tx.Create(&fresh).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat assignment pengganti")
		}

		c.Locals("new_assignment", fresh)
		return nil
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	fresh := c.Locals("new_assignment").(assignmentModel.AssignmentModel)
	return helper.JsonCreated(c, "Reassign berhasil", assignmentDTO.FromAssignmentModel(fresh))
}

/* =========================================================
   HISTORY (paginated)
   GET /a/distribution/history?program_id=&stage=&role=
   ========================================================= */
func (h *DistributionController) ListDistributionHistory(c *fiber.Ctx) error {
	programID, stage, err := parseProgramStage(c)
	if err != nil {
		return err
	}

	role := strings.ToLower(strings.TrimSpace(c.Query("role")))
	if role != "" && !evaluatorModel.ValidRole(role) {
		return fiber.NewError(fiber.StatusBadRequest, "Role harus reviewer atau juri")
	}

	p := helper.ResolvePaging(c, 20, 200)

	var total int64
	var rows []assignmentModel.AssignmentModel
	if err := helper.WithReadRetry(c.UserContext(), func() error {
		db := h.DB.WithContext(c.UserContext())
		stageRow, err := programController.FindStage(db, programID, stage)
		if err != nil {
			return err
		}
		tx := db.Model(&assignmentModel.AssignmentModel{}).
			Where("assignment_stage_id = ?", stageRow.StageID)
		if role != "" {
			tx = tx.Where("assignment_role = ?", role)
		}
		if err := tx.Count(&total).Error; err != nil {
			return err
		}
		return tx.Order("assignment_assigned_at DESC").
			Limit(p.Limit).Offset(p.Offset).
			Find(&rows).Error
	}); err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonList(c, "Riwayat distribusi",
		assignmentDTO.FromAssignmentModels(rows),
		helper.BuildPagination(total, p, len(rows)),
	)
}

/* =========================================================
   Internal
   ========================================================= */

// loadPlanInputs mengambil proposal eligible + evaluator aktif untuk tahap ybs.
// Tahap 1: reviewer saja, beban = assignment aktif di tahap tsb.
// Tahap 2: semua reviewer + juri (beban tidak dipakai fan-out all-to-all).
func (h *DistributionController) loadPlanInputs(
	c *fiber.Ctx,
	tx *gorm.DB,
	programID uuid.UUID,
	stage int,
	stageRow programModel.EvaluationStageModel,
) ([]uuid.UUID, []service.EvaluatorLoad, error) {
	source, _ := proposalModel.DistributionSource(stage)

	var proposalIDs []uuid.UUID
	if err := tx.Model(&proposalModel.ProposalModel{}).
		Where("proposal_program_id = ? AND proposal_status = ?", programID, source).
		Order("proposal_id ASC").
		Pluck("proposal_id", &proposalIDs).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil proposal eligible")
	}

	roleFilter := "e.evaluator_role = 'reviewer'"
	if stage == 2 {
		roleFilter = "e.evaluator_role IN ('reviewer','juri')"
	}

	type evalRow struct {
		EvaluatorID uuid.UUID
		Role        string
		ActiveCount int
	}
	var evalRows []evalRow
	if err := tx.
		Table("evaluators e").
		Select(`
			e.evaluator_id,
			e.evaluator_role AS role,
			COUNT(a.assignment_id) AS active_count
		`).
		Joins(`
			LEFT JOIN assignments a
			  ON a.assignment_evaluator_id = e.evaluator_id
			 AND a.assignment_stage_id = ?
			 AND a.assignment_status NOT IN ?
		`, stageRow.StageID, assignmentModel.InactiveStatuses).
		Where("e.evaluator_is_active = TRUE AND e.evaluator_deleted_at IS NULL AND "+roleFilter).
		Group("e.evaluator_id, e.evaluator_role").
		Order("e.evaluator_id ASC").
		Scan(&evalRows).Error; err != nil {
		return nil, nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil evaluator aktif")
	}

	evals := make([]service.EvaluatorLoad, 0, len(evalRows))
	for _, r := range evalRows {
		evals = append(evals, service.EvaluatorLoad{
			EvaluatorID: r.EvaluatorID,
			Role:        r.Role,
			ActiveCount: r.ActiveCount,
		})
	}
	return proposalIDs, evals, nil
}

func buildPlan(c *fiber.Ctx, stage int, proposalIDs []uuid.UUID, evals []service.EvaluatorLoad) ([]service.PlannedAssignment, error) {
	if stage == 1 {
		return service.PlanLoadBalanced(proposalIDs, evals)
	}
	return service.PlanAllToAll(c.UserContext(), proposalIDs, evals)
}

func planErrToHTTP(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNoProposals):
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada proposal eligible untuk didistribusikan")
	case errors.Is(err, service.ErrNoEvaluator):
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak ada evaluator aktif untuk tahap ini")
	}
	return helper.FromFiberError(c, err)
}

func parseProgramStage(c *fiber.Ctx) (uuid.UUID, int, error) {
	programID, err := uuid.Parse(strings.TrimSpace(c.Query("program_id")))
	if err != nil {
		return uuid.Nil, 0, fiber.NewError(fiber.StatusBadRequest, "ID program tidak valid")
	}
	stage := c.QueryInt("stage", 0)
	if stage != 1 && stage != 2 {
		return uuid.Nil, 0, fiber.NewError(fiber.StatusBadRequest, "Tahap harus 1 atau 2")
	}
	return programID, stage, nil
}
