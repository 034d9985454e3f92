// internals/features/evaluation/proposals/model/status.go
package model

// ProposalStatus adalah kontrak wire berupa integer 0..9.
// Semua transisi lewat tabel di bawah — tidak ada perpindahan status
// lewat assignment langsung di controller.
type ProposalStatus int

const (
	StatusDraft          ProposalStatus = 0 // draft tim, belum diajukan
	StatusSubmitted      ProposalStatus = 1 // diajukan, menunggu distribusi tahap 1
	StatusAssignedStage1 ProposalStatus = 2 // terdistribusi ke reviewer (tahap 1)
	StatusRejectedDesk   ProposalStatus = 3 // gugur desk review
	StatusPassedDesk     ProposalStatus = 4 // lolos desk review, menunggu distribusi tahap 2
	StatusInPanel        ProposalStatus = 5 // terdistribusi ke panel (tahap 2)
	StatusRejectedPanel  ProposalStatus = 6 // gugur panel
	StatusPassedPanel    ProposalStatus = 7 // lolos panel / didanai
	StatusMentorProposed ProposalStatus = 8 // pengajuan mentor
	StatusMentorApproved ProposalStatus = 9 // mentor disetujui
)

// transitions: daftar status tujuan yang sah per status asal.
// Tidak ada lompatan status; transisi re-entrant = conflict di caller.
var transitions = map[ProposalStatus][]ProposalStatus{
	StatusDraft:          {StatusSubmitted},
	StatusSubmitted:      {StatusAssignedStage1},
	StatusAssignedStage1: {StatusRejectedDesk, StatusPassedDesk},
	StatusPassedDesk:     {StatusInPanel},
	StatusInPanel:        {StatusRejectedPanel, StatusPassedPanel},
	StatusPassedPanel:    {StatusMentorProposed},
	StatusMentorProposed: {StatusMentorApproved},
}

// CanTransition melaporkan apakah from→to ada di tabel transisi.
func CanTransition(from, to ProposalStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal: tidak ada transisi keluar lagi.
func (s ProposalStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

func (s ProposalStatus) Valid() bool {
	return s >= StatusDraft && s <= StatusMentorApproved
}

var statusLabels = map[ProposalStatus]string{
	StatusDraft:          "Draft",
	StatusSubmitted:      "Diajukan",
	StatusAssignedStage1: "Proses Review Tahap 1",
	StatusRejectedDesk:   "Tidak Lolos Tahap 1",
	StatusPassedDesk:     "Lolos Tahap 1",
	StatusInPanel:        "Proses Penilaian Tahap 2",
	StatusRejectedPanel:  "Tidak Lolos Tahap 2",
	StatusPassedPanel:    "Lolos Pendanaan",
	StatusMentorProposed: "Pengajuan Mentor",
	StatusMentorApproved: "Mentor Disetujui",
}

// Label: satu-satunya pemetaan status→teks; layar konsumen tidak boleh
// menduplikasi map ini.
func (s ProposalStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return "Tidak Diketahui"
}

/* =========================================================
   Pemetaan per tahap (tahap = 1 desk review, 2 panel)
   ========================================================= */

// DistributionSource: status yang WAJIB dimiliki proposal sebelum distribusi tahap ybs.
func DistributionSource(stage int) (ProposalStatus, bool) {
	switch stage {
	case 1:
		return StatusSubmitted, true
	case 2:
		return StatusPassedDesk, true
	}
	return 0, false
}

// DistributionTarget: status setelah distribusi tahap ybs.
func DistributionTarget(stage int) (ProposalStatus, bool) {
	switch stage {
	case 1:
		return StatusAssignedStage1, true
	case 2:
		return StatusInPanel, true
	}
	return 0, false
}

// FinalizationSource: status yang WAJIB dimiliki proposal sebelum finalisasi tahap ybs.
func FinalizationSource(stage int) (ProposalStatus, bool) {
	switch stage {
	case 1:
		return StatusAssignedStage1, true
	case 2:
		return StatusInPanel, true
	}
	return 0, false
}

// FinalizationOutcome: status tujuan pass/fail per tahap.
func FinalizationOutcome(stage int, pass bool) (ProposalStatus, bool) {
	switch stage {
	case 1:
		if pass {
			return StatusPassedDesk, true
		}
		return StatusRejectedDesk, true
	case 2:
		if pass {
			return StatusPassedPanel, true
		}
		return StatusRejectedPanel, true
	}
	return 0, false
}
