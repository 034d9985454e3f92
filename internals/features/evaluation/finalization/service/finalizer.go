// internals/features/evaluation/finalization/service/finalizer.go
//
// Validasi kelayakan finalisasi, murni tanpa DB. Controller memanggil ini
// dua kali secara efektif: data dibaca DI DALAM transaksi lalu divalidasi,
// sehingga snapshot yang diperiksa sama dengan snapshot yang ditulis.
package service

import (
	"fmt"

	"github.com/google/uuid"

	proposalModel "hibahku_backend/internals/features/evaluation/proposals/model"
)

// ProposalFinalState: potret satu proposal saat finalisasi.
// ActivePanel/CompletedPanel hanya relevan untuk tahap 2.
type ProposalFinalState struct {
	ProposalID     uuid.UUID
	Status         proposalModel.ProposalStatus
	ActivePanel    int
	CompletedPanel int
}

type IneligibleItem struct {
	ProposalID uuid.UUID `json:"proposal_id"`
	Reason     string    `json:"reason"`
}

// DedupIDs membuang id duplikat dengan mempertahankan urutan kemunculan
// pertama. Caller wajib memanggil ini sebelum menulis: id ganda dalam satu
// daftar bermakna satu, dan UPDATE kondisional menghitung baris per id unik.
func DedupIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ValidateBatch memeriksa SEMUA id dan mengembalikan seluruh daftar yang
// gagal beserta alasannya (bukan berhenti di kegagalan pertama) — kontrak
// EligibilityError: satu response memuat semua id bermasalah.
//
// Syarat per proposal:
//   - tahap 1: status tepat 2 (terdistribusi, belum difinalkan)
//   - tahap 2: status tepat 5 DAN semua panelis aktif sudah mengirim nilai
//     DAN panel tidak kosong
//
// pass dan fail wajib disjoint dan gabungannya tidak kosong.
func ValidateBatch(stage int, pass, fail []uuid.UUID, states map[uuid.UUID]ProposalFinalState) []IneligibleItem {
	items := make([]IneligibleItem, 0)

	if len(pass)+len(fail) == 0 {
		return append(items, IneligibleItem{Reason: "daftar pass dan fail kosong"})
	}

	passSet := make(map[uuid.UUID]struct{}, len(pass))
	for _, id := range pass {
		passSet[id] = struct{}{}
	}
	for _, id := range fail {
		if _, both := passSet[id]; both {
			items = append(items, IneligibleItem{ProposalID: id, Reason: "muncul di daftar pass sekaligus fail"})
		}
	}

	required, _ := proposalModel.FinalizationSource(stage)

	check := func(id uuid.UUID) {
		st, ok := states[id]
		if !ok {
			items = append(items, IneligibleItem{ProposalID: id, Reason: "proposal tidak ditemukan di program/tahap ini"})
			return
		}
		if st.Status != required {
			items = append(items, IneligibleItem{
				ProposalID: id,
				Reason: fmt.Sprintf("status harus %d (%s), sekarang %d (%s)",
					int(required), required.Label(), int(st.Status), st.Status.Label()),
			})
			return
		}
		if stage == 2 {
			if st.ActivePanel == 0 {
				items = append(items, IneligibleItem{ProposalID: id, Reason: "panel kosong: belum ada penugasan aktif"})
				return
			}
			if st.CompletedPanel != st.ActivePanel {
				items = append(items, IneligibleItem{
					ProposalID: id,
					Reason: fmt.Sprintf("baru %d dari %d panelis yang mengirim nilai",
						st.CompletedPanel, st.ActivePanel),
				})
			}
		}
	}

	seen := make(map[uuid.UUID]struct{}, len(pass)+len(fail))
	for _, id := range append(append([]uuid.UUID{}, pass...), fail...) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		check(id)
	}

	return items
}
