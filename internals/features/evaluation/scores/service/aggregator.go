// internals/features/evaluation/scores/service/aggregator.go
//
// Agregator nilai murni: total = Σ(bobot/100 × nilai mentah) atas semua
// kriteria aktif tahap, dibulatkan 2 desimal. Domain nilai mentah: integer
// 0..100. Dipisah dari controller supaya bisa diuji tanpa DB.
package service

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

type CriterionWeight struct {
	CriterionID uuid.UUID
	Weight      int // 1..100
	Active      bool
}

type RawScore struct {
	CriterionID uuid.UUID
	Score       int // 0..100
	Note        *string
}

// WeightedTotal menghitung total berbobot satu submission.
// Setiap kriteria AKTIF wajib dinilai tepat satu kali; nilai untuk kriteria
// nonaktif/tak dikenal ditolak.
func WeightedTotal(criteria []CriterionWeight, scores []RawScore) (float64, error) {
	active := make(map[uuid.UUID]int, len(criteria))
	for _, cr := range criteria {
		if cr.Active {
			active[cr.CriterionID] = cr.Weight
		}
	}
	if len(active) == 0 {
		return 0, fmt.Errorf("tahap tidak memiliki kriteria aktif")
	}

	seen := make(map[uuid.UUID]struct{}, len(scores))
	sum := 0.0
	for _, s := range scores {
		w, ok := active[s.CriterionID]
		if !ok {
			return 0, fmt.Errorf("kriteria %s tidak aktif atau tidak dikenal", s.CriterionID)
		}
		if _, dup := seen[s.CriterionID]; dup {
			return 0, fmt.Errorf("kriteria %s dinilai lebih dari sekali", s.CriterionID)
		}
		if s.Score < 0 || s.Score > 100 {
			return 0, fmt.Errorf("nilai mentah %d di luar jangkauan 0..100", s.Score)
		}
		seen[s.CriterionID] = struct{}{}
		sum += float64(w) / 100.0 * float64(s.Score)
	}
	if len(seen) != len(active) {
		return 0, fmt.Errorf("semua kriteria aktif wajib dinilai (%d dari %d)", len(seen), len(active))
	}

	return Round2(sum), nil
}

// Round2: pembulatan half-away-from-zero ke 2 desimal, satu-satunya
// kebijakan rounding di seluruh mesin.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

/* =========================================================
   REKAP
   ========================================================= */

// SubmissionSummary: satu submission selesai dalam rekap.
type SubmissionSummary struct {
	AssignmentID uuid.UUID `json:"assignment_id"`
	EvaluatorID  uuid.UUID `json:"evaluator_id"`
	Role         string    `json:"role"`
	Total        float64   `json:"total"`
}

// Recap: rekap per proposal per tahap. Mesin tidak merata-ratakan lintas
// reviewer — konsumen (layar/finalisasi) membaca himpunan mentahnya.
type Recap struct {
	Reviewer      []SubmissionSummary `json:"reviewer"`
	Juri          []SubmissionSummary `json:"juri"`
	TotalReviewer int                 `json:"total_reviewer"`
	TotalJuri     int                 `json:"total_juri"`
	TotalGabungan int                 `json:"total_gabungan"`
}

// BuildRecap memisahkan submission selesai per role dan menghitung jumlah
// gabungan yang dipakai sebagai sinyal kelayakan finalisasi tahap 2.
func BuildRecap(submissions []SubmissionSummary) Recap {
	r := Recap{
		Reviewer: make([]SubmissionSummary, 0),
		Juri:     make([]SubmissionSummary, 0),
	}
	for _, s := range submissions {
		switch s.Role {
		case "juri":
			r.Juri = append(r.Juri, s)
		default:
			r.Reviewer = append(r.Reviewer, s)
		}
	}
	r.TotalReviewer = len(r.Reviewer)
	r.TotalJuri = len(r.Juri)
	r.TotalGabungan = r.TotalReviewer + r.TotalJuri
	return r
}
