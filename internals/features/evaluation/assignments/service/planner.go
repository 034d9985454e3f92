// internals/features/evaluation/assignments/service/planner.go
//
// Perencana distribusi murni (tanpa DB): hasilnya deterministik supaya
// preview dan execute menghitung rencana yang sama, dan supaya gampang diuji.
package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoProposals = errors.New("tidak ada proposal yang bisa didistribusikan")
	ErrNoEvaluator = errors.New("tidak ada evaluator aktif")
)

type EvaluatorLoad struct {
	EvaluatorID uuid.UUID
	Role        string
	ActiveCount int
}

type PlannedAssignment struct {
	ProposalID  uuid.UUID `json:"proposal_id"`
	EvaluatorID uuid.UUID `json:"evaluator_id"`
	Role        string    `json:"role"`
}

// PlanLoadBalanced membagi proposal serata mungkin ke para reviewer (tahap 1).
// Aturan: urutkan evaluator berdasarkan beban aktif menaik (seri → id menaik),
// proposal diproses berdasarkan id menaik, beban evaluator terpilih naik satu
// setelah tiap penugasan. Selisih max-min beban hasil selalu ≤ 1.
func PlanLoadBalanced(proposalIDs []uuid.UUID, evaluators []EvaluatorLoad) ([]PlannedAssignment, error) {
	if len(proposalIDs) == 0 {
		return nil, ErrNoProposals
	}
	if len(evaluators) == 0 {
		return nil, ErrNoEvaluator
	}

	proposals := sortedUnique(proposalIDs)

	// salin supaya slice milik caller tidak teracak
	evals := make([]EvaluatorLoad, len(evaluators))
	copy(evals, evaluators)
	sortEvaluators(evals)

	plan := make([]PlannedAssignment, 0, len(proposals))
	for _, pid := range proposals {
		// pilih evaluator dengan beban terkecil; seri dipecah id menaik
		best := 0
		for i := 1; i < len(evals); i++ {
			if evals[i].ActiveCount < evals[best].ActiveCount ||
				(evals[i].ActiveCount == evals[best].ActiveCount &&
					evals[i].EvaluatorID.String() < evals[best].EvaluatorID.String()) {
				best = i
			}
		}
		plan = append(plan, PlannedAssignment{
			ProposalID:  pid,
			EvaluatorID: evals[best].EvaluatorID,
			Role:        evals[best].Role,
		})
		evals[best].ActiveCount++
	}
	return plan, nil
}

// PlanAllToAll membangun fan-out Cartesian tahap 2: setiap proposal ke SETIAP
// evaluator aktif (reviewer + juri). Slice per evaluator dihitung paralel,
// hasil digabung dalam urutan evaluator supaya tetap deterministik.
func PlanAllToAll(ctx context.Context, proposalIDs []uuid.UUID, evaluators []EvaluatorLoad) ([]PlannedAssignment, error) {
	if len(proposalIDs) == 0 {
		return nil, ErrNoProposals
	}
	if len(evaluators) == 0 {
		return nil, ErrNoEvaluator
	}

	proposals := sortedUnique(proposalIDs)

	evals := make([]EvaluatorLoad, len(evaluators))
	copy(evals, evaluators)
	sortEvaluators(evals)
	evals = dedupEvaluators(evals)

	parts := make([][]PlannedAssignment, len(evals))
	g, ctx := errgroup.WithContext(ctx)
	for i, ev := range evals {
		i, ev := i, ev
		g.Go(func() error {
			part := make([]PlannedAssignment, 0, len(proposals))
			for _, pid := range proposals {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				part = append(part, PlannedAssignment{
					ProposalID:  pid,
					EvaluatorID: ev.EvaluatorID,
					Role:        ev.Role,
				})
			}
			parts[i] = part
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	plan := make([]PlannedAssignment, 0, len(proposals)*len(evals))
	for _, part := range parts {
		plan = append(plan, part...)
	}
	return plan, nil
}

// GroupByEvaluator mengelompokkan rencana per evaluator untuk layar preview.
func GroupByEvaluator(plan []PlannedAssignment) map[uuid.UUID][]uuid.UUID {
	out := make(map[uuid.UUID][]uuid.UUID)
	for _, pa := range plan {
		out[pa.EvaluatorID] = append(out[pa.EvaluatorID], pa.ProposalID)
	}
	return out
}

func sortedUnique(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func sortEvaluators(evals []EvaluatorLoad) {
	sort.Slice(evals, func(i, j int) bool {
		if evals[i].ActiveCount != evals[j].ActiveCount {
			return evals[i].ActiveCount < evals[j].ActiveCount
		}
		return evals[i].EvaluatorID.String() < evals[j].EvaluatorID.String()
	})
}

func dedupEvaluators(evals []EvaluatorLoad) []EvaluatorLoad {
	out := evals[:0]
	seen := make(map[uuid.UUID]struct{}, len(evals))
	for _, ev := range evals {
		if _, ok := seen[ev.EvaluatorID]; ok {
			continue
		}
		seen[ev.EvaluatorID] = struct{}{}
		out = append(out, ev)
	}
	return out
}
