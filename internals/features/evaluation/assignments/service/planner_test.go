package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newIDs(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func reviewers(n int) []EvaluatorLoad {
	out := make([]EvaluatorLoad, n)
	for i := range out {
		out[i] = EvaluatorLoad{EvaluatorID: uuid.New(), Role: "reviewer"}
	}
	return out
}

func TestPlanLoadBalancedSpread(t *testing.T) {
	// 5 proposal, 2 reviewer → pembagian 3/2, selisih beban maksimal 1
	proposals := newIDs(5)
	evals := reviewers(2)

	plan, err := PlanLoadBalanced(proposals, evals)
	require.NoError(t, err)
	require.Len(t, plan, 5)

	counts := map[uuid.UUID]int{}
	for _, pa := range plan {
		counts[pa.EvaluatorID]++
	}
	require.Len(t, counts, 2)

	min, max := 5, 0
	for _, c := range counts {
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	require.LessOrEqual(t, max-min, 1)
	require.Equal(t, 3, max)
	require.Equal(t, 2, min)
}

func TestPlanLoadBalancedRespectsExistingLoad(t *testing.T) {
	// evaluator dengan beban awal lebih besar menerima lebih sedikit
	busy := EvaluatorLoad{EvaluatorID: uuid.New(), Role: "reviewer", ActiveCount: 3}
	idle := EvaluatorLoad{EvaluatorID: uuid.New(), Role: "reviewer", ActiveCount: 0}

	plan, err := PlanLoadBalanced(newIDs(3), []EvaluatorLoad{busy, idle})
	require.NoError(t, err)

	counts := GroupByEvaluator(plan)
	require.Len(t, counts[idle.EvaluatorID], 3)
	require.Empty(t, counts[busy.EvaluatorID])
}

func TestPlanLoadBalancedDeterministic(t *testing.T) {
	proposals := newIDs(7)
	evals := reviewers(3)

	first, err := PlanLoadBalanced(proposals, evals)
	require.NoError(t, err)

	// urutan input diacak → hasil tetap sama
	shuffled := []uuid.UUID{proposals[4], proposals[0], proposals[6], proposals[2], proposals[1], proposals[5], proposals[3]}
	evalsRev := []EvaluatorLoad{evals[2], evals[0], evals[1]}

	second, err := PlanLoadBalanced(shuffled, evalsRev)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestPlanLoadBalancedDedupsProposals(t *testing.T) {
	p := uuid.New()
	plan, err := PlanLoadBalanced([]uuid.UUID{p, p, p}, reviewers(2))
	require.NoError(t, err)
	require.Len(t, plan, 1)
}

func TestPlanLoadBalancedEmptyInputs(t *testing.T) {
	_, err := PlanLoadBalanced(nil, reviewers(2))
	require.ErrorIs(t, err, ErrNoProposals)

	_, err = PlanLoadBalanced(newIDs(2), nil)
	require.ErrorIs(t, err, ErrNoEvaluator)
}

func TestPlanAllToAllCartesian(t *testing.T) {
	proposals := newIDs(4)
	evals := append(reviewers(2),
		EvaluatorLoad{EvaluatorID: uuid.New(), Role: "juri"},
		EvaluatorLoad{EvaluatorID: uuid.New(), Role: "juri"},
	)

	plan, err := PlanAllToAll(context.Background(), proposals, evals)
	require.NoError(t, err)
	require.Len(t, plan, 4*4)

	// setiap pasangan (proposal, evaluator) muncul tepat sekali
	pairs := map[string]int{}
	for _, pa := range plan {
		pairs[fmt.Sprintf("%s|%s", pa.ProposalID, pa.EvaluatorID)]++
	}
	require.Len(t, pairs, 16)
	for k, n := range pairs {
		require.Equal(t, 1, n, "pasangan %s terduplikasi", k)
	}
}

func TestPlanAllToAllDedupsEvaluators(t *testing.T) {
	ev := EvaluatorLoad{EvaluatorID: uuid.New(), Role: "juri"}
	plan, err := PlanAllToAll(context.Background(), newIDs(3), []EvaluatorLoad{ev, ev})
	require.NoError(t, err)
	require.Len(t, plan, 3)
}

func TestPlanAllToAllDeterministic(t *testing.T) {
	proposals := newIDs(3)
	evals := reviewers(3)

	first, err := PlanAllToAll(context.Background(), proposals, evals)
	require.NoError(t, err)

	second, err := PlanAllToAll(context.Background(),
		[]uuid.UUID{proposals[2], proposals[1], proposals[0]},
		[]EvaluatorLoad{evals[1], evals[2], evals[0]})
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestPlanAllToAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PlanAllToAll(ctx, newIDs(2), reviewers(2))
	require.ErrorIs(t, err, context.Canceled)
}

func TestGroupByEvaluator(t *testing.T) {
	evals := reviewers(2)
	plan, err := PlanLoadBalanced(newIDs(4), evals)
	require.NoError(t, err)

	grouped := GroupByEvaluator(plan)
	total := 0
	for _, ids := range grouped {
		total += len(ids)
	}
	require.Equal(t, 4, total)
}
