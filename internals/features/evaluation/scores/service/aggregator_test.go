package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestWeightedTotal(t *testing.T) {
	// bobot 40/35/25, nilai 80/90/70 → 32 + 31.5 + 17.5 = 81.0
	c1, c2, c3 := uuid.New(), uuid.New(), uuid.New()
	criteria := []CriterionWeight{
		{CriterionID: c1, Weight: 40, Active: true},
		{CriterionID: c2, Weight: 35, Active: true},
		{CriterionID: c3, Weight: 25, Active: true},
	}
	scores := []RawScore{
		{CriterionID: c1, Score: 80},
		{CriterionID: c2, Score: 90},
		{CriterionID: c3, Score: 70},
	}

	total, err := WeightedTotal(criteria, scores)
	require.NoError(t, err)
	require.Equal(t, 81.0, total)
}

func TestWeightedTotalHalfPoint(t *testing.T) {
	// nilai 90 di bobot terbesar menghasilkan total pecahan .5
	c1, c2, c3 := uuid.New(), uuid.New(), uuid.New()
	criteria := []CriterionWeight{
		{CriterionID: c1, Weight: 40, Active: true},
		{CriterionID: c2, Weight: 35, Active: true},
		{CriterionID: c3, Weight: 25, Active: true},
	}
	scores := []RawScore{
		{CriterionID: c1, Score: 90},
		{CriterionID: c2, Score: 80},
		{CriterionID: c3, Score: 70},
	}

	// 36 + 28 + 17.5 = 81.5
	total, err := WeightedTotal(criteria, scores)
	require.NoError(t, err)
	require.Equal(t, 81.5, total)
}

func TestWeightedTotalIgnoresInactiveCriteria(t *testing.T) {
	active, inactive := uuid.New(), uuid.New()
	criteria := []CriterionWeight{
		{CriterionID: active, Weight: 100, Active: true},
		{CriterionID: inactive, Weight: 50, Active: false},
	}

	// kriteria nonaktif tidak wajib dinilai
	total, err := WeightedTotal(criteria, []RawScore{{CriterionID: active, Score: 75}})
	require.NoError(t, err)
	require.Equal(t, 75.0, total)

	// tetapi nilai untuk kriteria nonaktif ditolak
	_, err = WeightedTotal(criteria, []RawScore{
		{CriterionID: active, Score: 75},
		{CriterionID: inactive, Score: 50},
	})
	require.Error(t, err)
}

func TestWeightedTotalMissingCriterion(t *testing.T) {
	c1, c2 := uuid.New(), uuid.New()
	criteria := []CriterionWeight{
		{CriterionID: c1, Weight: 60, Active: true},
		{CriterionID: c2, Weight: 40, Active: true},
	}

	_, err := WeightedTotal(criteria, []RawScore{{CriterionID: c1, Score: 90}})
	require.ErrorContains(t, err, "wajib dinilai")
}

func TestWeightedTotalDuplicateCriterion(t *testing.T) {
	c1 := uuid.New()
	criteria := []CriterionWeight{{CriterionID: c1, Weight: 100, Active: true}}

	_, err := WeightedTotal(criteria, []RawScore{
		{CriterionID: c1, Score: 80},
		{CriterionID: c1, Score: 90},
	})
	require.ErrorContains(t, err, "lebih dari sekali")
}

func TestWeightedTotalScoreOutOfRange(t *testing.T) {
	c1 := uuid.New()
	criteria := []CriterionWeight{{CriterionID: c1, Weight: 100, Active: true}}

	_, err := WeightedTotal(criteria, []RawScore{{CriterionID: c1, Score: 101}})
	require.ErrorContains(t, err, "di luar jangkauan")

	_, err = WeightedTotal(criteria, []RawScore{{CriterionID: c1, Score: -1}})
	require.ErrorContains(t, err, "di luar jangkauan")
}

func TestWeightedTotalUnknownCriterion(t *testing.T) {
	criteria := []CriterionWeight{{CriterionID: uuid.New(), Weight: 100, Active: true}}

	_, err := WeightedTotal(criteria, []RawScore{{CriterionID: uuid.New(), Score: 50}})
	require.ErrorContains(t, err, "tidak aktif atau tidak dikenal")
}

func TestWeightedTotalNoActiveCriteria(t *testing.T) {
	_, err := WeightedTotal(nil, nil)
	require.Error(t, err)

	_, err = WeightedTotal([]CriterionWeight{{CriterionID: uuid.New(), Weight: 50, Active: false}}, nil)
	require.Error(t, err)
}

func TestWeightedTotalRounding(t *testing.T) {
	c1, c2, c3 := uuid.New(), uuid.New(), uuid.New()
	criteria := []CriterionWeight{
		{CriterionID: c1, Weight: 33, Active: true},
		{CriterionID: c2, Weight: 33, Active: true},
		{CriterionID: c3, Weight: 34, Active: true},
	}
	scores := []RawScore{
		{CriterionID: c1, Score: 85},
		{CriterionID: c2, Score: 77},
		{CriterionID: c3, Score: 91},
	}

	// 28.05 + 25.41 + 30.94 = 84.40
	total, err := WeightedTotal(criteria, scores)
	require.NoError(t, err)
	require.Equal(t, 84.4, total)
}

func TestRound2(t *testing.T) {
	require.Equal(t, 81.5, Round2(81.5))
	require.Equal(t, 0.13, Round2(0.125)) // half-away-from-zero
	require.Equal(t, -0.13, Round2(-0.125))
	require.Equal(t, 100.0, Round2(99.999))
}

func TestBuildRecap(t *testing.T) {
	subs := []SubmissionSummary{
		{AssignmentID: uuid.New(), EvaluatorID: uuid.New(), Role: "reviewer", Total: 81.5},
		{AssignmentID: uuid.New(), EvaluatorID: uuid.New(), Role: "reviewer", Total: 74.0},
		{AssignmentID: uuid.New(), EvaluatorID: uuid.New(), Role: "juri", Total: 88.25},
	}

	r := BuildRecap(subs)
	require.Equal(t, 2, r.TotalReviewer)
	require.Equal(t, 1, r.TotalJuri)
	require.Equal(t, 3, r.TotalGabungan)
	require.Equal(t, 88.25, r.Juri[0].Total)
}

func TestBuildRecapEmpty(t *testing.T) {
	r := BuildRecap(nil)
	require.NotNil(t, r.Reviewer)
	require.NotNil(t, r.Juri)
	require.Zero(t, r.TotalGabungan)
}
