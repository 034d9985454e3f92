package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to ProposalStatus }{
		{StatusDraft, StatusSubmitted},
		{StatusSubmitted, StatusAssignedStage1},
		{StatusAssignedStage1, StatusRejectedDesk},
		{StatusAssignedStage1, StatusPassedDesk},
		{StatusPassedDesk, StatusInPanel},
		{StatusInPanel, StatusRejectedPanel},
		{StatusInPanel, StatusPassedPanel},
		{StatusPassedPanel, StatusMentorProposed},
		{StatusMentorProposed, StatusMentorApproved},
	}
	for _, tc := range allowed {
		require.True(t, CanTransition(tc.from, tc.to), "%d -> %d seharusnya sah", tc.from, tc.to)
	}

	// tidak boleh lompat, mundur, atau re-entrant
	forbidden := []struct{ from, to ProposalStatus }{
		{StatusDraft, StatusAssignedStage1},
		{StatusSubmitted, StatusPassedDesk},
		{StatusAssignedStage1, StatusInPanel},
		{StatusPassedDesk, StatusPassedPanel},
		{StatusInPanel, StatusMentorProposed},
		{StatusAssignedStage1, StatusSubmitted},
		{StatusPassedPanel, StatusPassedPanel},
		{StatusRejectedDesk, StatusPassedDesk},
		{StatusRejectedPanel, StatusPassedPanel},
		{StatusMentorApproved, StatusMentorProposed},
	}
	for _, tc := range forbidden {
		require.False(t, CanTransition(tc.from, tc.to), "%d -> %d seharusnya ditolak", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	require.True(t, StatusRejectedDesk.IsTerminal())
	require.True(t, StatusRejectedPanel.IsTerminal())
	require.True(t, StatusMentorApproved.IsTerminal())

	require.False(t, StatusDraft.IsTerminal())
	require.False(t, StatusInPanel.IsTerminal())
	require.False(t, StatusPassedPanel.IsTerminal())
}

func TestValid(t *testing.T) {
	for s := StatusDraft; s <= StatusMentorApproved; s++ {
		require.True(t, s.Valid())
	}
	require.False(t, ProposalStatus(-1).Valid())
	require.False(t, ProposalStatus(10).Valid())
}

func TestLabel(t *testing.T) {
	require.Equal(t, "Draft", StatusDraft.Label())
	require.Equal(t, "Lolos Pendanaan", StatusPassedPanel.Label())
	require.Equal(t, "Tidak Diketahui", ProposalStatus(42).Label())
}

func TestStageMappings(t *testing.T) {
	src, ok := DistributionSource(1)
	require.True(t, ok)
	require.Equal(t, StatusSubmitted, src)

	src, ok = DistributionSource(2)
	require.True(t, ok)
	require.Equal(t, StatusPassedDesk, src)

	_, ok = DistributionSource(3)
	require.False(t, ok)

	tgt, ok := DistributionTarget(1)
	require.True(t, ok)
	require.Equal(t, StatusAssignedStage1, tgt)

	tgt, ok = DistributionTarget(2)
	require.True(t, ok)
	require.Equal(t, StatusInPanel, tgt)

	// distribusi maupun finalisasi harus selalu melewati tabel transisi
	for _, stage := range []int{1, 2} {
		dSrc, _ := DistributionSource(stage)
		dTgt, _ := DistributionTarget(stage)
		require.True(t, CanTransition(dSrc, dTgt))

		fSrc, _ := FinalizationSource(stage)
		pass, _ := FinalizationOutcome(stage, true)
		fail, _ := FinalizationOutcome(stage, false)
		require.True(t, CanTransition(fSrc, pass))
		require.True(t, CanTransition(fSrc, fail))
	}
}

func TestFinalizationOutcome(t *testing.T) {
	pass, ok := FinalizationOutcome(1, true)
	require.True(t, ok)
	require.Equal(t, StatusPassedDesk, pass)

	fail, ok := FinalizationOutcome(1, false)
	require.True(t, ok)
	require.Equal(t, StatusRejectedDesk, fail)

	pass, ok = FinalizationOutcome(2, true)
	require.True(t, ok)
	require.Equal(t, StatusPassedPanel, pass)

	fail, ok = FinalizationOutcome(2, false)
	require.True(t, ok)
	require.Equal(t, StatusRejectedPanel, fail)

	_, ok = FinalizationOutcome(0, true)
	require.False(t, ok)
}
