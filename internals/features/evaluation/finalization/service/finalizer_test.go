package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	proposalModel "hibahku_backend/internals/features/evaluation/proposals/model"
)

func stateMap(states ...ProposalFinalState) map[uuid.UUID]ProposalFinalState {
	out := make(map[uuid.UUID]ProposalFinalState, len(states))
	for _, st := range states {
		out[st.ProposalID] = st
	}
	return out
}

func TestValidateBatchStage1OK(t *testing.T) {
	p1 := ProposalFinalState{ProposalID: uuid.New(), Status: proposalModel.StatusAssignedStage1}
	p2 := ProposalFinalState{ProposalID: uuid.New(), Status: proposalModel.StatusAssignedStage1}
	p3 := ProposalFinalState{ProposalID: uuid.New(), Status: proposalModel.StatusAssignedStage1}

	items := ValidateBatch(1,
		[]uuid.UUID{p1.ProposalID, p2.ProposalID},
		[]uuid.UUID{p3.ProposalID},
		stateMap(p1, p2, p3))
	require.Empty(t, items)
}

func TestValidateBatchEmptyUnion(t *testing.T) {
	items := ValidateBatch(1, nil, nil, nil)
	require.Len(t, items, 1)
	require.Contains(t, items[0].Reason, "kosong")
}

func TestValidateBatchOverlap(t *testing.T) {
	p := ProposalFinalState{ProposalID: uuid.New(), Status: proposalModel.StatusAssignedStage1}

	items := ValidateBatch(1,
		[]uuid.UUID{p.ProposalID},
		[]uuid.UUID{p.ProposalID},
		stateMap(p))
	require.Len(t, items, 1)
	require.Equal(t, p.ProposalID, items[0].ProposalID)
	require.Contains(t, items[0].Reason, "pass sekaligus fail")
}

func TestValidateBatchNotFound(t *testing.T) {
	missing := uuid.New()
	items := ValidateBatch(1, []uuid.UUID{missing}, nil, nil)
	require.Len(t, items, 1)
	require.Equal(t, missing, items[0].ProposalID)
	require.Contains(t, items[0].Reason, "tidak ditemukan")
}

func TestValidateBatchStage1WrongStatus(t *testing.T) {
	ok := ProposalFinalState{ProposalID: uuid.New(), Status: proposalModel.StatusAssignedStage1}
	draft := ProposalFinalState{ProposalID: uuid.New(), Status: proposalModel.StatusDraft}
	done := ProposalFinalState{ProposalID: uuid.New(), Status: proposalModel.StatusPassedDesk}

	// SEMUA id bermasalah dilaporkan, bukan hanya yang pertama
	items := ValidateBatch(1,
		[]uuid.UUID{ok.ProposalID, draft.ProposalID},
		[]uuid.UUID{done.ProposalID},
		stateMap(ok, draft, done))
	require.Len(t, items, 2)

	ids := map[uuid.UUID]string{}
	for _, it := range items {
		ids[it.ProposalID] = it.Reason
	}
	require.Contains(t, ids, draft.ProposalID)
	require.Contains(t, ids, done.ProposalID)
	require.NotContains(t, ids, ok.ProposalID)
}

func TestValidateBatchStage2IncompletePanel(t *testing.T) {
	// panel 3 orang, baru 2 yang mengirim nilai → tidak layak
	incomplete := ProposalFinalState{
		ProposalID:     uuid.New(),
		Status:         proposalModel.StatusInPanel,
		ActivePanel:    3,
		CompletedPanel: 2,
	}
	complete := ProposalFinalState{
		ProposalID:     uuid.New(),
		Status:         proposalModel.StatusInPanel,
		ActivePanel:    3,
		CompletedPanel: 3,
	}

	items := ValidateBatch(2,
		[]uuid.UUID{incomplete.ProposalID, complete.ProposalID},
		nil,
		stateMap(incomplete, complete))
	require.Len(t, items, 1)
	require.Equal(t, incomplete.ProposalID, items[0].ProposalID)
	require.Contains(t, items[0].Reason, "2 dari 3")
}

func TestValidateBatchStage2EmptyPanel(t *testing.T) {
	p := ProposalFinalState{ProposalID: uuid.New(), Status: proposalModel.StatusInPanel}

	items := ValidateBatch(2, []uuid.UUID{p.ProposalID}, nil, stateMap(p))
	require.Len(t, items, 1)
	require.Contains(t, items[0].Reason, "panel kosong")
}

func TestDedupIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	// urutan kemunculan pertama dipertahankan
	require.Equal(t, []uuid.UUID{a, b}, DedupIDs([]uuid.UUID{a, b, a, a, b}))
	require.Empty(t, DedupIDs(nil))
}

func TestDedupIDsKeepsBatchCountsHonest(t *testing.T) {
	// id berulang di daftar pass bermakna satu: setelah dedup, jumlah id
	// sama dengan jumlah baris yang layak ditulis (tidak ada 409 palsu)
	p := ProposalFinalState{ProposalID: uuid.New(), Status: proposalModel.StatusAssignedStage1}

	pass := DedupIDs([]uuid.UUID{p.ProposalID, p.ProposalID})
	require.Len(t, pass, 1)
	require.Empty(t, ValidateBatch(1, pass, nil, stateMap(p)))
}

func TestValidateBatchStage2OK(t *testing.T) {
	p1 := ProposalFinalState{
		ProposalID:     uuid.New(),
		Status:         proposalModel.StatusInPanel,
		ActivePanel:    4,
		CompletedPanel: 4,
	}
	p2 := ProposalFinalState{
		ProposalID:     uuid.New(),
		Status:         proposalModel.StatusInPanel,
		ActivePanel:    2,
		CompletedPanel: 2,
	}

	items := ValidateBatch(2,
		[]uuid.UUID{p1.ProposalID},
		[]uuid.UUID{p2.ProposalID},
		stateMap(p1, p2))
	require.Empty(t, items)
}
