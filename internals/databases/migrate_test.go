package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	assignmentModel "hibahku_backend/internals/features/evaluation/assignments/model"
)

// DDL yang tidak bisa diekspresikan lewat tag GORM harus tetap sinkron dengan
// konstanta model; dua pemeriksaan di bawah menjaga itu.

func TestMigrationDeclaresActivePairIndex(t *testing.T) {
	ddl, err := migrationFS.ReadFile("migrations/0001_init.sql")
	require.NoError(t, err)
	schema := string(ddl)

	// index parsial: satu assignment aktif per (proposal, evaluator)
	idx := strings.Index(schema, "uq_assignment_active_pair")
	require.Greater(t, idx, -1, "index parsial pasangan aktif tidak dideklarasikan")

	clause := schema[idx:]
	end := strings.Index(clause, ";")
	require.Greater(t, end, -1)
	clause = clause[:end]

	require.Contains(t, clause, "assignment_proposal_id")
	require.Contains(t, clause, "assignment_evaluator_id")
	require.Contains(t, clause, "WHERE assignment_status NOT IN")

	// daftar status non-aktif di WHERE harus sama dengan model.InactiveStatuses
	for _, st := range assignmentModel.InactiveStatuses {
		require.Contains(t, clause, "'"+st+"'")
	}
	require.NotContains(t, clause, "'"+assignmentModel.AssignmentStatusPending+"'")
	require.NotContains(t, clause, "'"+assignmentModel.AssignmentStatusCompleted+"'")
}

func TestMigrationDeclaresSubmissionUniqueIndex(t *testing.T) {
	ddl, err := migrationFS.ReadFile("migrations/0001_init.sql")
	require.NoError(t, err)
	schema := string(ddl)

	idx := strings.Index(schema, "uq_submission_per_assignment")
	require.Greater(t, idx, -1, "index unik submission per assignment tidak dideklarasikan")

	clause := schema[idx:]
	end := strings.Index(clause, ";")
	require.Greater(t, end, -1)
	require.Contains(t, clause[:end], "submission_assignment_id")
}
