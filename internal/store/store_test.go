package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesTablesAndRecordsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sqlite3")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.RecordGeneration(0, 0.5, 0.25, 40, 0, 2))
	require.NoError(t, s.RecordChampion(0, 0.5, "feedforward\n1\n2\n1\n0.1 0.2\n0.3 0.4\n"))

	dump, err := s.LatestChampion()
	require.NoError(t, err)
	assert.Contains(t, dump, "feedforward")
}

func TestOpenRecreatesExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sqlite3")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.RecordGeneration(0, 1.0, 1.0, 1, 0, 0))
	require.NoError(t, s1.RecordChampion(0, 1.0, "feedforward\n1\n1\n1\n0.5\n"))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	_, err = s2.LatestChampion()
	assert.Error(t, err) // fresh database has no champion rows yet
}
