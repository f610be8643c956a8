package services

import (
	"testing"

	"github.com/possxc/ledger/internal/repository"
	"github.com/possxc/ledger/pkg/store"
	"github.com/stretchr/testify/require"
)

// setupTestStore opens an in-memory store with the full schema. The
// transactional flows are tested against real SQLite so rollbacks are
// exercised for real, not mocked away.
func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(store.Config{Path: ":memory:"}, false)
	require.NoError(t, err)

	require.NoError(t, s.Migrate(repository.Entities()...))

	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}
