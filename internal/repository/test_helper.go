package repository

import (
	"testing"

	"github.com/possxc/ledger/pkg/store"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *store.Store {
	s, err := store.Open(store.Config{Path: ":memory:"}, false)
	require.NoError(t, err)

	err = s.Migrate(Entities()...)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}
