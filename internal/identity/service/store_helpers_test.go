package service

import (
	"testing"

	"github.com/aussiebroadwan/identity/internal/identity/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}
