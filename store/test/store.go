package teststore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/knxxxn/UpMe/internal/profile"
	"github.com/knxxxn/UpMe/store"
	"github.com/knxxxn/UpMe/store/db"
)

// NewTestingStore creates a throwaway sqlite-backed store with the schema applied.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	p := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "upme_test.db"),
	}

	dbDriver, err := db.NewDBDriver(p)
	require.NoError(t, err)

	st := store.New(dbDriver, p)
	require.NoError(t, st.Migrate(ctx))
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}
