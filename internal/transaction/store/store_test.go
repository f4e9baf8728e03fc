package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kakeibo/internal/config"
	"github.com/MrJamesThe3rd/kakeibo/internal/database"
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction/store"
)

func newSQLiteStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "kakeibo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db, store.SQLite)
}

func TestStores(t *testing.T) {
	backends := map[string]func(t *testing.T) transaction.Repository{
		"Memory": func(*testing.T) transaction.Repository { return store.NewMemory() },
		"SQLite": func(t *testing.T) transaction.Repository { return newSQLiteStore(t) },
	}

	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := newRepo(t)

			got, err := repo.Load(ctx, transaction.KeyTransactions, transaction.KeyBudget)
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, repo.Save(ctx, map[string][]byte{
				transaction.KeyTransactions: []byte(`[]`),
				transaction.KeyBudget:       []byte("3000"),
			}))
			require.NoError(t, repo.Save(ctx, map[string][]byte{
				transaction.KeyBudget: []byte("-10"),
			}))

			got, err = repo.Load(ctx, transaction.KeyTransactions, transaction.KeyBudget, "unknown")
			require.NoError(t, err)
			assert.Equal(t, map[string][]byte{
				transaction.KeyTransactions: []byte(`[]`),
				transaction.KeyBudget:       []byte("-10"),
			}, got)
		})
	}
}

func TestSQLiteStore_ServiceRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteStore(t)

	svc := transaction.NewService(repo)
	require.NoError(t, svc.Open(ctx))

	_, ok, err := svc.Add(ctx, transaction.AddParams{Type: transaction.TypeDebit, Amount: 1000, Category: "食費"})
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = svc.Add(ctx, transaction.AddParams{Type: transaction.TypeCredit, Amount: 5000, Category: "給料"})
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, svc.SetBudget(ctx, 3000))

	reopened := transaction.NewService(repo)
	require.NoError(t, reopened.Open(ctx))

	assert.Equal(t, svc.Snapshot(), reopened.Snapshot())
}

func TestMemory_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	value := []byte("100")
	require.NoError(t, m.Save(ctx, map[string][]byte{transaction.KeyBudget: value}))

	value[0] = '9'

	got, err := m.Load(ctx, transaction.KeyBudget)
	require.NoError(t, err)
	assert.Equal(t, "100", string(got[transaction.KeyBudget]))
}

func TestOpen(t *testing.T) {
	cases := []struct {
		name    string
		backend config.Backend
		wantErr bool
	}{
		{name: "memory", backend: config.BackendMemory},
		{name: "sqlite", backend: config.BackendSQLite},
		{name: "unknown", backend: "localstorage", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cfg config.Config
			cfg.Storage.Backend = tc.backend
			cfg.Storage.SQLitePath = filepath.Join(t.TempDir(), "ledger", "kakeibo.db")

			repo, closeFn, err := store.Open(&cfg)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			t.Cleanup(func() { _ = closeFn() })

			require.NoError(t, repo.Save(context.Background(), map[string][]byte{transaction.KeyBudget: []byte("1")}))
		})
	}
}
