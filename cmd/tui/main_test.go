package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/kakeibo/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/kakeibo/internal/config"
	"github.com/MrJamesThe3rd/kakeibo/internal/exchange"
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction/store"
)

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()

	next, _ := m.Update(msg)

	return next.(model)
}

func TestModel_Navigation(t *testing.T) {
	txSvc := transaction.NewService(store.NewMemory())
	m := newModel(txSvc, exchange.NewService(txSvc))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	assert.Equal(t, view.ScreenList, m.currentView)

	m = update(t, m, view.OpenMsg{Screen: view.ScreenSummary})
	assert.Equal(t, view.ScreenSummary, m.currentView)

	// Views opened from the list return to it.
	m = update(t, m, view.BackMsg{})
	assert.Equal(t, view.ScreenList, m.currentView)

	m = update(t, m, view.BackMsg{})
	assert.Equal(t, view.ScreenMenu, m.currentView)
	assert.Nil(t, m.active)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	assert.Equal(t, view.ScreenBudget, m.currentView)

	m = update(t, m, view.BackMsg{})
	assert.Equal(t, view.ScreenMenu, m.currentView)
}

func TestNewLogger(t *testing.T) {
	t.Run("discards without a file", func(t *testing.T) {
		var cfg config.Config

		logger, closeLog, err := newLogger(&cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = closeLog() })

		assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
	})

	t.Run("writes to the configured file", func(t *testing.T) {
		var cfg config.Config
		cfg.Log.Level = "warn"
		cfg.Log.File = filepath.Join(t.TempDir(), "tui.log")

		logger, closeLog, err := newLogger(&cfg)
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Error("failed to persist ledger", "error", "disk full")
		require.NoError(t, closeLog())

		data, err := os.ReadFile(cfg.Log.File)
		require.NoError(t, err)
		assert.Contains(t, string(data), "failed to persist ledger")
		assert.NotContains(t, string(data), "hidden")
	})
}
