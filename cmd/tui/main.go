package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/kakeibo/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/kakeibo/internal/config"
	"github.com/MrJamesThe3rd/kakeibo/internal/exchange"
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
	txStore "github.com/MrJamesThe3rd/kakeibo/internal/transaction/store"
)

type model struct {
	txService       *transaction.Service
	exchangeService *exchange.Service

	currentView view.Screen
	// origin is where BackMsg returns to; views opened from the list go back to it.
	origin view.Screen
	active view.View
	size   tea.WindowSizeMsg
}

func newModel(txSvc *transaction.Service, exSvc *exchange.Service) model {
	return model{
		txService:       txSvc,
		exchangeService: exSvc,
		currentView:     view.ScreenMenu,
		origin:          view.ScreenMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(s view.Screen) (model, tea.Cmd) {
	switch s {
	case view.ScreenList:
		m.active = view.NewListModel(m.txService)
	case view.ScreenAdd:
		m.active = view.NewAddModel(m.txService)
	case view.ScreenBudget:
		m.active = view.NewBudgetModel(m.txService)
	case view.ScreenSummary:
		m.active = view.NewSummaryModel(m.txService)
	case view.ScreenImport:
		m.active = view.NewImportModel(m.exchangeService)
	case view.ScreenExport:
		m.active = view.NewExportModel(m.exchangeService)
	default:
		m.currentView = view.ScreenMenu
		m.active = nil

		return m, nil
	}

	m.currentView = s

	cmds := []tea.Cmd{m.active.Init()}
	if m.size.Width > 0 {
		size := m.size
		cmds = append(cmds, func() tea.Msg { return size })
	}

	return m, tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == view.ScreenMenu {
			return m.updateMenu(msg)
		}
	case view.OpenMsg:
		m.origin = m.currentView
		return m.open(msg.Screen)
	case view.BackMsg:
		if m.currentView != view.ScreenList && m.origin == view.ScreenList {
			m.origin = view.ScreenMenu
			return m.open(view.ScreenList)
		}

		m.origin = view.ScreenMenu

		return m.open(view.ScreenMenu)
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	if v, ok := next.(view.View); ok {
		m.active = v
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	screens := map[string]view.Screen{
		"1": view.ScreenList,
		"2": view.ScreenAdd,
		"3": view.ScreenBudget,
		"4": view.ScreenSummary,
		"5": view.ScreenImport,
		"6": view.ScreenExport,
	}

	if msg.String() == "q" {
		return m, tea.Quit
	}

	if s, ok := screens[msg.String()]; ok {
		m.origin = view.ScreenMenu
		return m.open(s)
	}

	return m, nil
}

func (m model) View() string {
	if m.currentView == view.ScreenMenu || m.active == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			"Kakeibo 家計簿\n\n" +
				"1. List Transactions\n" +
				"2. Add Transaction\n" +
				"3. Set Budget\n" +
				"4. Summary\n" +
				"5. Import CSV\n" +
				"6. Export\n\n" +
				"q. Quit",
		)
	}

	title := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(m.active.Title())
	help := lipgloss.NewStyle().Faint(true).Padding(0, 1).Render(m.active.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, m.active.View(), help)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	repo, closeRepo, err := txStore.Open(cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	txSvc := transaction.NewService(repo, transaction.WithLogger(logger))
	if err := txSvc.Open(context.Background()); err != nil {
		slog.Error("failed to open ledger", "error", err)
		os.Exit(1)
	}

	// Anything written to stderr would draw over the alternate screen.
	slog.SetDefault(logger)

	p := tea.NewProgram(newModel(txSvc, exchange.NewService(txSvc)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to run TUI:", err)
		os.Exit(1)
	}
}

// newLogger returns the TUI logger: LOG_FILE at LOG_LEVEL, or a discarding
// logger when no file is configured.
func newLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	if cfg.Log.File == "" {
		return slog.New(slog.DiscardHandler), func() error { return nil }, nil
	}

	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel()})

	return slog.New(handler), f.Close, nil
}
