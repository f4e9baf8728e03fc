package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// Screen identifies a top-level view.
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenList
	ScreenAdd
	ScreenBudget
	ScreenSummary
	ScreenImport
	ScreenExport
)

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// OpenMsg asks the root model to switch to Screen.
type OpenMsg struct {
	Screen Screen
}

func Open(s Screen) tea.Cmd {
	return func() tea.Msg {
		return OpenMsg{Screen: s}
	}
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	panelStyle   = lipgloss.NewStyle().Padding(1)
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}
