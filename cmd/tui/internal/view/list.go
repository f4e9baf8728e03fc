package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/kakeibo/internal/metrics"
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

type ListModel struct {
	CommonModel
	txService *transaction.Service

	table table.Model
	txs   []transaction.Transaction
	snap  transaction.Snapshot

	status string
	err    error
}

func NewListModel(txSvc *transaction.Service) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 6},
		{Title: "Category", Width: 14},
		{Title: "Amount", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ListModel{
		txService: txSvc,
		table:     t,
	}
}

func (m ListModel) Title() string { return "Transactions" }

func (m ListModel) ShortHelp() string {
	return "Esc: back | a: add | d: delete | b: budget | s: summary"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.txs = msg.txs
		m.snap = msg.snap
		m.refreshTable()

		return m, nil

	case deleteResultMsg:
		m.err = msg.err
		if msg.err == nil {
			m.status = "Deleted."
		}

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "a":
			return m, Open(ScreenAdd)
		case "b":
			return m, Open(ScreenBudget)
		case "s":
			return m, Open(ScreenSummary)
		case "d":
			return m, m.deleteSelectedCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) View() string {
	sum := metrics.Summarize(m.snap)

	header := fmt.Sprintf("Balance: %s | Remaining budget: %s",
		activeStyle(FormatYen(sum.CurrentBalance)),
		remainingStyle(sum).Render(FormatYen(sum.RemainingBudget)))

	var body string
	if len(m.txs) == 0 {
		body = faintStyle.Render("No transactions yet. Press a to add one.")
	} else {
		body = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View())
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		body,
	)

	switch {
	case m.err != nil:
		content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + content
	case m.status != "":
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return panelStyle.Render(content)
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			tx.Date,
			string(tx.Type),
			string(tx.Category),
			signedAmount(tx),
		})
	}

	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func signedAmount(tx transaction.Transaction) string {
	if tx.Type == transaction.TypeDebit {
		return FormatYen(-tx.Amount)
	}

	return "+" + FormatYen(tx.Amount)
}

func remainingStyle(sum metrics.Summary) lipgloss.Style {
	if sum.OverBudget {
		return errorStyle
	}

	return successStyle
}

// Messages

type loadListMsg struct {
	txs  []transaction.Transaction
	snap transaction.Snapshot
}

func (m ListModel) loadTxsCmd() tea.Cmd {
	return func() tea.Msg {
		return loadListMsg{
			txs:  m.txService.Reversed(),
			snap: m.txService.Snapshot(),
		}
	}
}

type deleteResultMsg struct {
	err error
}

func (m ListModel) deleteSelectedCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	id := m.txs[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.txService.Delete(ctx, id)

		return deleteResultMsg{err: err}
	}
}
