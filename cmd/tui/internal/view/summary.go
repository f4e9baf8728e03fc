package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/kakeibo/internal/metrics"
	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

const maxBarWidth = 30

var (
	labelStyle = lipgloss.NewStyle().Width(16)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

type SummaryModel struct {
	CommonModel
	txService *transaction.Service
	summary   metrics.Summary
}

func NewSummaryModel(txSvc *transaction.Service) SummaryModel {
	return SummaryModel{txService: txSvc}
}

func (m SummaryModel) Title() string     { return "Summary" }
func (m SummaryModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m SummaryModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryMsg:
		m.summary = msg.summary
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m SummaryModel) View() string {
	sum := m.summary

	lines := []string{
		row("Income", FormatYen(sum.TotalIncome)),
		row("Expense", FormatYen(sum.TotalExpense)),
		row("Balance", activeStyle(FormatYen(sum.CurrentBalance))),
		"",
		row("Budget", FormatYen(sum.Budget)),
		row("Remaining", remainingStyle(sum).Render(FormatYen(sum.RemainingBudget))),
	}

	if sum.OverBudget {
		lines = append(lines, "", errorStyle.Bold(true).Render("予算オーバー! You are over budget."))
	}

	lines = append(lines, "", lipgloss.NewStyle().Bold(true).Render("Expenses by category"))

	if len(sum.Breakdown) == 0 {
		lines = append(lines, faintStyle.Render("No expenses recorded."))
	}

	var top int64
	for _, ca := range sum.Breakdown {
		top = max(top, ca.Amount)
	}

	for _, ca := range sum.Breakdown {
		bar := barStyle.Render(strings.Repeat("█", barWidth(ca.Amount, top, maxBarWidth)))
		lines = append(lines, fmt.Sprintf("%s %s %s", labelStyle.Render(string(ca.Category)), bar, FormatYen(ca.Amount)))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

func row(label, value string) string {
	return labelStyle.Render(label) + " " + value
}

// barWidth scales amount against top; any positive amount gets at least one cell.
func barWidth(amount, top int64, width int) int {
	if amount <= 0 || top <= 0 {
		return 0
	}

	return min(max(int(float64(amount)/float64(top)*float64(width)), 1), width)
}

type summaryMsg struct {
	summary metrics.Summary
}

func (m SummaryModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return summaryMsg{summary: metrics.Summarize(m.txService.Snapshot())}
	}
}
