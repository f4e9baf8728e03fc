package view

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

type BudgetModel struct {
	CommonModel
	txService *transaction.Service

	value *string
	form  *huh.Form
	err   error
}

func NewBudgetModel(txSvc *transaction.Service) BudgetModel {
	value := strconv.FormatInt(txSvc.Snapshot().Budget, 10)

	m := BudgetModel{
		txService: txSvc,
		value:     &value,
	}
	m.form = m.buildForm()

	return m
}

func (m BudgetModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("budget").
				Title("Monthly budget (yen)").
				Value(m.value).
				Validate(func(s string) error {
					_, err := ParseYen(s)
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m BudgetModel) Title() string     { return "Budget" }
func (m BudgetModel) ShortHelp() string { return "Enter: save | Esc: cancel" }

func (m BudgetModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m BudgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case budgetSavedMsg:
		if msg.err == nil {
			return m, Back
		}

		m.err = msg.err
		m.form = m.buildForm()

		return m, m.form.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m BudgetModel) View() string {
	content := m.form.View()
	if m.err != nil {
		content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + content
	}

	return panelStyle.Render(content)
}

type budgetSavedMsg struct {
	err error
}

func (m BudgetModel) saveCmd() tea.Cmd {
	v, err := ParseYen(*m.value)
	if err != nil {
		return func() tea.Msg { return budgetSavedMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return budgetSavedMsg{err: m.txService.SetBudget(ctx, v)}
	}
}
