package view

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/kakeibo/internal/transaction"
)

// addFields is shared with the form bindings, so it must outlive model copies.
type addFields struct {
	txType   transaction.Type
	category transaction.Category
	amount   string
}

func (f *addFields) params() (transaction.AddParams, error) {
	amount, err := ParseYen(f.amount)
	if err != nil {
		return transaction.AddParams{}, err
	}

	category := f.category
	if !category.BelongsTo(f.txType) {
		category = ""
	}

	return transaction.AddParams{Type: f.txType, Amount: amount, Category: category}, nil
}

type AddModel struct {
	CommonModel
	txService *transaction.Service

	fields *addFields
	form   *huh.Form
	err    error

	// submitting is set while an add is in flight; the completed form must
	// not issue it again.
	submitting bool
}

func NewAddModel(txSvc *transaction.Service) AddModel {
	fields := &addFields{txType: transaction.TypeDebit}

	return AddModel{
		txService: txSvc,
		fields:    fields,
		form:      buildAddForm(fields),
	}
}

func buildAddForm(f *addFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("出金 (expense)", transaction.TypeDebit),
					huh.NewOption("入金 (income)", transaction.TypeCredit),
				).
				Value(&f.txType),

			huh.NewSelect[transaction.Category]().
				Key("category").
				Title("Category").
				OptionsFunc(func() []huh.Option[transaction.Category] {
					return huh.NewOptions(transaction.Categories(f.txType)...)
				}, &f.txType).
				Value(&f.category),

			huh.NewInput().
				Key("amount").
				Title("Amount (yen)").
				Placeholder("1200").
				Value(&f.amount).
				Validate(validateAmount),
		),
	).WithWidth(45).WithShowHelp(false)
}

func validateAmount(s string) error {
	v, err := ParseYen(s)
	if err != nil {
		return err
	}

	if v <= 0 {
		return errors.New("amount must be greater than zero")
	}

	if v > transaction.MaxAmount {
		return errors.New("amount is too large")
	}

	return nil
}

func (m AddModel) Title() string     { return "Add Transaction" }
func (m AddModel) ShortHelp() string { return "Enter: next | Esc: cancel" }

func (m AddModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, done := msg.(addResultMsg); m.submitting && !done {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case addResultMsg:
		switch {
		case msg.ok && msg.err == nil:
			return m, Back
		case msg.ok:
			m.err = fmt.Errorf("recorded but not saved: %w", msg.err)
		case msg.err != nil:
			m.err = msg.err
		default:
			m.err = errors.New("the ledger refused this transaction")
		}

		m.fields.amount = ""
		m.form = buildAddForm(m.fields)
		m.submitting = false

		return m, m.form.Init()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.submitting = true

	return m, m.addCmd()
}

func (m AddModel) View() string {
	content := m.form.View()
	if m.err != nil {
		content = errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n" + content
	}

	return panelStyle.Render(content)
}

type addResultMsg struct {
	tx  transaction.Transaction
	ok  bool
	err error
}

func (m AddModel) addCmd() tea.Cmd {
	params, err := m.fields.params()
	if err != nil {
		return func() tea.Msg { return addResultMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tx, ok, err := m.txService.Add(ctx, params)

		return addResultMsg{tx: tx, ok: ok, err: err}
	}
}
