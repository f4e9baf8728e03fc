package view

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/kakeibo/internal/exchange"
)

type exportFormat string

const (
	formatCSV  exportFormat = "csv"
	formatXLSX exportFormat = "xlsx"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateResult
)

type exportFields struct {
	format exportFormat
	dir    string
}

type ExportModel struct {
	CommonModel
	exchangeService *exchange.Service

	state  exportState
	fields *exportFields
	form   *huh.Form
	path   string
	err    error
}

func NewExportModel(svc *exchange.Service) ExportModel {
	fields := &exportFields{format: formatCSV, dir: "./exports"}

	return ExportModel{
		exchangeService: svc,
		fields:          fields,
		form:            buildExportForm(fields),
	}
}

func buildExportForm(f *exportFields) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[exportFormat]().
				Key("format").
				Title("Format").
				Options(
					huh.NewOption("CSV (UTF-8 with BOM)", formatCSV),
					huh.NewOption("Excel workbook", formatXLSX),
				).
				Value(&f.format),

			huh.NewInput().
				Key("path").
				Title("Output Directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Value(&f.dir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) Title() string { return "Export" }

func (m ExportModel) ShortHelp() string {
	if m.state == exportStateResult {
		return "Esc: back"
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case exportResultMsg:
		m.state = exportStateResult
		m.path = msg.path
		m.err = msg.err

		return m, nil
	}

	if m.state != exportStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.exportCmd(*m.fields)
}

func (m ExportModel) View() string {
	if m.state == exportStateForm {
		return panelStyle.Render(m.form.View())
	}

	if m.err != nil {
		return panelStyle.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	header := successStyle.Bold(true).Render("Export Complete!")

	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", "Written to "+m.path))
}

type exportResultMsg struct {
	path string
	err  error
}

func (m ExportModel) exportCmd(f exportFields) tea.Cmd {
	return func() tea.Msg {
		path, err := m.writeExport(f)
		return exportResultMsg{path: path, err: err}
	}
}

func (m ExportModel) writeExport(f exportFields) (string, error) {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(f.dir, fmt.Sprintf("kakeibo_%s.%s", time.Now().Format("20060102"), f.format))

	var write func(io.Writer) error

	switch f.format {
	case formatXLSX:
		write = m.exchangeService.ExportXLSX
	default:
		write = m.exchangeService.ExportCSV
	}

	if err := writeFile(path, write); err != nil {
		return "", fmt.Errorf("writing %s: %w", f.format, err)
	}

	return path, nil
}

// writeFile creates path and fills it with write. On failure no partial file
// is left behind.
func writeFile(path string, write func(io.Writer) error) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	err = write(out)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(path)
		return err
	}

	return nil
}
