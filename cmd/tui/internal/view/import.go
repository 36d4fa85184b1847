package view

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/categorize"
	"github.com/MrJamesThe3rd/tally/internal/categorylist"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/metrics"
	"github.com/MrJamesThe3rd/tally/internal/reconcile"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

type importState int

const (
	importStatePickStatement importState = iota
	importStateAskShared
	importStatePickShared
	importStateBuilding
	importStateReport
	importStateError
)

// ImportModel categorizes a bank statement, optionally reconciles a shared
// expense sheet into it, and shows the resulting report.
type ImportModel struct {
	CommonModel
	lists *categorylist.Service

	state      importState
	filePicker filepicker.Model
	form       *huh.Form

	statementPath string
	report        report.Report
	stats         categorize.Stats
	table         table.Model

	status string
	err    error
}

func NewImportModel(lists *categorylist.Service) ImportModel {
	return ImportModel{
		lists:      lists,
		filePicker: newCSVPicker(),
	}
}

func (m ImportModel) Title() string { return "Categorize Statement" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateReport {
		return "Esc: back | c: export CSV | x: export XLSX"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == importStateReport {
			return m.updateReport(msg)
		}

	case builtMsg:
		if msg.err != nil {
			m.state = importStateError
			m.err = msg.err

			return m, nil
		}

		m.state = importStateReport
		m.report = msg.report
		m.stats = msg.stats
		m.table = reportTable(msg.report)
		m.status = fmt.Sprintf("%d matched, %d misc, %d skipped, %d dropped",
			msg.stats.Matched+msg.stats.Special, msg.stats.Misc, msg.stats.Skipped, msg.stats.Dropped)

		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = errorStyle(fmt.Sprintf("Export failed: %v", msg.err))
			return m, nil
		}

		m.status = okStyle("Wrote " + msg.path)

		return m, nil
	}

	switch m.state {
	case importStatePickStatement, importStatePickShared:
		return m.updatePick(msg)
	case importStateAskShared:
		return m.updateAskShared(msg)
	}

	return m, nil
}

func (m ImportModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	didSelect, path := m.filePicker.DidSelectFile(msg)
	if !didSelect {
		return m, cmd
	}

	if m.state == importStatePickShared {
		m.state = importStateBuilding
		return m, m.buildCmd(m.statementPath, path)
	}

	m.statementPath = path
	m.state = importStateAskShared
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("shared").
				Title("Reconcile a shared-expense sheet?").
				Affirmative("Yes").
				Negative("No"),
		),
	).WithShowHelp(false)

	return m, m.form.Init()
}

func (m ImportModel) updateAskShared(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.form.GetBool("shared") {
		m.state = importStatePickShared
		m.filePicker = newCSVPicker()

		return m, m.filePicker.Init()
	}

	m.state = importStateBuilding

	return m, m.buildCmd(m.statementPath, "")
}

func (m ImportModel) updateReport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		return m, m.exportCmd("csv")
	case "x":
		return m, m.exportCmd("xlsx")
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch m.state {
	case importStatePickStatement:
		return style.Render("Select bank statement:\n\n" + m.filePicker.View())
	case importStateAskShared:
		return style.Render(m.form.View())
	case importStatePickShared:
		return style.Render("Select shared-expense sheet:\n\n" + m.filePicker.View())
	case importStateBuilding:
		return style.Render("Categorizing...")
	case importStateError:
		return style.Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	case importStateReport:
		return style.Render(lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render(activeStyle(m.status)),
			framed(m.table.View()),
		))
	}

	return ""
}

// reportTable shows the report body and totals under a header made from the
// two header rows.
func reportTable(rep report.Report) table.Model {
	width := rep.Width()
	header := rep.Header()
	columns := make([]table.Column, width)

	for i := range width {
		title := ""
		if i < len(header) {
			title = header[i]
		}

		if title == "" && len(rep) > 1 && i < len(rep[1]) {
			title = rep[1][i]
		}

		w := 12
		if i%2 == 1 {
			w = 32
		}

		columns[i] = table.Column{Title: title, Width: w}
	}

	rows := make([]table.Row, 0, len(rep))

	for _, r := range rep.Body() {
		rows = append(rows, table.Row(pad(r, width)))
	}

	if totals := rep.Totals(); totals != nil {
		rows = append(rows, table.Row(pad(totals, width)))
	}

	t := newTable(columns)
	t.SetRows(rows)

	return t
}

func pad(r report.Row, width int) []string {
	out := make([]string, width)
	copy(out, r)

	return out
}

// Messages

type builtMsg struct {
	report report.Report
	stats  categorize.Stats
	err    error
}

type exportedMsg struct {
	path string
	err  error
}

func (m ImportModel) buildCmd(statementPath, sharedPath string) tea.Cmd {
	return func() tea.Msg {
		statement, err := os.Open(statementPath)
		if err != nil {
			return builtMsg{err: err}
		}
		defer statement.Close()

		var shared io.Reader

		if sharedPath != "" {
			f, err := os.Open(sharedPath)
			if err != nil {
				return builtMsg{err: err}
			}
			defer f.Close()

			shared = f
		}

		batch, err := importer.ParseBatch(statement, shared)
		if err != nil {
			return builtMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		tax, err := m.lists.Resolve(ctx, nil, nil)
		if err != nil {
			return builtMsg{err: err}
		}

		res := categorize.Analyze(batch.Transactions, tax, true)
		metrics.ObserveCategorized(res.Stats)

		rep, stats := reconcile.Apply(res.Report, batch.Shared)
		metrics.ObserveReconciled(stats)

		return builtMsg{report: rep, stats: res.Stats}
	}
}

func (m ImportModel) exportCmd(ext string) tea.Cmd {
	rep := m.report
	dir := filepath.Dir(m.statementPath)

	return func() tea.Msg {
		path := filepath.Join(dir, fmt.Sprintf("categorized_transactions_%s.%s", time.Now().Format(time.DateOnly), ext))

		f, err := os.Create(path)
		if err != nil {
			return exportedMsg{err: err}
		}

		if ext == "xlsx" {
			err = rep.WriteXLSX(f)
		} else {
			err = rep.WriteCSV(f)
		}

		if cerr := f.Close(); err == nil {
			err = cerr
		}

		return exportedMsg{path: path, err: err}
	}
}
