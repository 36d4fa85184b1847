package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/translation"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateEdit
	listStateFilter
)

// ListModel browses the translation memory, most used first.
type ListModel struct {
	CommonModel
	translations *translation.Service

	state    listState
	table    table.Model
	mappings []*translation.Mapping
	form     *huh.Form

	filter  translation.ListFilter
	loading bool
	err     error
	status  string
}

func NewListModel(translations *translation.Service) ListModel {
	columns := []table.Column{
		{Title: "Original", Width: 28},
		{Title: "Translation", Width: 32},
		{Title: "Category", Width: 16},
		{Title: "Uses", Width: 6},
	}

	return ListModel{
		translations: translations,
		table:        newTable(columns),
		loading:      true,
	}
}

func (m ListModel) Title() string { return "Translation Memory" }

func (m ListModel) ShortHelp() string {
	if m.state != listStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | e: edit | d: delete | f: filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.mappings = msg.mappings
		m.refreshTable()

		return m, nil

	case listSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = msg.done
		}

		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateEdit, listStateFilter:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		case "f":
			return m.enterFilterMode()
		case "d":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) selected() *translation.Mapping {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.mappings) {
		return nil
	}

	return m.mappings[idx]
}

func (m ListModel) enterEditMode() (tea.Model, tea.Cmd) {
	mapping := m.selected()
	if mapping == nil {
		return m, nil
	}

	text := mapping.Translation
	category := mapping.Category

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("translation").
				Title("Translation").
				Value(&text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("translation cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("category").
				Title("Category").
				Placeholder("optional").
				Value(&category),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) enterFilterMode() (tea.Model, tea.Cmd) {
	query := m.filter.Query

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("query").
				Title("Filter").
				Placeholder("original or translation").
				Value(&query),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateFilter
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == listStateFilter {
		m.filter.Query = strings.TrimSpace(m.form.GetString("query"))
		m.state = listStateBrowse
		m.form = nil
		m.loading = true
		m.table.Focus()

		return m, m.loadCmd()
	}

	return m, m.saveCmd(m.form.GetString("translation"), m.form.GetString("category"))
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading translations...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	query := "none"
	if m.filter.Query != "" {
		query = m.filter.Query
	}

	header := fmt.Sprintf("Filter: [f] %s | %d mappings", activeStyle(query), len(m.mappings))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		framed(m.table.View()),
	)

	if m.state != listStateBrowse && m.form != nil {
		title := "Filter Translations"
		if m.state == listStateEdit {
			if mapping := m.selected(); mapping != nil {
				title = "Edit Translation\n\nOriginal: " + mapping.Original
			}
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(title + "\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.mappings))
	for _, mapping := range m.mappings {
		rows = append(rows, table.Row{
			mapping.Original,
			mapping.Translation,
			mapping.Category,
			strconv.FormatInt(mapping.UsageCount, 10),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	mappings []*translation.Mapping
	err      error
}

func (m ListModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		mappings, err := m.translations.List(ctx, filter)

		return loadListMsg{mappings: mappings, err: err}
	}
}

type listSaveMsg struct {
	done string
	err  error
}

func (m ListModel) saveCmd(text, category string) tea.Cmd {
	mapping := m.selected()
	if mapping == nil {
		return nil
	}

	id := mapping.ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.translations.Update(ctx, id, translation.UpdateParams{
			Translation: &text,
			Category:    &category,
		})

		return listSaveMsg{done: "Saved", err: err}
	}
}

func (m ListModel) deleteCmd() tea.Cmd {
	mapping := m.selected()
	if mapping == nil {
		return nil
	}

	id, original := mapping.ID, mapping.Original

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		err := m.translations.Delete(ctx, id)

		return listSaveMsg{done: "Deleted " + original, err: err}
	}
}
