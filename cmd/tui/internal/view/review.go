package view

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/receipt"
	"github.com/MrJamesThe3rd/tally/internal/translation"
)

type reviewState int

const (
	reviewStatePick reviewState = iota
	reviewStateParsing
	reviewStateReviewing
	reviewStateStore
	reviewStateDone
)

// ReviewModel walks through the items of a receipt export one at a time.
// Every label the user corrects is stored in the translation memory before
// the receipt is saved.
type ReviewModel struct {
	CommonModel
	translations *translation.Service
	receipts     *receipt.Service

	state      reviewState
	filePicker filepicker.Model
	descInput  textinput.Model
	form       *huh.Form

	tokens  []receipt.Token
	labels  []string
	items   []receipt.Item
	learned int

	storeName string
	saved     *receipt.Receipt

	status string
	err    error
}

func NewReviewModel(translations *translation.Service, receipts *receipt.Service) ReviewModel {
	ti := textinput.New()
	ti.Placeholder = "Readable description"
	ti.Width = 50

	return ReviewModel{
		translations: translations,
		receipts:     receipts,
		filePicker:   newCSVPicker(),
		descInput:    ti,
	}
}

func (m ReviewModel) Title() string { return "Review Receipt" }

func (m ReviewModel) ShortHelp() string {
	if m.state == reviewStateReviewing {
		return "Enter: accept & next | Esc: back"
	}

	return "Esc: back | Enter: select"
}

func (m ReviewModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

		if m.state == reviewStateReviewing && msg.Type == tea.KeyEnter {
			return m.accept()
		}

	case parsedReceiptMsg:
		if msg.err != nil {
			m.state = reviewStateDone
			m.err = msg.err

			return m, nil
		}

		if len(msg.tokens) == 0 {
			m.state = reviewStateDone
			m.err = fmt.Errorf("no items found in receipt")

			return m, nil
		}

		m.tokens = msg.tokens
		m.labels = msg.labels
		m.items = make([]receipt.Item, 0, len(msg.tokens))
		m.state = reviewStateReviewing
		m.showCurrent()

		return m, textinput.Blink

	case learnedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Could not store translation: %v", msg.err)
			return m, nil
		}

		m.learned++

		return m, nil

	case savedReceiptMsg:
		m.state = reviewStateDone
		m.saved = msg.receipt
		m.err = msg.err

		return m, nil
	}

	switch m.state {
	case reviewStatePick:
		return m.updatePick(msg)
	case reviewStateReviewing:
		var cmd tea.Cmd
		m.descInput, cmd = m.descInput.Update(msg)

		return m, cmd
	case reviewStateStore:
		return m.updateStore(msg)
	}

	return m, nil
}

func (m ReviewModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = reviewStateParsing
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.parseCmd(path)
	}

	return m, cmd
}

// accept records the label for the current token and moves on.
func (m ReviewModel) accept() (tea.Model, tea.Cmd) {
	i := len(m.items)
	tok := m.tokens[i]

	label := strings.TrimSpace(m.descInput.Value())
	if label == "" {
		label = m.labels[i]
	}

	m.items = append(m.items, tok.Item(label))

	var cmd tea.Cmd
	if label != m.labels[i] {
		cmd = m.learnCmd(tok.Key, label)
	}

	if len(m.items) < len(m.tokens) {
		m.showCurrent()
		return m, tea.Batch(cmd, textinput.Blink)
	}

	m.descInput.Blur()
	m.state = reviewStateStore

	store := m.storeName
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("store").
				Title("Store").
				Placeholder("IGA").
				Value(&store),
		),
	).WithWidth(45).WithShowHelp(false)

	return m, tea.Batch(cmd, m.form.Init())
}

func (m ReviewModel) updateStore(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.storeName = m.form.GetString("store")
	m.status = "Saving receipt..."

	return m, m.saveCmd()
}

func (m *ReviewModel) showCurrent() {
	i := len(m.items)
	m.status = fmt.Sprintf("Reviewing %d/%d", i+1, len(m.tokens))
	m.descInput.SetValue(m.labels[i])
	m.descInput.Focus()
}

func (m ReviewModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	switch m.state {
	case reviewStatePick:
		return lipgloss.NewStyle().Padding(1).Render("Select receipt export:\n\n" + m.filePicker.View())
	case reviewStateParsing:
		return style.Render(m.status)
	case reviewStateReviewing:
		tok := m.tokens[len(m.items)]
		info := fmt.Sprintf("Original: %s\n", tok.OriginalText)

		if tok.SuffixText != "" {
			info += fmt.Sprintf("Detail:   %s\n", tok.SuffixText)
		}

		info += fmt.Sprintf("Price:    %s\n", FormatAmount(tok.Price))

		return style.Render(fmt.Sprintf("%s\n\n%s\nDescription:\n%s\n\n(Enter to accept & next, Esc to quit)",
			m.status, info, m.descInput.View()))
	case reviewStateStore:
		return style.Render(fmt.Sprintf("%d items reviewed, %d translations learned.\n\n%s",
			len(m.items), m.learned, m.form.View()))
	case reviewStateDone:
		return m.viewDone(style)
	}

	return ""
}

func (m ReviewModel) viewDone(style lipgloss.Style) string {
	if m.err != nil {
		return style.Render(errorStyle(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Saved receipt %s\n", m.saved.ID)
	fmt.Fprintf(&b, "Items: %d  Total: %s  Learned: %d\n\n", len(m.saved.Items), FormatAmount(m.saved.Total), m.learned)

	for _, it := range m.saved.Items {
		fmt.Fprintf(&b, "%8s  %s\n", FormatAmount(it.Price), it.ReadableDescription)
	}

	return style.Render(okStyle(b.String()) + "\n(Esc to go back)")
}

// Messages

type parsedReceiptMsg struct {
	tokens []receipt.Token
	labels []string
	err    error
}

type learnedMsg struct {
	err error
}

type savedReceiptMsg struct {
	receipt *receipt.Receipt
	err     error
}

func (m ReviewModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parsedReceiptMsg{err: err}
		}
		defer f.Close()

		lines, err := importer.ParseReceipt(f)
		if err != nil {
			return parsedReceiptMsg{err: err}
		}

		tokens := receipt.Tokenize(lines)
		labels := make([]string, len(tokens))

		ctx, cancel := DbCtx()
		defer cancel()

		for i, tok := range tokens {
			labels[i] = m.translations.Translate(ctx, tok.Key)
		}

		return parsedReceiptMsg{tokens: tokens, labels: labels}
	}
}

func (m ReviewModel) learnCmd(original, label string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		_, err := m.translations.Learn(ctx, translation.UpsertParams{Original: original, Translation: label})

		return learnedMsg{err: err}
	}
}

func (m ReviewModel) saveCmd() tea.Cmd {
	items := m.items
	store := m.storeName

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		r, err := m.receipts.Save(ctx, receipt.SaveParams{Items: items, Store: store})

		return savedReceiptMsg{receipt: r, err: err}
	}
}
