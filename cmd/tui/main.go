package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/categorylist"
	categoryListStore "github.com/MrJamesThe3rd/tally/internal/categorylist/store"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/logging"
	"github.com/MrJamesThe3rd/tally/internal/receipt"
	receiptStore "github.com/MrJamesThe3rd/tally/internal/receipt/store"
	"github.com/MrJamesThe3rd/tally/internal/translation"
	translationStore "github.com/MrJamesThe3rd/tally/internal/translation/store"
)

type model struct {
	translationService  *translation.Service
	receiptService      *receipt.Service
	categoryListService *categorylist.Service

	currentView View

	reviewView view.ReviewModel
	importView view.ImportModel
	listView   view.ListModel
}

type View int

const (
	ViewMenu   View = 0
	ViewReview View = 1
	ViewImport View = 2
	ViewList   View = 3
)

func initialModel() model {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.App.LogLevel)

	ctx := context.Background()

	db, err := database.New(ctx, cfg.ConnectionString(), database.Pool{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	trSvc := translation.NewService(translationStore.New(db))
	listSvc := categorylist.NewService(categoryListStore.New(db))
	rcptSvc := receipt.NewService(receiptStore.New(db), trSvc, receipt.WithWorkers(cfg.Receipt.TranslateWorkers))

	if _, err := listSvc.EnsureDefault(ctx); err != nil {
		slog.Error("failed to ensure default category list", "error", err)
		os.Exit(1)
	}

	return model{
		translationService:  trSvc,
		receiptService:      rcptSvc,
		categoryListService: listSvc,
		currentView:         ViewMenu,
		reviewView:          view.NewReviewModel(trSvc, rcptSvc),
		importView:          view.NewImportModel(listSvc),
		listView:            view.NewListModel(trSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewReview
				m.reviewView = view.NewReviewModel(m.translationService, m.receiptService)

				return m, m.reviewView.Init()
			case "2":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.categoryListService)

				return m, m.importView.Init()
			case "3":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.translationService)

				return m, m.listView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewReview:
		var newModel tea.Model
		newModel, cmd = m.reviewView.Update(msg)
		m.reviewView = newModel.(view.ReviewModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Tally TUI\n\n" +
				"1. Review Receipt\n" +
				"2. Categorize Statement\n" +
				"3. Translation Memory\n\n" +
				"q. Quit",
		)
	case ViewReview:
		return m.reviewView.View()
	case ViewImport:
		return m.importView.View()
	case ViewList:
		return m.listView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
