package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/lamdn/circura/cmd/staff/internal/view"
	"github.com/lamdn/circura/internal/borrow"
	borrowStore "github.com/lamdn/circura/internal/borrow/store"
	"github.com/lamdn/circura/internal/catalog"
	catalogStore "github.com/lamdn/circura/internal/catalog/store"
	"github.com/lamdn/circura/internal/config"
	"github.com/lamdn/circura/internal/database"
	"github.com/lamdn/circura/internal/settings"
	settingsStore "github.com/lamdn/circura/internal/settings/store"
)

type model struct {
	borrowService   *borrow.Service
	catalogService  *catalog.Service
	settingsService *settings.Service

	currentView View

	requestsView view.RequestsModel
	copiesView   view.CopiesModel
	settingsView view.SettingsModel
}

type View int

const (
	ViewMenu     View = 0
	ViewRequests View = 1
	ViewCopies   View = 2
	ViewSettings View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	borrowSvc := borrow.NewService(borrowStore.New(db))
	catalogSvc := catalog.NewService(catalogStore.New(db))
	settingsSvc := settings.NewService(settingsStore.New(db))

	return model{
		borrowService:   borrowSvc,
		catalogService:  catalogSvc,
		settingsService: settingsSvc,
		currentView:     ViewMenu,
		requestsView:    view.NewRequestsModel(borrowSvc, settingsSvc),
		copiesView:      view.NewCopiesModel(catalogSvc),
		settingsView:    view.NewSettingsModel(settingsSvc),
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
				m.currentView = ViewRequests
				m.requestsView = view.NewRequestsModel(m.borrowService, m.settingsService)

				return m, m.requestsView.Init()
			case "2":
				m.currentView = ViewCopies
				m.copiesView = view.NewCopiesModel(m.catalogService)

				return m, m.copiesView.Init()
			case "3":
				m.currentView = ViewSettings
				m.settingsView = view.NewSettingsModel(m.settingsService)

				return m, m.settingsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewRequests:
		var newModel tea.Model
		newModel, cmd = m.requestsView.Update(msg)
		m.requestsView = newModel.(view.RequestsModel)
	case ViewCopies:
		var newModel tea.Model
		newModel, cmd = m.copiesView.Update(msg)
		m.copiesView = newModel.(view.CopiesModel)
	case ViewSettings:
		var newModel tea.Model
		newModel, cmd = m.settingsView.Update(msg)
		m.settingsView = newModel.(view.SettingsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Circura Staff Desk\n\n" +
				"1. Borrow Requests\n" +
				"2. Book Copies\n" +
				"3. Circulation Settings\n\n" +
				"q. Quit",
		)
	case ViewRequests:
		return m.requestsView.View()
	case ViewCopies:
		return m.copiesView.View()
	case ViewSettings:
		return m.settingsView.View()
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
