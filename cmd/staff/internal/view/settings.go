package view

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lamdn/circura/internal/settings"
)

type settingsState int

const (
	settingsStateBrowse settingsState = iota
	settingsStateEdit
)

type SettingsModel struct {
	CommonModel
	svc *settings.Service

	state  settingsState
	table  table.Model
	keys   []string
	values map[string]string
	form   *huh.Form

	loading bool
	err     error
	status  string

	formValue string
}

func NewSettingsModel(svc *settings.Service) SettingsModel {
	columns := []table.Column{
		{Title: "Setting", Width: 25},
		{Title: "Value", Width: 15},
		{Title: "Default", Width: 15},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
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

	return SettingsModel{
		svc:   svc,
		table: t,
	}
}

func (m SettingsModel) Title() string { return "Circulation Settings" }
func (m SettingsModel) ShortHelp() string {
	if m.state == settingsStateEdit {
		return "Enter: save | Esc: cancel"
	}

	return "Esc: back | e: edit | r: refresh"
}

func (m SettingsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSettingsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.values = msg.values
		m.err = nil
		m.refreshTable()
		return m, nil

	case settingsSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = "Saved"
		}
		m.state = settingsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		return m, nil
	}

	switch m.state {
	case settingsStateBrowse:
		return m.updateBrowse(msg)
	case settingsStateEdit:
		return m.updateEdit(msg)
	}

	return m, nil
}

func (m SettingsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "e":
			return m.enterEditMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m SettingsModel) enterEditMode() (tea.Model, tea.Cmd) {
	key := m.selectedKey()
	if key == "" {
		return m, nil
	}

	m.formValue = m.values[key]

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("value").
				Title(key).
				Value(&m.formValue).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("value cannot be empty")
					}
					if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
						return fmt.Errorf("value must be numeric")
					}
					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = settingsStateEdit
	m.table.Blur()
	return m, m.form.Init()
}

func (m SettingsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = settingsStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
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

func (m SettingsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading settings...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if m.state == settingsStateEdit && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Edit Setting\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// knownKeys pins the display order and default values.
var knownKeys = []struct {
	key string
	def string
}{
	{settings.KeyFineRatePercent, "5"},
	{settings.KeyMaxBorrowDays, "14"},
	{settings.KeyMaxBooksPerUser, "5"},
	{settings.KeyMinDepositAmount, "200000"},
}

func (m *SettingsModel) refreshTable() {
	m.keys = m.keys[:0]

	for _, k := range knownKeys {
		m.keys = append(m.keys, k.key)
	}

	// Any extra keys in the store show up after the known ones.
	var extra []string
	for k := range m.values {
		if !settings.KnownKey(k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	m.keys = append(m.keys, extra...)

	rows := make([]table.Row, 0, len(m.keys))
	for _, k := range m.keys {
		rows = append(rows, table.Row{k, m.values[k], defaultFor(k)})
	}
	m.table.SetRows(rows)
}

func defaultFor(key string) string {
	for _, k := range knownKeys {
		if k.key == key {
			return k.def
		}
	}

	return ""
}

func (m SettingsModel) selectedKey() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.keys) {
		return ""
	}

	return m.keys[idx]
}

// Messages

type loadSettingsMsg struct {
	values map[string]string
	err    error
}

func (m SettingsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		values, err := m.svc.All(ctx)
		return loadSettingsMsg{values: values, err: err}
	}
}

type settingsSaveMsg struct {
	err error
}

func (m SettingsModel) saveCmd() tea.Cmd {
	key := m.selectedKey()
	if key == "" {
		return nil
	}

	value := strings.TrimSpace(m.formValue)

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return settingsSaveMsg{err: m.svc.Set(ctx, key, value)}
	}
}
