package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lamdn/circura/internal/catalog"
)

type CopiesModel struct {
	CommonModel
	svc *catalog.Service

	table  table.Model
	copies []*catalog.Copy

	statusFilterIdx int
	filter          catalog.ListFilter
	loading         bool
	err             error
	status          string
}

func NewCopiesModel(svc *catalog.Service) CopiesModel {
	columns := []table.Column{
		{Title: "Code", Width: 14},
		{Title: "Title", Width: 40},
		{Title: "No.", Width: 5},
		{Title: "Status", Width: 10},
		{Title: "Price", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return CopiesModel{
		svc:   svc,
		table: t,
	}
}

func (m CopiesModel) Title() string { return "Book Copies" }
func (m CopiesModel) ShortHelp() string {
	return "Esc: back | s: status filter | d: mark damaged | x: dispose | v: mark available | r: refresh"
}

func (m CopiesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m CopiesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadCopiesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.copies = msg.copies
		m.err = nil
		m.refreshTable()
		return m, nil

	case copyActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.status = msg.done
		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 5
			m.applyFilter()
			return m, m.loadCmd()
		case "d":
			return m, m.statusCmd(catalog.StatusDamaged, "Copy marked damaged")
		case "x":
			return m, m.statusCmd(catalog.StatusDisposed, "Copy disposed")
		case "v":
			return m, m.statusCmd(catalog.StatusAvailable, "Copy marked available")
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m CopiesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading copies...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Available", "Borrowed", "Damaged", "Disposed"}

	header := fmt.Sprintf("Filter: [s] Status: %s", activeStyle(statusLabels[m.statusFilterIdx]))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View()),
	)

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *CopiesModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		s := catalog.StatusAvailable
		m.filter.Status = &s
	case 2:
		s := catalog.StatusBorrowed
		m.filter.Status = &s
	case 3:
		s := catalog.StatusDamaged
		m.filter.Status = &s
	case 4:
		s := catalog.StatusDisposed
		m.filter.Status = &s
	default:
		m.filter.Status = nil
	}
}

func (m *CopiesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.copies))
	for _, c := range m.copies {
		rows = append(rows, table.Row{
			c.BookCode,
			c.BookTitle,
			fmt.Sprintf("%d", c.CopyNumber),
			string(c.Status),
			FormatAmount(c.Price),
		})
	}
	m.table.SetRows(rows)
}

func (m CopiesModel) selectedCopy() *catalog.Copy {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.copies) {
		return nil
	}

	return m.copies[idx]
}

// Messages

type loadCopiesMsg struct {
	copies []*catalog.Copy
	err    error
}

func (m CopiesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		copies, err := m.svc.List(ctx, m.filter)
		return loadCopiesMsg{copies: copies, err: err}
	}
}

type copyActionMsg struct {
	done string
	err  error
}

func (m CopiesModel) statusCmd(status catalog.CopyStatus, done string) tea.Cmd {
	c := m.selectedCopy()
	if c == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.UpdateStatus(ctx, c.ID, status); err != nil {
			return copyActionMsg{err: err}
		}

		return copyActionMsg{done: done}
	}
}
