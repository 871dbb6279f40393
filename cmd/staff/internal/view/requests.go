package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/lamdn/circura/internal/borrow"
	"github.com/lamdn/circura/internal/fine"
	"github.com/lamdn/circura/internal/settings"
)

type requestsState int

const (
	requestsStateBrowse requestsState = iota
	requestsStateReturnForm
	requestsStateReturnPreview
)

type RequestsModel struct {
	CommonModel
	borrowSvc   *borrow.Service
	settingsSvc *settings.Service

	state requestsState
	table table.Model
	reqs  []*borrow.Request
	form  *huh.Form

	statusFilterIdx int
	filter          borrow.ListFilter
	loading         bool
	err             error
	status          string

	// Form bindings
	formDetailID  string
	formCondition string
	formNote      string

	pendingItems []borrow.ReturnItem
	preview      *borrow.ReturnResult
}

func NewRequestsModel(borrowSvc *borrow.Service, settingsSvc *settings.Service) RequestsModel {
	columns := []table.Column{
		{Title: "Requested", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Due", Width: 12},
		{Title: "Overdue", Width: 8},
		{Title: "Books", Width: 6},
		{Title: "Titles", Width: 45},
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

	return RequestsModel{
		borrowSvc:   borrowSvc,
		settingsSvc: settingsSvc,
		table:       t,
		filter:      borrow.ListFilter{},
	}
}

func (m RequestsModel) Title() string { return "Borrow Requests" }
func (m RequestsModel) ShortHelp() string {
	switch m.state {
	case requestsStateReturnForm:
		return "Navigate form | Esc: cancel"
	case requestsStateReturnPreview:
		return "y: confirm return | Esc: cancel"
	}

	return "Esc: back | a: approve | j: reject | h: hand out | enter: return | s: status filter | r: refresh"
}

func (m RequestsModel) Init() tea.Cmd {
	return m.loadRequestsCmd()
}

func (m RequestsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadRequestsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.reqs = msg.reqs
		m.err = nil
		m.refreshTable()
		return m, nil

	case requestActionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.status = msg.done
		return m, m.loadRequestsCmd()

	case returnPreviewMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			m.state = requestsStateBrowse
			m.table.Focus()
			return m, nil
		}
		m.preview = msg.result
		m.state = requestsStateReturnPreview
		return m, nil

	case returnDoneMsg:
		m.state = requestsStateBrowse
		m.preview = nil
		m.table.Focus()
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}
		m.status = returnSummary(msg.result)
		return m, m.loadRequestsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case requestsStateBrowse:
		return m.updateBrowse(msg)
	case requestsStateReturnForm:
		return m.updateReturnForm(msg)
	case requestsStateReturnPreview:
		return m.updateReturnPreview(msg)
	}

	return m, nil
}

func (m RequestsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadRequestsCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 5
			m.applyFilter()
			return m, m.loadRequestsCmd()
		case "a":
			return m, m.actionCmd(m.borrowSvc.Approve, "Request approved")
		case "j":
			return m, m.actionCmd(m.borrowSvc.Reject, "Request rejected")
		case "h":
			return m, m.actionCmd(m.borrowSvc.HandOut, "Books handed out")
		case "enter":
			return m.enterReturnForm()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m RequestsModel) enterReturnForm() (tea.Model, tea.Cmd) {
	req := m.selectedRequest()
	if req == nil {
		return m, nil
	}

	if req.Status != borrow.StatusBorrowed {
		m.status = "Only borrowed requests can be returned"
		return m, nil
	}

	outstanding := req.Outstanding()
	if len(outstanding) == 0 {
		m.status = "Nothing left to return"
		return m, nil
	}

	detailOpts := make([]huh.Option[string], len(outstanding))
	for i, d := range outstanding {
		label := fmt.Sprintf("%s (%s)", d.BookTitle, d.BookCode)
		detailOpts[i] = huh.NewOption(label, d.ID.String())
	}

	m.formDetailID = outstanding[0].ID.String()
	m.formCondition = string(fine.ConditionNormal)
	m.formNote = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("detail").
				Title("Copy to return").
				Options(detailOpts...).
				Value(&m.formDetailID),

			huh.NewSelect[string]().
				Key("condition").
				Title("Condition").
				Options(
					huh.NewOption("Normal", string(fine.ConditionNormal)),
					huh.NewOption("Damaged", string(fine.ConditionDamaged)),
					huh.NewOption("Lost", string(fine.ConditionLost)),
				).
				Value(&m.formCondition),

			huh.NewInput().
				Key("note").
				Title("Note").
				Placeholder("optional").
				Value(&m.formNote),
		),
	).WithWidth(55).WithShowHelp(false)

	m.state = requestsStateReturnForm
	m.table.Blur()
	return m, m.form.Init()
}

func (m RequestsModel) updateReturnForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = requestsStateBrowse
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

	detailID, err := uuid.Parse(m.formDetailID)
	if err != nil {
		m.status = "Invalid copy selection"
		m.state = requestsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, nil
	}

	m.pendingItems = []borrow.ReturnItem{{
		DetailID:  detailID,
		Condition: fine.Condition(m.formCondition),
		Note:      strings.TrimSpace(m.formNote),
	}}
	m.form = nil

	return m, m.previewCmd()
}

func (m RequestsModel) updateReturnPreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		return m, m.processReturnCmd()
	case "esc", "n":
		m.state = requestsStateBrowse
		m.preview = nil
		m.table.Focus()
		return m, nil
	}

	return m, nil
}

func (m RequestsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading borrow requests...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Pending", "Approved", "Borrowed", "Returned"}

	header := fmt.Sprintf("Filter: [s] Status: %s", activeStyle(statusLabels[m.statusFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == requestsStateReturnForm && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(58).
			Render("Return a Copy\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.state == requestsStateReturnPreview && m.preview != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(58).
			Render(previewText(m.preview))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func previewText(result *borrow.ReturnResult) string {
	var b strings.Builder
	b.WriteString("Return Preview\n\n")

	for _, item := range result.Returned {
		b.WriteString(fmt.Sprintf("%s\n  condition: %s", item.Detail.BookTitle, item.Condition))
		if item.DaysOverdue > 0 {
			b.WriteString(fmt.Sprintf(", %d days overdue", item.DaysOverdue))
		}
		if item.FineAmount > 0 {
			b.WriteString(fmt.Sprintf("\n  fine: %s", FormatAmount(item.FineAmount)))
		}
		b.WriteString("\n")
	}

	for _, f := range result.Failed {
		b.WriteString(fmt.Sprintf("Skipped: %s\n", f.Reason))
	}

	b.WriteString(fmt.Sprintf("\nTotal fine: %s\n\n[y] confirm  [esc] cancel", FormatAmount(result.TotalFine)))

	return b.String()
}

func returnSummary(result *borrow.ReturnResult) string {
	if result == nil {
		return ""
	}

	s := fmt.Sprintf("Returned %d book(s)", len(result.Returned))
	if result.TotalFine > 0 {
		s += fmt.Sprintf(", fines %s", FormatAmount(result.TotalFine))
	}
	if len(result.Failed) > 0 {
		s += fmt.Sprintf(", %d failed", len(result.Failed))
	}

	return s
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *RequestsModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		s := borrow.StatusPending
		m.filter.Status = &s
	case 2:
		s := borrow.StatusApproved
		m.filter.Status = &s
	case 3:
		s := borrow.StatusBorrowed
		m.filter.Status = &s
	case 4:
		s := borrow.StatusReturned
		m.filter.Status = &s
	default:
		m.filter.Status = nil
	}
}

func (m *RequestsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.reqs))
	for _, req := range m.reqs {
		titles := make([]string, 0, len(req.Details))
		for _, d := range req.Details {
			titles = append(titles, d.BookTitle)
		}

		overdue := ""
		if borrow.IsOverdue(req, time.Now()) {
			overdue = "yes"
		}

		rows = append(rows, table.Row{
			FormatDate(req.RequestDate),
			string(req.Status),
			FormatDate(req.DueDate),
			overdue,
			fmt.Sprintf("%d", len(req.Details)),
			strings.Join(titles, ", "),
		})
	}
	m.table.SetRows(rows)
}

func (m RequestsModel) selectedRequest() *borrow.Request {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.reqs) {
		return nil
	}

	return m.reqs[idx]
}

// Messages

type loadRequestsMsg struct {
	reqs []*borrow.Request
	err  error
}

func (m RequestsModel) loadRequestsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		reqs, err := m.borrowSvc.List(ctx, m.filter)
		return loadRequestsMsg{reqs: reqs, err: err}
	}
}

type requestActionMsg struct {
	done string
	err  error
}

func (m RequestsModel) actionCmd(run func(ctx context.Context, id uuid.UUID) error, done string) tea.Cmd {
	req := m.selectedRequest()
	if req == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := run(ctx, req.ID); err != nil {
			return requestActionMsg{err: err}
		}

		return requestActionMsg{done: done}
	}
}

type returnPreviewMsg struct {
	result *borrow.ReturnResult
	err    error
}

func (m RequestsModel) previewCmd() tea.Cmd {
	req := m.selectedRequest()
	if req == nil {
		return nil
	}

	items := m.pendingItems

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		policy, err := m.policy(ctx)
		if err != nil {
			return returnPreviewMsg{err: err}
		}

		result, err := m.borrowSvc.PreviewReturn(ctx, req.ID, items, policy)
		return returnPreviewMsg{result: result, err: err}
	}
}

type returnDoneMsg struct {
	result *borrow.ReturnResult
	err    error
}

func (m RequestsModel) processReturnCmd() tea.Cmd {
	req := m.selectedRequest()
	if req == nil {
		return nil
	}

	items := m.pendingItems

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		policy, err := m.policy(ctx)
		if err != nil {
			return returnDoneMsg{err: err}
		}

		result, err := m.borrowSvc.ProcessReturn(ctx, req.ID, items, policy)
		return returnDoneMsg{result: result, err: err}
	}
}

func (m RequestsModel) policy(ctx context.Context) (borrow.Policy, error) {
	p, err := m.settingsSvc.Policy(ctx)
	if err != nil {
		return borrow.Policy{}, err
	}

	return borrow.Policy{
		FineRatePercent: p.FineRatePercent,
		MaxBorrowDays:   p.MaxBorrowDays,
		MaxBooksPerUser: p.MaxBooksPerUser,
	}, nil
}
