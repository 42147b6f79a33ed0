package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/settlement-desk/internal/datasource"
	"github.com/rxtech-lab/settlement-desk/internal/logger"
	"github.com/rxtech-lab/settlement-desk/internal/submission"
	"github.com/rxtech-lab/settlement-desk/internal/tokens"
	"github.com/rxtech-lab/settlement-desk/internal/trades"
	"github.com/rxtech-lab/settlement-desk/internal/types"
	"go.uber.org/zap"
)

// Application states.
const (
	StateList = iota
	StateSearch
	StateForm
)

// Trade groups, in display order.
const (
	GroupPending = iota
	GroupOther
)

// SuccessNotice is shown after a settlement is stored.
const SuccessNotice = "Successful Settlement Added!"

const requestTimeout = 15 * time.Second

// Deps are the collaborators the TUI drives.
type Deps struct {
	Source    datasource.TradeSource
	Submitter submission.Submitter
	// Balances is optional.
	Balances   tokens.BalanceProvider
	Account    string
	FetchLimit int
	PageSize   int
	Logger     *logger.Logger
}

// Model is the main Bubble Tea model for the settlement desk.
type Model struct {
	state   int
	deps    Deps
	records []types.TradeRecord
	groups  trades.Groups
	focus   int
	pages   [2]int
	tables  [2]table.Model
	search  textinput.Model
	query   string
	form    FormModel
	loading bool
	err     error
	notice  string
	width   int
	height  int
}

// NewModel creates a Model that loads trades on start.
func NewModel(deps Deps) Model {
	if deps.PageSize <= 0 {
		deps.PageSize = 5
	}

	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}

	return Model{
		state:   StateList,
		deps:    deps,
		records: []types.TradeRecord{},
		groups:  trades.Groups{Pending: []types.TradeRecord{}, Other: []types.TradeRecord{}},
		focus:   GroupPending,
		tables:  [2]table.Model{NewTradeTable(true), NewTradeTable(false)},
		search:  NewSearchInput(),
		loading: true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.fetch()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tables[GroupPending].SetWidth(msg.Width)
		m.tables[GroupOther].SetWidth(msg.Width)

		return m, nil

	case TradesLoadedMsg:
		m.loading = false
		m.err = nil
		m.records = msg.Trades
		m.regroup()

		return m, nil

	case TradesFailedMsg:
		m.loading = false
		m.err = msg.Err
		m.deps.Logger.Error("Failed to load trades", zap.Error(msg.Err))

		return m, nil

	case SubmittedMsg:
		m.state = StateList
		m.notice = SuccessNotice
		m.loading = true

		return m, m.fetch()

	case SubmitFailedMsg:
		m.form.Failed(msg.Err)
		m.deps.Logger.Warn("Settlement rejected", zap.Error(msg.Err))

		return m, nil

	case BalancesLoadedMsg:
		m.form.balances = msg.Balances
		m.form.balanceErr = msg.Err

		if msg.Err != nil {
			m.deps.Logger.Warn("Failed to load token balances", zap.Error(msg.Err))
		}

		return m, nil
	}

	switch m.state {
	case StateList:
		return m.updateList(msg)
	case StateSearch:
		return m.updateSearch(msg)
	case StateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "r":
			m.loading = true
			m.notice = ""

			return m, m.fetch()

		case "/":
			m.state = StateSearch
			m.notice = ""
			m.search.SetValue(m.query)
			m.search.Focus()

			return m, textinput.Blink

		case "esc":
			if m.query != "" {
				m.query = ""
				m.search.Reset()
				m.regroup()
			}

			return m, nil

		case "c":
			form, err := NewFormModel()
			if err != nil {
				m.err = err
				return m, nil
			}

			m.form = form
			m.state = StateForm
			m.notice = ""

			return m, tea.Batch(textinput.Blink, m.loadBalances())

		case "tab":
			m.setFocus(1 - m.focus)
			return m, nil

		case "n":
			m.turnPage(1)
			return m, nil

		case "p":
			m.turnPage(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.tables[m.focus], cmd = m.tables[m.focus].Update(msg)

	return m, cmd
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			m.search.Blur()
			m.state = StateList

			return m, nil

		case "esc":
			m.search.Reset()
			m.search.Blur()
			m.query = ""
			m.state = StateList
			m.regroup()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if query := strings.TrimSpace(m.search.Value()); query != m.query {
		m.query = query
		m.pages = [2]int{}
		m.regroup()
	}

	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd, action := m.form.Update(msg)
	m.form = form

	switch action {
	case formCancel:
		m.state = StateList
		return m, nil
	case formSubmit:
		return m, m.submit(m.form.Answers())
	}

	return m, cmd
}

func (m *Model) setFocus(group int) {
	m.focus = group

	for i := range m.tables {
		if i == group {
			m.tables[i].Focus()
		} else {
			m.tables[i].Blur()
		}
	}
}

func (m Model) group(i int) []types.TradeRecord {
	if i == GroupPending {
		return m.groups.Pending
	}

	return m.groups.Other
}

// turnPage moves the focused group's page by delta, staying in range.
func (m *Model) turnPage(delta int) {
	count, _ := trades.PageCount(len(m.group(m.focus)), m.deps.PageSize)

	next := m.pages[m.focus] + delta
	if next < 0 || next >= count {
		return
	}

	m.pages[m.focus] = next
	m.refreshTables()
}

// regroup recomputes the groups from the last fetch and the current query.
func (m *Model) regroup() {
	m.groups = trades.Group(m.records, m.query)

	for i := range m.pages {
		count, _ := trades.PageCount(len(m.group(i)), m.deps.PageSize)
		if m.pages[i] >= count {
			m.pages[i] = max(count-1, 0)
		}
	}

	m.refreshTables()
}

func (m *Model) refreshTables() {
	for i := range m.tables {
		page, err := trades.Page(m.group(i), m.pages[i], m.deps.PageSize)
		if err != nil {
			m.err = err
			continue
		}

		m.tables[i].SetRows(TradeRows(page))
		m.tables[i].SetCursor(0)
	}
}

func (m Model) fetch() tea.Cmd {
	source, limit := m.deps.Source, m.deps.FetchLimit

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		records, err := source.FetchTrades(ctx, limit)
		if err != nil {
			return TradesFailedMsg{Err: err}
		}

		return TradesLoadedMsg{Trades: records}
	}
}

func (m Model) submit(answers types.WizardAnswers) tea.Cmd {
	submitter, account := m.deps.Submitter, m.deps.Account

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		trade, err := submitter.Submit(ctx, answers, account)
		if err != nil {
			return SubmitFailedMsg{Err: err}
		}

		return SubmittedMsg{Trade: trade}
	}
}

func (m Model) loadBalances() tea.Cmd {
	if m.deps.Balances == nil {
		return nil
	}

	provider, account := m.deps.Balances, m.deps.Account

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		balances, err := provider.Balances(ctx, account)

		return BalancesLoadedMsg{Balances: balances, Err: err}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.state == StateForm {
		return m.form.View()
	}

	var s strings.Builder

	s.WriteString(TitleStyle.Render("Settlement Desk"))
	s.WriteString("\n")
	s.WriteString(UserHeader(m.deps.Account, len(m.records)))
	s.WriteString("\n\n")

	if m.notice != "" {
		s.WriteString(NoticeStyle.Render(m.notice))
		s.WriteString("\n\n")
	}

	if m.err != nil {
		s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n\n")
	}

	switch {
	case m.state == StateSearch:
		s.WriteString(m.search.View())
		s.WriteString("\n\n")
	case m.query != "":
		s.WriteString(HelpStyle.Render(fmt.Sprintf("Filter: %q (esc to clear)", m.query)))
		s.WriteString("\n\n")
	}

	if m.loading {
		s.WriteString("Loading trades...\n\n")
	}

	s.WriteString(SectionStyle.Render(PendingHeading(len(m.groups.Pending))))
	s.WriteString("\n")
	m.writeGroup(&s, GroupPending)

	s.WriteString(SectionStyle.Render("Other Settlements"))
	s.WriteString("\n")

	if len(m.groups.Other) == 0 {
		s.WriteString("No other settlements\n\n")
	} else {
		m.writeGroup(&s, GroupOther)
	}

	s.WriteString(HelpStyle.Render("r: refresh | /: search | c: new settlement | tab: switch list | n/p: page | q: quit"))

	return s.String()
}

func (m Model) writeGroup(s *strings.Builder, i int) {
	group := m.group(i)
	if len(group) == 0 {
		s.WriteString("\n")
		return
	}

	count, _ := trades.PageCount(len(group), m.deps.PageSize)

	s.WriteString(m.tables[i].View())
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render(PageIndicator(m.pages[i], count)))
	s.WriteString("\n\n")
}
