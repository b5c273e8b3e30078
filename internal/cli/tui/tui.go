package tui

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/GustavoCaso/finbot/internal/cli"
	"github.com/GustavoCaso/finbot/internal/filter"
	"github.com/GustavoCaso/finbot/internal/ledger"
	"github.com/GustavoCaso/finbot/internal/store"
	"github.com/GustavoCaso/finbot/internal/util"
)

const (
	// header and help lines
	chromeHeight = 4
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	filterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
)

type tuiCommand struct{}

func NewCommand() cli.Command {
	return tuiCommand{}
}

func (c tuiCommand) Description() string {
	return "Interactive terminal user interface"
}

type focusState int

const (
	focusedMain focusState = iota
	focusedDetail
)

type keymap struct {
	Enter key.Binding
	Up    key.Binding
	Down  key.Binding
	Range key.Binding
	Type  key.Binding
	Exit  key.Binding
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Range, k.Type, k.Exit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Enter}, // first column
		{k.Range, k.Type, k.Exit},
	}
}

func defaultKeyMap() keymap {
	return keymap{
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "toggle category view"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Range: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next time range"),
		),
		Type: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next type"),
		),
		Exit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "exit"),
		),
	}
}

type model struct {
	store *store.Store
	state ledger.State

	transactions transactionsTable
	categories   categoryPanel
	help         help.Model
	keys         keymap

	focusMode focusState
	err       error

	width  int
	height int
}

func initialModel(s *store.Store, width int, height int) model {
	m := model{
		store:     s,
		keys:      defaultKeyMap(),
		help:      help.New(),
		focusMode: focusedMain,
		width:     width,
		height:    height,
	}

	m.state = s.State()
	filtered := m.state.Filtered(s.Now())

	m.transactions = newTransactionsTable(transactionRows(filtered, m.state.Categories), width)
	m.categories = newCategoryPanel(groupExpenses(filtered, m.state.Categories), width)
	m.resize()

	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetWidth(msg.Width)
		m.SetHeight(msg.Height)
		m.resize()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Exit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Enter):
			m.focusMode = m.focusModeToggle()
		case key.Matches(msg, m.keys.Range):
			next := m.state.Filter.TimeRange.Next()
			m.applyFilter(filter.Patch{TimeRange: &next})
		case key.Matches(msg, m.keys.Type):
			next := m.state.Filter.Type.Next()
			m.applyFilter(filter.Patch{Type: &next})
		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			if m.focusMode == focusedMain {
				m.transactions, cmd = m.transactions.Update(msg)
			} else {
				m.categories, cmd = m.categories.Update(msg)
			}
		}
	}

	return m, cmd
}

// applyFilter makes p part of the active filter and reloads both panels.
func (m *model) applyFilter(p filter.Patch) {
	if _, err := m.store.SetFilter(p); err != nil {
		m.err = err
		return
	}

	m.err = nil
	m.state = m.store.State()

	filtered := m.state.Filtered(m.store.Now())
	m.transactions = m.transactions.SetRows(transactionRows(filtered, m.state.Categories))
	m.categories = m.categories.SetGroups(groupExpenses(filtered, m.state.Categories))
}

func (m *model) resize() {
	panelHeight := max(m.height-chromeHeight, 1)
	m.transactions = m.transactions.UpdateDimensions(m.width, panelHeight)
	m.categories = m.categories.UpdateDimensions(m.width, panelHeight)
}

func (m model) View() string {
	var main string
	if m.focusMode == focusedMain {
		main = m.transactions.View()
	} else {
		main = m.categories.View()
	}

	parts := []string{m.header(), main}
	if m.err != nil {
		parts = append(parts, errorStyle.Render(m.err.Error()))
	}
	parts = append(parts, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m model) header() string {
	summary := ledger.Summarize(m.state.Filtered(m.store.Now()))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		titleStyle.Render("finbot"),
		filterStyle.Render(fmt.Sprintf("[%s · %s] ", m.state.Filter.TimeRange, m.state.Filter.Type)),
		incomeStyle.Render("Income "+util.FormatCurrency(summary.TotalIncome)+"  "),
		expenseStyle.Render("Expense "+util.FormatCurrency(summary.TotalExpense)+"  "),
		titleStyle.Render("Balance "+util.FormatCurrency(summary.Balance)),
	)
}

func (m model) focusModeToggle() focusState {
	switch m.focusMode {
	case focusedMain:
		return focusedDetail
	case focusedDetail:
		return focusedMain
	default:
		panic("invalid focus state")
	}
}

func (m *model) SetHeight(height int) {
	m.height = height
}

func (m *model) SetWidth(width int) {
	m.width = width
}

func (c tuiCommand) SetFlags(_ *flag.FlagSet) {}

func (c tuiCommand) Run(env cli.Env) error {
	w, h, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		return fmt.Errorf("failed to get terminal size: %w", err)
	}

	if len(os.Getenv("FINBOT_DEBUG")) > 0 {
		f, logErr := tea.LogToFile("debug.log", "debug")
		if logErr != nil {
			return fmt.Errorf("failed to log to file: %w", logErr)
		}
		defer f.Close()
	}

	p := tea.NewProgram(initialModel(env.Store, w, h), tea.WithAltScreen())
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
