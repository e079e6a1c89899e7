package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bitsybox/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the game sidebar
	sidebarWidth       = 24  // Width of the game sidebar
	maxRuns            = 200 // Max runs to load
	allGames           = "All runs"
)

// Journal is the part of the session journal the history screen reads.
type Journal interface {
	RecentRuns(limit int) ([]storage.Run, error)
	PlayCounts() ([]storage.PlayCount, error)
}

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextGame, k.PrevGame, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev game"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the journal screen.
type HistoryModel struct {
	runs        []storage.Run
	counts      []storage.PlayCount
	filters     []string // allGames first, then one entry per played game
	cursor      int
	loadErr     error
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	theme       Theme
	width       int
	height      int
	showSidebar bool
	quitting    bool
}

// NewHistoryModel loads the journal and creates the history screen.
func NewHistoryModel(journal Journal, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		theme:       DefaultTheme(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
		filters:     []string{allGames},
	}

	if journal != nil {
		m.load(journal)
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *HistoryModel) load(journal Journal) {
	runs, err := journal.RecentRuns(maxRuns)
	if err != nil {
		m.loadErr = err
		return
	}
	counts, err := journal.PlayCounts()
	if err != nil {
		m.loadErr = err
		return
	}
	m.runs = runs
	m.counts = counts
	for _, c := range counts {
		m.filters = append(m.filters, c.Game)
	}
}

// createTable creates a new table sized for the current window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 12},
		{Title: "Phase", Width: 5},
		{Title: "Game", Width: 18},
		{Title: "Outcome", Width: 10},
		{Title: "Ticks", Width: 7},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if extra := tableWidth - 62; extra > 0 {
		columns[2].Width += min(extra, 12)
	}

	height := m.height - 8
	if height < 3 {
		height = 10
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = m.theme.TableHeader
	s.Selected = m.theme.TableSelected
	t.SetStyles(s)

	return t
}

// Filter returns the game the table is filtered to, or "" for all runs.
func (m HistoryModel) Filter() string {
	if m.cursor == 0 {
		return ""
	}
	return m.filters[m.cursor]
}

// Rows returns the runs the table currently shows.
func (m HistoryModel) Rows() []storage.Run {
	game := m.Filter()
	if game == "" {
		return m.runs
	}
	var rows []storage.Run
	for _, r := range m.runs {
		if r.Game == game {
			rows = append(rows, r)
		}
	}
	return rows
}

// updateTableRows fills the table for the current filter.
func (m *HistoryModel) updateTableRows() {
	runs := m.Rows()
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		game := r.Game
		if game == "" {
			game = "-"
		}
		rows[i] = table.Row{
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.Phase,
			game,
			r.Outcome,
			fmt.Sprintf("%d", r.Ticks),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			m.cursor = (m.cursor + 1) % len(m.filters)
			m.updateTableRows()
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.filters) - 1
			}
			m.updateTableRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "PLAY HISTORY"
	if game := m.Filter(); game != "" {
		title = "PLAY HISTORY - " + game
	}
	b.WriteString(m.theme.Title.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", m.renderTable()))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.filters[m.cursor]), m.width))
		b.WriteString("\n\n")
		b.WriteString(m.renderTable())
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// renderSidebar renders the filter list with play counts.
func (m HistoryModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Games\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, name := range m.filters {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = m.theme.ItemActive
		}

		label := name
		if i > 0 {
			label = fmt.Sprintf("%s (%d)", name, m.counts[i-1].Count)
		}
		if maxLen := sidebarWidth - 6; len(label) > maxLen {
			label = label[:maxLen-1] + "."
		}
		sb.WriteString(style.Render(cursor + label))
		sb.WriteString("\n")
	}

	return m.theme.Sidebar.Width(sidebarWidth).Render(sb.String())
}

// renderTable renders the table or a placeholder.
func (m HistoryModel) renderTable() string {
	switch {
	case m.loadErr != nil:
		return m.theme.Panel.Render(m.theme.Error.Render("Journal unavailable: " + m.loadErr.Error()))
	case len(m.Rows()) == 0:
		return m.theme.Panel.Render(m.theme.Muted.Padding(2, 4).Render("No runs recorded yet.\nSwitch the console on to start one!"))
	}
	return m.theme.Panel.Render(m.table.View())
}

// centerText pads text on the left so it sits in the middle of width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunHistory runs the history screen until the user quits.
func RunHistory(journal Journal, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(journal, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
