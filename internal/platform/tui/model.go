package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bitsybox/internal/core"
)

// Model is the Bubble Tea model showing one running console.
type Model struct {
	session  *Session
	mapper   *KeyMapper
	help     help.Model
	theme    Theme
	title    string
	shotDir  string
	frame    *core.Surface
	status   string
	err      error
	width    int
	height   int
	quitting bool
}

// NewModel creates a model for session.
func NewModel(session *Session, title string) Model {
	h := help.New()
	h.ShowAll = false

	return Model{
		session: session,
		mapper:  NewKeyMapper(),
		help:    h,
		theme:   DefaultTheme(),
		title:   title,
	}
}

// WithScreenshots enables ctrl+s, which saves the screen into dir.
func (m Model) WithScreenshots(dir string) Model {
	m.shotDir = dir
	return m
}

// Init starts listening for frames and for the console to end.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitFrame(m.session.Frontend), waitDone(m.session))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = msg.Frame
		return m, waitFrame(m.session.Frontend)

	case DoneMsg:
		m.err = msg.Err
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" && m.shotDir != "" {
		m.status = m.saveScreenshot()
		return m, nil
	}

	if m.mapper.Press(msg, m.session.Keys) {
		m.quitting = true
		m.session.Stop()
		return m, tea.Quit
	}
	return m, nil
}

// saveScreenshot writes the current frame as ANSI art and returns a status line.
func (m Model) saveScreenshot() string {
	if m.frame == nil {
		return "nothing to save yet"
	}
	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return fmt.Sprintf("screenshot failed: %v", err)
	}
	name := fmt.Sprintf("bitsybox_%s.ans", time.Now().Format("20060102_150405"))
	path := filepath.Join(m.shotDir, name)
	if err := os.WriteFile(path, []byte(RenderFrame(m.frame)+"\n"), 0o600); err != nil {
		return fmt.Sprintf("screenshot failed: %v", err)
	}
	return "saved " + path
}

// Err returns the error the console ended with, if any.
func (m Model) Err() error {
	return m.err
}

// View renders the console screen in its bezel.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	screen := m.theme.Muted.Render("powering on...")
	if m.frame != nil {
		screen = RenderFrame(m.frame)
	}

	parts := []string{
		m.theme.Title.Render(m.title),
		m.theme.Bezel.Render(screen),
	}
	if m.status != "" {
		parts = append(parts, m.theme.Status.Render(m.status))
	}
	parts = append(parts, m.theme.Help.Render(m.help.View(m.mapper.Bindings())))

	view := lipgloss.JoinVertical(lipgloss.Center, parts...)
	if m.width > 0 && m.height > 0 {
		view = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

// Run starts the console on its own goroutine and shows it in the terminal
// until the user quits or the console ends. It returns the console's error.
func Run(ctx context.Context, title string, frontend *Frontend, keys *core.Keys, run RunFunc, opts ...tea.ProgramOption) error {
	session := StartSession(ctx, frontend, keys, run)

	home, _ := os.UserHomeDir()
	model := NewModel(session, title).WithScreenshots(filepath.Join(home, ".bitsybox", "screenshots"))

	p := tea.NewProgram(
		model,
		append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)...,
	)

	_, err := p.Run()
	session.Stop()
	consoleErr := session.Wait()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return consoleErr
}
