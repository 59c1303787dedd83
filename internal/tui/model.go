// Package tui renders batch progress interactively and captures conflict
// prompt answers inline.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"autosig/internal/conflict"
)

const maxLogLines = 6

// Event is one update from the batch to the renderer.
type Event struct {
	Progress *Progress
	Line     string
	Prompt   *PromptRequest
}

// Progress is a snapshot of batch completion.
type Progress struct {
	Done  int
	Total int
}

// PromptRequest asks the operator for an overwrite decision. The model sends
// exactly one answer on Reply.
type PromptRequest struct {
	Path  string
	Reply chan byte
}

type Model struct {
	events  <-chan Event
	cancel  func()
	started time.Time

	width    int
	done     int
	total    int
	lines    []string
	prompt   *PromptRequest
	quitting bool
}

type doneMsg struct{}

type eventMsg Event

func NewModel(events <-chan Event, cancel func()) Model {
	return Model{events: events, cancel: cancel, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return listenForEvents(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		if msg.Progress != nil {
			m.done = msg.Progress.Done
			m.total = msg.Progress.Total
		}
		if msg.Line != "" {
			m.lines = append(m.lines, msg.Line)
			if len(m.lines) > maxLogLines {
				m.lines = m.lines[len(m.lines)-maxLogLines:]
			}
		}
		if msg.Prompt != nil {
			m.prompt = msg.Prompt
		}
		return m, listenForEvents(m.events)
	case doneMsg:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if m.cancel != nil {
			m.cancel()
		}
		if m.prompt != nil {
			// Unblock the waiting batch with the cancel answer so the
			// in-flight file is reported cancelled, not skipped.
			m.prompt.Reply <- conflict.ReplyCancel
			m.prompt = nil
		}
		return m, nil
	}

	if m.prompt == nil {
		return m, nil
	}
	switch key := strings.ToLower(msg.String()); key {
	case "y", "n", "a", "s":
		m.prompt.Reply <- key[0]
		m.prompt = nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	barWidth := 40
	if m.width > 0 {
		barWidth = int(math.Min(60, float64(m.width-10)))
		if barWidth < 20 {
			barWidth = 20
		}
	}

	ratio := 0.0
	if m.total > 0 {
		ratio = float64(m.done) / float64(m.total)
		if ratio > 1 {
			ratio = 1
		}
	}

	elapsed := time.Since(m.started).Round(time.Millisecond)
	out := []string{
		titleStyle.Render("autosig"),
		labelStyle.Render(fmt.Sprintf("Files: %d/%d", m.done, m.total)) +
			dimStyle.Render(fmt.Sprintf("  elapsed: %s", elapsed)),
		barStyle.Render(renderBar(barWidth, ratio)),
	}
	out = append(out, m.lines...)
	if m.prompt != nil {
		out = append(out, promptStyle.Render(
			fmt.Sprintf("%s exists. overwrite? [y]es [n]o [a]ll [s]kip all", m.prompt.Path)))
	}
	return strings.Join(out, "\n")
}

func listenForEvents(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func renderBar(width int, ratio float64) string {
	filled := int(math.Round(ratio * float64(width)))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle  = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle    = lipgloss.NewStyle().Foreground(ColorInk)
	dimStyle    = lipgloss.NewStyle().Foreground(ColorDim)
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorWarn)
)
