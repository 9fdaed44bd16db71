// Package tui renders the habit list in the terminal and routes key presses
// back into a tracker.Service.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/brk3/streaks/internal/tracker"
	"github.com/brk3/streaks/pkg/habit"
)

type mode int

const (
	browsing mode = iota
	adding
	confirming
)

type snapshotMsg habit.Snapshot

type errMsg struct{ err error }

type Model struct {
	ctx  context.Context
	svc  tracker.Service
	snap habit.Snapshot

	cursor int
	mode   mode
	input  textinput.Model
	help   help.Model

	inputErr string
	err      error
	width    int
}

func New(ctx context.Context, svc tracker.Service) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New habit name..."
	ti.CharLimit = 200

	return Model{
		ctx:   ctx,
		svc:   svc,
		input: ti,
		help:  help.New(),
		width: 60,
	}
}

// Run starts the interactive list and blocks until the user quits.
func Run(ctx context.Context, svc tracker.Service) error {
	p := tea.NewProgram(New(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.do(func(ctx context.Context) (habit.Snapshot, error) {
		return m.svc.Snapshot(ctx)
	})
}

// do runs one service call off the update loop and reports the new snapshot.
func (m Model) do(fn func(context.Context) (habit.Snapshot, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		s, err := fn(ctx)
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg(s)
	}
}

func (m Model) selected() (habit.Summary, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Habits) {
		return habit.Summary{}, false
	}
	return m.snap.Habits[m.cursor], true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case snapshotMsg:
		m.snap = habit.Snapshot(msg)
		m.err = nil
		m.cursor = max(0, min(m.cursor, len(m.snap.Habits)-1))
		return m, nil
	case errMsg:
		m.err = msg.err
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case adding:
			return m.updateAdding(msg)
		case confirming:
			return m.updateConfirming(msg)
		default:
			return m.updateBrowsing(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.snap.Habits)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Toggle):
		if h, ok := m.selected(); ok {
			id := h.ID
			return m, m.do(func(ctx context.Context) (habit.Snapshot, error) {
				return m.svc.ToggleToday(ctx, id)
			})
		}
	case key.Matches(msg, keys.Add):
		m.mode = adding
		m.inputErr = ""
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, keys.Delete):
		if _, ok := m.selected(); ok {
			m.mode = confirming
		}
	}
	return m, nil
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			m.inputErr = "Name cannot be empty"
			return m, nil
		}
		m.mode = browsing
		m.input.Blur()
		m.input.SetValue("")
		// New habits are appended; follow the cursor to them.
		m.cursor = len(m.snap.Habits)
		return m, m.do(func(ctx context.Context) (habit.Snapshot, error) {
			return m.svc.Create(ctx, name)
		})
	case tea.KeyEsc:
		m.mode = browsing
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = browsing
	if msg.String() != "y" && msg.String() != "Y" {
		return m, nil
	}
	h, ok := m.selected()
	if !ok {
		return m, nil
	}
	id := h.ID
	return m, m.do(func(ctx context.Context) (habit.Snapshot, error) {
		return m.svc.Delete(ctx, id)
	})
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Habits"))
	if d, err := time.Parse(habit.DayLayout, m.snap.Today); err == nil {
		b.WriteString("  " + dateStyle.Render(d.Format("Monday, January 2")))
	}
	b.WriteString("\n" + rateBar(m.snap.CompletionRate, 20) + " done today\n\n")

	if len(m.snap.Habits) == 0 {
		b.WriteString(mutedStyle.Render("No habits yet. Press a to add one.") + "\n")
	}
	for i, h := range m.snap.Habits {
		b.WriteString(renderRow(h, i == m.cursor) + "\n")
	}

	switch m.mode {
	case adding:
		title := "Add new habit"
		if m.inputErr != "" {
			title += "  " + errorStyle.Render(m.inputErr)
		}
		b.WriteString("\n" + dialogStyle.Render(title+"\n"+m.input.View()) + "\n")
	case confirming:
		if h, ok := m.selected(); ok {
			b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Delete %q? (y/N)", h.Name)) + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("✖ "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render(m.help.View(keys)))

	return panelStyle.Render(b.String())
}

func renderRow(h habit.Summary, selected bool) string {
	box := mutedStyle.Render(boxUnchecked)
	name := h.Name
	if h.DoneToday {
		box = successStyle.Render(boxChecked)
		name = doneStyle.Render(name)
	}

	streak := streakStyle.Render(fmt.Sprintf("🔥 %d day streak", h.Streak))

	prefix := "  "
	if selected {
		prefix = selectedStyle.Render("> ")
	}
	return fmt.Sprintf("%s%s %s  %s", prefix, box, name, streak)
}
