package render

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pommergo/pommergo/game"
)

var (
	boardStyle  = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	statusStyle = lipgloss.NewStyle().Bold(true)
	deadStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	aliveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// TickMsg carries the board snapshot for one rendered frame.
type TickMsg struct {
	State *game.State
}

// QuitMsg ends the program once the driving game finishes.
type QuitMsg struct{}

// TUI is a bubbletea model that redraws the board once per TickMsg. A
// caller drives it by pushing frames into Frames and closing Frames when
// the game ends; StepOnKey makes advancing to the next tick wait for any
// keypress instead of a timer, mirroring the original implementation's
// std::cin.get() single-step mode.
type TUI struct {
	Frames    chan *game.State
	Advance   chan struct{}
	StepOnKey bool
	WaitMs    int

	state *game.State
	done  bool
}

// NewTUI returns a model ready to pass to tea.NewProgram.
func NewTUI(stepOnKey bool, waitMs int) *TUI {
	return &TUI{
		Frames:    make(chan *game.State, 1),
		Advance:   make(chan struct{}, 1),
		StepOnKey: stepOnKey,
		WaitMs:    waitMs,
	}
}

func (m *TUI) Init() tea.Cmd {
	return m.waitForFrame()
}

func (m *TUI) waitForFrame() tea.Cmd {
	return func() tea.Msg {
		state, ok := <-m.Frames
		if !ok {
			return QuitMsg{}
		}
		return TickMsg{State: state}
	}
}

func (m *TUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.StepOnKey {
			m.signalAdvance()
		}
	case TickMsg:
		m.state = msg.State
		if !m.StepOnKey {
			m.signalAdvance()
		}
		return m, m.waitForFrame()
	case QuitMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// signalAdvance notifies the driving game loop that it may compute the
// next tick, without blocking if nobody is currently waiting.
func (m *TUI) signalAdvance() {
	select {
	case m.Advance <- struct{}{}:
	default:
	}
}

func (m *TUI) View() string {
	if m.state == nil {
		return "waiting for first tick...\n"
	}
	board := boardStyle.Render(ASCII(m.state.Board))
	status := statusStyle.Render(fmt.Sprintf("tick %d", m.state.Tick))
	agents := ""
	for i, a := range m.state.Agents {
		line := fmt.Sprintf("agent %d @ (%d,%d) ammo=%d str=%d", i, a.Pos.X, a.Pos.Y, a.MaxBombCount-a.BombCount, a.BombStrength)
		if a.Dead {
			agents += deadStyle.Render(line) + "\n"
		} else {
			agents += aliveStyle.Render(line) + "\n"
		}
	}
	hint := "press q to quit"
	if m.StepOnKey {
		hint = "press any key to advance, q to quit"
	}
	return fmt.Sprintf("%s\n%s\n%s\n%s\n", status, board, agents, hint)
}

// Pace blocks until either the TUI's Advance signal fires or ctx is
// cancelled, so a driving RunGame loop can pace itself to the renderer
// instead of racing ahead of what's on screen. When StepOnKey is off and
// WaitMs is positive it waits WaitMs milliseconds instead of on Advance.
func Pace(ctx context.Context, m *TUI) error {
	if !m.StepOnKey && m.WaitMs > 0 {
		select {
		case <-time.After(time.Duration(m.WaitMs) * time.Millisecond):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	select {
	case <-m.Advance:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
