package graphics

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nesgo/nesgo/internal/input"
)

// blockSize is the downsample factor: one terminal cell represents an
// 8x8 block of NES pixels, giving a 32x30 character grid — legible in an
// ordinary terminal window without external image support.
const (
	blockSize = 8
	cellCols  = nesWidth / blockSize
	cellRows  = nesHeight / blockSize
)

// TerminalBackend renders frames as a grid of lipgloss-colored block
// characters inside a bubbletea program. Grounded on
// RNG999-gones/internal/graphics/terminal_backend.go's ASCII-art
// approach (clear screen, print one character per downsampled pixel
// block), rebuilt on bubbletea/lipgloss instead of raw ANSI escapes.
type TerminalBackend struct {
	initialized bool
}

type terminalWindow struct {
	program  *tea.Program
	model    *terminalModel
	updateFn func() error
	done     chan struct{}
}

type terminalModel struct {
	cells [cellRows][cellCols]uint32
	err   error

	pendingMu sync.Mutex
	pending   []InputEvent
}

type frameMsg struct {
	cells [cellRows][cellCols]uint32
}

type quitMsg struct{ err error }

func NewTerminalBackend() Backend { return &TerminalBackend{} }

func (b *TerminalBackend) Initialize(cfg Config) error {
	b.initialized = true
	return nil
}

func (b *TerminalBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("graphics: terminal backend not initialized")
	}
	model := &terminalModel{}
	w := &terminalWindow{
		model: model,
		done:  make(chan struct{}),
	}
	w.program = tea.NewProgram(model)
	return w, nil
}

func (b *TerminalBackend) Cleanup() error   { b.initialized = false; return nil }
func (b *TerminalBackend) IsHeadless() bool { return false }
func (b *TerminalBackend) Name() string     { return "terminal" }

func (w *terminalWindow) ShouldClose() bool { return false }

// PollEvents translates whatever key presses the bubbletea model
// buffered since the last call into controller edges.
func (w *terminalWindow) PollEvents() []InputEvent {
	return w.model.takeEvents()
}

// RenderFrame downsamples the frame buffer into the character grid and
// pushes it to the running bubbletea program.
func (w *terminalWindow) RenderFrame(frameBuffer []uint32) error {
	var cells [cellRows][cellCols]uint32
	for cy := 0; cy < cellRows; cy++ {
		for cx := 0; cx < cellCols; cx++ {
			// Sample the block's top-left pixel: cheap and, at this
			// resolution, visually indistinguishable from averaging.
			cells[cy][cx] = frameBuffer[(cy*blockSize)*nesWidth+cx*blockSize]
		}
	}
	if w.program != nil {
		w.program.Send(frameMsg{cells: cells})
	}
	return nil
}

func (w *terminalWindow) Cleanup() error {
	if w.program != nil {
		w.program.Quit()
	}
	return nil
}

func (w *terminalWindow) SetUpdateFunc(fn func() error) { w.updateFn = fn }

// Run starts the bubbletea program on the current goroutine and drives
// the emulator core from a second goroutine, one step per loop — the
// inverse of ebiten's ownership of Update, since bubbletea has no
// built-in per-frame callback of its own.
func (w *terminalWindow) Run() error {
	go func() {
		for {
			select {
			case <-w.done:
				return
			default:
			}
			if w.updateFn == nil {
				return
			}
			if err := w.updateFn(); err != nil {
				if err != ErrStop {
					w.program.Send(quitMsg{err: err})
				} else {
					w.program.Send(quitMsg{})
				}
				return
			}
		}
	}()

	_, err := w.program.Run()
	close(w.done)
	if err != nil {
		return err
	}
	return w.model.err
}

func (m *terminalModel) Init() tea.Cmd { return nil }

func (m *terminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.cells = msg.cells
	case quitMsg:
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		m.recordKey(msg)
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *terminalModel) View() string {
	var b strings.Builder
	for y := 0; y < cellRows; y++ {
		for x := 0; x < cellCols; x++ {
			p := m.cells[y][x]
			hex := fmt.Sprintf("#%06X", p&0xFFFFFF)
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
			b.WriteString(style.Render("█"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// recordKey and takeEvents give the terminal model a tiny pending-event
// queue, mirroring the strobe-driven controller: a key press is an edge,
// not a level, so each one is reported exactly once (bubbletea only
// delivers key-down events, so there is no "released" edge to report —
// takeEvents queues a release of every reported press for the
// following poll, matching a tap rather than a hold).
var terminalKeyBindings = map[string]input.Button{
	"z":     input.ButtonA,
	"x":     input.ButtonB,
	"s":     input.ButtonSelect,
	"enter": input.ButtonStart,
	"up":    input.ButtonUp,
	"down":  input.ButtonDown,
	"left":  input.ButtonLeft,
	"right": input.ButtonRight,
}

func (m *terminalModel) recordKey(msg tea.KeyMsg) {
	if button, ok := terminalKeyBindings[msg.String()]; ok {
		m.pendingMu.Lock()
		m.pending = append(m.pending, InputEvent{Player: 0, Button: button, Pressed: true})
		m.pendingMu.Unlock()
	}
}

// takeEvents is called from the emulator's own goroutine (Run's update
// loop), while recordKey runs on bubbletea's goroutine — the mutex is
// the only synchronization between them.
func (m *terminalModel) takeEvents() []InputEvent {
	m.pendingMu.Lock()
	events := m.pending
	m.pending = nil
	for _, e := range events {
		if e.Pressed {
			m.pending = append(m.pending, InputEvent{Player: e.Player, Button: e.Button, Pressed: false})
		}
	}
	m.pendingMu.Unlock()
	return events
}
