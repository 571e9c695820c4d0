// Package app wires a loaded cartridge, the CPU/PPU/bus core and a
// graphics backend into the running emulator loop. Grounded on
// RNG999-gones/internal/app/app.go's Application type and Run loop,
// trimmed of its save-state/audio/pause/menu surface (all explicit
// Non-goals here) and its per-backend special case for ebiten: every
// backend here implements the same Window.SetUpdateFunc/Run contract,
// so one loop body serves all three.
package app

import (
	"log"

	"github.com/nesgo/nesgo/internal/bus"
	"github.com/nesgo/nesgo/internal/cartridge"
	"github.com/nesgo/nesgo/internal/config"
	"github.com/nesgo/nesgo/internal/cpu"
	"github.com/nesgo/nesgo/internal/graphics"
	"github.com/nesgo/nesgo/internal/palette"
)

const (
	nesWidth  = 256
	nesHeight = 240
)

// App owns one running emulation session.
type App struct {
	cfg config.Config

	bus *bus.Bus
	cpu *cpu.CPU

	backend graphics.Backend
	window  graphics.Window

	frameCount uint64
}

// New loads the cartridge and palette named by cfg, wires up the core,
// and resolves the requested graphics backend. It does not start
// running anything; call Run for that.
func New(cfg config.Config) (*App, error) {
	cart, err := cartridge.Load(cfg.ROM)
	if err != nil {
		return nil, err
	}

	pal := palette.Default
	if cfg.Palette != "" {
		pal, err = palette.Load(cfg.Palette)
		if err != nil {
			return nil, err
		}
	}

	b := bus.New(cart, pal)
	c := cpu.New(b)
	c.Reset()

	backend, err := graphics.New(cfg.Backend)
	if err != nil {
		return nil, err
	}

	return &App{cfg: cfg, bus: b, cpu: c, backend: backend}, nil
}

// Run initializes the backend's window and hands control to it until
// the window closes, --frames is exhausted (with any backend), or the core
// hits an unrecoverable error.
func (a *App) Run() error {
	if err := a.backend.Initialize(graphics.Config{
		WindowTitle: "nesgo",
		Scale:       a.cfg.Scale,
		Debug:       a.cfg.Debug,
	}); err != nil {
		return err
	}
	defer a.backend.Cleanup()

	scale := a.cfg.Scale
	if scale <= 0 {
		scale = 1
	}
	window, err := a.backend.CreateWindow("nesgo", nesWidth*scale, nesHeight*scale)
	if err != nil {
		return err
	}
	a.window = window
	defer window.Cleanup()

	window.SetUpdateFunc(a.stepFrame)
	return window.Run()
}

// stepFrame runs the core for exactly one PPU frame, presents it, and
// reports graphics.ErrStop once the session should end cleanly.
func (a *App) stepFrame() error {
	a.applyInput()

	startFrame := a.bus.PPU().Frame()
	for a.bus.PPU().Frame() == startFrame {
		a.cpu.Step()
	}
	a.frameCount++

	if err := a.window.RenderFrame(a.bus.PPU().FrameBuffer()); err != nil {
		return err
	}
	if a.cfg.Debug {
		log.Printf("nesgo: frame %d rendered (cycles=%d)", a.frameCount, a.bus.TotalCycles())
	}

	if a.window.ShouldClose() {
		return graphics.ErrStop
	}
	if a.cfg.Frames > 0 && a.frameCount >= uint64(a.cfg.Frames) {
		return graphics.ErrStop
	}
	return nil
}

func (a *App) applyInput() {
	for _, event := range a.window.PollEvents() {
		player := event.Player
		if player != 0 && player != 1 {
			continue
		}
		a.bus.Controller(player).SetButton(event.Button, event.Pressed)
	}
}
