// Package graphics abstracts the three presentation modes nesgo can run
// under: a real window (ebiten), no presentation at all (headless batch
// runs), and a terminal UI (bubbletea). Grounded on
// RNG999-gones/internal/graphics/backend.go's Backend/Window split,
// trimmed of that repo's audio/fullscreen/key-remapping configuration
// surface — none of that is in scope here — and its Key/Button event
// enums collapse onto internal/input.Button directly instead of a
// second parallel button enum.
package graphics

import (
	"fmt"

	"github.com/nesgo/nesgo/internal/input"
)

// Config configures a backend at Initialize time.
type Config struct {
	WindowTitle string
	Scale       int
	Debug       bool
}

// InputEvent reports one controller button's pressed state (an edge or a
// current level, depending on the backend), already mapped from whatever
// physical input device the backend polls.
type InputEvent struct {
	Player int
	Button input.Button
	Pressed bool
}

// Backend is a graphics/input presentation mode.
type Backend interface {
	Initialize(cfg Config) error
	CreateWindow(title string, width, height int) (Window, error)
	Cleanup() error
	IsHeadless() bool
	Name() string
}

// Window is the live presentation surface a Backend hands back.
type Window interface {
	ShouldClose() bool
	PollEvents() []InputEvent
	RenderFrame(frameBuffer []uint32) error
	Cleanup() error

	// SetUpdateFunc installs the per-tick callback that drives the
	// emulator core. Run invokes it once per backend tick (once per
	// displayed frame for ebiten/terminal, once per loop iteration for
	// headless) until it returns an error or the window wants to close.
	SetUpdateFunc(fn func() error)
	Run() error
}

// ErrStop is returned by an update function to end Window.Run normally
// (e.g. once --frames N have been rendered), distinguishing a clean stop
// from a real emulation error.
var ErrStop = fmt.Errorf("graphics: stop requested")

// New resolves a backend by name, per the --backend CLI flag.
func New(name string) (Backend, error) {
	switch name {
	case "ebiten":
		return NewEbitenBackend(), nil
	case "headless":
		return NewHeadlessBackend(), nil
	case "terminal":
		return NewTerminalBackend(), nil
	default:
		return nil, fmt.Errorf("graphics: unknown backend %q", name)
	}
}
