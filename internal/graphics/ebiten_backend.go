//go:build !headless

package graphics

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nesgo/nesgo/internal/input"
)

const (
	nesWidth  = 256
	nesHeight = 240
)

// EbitenBackend implements Backend on top of github.com/hajimehoshi/ebiten/v2.
// Grounded on RNG999-gones/internal/graphics/ebitengine_backend.go's
// Backend/Window/Game split, trimmed of its VSync/filter/fullscreen
// configuration knobs (Config here is just title/scale/debug) and its
// reusable *image.RGBA scratch buffer (ebiten.Image.WritePixels takes a
// flat byte slice directly, so no intermediate image is needed).
type EbitenBackend struct {
	initialized bool
}

type ebitenWindow struct {
	title  string
	scale  int
	game   *ebitenGame
}

type ebitenGame struct {
	window      *ebitenWindow
	screen      *ebiten.Image
	pixels      []byte
	updateFn    func() error
	lastErr     error
	keyBindings map[ebiten.Key]boundButton
}

type boundButton struct {
	player int
	button input.Button
}

func NewEbitenBackend() Backend { return &EbitenBackend{} }

func (b *EbitenBackend) Initialize(cfg Config) error {
	b.initialized = true
	return nil
}

func (b *EbitenBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("graphics: ebiten backend not initialized")
	}
	game := &ebitenGame{
		screen:      ebiten.NewImage(nesWidth, nesHeight),
		pixels:      make([]byte, nesWidth*nesHeight*4),
		keyBindings: defaultKeyBindings(),
	}
	w := &ebitenWindow{title: title, game: game}
	game.window = w

	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return w, nil
}

func (b *EbitenBackend) Cleanup() error   { b.initialized = false; return nil }
func (b *EbitenBackend) IsHeadless() bool { return false }
func (b *EbitenBackend) Name() string     { return "ebiten" }

func (w *ebitenWindow) ShouldClose() bool { return false }

// PollEvents reports every bound key's current held state. ebiten
// tracks key state itself, so this is a live snapshot rather than a
// queue of edges.
func (w *ebitenWindow) PollEvents() []InputEvent { return w.game.HeldButtons() }

// RenderFrame converts the NES's packed 0xRRGGBB frame buffer into the
// RGBA byte order ebiten.Image.WritePixels expects and uploads it.
func (w *ebitenWindow) RenderFrame(frameBuffer []uint32) error {
	px := w.game.pixels
	for i, p := range frameBuffer {
		px[i*4+0] = uint8(p >> 16)
		px[i*4+1] = uint8(p >> 8)
		px[i*4+2] = uint8(p)
		px[i*4+3] = 0xFF
	}
	w.game.screen.WritePixels(px)
	return nil
}

func (w *ebitenWindow) Cleanup() error { return nil }

func (w *ebitenWindow) SetUpdateFunc(fn func() error) { w.game.updateFn = fn }

// Run hands control to ebiten's own game loop, which owns the main
// goroutine from here until the window closes.
func (w *ebitenWindow) Run() error {
	if err := ebiten.RunGame(w.game); err != nil {
		return err
	}
	return w.game.lastErr
}

func defaultKeyBindings() map[ebiten.Key]boundButton {
	return map[ebiten.Key]boundButton{
		ebiten.KeyZ:          {0, input.ButtonA},
		ebiten.KeyX:          {0, input.ButtonB},
		ebiten.KeyShift:      {0, input.ButtonSelect},
		ebiten.KeyEnter:      {0, input.ButtonStart},
		ebiten.KeyArrowUp:    {0, input.ButtonUp},
		ebiten.KeyArrowDown:  {0, input.ButtonDown},
		ebiten.KeyArrowLeft:  {0, input.ButtonLeft},
		ebiten.KeyArrowRight: {0, input.ButtonRight},
	}
}

// Update implements ebiten.Game: poll held keys into controller state via
// the update function's own input wiring, then step the emulator core
// for one displayed frame.
func (g *ebitenGame) Update() error {
	if g.updateFn == nil {
		return nil
	}
	if err := g.updateFn(); err != nil {
		if err == ErrStop {
			return ebiten.Termination
		}
		g.lastErr = err
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *ebitenGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	bounds := screen.Bounds()
	sx := float64(bounds.Dx()) / nesWidth
	sy := float64(bounds.Dy()) / nesHeight
	scale := sx
	if sy < scale {
		scale = sy
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(bounds.Dx())-nesWidth*scale)/2, (float64(bounds.Dy())-nesHeight*scale)/2)
	screen.DrawImage(g.screen, op)
}

// Layout implements ebiten.Game.
func (g *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// HeldButtons reports every bound key currently pressed, for the update
// function to feed into internal/bus's controller ports.
func (g *ebitenGame) HeldButtons() []InputEvent {
	var events []InputEvent
	for key, bound := range g.keyBindings {
		events = append(events, InputEvent{Player: bound.player, Button: bound.button, Pressed: ebiten.IsKeyPressed(key)})
	}
	return events
}
