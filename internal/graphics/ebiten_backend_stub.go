//go:build headless

package graphics

import "fmt"

const (
	nesWidth  = 256
	nesHeight = 240
)

// EbitenBackend stub for builds tagged "headless", where ebiten's GLFW/X11
// dependencies may be unavailable (e.g. a CI container with no display).
// Grounded on RNG999-gones/internal/graphics/ebitengine_backend_stub.go.
type EbitenBackend struct{}

func NewEbitenBackend() Backend { return &EbitenBackend{} }

func (b *EbitenBackend) Initialize(cfg Config) error {
	return fmt.Errorf("graphics: ebiten backend not available in a headless build")
}

func (b *EbitenBackend) CreateWindow(title string, width, height int) (Window, error) {
	return nil, fmt.Errorf("graphics: ebiten backend not available in a headless build")
}

func (b *EbitenBackend) Cleanup() error   { return nil }
func (b *EbitenBackend) IsHeadless() bool { return true }
func (b *EbitenBackend) Name() string     { return "ebiten-stub" }
