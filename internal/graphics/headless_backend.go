package graphics

// HeadlessBackend presents nothing; internal/app drives it purely for
// the --frames N batch-run feature. Grounded on
// RNG999-gones/internal/graphics/headless_backend.go, trimmed of that
// repo's periodic PPM frame dumps — nothing here needs to touch disk.
type HeadlessBackend struct {
	initialized bool
}

type headlessWindow struct {
	frameCount int
	updateFn   func() error
	closed     bool
}

func NewHeadlessBackend() Backend { return &HeadlessBackend{} }

func (b *HeadlessBackend) Initialize(cfg Config) error {
	b.initialized = true
	return nil
}

func (b *HeadlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	return &headlessWindow{}, nil
}

func (b *HeadlessBackend) Cleanup() error   { b.initialized = false; return nil }
func (b *HeadlessBackend) IsHeadless() bool { return true }
func (b *HeadlessBackend) Name() string     { return "headless" }

func (w *headlessWindow) ShouldClose() bool        { return w.closed }
func (w *headlessWindow) PollEvents() []InputEvent { return nil }
func (w *headlessWindow) Cleanup() error           { w.closed = true; return nil }

// RenderFrame just counts frames; the caller's update function owns the
// exit condition (e.g. "stop after N frames"), so there is nothing to
// present here.
func (w *headlessWindow) RenderFrame(frameBuffer []uint32) error {
	w.frameCount++
	return nil
}

func (w *headlessWindow) SetUpdateFunc(fn func() error) { w.updateFn = fn }

// Run calls the update function in a tight loop until it signals it is
// done by returning a non-nil error, or until Cleanup is called.
func (w *headlessWindow) Run() error {
	if w.updateFn == nil {
		return nil
	}
	for !w.closed {
		if err := w.updateFn(); err != nil {
			if err == ErrStop {
				return nil
			}
			return err
		}
	}
	return nil
}

// FrameCount reports how many frames have been rendered.
func (w *headlessWindow) FrameCount() int { return w.frameCount }
