package graphics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolvesKnownBackends(t *testing.T) {
	for _, name := range []string{"ebiten", "headless", "terminal"} {
		b, err := New(name)
		require.NoError(t, err)
		assert.NotNil(t, b)
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New("sdl2")
	assert.Error(t, err)
}

func TestHeadlessWindowRunsUntilErrStop(t *testing.T) {
	b := NewHeadlessBackend()
	require.NoError(t, b.Initialize(Config{}))
	w, err := b.CreateWindow("test", 256, 240)
	require.NoError(t, err)

	calls := 0
	w.SetUpdateFunc(func() error {
		calls++
		require.NoError(t, w.RenderFrame(nil))
		if calls >= 3 {
			return ErrStop
		}
		return nil
	})

	require.NoError(t, w.Run())
	assert.Equal(t, 3, calls)
	assert.Equal(t, 3, w.(*headlessWindow).FrameCount())
	assert.False(t, w.ShouldClose())
}

func TestHeadlessWindowPropagatesRealErrors(t *testing.T) {
	b := NewHeadlessBackend()
	require.NoError(t, b.Initialize(Config{}))
	w, err := b.CreateWindow("test", 256, 240)
	require.NoError(t, err)

	boom := errors.New("boom")
	w.SetUpdateFunc(func() error { return boom })

	assert.ErrorIs(t, w.Run(), boom)
}

func TestHeadlessWindowCleanupClosesIt(t *testing.T) {
	b := NewHeadlessBackend()
	w, err := b.CreateWindow("test", 256, 240)
	require.NoError(t, err)
	assert.False(t, w.ShouldClose())
	require.NoError(t, w.Cleanup())
	assert.True(t, w.ShouldClose())
}

func TestHeadlessBackendReportsItself(t *testing.T) {
	b := NewHeadlessBackend()
	assert.True(t, b.IsHeadless())
	assert.Equal(t, "headless", b.Name())
}
