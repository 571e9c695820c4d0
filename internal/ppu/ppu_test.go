package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nesgo/nesgo/internal/palette"
)

type fakeCart struct {
	chr    [0x2000]uint8
	mirror Mirror
}

func (f *fakeCart) ReadCHR(addr uint16) uint8     { return f.chr[addr] }
func (f *fakeCart) WriteCHR(addr uint16, v uint8) { f.chr[addr] = v }
func (f *fakeCart) Mirror() Mirror                { return f.mirror }

func newTestPPU() (*PPU, *fakeCart) {
	cart := &fakeCart{mirror: MirrorHorizontal}
	mem := NewMemory(cart)
	return New(mem, &palette.Table{}), cart
}

func TestVBlankSetAndNMIOnEntry(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(0x2000, 0x80) // enable NMI

	// Advance to scanline 241 dot 1.
	for !(p.scanline == 241 && p.dot == 1) {
		p.Step()
	}
	p.Step() // execute the dot-1 action

	assert.True(t, p.status&statusVBlank != 0)
	assert.True(t, p.TakeNMI())
}

func TestMultiNMIOnLateCtrlWrite(t *testing.T) {
	p, _ := newTestPPU()
	// Force status bit 7 on directly (as if VBlank already entered).
	p.status |= statusVBlank

	p.WriteRegister(0x2000, 0x80)
	assert.True(t, p.TakeNMI(), "enabling NMI while VBlank flag is set should assert immediately")
}

func TestPPUStatusReadClearsVBlankAndW(t *testing.T) {
	p, _ := newTestPPU()
	p.status |= statusVBlank
	p.w = true

	v := p.ReadRegister(0x2002)
	assert.True(t, v&0x80 != 0, "first read observes the flag")
	assert.False(t, p.w)
	assert.Equal(t, uint8(0), p.status&statusVBlank, "flag clears as a side effect of the read")
}

func TestPPUDATABufferedRead(t *testing.T) {
	p, cart := newTestPPU()
	cart.chr[0x0010] = 0x42

	p.WriteRegister(0x2006, 0x00)
	p.WriteRegister(0x2006, 0x10) // v = 0x0010
	first := p.ReadRegister(0x2007)
	assert.Equal(t, uint8(0), first, "first read returns stale buffer, not the fresh value")
	second := p.ReadRegister(0x2007)
	assert.Equal(t, uint8(0x42), second)
}

func TestPPUDATAPaletteReadIsImmediate(t *testing.T) {
	p, _ := newTestPPU()
	p.mem.Write(0x3F05, 0x16)
	p.WriteRegister(0x2006, 0x3F)
	p.WriteRegister(0x2006, 0x05)
	v := p.ReadRegister(0x2007)
	assert.Equal(t, uint8(0x16), v, "palette reads bypass the one-read-ahead buffer")
}

func TestScrollAndAddrShareWToggle(t *testing.T) {
	p, _ := newTestPPU()
	p.WriteRegister(0x2005, 0x7D) // coarse X=15, fine X=5
	p.WriteRegister(0x2005, 0x5E) // coarse Y=11, fine Y=6
	assert.Equal(t, uint8(5), p.x)
	assert.False(t, p.w)

	p.WriteRegister(0x2006, 0x21)
	p.WriteRegister(0x2006, 0x08)
	assert.Equal(t, uint16(0x2108), p.v)
}

func TestPaletteMirrorBackdropAlias(t *testing.T) {
	p, _ := newTestPPU()
	p.mem.Write(0x3F10, 0xAA)
	assert.Equal(t, uint8(0xAA), p.mem.Read(0x3F00))
}

func TestHorizontalMirrorNametable(t *testing.T) {
	p, cart := newTestPPU()
	cart.mirror = MirrorHorizontal
	p.mem.Write(0x2000, 0xAA)
	assert.Equal(t, uint8(0xAA), p.mem.Read(0x2400))
}

func TestVerticalMirrorNametable(t *testing.T) {
	p, cart := newTestPPU()
	cart.mirror = MirrorVertical
	p.mem.Write(0x2000, 0xAA)
	assert.Equal(t, uint8(0xAA), p.mem.Read(0x2800))
}

func TestFrameHasExpectedDotCount(t *testing.T) {
	p, _ := newTestPPU()
	startFrame := p.frame
	dots := 0
	for p.frame == startFrame {
		p.Step()
		dots++
	}
	// One full frame with rendering disabled (no odd-frame skip) is
	// exactly 341*262 dots.
	assert.Equal(t, uint64(1), p.frame-startFrame)
	assert.Equal(t, 341*262, dots)
}

func TestSprite0HitRequiresBothOpaque(t *testing.T) {
	p, _ := newTestPPU()
	p.mask = maskShowBG | maskShowSprites | maskShowBGLeft | maskShowSpritesLeft
	p.sprites[0] = spriteSlot{patternLo: 0x80, patternHi: 0x00, x: 0, isZero: true}
	p.bgPatternLo = 0x8000
	p.bgPatternHi = 0x0000
	p.scanline = 10
	p.dot = 5
	p.renderPixel()
	assert.True(t, p.status&statusSprite0Hit != 0)
}

func TestSpriteOverflowBuggyIncrement(t *testing.T) {
	p, _ := newTestPPU()
	p.ctrl = 0
	// Fill OAM with 9 sprites all visible on scanline 1 (8 pixels tall),
	// all at Y=0 so scanline+1=1 falls in [0,8).
	for i := 0; i < 9; i++ {
		p.oam[i*4] = 0
	}
	// The rest of OAM stays at Y=0 too (zero value), which would also
	// register as in-range for the buggy scan; that's expected hardware
	// behavior, not a bug in this reproduction.
	p.scanline = 0
	p.evaluateSprites()
	assert.Equal(t, 8, p.spriteEvalCount)
	assert.True(t, p.status&statusOverflow != 0)
}

func TestEvaluateSpritesResetsOAMADDR(t *testing.T) {
	p, _ := newTestPPU()
	// Sprite 0 is the only one visible on scanline 1; a stale nonzero
	// OAMADDR left over from CPU writes during the prior scanline must
	// not change where evaluation starts scanning from.
	p.oam[0] = 0 // sprite 0: Y=0, visible on scanline+1=1
	for i := 1; i < 64; i++ {
		p.oam[i*4] = 0xFF // off-screen
	}
	p.oamAddr = 0x17
	p.scanline = 0

	p.evaluateSprites()

	assert.Equal(t, uint8(0), p.oamAddr)
	assert.Equal(t, 1, p.spriteEvalCount)
	assert.True(t, p.spriteZeroNextLn)
}
