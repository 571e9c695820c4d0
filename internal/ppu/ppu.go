// Package ppu implements the 2C02 picture-processing unit: the scanline
// and dot state machine, the background shift-register pixel pipeline,
// sprite evaluation/fetch, and the PPU register file the CPU bus maps
// into 0x2000-0x3FFF.
//
// Grounded on RNG999-gones/internal/ppu/ppu.go for struct shape and
// register-dispatch naming, but the dot-by-dot fetch/shift pipeline and
// sprite evaluation below are written from scratch: that repo advances
// the PPU in bulk per CPU instruction and has no shift-register pipeline
// at all.
package ppu

import "github.com/nesgo/nesgo/internal/palette"

const (
	ctrlNametableMask  uint8 = 0x03
	ctrlIncrement32    uint8 = 0x04
	ctrlSpriteTable    uint8 = 0x08
	ctrlBGTable        uint8 = 0x10
	ctrlSpriteSize16   uint8 = 0x20
	ctrlNMIEnable      uint8 = 0x80
	maskShowBGLeft     uint8 = 0x02
	maskShowSpritesLeft uint8 = 0x04
	maskShowBG         uint8 = 0x08
	maskShowSprites    uint8 = 0x10
	statusOverflow     uint8 = 0x20
	statusSprite0Hit   uint8 = 0x40
	statusVBlank       uint8 = 0x80
)

type spriteSlot struct {
	patternLo, patternHi uint8
	x                    uint8
	attrib               uint8
	isZero               bool
}

// PPU holds all 2C02 register and pipeline state.
type PPU struct {
	ctrl, mask, status, oamAddr uint8
	oam                         [256]uint8
	secondaryOAM                [32]uint8

	v, t uint16
	x    uint8
	w    bool

	busLatch   uint8
	readBuffer uint8

	bgPatternLo, bgPatternHi     uint16
	bgAttribShiftLo, bgAttribShiftHi uint8
	attribLatchLo, attribLatchHi uint8
	nextTileID, nextAttrib       uint8
	nextPatternLo, nextPatternHi uint8

	sprites          [8]spriteSlot
	spriteEvalCount  int
	spriteZeroNextLn bool

	scanline int
	dot      int
	frame    uint64
	oddFrame bool

	nmiPending    bool
	frameComplete bool

	mem *Memory
	pal *palette.Table

	frameBuffer [256 * 240]uint32
}

func New(mem *Memory, pal *palette.Table) *PPU {
	if pal == nil {
		pal = palette.Default
	}
	return &PPU{mem: mem, pal: pal}
}

// Reset clears register and pipeline state to power-on values.
func (p *PPU) Reset() {
	*p = PPU{mem: p.mem, pal: p.pal}
}

func (p *PPU) FrameBuffer() []uint32 { return p.frameBuffer[:] }
func (p *PPU) Frame() uint64         { return p.frame }

// Dot and Scanline expose current timing position, for debug overlays
// and tests driving the bus's per-access 3-dot coupling.
func (p *PPU) Dot() int      { return p.dot }
func (p *PPU) Scanline() int { return p.scanline }

// OAMByte reads one byte of primary OAM, for OAM-viewer tooling and
// tests verifying OAM DMA's effect.
func (p *PPU) OAMByte(i uint8) uint8 { return p.oam[i] }

// TakeNMI reports and clears a pending NMI assertion. Called by the bus
// once per CPU access, matching the one-way CPU-polls-a-flag ownership
// the design favors over a PPU-to-CPU back-pointer.
func (p *PPU) TakeNMI() bool {
	v := p.nmiPending
	p.nmiPending = false
	return v
}

// TakeFrameComplete reports and clears whether a new frame was presented
// (entry to scanline 241) since the last call.
func (p *PPU) TakeFrameComplete() bool {
	v := p.frameComplete
	p.frameComplete = false
	return v
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(maskShowBG|maskShowSprites) != 0
}

// Step advances the PPU by exactly one dot. The bus calls this three
// times per CPU memory access.
func (p *PPU) Step() {
	visibleOrPrerender := p.scanline <= 239 || p.scanline == 261

	if visibleOrPrerender {
		if p.renderingEnabled() {
			p.backgroundPipeline()
			p.spriteEvaluationAndFetch()
		}
	}

	if p.scanline <= 239 && p.dot >= 1 && p.dot <= 256 {
		p.renderPixel()
	}

	if p.scanline == 241 && p.dot == 1 {
		p.status |= statusVBlank
		p.frameComplete = true
		if p.ctrl&ctrlNMIEnable != 0 {
			p.nmiPending = true
		}
	}

	if p.scanline == 261 && p.dot == 1 {
		p.status &^= statusVBlank | statusSprite0Hit | statusOverflow
	}

	p.advance()
}

func (p *PPU) advance() {
	p.dot++
	if p.scanline == 261 && p.dot == 340 && p.oddFrame && p.renderingEnabled() {
		// Skip the idle dot on odd frames when rendering is on.
		p.dot = 341
	}
	if p.dot > 340 {
		p.dot = 0
		p.scanline++
		if p.scanline > 261 {
			p.scanline = 0
			p.frame++
			p.oddFrame = !p.oddFrame
		}
	}
}

func isLoadDot(dot int) bool {
	if dot >= 9 && dot <= 257 && (dot-9)%8 == 0 {
		return true
	}
	return dot == 329 || dot == 337
}

func (p *PPU) backgroundPipeline() {
	inFetchRange := (p.dot >= 1 && p.dot <= 256) || (p.dot >= 321 && p.dot <= 336)
	if inFetchRange {
		p.shiftBackground()
		switch (p.dot - 1) % 8 {
		case 1:
			addr := 0x2000 | (p.v & 0x0FFF)
			p.nextTileID = p.mem.Read(addr)
		case 3:
			addr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
			attr := p.mem.Read(addr)
			shift := ((p.v >> 4) & 0x04) | (p.v & 0x02)
			p.nextAttrib = (attr >> shift) & 0x03
		case 5:
			fineY := (p.v >> 12) & 0x07
			table := uint16(p.ctrl&ctrlBGTable) << 8
			addr := table | (uint16(p.nextTileID) << 4) | fineY
			p.nextPatternLo = p.mem.Read(addr)
		case 7:
			fineY := (p.v >> 12) & 0x07
			table := uint16(p.ctrl&ctrlBGTable) << 8
			addr := table | (uint16(p.nextTileID) << 4) | fineY | 0x08
			p.nextPatternHi = p.mem.Read(addr)
			p.incrementCoarseX()
		}
	}
	if isLoadDot(p.dot) {
		p.loadShiftRegisters()
	}
	if p.dot == 256 {
		p.incrementY()
	}
	if p.dot == 257 {
		p.reloadHorizontal()
	}
	if p.scanline == 261 && p.dot >= 280 && p.dot <= 304 {
		p.reloadVertical()
	}
}

func (p *PPU) shiftBackground() {
	p.bgPatternLo <<= 1
	p.bgPatternHi <<= 1
	p.bgAttribShiftLo = (p.bgAttribShiftLo << 1) | p.attribLatchLo
	p.bgAttribShiftHi = (p.bgAttribShiftHi << 1) | p.attribLatchHi
}

func (p *PPU) loadShiftRegisters() {
	p.bgPatternLo = (p.bgPatternLo & 0xFF00) | uint16(p.nextPatternLo)
	p.bgPatternHi = (p.bgPatternHi & 0xFF00) | uint16(p.nextPatternHi)
	p.attribLatchLo = p.nextAttrib & 0x01
	p.attribLatchHi = (p.nextAttrib >> 1) & 0x01
}

func (p *PPU) incrementCoarseX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

func (p *PPU) reloadHorizontal() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

func (p *PPU) reloadVertical() {
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

func (p *PPU) renderPixel() {
	x := p.dot - 1

	if !p.renderingEnabled() {
		// Forced blank: no fetches happen and v is used directly as the
		// address bus instead of the bg/sprite multiplexer. Outside
		// palette RAM that address isn't a color index, so the backdrop
		// entry stands in for it, matching the usual case of v parked in
		// palette range during this state.
		addr := p.v & 0x3FFF
		if addr < 0x3F00 {
			addr = 0x3F00
		}
		color := p.mem.Read(addr)
		p.frameBuffer[p.scanline*256+x] = p.pal.RGB(color)
		return
	}

	bgPixel, bgPalette := p.backgroundPixel()
	if p.mask&maskShowBG == 0 || (x < 8 && p.mask&maskShowBGLeft == 0) {
		bgPixel = 0
	}

	spPixel, spPalette, spPriority, spZero := p.spritePixelAndAdvance()
	if p.mask&maskShowSprites == 0 || (x < 8 && p.mask&maskShowSpritesLeft == 0) {
		spPixel = 0
	}

	var addr uint16
	switch {
	case bgPixel == 0 && spPixel == 0:
		addr = 0x3F00
	case bgPixel == 0:
		addr = 0x3F10 | uint16(spPalette)<<2 | uint16(spPixel)
	case spPixel == 0:
		addr = 0x3F00 | uint16(bgPalette)<<2 | uint16(bgPixel)
	case spPriority == 0:
		addr = 0x3F10 | uint16(spPalette)<<2 | uint16(spPixel)
	default:
		addr = 0x3F00 | uint16(bgPalette)<<2 | uint16(bgPixel)
	}

	if spZero && bgPixel != 0 && spPixel != 0 && x >= 1 && x <= 254 && p.renderingEnabled() {
		p.status |= statusSprite0Hit
	}

	color := p.mem.Read(addr)
	p.frameBuffer[p.scanline*256+x] = p.pal.RGB(color)
}

func (p *PPU) backgroundPixel() (pixel uint8, pal uint8) {
	bit := uint(15 - p.x)
	lo := uint8((p.bgPatternLo >> bit) & 1)
	hi := uint8((p.bgPatternHi >> bit) & 1)
	pixel = hi<<1 | lo

	abit := uint(7 - p.x)
	alo := (p.bgAttribShiftLo >> abit) & 1
	ahi := (p.bgAttribShiftHi >> abit) & 1
	pal = ahi<<1 | alo
	return
}

func (p *PPU) spritePixelAndAdvance() (pixel uint8, pal uint8, priority uint8, isZero bool) {
	for i := range p.sprites {
		s := &p.sprites[i]
		if s.x != 0 {
			continue
		}
		bit := (s.patternHi&0x80)>>6 | (s.patternLo&0x80)>>7
		if bit != 0 && pixel == 0 {
			pixel = bit
			pal = s.attrib & 0x03
			priority = (s.attrib >> 5) & 1
			isZero = s.isZero
		}
	}
	for i := range p.sprites {
		s := &p.sprites[i]
		if s.x != 0 {
			s.x--
		} else {
			s.patternLo <<= 1
			s.patternHi <<= 1
		}
	}
	return
}
