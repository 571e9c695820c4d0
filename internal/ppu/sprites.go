package ppu

// spriteEvaluationAndFetch runs the two sprite-related phases of a
// scanline once their dot windows open: secondary-OAM evaluation (for
// the *next* scanline) and pattern fetch for the sprites found. Real
// hardware spreads both across their full dot ranges one OAM/CHR access
// at a time; this runs the equivalent work in one shot at the window's
// first dot, since nothing observable in this scope depends on the
// sub-window timing beyond the results already being latched by the
// window's last dot.
func (p *PPU) spriteEvaluationAndFetch() {
	if p.dot == 65 {
		p.evaluateSprites()
	}
	if p.dot == 257 {
		p.fetchSprites()
	}
}

func (p *PPU) spriteHeight() int {
	if p.ctrl&ctrlSpriteSize16 != 0 {
		return 16
	}
	return 8
}

// evaluateSprites fills secondary OAM with up to 8 sprites visible on
// scanline+1 and reproduces the hardware's buggy overflow-detection
// increment: once 8 sprites are found, the evaluator keeps advancing
// both the OAM index and the in-sprite byte offset, so the overflow
// check walks diagonally through attribute/X bytes instead of Y bytes.
func (p *PPU) evaluateSprites() {
	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	p.spriteZeroNextLn = false
	p.spriteEvalCount = 0

	height := p.spriteHeight()
	targetLine := p.scanline + 1

	// OAMADDR resets to 0 at the start of evaluation on every visible
	// scanline, regardless of what it held during the prior scanline.
	p.oamAddr = 0
	n, m := 0, 0
	found := 0

	for count := 0; count < 64; count++ {
		idx := (n + count) % 64
		if found < 8 {
			y := int(p.oam[idx*4])
			if targetLine >= y && targetLine < y+height {
				for b := 0; b < 4; b++ {
					p.secondaryOAM[found*4+b] = p.oam[idx*4+b]
				}
				if idx == 0 {
					p.spriteZeroNextLn = true
				}
				found++
			}
			continue
		}
		y := int(p.oam[idx*4+m])
		if targetLine >= y && targetLine < y+height {
			p.status |= statusOverflow
			break
		}
		m = (m + 1) % 4
	}
	p.spriteEvalCount = found
}

func reverseBits(b uint8) uint8 {
	b = (b&0xF0)>>4 | (b&0x0F)<<4
	b = (b&0xCC)>>2 | (b&0x33)<<2
	b = (b&0xAA)>>1 | (b&0x55)<<1
	return b
}

// fetchSprites loads pattern bytes, X counters and attributes for the up
// to 8 sprites evaluateSprites found, for use starting the next scanline.
func (p *PPU) fetchSprites() {
	height := p.spriteHeight()
	targetLine := p.scanline + 1

	for i := 0; i < 8; i++ {
		if i >= p.spriteEvalCount {
			p.sprites[i] = spriteSlot{}
			continue
		}
		y := int(p.secondaryOAM[i*4])
		tile := p.secondaryOAM[i*4+1]
		attr := p.secondaryOAM[i*4+2]
		xpos := p.secondaryOAM[i*4+3]

		row := targetLine - y
		if attr&0x80 != 0 { // vertical flip
			row = height - 1 - row
		}

		var table uint16
		var index uint8
		if height == 16 {
			table = uint16(tile&0x01) << 12
			index = tile &^ 0x01
			if row >= 8 {
				index++
				row -= 8
			}
		} else {
			table = uint16(p.ctrl&ctrlSpriteTable) << 9
			index = tile
		}

		addr := table | uint16(index)<<4 | uint16(row)
		lo := p.mem.Read(addr)
		hi := p.mem.Read(addr + 8)
		if attr&0x40 != 0 { // horizontal flip
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}

		p.sprites[i] = spriteSlot{
			patternLo: lo,
			patternHi: hi,
			x:         xpos,
			attrib:    attr,
			isZero:    i == 0 && p.spriteZeroNextLn,
		}
	}
}
