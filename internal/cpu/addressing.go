package cpu

// Addressing-mode resolvers. Each issues exactly the bus accesses real
// hardware issues for that mode/operation-kind combination; the resulting
// cycle count is a side effect of how many read/write/tick calls run, not
// a separately maintained table.
//
// Read-style resolvers return the operand value and take the "free"
// cycle when an indexed access doesn't cross a page boundary. Write- and
// RMW-style resolvers return an address and always pay the extra cycle,
// matching real 6502 behavior (STA abs,X is always 5 cycles; ASL abs,X is
// always 7).

func (c *CPU) zpAddr() uint16 {
	return uint16(c.fetch())
}

func (c *CPU) zpIndexedAddr(index uint8) uint16 {
	base := c.fetch()
	c.read(uint16(base)) // dummy read at the unindexed zero-page location
	return uint16(base + index)
}

func (c *CPU) absAddr() uint16 {
	return c.fetch16()
}

// absIndexedRead resolves addr,X/Y for a read instruction: the 4th access
// is the real read when no page boundary is crossed, or a dummy read at
// the wrong page followed by the real read when one is.
func (c *CPU) absIndexedRead(index uint8) (value uint8, addr uint16) {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	base := hi<<8 | lo
	addr = base + uint16(index)
	if (addr & 0xFF00) != (base & 0xFF00) {
		wrong := (base & 0xFF00) | (addr & 0x00FF)
		c.read(wrong)
	}
	return c.read(addr), addr
}

// absIndexedAddr resolves addr,X/Y for a write or RMW instruction: the
// dummy read at the (possibly wrong-page) address always happens.
func (c *CPU) absIndexedAddr(index uint8) uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	base := hi<<8 | lo
	addr := base + uint16(index)
	wrong := (base & 0xFF00) | (addr & 0x00FF)
	c.read(wrong)
	return addr
}

// indexedIndirectAddr resolves (zp,X): always 3 address bytes/dummy reads
// before the pointer dereference, used by both read and write/RMW ops
// (the indexing happens before the indirection, so there's no page-cross
// variance to account for).
func (c *CPU) indexedIndirectAddr() uint16 {
	base := c.fetch()
	c.read(uint16(base))
	ptr := base + c.X
	lo := uint16(c.read(uint16(ptr)))
	hi := uint16(c.read(uint16(ptr + 1)))
	return hi<<8 | lo
}

func (c *CPU) indirectIndexedRead() (value uint8, addr uint16) {
	zp := c.fetch()
	lo := uint16(c.read(uint16(zp)))
	hi := uint16(c.read(uint16(zp + 1)))
	base := hi<<8 | lo
	addr = base + uint16(c.Y)
	if (addr & 0xFF00) != (base & 0xFF00) {
		wrong := (base & 0xFF00) | (addr & 0x00FF)
		c.read(wrong)
	}
	return c.read(addr), addr
}

func (c *CPU) indirectIndexedAddr() uint16 {
	zp := c.fetch()
	lo := uint16(c.read(uint16(zp)))
	hi := uint16(c.read(uint16(zp + 1)))
	base := hi<<8 | lo
	addr := base + uint16(c.Y)
	wrong := (base & 0xFF00) | (addr & 0x00FF)
	c.read(wrong)
	return addr
}

// rmw loads, writes the value back unchanged (the real hardware's
// write-old-then-write-new pattern), computes the new value via op, and
// writes it.
func (c *CPU) rmw(addr uint16, op func(uint8) uint8) uint8 {
	value := c.read(addr)
	c.write(addr, value)
	newValue := op(value)
	c.write(addr, newValue)
	return newValue
}
