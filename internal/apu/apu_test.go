package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadAlwaysReturnsZero(t *testing.T) {
	a := New()
	assert.Equal(t, uint8(0), a.Read(0x4000))
	assert.Equal(t, uint8(0), a.Read(0x4013))
}

func TestStatusReadIsAlwaysZero(t *testing.T) {
	a := New()
	a.Write(0x4015, 0xFF)
	assert.Equal(t, uint8(0), a.Status())
}

func TestWriteDoesNotPanicAcrossRegisterRange(t *testing.T) {
	a := New()
	for addr := uint16(0x4000); addr <= 0x4013; addr++ {
		a.Write(addr, 0x42)
	}
	assert.Equal(t, uint8(0x42), a.lastWrite)
}
