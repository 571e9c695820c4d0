package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrobeHeldHighAlwaysReportsButtonA(t *testing.T) {
	c := &Controller{}
	c.SetButton(ButtonA, true)
	c.Write(0x01) // strobe high

	assert.Equal(t, uint8(1), c.Read())
	assert.Equal(t, uint8(1), c.Read())
	assert.Equal(t, uint8(1), c.Read())
}

func TestFallingEdgeLatchesAndShiftsOutInOrder(t *testing.T) {
	c := &Controller{}
	c.SetButton(ButtonA, true)
	c.SetButton(ButtonB, true)
	c.SetButton(ButtonSelect, false)
	c.SetButton(ButtonStart, false)
	c.SetButton(ButtonUp, false)
	c.SetButton(ButtonDown, false)
	c.SetButton(ButtonLeft, false)
	c.SetButton(ButtonRight, true)

	c.Write(0x01)
	c.Write(0x00) // falling edge: latch

	want := []uint8{1, 1, 0, 0, 0, 0, 0, 1}
	for i, w := range want {
		got := c.Read() & 0x01
		assert.Equalf(t, w, got, "bit %d", i)
	}
}

func TestReadAfterEighthBitSaturatesHigh(t *testing.T) {
	c := &Controller{}
	c.Write(0x01)
	c.Write(0x00)
	for i := 0; i < 8; i++ {
		c.Read()
	}
	assert.Equal(t, uint8(1), c.Read()&0x01)
}

func TestSetButtonDuringStrobeIsVisibleImmediately(t *testing.T) {
	c := &Controller{}
	c.Write(0x01) // strobe high: continuously re-latches
	c.SetButton(ButtonA, true)
	assert.Equal(t, uint8(1), c.Read())
	c.SetButton(ButtonA, false)
	assert.Equal(t, uint8(0), c.Read())
}
