package bootrom_test

import (
	"testing"

	"github.com/jetsetilly/testdmg/hardware/memory/bootrom"
	"github.com/jetsetilly/testdmg/test"
)

func TestLoad(t *testing.T) {
	b := &bootrom.BootROM{}

	// only exactly 256 bytes will do
	test.ExpectFailure(t, b.Load(make([]byte, 0x0101)))
	test.ExpectFailure(t, b.Load(make([]byte, 0x0080)))

	data := make([]byte, 0x0100)
	data[0x31] = 0xfe
	test.ExpectSuccess(t, b.Load(data))

	v, err := b.Read(0x0031)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0xfe)
}

func TestDisable(t *testing.T) {
	b := &bootrom.BootROM{}
	test.ExpectEquality(t, b.On(), true)

	// any written value disables the overlay, zero included, and the value is
	// preserved in the latch
	b.Disable(0x00)
	test.ExpectEquality(t, b.On(), false)
	test.ExpectEquality(t, b.Latch(), 0x00)

	b.Disable(0xaa)
	test.ExpectEquality(t, b.On(), false)
	test.ExpectEquality(t, b.Latch(), 0xaa)
}
