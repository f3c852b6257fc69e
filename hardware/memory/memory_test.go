package memory_test

import (
	"testing"

	"github.com/jetsetilly/testdmg/hardware/interrupts"
	"github.com/jetsetilly/testdmg/hardware/joypad"
	"github.com/jetsetilly/testdmg/hardware/memory"
	"github.com/jetsetilly/testdmg/hardware/ppu"
	"github.com/jetsetilly/testdmg/hardware/timer"
	"github.com/jetsetilly/testdmg/test"
	"github.com/jetsetilly/testdmg/ui"
)

type testContext struct{}

func (testContext) Rand8Bit() uint8 {
	return 0
}

func (testContext) FixLY() bool {
	return false
}

type testLimiter struct{}

func (testLimiter) Wait() {}

func createTestMemory() (*memory.Memory, *interrupts.Interrupts) {
	ints := &interrupts.Interrupts{}
	mem, addChips := memory.Create(testContext{})
	vid := ppu.Create(testContext{}, ints, ui.NewUI(), testLimiter{})
	tmr := timer.Create(ints)
	pad := joypad.Create(ints)
	addChips(vid, vid.WRAM0, vid.WRAM1, tmr, ints, pad)
	mem.Reset(false)
	vid.Reset(false)
	tmr.Reset()
	pad.Reset()
	return mem, ints
}

func readValue(t *testing.T, mem *memory.Memory, address uint16) uint8 {
	t.Helper()
	v, err := mem.Read(address)
	test.DemandSuccess(t, err)
	return v
}

func writeValue(t *testing.T, mem *memory.Memory, address uint16, data uint8) {
	t.Helper()
	test.DemandSuccess(t, mem.Write(address, data))
}

func TestEchoMirroring(t *testing.T) {
	mem, _ := createTestMemory()

	// a byte in working RAM bank 0 is visible through the echo region
	writeValue(t, mem, 0xc123, 0x42)
	test.ExpectEquality(t, readValue(t, mem, 0xe123), 0x42)

	// and a write through the echo region lands in working RAM bank 1
	writeValue(t, mem, 0xf000, 0x99)
	test.ExpectEquality(t, readValue(t, mem, 0xd000), 0x99)
}

func TestBootROMOverlay(t *testing.T) {
	mem, _ := createTestMemory()

	boot := make([]byte, 0x100)
	boot[0x50] = 0x50
	test.DemandSuccess(t, mem.BootROM.Load(boot))

	rom := make([]byte, 0x8000)
	rom[0x50] = 0xca
	test.DemandSuccess(t, mem.Cartridge.Insert(rom))

	// overlay active. low reads hit the boot ROM and low writes are illegal
	test.ExpectEquality(t, readValue(t, mem, 0x0050), 0x50)
	test.ExpectFailure(t, mem.Write(0x0000, 0x00))

	// writing to the latch removes the overlay and exposes the cartridge
	writeValue(t, mem, 0xff50, 0x01)
	test.ExpectEquality(t, readValue(t, mem, 0x0050), 0xca)
	test.ExpectEquality(t, readValue(t, mem, 0xff50), 0x01)

	// and it stays removed no matter what is written
	writeValue(t, mem, 0xff50, 0x00)
	test.ExpectEquality(t, readValue(t, mem, 0x0050), 0xca)
}

func TestUnmappedAddresses(t *testing.T) {
	mem, _ := createTestMemory()

	_, err := mem.Read(0xff03)
	test.ExpectFailure(t, err)
	test.ExpectFailure(t, mem.Write(0xff7f, 0x00))
}

func TestStubRegisters(t *testing.T) {
	mem, _ := createTestMemory()

	// serial and sound registers store whatever is written
	writeValue(t, mem, 0xff01, 0xab)
	test.ExpectEquality(t, readValue(t, mem, 0xff01), 0xab)
	writeValue(t, mem, 0xff26, 0x80)
	test.ExpectEquality(t, readValue(t, mem, 0xff26), 0x80)
	writeValue(t, mem, 0xff13, 0x3c)
	test.ExpectEquality(t, readValue(t, mem, 0xff13), 0x3c)
}

func TestChipRouting(t *testing.T) {
	mem, ints := createTestMemory()

	// timer
	writeValue(t, mem, 0xff06, 0x12)
	test.ExpectEquality(t, readValue(t, mem, 0xff06), 0x12)

	// interrupt enable and flag
	writeValue(t, mem, 0xffff, 0x1f)
	test.ExpectEquality(t, ints.Enable, 0x1f)
	writeValue(t, mem, 0xff0f, 0x04)
	test.ExpectEquality(t, readValue(t, mem, 0xff0f), 0x04)

	// vram and external RAM
	writeValue(t, mem, 0x8000, 0x7e)
	test.ExpectEquality(t, readValue(t, mem, 0x8000), 0x7e)
	writeValue(t, mem, 0xa000, 0x55)
	test.ExpectEquality(t, readValue(t, mem, 0xa000), 0x55)

	// ppu registers. ly is computed and cannot be written
	writeValue(t, mem, 0xff40, 0x91)
	test.ExpectEquality(t, readValue(t, mem, 0xff40), 0x91)
	test.ExpectEquality(t, readValue(t, mem, 0xff44), 0x00)
	test.ExpectFailure(t, mem.Write(0xff44, 0x01))
}

func TestHRAM(t *testing.T) {
	mem, _ := createTestMemory()

	writeValue(t, mem, 0xff80, 0x11)
	writeValue(t, mem, 0xfffe, 0x22)
	test.ExpectEquality(t, readValue(t, mem, 0xff80), 0x11)
	test.ExpectEquality(t, readValue(t, mem, 0xfffe), 0x22)
}

func TestEjectedCartridge(t *testing.T) {
	mem, _ := createTestMemory()
	test.ExpectEquality(t, readValue(t, mem, 0x0100), 0xff)
	test.ExpectEquality(t, readValue(t, mem, 0x4000), 0xff)
}
