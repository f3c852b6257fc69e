package interrupts

import (
	"fmt"
)

// the five interrupt sources of the DMG, in priority order. the bit position
// is the same in both the enable and flag registers. the bit also selects the
// handler address the CPU jumps to on dispatch (0x0040 + bit * 8)
const (
	VBlank = iota
	LCDStatus
	Timer
	Serial
	Joypad
	NumSources
)

// only the low five bits of the enable and flag registers have meaning
const Mask = 0x1f

// Interrupts holds the interrupt-enable and interrupt-flag registers. An
// interrupt is deliverable when the corresponding bit is set in both
// registers. Dispatch itself is the CPU's responsibility
type Interrupts struct {
	// the registers at addresses 0xffff and 0xff0f respectively. both are
	// read/written through the address bus as ordinary registers
	Enable uint8
	Flag   uint8
}

func (ints *Interrupts) Reset() {
	ints.Enable = 0
	ints.Flag = 0
}

func (ints *Interrupts) Label() string {
	return "Interrupts"
}

func (ints *Interrupts) Status() string {
	return fmt.Sprintf("%s: ie=%#02x if=%#02x", ints.Label(), ints.Enable, ints.Flag)
}

// Request sets the flag bit for the interrupt source. Setting a bit that is
// already set has no further effect
func (ints *Interrupts) Request(source int) {
	ints.Flag |= 1 << source
}

// Acknowledge clears the flag bit for the interrupt source. Called by the CPU
// when it dispatches the interrupt
func (ints *Interrupts) Acknowledge(source int) {
	ints.Flag &^= 1 << source
}

// Pending returns the sources that are both flagged and enabled
func (ints *Interrupts) Pending() uint8 {
	return ints.Enable & ints.Flag & Mask
}

// register accessors used by the address bus
func (ints *Interrupts) ReadEnable() uint8 {
	return ints.Enable
}

func (ints *Interrupts) WriteEnable(data uint8) {
	ints.Enable = data
}

func (ints *Interrupts) ReadFlag() uint8 {
	return ints.Flag
}

func (ints *Interrupts) WriteFlag(data uint8) {
	ints.Flag = data
}
