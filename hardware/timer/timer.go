package timer

import (
	"fmt"

	"github.com/jetsetilly/testdmg/hardware/interrupts"
)

// the four timer registers as they appear on the address bus
const (
	AddressDIV  = 0xff04
	AddressTIMA = 0xff05
	AddressTMA  = 0xff06
	AddressTAC  = 0xff07
)

// Interrupts is the interface to the interrupt controller required by the
// timer
type Interrupts interface {
	Request(source int)
}

// Timer derives the divider and the configurable counter from the shared dot
// clock. Both registers accumulate dots independently of one another
type Timer struct {
	ints Interrupts

	divider     uint8
	dividerDots uint16

	// a write to the divider does not reset it immediately. the write happens
	// logically before the dots of the writing instruction have elapsed, so
	// resetting on the spot would discard dots the divider had already begun
	// accumulating for that instruction. instead the reset is marked here and
	// applied at the end of the current run of dots
	dividerResetPending bool

	counter     uint8
	counterDots uint16

	modulo  uint8
	control uint8
}

func Create(ints Interrupts) *Timer {
	return &Timer{
		ints: ints,
	}
}

func (tmr *Timer) Reset() {
	tmr.divider = 0
	tmr.dividerDots = 0
	tmr.dividerResetPending = false
	tmr.counter = 0
	tmr.counterDots = 0
	tmr.modulo = 0
	tmr.control = 0
}

func (tmr *Timer) Label() string {
	return "Timer"
}

func (tmr *Timer) Status() string {
	return fmt.Sprintf("%s: div=%#02x tima=%#02x tma=%#02x tac=%#02x",
		tmr.Label(), tmr.divider, tmr.counter, tmr.modulo, tmr.control)
}

// the number of dots that must accumulate before the counter increments. the
// low two bits of the control register select the rate
func (tmr *Timer) counterThreshold() uint16 {
	switch tmr.control & 0x03 {
	case 0b00:
		return 1024
	case 0b01:
		return 16
	case 0b10:
		return 64
	}
	return 256
}

// Tick advances the timer by one dot. Called by the console clock and never
// directly by any other chip
func (tmr *Timer) Tick() {
	tmr.dividerDots++
	if tmr.dividerDots == 256 {
		tmr.dividerDots = 0
		tmr.divider++
	}

	if tmr.control&0x04 == 0x04 {
		tmr.counterDots++
		if tmr.counterDots == tmr.counterThreshold() {
			tmr.counterDots = 0
			tmr.counter++
			if tmr.counter == 0 {
				tmr.counter = tmr.modulo
				tmr.ints.Request(interrupts.Timer)
			}
		}
	}
}

// EndStep applies any pending divider reset. Called once all the dots of the
// current instruction have been processed
func (tmr *Timer) EndStep() {
	if tmr.dividerResetPending {
		tmr.dividerResetPending = false
		tmr.divider = 0
		tmr.dividerDots = 0
	}
}

// Read returns the value of one of the four timer registers. Any other
// address reaching the timer is a bug in the address bus
func (tmr *Timer) Read(address uint16) uint8 {
	switch address {
	case AddressDIV:
		return tmr.divider
	case AddressTIMA:
		return tmr.counter
	case AddressTMA:
		return tmr.modulo
	case AddressTAC:
		return tmr.control
	}
	panic(fmt.Sprintf("timer: read of non-timer address (%#04x)", address))
}

// Write sets one of the four timer registers. A write to the divider marks it
// for reset at the end of the current run of dots rather than changing it
// immediately
func (tmr *Timer) Write(address uint16, data uint8) {
	switch address {
	case AddressDIV:
		tmr.dividerResetPending = true
	case AddressTIMA:
		tmr.counter = data
	case AddressTMA:
		tmr.modulo = data
	case AddressTAC:
		tmr.control = data
	default:
		panic(fmt.Sprintf("timer: write of non-timer address (%#04x)", address))
	}
}
