package joypad

import (
	"fmt"

	"github.com/jetsetilly/testdmg/hardware/interrupts"
	"github.com/jetsetilly/testdmg/ui"
)

// the single joypad register as it appears on the address bus
const Address = 0xff00

// the select bits of the register. a cleared bit selects the group
const (
	selectDirections = 0x10
	selectButtons    = 0x20
)

// bit positions within each button group
const (
	bitRightOrA    = 0x01
	bitLeftOrB     = 0x02
	bitUpOrSelect  = 0x04
	bitDownOrStart = 0x08
)

// Interrupts is the interface to the interrupt controller required by the
// joypad
type Interrupts interface {
	Request(source int)
}

// Joypad is the button matrix behind the register at 0xff00. The running
// program selects one of the two button groups by writing the select bits and
// reads the group state in the low nibble, active low
type Joypad struct {
	ints Interrupts

	// the select bits as most recently written
	sel uint8

	// pressed buttons in each group. held as pressed-high masks and inverted
	// on the way out of Read()
	directions uint8
	buttons    uint8
}

func Create(ints Interrupts) *Joypad {
	return &Joypad{
		ints: ints,
	}
}

func (j *Joypad) Reset() {
	j.sel = selectDirections | selectButtons
	j.directions = 0
	j.buttons = 0
}

func (j *Joypad) Label() string {
	return "Joypad"
}

func (j *Joypad) Status() string {
	return fmt.Sprintf("%s: %#02x", j.Label(), j.Read())
}

func (j *Joypad) Read() uint8 {
	v := uint8(0xc0) | j.sel
	nibble := uint8(0x0f)
	if j.sel&selectDirections == 0 {
		nibble &^= j.directions
	}
	if j.sel&selectButtons == 0 {
		nibble &^= j.buttons
	}
	return v | nibble
}

// Write sets the group select bits. The low nibble is wired to the buttons
// themselves and cannot be written
func (j *Joypad) Write(data uint8) {
	j.sel = data & (selectDirections | selectButtons)
}

// Handle applies a user input event to the button matrix. A press requests
// the joypad interrupt
func (j *Joypad) Handle(inp ui.Input) {
	var group *uint8
	var bit uint8

	switch inp.Action {
	case ui.PadRight:
		group = &j.directions
		bit = bitRightOrA
	case ui.PadLeft:
		group = &j.directions
		bit = bitLeftOrB
	case ui.PadUp:
		group = &j.directions
		bit = bitUpOrSelect
	case ui.PadDown:
		group = &j.directions
		bit = bitDownOrStart
	case ui.ButtonA:
		group = &j.buttons
		bit = bitRightOrA
	case ui.ButtonB:
		group = &j.buttons
		bit = bitLeftOrB
	case ui.Select:
		group = &j.buttons
		bit = bitUpOrSelect
	case ui.Start:
		group = &j.buttons
		bit = bitDownOrStart
	default:
		return
	}

	if inp.Release {
		*group &^= bit
	} else {
		*group |= bit
		j.ints.Request(interrupts.Joypad)
	}
}
