package joypad_test

import (
	"testing"

	"github.com/jetsetilly/testdmg/hardware/interrupts"
	"github.com/jetsetilly/testdmg/hardware/joypad"
	"github.com/jetsetilly/testdmg/test"
	"github.com/jetsetilly/testdmg/ui"
)

func TestMatrix(t *testing.T) {
	ints := &interrupts.Interrupts{}
	j := joypad.Create(ints)
	j.Reset()

	// nothing selected, nothing pressed. unused bits read high
	test.ExpectEquality(t, j.Read(), 0xff)

	j.Handle(ui.Input{Action: ui.PadLeft})
	j.Handle(ui.Input{Action: ui.ButtonA})

	// directions selected (bit cleared). left is held so its line reads low
	j.Write(0x20)
	test.ExpectEquality(t, j.Read(), 0xed)

	// buttons selected. A is held
	j.Write(0x10)
	test.ExpectEquality(t, j.Read(), 0xde)

	// releases take the lines high again
	j.Handle(ui.Input{Action: ui.ButtonA, Release: true})
	test.ExpectEquality(t, j.Read(), 0xdf)
}

func TestPressRequestsInterrupt(t *testing.T) {
	ints := &interrupts.Interrupts{}
	j := joypad.Create(ints)
	j.Reset()

	j.Handle(ui.Input{Action: ui.Start})
	test.ExpectEquality(t, ints.Flag, uint8(1)<<interrupts.Joypad)

	// a release never requests an interrupt
	ints.Reset()
	j.Handle(ui.Input{Action: ui.Start, Release: true})
	test.ExpectEquality(t, ints.Flag, 0x00)
}
