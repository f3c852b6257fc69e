package interrupts_test

import (
	"testing"

	"github.com/jetsetilly/testdmg/hardware/interrupts"
	"github.com/jetsetilly/testdmg/test"
)

func TestRequestAcknowledge(t *testing.T) {
	ints := &interrupts.Interrupts{}
	ints.Reset()

	ints.Request(interrupts.Timer)
	test.ExpectEquality(t, ints.Flag, 0x04)

	// requesting an already flagged source changes nothing
	ints.Request(interrupts.Timer)
	test.ExpectEquality(t, ints.Flag, 0x04)

	ints.Request(interrupts.VBlank)
	test.ExpectEquality(t, ints.Flag, 0x05)

	ints.Acknowledge(interrupts.Timer)
	test.ExpectEquality(t, ints.Flag, 0x01)

	// acknowledging a source that is not flagged changes nothing
	ints.Acknowledge(interrupts.Joypad)
	test.ExpectEquality(t, ints.Flag, 0x01)
}

func TestPending(t *testing.T) {
	ints := &interrupts.Interrupts{}
	ints.Reset()

	// flagged but not enabled is not pending
	ints.Request(interrupts.Serial)
	test.ExpectEquality(t, ints.Pending(), 0x00)

	ints.Enable = 1 << interrupts.Serial
	test.ExpectEquality(t, ints.Pending(), 0x08)

	// bits above the five interrupt sources are masked out
	ints.Enable = 0xff
	ints.Flag = 0xff
	test.ExpectEquality(t, ints.Pending(), interrupts.Mask)
}
