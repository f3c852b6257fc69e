package hardware_test

import (
	"testing"

	"github.com/jetsetilly/testdmg/hardware"
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

func createTestConsole(t *testing.T) *hardware.Console {
	t.Helper()
	con := hardware.Create(testContext{}, ui.NewUI())
	con.Reset(false)
	con.SkipBoot()
	return con
}

func readValue(t *testing.T, con *hardware.Console, address uint16) uint8 {
	t.Helper()
	v, err := con.Mem.Read(address)
	test.DemandSuccess(t, err)
	return v
}

func TestStepDotsGranularity(t *testing.T) {
	// stepping one dot at a time must be indistinguishable from stepping in
	// batches of four
	conA := createTestConsole(t)
	conB := createTestConsole(t)

	test.DemandSuccess(t, conA.Mem.Write(0xff07, 0x05))
	test.DemandSuccess(t, conB.Mem.Write(0xff07, 0x05))

	for i := 0; i < 100; i++ {
		conA.StepDots(4)
		for j := 0; j < 4; j++ {
			conB.StepDots(1)
		}

		test.DemandEquality(t, readValue(t, conA, 0xff04), readValue(t, conB, 0xff04))
		test.DemandEquality(t, readValue(t, conA, 0xff05), readValue(t, conB, 0xff05))
	}
}

func TestDeferredDividerResetThroughBus(t *testing.T) {
	con := createTestConsole(t)

	con.StepDots(200)
	test.DemandSuccess(t, con.Mem.Write(0xff04, 0xff))

	// the dots after the write still count against the old divider state. the
	// reset, register and accumulator both, applies at the end of the call
	con.StepDots(56)
	test.ExpectEquality(t, readValue(t, con, 0xff04), 0x00)

	con.StepDots(255)
	test.ExpectEquality(t, readValue(t, con, 0xff04), 0x00)
	con.StepDots(1)
	test.ExpectEquality(t, readValue(t, con, 0xff04), 0x01)
}

func TestStepAdvancesByInstructionCost(t *testing.T) {
	con := createTestConsole(t)

	rom := make([]byte, 0x8000)
	rom[0x0100] = 0x00             // NOP
	rom[0x0101] = 0x3e             // LD A,u8
	rom[0x0102] = 0x42             //
	rom[0x0103] = 0xea             // LD (0xC000),A
	rom[0x0104] = 0x00             //
	rom[0x0105] = 0xc0             //
	test.DemandSuccess(t, con.Mem.Cartridge.Insert(rom))

	test.DemandSuccess(t, con.Step())
	test.ExpectEquality(t, con.DotCount, 4)

	test.DemandSuccess(t, con.Step())
	test.ExpectEquality(t, con.DotCount, 12)

	test.DemandSuccess(t, con.Step())
	test.ExpectEquality(t, con.DotCount, 28)
	test.ExpectEquality(t, readValue(t, con, 0xc000), 0x42)
	test.ExpectEquality(t, readValue(t, con, 0xe000), 0x42)
}
