package cpu_test

import (
	"testing"

	"github.com/jetsetilly/testdmg/hardware/cpu"
	"github.com/jetsetilly/testdmg/hardware/interrupts"
	"github.com/jetsetilly/testdmg/test"
)

// a flat 64k of RAM with no routing. enough to run programs against
type testMemory struct {
	data [0x10000]uint8
}

func (m *testMemory) Read(address uint16) (uint8, error) {
	return m.data[address], nil
}

func (m *testMemory) Write(address uint16, data uint8) error {
	m.data[address] = data
	return nil
}

func createTestCPU(program ...uint8) (*cpu.CPU, *testMemory, *interrupts.Interrupts) {
	mem := &testMemory{}
	copy(mem.data[0x0100:], program)
	ints := &interrupts.Interrupts{}
	mc := cpu.Create(mem, ints)
	mc.Reset()
	mc.PC = 0x0100
	mc.SP = 0xfffe
	return mc, mem, ints
}

func step(t *testing.T, mc *cpu.CPU) int {
	t.Helper()
	cost, err := mc.ExecuteInstruction()
	test.DemandSuccess(t, err)
	return cost
}

func TestLoadAndArithmetic(t *testing.T) {
	mc, _, _ := createTestCPU(
		0x3e, 0x3c, // LD A,0x3C
		0xc6, 0x0f, // ADD A,0x0F
		0x06, 0x0f, // LD B,0x0F
		0x90, // SUB B
	)

	test.ExpectEquality(t, step(t, mc), 8)
	test.ExpectEquality(t, mc.A, 0x3c)

	test.ExpectEquality(t, step(t, mc), 8)
	test.ExpectEquality(t, mc.A, 0x4b)
	test.ExpectEquality(t, mc.F, uint8(cpu.FlagH))

	step(t, mc)
	test.ExpectEquality(t, step(t, mc), 4)
	test.ExpectEquality(t, mc.A, 0x3c)
	test.ExpectEquality(t, mc.F&cpu.FlagN, uint8(cpu.FlagN))
}

func TestSixteenBitLoads(t *testing.T) {
	mc, mem, _ := createTestCPU(
		0x01, 0x34, 0x12, // LD BC,0x1234
		0x31, 0xf0, 0xff, // LD SP,0xFFF0
		0x08, 0x00, 0xc0, // LD (0xC000),SP
		0xc5, // PUSH BC
	)

	test.ExpectEquality(t, step(t, mc), 12)
	test.ExpectEquality(t, mc.BC(), 0x1234)

	step(t, mc)
	test.ExpectEquality(t, step(t, mc), 20)
	test.ExpectEquality(t, mem.data[0xc000], 0xf0)
	test.ExpectEquality(t, mem.data[0xc001], 0xff)

	test.ExpectEquality(t, step(t, mc), 16)
	test.ExpectEquality(t, mc.SP, 0xffee)
	test.ExpectEquality(t, mem.data[0xffee], 0x34)
	test.ExpectEquality(t, mem.data[0xffef], 0x12)
}

func TestJumps(t *testing.T) {
	mc, _, _ := createTestCPU(
		0xc3, 0x00, 0x02, // JP 0x0200
	)

	test.ExpectEquality(t, step(t, mc), 16)
	test.ExpectEquality(t, mc.PC, 0x0200)

	// conditional jump not taken is cheaper
	mc2, _, _ := createTestCPU(
		0xca, 0x00, 0x02, // JP Z,0x0200
		0x20, 0x10, // JR NZ,+0x10
	)
	test.ExpectEquality(t, step(t, mc2), 12)
	test.ExpectEquality(t, mc2.PC, 0x0103)
	test.ExpectEquality(t, step(t, mc2), 12)
	test.ExpectEquality(t, mc2.PC, 0x0115)
}

func TestCallReturn(t *testing.T) {
	mc, _, _ := createTestCPU(
		0xcd, 0x00, 0x02, // CALL 0x0200
	)

	test.ExpectEquality(t, step(t, mc), 24)
	test.ExpectEquality(t, mc.PC, 0x0200)
	test.ExpectEquality(t, mc.SP, 0xfffc)

	// RET at the call target brings us home
	mc2, mem, _ := createTestCPU(0xcd, 0x00, 0x02)
	mem.data[0x0200] = 0xc9 // RET
	step(t, mc2)
	test.ExpectEquality(t, step(t, mc2), 16)
	test.ExpectEquality(t, mc2.PC, 0x0103)
	test.ExpectEquality(t, mc2.SP, 0xfffe)
}

func TestCBOperations(t *testing.T) {
	mc, _, _ := createTestCPU(
		0xcb, 0x7c, // BIT 7,H
		0xcb, 0xfc, // SET 7,H
		0xcb, 0x7c, // BIT 7,H
		0xcb, 0x37, // SWAP A
	)
	mc.A = 0xf1

	test.ExpectEquality(t, step(t, mc), 8)
	test.ExpectEquality(t, mc.F&cpu.FlagZ, uint8(cpu.FlagZ))

	step(t, mc)
	test.ExpectEquality(t, mc.H, 0x80)

	step(t, mc)
	test.ExpectEquality(t, mc.F&cpu.FlagZ, 0x00)

	step(t, mc)
	test.ExpectEquality(t, mc.A, 0x1f)
}

func TestDAA(t *testing.T) {
	mc, _, _ := createTestCPU(
		0x3e, 0x15, // LD A,0x15
		0xc6, 0x27, // ADD A,0x27
		0x27, // DAA
	)

	step(t, mc)
	step(t, mc)
	test.ExpectEquality(t, mc.A, 0x3c)
	step(t, mc)
	test.ExpectEquality(t, mc.A, 0x42)
}

func TestEIDelay(t *testing.T) {
	mc, _, ints := createTestCPU(
		0xfb, // EI
		0x00, // NOP
		0x00, // NOP
	)
	ints.Enable = 1 << interrupts.Timer
	ints.Request(interrupts.Timer)

	// the interrupt must not be dispatched during the EI, nor during the
	// instruction that follows it
	step(t, mc)
	test.ExpectEquality(t, mc.PC, 0x0101)
	step(t, mc)
	test.ExpectEquality(t, mc.PC, 0x0102)

	// dispatch. 20 dots, the flag bit is cleared and the return address is
	// stacked
	test.ExpectEquality(t, step(t, mc), 20)
	test.ExpectEquality(t, mc.PC, 0x0050)
	test.ExpectEquality(t, ints.Flag, 0x00)
	test.ExpectEquality(t, mc.SP, 0xfffc)
}

func TestHaltWake(t *testing.T) {
	mc, _, ints := createTestCPU(
		0x76, // HALT
		0x3c, // INC A
	)

	step(t, mc)
	test.ExpectEquality(t, mc.Halted(), true)

	// nothing pending. the CPU burns dots without advancing
	test.ExpectEquality(t, step(t, mc), 4)
	test.ExpectEquality(t, mc.PC, 0x0101)
	test.ExpectEquality(t, mc.Halted(), true)

	// a flagged and enabled interrupt wakes the CPU even with the master
	// enable off. execution continues rather than dispatching
	ints.Enable = 1 << interrupts.VBlank
	ints.Request(interrupts.VBlank)
	step(t, mc)
	test.ExpectEquality(t, mc.Halted(), false)
	test.ExpectEquality(t, mc.A, 0x01)
	test.ExpectEquality(t, ints.Flag, uint8(1)<<interrupts.VBlank)
}

func TestIllegalOpcode(t *testing.T) {
	mc, _, _ := createTestCPU(0xd3)
	_, err := mc.ExecuteInstruction()
	test.ExpectFailure(t, err)
}

func TestHLPointerForms(t *testing.T) {
	mc, mem, _ := createTestCPU(
		0x21, 0x00, 0xc0, // LD HL,0xC000
		0x36, 0x5a, // LD (HL),0x5A
		0x2a, // LD A,(HL+)
	)

	step(t, mc)
	test.ExpectEquality(t, step(t, mc), 12)
	test.ExpectEquality(t, mem.data[0xc000], 0x5a)

	test.ExpectEquality(t, step(t, mc), 8)
	test.ExpectEquality(t, mc.A, 0x5a)
	test.ExpectEquality(t, mc.HL(), 0xc001)
}
