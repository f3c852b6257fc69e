package cpu

import (
	"fmt"
)

// Memory is the interface to the address bus required by the CPU. every
// access, including opcode fetches, goes through it
type Memory interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error
}

// Interrupts is the interface to the interrupt controller required by the CPU
type Interrupts interface {
	Pending() uint8
	Acknowledge(source int)
}

// the number of dots consumed by an interrupt dispatch
const dispatchCost = 20

// CPU is the SM83 core. It is not ticked per dot. instead it executes a whole
// instruction at a time and reports the instruction's cost in dots so that
// the console can advance the rest of the hardware by that amount
type CPU struct {
	mem  Memory
	ints Interrupts

	A uint8
	F uint8
	B uint8
	C uint8
	D uint8
	E uint8
	H uint8
	L uint8

	SP uint16
	PC uint16

	// the master interrupt enable and the one instruction delay applied by
	// the EI instruction
	ime        bool
	imePending bool

	// set by the HALT instruction and cleared by any pending interrupt
	halted bool

	TotalCycles uint64
}

func Create(mem Memory, ints Interrupts) *CPU {
	return &CPU{
		mem:  mem,
		ints: ints,
	}
}

func (c *CPU) Reset() {
	c.A = 0
	c.F = 0
	c.B = 0
	c.C = 0
	c.D = 0
	c.E = 0
	c.H = 0
	c.L = 0
	c.SP = 0
	c.PC = 0
	c.ime = false
	c.imePending = false
	c.halted = false
	c.TotalCycles = 0
}

// SkipBoot places the registers in the state the boot program leaves them in.
// used when no boot ROM image is available
func (c *CPU) SkipBoot() {
	c.A = 0x01
	c.F = 0xb0
	c.B = 0x00
	c.C = 0x13
	c.D = 0x00
	c.E = 0xd8
	c.H = 0x01
	c.L = 0x4d
	c.SP = 0xfffe
	c.PC = 0x0100
}

func (c *CPU) Label() string {
	return "CPU"
}

func (c *CPU) Status() string {
	return fmt.Sprintf("%s: %s", c.Label(), c.String())
}

func (c *CPU) Halted() bool {
	return c.halted
}

// ExecuteInstruction runs one instruction, or dispatches one interrupt, and
// returns the number of dots it consumed
func (c *CPU) ExecuteInstruction() (int, error) {
	if c.ime {
		if pending := c.ints.Pending(); pending != 0 {
			return c.dispatch(pending)
		}
	}

	// a halted CPU burns dots until an interrupt is flagged and enabled. the
	// wake up happens whether or not the master enable is set, only the
	// dispatch requires it
	if c.halted {
		if c.ints.Pending() == 0 {
			c.TotalCycles += 4
			return 4, nil
		}
		c.halted = false
	}

	// EI takes effect after the instruction that follows it
	delayedEnable := c.imePending

	opcode, err := c.fetch8()
	if err != nil {
		return 0, err
	}

	cost, err := c.execute(opcode)
	if err != nil {
		return 0, err
	}

	if delayedEnable && c.imePending {
		c.ime = true
		c.imePending = false
	}

	c.TotalCycles += uint64(cost)
	return cost, nil
}

// dispatch services the highest priority pending interrupt. priority is by
// bit position, lowest first
func (c *CPU) dispatch(pending uint8) (int, error) {
	c.halted = false
	c.ime = false
	c.imePending = false

	var source int
	for pending&0x01 == 0 {
		pending >>= 1
		source++
	}
	c.ints.Acknowledge(source)

	if err := c.push16(c.PC); err != nil {
		return 0, err
	}
	c.PC = uint16(0x0040 + source*8)

	c.TotalCycles += dispatchCost
	return dispatchCost, nil
}

func (c *CPU) fetch8() (uint8, error) {
	v, err := c.mem.Read(c.PC)
	if err != nil {
		return 0, err
	}
	c.PC++
	return v, nil
}

func (c *CPU) fetch16() (uint16, error) {
	lo, err := c.fetch8()
	if err != nil {
		return 0, err
	}
	hi, err := c.fetch8()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (c *CPU) read16(address uint16) (uint16, error) {
	lo, err := c.mem.Read(address)
	if err != nil {
		return 0, err
	}
	hi, err := c.mem.Read(address + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (c *CPU) write16(address uint16, v uint16) error {
	if err := c.mem.Write(address, uint8(v)); err != nil {
		return err
	}
	return c.mem.Write(address+1, uint8(v>>8))
}

func (c *CPU) push16(v uint16) error {
	c.SP -= 2
	return c.write16(c.SP, v)
}

func (c *CPU) pop16() (uint16, error) {
	v, err := c.read16(c.SP)
	if err != nil {
		return 0, err
	}
	c.SP += 2
	return v, nil
}
