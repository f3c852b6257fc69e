package cpu

import (
	"fmt"
)

// the flag bits of the F register. the low nibble always reads zero
const (
	FlagZ = 0x80
	FlagN = 0x40
	FlagH = 0x20
	FlagC = 0x10
)

// the eight bit registers pair up for sixteen bit addressing and arithmetic

func (c *CPU) AF() uint16 {
	return uint16(c.A)<<8 | uint16(c.F)
}

func (c *CPU) SetAF(v uint16) {
	c.A = uint8(v >> 8)
	c.F = uint8(v) & 0xf0
}

func (c *CPU) BC() uint16 {
	return uint16(c.B)<<8 | uint16(c.C)
}

func (c *CPU) SetBC(v uint16) {
	c.B = uint8(v >> 8)
	c.C = uint8(v)
}

func (c *CPU) DE() uint16 {
	return uint16(c.D)<<8 | uint16(c.E)
}

func (c *CPU) SetDE(v uint16) {
	c.D = uint8(v >> 8)
	c.E = uint8(v)
}

func (c *CPU) HL() uint16 {
	return uint16(c.H)<<8 | uint16(c.L)
}

func (c *CPU) SetHL(v uint16) {
	c.H = uint8(v >> 8)
	c.L = uint8(v)
}

func (c *CPU) flag(f uint8) bool {
	return c.F&f == f
}

func (c *CPU) setFlag(f uint8, set bool) {
	if set {
		c.F |= f
	} else {
		c.F &^= f
	}
}

// setFlags replaces all four flags in one go
func (c *CPU) setFlags(z bool, n bool, h bool, carry bool) {
	c.F = 0
	c.setFlag(FlagZ, z)
	c.setFlag(FlagN, n)
	c.setFlag(FlagH, h)
	c.setFlag(FlagC, carry)
}

func (c *CPU) String() string {
	return fmt.Sprintf("A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X",
		c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP, c.PC)
}
