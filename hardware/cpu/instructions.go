package cpu

import (
	"fmt"
)

// the SM83 opcode space is regular enough to decode algorithmically rather
// than through a 256 entry table. an opcode splits into the fields
//
//	x = opcode >> 6
//	y = (opcode >> 3) & 7    (p = y >> 1, q = y & 1)
//	z = opcode & 7
//
// x selects the broad group, y and z select registers and operations within
// it. the costs returned by each case are in dots

// getR reads one of the eight bit operands. operand six is the byte at the
// address in HL
func (c *CPU) getR(i int) (uint8, error) {
	switch i {
	case 0:
		return c.B, nil
	case 1:
		return c.C, nil
	case 2:
		return c.D, nil
	case 3:
		return c.E, nil
	case 4:
		return c.H, nil
	case 5:
		return c.L, nil
	case 6:
		return c.mem.Read(c.HL())
	}
	return c.A, nil
}

func (c *CPU) setR(i int, v uint8) error {
	switch i {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		return c.mem.Write(c.HL(), v)
	default:
		c.A = v
	}
	return nil
}

// readRP and writeRP handle the sixteen bit register pairs BC, DE, HL and SP
func (c *CPU) readRP(p int) uint16 {
	switch p {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	}
	return c.SP
}

func (c *CPU) writeRP(p int, v uint16) {
	switch p {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

// condition evaluates one of the four jump conditions NZ, Z, NC, C
func (c *CPU) condition(y int) bool {
	switch y {
	case 0:
		return !c.flag(FlagZ)
	case 1:
		return c.flag(FlagZ)
	case 2:
		return !c.flag(FlagC)
	}
	return c.flag(FlagC)
}

// alu applies one of the eight accumulator operations ADD, ADC, SUB, SBC,
// AND, XOR, OR, CP
func (c *CPU) alu(op int, v uint8) {
	switch op {
	case 0: // ADD
		r := uint16(c.A) + uint16(v)
		c.setFlags(uint8(r) == 0, false, (c.A&0x0f)+(v&0x0f) > 0x0f, r > 0xff)
		c.A = uint8(r)
	case 1: // ADC
		var carry uint16
		if c.flag(FlagC) {
			carry = 1
		}
		r := uint16(c.A) + uint16(v) + carry
		c.setFlags(uint8(r) == 0, false, uint16(c.A&0x0f)+uint16(v&0x0f)+carry > 0x0f, r > 0xff)
		c.A = uint8(r)
	case 2: // SUB
		r := c.A - v
		c.setFlags(r == 0, true, c.A&0x0f < v&0x0f, c.A < v)
		c.A = r
	case 3: // SBC
		var carry uint8
		if c.flag(FlagC) {
			carry = 1
		}
		r := c.A - v - carry
		c.setFlags(r == 0, true, c.A&0x0f < (v&0x0f)+carry, uint16(c.A) < uint16(v)+uint16(carry))
		c.A = r
	case 4: // AND
		c.A &= v
		c.setFlags(c.A == 0, false, true, false)
	case 5: // XOR
		c.A ^= v
		c.setFlags(c.A == 0, false, false, false)
	case 6: // OR
		c.A |= v
		c.setFlags(c.A == 0, false, false, false)
	case 7: // CP
		c.setFlags(c.A == v, true, c.A&0x0f < v&0x0f, c.A < v)
	}
}

func (c *CPU) inc8(v uint8) uint8 {
	r := v + 1
	c.setFlag(FlagZ, r == 0)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, v&0x0f == 0x0f)
	return r
}

func (c *CPU) dec8(v uint8) uint8 {
	r := v - 1
	c.setFlag(FlagZ, r == 0)
	c.setFlag(FlagN, true)
	c.setFlag(FlagH, v&0x0f == 0x00)
	return r
}

func (c *CPU) addHL(v uint16) {
	hl := c.HL()
	r := uint32(hl) + uint32(v)
	c.setFlag(FlagN, false)
	c.setFlag(FlagH, hl&0x0fff+v&0x0fff > 0x0fff)
	c.setFlag(FlagC, r > 0xffff)
	c.SetHL(uint16(r))
}

// addSP implements the shared arithmetic of ADD SP,i8 and LD HL,SP+i8. the
// flags come from the low byte of the addition
func (c *CPU) addSP(rel uint8) uint16 {
	c.setFlags(false, false,
		c.SP&0x0f+uint16(rel)&0x0f > 0x0f,
		c.SP&0xff+uint16(rel) > 0xff)
	return c.SP + uint16(int8(rel))
}

// rotate applies one of the eight CB rotation/shift operations RLC, RRC, RL,
// RR, SLA, SRA, SWAP, SRL. the accumulator forms of the first four clear the
// zero flag instead of computing it
func (c *CPU) rotate(op int, v uint8, accumulator bool) uint8 {
	var r uint8
	var carry bool

	switch op {
	case 0: // RLC
		carry = v&0x80 == 0x80
		r = v<<1 | v>>7
	case 1: // RRC
		carry = v&0x01 == 0x01
		r = v>>1 | v<<7
	case 2: // RL
		carry = v&0x80 == 0x80
		r = v << 1
		if c.flag(FlagC) {
			r |= 0x01
		}
	case 3: // RR
		carry = v&0x01 == 0x01
		r = v >> 1
		if c.flag(FlagC) {
			r |= 0x80
		}
	case 4: // SLA
		carry = v&0x80 == 0x80
		r = v << 1
	case 5: // SRA
		carry = v&0x01 == 0x01
		r = v>>1 | v&0x80
	case 6: // SWAP
		r = v<<4 | v>>4
	case 7: // SRL
		carry = v&0x01 == 0x01
		r = v >> 1
	}

	c.setFlags(!accumulator && r == 0, false, false, carry)
	return r
}

// daa adjusts the accumulator after BCD arithmetic
func (c *CPU) daa() {
	var adjust uint8
	carry := c.flag(FlagC)

	if c.flag(FlagN) {
		if c.flag(FlagH) {
			adjust |= 0x06
		}
		if carry {
			adjust |= 0x60
		}
		c.A -= adjust
	} else {
		if c.flag(FlagH) || c.A&0x0f > 0x09 {
			adjust |= 0x06
		}
		if carry || c.A > 0x99 {
			adjust |= 0x60
			carry = true
		}
		c.A += adjust
	}

	c.setFlag(FlagZ, c.A == 0)
	c.setFlag(FlagH, false)
	c.setFlag(FlagC, carry)
}

func (c *CPU) execute(opcode uint8) (int, error) {
	x := int(opcode >> 6)
	y := int(opcode>>3) & 0x07
	z := int(opcode) & 0x07
	p := y >> 1
	q := y & 0x01

	switch x {
	case 0:
		switch z {
		case 0:
			switch y {
			case 0: // NOP
				return 4, nil
			case 1: // LD (u16),SP
				addr, err := c.fetch16()
				if err != nil {
					return 0, err
				}
				return 20, c.write16(addr, c.SP)
			case 2: // STOP
				// low power mode is not modelled. the instruction is two
				// bytes long, skip the second
				if _, err := c.fetch8(); err != nil {
					return 0, err
				}
				return 4, nil
			case 3: // JR i8
				rel, err := c.fetch8()
				if err != nil {
					return 0, err
				}
				c.PC += uint16(int8(rel))
				return 12, nil
			default: // JR cc,i8
				rel, err := c.fetch8()
				if err != nil {
					return 0, err
				}
				if c.condition(y - 4) {
					c.PC += uint16(int8(rel))
					return 12, nil
				}
				return 8, nil
			}

		case 1:
			if q == 0 { // LD rp,u16
				v, err := c.fetch16()
				if err != nil {
					return 0, err
				}
				c.writeRP(p, v)
				return 12, nil
			}
			// ADD HL,rp
			c.addHL(c.readRP(p))
			return 8, nil

		case 2:
			// LD between the accumulator and memory addressed by a register
			// pair, with post increment/decrement for the HL forms
			var addr uint16
			switch p {
			case 0:
				addr = c.BC()
			case 1:
				addr = c.DE()
			case 2:
				addr = c.HL()
				c.SetHL(addr + 1)
			case 3:
				addr = c.HL()
				c.SetHL(addr - 1)
			}
			if q == 0 { // LD (rp),A
				return 8, c.mem.Write(addr, c.A)
			}
			// LD A,(rp)
			v, err := c.mem.Read(addr)
			if err != nil {
				return 0, err
			}
			c.A = v
			return 8, nil

		case 3:
			if q == 0 { // INC rp
				c.writeRP(p, c.readRP(p)+1)
			} else { // DEC rp
				c.writeRP(p, c.readRP(p)-1)
			}
			return 8, nil

		case 4: // INC r
			v, err := c.getR(y)
			if err != nil {
				return 0, err
			}
			if err := c.setR(y, c.inc8(v)); err != nil {
				return 0, err
			}
			if y == 6 {
				return 12, nil
			}
			return 4, nil

		case 5: // DEC r
			v, err := c.getR(y)
			if err != nil {
				return 0, err
			}
			if err := c.setR(y, c.dec8(v)); err != nil {
				return 0, err
			}
			if y == 6 {
				return 12, nil
			}
			return 4, nil

		case 6: // LD r,u8
			v, err := c.fetch8()
			if err != nil {
				return 0, err
			}
			if err := c.setR(y, v); err != nil {
				return 0, err
			}
			if y == 6 {
				return 12, nil
			}
			return 8, nil

		default:
			switch y {
			case 0: // RLCA
				c.A = c.rotate(0, c.A, true)
			case 1: // RRCA
				c.A = c.rotate(1, c.A, true)
			case 2: // RLA
				c.A = c.rotate(2, c.A, true)
			case 3: // RRA
				c.A = c.rotate(3, c.A, true)
			case 4: // DAA
				c.daa()
			case 5: // CPL
				c.A = ^c.A
				c.setFlag(FlagN, true)
				c.setFlag(FlagH, true)
			case 6: // SCF
				c.setFlag(FlagN, false)
				c.setFlag(FlagH, false)
				c.setFlag(FlagC, true)
			case 7: // CCF
				c.setFlag(FlagN, false)
				c.setFlag(FlagH, false)
				c.setFlag(FlagC, !c.flag(FlagC))
			}
			return 4, nil
		}

	case 1:
		if y == 6 && z == 6 { // HALT
			c.halted = true
			return 4, nil
		}
		// LD r,r
		v, err := c.getR(z)
		if err != nil {
			return 0, err
		}
		if err := c.setR(y, v); err != nil {
			return 0, err
		}
		if y == 6 || z == 6 {
			return 8, nil
		}
		return 4, nil

	case 2: // alu A,r
		v, err := c.getR(z)
		if err != nil {
			return 0, err
		}
		c.alu(y, v)
		if z == 6 {
			return 8, nil
		}
		return 4, nil
	}

	// x == 3
	switch z {
	case 0:
		switch y {
		case 0, 1, 2, 3: // RET cc
			if !c.condition(y) {
				return 8, nil
			}
			addr, err := c.pop16()
			if err != nil {
				return 0, err
			}
			c.PC = addr
			return 20, nil
		case 4: // LD (FF00+u8),A
			ofs, err := c.fetch8()
			if err != nil {
				return 0, err
			}
			return 12, c.mem.Write(0xff00+uint16(ofs), c.A)
		case 5: // ADD SP,i8
			rel, err := c.fetch8()
			if err != nil {
				return 0, err
			}
			c.SP = c.addSP(rel)
			return 16, nil
		case 6: // LD A,(FF00+u8)
			ofs, err := c.fetch8()
			if err != nil {
				return 0, err
			}
			v, err := c.mem.Read(0xff00 + uint16(ofs))
			if err != nil {
				return 0, err
			}
			c.A = v
			return 12, nil
		default: // LD HL,SP+i8
			rel, err := c.fetch8()
			if err != nil {
				return 0, err
			}
			c.SetHL(c.addSP(rel))
			return 12, nil
		}

	case 1:
		if q == 0 { // POP rp2
			v, err := c.pop16()
			if err != nil {
				return 0, err
			}
			if p == 3 {
				c.SetAF(v)
			} else {
				c.writeRP(p, v)
			}
			return 12, nil
		}
		switch p {
		case 0: // RET
			addr, err := c.pop16()
			if err != nil {
				return 0, err
			}
			c.PC = addr
			return 16, nil
		case 1: // RETI
			addr, err := c.pop16()
			if err != nil {
				return 0, err
			}
			c.PC = addr
			c.ime = true
			return 16, nil
		case 2: // JP HL
			c.PC = c.HL()
			return 4, nil
		default: // LD SP,HL
			c.SP = c.HL()
			return 8, nil
		}

	case 2:
		switch y {
		case 0, 1, 2, 3: // JP cc,u16
			addr, err := c.fetch16()
			if err != nil {
				return 0, err
			}
			if c.condition(y) {
				c.PC = addr
				return 16, nil
			}
			return 12, nil
		case 4: // LD (FF00+C),A
			return 8, c.mem.Write(0xff00+uint16(c.C), c.A)
		case 5: // LD (u16),A
			addr, err := c.fetch16()
			if err != nil {
				return 0, err
			}
			return 16, c.mem.Write(addr, c.A)
		case 6: // LD A,(FF00+C)
			v, err := c.mem.Read(0xff00 + uint16(c.C))
			if err != nil {
				return 0, err
			}
			c.A = v
			return 8, nil
		default: // LD A,(u16)
			addr, err := c.fetch16()
			if err != nil {
				return 0, err
			}
			v, err := c.mem.Read(addr)
			if err != nil {
				return 0, err
			}
			c.A = v
			return 16, nil
		}

	case 3:
		switch y {
		case 0: // JP u16
			addr, err := c.fetch16()
			if err != nil {
				return 0, err
			}
			c.PC = addr
			return 16, nil
		case 1: // CB prefix
			return c.executeCB()
		case 6: // DI
			c.ime = false
			c.imePending = false
			return 4, nil
		case 7: // EI
			c.imePending = true
			return 4, nil
		}
		return 0, fmt.Errorf("illegal opcode (%#02x)", opcode)

	case 4:
		if y < 4 { // CALL cc,u16
			addr, err := c.fetch16()
			if err != nil {
				return 0, err
			}
			if !c.condition(y) {
				return 12, nil
			}
			if err := c.push16(c.PC); err != nil {
				return 0, err
			}
			c.PC = addr
			return 24, nil
		}
		return 0, fmt.Errorf("illegal opcode (%#02x)", opcode)

	case 5:
		if q == 0 { // PUSH rp2
			v := c.readRP(p)
			if p == 3 {
				v = c.AF()
			}
			if err := c.push16(v); err != nil {
				return 0, err
			}
			return 16, nil
		}
		if p == 0 { // CALL u16
			addr, err := c.fetch16()
			if err != nil {
				return 0, err
			}
			if err := c.push16(c.PC); err != nil {
				return 0, err
			}
			c.PC = addr
			return 24, nil
		}
		return 0, fmt.Errorf("illegal opcode (%#02x)", opcode)

	case 6: // alu A,u8
		v, err := c.fetch8()
		if err != nil {
			return 0, err
		}
		c.alu(y, v)
		return 8, nil

	default: // RST
		if err := c.push16(c.PC); err != nil {
			return 0, err
		}
		c.PC = uint16(y * 8)
		return 16, nil
	}
}

// executeCB runs one instruction from the CB prefixed set of rotations,
// shifts and bit operations
func (c *CPU) executeCB() (int, error) {
	opcode, err := c.fetch8()
	if err != nil {
		return 0, err
	}

	x := int(opcode >> 6)
	y := int(opcode>>3) & 0x07
	z := int(opcode) & 0x07

	v, err := c.getR(z)
	if err != nil {
		return 0, err
	}

	switch x {
	case 0: // rotations and shifts
		if err := c.setR(z, c.rotate(y, v, false)); err != nil {
			return 0, err
		}
	case 1: // BIT y,r
		c.setFlag(FlagZ, v&(1<<y) == 0)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, true)
		if z == 6 {
			return 12, nil
		}
		return 8, nil
	case 2: // RES y,r
		if err := c.setR(z, v&^(1<<y)); err != nil {
			return 0, err
		}
	default: // SET y,r
		if err := c.setR(z, v|1<<y); err != nil {
			return 0, err
		}
	}

	if z == 6 {
		return 16, nil
	}
	return 8, nil
}
