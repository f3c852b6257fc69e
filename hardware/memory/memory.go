package memory

import (
	"fmt"

	"github.com/jetsetilly/testdmg/hardware/memory/bootrom"
	"github.com/jetsetilly/testdmg/hardware/memory/cartridge"
	"github.com/jetsetilly/testdmg/hardware/memory/ram"
	"github.com/jetsetilly/testdmg/logger"
)

// Area is an addressable region of memory. read and write both take an index
// value. this is an address in the area but with the area origin removed. in
// other words, the area doesn't need to know about its location in memory,
// only the relative placement of addresses within the area
type Area interface {
	Read(idx uint16) (uint8, error)
	Write(idx uint16, data uint8) error
	Label() string
}

// Video is the surface of the PPU that the address bus routes to
type Video interface {
	ReadVRAM(idx uint16) (uint8, error)
	WriteVRAM(idx uint16, data uint8) error
	ReadRegister(address uint16) (uint8, error)
	WriteRegister(address uint16, data uint8) error
}

// Timer is the surface of the timer that the address bus routes to. the timer
// takes full bus addresses because its four registers are contiguous and it
// validates them itself
type Timer interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// Joypad is the single register joypad surface
type Joypad interface {
	Read() uint8
	Write(data uint8)
}

// Interrupts gives the bus access to the enable and flag registers
type Interrupts interface {
	ReadEnable() uint8
	WriteEnable(data uint8)
	ReadFlag() uint8
	WriteFlag(data uint8)
}

type Context interface {
	ram.Context
}

// Memory is the bus dispatcher. every byte access in the console, including
// the CPU's own opcode fetches, goes through Read() and Write() which route
// the address to the owning chip
type Memory struct {
	BootROM     *bootrom.BootROM
	Cartridge   *cartridge.Cartridge
	ExternalRAM *ram.RAM
	HRAM        *ram.RAM

	video Video
	wram0 Area
	wram1 Area
	tmr   Timer
	ints  Interrupts
	pad   Joypad

	// serial registers. stored and returned verbatim, no transfer is
	// modelled. a transfer start is logged so that test ROM output is visible
	sb uint8
	sc uint8

	// sound registers. stored and returned verbatim, audio is not modelled
	nr11 uint8
	nr12 uint8
	nr13 uint8
	nr14 uint8
	nr50 uint8
	nr51 uint8
	nr52 uint8
}

// AddChips is returned by the Create() function and should be called to
// finalise the memory creation process
type AddChips func(video Video, wram0 Area, wram1 Area, tmr Timer, ints Interrupts, pad Joypad)

func Create(ctx Context) (*Memory, AddChips) {
	mem := &Memory{
		BootROM:     &bootrom.BootROM{},
		Cartridge:   &cartridge.Cartridge{},
		ExternalRAM: ram.Create(ctx, "externalRAM", 0x2000),
		HRAM:        ram.Create(ctx, "hram", 0x007f),
	}
	return mem, func(video Video, wram0 Area, wram1 Area, tmr Timer, ints Interrupts, pad Joypad) {
		mem.video = video
		mem.wram0 = wram0
		mem.wram1 = wram1
		mem.tmr = tmr
		mem.ints = ints
		mem.pad = pad
	}
}

func (mem *Memory) Reset(random bool) {
	mem.ExternalRAM.Reset(random)
	mem.HRAM.Reset(random)
	mem.sb = 0
	mem.sc = 0
	mem.nr11 = 0
	mem.nr12 = 0
	mem.nr13 = 0
	mem.nr14 = 0
	mem.nr50 = 0
	mem.nr51 = 0
	mem.nr52 = 0
}

func (mem *Memory) Read(address uint16) (uint8, error) {
	// the boot ROM overlays the bottom of the cartridge space until the boot
	// program writes it away
	if mem.BootROM.On() && address <= bootrom.Top {
		return mem.BootROM.Read(address)
	}

	switch {
	case address <= 0x7fff:
		// cartridge ROM, both banks. the cartridge banks internally
		return mem.Cartridge.Read(address)
	case address <= 0x9fff:
		return mem.video.ReadVRAM(address - 0x8000)
	case address <= 0xbfff:
		return mem.ExternalRAM.Read(address - 0xa000)
	case address <= 0xcfff:
		return mem.wram0.Read(address - 0xc000)
	case address <= 0xdfff:
		return mem.wram1.Read(address - 0xd000)
	case address <= 0xfdff:
		// echo of working RAM
		return mem.Read(address - 0x2000)
	}

	return mem.ioRead(address)
}

func (mem *Memory) Write(address uint16, data uint8) error {
	if mem.BootROM.On() && address <= bootrom.Top {
		return fmt.Errorf("write to boot rom (%#04x)", address)
	}

	switch {
	case address <= 0x7fff:
		// a write to the ROM area is a message to the cartridge mapper
		return mem.Cartridge.Write(address, data)
	case address <= 0x9fff:
		return mem.video.WriteVRAM(address-0x8000, data)
	case address <= 0xbfff:
		return mem.ExternalRAM.Write(address-0xa000, data)
	case address <= 0xcfff:
		return mem.wram0.Write(address-0xc000, data)
	case address <= 0xdfff:
		return mem.wram1.Write(address-0xd000, data)
	case address <= 0xfdff:
		// echo of working RAM. writes resolve the same way as reads
		return mem.Write(address-0x2000, data)
	}

	return mem.ioWrite(address, data)
}

func (mem *Memory) ioRead(address uint16) (uint8, error) {
	switch address {
	case 0xff00:
		return mem.pad.Read(), nil
	case 0xff01:
		return mem.sb, nil
	case 0xff02:
		return mem.sc, nil
	case 0xff04, 0xff05, 0xff06, 0xff07:
		return mem.tmr.Read(address), nil
	case 0xff0f:
		return mem.ints.ReadFlag(), nil
	case 0xff11:
		return mem.nr11, nil
	case 0xff12:
		return mem.nr12, nil
	case 0xff13:
		return mem.nr13, nil
	case 0xff14:
		return mem.nr14, nil
	case 0xff24:
		return mem.nr50, nil
	case 0xff25:
		return mem.nr51, nil
	case 0xff26:
		return mem.nr52, nil
	case 0xff40, 0xff42, 0xff43, 0xff44, 0xff47:
		return mem.video.ReadRegister(address)
	case 0xff50:
		return mem.BootROM.Latch(), nil
	case 0xffff:
		return mem.ints.ReadEnable(), nil
	}

	if address >= 0xff80 && address <= 0xfffe {
		return mem.HRAM.Read(address - 0xff80)
	}

	return 0, fmt.Errorf("read unmapped address (%#04x)", address)
}

func (mem *Memory) ioWrite(address uint16, data uint8) error {
	switch address {
	case 0xff00:
		mem.pad.Write(data)
		return nil
	case 0xff01:
		mem.sb = data
		return nil
	case 0xff02:
		mem.sc = data
		if data&0x80 == 0x80 {
			// a transfer start with nothing on the other end of the link
			// cable. log the outgoing byte, it's how test ROMs report
			logger.Logf(logger.Allow, "serial", "%c", mem.sb)
		}
		return nil
	case 0xff04, 0xff05, 0xff06, 0xff07:
		mem.tmr.Write(address, data)
		return nil
	case 0xff0f:
		mem.ints.WriteFlag(data)
		return nil
	case 0xff11:
		mem.nr11 = data
		return nil
	case 0xff12:
		mem.nr12 = data
		return nil
	case 0xff13:
		mem.nr13 = data
		return nil
	case 0xff14:
		mem.nr14 = data
		return nil
	case 0xff24:
		mem.nr50 = data
		return nil
	case 0xff25:
		mem.nr51 = data
		return nil
	case 0xff26:
		mem.nr52 = data
		return nil
	case 0xff40, 0xff42, 0xff43, 0xff44, 0xff47:
		return mem.video.WriteRegister(address, data)
	case 0xff50:
		// any write disables the boot ROM overlay for good
		mem.BootROM.Disable(data)
		return nil
	case 0xffff:
		mem.ints.WriteEnable(data)
		return nil
	}

	if address >= 0xff80 && address <= 0xfffe {
		return mem.HRAM.Write(address-0xff80, data)
	}

	return fmt.Errorf("write unmapped address (%#04x)", address)
}
