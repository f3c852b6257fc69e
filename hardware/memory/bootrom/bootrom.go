package bootrom

import (
	"fmt"
)

// the boot ROM overlays the bottom of the cartridge space until the running
// program writes to the latch register
const Top = 0x00ff

// the only valid size for a DMG boot ROM
const romSize = 0x0100

// BootROM is the 256 byte ROM that is mapped over the bottom of the cartridge
// address space at power on. The running boot program removes the overlay by
// writing to the latch register at 0xff50. Once removed it can never be
// restored without a console reset
type BootROM struct {
	data [romSize]uint8

	// the value most recently written to the latch register. readable through
	// the register even after the overlay has been removed
	latch uint8

	disabled bool
}

func (b *BootROM) Label() string {
	return "BootROM"
}

func (b *BootROM) Status() string {
	if b.disabled {
		return fmt.Sprintf("%s: disabled", b.Label())
	}
	return fmt.Sprintf("%s: enabled", b.Label())
}

// Load replaces the boot ROM data. The data must be exactly 256 bytes
func (b *BootROM) Load(data []byte) error {
	if len(data) != romSize {
		return fmt.Errorf("bootrom: wrong size: %d bytes (must be %d)", len(data), romSize)
	}
	copy(b.data[:], data)
	return nil
}

// On returns true if the boot ROM is still overlaying the cartridge space
func (b *BootROM) On() bool {
	return !b.disabled
}

// Disable removes the overlay. Writing any value disables it, including zero,
// and the overlay stays removed no matter what is written afterwards
func (b *BootROM) Disable(data uint8) {
	b.latch = data
	b.disabled = true
}

// Latch returns the current value of the latch register
func (b *BootROM) Latch() uint8 {
	return b.latch
}

func (b *BootROM) Read(idx uint16) (uint8, error) {
	if idx > Top {
		return 0, fmt.Errorf("bootrom: address out of range (%#04x)", idx)
	}
	return b.data[idx], nil
}

func (b *BootROM) Write(_ uint16, _ uint8) error {
	return nil
}
