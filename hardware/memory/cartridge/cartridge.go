package cartridge

import (
	"fmt"
)

// the size of each of the two ROM banks visible on the bus
const BankSize = 0x4000

// Cartridge is the ROM portion of the external cartridge. Only unbanked
// cartridges are supported, meaning the two visible banks are fixed and the
// largest possible program is 32k
type Cartridge struct {
	bank0 []uint8
	bank1 []uint8
}

// Insert loads cartridge data. Data longer than the two visible banks implies
// a mapper, which is not supported
func (cart *Cartridge) Insert(data []byte) error {
	if len(data) > BankSize*2 {
		return fmt.Errorf("cartridge: too large: %d bytes (banked cartridges are not supported)", len(data))
	}

	cart.bank0 = make([]uint8, BankSize)
	cart.bank1 = make([]uint8, BankSize)
	n := copy(cart.bank0, data)
	if n == BankSize {
		copy(cart.bank1, data[BankSize:])
	}

	return nil
}

func (cart *Cartridge) Eject() {
	cart.bank0 = nil
	cart.bank1 = nil
}

func (cart *Cartridge) Ejected() bool {
	return cart.bank0 == nil
}

func (cart *Cartridge) Label() string {
	return "Cartridge"
}

func (cart *Cartridge) Status() string {
	if cart.Ejected() {
		return fmt.Sprintf("%s: ejected", cart.Label())
	}
	return fmt.Sprintf("%s: %dk", cart.Label(), (len(cart.bank0)+len(cart.bank1))/1024)
}

// Read returns the byte at the address. The index is the full bus address
// because the cartridge is responsible for its own banking
func (cart *Cartridge) Read(idx uint16) (uint8, error) {
	// an open bus with no cartridge reads as all high bits
	if cart.Ejected() {
		return 0xff, nil
	}

	if idx < BankSize {
		return cart.bank0[idx], nil
	}
	if idx < BankSize*2 {
		return cart.bank1[idx-BankSize], nil
	}

	return 0, fmt.Errorf("cartridge: address out of range (%#04x)", idx)
}

// Write to the cartridge space is a bank control message to the mapper. With
// no mapper support the write is silently discarded
func (cart *Cartridge) Write(_ uint16, _ uint8) error {
	return nil
}
