package ppu

import (
	"fmt"
	"image"

	"github.com/jetsetilly/testdmg/hardware/interrupts"
	"github.com/jetsetilly/testdmg/hardware/memory/ram"
	"github.com/jetsetilly/testdmg/hardware/spec"
	"github.com/jetsetilly/testdmg/ui"
)

// the PPU registers as they appear on the address bus
const (
	AddressLCDC = 0xff40
	AddressSCY  = 0xff42
	AddressSCX  = 0xff43
	AddressLY   = 0xff44
	AddressBGP  = 0xff47
)

// the LCD control bits the background pipeline cares about
const (
	lcdcBackgroundTileMap = 0x08
	lcdcTileDataArea      = 0x10
)

// AddressingMode says how a tile ID byte is converted to a tile data address.
// the unsigned mode treats the ID as an offset from the bottom of VRAM. the
// signed mode treats it as a signed offset around 0x1000
type AddressingMode int

const (
	Unsigned AddressingMode = iota
	Signed
)

func (m AddressingMode) String() string {
	if m == Unsigned {
		return "unsigned"
	}
	return "signed"
}

// Context allows the PPU to access emulation wide preferences
type Context interface {
	ram.Context

	// the LY register reads as a fixed value when running against the
	// gameboy-doctor conformance tool
	FixLY() bool
}

// Interrupts is the interface to the interrupt controller required by the PPU
type Interrupts interface {
	Request(source int)
}

type limiter interface {
	Wait()
}

// PPU generates the picture. It owns VRAM and, in this design, the two
// working RAM banks. It is ticked once per dot by the console
type PPU struct {
	ctx   Context
	ints  Interrupts
	u     *ui.UI
	limit limiter

	vram [0x2000]uint8

	// working RAM is not video memory but the PPU owns it so that all large
	// memory arrays live in one place. the bus dispatcher routes to it through
	// the PPU
	WRAM0 *ram.RAM
	WRAM1 *ram.RAM

	lcdControl uint8
	scy        uint8
	scx        uint8
	bgp        uint8

	// the addressing mode derived from the LCD control register. recomputed
	// on every LCD control write rather than on every fetch
	addressing AddressingMode

	// TileMapModes records, for each cell of each of the two tile maps, the
	// addressing mode in use when the fetcher last resolved that cell. the
	// two tile data addressing modes interpret the same tile ID byte
	// differently so consumers of a recorded fetch need to know which mode
	// produced it
	TileMapModes [2][spec.TileMapCells]AddressingMode

	// beam position. clk counts dots within the scanline
	clk int
	ly  uint8

	fetcher fetcher

	// x is the next visible pixel to plot. discard counts pixels dropped at
	// the start of the row to realise the fine part of the horizontal scroll
	x       int
	discard int

	frame  *image.RGBA
	Frames uint64
}

func Create(ctx Context, ints Interrupts, u *ui.UI, limit limiter) *PPU {
	p := &PPU{
		ctx:   ctx,
		ints:  ints,
		u:     u,
		limit: limit,
		WRAM0: ram.Create(ctx, "wram0", 0x1000),
		WRAM1: ram.Create(ctx, "wram1", 0x1000),
	}
	p.newFrame()
	return p
}

func (p *PPU) Reset(random bool) {
	p.lcdControl = 0
	p.scy = 0
	p.scx = 0
	p.bgp = 0
	p.addressing = Signed
	p.clk = 0
	p.ly = 0
	p.x = 0
	p.discard = 0
	p.WRAM0.Reset(random)
	p.WRAM1.Reset(random)
	if random {
		for i := range p.vram {
			p.vram[i] = p.ctx.Rand8Bit()
		}
	} else {
		clear(p.vram[:])
	}
	p.fetcher.prepareForNewFrame()
	p.newFrame()
}

func (p *PPU) Label() string {
	return "PPU"
}

func (p *PPU) Status() string {
	return fmt.Sprintf("%s: lcdc=%#02x scy=%#02x scx=%#02x ly=%#02x bgp=%#02x (%s addressing)",
		p.Label(), p.lcdControl, p.scy, p.scx, p.ly, p.bgp, p.addressing)
}

func (p *PPU) ReadVRAM(idx uint16) (uint8, error) {
	if int(idx) >= len(p.vram) {
		return 0, fmt.Errorf("vram address out of range (%#04x)", idx)
	}
	return p.vram[idx], nil
}

func (p *PPU) WriteVRAM(idx uint16, data uint8) error {
	if int(idx) >= len(p.vram) {
		return fmt.Errorf("vram address out of range (%#04x)", idx)
	}
	p.vram[idx] = data
	return nil
}

// ReadRegister returns the value of one of the five PPU registers
func (p *PPU) ReadRegister(address uint16) (uint8, error) {
	switch address {
	case AddressLCDC:
		return p.lcdControl, nil
	case AddressSCY:
		return p.scy, nil
	case AddressSCX:
		return p.scx, nil
	case AddressLY:
		if p.ctx.FixLY() {
			return 0x90, nil
		}
		return p.ly, nil
	case AddressBGP:
		return p.bgp, nil
	}
	return 0, fmt.Errorf("not a ppu register (%#04x)", address)
}

// WriteRegister sets one of the PPU registers. A write to the LCD control
// register recomputes the tile data addressing mode. The LY register is
// computed from the beam position and cannot be written
func (p *PPU) WriteRegister(address uint16, data uint8) error {
	switch address {
	case AddressLCDC:
		p.lcdControl = data
		if data&lcdcTileDataArea == lcdcTileDataArea {
			p.addressing = Unsigned
		} else {
			p.addressing = Signed
		}
	case AddressSCY:
		p.scy = data
	case AddressSCX:
		p.scx = data
	case AddressLY:
		return fmt.Errorf("ly register is read-only")
	case AddressBGP:
		p.bgp = data
	default:
		return fmt.Errorf("not a ppu register (%#04x)", address)
	}
	return nil
}

// Tick advances the PPU by one dot
func (p *PPU) Tick() {
	p.clk++
	if p.clk >= spec.ClksScanline {
		p.clk = 0
		p.ly++

		if int(p.ly) >= spec.AbsoluteBottom {
			p.ly = 0
			p.Frames++

			p.limit.Wait()
			p.PushRender()

			// it's no longer safe to use that frame in this context. create a
			// new image to use for the next frame
			p.newFrame()

			p.fetcher.prepareForNewFrame()
		} else {
			p.fetcher.prepareForNewRow()
		}

		if int(p.ly) == spec.VisibleScanlines {
			p.ints.Request(interrupts.VBlank)
		}

		p.x = 0
		p.discard = int(p.scx) % 8
	}

	// pixel transfer. the fetcher runs once the pre-render dots of the
	// scanline have passed and stops once the row is full
	if int(p.ly) < spec.VisibleScanlines && p.clk >= spec.ClksPreRender && p.x < spec.ClksVisible {
		p.fetcher.tick(p)
		if px, ok := p.fetcher.fifo.pop(); ok {
			if p.discard > 0 {
				p.discard--
			} else {
				p.frame.SetRGBA(p.x, int(p.ly), spec.Shades[(p.bgp>>(px*2))&0x03])
				p.x++
			}
		}
	}
}

func (p *PPU) newFrame() {
	p.frame = image.NewRGBA(image.Rect(0, 0, spec.ClksVisible, spec.VisibleScanlines))
}

// PushRender sends the current frame to the user interface. It never blocks,
// a frame the interface isn't ready for is dropped
func (p *PPU) PushRender() {
	select {
	case p.u.SetImage <- p.frame:
	default:
	}
}
