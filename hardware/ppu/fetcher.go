package ppu

import (
	"github.com/jetsetilly/testdmg/hardware/spec"
)

// the phases of the background/window fetch pipeline, in cyclic order. each
// phase lasts exactly one dot except pushRow which repeats until the FIFO has
// been drained
type fetcherPhase int

const (
	phaseGetTileDelay fetcherPhase = iota
	phaseGetTile
	phaseGetTileDataLowDelay
	phaseGetTileDataLow
	phaseGetTileDataHighDelay
	phaseGetTileDataHigh
	phasePushRow
)

// fetcher is the background/window fetch pipeline. it reads the tile map and
// tile data from VRAM and produces pixels a tile row at a time into the FIFO
type fetcher struct {
	phase fetcherPhase
	fifo  fifo

	// the tile ID read during the getTile phase and the row of the tile the
	// current scanline passes through. both are used by the later data phases
	tileID    uint8
	rowInTile uint8

	// the tile map column cursor. advances by one each time a row is pushed.
	// the horizontal scroll register offsets it during the getTile phase
	column uint8

	// the decoded pixels for the current tile row. the data phases OR the two
	// bit planes into this buffer so it must be zeroed before each new tile
	rowData [8]uint8
}

// prepareForNewFrame returns the pipeline to its initial state. identical to
// prepareForNewRow for now but frame and row resets are triggered by
// different events and may diverge once the window layer affects them
func (f *fetcher) prepareForNewFrame() {
	f.phase = phaseGetTileDelay
	f.fifo.clear()
	f.rowInTile = 0
	f.column = 0
	f.rowData = [8]uint8{}
}

func (f *fetcher) prepareForNewRow() {
	f.phase = phaseGetTileDelay
	f.fifo.clear()
	f.rowInTile = 0
	f.column = 0
	f.rowData = [8]uint8{}
}

// tick advances the pipeline by one dot
func (f *fetcher) tick(p *PPU) {
	switch f.phase {
	case phaseGetTileDelay:
		// the bubble before the tile map lookup. models the access latency of
		// the real hardware
		f.phase = phaseGetTile

	case phaseGetTile:
		// the scroll registers offset the position within the 256x256
		// background plane. eight bit arithmetic so scrolling wraps
		pixelRow := p.ly + p.scy
		pixelCol := f.column*8 + p.scx

		tileRow := pixelRow / 8
		tileCol := pixelCol / 8
		cell := int(tileRow)*spec.TileMapWidth + int(tileCol)

		// which of the two tile maps the background uses is selected by the
		// LCD control register. record the addressing mode in use for the
		// cell so that later consumers can tell how the tile ID it holds was
		// interpreted
		var base uint16
		if p.lcdControl&lcdcBackgroundTileMap == lcdcBackgroundTileMap {
			base = 0x1c00
			p.TileMapModes[1][cell] = p.addressing
		} else {
			base = 0x1800
			p.TileMapModes[0][cell] = p.addressing
		}

		f.tileID = p.vram[base+(uint16(tileRow)<<5)+uint16(tileCol)]
		f.rowInTile = pixelRow % 8
		f.phase = phaseGetTileDataLowDelay

	case phaseGetTileDataLowDelay:
		f.phase = phaseGetTileDataLow

	case phaseGetTileDataLow:
		// the addressing mode here is whatever is configured *now*, which is
		// not necessarily the mode recorded for the cell during getTile. the
		// real hardware diverges in the same way when the LCD control
		// register changes mid fetch
		b := p.vram[tileDataAddress(p.addressing, f.tileID)+uint16(f.rowInTile)*2]
		for i := range 8 {
			f.rowData[i] |= (b >> (7 - i)) & 0x01
		}
		f.phase = phaseGetTileDataHighDelay

	case phaseGetTileDataHighDelay:
		f.phase = phaseGetTileDataHigh

	case phaseGetTileDataHigh:
		b := p.vram[tileDataAddress(p.addressing, f.tileID)+uint16(f.rowInTile)*2+1]
		for i := range 8 {
			f.rowData[i] |= ((b >> (7 - i)) & 0x01) << 1
		}
		f.phase = phasePushRow

	case phasePushRow:
		// background pixels are only ever pushed into an empty FIFO. if the
		// consumer hasn't drained it yet the phase repeats next dot
		if f.fifo.empty() {
			f.fifo.pushRow(f.rowData)
			f.column++
			f.rowData = [8]uint8{}
			f.phase = phaseGetTileDelay
		}
	}
}

// tileDataAddress converts a tile ID to the VRAM address of the tile's first
// byte according to the addressing mode
func tileDataAddress(mode AddressingMode, id uint8) uint16 {
	if mode == Unsigned {
		return uint16(id) * 16
	}
	return uint16(0x1000 + int(int8(id))*16)
}
