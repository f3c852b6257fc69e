package spec

import (
	"image/color"
)

// the DMG has no NTSC/PAL variants. the LCD panel runs at a single fixed
// geometry derived from the dot clock
//
// a scanline is 456 dots. the first 80 dots of a visible scanline are spent
// searching object attribute memory on the real hardware. pixel transfer
// cannot begin before that period has passed
const ClksScanline = 456
const ClksPreRender = 80

// the visible portion of the frame
const ClksVisible = 160
const VisibleScanlines = 144

// scanlines 144 to 153 are the vertical blanking period
const AbsoluteBottom = 154

// the number of dots in a complete frame. with the dot clock at 4.194304Mhz
// this gives the familiar refresh rate of 59.73fps
const ClksFrame = ClksScanline * AbsoluteBottom

// the background plane is larger than the visible screen. the tile map
// describes a 32x32 grid of tiles, 256 pixels on each side, through which the
// visible screen scrolls with wraparound
const TileMapWidth = 32
const TileMapCells = TileMapWidth * TileMapWidth

// the four shades of the DMG panel from lightest to darkest. a palette
// register maps 2-bit colour indices onto these
var Shades = [4]color.RGBA{
	{R: 0xe0, G: 0xf8, B: 0xd0, A: 0xff},
	{R: 0x88, G: 0xc0, B: 0x70, A: 0xff},
	{R: 0x34, G: 0x68, B: 0x56, A: 0xff},
	{R: 0x08, G: 0x18, B: 0x20, A: 0xff},
}
