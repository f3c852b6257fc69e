package emulation

import (
	"math/rand/v2"
)

type context struct {
	rand *rand.Rand

	// whether LY reads are fixed for the gameboy-doctor tool
	doctor bool
}

func (ctx *context) Reset() {
	ctx.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (ctx *context) Rand8Bit() uint8 {
	return uint8(ctx.rand.IntN(255))
}

func (ctx *context) FixLY() bool {
	return ctx.doctor
}
