package hardware

import (
	"github.com/jetsetilly/testdmg/hardware/cpu"
	"github.com/jetsetilly/testdmg/hardware/interrupts"
	"github.com/jetsetilly/testdmg/hardware/joypad"
	"github.com/jetsetilly/testdmg/hardware/memory"
	"github.com/jetsetilly/testdmg/hardware/ppu"
	"github.com/jetsetilly/testdmg/hardware/timer"
	"github.com/jetsetilly/testdmg/ui"
)

// Context allows the console to access emulation wide preferences
type Context interface {
	memory.Context
	ppu.Context
}

// Console is the DMG console. all chips are owned here and only ever reached
// through the console or through the address bus
type Console struct {
	ctx Context
	u   *ui.UI

	MC         *cpu.CPU
	Mem        *memory.Memory
	Timer      *timer.Timer
	Interrupts *interrupts.Interrupts
	PPU        *ppu.PPU
	Joypad     *joypad.Joypad

	limit *limiter

	// total number of dots since the last reset
	DotCount uint64
}

func Create(ctx Context, u *ui.UI) *Console {
	con := &Console{
		ctx:   ctx,
		u:     u,
		limit: newLimiter(),
	}

	con.Interrupts = &interrupts.Interrupts{}

	var addChips memory.AddChips
	con.Mem, addChips = memory.Create(ctx)

	con.Timer = timer.Create(con.Interrupts)
	con.PPU = ppu.Create(ctx, con.Interrupts, u, con.limit)
	con.Joypad = joypad.Create(con.Interrupts)

	addChips(con.PPU, con.PPU.WRAM0, con.PPU.WRAM1, con.Timer, con.Interrupts, con.Joypad)

	con.MC = cpu.Create(con.Mem, con.Interrupts)

	return con
}

func (con *Console) Reset(random bool) {
	con.MC.Reset()
	con.Mem.Reset(random)
	con.Timer.Reset()
	con.Interrupts.Reset()
	con.PPU.Reset(random)
	con.Joypad.Reset()
	con.DotCount = 0
}

// SkipBoot places the console in the state the boot program leaves it in.
// used when no boot ROM image has been loaded
func (con *Console) SkipBoot() {
	con.MC.SkipBoot()
	con.Mem.BootROM.Disable(0x01)
}

// StepDots advances the console by n dots, one at a time and in order. all
// effects of a dot, interrupt requests included, are visible before the next
// dot begins. any divider reset requested by a write during the current
// instruction is applied before returning
func (con *Console) StepDots(n int) {
	for range n {
		con.Timer.Tick()
		con.PPU.Tick()
		con.DotCount++
	}
	con.Timer.EndStep()
}

// Step executes one CPU instruction and advances the rest of the hardware by
// the instruction's cost in dots
func (con *Console) Step() error {
	cost, err := con.MC.ExecuteInstruction()
	if err != nil {
		return err
	}
	con.StepDots(cost)
	return nil
}

// Run the console until the hook function returns an error. the hook is
// called after every instruction
func (con *Console) Run(hook func() error) error {
	for {
		con.handleInput()

		err := con.Step()
		if err != nil {
			return err
		}

		err = hook()
		if err != nil {
			return err
		}
	}
}

// Nudge the frame limiter. the emulation will run ahead by one frame
func (con *Console) Nudge() {
	con.limit.Nudge()
}
