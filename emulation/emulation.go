package emulation

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/pprof"
	"syscall"

	"github.com/jetsetilly/testdmg/hardware"
	"github.com/jetsetilly/testdmg/logger"
	"github.com/jetsetilly/testdmg/ui"
)

const programName = "testdmg"

// sentinel errors used to end the run loop
var quitErr = errors.New("quit")

type emulation struct {
	ctx context

	guiQuit chan bool
	sig     chan os.Signal

	// the state channel is passed to the emulation during creation via the UI
	// type
	state chan ui.State

	console *hardware.Console

	// the cartridge and boot ROM images to load on console reset
	cartfile string
	bootfile string

	// printing styles
	styles styles
}

func (m *emulation) reset(random bool) {
	m.ctx.Reset()
	m.console.Reset(random)

	if m.bootfile != "" {
		d, err := os.ReadFile(m.bootfile)
		if err == nil {
			err = m.console.Mem.BootROM.Load(d)
		}
		if err != nil {
			fmt.Println(m.styles.err.Render(
				fmt.Sprintf("error loading %s: %s", m.bootfile, err.Error()),
			))
			m.bootfile = ""
			m.console.SkipBoot()
		}
	} else {
		m.console.SkipBoot()
	}

	if m.cartfile != "" {
		d, err := os.ReadFile(m.cartfile)
		if err == nil {
			err = m.console.Mem.Cartridge.Insert(d)
		}
		if err != nil {
			fmt.Println(m.styles.err.Render(
				fmt.Sprintf("error loading %s: %s", m.cartfile, err.Error()),
			))
			m.cartfile = ""
		} else {
			fmt.Println(m.styles.cartridge.Render(
				fmt.Sprintf("%s from %s", m.console.Mem.Cartridge.Status(), filepath.Base(m.cartfile)),
			))
		}
	}
}

func (m *emulation) run() error {
	select {
	case m.state <- ui.StateRunning:
	default:
	}

	err := m.console.Run(func() error {
		select {
		case <-m.guiQuit:
			return quitErr
		case <-m.sig:
			return quitErr
		default:
		}
		return nil
	})

	if err != nil && !errors.Is(err, quitErr) {
		return err
	}

	fmt.Println(m.styles.emulation.Render(
		fmt.Sprintf("%d frames, %d dots", m.console.PPU.Frames, m.console.DotCount),
	))

	return nil
}

func Launch(guiQuit chan bool, u *ui.UI, args []string) error {
	var doctor bool
	var bootfile string
	var profile bool
	var random bool

	flgs := flag.NewFlagSet(programName, flag.ExitOnError)
	flgs.BoolVar(&doctor, "doctor", false, "fix LY reads at 0x90 for the gameboy-doctor tool")
	flgs.StringVar(&bootfile, "boot", "", "boot ROM image to run on reset")
	flgs.BoolVar(&profile, "profile", false, "create CPU profile for emulator")
	flgs.BoolVar(&random, "random", false, "randomise RAM contents on reset")
	err := flgs.Parse(args)
	if err != nil {
		return err
	}
	args = flgs.Args()

	var cartfile string
	if len(args) == 1 {
		cartfile = args[0]
	} else if len(args) > 1 {
		return fmt.Errorf("too many arguments to emulation")
	}

	m := &emulation{
		ctx: context{
			doctor: doctor,
		},
		guiQuit:  guiQuit,
		state:    u.State,
		sig:      make(chan os.Signal, 1),
		cartfile: cartfile,
		bootfile: bootfile,
		styles:   newStyles(),
	}
	m.console = hardware.Create(&m.ctx, u)

	signal.Notify(m.sig, syscall.SIGINT)

	// echo log entries as they are made. serial output from test ROMs arrives
	// through the logger
	logger.SetEcho(os.Stdout)

	m.reset(random)

	if profile {
		f, err := os.Create("cpu.profile")
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer func() {
			err := f.Close()
			if err != nil {
				logger.Log(logger.Allow, "performance", err.Error())
			}
		}()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	return m.run()
}
