package gui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jetsetilly/testdmg/ui"
	"github.com/jetsetilly/testdmg/version"
	input "github.com/quasilyte/ebitengine-input"
)

type gui struct {
	started bool

	endGui    chan bool
	rendering chan *image.RGBA
	inp       chan ui.Input
	state     chan ui.State

	image  *ebiten.Image
	width  int
	height int

	inputHandler *input.Handler
	inputSystem  input.System
}

const (
	ActionPadLeft  = input.Action(ui.PadLeft)
	ActionPadUp    = input.Action(ui.PadUp)
	ActionPadRight = input.Action(ui.PadRight)
	ActionPadDown  = input.Action(ui.PadDown)
	ActionButtonA  = input.Action(ui.ButtonA)
	ActionButtonB  = input.Action(ui.ButtonB)
	ActionSelect   = input.Action(ui.Select)
	ActionStart    = input.Action(ui.Start)
)

// the joypad actions in the order they are polled every update
var actions = []struct {
	action input.Action
	send   ui.Action
}{
	{ActionPadLeft, ui.PadLeft},
	{ActionPadUp, ui.PadUp},
	{ActionPadRight, ui.PadRight},
	{ActionPadDown, ui.PadDown},
	{ActionButtonA, ui.ButtonA},
	{ActionButtonB, ui.ButtonB},
	{ActionSelect, ui.Select},
	{ActionStart, ui.Start},
}

func (g *gui) initialise() {
	keymap := input.Keymap{
		ActionPadLeft:  {input.KeyGamepadLeft, input.KeyLeft},
		ActionPadUp:    {input.KeyGamepadUp, input.KeyUp},
		ActionPadRight: {input.KeyGamepadRight, input.KeyRight},
		ActionPadDown:  {input.KeyGamepadDown, input.KeyDown},
		ActionButtonA:  {input.KeyGamepadA, input.KeyX},
		ActionButtonB:  {input.KeyGamepadB, input.KeyZ},
		ActionSelect:   {input.KeyGamepadBack, input.KeyBackspace},
		ActionStart:    {input.KeyGamepadStart, input.KeyEnter},
	}
	g.inputHandler = g.inputSystem.NewHandler(uint8(0), keymap)
	g.started = true
}

func (g *gui) input() {
	g.inputSystem.Update()

	for _, a := range actions {
		var inp ui.Input

		if g.inputHandler.ActionIsJustPressed(a.action) {
			inp = ui.Input{Action: a.send}
		}
		if g.inputHandler.ActionIsJustReleased(a.action) {
			inp = ui.Input{Action: a.send, Release: true}
		}

		if inp.Action != ui.Nothing {
			select {
			case g.inp <- inp:
			default:
			}
		}
	}
}

func (g *gui) Update() error {
	if !g.started {
		g.initialise()
	}

	g.input()

	select {
	case <-g.endGui:
		return ebiten.Termination
	case <-g.state:
		// emulation state changes don't affect the rendering yet
	case img := <-g.rendering:
		dim := img.Bounds()
		if g.image == nil || g.image.Bounds() != dim {
			g.width = dim.Dx()
			g.height = dim.Dy()
			g.image = ebiten.NewImage(g.width, g.height)
		}
		g.image.WritePixels(img.Pix)
	default:
	}
	return nil
}

const pixelScale = 3

func (g *gui) Draw(screen *ebiten.Image) {
	if g.image != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(pixelScale, pixelScale)
		screen.DrawImage(g.image, op)
	}
}

func (g *gui) Layout(width, height int) (int, int) {
	if g.image != nil {
		return g.width * pixelScale, g.height * pixelScale
	}
	return width, height
}

func Launch(endGui chan bool, u *ui.UI) error {
	ebiten.SetWindowTitle(version.Title())
	ebiten.SetVsyncEnabled(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowPosition(10, 10)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	// a missing window file is normal on first run. any other problem with it
	// isn't worth stopping for either
	_ = onWindowOpen()

	g := &gui{
		endGui:    endGui,
		rendering: u.SetImage,
		inp:       u.UserInput,
		state:     u.State,
	}

	g.inputSystem.Init(input.SystemConfig{
		DevicesEnabled: input.AnyDevice,
	})

	err := ebiten.RunGame(g)

	if err := onCloseWindow(); err != nil {
		return err
	}

	return err
}
