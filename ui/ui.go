package ui

import (
	"image"
)

// State of the emulation as seen by the user interface
type State int

const (
	StateRunning State = iota
	StatePaused
)

// UI connects the emulation goroutine with the GUI goroutine. The emulation
// never shares machine state directly, it only ever sends copies of the
// completed frame
type UI struct {
	SetImage  chan *image.RGBA
	UserInput chan Input
	State     chan State
}

func NewUI() *UI {
	return &UI{
		SetImage:  make(chan *image.RGBA, 1),
		UserInput: make(chan Input, 1),
		State:     make(chan State, 1),
	}
}
