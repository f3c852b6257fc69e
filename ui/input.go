package ui

type Action int

type Input struct {
	Action  Action
	Release bool
}

const (
	Nothing Action = iota
	PadLeft
	PadUp
	PadRight
	PadDown
	ButtonA
	ButtonB
	Select
	Start
)
