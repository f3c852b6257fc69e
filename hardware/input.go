package hardware

// handleInput drains any user input waiting on the interface channel and
// applies it to the joypad
func (con *Console) handleInput() {
	var drained bool
	for !drained {
		select {
		default:
			drained = true
		case inp := <-con.u.UserInput:
			con.Joypad.Handle(inp)
		}
	}
}
