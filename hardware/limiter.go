package hardware

import (
	"time"

	"github.com/jetsetilly/testdmg/hardware/clocks"
	"github.com/jetsetilly/testdmg/hardware/spec"
)

type limiter struct {
	tick  *time.Ticker
	nudge chan bool

	// the payload function for the Wait() method
	wait func()
}

func newLimiter() *limiter {
	l := &limiter{
		nudge: make(chan bool, 1),
	}

	// the ideal frame rate of the console
	hz := clocks.DMG / float64(spec.ClksFrame)
	d := time.Second / time.Duration(hz)

	// the wait() function deliberately starts slow and then changes state
	// after a few nudges to normal operation. this smooths out the first
	// frames after startup
	var ct int
	l.wait = func() {
		select {
		case <-time.After(time.Duration(float64(d) * 1.025)):
		case <-l.nudge:
			ct++
			if ct > 2 {
				l.tick = time.NewTicker(d)
				l.wait = func() {
					select {
					case <-l.tick.C:
					case <-l.nudge:
					}
				}
			}
		}
	}

	return l
}

func (l *limiter) Wait() {
	l.wait()
}

func (l *limiter) Nudge() {
	select {
	case l.nudge <- true:
	default:
	}
}
