package pipeline

import "github.com/jonboulle/clockwork"

// clock times each pipeline stage. Tests freeze it with SetClock.
var clock = clockwork.NewRealClock()

// SetClock replaces the stage timer's clock. Pass nil to restore real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		c = clockwork.NewRealClock()
	}
	clock = c
}
