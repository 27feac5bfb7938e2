// Package agent defines the contract a player implements, plus a single
// reference baseline used to exercise that contract end to end.
package agent

import (
	"github.com/pommergo/pommergo/game"
	"github.com/pommergo/pommergo/observation"
)

// Agent decides the next move to take given the observation of a single
// tick.
type Agent interface {
	Act(obs *observation.Observation) game.Move
}

// Resettable is implemented by agents that carry state across games and
// need to clear it when the environment starts a new one.
type Resettable interface {
	Reset()
}

// Radio is implemented by agents that want to send a two-word message to
// their teammate this tick, in TeamRadio mode.
type Radio interface {
	Outgoing() (w0, w1 int, ok bool)
}
