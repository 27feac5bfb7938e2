package agent

import (
	"github.com/pommergo/pommergo/game"
	"github.com/pommergo/pommergo/observation"
)

// MemoryAgent wraps another Agent, maintaining a reconstructed planning
// State across ticks via observation.VirtualStep and observation.TrackStats.
// Unlike the raw per-tick Observation it hands to Inner, the maintained
// State keeps an estimate of cells, agents, and bombs that have since
// drifted out of view, the way a player remembers a board they can no
// longer fully see. KeepAgents and KeepBombs control how much of that
// estimate survives once something goes out of view.
type MemoryAgent struct {
	Inner      Agent
	KeepAgents bool
	KeepBombs  bool
	Warn       observation.Warner

	state *game.State
}

// NewMemoryAgent wraps inner, warning through warn (nil is fine) whenever
// VirtualStep or TrackStats cannot fully trust their inputs.
func NewMemoryAgent(inner Agent, keepAgents, keepBombs bool, warn observation.Warner) *MemoryAgent {
	return &MemoryAgent{Inner: inner, KeepAgents: keepAgents, KeepBombs: keepBombs, Warn: warn}
}

// State returns the agent's current reconstructed planning state. It is
// nil until the first call to Act.
func (a *MemoryAgent) State() *game.State { return a.state }

func (a *MemoryAgent) Act(obs *observation.Observation) game.Move {
	if a.state == nil {
		a.state = game.NewState(game.NewBoard())
		a.state.Tick = obs.Tick - 1
	}

	prevBoard := a.state.Clone().Board
	observation.TrackStats(obs, prevBoard, a.Warn)
	observation.VirtualStep(*obs, a.state, a.KeepAgents, a.KeepBombs, a.Warn)

	return a.Inner.Act(obs)
}

// Reset discards the reconstructed state so the next game starts blind,
// same as a freshly-created MemoryAgent would.
func (a *MemoryAgent) Reset() {
	a.state = nil
	if r, ok := a.Inner.(Resettable); ok {
		r.Reset()
	}
}
