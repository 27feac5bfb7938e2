package rules

import "github.com/pommergo/pommergo/game"

// IsTerminal reports whether state has reached a game-over condition.
func IsTerminal(state *game.State) bool {
	return state.Finished
}

// Result returns agentID's outcome as 1 for a win, 0 for a loss, and 0.5
// for a draw. It is only meaningful once IsTerminal reports true.
func Result(state *game.State, agentID int) float32 {
	if state.IsDraw {
		return 0.5
	}
	if state.Agents[agentID].Won {
		return 1
	}
	return 0
}
