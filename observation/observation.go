// Package observation builds the partially-observable view each agent
// receives of a board, and reconstructs an approximate full state back out
// of a stream of such views.
package observation

import "github.com/pommergo/pommergo/game"

// AgentInfoVisibility controls how much of another agent's private
// loadout (bomb count, strength, kick) an observation exposes.
type AgentInfoVisibility int

const (
	VisibilityAll      AgentInfoVisibility = iota // every agent's stats are visible
	VisibilityInView                              // visible agents' stats, like All; hidden agents', like OnlySelf
	VisibilityOnlySelf                            // only the observing agent's own stats
)

// Parameters controls what an Observation reveals.
type Parameters struct {
	AgentPartialMapView bool
	AgentViewSize       int
	ExposePowerUps      bool
	AgentInfoVisibility AgentInfoVisibility
}

// DefaultParameters matches competition-standard partial observability:
// a view radius of 4 cells, hidden power-ups, and visible stats only for
// the observing agent.
func DefaultParameters() Parameters {
	return Parameters{
		AgentPartialMapView: true,
		AgentViewSize:       4,
		ExposePowerUps:      false,
		AgentInfoVisibility: VisibilityOnlySelf,
	}
}

// Observation is the filtered view of a Board available to one agent at
// one tick.
type Observation struct {
	AgentID int
	Tick    int
	Params  Parameters

	Items  [game.BoardSize][game.BoardSize]game.Item
	Agents [game.AgentCount]game.AgentInfo
	Bombs  []game.Bomb

	// Incoming carries the two-word TeamRadio message, if any, queued for
	// this agent's team at the start of the tick this observation is for.
	Incoming   [2]int
	HasMessage bool
}

// Get builds the Observation agentID would receive of state under params.
func Get(state *game.State, agentID int, params Parameters) Observation {
	obs := Observation{AgentID: agentID, Tick: state.Tick, Params: params}

	fullyObservable := params.ExposePowerUps && !params.AgentPartialMapView && params.AgentInfoVisibility == VisibilityAll
	if fullyObservable {
		obs.Items = state.Items
		obs.Agents = state.Agents
		obs.Bombs = state.Bombs.Slice()
		return obs
	}

	self := state.Agents[agentID].Pos

	for y := 0; y < game.BoardSize; y++ {
		for x := 0; x < game.BoardSize; x++ {
			pos := game.Position{X: x, Y: y}
			if params.AgentPartialMapView && game.ChebyshevDistance(pos, self) > params.AgentViewSize {
				obs.Items[y][x] = game.Fog
				continue
			}

			item := state.ItemAt(pos)
			if !params.ExposePowerUps {
				switch {
				case game.IsWood(item):
					item = game.Wood
				case game.IsFlame(item):
					item = game.ClearPowFlag(item)
				}
			}
			obs.Items[y][x] = item
		}
	}

	for i := 0; i < game.AgentCount; i++ {
		info := state.Agents[i]
		if params.AgentPartialMapView && game.ChebyshevDistance(info.Pos, self) > params.AgentViewSize {
			info.Visible = false
			info.Pos = game.Position{X: -i, Y: -1}
		}
		visibleStats := params.AgentInfoVisibility == VisibilityAll ||
			i == agentID ||
			(params.AgentInfoVisibility == VisibilityInView && info.Visible)
		if !visibleStats {
			info.StatsVisible = false
			info.BombCount, info.MaxBombCount, info.BombStrength, info.CanKick = 0, 0, 0, false
		}
		obs.Agents[i] = info
	}

	for _, b := range state.Bombs.Slice() {
		if !params.AgentPartialMapView || game.ChebyshevDistance(b.Pos(), self) <= params.AgentViewSize {
			obs.Bombs = append(obs.Bombs, b)
		}
	}

	return obs
}
