// Package bridge implements the JSON wire protocol used to exchange board
// state with an out-of-process agent: Encode turns an internal Observation
// into the wire shape, Decode turns a wire payload back into a game.State.
package bridge

// WireState is the top-level JSON envelope for one tick of one agent's
// view of the game.
type WireState struct {
	BoardSize int         `json:"board_size"`
	StepCount int         `json:"step_count"`
	Board     WireBoard   `json:"board"`
	Agents    []WireAgent `json:"agents"`
	Bombs     []WireBomb  `json:"bombs"`
	Flames    []WireFlame `json:"flames"`
	GameType  int         `json:"game_type"`
}

// WireBoard is the board as a row-major grid of Python item codes; see
// pyToItem and itemToPy for how they map to game.Item's constants.
type WireBoard [][]int

// WireAgent mirrors one agent's public and (if visible) private state.
// Position is (row, column).
type WireAgent struct {
	AgentID      int   `json:"agent_id"`
	Position     [2]int `json:"position"`
	IsAlive      bool  `json:"is_alive"`
	Ammo         int   `json:"ammo"`
	BlastStrength int  `json:"blast_strength"`
	CanKick      bool  `json:"can_kick"`
	Team         int   `json:"team"`
}

// WireBomb mirrors one bomb. MovingDirection is nil when the bomb is not
// moving. BlastStrength on the wire is internal strength + 1.
type WireBomb struct {
	BomberID        int    `json:"bomber_id"`
	Position        [2]int `json:"position"`
	Life            int    `json:"life"`
	BlastStrength   int    `json:"blast_strength"`
	MovingDirection *int   `json:"moving_direction"`
}

// WireFlame mirrors one flame cell. Life is internal TimeLeft - 1 (python
// flames stay active for one more step than their reported life).
type WireFlame struct {
	Position [2]int `json:"position"`
	Life     int    `json:"life"`
}
