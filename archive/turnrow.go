// Package archive writes per-tick rollouts to parquet for later replay or
// training, mirroring brensch-snek2's scraper/store rollout format but
// with one row per (game, tick, agent) carrying what that agent actually
// saw, not just the true state.
package archive

import (
	"encoding/json"
	"fmt"

	"github.com/pommergo/pommergo/bridge"
	"github.com/pommergo/pommergo/game"
	"github.com/pommergo/pommergo/observation"
)

// TurnRow is one agent's experience of one tick: the move it took and
// the wire-encoded Observation it chose that move from, plus enough of
// the true board to reconstruct and score the whole game without
// re-simulating it.
type TurnRow struct {
	GameID string `parquet:"game_id,dict"`
	Tick   int32  `parquet:"tick"`
	AgentID int32 `parquet:"agent_id"`

	PosX int32 `parquet:"pos_x"`
	PosY int32 `parquet:"pos_y"`
	Dead bool  `parquet:"dead"`
	Team int32 `parquet:"team"`

	Ammo          int32 `parquet:"ammo"`
	BlastStrength int32 `parquet:"blast_strength"`
	CanKick       bool  `parquet:"can_kick"`

	Move int32 `parquet:"move"`

	BombX        []int32 `parquet:"bomb_x"`
	BombY        []int32 `parquet:"bomb_y"`
	BombOwner    []int32 `parquet:"bomb_owner"`
	BombTimeLeft []int32 `parquet:"bomb_time_left"`
	BombStrength []int32 `parquet:"bomb_strength_blast"`

	FlameX        []int32 `parquet:"flame_x"`
	FlameY        []int32 `parquet:"flame_y"`
	FlameTimeLeft []int32 `parquet:"flame_time_left"`

	// Observation is the JSON-bridge encoding (bridge.WireState) of what
	// AgentID actually saw this tick, the replayable partially-observed
	// trajectory the package exists to capture.
	Observation []byte `parquet:"observation,zstd"`

	Finished     bool  `parquet:"finished"`
	WinningTeam  int32 `parquet:"winning_team"`
	WinningAgent int32 `parquet:"winning_agent"`
}

// NewTurnRow builds the row for one agent at the current tick of state,
// given the move it just took and the observation it acted on.
func NewTurnRow(gameID string, state *game.State, agentID int, move game.Move, obs *observation.Observation) (TurnRow, error) {
	ws, err := bridge.Encode(obs)
	if err != nil {
		return TurnRow{}, fmt.Errorf("archive: encode observation: %w", err)
	}
	raw, err := json.Marshal(ws)
	if err != nil {
		return TurnRow{}, fmt.Errorf("archive: marshal observation: %w", err)
	}

	row := TurnRow{
		GameID:       gameID,
		Tick:         int32(state.Tick),
		AgentID:      int32(agentID),
		Move:         int32(move),
		Observation:  raw,
		Finished:     state.Finished,
		WinningTeam:  int32(state.WinningTeam),
		WinningAgent: int32(state.WinningAgent),
	}

	info := state.Agents[agentID]
	row.PosX, row.PosY = int32(info.Pos.X), int32(info.Pos.Y)
	row.Dead = info.Dead
	row.Team = int32(info.Team)
	row.Ammo = int32(info.MaxBombCount - info.BombCount)
	row.BlastStrength = int32(info.BombStrength)
	row.CanKick = info.CanKick

	for i := 0; i < state.Bombs.Len(); i++ {
		b := state.Bombs.At(i)
		row.BombX = append(row.BombX, int32(b.X()))
		row.BombY = append(row.BombY, int32(b.Y()))
		row.BombOwner = append(row.BombOwner, int32(b.Owner()))
		row.BombTimeLeft = append(row.BombTimeLeft, int32(b.TimeLeft()))
		row.BombStrength = append(row.BombStrength, int32(b.Strength()))
	}
	for i := 0; i < state.Flames.Len(); i++ {
		f := state.Flames.At(i)
		row.FlameX = append(row.FlameX, int32(f.Pos.X))
		row.FlameY = append(row.FlameY, int32(f.Pos.Y))
		row.FlameTimeLeft = append(row.FlameTimeLeft, int32(f.TimeLeft))
	}

	return row, nil
}
