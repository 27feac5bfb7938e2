package bridge

import (
	"fmt"

	"github.com/pommergo/pommergo/game"
	"github.com/pommergo/pommergo/observation"
)

// pyToItem and itemToPy map wire board codes to internal Item values.
// Codes that equal their game.Item constant pass through unchanged; wood
// (2), flame (4) and the agents (10..13) are translated to and from their
// bit-tagged Item values.
func pyToItem(code int) (game.Item, error) {
	switch {
	case code == 0, code == 1, code == 3, code == 5, code == 6, code == 7, code == 8, code == 9:
		return game.Item(code), nil
	case code == 2:
		return game.Wood, nil
	case code == 4:
		return game.Flame, nil
	case code >= 10 && code <= 13:
		return game.AgentItem(code - 10), nil
	default:
		return 0, fmt.Errorf("bridge: unknown board code %d", code)
	}
}

func itemToPy(item game.Item) int {
	switch {
	case game.IsAgent(item):
		return 10 + int(item-game.Agent0)
	case game.IsWood(item):
		return 2
	case game.IsFlame(item):
		return 4
	default:
		return int(item)
	}
}

func dirToPy(d game.Direction) *int {
	if d == game.DirIdle {
		return nil
	}
	v := int(d)
	return &v
}

func pyToDir(v *int) (game.Direction, error) {
	if v == nil {
		return game.DirIdle, nil
	}
	if *v < 0 || *v > 4 {
		return 0, fmt.Errorf("bridge: unknown direction %d", *v)
	}
	return game.Direction(*v), nil
}

func gameModeToPy(mode game.GameMode) int {
	switch mode {
	case game.FFA:
		return 1
	case game.TwoTeams:
		return 2
	case game.TeamRadio:
		return 3
	default:
		return 0
	}
}

// Encode converts an agent's Observation into the wire envelope a
// Python-side client expects.
func Encode(obs *observation.Observation) (WireState, error) {
	ws := WireState{
		BoardSize: game.BoardSize,
		StepCount: obs.Tick,
		Board:     make(WireBoard, game.BoardSize),
	}

	for y := 0; y < game.BoardSize; y++ {
		row := make([]int, game.BoardSize)
		for x := 0; x < game.BoardSize; x++ {
			row[x] = itemToPy(obs.Items[y][x])
		}
		ws.Board[y] = row
	}

	for i, info := range obs.Agents {
		ws.Agents = append(ws.Agents, WireAgent{
			AgentID:       i,
			Position:      [2]int{info.Pos.Y, info.Pos.X},
			IsAlive:       !info.Dead,
			Ammo:          info.MaxBombCount - info.BombCount,
			BlastStrength: info.BombStrength,
			CanKick:       info.CanKick,
			Team:          info.Team,
		})
	}

	for _, b := range obs.Bombs {
		ws.Bombs = append(ws.Bombs, WireBomb{
			BomberID:        b.Owner(),
			Position:        [2]int{b.Y(), b.X()},
			Life:            b.TimeLeft(),
			BlastStrength:   b.Strength() + 1,
			MovingDirection: dirToPy(b.Direction()),
		})
	}

	return ws, nil
}

// Decode converts a wire envelope into an internal game.State. Team
// assignment comes from each WireAgent's own Team field rather than being
// recomputed, since a wire payload may reflect a game already in
// progress.
func Decode(ws WireState) (*game.State, error) {
	if ws.BoardSize != game.BoardSize {
		return nil, fmt.Errorf("bridge: board_size %d != %d", ws.BoardSize, game.BoardSize)
	}

	b := game.NewBoard()
	b.Tick = ws.StepCount

	for y := 0; y < game.BoardSize; y++ {
		if len(ws.Board[y]) != game.BoardSize {
			return nil, fmt.Errorf("bridge: row %d has %d cells, want %d", y, len(ws.Board[y]), game.BoardSize)
		}
		for x := 0; x < game.BoardSize; x++ {
			item, err := pyToItem(ws.Board[y][x])
			if err != nil {
				return nil, err
			}
			b.SetItem(game.Position{X: x, Y: y}, item)
		}
	}

	for _, wb := range ws.Bombs {
		dir, err := pyToDir(wb.MovingDirection)
		if err != nil {
			return nil, err
		}
		bomb := game.NewBomb(
			game.Position{X: wb.Position[1], Y: wb.Position[0]},
			wb.BomberID, wb.BlastStrength-1, wb.Life, dir,
		)
		b.Bombs.Add(bomb)
		if wb.BomberID >= 0 && wb.BomberID < game.AgentCount {
			b.Agents[wb.BomberID].BombCount++
		}
	}

	b.AliveAgents = 0
	for _, wa := range ws.Agents {
		if wa.AgentID < 0 || wa.AgentID >= game.AgentCount {
			return nil, fmt.Errorf("bridge: agent_id %d out of range", wa.AgentID)
		}
		info := &b.Agents[wa.AgentID]
		info.Visible = true
		info.Pos = game.Position{X: wa.Position[1], Y: wa.Position[0]}
		info.Dead = !wa.IsAlive
		info.StatsVisible = true
		info.CanKick = wa.CanKick
		info.MaxBombCount = info.BombCount + wa.Ammo
		info.BombStrength = wa.BlastStrength
		info.Team = wa.Team
		if !info.Dead {
			b.AliveAgents++
		}
	}

	return game.NewState(b), nil
}
