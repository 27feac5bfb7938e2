package agent

import (
	"testing"

	"github.com/pommergo/pommergo/game"
	"github.com/pommergo/pommergo/observation"
	"github.com/pommergo/pommergo/rules"
)

func TestMemoryAgent_TracksTickAcrossCalls(t *testing.T) {
	cfg := game.DefaultInitConfig()
	cfg.BoardSeed = 7
	board := game.InitBoard(cfg)
	state := game.NewState(board)
	params := observation.DefaultParameters()

	inner := NewRandomAgent(1)
	mem := NewMemoryAgent(inner, true, true, nil)

	obs := observation.Get(state, 0, params)
	mem.Act(&obs)
	if mem.State().Tick != obs.Tick {
		t.Fatalf("expected reconstructed state tick %d, got %d", obs.Tick, mem.State().Tick)
	}

	var moves [game.AgentCount]game.Move
	rules.Step(state, moves)

	obs2 := observation.Get(state, 0, params)
	mem.Act(&obs2)
	if mem.State().Tick != obs2.Tick {
		t.Fatalf("expected reconstructed state tick %d after second call, got %d", obs2.Tick, mem.State().Tick)
	}
}

func TestMemoryAgent_RememberedCellSurvivesGoingOutOfView(t *testing.T) {
	b := game.NewBoard()
	for y := range b.Items {
		for x := range b.Items[y] {
			b.Items[y][x] = game.Passage
		}
	}
	b.PutAgent(0, game.Position{0, 0})
	b.SetItem(game.Position{2, 0}, game.Wood)
	state := game.NewState(b)

	params := observation.Parameters{AgentPartialMapView: true, AgentViewSize: 1, AgentInfoVisibility: observation.VisibilityOnlySelf}
	mem := NewMemoryAgent(NewRandomAgent(1), true, true, nil)

	obs := observation.Get(state, 0, params)
	if obs.Items[0][2] != game.Fog {
		t.Fatalf("expected wood at (2,0) to be outside the agent's view already")
	}

	// Bring it into view once, then move away; the remembered state
	// should still know about it.
	state.Board.Agents[0].Pos = game.Position{1, 0}
	obsNear := observation.Get(state, 0, params)
	mem.Act(&obsNear)
	if mem.State().ItemAt(game.Position{2, 0}) != game.Wood {
		t.Fatalf("expected memory to have captured the wood while in view")
	}

	state.Board.Agents[0].Pos = game.Position{0, 0}
	state.Tick++
	obsFar := observation.Get(state, 0, params)
	mem.Act(&obsFar)
	if mem.State().ItemAt(game.Position{2, 0}) != game.Wood {
		t.Fatalf("expected memory to retain the wood once it left view again")
	}
}
