package agent

import (
	"testing"

	"github.com/pommergo/pommergo/game"
	"github.com/pommergo/pommergo/observation"
)

func TestRandomAgent_NeverPicksIntoRigidWall(t *testing.T) {
	obs := &observation.Observation{AgentID: 0}
	obs.Agents[0] = game.NewAgentInfo(game.Position{5, 5})
	for y := range obs.Items {
		for x := range obs.Items[y] {
			obs.Items[y][x] = game.Passage
		}
	}
	obs.Items[5][6] = game.Rigid

	a := NewRandomAgent(1)
	for i := 0; i < 50; i++ {
		m := a.Act(obs)
		if m == game.Right {
			t.Fatalf("random agent picked a move into a rigid wall")
		}
	}
}

func TestRandomAgent_Deterministic(t *testing.T) {
	obs := &observation.Observation{AgentID: 0}
	obs.Agents[0] = game.NewAgentInfo(game.Position{5, 5})
	for y := range obs.Items {
		for x := range obs.Items[y] {
			obs.Items[y][x] = game.Passage
		}
	}

	a1 := NewRandomAgent(42)
	a2 := NewRandomAgent(42)
	for i := 0; i < 10; i++ {
		if a1.Act(obs) != a2.Act(obs) {
			t.Fatalf("same seed produced different moves")
		}
	}
}
