package observation

import (
	"testing"

	"github.com/pommergo/pommergo/game"
)

func TestGet_FogsCellsOutsideViewRange(t *testing.T) {
	b := game.NewBoard()
	for i := range b.Items {
		for j := range b.Items[i] {
			b.Items[i][j] = game.Passage
		}
	}
	b.PutAgent(0, game.Position{0, 0})
	b.SetItem(game.Position{10, 10}, game.Rigid)

	state := game.NewState(b)
	params := Parameters{AgentPartialMapView: true, AgentViewSize: 2, AgentInfoVisibility: VisibilityOnlySelf}

	obs := Get(state, 0, params)

	if obs.Items[10][10] != game.Fog {
		t.Fatalf("expected distant cell to be fogged, got %v", obs.Items[10][10])
	}
	if obs.Items[0][1] == game.Fog {
		t.Fatalf("expected nearby cell to be visible")
	}
}

func TestGet_HidesOtherAgentStats(t *testing.T) {
	b := game.NewBoard()
	b.PutAgent(0, game.Position{5, 5})
	b.PutAgent(1, game.Position{5, 6})
	b.Agents[1].CanKick = true

	state := game.NewState(b)
	params := Parameters{AgentPartialMapView: false, AgentInfoVisibility: VisibilityOnlySelf}

	obs := Get(state, 0, params)

	if obs.Agents[1].StatsVisible {
		t.Fatalf("expected agent 1's stats to be hidden from agent 0")
	}
	if obs.Agents[1].CanKick {
		t.Fatalf("expected hidden stats to be zeroed")
	}
}

func TestGet_FoggedAgentGetsSentinelPosition(t *testing.T) {
	b := game.NewBoard()
	b.PutAgent(0, game.Position{5, 5})
	b.PutAgent(1, game.Position{0, 0})

	state := game.NewState(b)
	params := Parameters{AgentPartialMapView: true, AgentViewSize: 2, AgentInfoVisibility: VisibilityAll}

	obs := Get(state, 0, params)

	if obs.Agents[1].Visible {
		t.Fatalf("expected agent 1 to be out of view")
	}
	want := game.Position{X: -1, Y: -1}
	if obs.Agents[1].Pos != want {
		t.Fatalf("expected fogged agent 1's position to be sentinel %v, got %v", want, obs.Agents[1].Pos)
	}
}

func TestGet_AgentInfoVisibilityModes(t *testing.T) {
	build := func() *game.State {
		b := game.NewBoard()
		b.PutAgent(0, game.Position{5, 5})
		b.PutAgent(1, game.Position{5, 6}) // in view
		b.PutAgent(2, game.Position{0, 0}) // out of view
		return game.NewState(b)
	}

	cases := []struct {
		name          string
		visibility    AgentInfoVisibility
		wantInViewAg  bool // agent 1, in view
		wantOutOfView bool // agent 2, out of view
	}{
		{"All", VisibilityAll, true, true},
		{"InView", VisibilityInView, true, false},
		{"OnlySelf", VisibilityOnlySelf, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := build()
			params := Parameters{AgentPartialMapView: true, AgentViewSize: 2, AgentInfoVisibility: tc.visibility}

			obs := Get(state, 0, params)

			if !obs.Agents[0].StatsVisible {
				t.Fatalf("expected self's stats to always be visible under %s", tc.name)
			}
			if obs.Agents[1].StatsVisible != tc.wantInViewAg {
				t.Fatalf("%s: in-view agent stats visible = %v, want %v", tc.name, obs.Agents[1].StatsVisible, tc.wantInViewAg)
			}
			if obs.Agents[2].StatsVisible != tc.wantOutOfView {
				t.Fatalf("%s: out-of-view agent stats visible = %v, want %v", tc.name, obs.Agents[2].StatsVisible, tc.wantOutOfView)
			}
		})
	}
}

func TestVirtualStep_ReconstructsFoggedCellsFromPriorState(t *testing.T) {
	b := game.NewBoard()
	for i := range b.Items {
		for j := range b.Items[i] {
			b.Items[i][j] = game.Passage
		}
	}
	b.SetItem(game.Position{9, 9}, game.Wood)
	state := game.NewState(b)

	obs := Observation{Tick: 1, Params: Parameters{AgentPartialMapView: true, AgentViewSize: 2}}
	for y := range obs.Items {
		for x := range obs.Items[y] {
			obs.Items[y][x] = game.Fog
		}
	}

	next := game.NewState(game.NewBoard())
	for i := range next.Items {
		for j := range next.Items[i] {
			next.Items[i][j] = game.Passage
		}
	}
	next.Items = state.Items

	VirtualStep(obs, next, true, true)

	if next.ItemAt(game.Position{9, 9}) != game.Wood {
		t.Fatalf("expected fogged wood to be reconstructed from prior state")
	}
}
