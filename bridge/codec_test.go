package bridge

import (
	"testing"

	"github.com/pommergo/pommergo/game"
	"github.com/pommergo/pommergo/observation"
)

func TestEncodeDecode_RoundTripsAgentPositionsAndBoard(t *testing.T) {
	cfg := game.DefaultInitConfig()
	cfg.AgentPositionSeed = -1
	board := game.InitBoard(cfg)
	state := game.NewState(board)

	obs := observation.Get(state, 0, observation.Parameters{AgentInfoVisibility: observation.VisibilityAll})

	ws, err := Encode(&obs)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if ws.BoardSize != game.BoardSize {
		t.Fatalf("board_size = %d, want %d", ws.BoardSize, game.BoardSize)
	}

	got, err := Decode(ws)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	for i := 0; i < game.AgentCount; i++ {
		want := obs.Agents[i].Pos
		gotPos := got.Agents[i].Pos
		if gotPos != want {
			t.Errorf("agent %d position = %v, want %v", i, gotPos, want)
		}
	}

	for y := 0; y < game.BoardSize; y++ {
		for x := 0; x < game.BoardSize; x++ {
			p := game.Position{X: x, Y: y}
			wantItem := obs.Items[y][x]
			if game.IsAgent(wantItem) {
				continue
			}
			if got.ItemAt(p) != wantItem {
				t.Fatalf("item at %v = %v, want %v", p, got.ItemAt(p), wantItem)
			}
		}
	}
}

func TestDecode_RejectsWrongBoardSize(t *testing.T) {
	ws := WireState{BoardSize: 5}
	if _, err := Decode(ws); err == nil {
		t.Fatalf("expected error for wrong board_size")
	}
}

func TestItemToPy_RoundTripsThroughPyToItem(t *testing.T) {
	items := []game.Item{game.Passage, game.Rigid, game.Wood, game.Flame, game.ExtraBomb, game.IncrRange, game.Kick, game.AgentItem(0), game.AgentItem(3)}
	for _, it := range items {
		code := itemToPy(it)
		back, err := pyToItem(code)
		if err != nil {
			t.Fatalf("pyToItem(%d): %v", code, err)
		}
		if back != it && !(game.IsAgent(it) && game.IsAgent(back)) {
			t.Errorf("round trip %v -> %d -> %v", it, code, back)
		}
	}
}
