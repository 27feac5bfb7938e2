package rules

import (
	"testing"

	"github.com/pommergo/pommergo/game"
)

func emptyState() *game.State {
	b := game.NewBoard()
	for i := range b.Items {
		for j := range b.Items[i] {
			b.Items[i][j] = game.Passage
		}
	}
	return game.NewState(b)
}

func noMoves() [game.AgentCount]game.Move {
	return [game.AgentCount]game.Move{game.Idle, game.Idle, game.Idle, game.Idle}
}

func TestStep_AgentMovesIntoPassage(t *testing.T) {
	s := emptyState()
	s.PutAgent(0, game.Position{5, 5})
	s.Kill(1)
	s.Kill(2)
	s.Kill(3)

	moves := noMoves()
	moves[0] = game.Right
	Step(s, moves)

	if got := s.Agents[0].Pos; got != (game.Position{6, 5}) {
		t.Fatalf("agent 0 at %v, want (6,5)", got)
	}
	if s.ItemAt(game.Position{6, 5}) != game.AgentItem(0) {
		t.Fatalf("board cell not updated to agent 0")
	}
	if s.ItemAt(game.Position{5, 5}) != game.Passage {
		t.Fatalf("origin cell not cleared")
	}
}

func TestStep_TwoAgentsSwapPositionsIsBlocked(t *testing.T) {
	s := emptyState()
	s.PutAgent(0, game.Position{5, 5})
	s.PutAgent(1, game.Position{6, 5})
	s.Kill(2)
	s.Kill(3)

	moves := noMoves()
	moves[0] = game.Right
	moves[1] = game.Left
	Step(s, moves)

	if s.Agents[0].Pos != (game.Position{5, 5}) || s.Agents[1].Pos != (game.Position{6, 5}) {
		t.Fatalf("expected swap to be blocked, got agent0=%v agent1=%v", s.Agents[0].Pos, s.Agents[1].Pos)
	}
}

func TestStep_BombExplodesAfterLifetime(t *testing.T) {
	s := emptyState()
	s.PutAgent(0, game.Position{5, 5})
	s.Kill(1)
	s.Kill(2)
	s.Kill(3)

	moves := noMoves()
	moves[0] = game.Bomb
	Step(s, moves)

	if !s.HasBomb(game.Position{5, 5}) {
		t.Fatalf("expected a bomb to be planted")
	}

	moves[0] = game.Idle
	for i := 0; i < game.BombLifetime; i++ {
		Step(s, moves)
	}

	if s.HasBomb(game.Position{5, 5}) {
		t.Fatalf("expected bomb to have exploded by now")
	}
}

func TestStep_KickMovesBomb(t *testing.T) {
	s := emptyState()
	s.PutAgent(0, game.Position{5, 5})
	s.Kill(1)
	s.Kill(2)
	s.Kill(3)
	s.Agents[0].CanKick = true
	s.PutBomb(game.Position{6, 5}, 0, 1, game.BombLifetime, true)

	moves := noMoves()
	moves[0] = game.Right
	Step(s, moves)

	if s.Agents[0].Pos != (game.Position{6, 5}) {
		t.Fatalf("expected agent to move onto the kicked bomb's old cell, got %v", s.Agents[0].Pos)
	}
	if !s.HasBomb(game.Position{7, 5}) {
		t.Fatalf("expected kicked bomb to have slid one cell right")
	}
}

func TestStep_NoOpOnFinishedState(t *testing.T) {
	s := emptyState()
	s.Finished = true
	s.PutAgent(0, game.Position{5, 5})
	before := s.Tick

	Step(s, noMoves())

	if s.Tick != before {
		t.Fatalf("expected Step to be a no-op once finished")
	}
}
