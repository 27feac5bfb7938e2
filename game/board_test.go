package game

import (
	"strings"
	"testing"
)

// dumpBoard is a test helper to visualize board state.
func dumpBoard(b *Board) string {
	var sb strings.Builder
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			cell := b.Items[y][x]
			switch {
			case IsAgent(cell):
				sb.WriteByte(byte('0' + (cell - Agent0)))
			case cell == Rigid:
				sb.WriteByte('#')
			case IsWood(cell):
				sb.WriteByte('W')
			case cell == BombItem:
				sb.WriteByte('B')
			case IsFlame(cell):
				sb.WriteByte('F')
			case IsPowerUp(cell):
				sb.WriteByte('P')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func TestInitBoard_PlacesAllAgentsInCorners(t *testing.T) {
	cfg := DefaultInitConfig()
	b := InitBoard(cfg)

	wantCorners := map[Position]bool{
		{cfg.Padding, cfg.Padding}:                           true,
		{BoardSize - 1 - cfg.Padding, cfg.Padding}:           true,
		{BoardSize - 1 - cfg.Padding, BoardSize - 1 - cfg.Padding}: true,
		{cfg.Padding, BoardSize - 1 - cfg.Padding}:            true,
	}
	for id, info := range b.Agents {
		if !wantCorners[info.Pos] {
			t.Errorf("agent %d at unexpected position %v\n%s", id, info.Pos, dumpBoard(b))
		}
	}
}

func TestInitBoard_Deterministic(t *testing.T) {
	cfg := DefaultInitConfig()
	a := InitBoard(cfg)
	b := InitBoard(cfg)
	if a.Items != b.Items {
		t.Fatalf("same seed produced different boards:\n%s\nvs\n%s", dumpBoard(a), dumpBoard(b))
	}
}

func TestBoard_PutBombIncrementsOwnerCount(t *testing.T) {
	b := NewBoard()
	b.PutAgent(0, Position{5, 5})
	b.PutBomb(Position{5, 5}, 0, DefaultBombStrength, BombLifetime, false)

	if got := b.Agents[0].BombCount; got != 1 {
		t.Fatalf("bomb count = %d, want 1", got)
	}
	if !b.HasBomb(Position{5, 5}) {
		t.Fatalf("expected bomb at (5,5)")
	}
}

func TestBoard_KillDecrementsAliveOnce(t *testing.T) {
	b := NewBoard()
	b.PutAgent(0, Position{1, 1})
	before := b.AliveAgents

	b.Kill(0)
	b.Kill(0)

	if got := b.AliveAgents; got != before-1 {
		t.Fatalf("alive agents = %d, want %d", got, before-1)
	}
	if !b.Agents[0].Dead {
		t.Fatalf("expected agent 0 dead")
	}
}

func TestFlameQueue_ExpiresAndRestoresPassage(t *testing.T) {
	b := NewBoard()
	for i := range b.Items {
		for j := range b.Items[i] {
			b.Items[i][j] = Passage
		}
	}

	pos := Position{5, 5}
	b.Flames.Spawn(b, pos, 1, 0)
	if !IsFlame(b.ItemAt(pos)) {
		t.Fatalf("expected flame at center, got %v", b.ItemAt(pos))
	}

	for i := 0; i < FlameLifetime+1; i++ {
		b.Flames.Tick(b)
	}
	if got := b.ItemAt(pos); got != Passage {
		t.Fatalf("expected passage after flame expiry, got %v", got)
	}
}

func TestFlameQueue_ChainExplodesHiddenBomb(t *testing.T) {
	b := NewBoard()
	for i := range b.Items {
		for j := range b.Items[i] {
			b.Items[i][j] = Passage
		}
	}
	b.PutBomb(Position{6, 5}, 1, 1, BombLifetime, true)
	b.Flames.Spawn(b, Position{5, 5}, 1, 0)

	if b.HasBomb(Position{6, 5}) {
		t.Fatalf("expected chained bomb to have exploded\n%s", dumpBoard(b))
	}
}

func TestCheckTerminalState_LastAgentStandingWins(t *testing.T) {
	b := NewBoard()
	s := NewState(b)
	for i := 1; i < AgentCount; i++ {
		b.Kill(i)
	}
	s.CheckTerminalState()

	if !s.Finished || s.IsDraw {
		t.Fatalf("expected a decisive finish, got finished=%v draw=%v", s.Finished, s.IsDraw)
	}
	if !s.Agents[0].Won {
		t.Fatalf("expected agent 0 to have won")
	}
}

func TestCheckTerminalState_AllDeadIsDraw(t *testing.T) {
	b := NewBoard()
	s := NewState(b)
	for i := 0; i < AgentCount; i++ {
		b.Kill(i)
	}
	s.CheckTerminalState()

	if !s.Finished || !s.IsDraw {
		t.Fatalf("expected a draw, got finished=%v draw=%v", s.Finished, s.IsDraw)
	}
}
