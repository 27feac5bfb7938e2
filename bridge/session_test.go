package bridge

import (
	"testing"

	"github.com/pommergo/pommergo/agent"
	"github.com/pommergo/pommergo/game"
	"github.com/pommergo/pommergo/observation"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cfg := game.DefaultInitConfig()
	cfg.AgentPositionSeed = -1
	state := game.NewState(game.InitBoard(cfg))
	agents := [game.AgentCount]agent.Agent{
		agent.NewRandomAgent(1), agent.NewRandomAgent(2),
		agent.NewRandomAgent(3), agent.NewRandomAgent(4),
	}
	return NewSession(state, agents, observation.DefaultParameters(), game.FFA)
}

func TestSession_EncodeForRejectsOutOfRangeIndex(t *testing.T) {
	s := newTestSession(t)
	if _, err := s.EncodeFor(-1); err == nil {
		t.Fatalf("expected error for negative agent index")
	}
	if _, err := s.EncodeFor(game.AgentCount); err == nil {
		t.Fatalf("expected error for agent index >= AgentCount")
	}
}

func TestSession_EncodeForReturnsGameType(t *testing.T) {
	s := newTestSession(t)
	ws, err := s.EncodeFor(0)
	if err != nil {
		t.Fatalf("EncodeFor: %v", err)
	}
	if ws.GameType != 1 {
		t.Fatalf("GameType = %d, want 1 (FFA)", ws.GameType)
	}
}

func TestSession_ApplyWireStateReplacesState(t *testing.T) {
	s := newTestSession(t)
	ws, err := s.EncodeFor(0)
	if err != nil {
		t.Fatalf("EncodeFor: %v", err)
	}
	ws.StepCount = 42

	if err := s.ApplyWireState(ws); err != nil {
		t.Fatalf("ApplyWireState: %v", err)
	}
	if s.State.Tick != 42 {
		t.Fatalf("Tick = %d, want 42", s.State.Tick)
	}
}
