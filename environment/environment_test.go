package environment

import (
	"context"
	"testing"
	"time"

	"github.com/pommergo/pommergo/agent"
	"github.com/pommergo/pommergo/game"
)

func TestRunGame_AdvancesTicksUntilStepLimit(t *testing.T) {
	agents := [game.AgentCount]agent.Agent{
		agent.NewRandomAgent(1), agent.NewRandomAgent(2),
		agent.NewRandomAgent(3), agent.NewRandomAgent(4),
	}
	env := MakeGame(agents, game.FFA, 42, -1)

	err := env.RunGame(context.Background(), 5, RunOptions{AgentTimeout: time.Second})
	if err != nil {
		t.Fatalf("RunGame returned error: %v", err)
	}
	if env.GetState().Tick != 5 && !env.IsDone() {
		t.Fatalf("expected 5 ticks to have advanced, got %d", env.GetState().Tick)
	}
}

func TestRunGame_StopsOnContextCancel(t *testing.T) {
	agents := [game.AgentCount]agent.Agent{
		agent.NewRandomAgent(1), agent.NewRandomAgent(2),
		agent.NewRandomAgent(3), agent.NewRandomAgent(4),
	}
	env := MakeGame(agents, game.FFA, 42, -1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := env.RunGame(ctx, 5, RunOptions{}); err == nil {
		t.Fatalf("expected RunGame to report the cancelled context")
	}
}
