// Command pommer runs one deterministic Pommerman-family game and prints
// or archives the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pommergo/pommergo/agent"
	"github.com/pommergo/pommergo/archive"
	"github.com/pommergo/pommergo/environment"
	"github.com/pommergo/pommergo/game"
	"github.com/pommergo/pommergo/logging"
	"github.com/pommergo/pommergo/observation"
	"github.com/pommergo/pommergo/render"
)

func main() {
	boardSeed := flag.Int64("board-seed", 0x1337, "seed for wall/wood/power-up placement")
	agentSeed := flag.Int64("agent-seed", -1, "seed for shuffling agent starting corners (-1 = fixed corners)")
	mode := flag.String("mode", "ffa", "game mode: ffa, teams, radio")
	steps := flag.Int("steps", 800, "maximum ticks to run")
	agentTimeout := flag.Duration("agent-timeout", 100*time.Millisecond, "per-agent move timeout (0 disables)")
	viewSize := flag.Int("view-size", 4, "agent Chebyshev view radius; ignored with -full-observable")
	fullObservable := flag.Bool("full-observable", false, "disable fog of war for every agent")
	renderMode := flag.String("render", "none", "render mode: none, ascii, tui")
	stepOnKey := flag.Bool("step", false, "tui: wait for a keypress before each tick instead of a timer")
	waitMs := flag.Int("wait-ms", 200, "tui: milliseconds between ticks when not stepping on keypress")
	memoryAgents := flag.Bool("memory-agents", false, "wrap every agent in a MemoryAgent that reconstructs a full board estimate across ticks")
	archiveDir := flag.String("archive-dir", "", "if set, write one rollout parquet file per game into this directory")
	gameID := flag.String("game-id", "", "archive row game_id; defaults to a timestamp")
	jsonLogs := flag.Bool("json-logs", true, "use the pretty JSON slog handler instead of the default text handler")
	flag.Parse()

	var handler slog.Handler
	if *jsonLogs {
		handler = logging.NewPrettyJSONHandler(os.Stderr, nil)
	} else {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	log := slog.New(handler)
	slog.SetDefault(log)

	gameMode, err := parseMode(*mode)
	if err != nil {
		log.Error("invalid -mode", "err", err)
		os.Exit(2)
	}

	if *gameID == "" {
		*gameID = fmt.Sprintf("pommer-%d", time.Now().UnixNano())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	agents := [game.AgentCount]agent.Agent{
		agent.NewRandomAgent(1001),
		agent.NewRandomAgent(1002),
		agent.NewRandomAgent(1003),
		agent.NewRandomAgent(1004),
	}
	if *memoryAgents {
		warn := logging.NewBoundedWarner(log, 3)
		for i, a := range agents {
			agents[i] = agent.NewMemoryAgent(a, true, true, warn)
		}
	}

	env := environment.MakeGame(agents, gameMode, *boardSeed, *agentSeed)
	params := observation.DefaultParameters()
	params.AgentViewSize = *viewSize
	params.AgentPartialMapView = !*fullObservable
	env.SetObservationParameters(params)

	opts := environment.RunOptions{
		AgentTimeout: *agentTimeout,
		Log:          log,
		GameID:       *gameID,
	}

	if *archiveDir != "" {
		bw, err := archive.NewBatchWriter(*archiveDir)
		if err != nil {
			log.Error("failed to open archive writer", "err", err)
			os.Exit(1)
		}
		defer func() {
			if err := bw.Close(); err != nil {
				log.Error("failed to close archive writer", "err", err)
			} else if bw.Rows() > 0 {
				log.Info("archive written", "path", bw.OutPath(), "rows", bw.Rows())
			}
		}()
		opts.Archive = bw
	}

	switch *renderMode {
	case "none":
		runHeadless(ctx, env, *steps, opts, log)
	case "ascii":
		opts.OnTick = func(tick int, state *game.State) {
			fmt.Print(render.RenderClear())
			fmt.Println(render.Status(state))
			fmt.Print(render.ASCII(state.Board))
		}
		runHeadless(ctx, env, *steps, opts, log)
	case "tui":
		runTUI(ctx, env, *steps, opts, *stepOnKey, *waitMs, log)
	default:
		log.Error("invalid -render", "value", *renderMode)
		os.Exit(2)
	}
}

func runHeadless(ctx context.Context, env *environment.Environment, steps int, opts environment.RunOptions, log *slog.Logger) {
	if err := env.RunGame(ctx, steps, opts); err != nil {
		log.Error("game aborted", "err", err)
		os.Exit(1)
	}
	logResult(env, log)
}

func runTUI(ctx context.Context, env *environment.Environment, steps int, opts environment.RunOptions, stepOnKey bool, waitMs int, log *slog.Logger) {
	model := render.NewTUI(stepOnKey, waitMs)
	opts.OnTick = func(tick int, state *game.State) {
		model.Frames <- state
		_ = render.Pace(ctx, model)
	}

	program := tea.NewProgram(model)
	done := make(chan error, 1)
	go func() { done <- env.RunGame(ctx, steps, opts) }()

	if _, err := program.Run(); err != nil {
		log.Error("tui exited with error", "err", err)
	}
	close(model.Frames)
	if err := <-done; err != nil {
		log.Error("game aborted", "err", err)
	}
	logResult(env, log)
}

func logResult(env *environment.Environment, log *slog.Logger) {
	state := env.GetState()
	log.Info("game finished",
		"ticks", state.Tick,
		"finished", state.Finished,
		"draw", state.IsDraw,
		"winning_agent", state.WinningAgent,
		"winning_team", state.WinningTeam,
	)
}

func parseMode(s string) (game.GameMode, error) {
	switch s {
	case "ffa":
		return game.FFA, nil
	case "teams":
		return game.TwoTeams, nil
	case "radio":
		return game.TeamRadio, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want ffa, teams, or radio)", s)
	}
}
