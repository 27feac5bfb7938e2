// Package environment orchestrates a full game: collecting moves from
// agents, advancing the board with rules.Step, and tracking the running
// observations each agent has seen.
package environment

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pommergo/pommergo/agent"
	"github.com/pommergo/pommergo/archive"
	"github.com/pommergo/pommergo/game"
	"github.com/pommergo/pommergo/observation"
	"github.com/pommergo/pommergo/rules"
)

// RunOptions controls one call to RunGame.
type RunOptions struct {
	AgentTimeout time.Duration
	OnTick       func(tick int, state *game.State)
	Log          *slog.Logger

	// Archive, when set, receives one TurnRow per tick per acting agent,
	// recording the observation it acted on alongside the move it chose.
	Archive *archive.BatchWriter
	GameID  string
}

// teamMailbox is the single-slot, two-word TeamRadio channel shared by a
// team: whichever agent on the team last wrote wins, and the message is
// delivered once, to the next tick's observations, then cleared.
type teamMailbox struct {
	w0, w1 int
	full   bool
}

// Environment holds everything one game needs: the canonical state, the
// four agents, their observation parameters, and per-team radio mailboxes.
type Environment struct {
	state  *game.State
	agents [game.AgentCount]agent.Agent
	params observation.Parameters

	mailboxes map[int]*teamMailbox
	incoming  [game.AgentCount]teamMailbox

	lastMoves [game.AgentCount]game.Move
	hasActed  [game.AgentCount]bool
	lastObs   [game.AgentCount]observation.Observation
}

// MakeGame builds a fresh board via game.InitBoard and wraps it in an
// Environment ready to run.
func MakeGame(agents [game.AgentCount]agent.Agent, mode game.GameMode, boardSeed, agentPosSeed int64) *Environment {
	cfg := game.DefaultInitConfig()
	cfg.Mode = mode
	cfg.BoardSeed = boardSeed
	cfg.AgentPositionSeed = agentPosSeed

	board := game.InitBoard(cfg)
	state := game.NewState(board)

	return &Environment{
		state:     state,
		agents:    agents,
		params:    observation.DefaultParameters(),
		mailboxes: make(map[int]*teamMailbox),
	}
}

// SetObservationParameters changes how much of the board each agent's
// Observation reveals for the rest of the game.
func (e *Environment) SetObservationParameters(p observation.Parameters) {
	e.params = p
}

// GetState returns the canonical, fully-observable state.
func (e *Environment) GetState() *game.State { return e.state }

// GetObservation returns agent i's view of the current state.
func (e *Environment) GetObservation(i int) observation.Observation {
	obs := observation.Get(e.state, i, e.params)
	if e.incoming[i].full {
		obs.Incoming = [2]int{e.incoming[i].w0, e.incoming[i].w1}
		obs.HasMessage = true
	}
	return obs
}

func (e *Environment) IsDone() bool        { return e.state.Finished }
func (e *Environment) IsDraw() bool        { return e.state.IsDraw }
func (e *Environment) GetWinningAgent() int { return e.state.WinningAgent }
func (e *Environment) GetWinningTeam() int  { return e.state.WinningTeam }
func (e *Environment) GetLastMove(i int) game.Move { return e.lastMoves[i] }
func (e *Environment) HasActed(i int) bool  { return e.hasActed[i] }

// RunGame advances the environment for up to steps ticks, stopping early
// if the game finishes or ctx is cancelled (the only error it returns is
// ctx's). Moves for
// all live agents are collected concurrently, one goroutine each, mirroring
// how a worker pool would be wired to real-time or networked agents.
func (e *Environment) RunGame(ctx context.Context, steps int, opts RunOptions) error {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	for tick := 0; tick < steps; tick++ {
		if e.state.Finished {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		moves := e.collectMoves(ctx, opts.AgentTimeout, log)

		if opts.Archive != nil {
			if err := e.archiveTick(opts.Archive, opts.GameID, moves); err != nil {
				log.Warn("archive: failed to write tick", "tick", tick, "err", err)
			}
		}

		e.deliverRadio()

		rules.Step(e.state, moves)
		e.lastMoves = moves

		if opts.OnTick != nil {
			opts.OnTick(tick, e.state)
		}
	}
	return nil
}

// collectMoves asks every live agent for its move in parallel, each given
// its own Observation, and substitutes Idle for any agent that does not
// answer within timeout (0 disables the timeout).
func (e *Environment) collectMoves(ctx context.Context, timeout time.Duration, log *slog.Logger) [game.AgentCount]game.Move {
	var moves [game.AgentCount]game.Move
	var wg sync.WaitGroup

	for i := 0; i < game.AgentCount; i++ {
		if e.state.Agents[i].Dead || e.agents[i] == nil {
			e.hasActed[i] = false
			continue
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			obs := e.GetObservation(i)
			e.lastObs[i] = obs
			moves[i], e.hasActed[i] = e.actWithTimeout(ctx, i, &obs, timeout, log)
		}(i)
	}

	wg.Wait()
	return moves
}

// archiveTick writes one TurnRow per agent that acted this tick, using
// the observation it was given and the move it chose.
func (e *Environment) archiveTick(w *archive.BatchWriter, gameID string, moves [game.AgentCount]game.Move) error {
	for i := 0; i < game.AgentCount; i++ {
		if e.state.Agents[i].Dead {
			continue
		}
		row, err := archive.NewTurnRow(gameID, e.state, i, moves[i], &e.lastObs[i])
		if err != nil {
			return err
		}
		if err := w.WriteRow(row); err != nil {
			return err
		}
	}
	return nil
}

func (e *Environment) actWithTimeout(ctx context.Context, i int, obs *observation.Observation, timeout time.Duration, log *slog.Logger) (game.Move, bool) {
	if timeout <= 0 {
		return e.act(i, obs), true
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result := make(chan game.Move, 1)
	go func() { result <- e.act(i, obs) }()

	select {
	case m := <-result:
		return m, true
	case <-ctx.Done():
		log.Warn("agent exceeded move timeout, substituting idle", "agent", i)
		return game.Idle, false
	}
}

func (e *Environment) act(i int, obs *observation.Observation) game.Move {
	a := e.agents[i]
	move := a.Act(obs)
	if radio, ok := a.(agent.Radio); ok {
		if w0, w1, send := radio.Outgoing(); send {
			team := e.state.Agents[i].Team
			e.mailboxes[team] = &teamMailbox{w0: w0, w1: w1, full: true}
		}
	}
	return move
}

// deliverRadio moves each team's mailbox (filled by act during this
// tick's collectMoves) into e.incoming, where GetObservation picks it up
// for every living agent on that team starting next tick, then clears
// the mailbox so a stale message is never delivered twice.
func (e *Environment) deliverRadio() {
	for i := range e.incoming {
		e.incoming[i] = teamMailbox{}
	}
	for team, box := range e.mailboxes {
		if box == nil || !box.full {
			continue
		}
		for i := 0; i < game.AgentCount; i++ {
			if e.state.Agents[i].Team == team && !e.state.Agents[i].Dead {
				e.incoming[i] = *box
			}
		}
		delete(e.mailboxes, team)
	}
}

// Reset calls Reset on every agent that implements agent.Resettable,
// letting stateful agents clear per-game memory before a new game starts.
func (e *Environment) Reset() {
	for _, a := range e.agents {
		if r, ok := a.(agent.Resettable); ok {
			r.Reset()
		}
	}
}
