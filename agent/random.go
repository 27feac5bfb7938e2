package agent

import (
	"math/rand"

	"github.com/pommergo/pommergo/game"
	"github.com/pommergo/pommergo/observation"
)

// RandomAgent picks uniformly among the moves that do not walk into a
// wall, wood block, live flame, or an un-kickable bomb. It deliberately
// does not reason about where bombs are about to go off: it is a naive
// baseline meant to exercise the Agent interface, not a competitive
// policy.
type RandomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a RandomAgent seeded for reproducible play.
func NewRandomAgent(seed int64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) Act(obs *observation.Observation) game.Move {
	moves := legalMoves(obs)
	return moves[a.rng.Intn(len(moves))]
}

// legalMoves mirrors rules.LegalMoves but works directly off an
// Observation instead of a game.Board, since an agent only ever sees its
// own partial view.
func legalMoves(obs *observation.Observation) []game.Move {
	self := obs.Agents[obs.AgentID]
	moves := []game.Move{game.Idle, game.Bomb}

	for _, m := range []game.Move{game.Up, game.Down, game.Left, game.Right} {
		dest := game.DestinationOf(self.Pos, m)
		if !game.InBounds(dest) {
			continue
		}
		item := obs.Items[dest.Y][dest.X]
		if item == game.Rigid || game.IsWood(item) || game.IsFlame(item) {
			continue
		}
		if item == game.BombItem && !self.CanKick {
			continue
		}
		moves = append(moves, m)
	}
	return moves
}
