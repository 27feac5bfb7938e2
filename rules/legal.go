package rules

import "github.com/pommergo/pommergo/game"

// LegalMoves returns the moves agentID could take this tick without
// walking into a wall, wood, a live flame cell or a bomb it cannot kick,
// or off the edge of the board. Bomb and
// Idle are always included since neither one moves the agent.
func LegalMoves(b *game.Board, agentID int) []game.Move {
	agent := b.Agents[agentID]
	moves := []game.Move{game.Idle, game.Bomb}

	for _, m := range []game.Move{game.Up, game.Down, game.Left, game.Right} {
		dest := game.DestinationOf(agent.Pos, m)
		if isOutOfBounds(dest) {
			continue
		}
		if isSafeDestination(b, agent, dest) {
			moves = append(moves, m)
		}
	}
	return moves
}

// isSafeDestination reports whether an agent may step onto dest at all:
// never a wall, wood, or live flame, and a bomb only if the agent can
// kick it.
func isSafeDestination(b *game.Board, agent game.AgentInfo, dest game.Position) bool {
	item := b.ItemAt(dest)
	if item == game.Rigid || game.IsWood(item) || game.IsFlame(item) {
		return false
	}
	if item == game.BombItem {
		return agent.CanKick
	}
	return true
}
