package rules

import "github.com/pommergo/pommergo/game"

func fillBombDestPos(b *game.Board) [game.MaxBombs]game.Position {
	var out [game.MaxBombs]game.Position
	for i := 0; i < b.Bombs.Len(); i++ {
		out[i] = b.Bombs.At(i).Destination()
	}
	return out
}

func resetBombFlags(b *game.Board) {
	for i := 0; i < b.Bombs.Len(); i++ {
		bomb := b.Bombs.At(i)
		bomb.SetMoved(false)
		b.Bombs.Set(i, bomb)
	}
}

// consumePowerUp applies the effect of a power-up item picked up by agent.
func consumePowerUp(b *game.Board, agentID int, item game.Item) {
	switch item {
	case game.ExtraBomb:
		b.Agents[agentID].MaxBombCount++
	case game.IncrRange:
		b.Agents[agentID].BombStrength++
	case game.Kick:
		b.Agents[agentID].CanKick = true
	}
}

// hasBombCollision reports whether another bomb in the queue, starting the
// search at index, wants to move to the same destination as b.
func hasBombCollision(board *game.Board, b game.Bomb, index int) bool {
	target := b.Destination()
	for i := index; i < board.Bombs.Len(); i++ {
		other := board.Bombs.At(i)
		if other != b && other.Destination() == target {
			return true
		}
	}
	return false
}

// resolveBombCollision halts every bomb that collided into the same target
// cell as the bomb at index, and for each halted bomb (including the one
// at index) that had been kicked this tick, reverts the kicking agent's
// move (and anything chained behind it).
func resolveBombCollision(b *game.Board, moves [game.AgentCount]game.Move, bombDest [game.MaxBombs]game.Position, index int) {
	bomb := b.Bombs.At(index)
	target := bomb.Destination()
	collided := false

	for i := index; i < b.Bombs.Len(); i++ {
		other := b.Bombs.At(i)
		if other != bomb && other.Destination() == target {
			kicked := other.Direction() != game.DirIdle
			other.SetDirection(game.DirIdle)
			b.Bombs.Set(i, other)
			collided = true
			if id := b.GetAgentAt(other.Pos()); kicked && id > -1 && moves[id] != game.Idle && moves[id] != game.Bomb {
				agentBombChainReversion(b, moves, bombDest, id)
				b.SetItem(other.Pos(), game.BombItem)
			}
		}
	}

	if !collided || bomb.Direction() == game.DirIdle {
		return
	}

	bomb.SetDirection(game.DirIdle)
	b.Bombs.Set(index, bomb)

	agentID := b.GetAgentAt(bomb.Pos())
	if agentID > -1 && moves[agentID] != game.Idle && moves[agentID] != game.Bomb {
		agentBombChainReversion(b, moves, bombDest, agentID)
		b.SetItem(bomb.Pos(), game.BombItem)
	}
}

// tickBombs decrements every bomb's timer and explodes any that reached
// zero, in expiry order; explosions can chain into further explosions.
func tickBombs(b *game.Board) {
	for i := 0; i < b.Bombs.Len(); i++ {
		bomb := b.Bombs.At(i)
		bomb.ReduceTimeLeft()
		b.Bombs.Set(i, bomb)
	}
	for b.Bombs.Len() > 0 && b.Bombs.At(0).TimeLeft() == 0 {
		b.ExplodeBombAt(0)
	}
}
