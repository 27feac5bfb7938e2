// Package rules implements the deterministic, fixed-tick step function
// that advances a board by one set of simultaneous agent moves.
package rules

import "github.com/pommergo/pommergo/game"

func isOutOfBounds(p game.Position) bool {
	return !game.InBounds(p)
}

func fillPositions(b *game.Board) [game.AgentCount]game.Position {
	var out [game.AgentCount]game.Position
	for i := range out {
		out[i] = b.Agents[i].Pos
	}
	return out
}

func fillDestPos(b *game.Board, moves [game.AgentCount]game.Move) [game.AgentCount]game.Position {
	var out [game.AgentCount]game.Position
	for i := range out {
		out[i] = game.DestinationOf(b.Agents[i].Pos, moves[i])
	}
	return out
}

// fixDestPos cancels the moves of any two agents that would swap places or
// walk onto the same cell: both fall back to standing still, since neither
// move can be resolved without the other moving first.
func fixDestPos(b *game.Board, dest [game.AgentCount]game.Position) [game.AgentCount]game.Position {
	var stuck [game.AgentCount]bool
	for i := 0; i < game.AgentCount; i++ {
		if b.Agents[i].Dead {
			continue
		}
		for j := i + 1; j < game.AgentCount; j++ {
			if b.Agents[j].Dead {
				continue
			}
			sameDest := dest[i] == dest[j]
			swap := dest[i] == b.Agents[j].Pos && dest[j] == b.Agents[i].Pos
			if sameDest || swap {
				stuck[i], stuck[j] = true, true
			}
		}
	}
	out := dest
	for i, s := range stuck {
		if s {
			out[i] = b.Agents[i].Pos
		}
	}
	return out
}

// resolveDependencies builds the move-order dependency chain: agent j
// depends on agent i when j wants to step onto i's current cell, so i must
// move first; dependency[i] holds the agent that wants i's cell. It returns
// the roots of each resulting chain (dead agents, and live agents whose
// destination is not another live agent's cell, so they wait on nobody)
// and the dependency links. An empty
// root set means every agent's destination forms one closed loop (an
// "ouroboros"), in which case the caller treats every cell as mutually
// vacatable for this tick.
func resolveDependencies(b *game.Board, dest [game.AgentCount]game.Position) (dependency, roots [game.AgentCount]int, rootCount int) {
	for i := range dependency {
		dependency[i] = -1
		roots[i] = -1
	}

	for i := 0; i < game.AgentCount; i++ {
		if b.Agents[i].Dead {
			roots[rootCount] = i
			rootCount++
			continue
		}

		isRoot := true
		for j := 0; j < game.AgentCount; j++ {
			if i == j || b.Agents[j].Dead {
				continue
			}
			if dest[i] == b.Agents[j].Pos {
				dependency[j] = i
				isRoot = false
				break
			}
		}
		if isRoot {
			roots[rootCount] = i
			rootCount++
		}
	}
	return dependency, roots, rootCount
}

// moveOrder returns the AgentCount agent ids in the order their moves must
// be applied, following the dependency chains computed above.
func moveOrder(dependency, roots [game.AgentCount]int, rootCount int) [game.AgentCount]int {
	var order [game.AgentCount]int
	rootIdx := 0
	i := 0
	if rootCount != 0 {
		i = roots[0]
	}
	for step := 0; step < game.AgentCount; step, i = step+1, dependency[i] {
		if i == -1 {
			rootIdx++
			i = roots[rootIdx]
		}
		order[step] = i
	}
	return order
}

// hasDPCollision reports whether two distinct live agents want to move to
// the same destination cell this tick, a conflict neither can win.
func hasDPCollision(b *game.Board, dest [game.AgentCount]game.Position, agentID int) bool {
	for i := 0; i < game.AgentCount; i++ {
		if i == agentID || b.Agents[i].Dead {
			continue
		}
		if dest[agentID] == dest[i] {
			return true
		}
	}
	return false
}

// agentBombChainReversion undoes agent moves, and the bomb kick behind
// them, all the way back along the move that produced them. It is invoked
// when a bomb cannot complete the move a kick gave it, unwinding whatever
// chain of agent and bomb moves led to that point.
func agentBombChainReversion(b *game.Board, moves [game.AgentCount]game.Move, bombDest [game.MaxBombs]game.Position, agentID int) game.Position {
	agent := &b.Agents[agentID]
	origin := game.OriginOf(agent.Pos, moves[agentID])

	if isOutOfBounds(origin) {
		return agent.Pos
	}

	originAgent := b.GetAgentAt(origin)

	bombIdx := -1
	for i := 0; i < b.Bombs.Len(); i++ {
		if bombDest[i] == origin {
			bombIdx = i
			break
		}
	}
	hasBomb := bombIdx != -1

	agent.Pos = origin
	b.SetItem(origin, game.AgentItem(agentID))

	if originAgent != -1 {
		return agentBombChainReversion(b, moves, bombDest, originAgent)
	}
	if hasBomb {
		bomb := b.Bombs.At(bombIdx)
		bd := bombDest[bombIdx]
		originBomb := game.OriginOf(bd, game.Move(bomb.Direction()))

		if originBomb == bd {
			b.SetItem(originBomb, game.AgentItem(agentID))
			return originBomb
		}

		hasAgent := b.GetAgentAt(originBomb)
		bomb.SetDirection(game.DirIdle)
		bomb.SetPos(originBomb)
		b.Bombs.Set(bombIdx, bomb)
		b.SetItem(originBomb, game.BombItem)

		if hasAgent != -1 {
			return agentBombChainReversion(b, moves, bombDest, hasAgent)
		}
		return originBomb
	}
	return origin
}
