package rules

import "github.com/pommergo/pommergo/game"

// Step advances state by one tick, applying moves (one per agent, in
// AgentCount order) simultaneously: flames tick down first, then agent
// movement is resolved as a single atomic swap via dependency ordering,
// then bombs move (dragged by kicks) and finally detonate.
//
// Step is a no-op on an already-finished state.
func Step(state *game.State, moves [game.AgentCount]game.Move) {
	if state.Finished {
		return
	}

	aliveBefore := state.AliveAgents
	b := state.Board

	b.Flames.Tick(b)

	oldPos := fillPositions(b)
	destPos := fillDestPos(b, moves)
	destPos = fixDestPos(b, destPos)

	dependency, roots, rootCount := resolveDependencies(b, destPos)
	ouroboros := rootCount == 0
	order := moveOrder(dependency, roots, rootCount)

	for _, i := range order {
		applyAgentMove(b, moves, destPos, i, ouroboros)
	}

	resetBombFlags(b)
	bombDest := fillBombDestPos(b)

	haltBlockedKickedBombs(b, moves, oldPos, bombDest)
	moveBombs(b, moves, bombDest)

	tickBombs(b)

	b.Tick++

	if aliveBefore != state.AliveAgents {
		state.CheckTerminalState()
	}
}

func applyAgentMove(b *game.Board, moves [game.AgentCount]game.Move, dest [game.AgentCount]game.Position, i int, ouroboros bool) {
	agent := &b.Agents[i]
	m := moves[i]

	if agent.Dead || m == game.Idle {
		return
	}
	if m == game.Bomb {
		tryPutBomb(b, i, false, true)
		return
	}

	origin := agent.Pos
	desired := dest[i]
	if isOutOfBounds(desired) {
		return
	}

	target := b.ItemAt(desired)
	if ouroboros {
		if idx := b.Bombs.IndexAt(desired); idx != -1 {
			target = game.BombItem
		}
	}

	vacate := func() {
		if b.ItemAt(origin) == game.AgentItem(i) {
			if b.HasBomb(origin) {
				b.SetItem(origin, game.BombItem)
			} else {
				b.SetItem(origin, game.Passage)
			}
		}
	}

	if game.IsFlame(target) {
		b.Kill(i)
		vacate()
		return
	}
	if hasDPCollision(b, dest, i) {
		return
	}

	if game.IsPowerUp(target) {
		consumePowerUp(b, i, target)
		target = game.Passage
	}

	switch {
	case target == game.Passage || (ouroboros && game.IsAgent(target)):
		vacate()
		b.SetItem(desired, game.AgentItem(i))
		agent.Pos = desired

	case target == game.BombItem && agent.CanKick:
		vacate()
		b.SetItem(desired, game.AgentItem(i))
		agent.Pos = desired
		if idx := b.Bombs.IndexAt(desired); idx != -1 {
			bomb := b.Bombs.At(idx)
			bomb.SetDirection(game.Direction(m))
			b.Bombs.Set(idx, bomb)
		}

	case target == game.BombItem && !agent.CanKick:
		vacate()
		b.SetItem(desired, game.AgentItem(i))
		agent.Pos = desired
	}
}

// haltBlockedKickedBombs stops any bomb whose desired move would run it
// into a wall, wood, power-up, or another agent, then reverts the move
// chain behind any kick that tried to cause it.
func haltBlockedKickedBombs(b *game.Board, moves [game.AgentCount]game.Move, oldPos [game.AgentCount]game.Position, bombDest [game.MaxBombs]game.Position) {
	for i := 0; i < b.Bombs.Len(); i++ {
		bomb := b.Bombs.At(i)
		target := bomb.Destination()

		blocked := isOutOfBounds(target) ||
			game.IsStaticMovBlock(b.ItemAt(target)) ||
			game.IsAgent(b.ItemAt(target))
		if !blocked {
			continue
		}

		bomb.SetDirection(game.DirIdle)
		b.Bombs.Set(i, bomb)

		agentID := b.GetAgentAt(bomb.Pos())
		if agentID > -1 &&
			moves[agentID] != game.Idle && moves[agentID] != game.Bomb &&
			b.Agents[agentID].Pos != oldPos[agentID] {

			agentBombChainReversion(b, moves, bombDest, agentID)
			if b.GetAgentAt(bomb.Pos()) == -1 {
				b.SetItem(bomb.Pos(), game.BombItem)
			}
		}
	}
}

func moveBombs(b *game.Board, moves [game.AgentCount]game.Move, bombDest [game.MaxBombs]game.Position) {
	for i := 0; i < b.Bombs.Len(); i++ {
		bomb := b.Bombs.At(i)

		if bomb.Direction() == game.DirIdle {
			if hasBombCollision(b, bomb, i) {
				resolveBombCollision(b, moves, bombDest, i)
				continue
			}
		}

		origin := bomb.Pos()
		target := bomb.Destination()

		if isOutOfBounds(target) || game.IsStaticMovBlock(b.ItemAt(target)) {
			bomb.SetDirection(game.DirIdle)
			b.Bombs.Set(i, bomb)
			continue
		}

		if hasBombCollision(b, bomb, i) {
			resolveBombCollision(b, moves, bombDest, i)
			continue
		}

		targetItem := b.ItemAt(target)
		bomb.SetPos(target)
		b.Bombs.Set(i, bomb)

		if !b.HasBomb(origin) && b.ItemAt(origin) == game.BombItem {
			b.SetItem(origin, game.Passage)
		}

		switch {
		case game.IsWalkable(targetItem):
			b.SetItem(target, game.BombItem)
		case game.IsFlame(targetItem):
			if idx := b.Bombs.IndexAt(target); idx != -1 {
				b.ExplodeBombAt(idx)
			}
		}
	}
}

// tryPutBomb plants a bomb under agent i if they have not exceeded their
// bomb allowance, leaving it hidden beneath the agent's own cell unless
// setItem requests otherwise (used when placing a bomb outside of a normal
// tick, e.g. during state reconstruction). duringStep must be true when
// called from within Step: the bomb's timer needs one extra tick of life
// because tickBombs will decrement every bomb, including this brand new
// one, before the tick is over.
func tryPutBomb(b *game.Board, agentID int, setItem, duringStep bool) bool {
	agent := &b.Agents[agentID]
	if agent.BombCount >= agent.MaxBombCount {
		return false
	}
	if b.HasBomb(agent.Pos) {
		return false
	}
	lifetime := game.BombLifetime
	if duringStep {
		lifetime++
	}
	b.PutBomb(agent.Pos, agentID, agent.BombStrength, lifetime, setItem)
	return true
}

// TryPutBomb is the public entry point agents use to plant a bomb outside
// of Step (e.g. from tests or tooling), where no extra tick of lifetime is
// needed.
func TryPutBomb(b *game.Board, agentID int) bool {
	return tryPutBomb(b, agentID, true, false)
}
