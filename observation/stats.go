package observation

import "github.com/pommergo/pommergo/game"

// Warner receives a message when a heuristic inference fails and decides
// whether it is still worth emitting (callers typically pass a bounded
// warner that stops logging after a handful of repeats).
type Warner interface {
	Warn(msg string)
}

// noopWarner discards every warning; used when a caller does not care to
// be told about TrackStats heuristic misses.
type noopWarner struct{}

func (noopWarner) Warn(string) {}

// TrackStats infers, for every agent whose loadout stats are hidden in
// obs, what changed since oldBoard: a power-up picked up this tick, a
// kick performed this tick, and which agent owns which currently-visible
// bomb. Pickups and kicks are only inferred for agents whose stats are
// hidden; for every agent, a dead agent's loadout is copied from oldBoard
// and an agent standing on a visible bomb takes that bomb's strength and
// is recorded as its owner. Once it
// has done what it can, every agent's StatsVisible is set so that these
// inferred values read the same as confirmed ones downstream.
func TrackStats(obs *Observation, oldBoard *game.Board, warn Warner) {
	if warn == nil {
		warn = noopWarner{}
	}

	if obs.Tick == 0 {
		return
	}
	allVisible := true
	for i := range obs.Agents {
		allVisible = allVisible && obs.Agents[i].StatsVisible
	}
	if allVisible {
		return
	}

	for i := range obs.Agents {
		info := &obs.Agents[i]
		oldInfo := oldBoard.Agents[i]

		if info.Dead {
			info.MaxBombCount = oldInfo.MaxBombCount
			info.BombStrength = oldInfo.BombStrength
			info.CanKick = oldInfo.CanKick
			info.BombCount = 0
			continue
		}

		if !info.StatsVisible {
			info.BombCount = 0
			info.MaxBombCount = oldInfo.MaxBombCount
			info.BombStrength = oldInfo.BombStrength
			info.CanKick = oldInfo.CanKick

			if info.Visible {
				switch oldBoard.ItemAt(info.Pos) {
				case game.ExtraBomb:
					info.MaxBombCount = oldInfo.MaxBombCount + 1
				case game.IncrRange:
					info.BombStrength = oldInfo.BombStrength + 1
				case game.Kick:
					info.CanKick = true
				}

				if !info.CanKick && hasKickedBomb(oldBoard, obs, i) {
					info.CanKick = true
				}
			}
		}

		if idx, ok := bombIndexAt(obs.Bombs, info.Pos); ok {
			info.BombStrength = obs.Bombs[idx].Strength()
			obs.Bombs[idx].SetOwner(i)
		}
	}

	for i := range obs.Bombs {
		b := &obs.Bombs[i]
		if owner := b.Owner(); owner >= 0 && owner < game.AgentCount {
			countBombIfHidden(&obs.Agents[owner])
			continue
		}

		old, ok := backtrackBomb(oldBoard, obs, *b)
		if !ok {
			warn.Warn("observation: could not backtrack bomb owner for stats inference")
			continue
		}
		if owner := old.Owner(); owner >= 0 && owner < game.AgentCount {
			b.SetOwner(owner)
			countBombIfHidden(&obs.Agents[owner])
		}
	}

	for i := range obs.Agents {
		obs.Agents[i].StatsVisible = true
	}
}

// countBombIfHidden charges one active bomb against info, raising its
// known max bomb count to match if the charge would otherwise exceed it
// (a sign a power-up pickup was missed). It only applies while info's
// stats are still unconfirmed; a fully visible agent's BombCount is
// already authoritative.
func countBombIfHidden(info *game.AgentInfo) {
	if info.StatsVisible {
		return
	}
	info.BombCount++
	if info.BombCount > info.MaxBombCount {
		info.MaxBombCount = info.BombCount
	}
}

// hasKickedBomb reports whether agentID's movement this tick looks like
// it kicked a bomb one cell further along its own line of travel: the
// agent walked into a cell, and the cell beyond it in the same direction
// now holds a bomb that was not already rolling that way.
func hasKickedBomb(oldBoard *game.Board, obs *Observation, agentID int) bool {
	info := obs.Agents[agentID]
	oldInfo := oldBoard.Agents[agentID]

	if !info.Visible || !oldInfo.Visible || info.Pos == oldInfo.Pos {
		return false
	}

	movement := info.Pos.Sub(oldInfo.Pos)
	kicked := info.Pos.Add(movement)
	if !game.InBounds(kicked) {
		return false
	}
	if obs.Items[kicked.Y][kicked.X] != game.BombItem {
		return false
	}

	bomb, ok := bombAt(obs.Bombs, kicked)
	if !ok {
		return false
	}
	old, ok := backtrackBomb(oldBoard, obs, bomb)
	if !ok {
		return false
	}
	return bomb.Direction() != old.Direction()
}

// backtrackBomb searches oldBoard for the bomb that became b, chasing a
// chain of same-tick kicks up to AgentCount cells deep. A bomb kicked
// this tick is not where it used to be, so the simple case (a bomb
// already sitting at b's origin) is tried first before falling back to
// the recursive search.
func backtrackBomb(oldBoard *game.Board, obs *Observation, b game.Bomb) (game.Bomb, bool) {
	origin := game.OriginOf(b.Pos(), game.Move(b.Direction()))
	if old, ok := oldBoard.GetBomb(origin); ok {
		return old, true
	}
	return backtrackFrom(oldBoard, obs, origin, b.Direction(), b.TimeLeft()+1, b.Strength(), 0)
}

// backtrackFrom looks for the bomb or agent that put a bomb at pos one
// tick ago, travelling in dir, with the given timer and strength. If an
// agent stands at pos in obs and that same agent stood one cell further
// back along dir in oldBoard, the bomb it is now standing next to may
// have been kicked sideways into pos by that agent's movement; the
// search then recurses into the three other directions looking for
// where that kicked bomb actually came from. It never recurses deeper
// than one hop per agent on the board.
func backtrackFrom(oldBoard *game.Board, obs *Observation, pos game.Position, dir game.Direction, wantTime, wantStrength, depth int) (game.Bomb, bool) {
	if depth >= game.AgentCount || !game.InBounds(pos) {
		return game.Bomb(0), false
	}

	if old, ok := oldBoard.GetBomb(pos); ok {
		if old.Strength() == wantStrength && old.TimeLeft() == wantTime && old.Direction() == dir {
			return old, true
		}
		return game.Bomb(0), false
	}

	item := obs.Items[pos.Y][pos.X]
	if !game.IsAgent(item) {
		return game.Bomb(0), false
	}
	if oldBoard.ItemAt(game.OriginOf(pos, game.Move(dir))) != item {
		return game.Bomb(0), false
	}

	for _, d := range [...]game.Direction{game.DirUp, game.DirDown, game.DirLeft, game.DirRight} {
		if d == dir {
			continue
		}
		next := game.OriginOf(pos, game.Move(d))
		if old, ok := backtrackFrom(oldBoard, obs, next, d, wantTime, wantStrength, depth+1); ok {
			return old, true
		}
	}
	return game.Bomb(0), false
}

// bombIndexAt returns the index of the bomb in bombs sitting at pos, or
// false if none does.
func bombIndexAt(bombs []game.Bomb, pos game.Position) (int, bool) {
	for i, b := range bombs {
		if b.Pos() == pos {
			return i, true
		}
	}
	return 0, false
}

func bombAt(bombs []game.Bomb, pos game.Position) (game.Bomb, bool) {
	i, ok := bombIndexAt(bombs, pos)
	if !ok {
		return game.Bomb(0), false
	}
	return bombs[i], true
}
