package observation

import "github.com/pommergo/pommergo/game"

// VirtualStep merges obs into state in place, approximating the full
// board the observing agent would see if sight were not limited: visible
// cells overwrite state outright, fogged cells keep whatever state
// already believed was there (aged agents and bombs are cleared unless
// keepAgents/keepBombs ask to keep them around). It expects state to
// already be at tick obs.Tick-1; warn, if given, receives a message when
// that does not hold, instead of silently trusting a caller that skipped
// a tick.
func VirtualStep(obs Observation, state *game.State, keepAgents, keepBombs bool, warn ...Warner) {
	w := firstWarner(warn)
	if state.Tick != obs.Tick-1 {
		w.Warn("observation: VirtualStep given a state that is not exactly one tick behind its observation")
	}
	state.Tick = obs.Tick

	self := obs.Agents[obs.AgentID]

	alive := 0
	for i := 0; i < game.AgentCount; i++ {
		obsAgent := obs.Agents[i]
		stateAgent := &state.Agents[i]

		stateAgent.Dead = obsAgent.Dead
		stateAgent.Team = obsAgent.Team
		if !stateAgent.Dead {
			alive++
		}

		switch {
		case obsAgent.Visible:
			stateAgent.Visible = true
			stateAgent.Pos = obsAgent.Pos
		case !keepAgents || !obs.Params.AgentPartialMapView ||
			game.ChebyshevDistance(self.Pos, stateAgent.Pos) <= obs.Params.AgentViewSize:
			stateAgent.Visible = false
			stateAgent.Pos = game.Position{X: -i, Y: -1}
		}

		if obsAgent.StatsVisible {
			stateAgent.StatsVisible = true
			stateAgent.BombCount = obsAgent.BombCount
			stateAgent.BombStrength = obsAgent.BombStrength
			stateAgent.MaxBombCount = obsAgent.MaxBombCount
			stateAgent.CanKick = obsAgent.CanKick
		} else if !keepAgents {
			stateAgent.StatsVisible = false
		}
	}

	for y := 0; y < game.BoardSize; y++ {
		for x := 0; x < game.BoardSize; x++ {
			pos := game.Position{X: x, Y: y}
			item := obs.Items[y][x]

			if item != game.Fog {
				state.SetItem(pos, item)
				continue
			}

			old := state.ItemAt(pos)
			if old == game.Fog {
				continue
			}

			if game.IsAgent(old) {
				id := int(old - game.Agent0)
				if !keepAgents || obs.Agents[id].Visible {
					old = game.Passage
				}
			}
			if old == game.BombItem && !keepBombs {
				old = game.Passage
			}
			state.SetItem(pos, old)
		}
	}

	state.AliveAgents = alive

	state.Flames.Tick(state.Board)

	if keepBombs {
		mergeObservedBombs(state, obs)
	} else {
		state.Bombs.Reset()
		for _, b := range obs.Bombs {
			state.Bombs.Add(b)
		}
	}

	state.CheckTerminalState()
}

// firstWarner returns the caller-supplied Warner, or a no-op if none was
// given.
func firstWarner(warn []Warner) Warner {
	if len(warn) > 0 && warn[0] != nil {
		return warn[0]
	}
	return noopWarner{}
}

// mergeObservedBombs folds obs.Bombs into state's existing bomb queue.
// Bombs currently visible are copied in directly, overwriting whatever
// state already believed about them. A bomb state already knew about
// that is not in obs either moved or detonated out of view (if its cell
// is now visible and empty) or is still ticking down somewhere in the
// fog: its time left is decremented and, once it reaches zero while
// still hidden, it is exploded via ExplodeBombAt just as the engine
// would have done in view.
func mergeObservedBombs(state *game.State, obs Observation) {
	seen := make(map[game.Position]bool, len(obs.Bombs))
	for _, b := range obs.Bombs {
		seen[b.Pos()] = true
		if i := state.Bombs.IndexAt(b.Pos()); i != -1 {
			state.Bombs.Set(i, b)
		} else {
			state.Bombs.Add(b)
		}
	}

	for _, old := range state.Bombs.Slice() {
		if seen[old.Pos()] {
			continue
		}

		i := state.Bombs.IndexAt(old.Pos())
		if i == -1 {
			continue
		}

		if obs.Items[old.Y()][old.X()] != game.Fog {
			// the cell is actually observed and holds no bomb anymore.
			state.Bombs.RemoveAt(i)
			continue
		}

		b := state.Bombs.RemoveAt(i)
		b.ReduceTimeLeft()

		if b.TimeLeft() == 0 {
			state.Bombs.Add(b)
			state.ExplodeBombAt(state.Bombs.IndexAt(b.Pos()))
			continue
		}

		if b.Direction() != game.DirIdle {
			dest := b.Destination()
			if game.InBounds(dest) && obs.Items[dest.Y][dest.X] == game.Fog {
				b.SetPos(dest)
			} else {
				b.SetDirection(game.DirIdle)
			}
		}
		state.Bombs.Add(b)
	}
}
