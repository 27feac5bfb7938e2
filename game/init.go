package game

import "math/rand"

// InitConfig controls how a fresh board is generated.
type InitConfig struct {
	Mode              GameMode
	BoardSeed         int64
	AgentPositionSeed int64 // -1 disables the agent-corner shuffle
	NumRigid          int
	NumWood           int
	NumPowerUps       int
	Padding           int
	BreathingRoom     int
}

// DefaultInitConfig mirrors the original's default board generation
// parameters: a padding-1 border, a breathing room of size 3 around each
// agent, and a board otherwise packed with rigid walls, wood, and
// power-ups.
func DefaultInitConfig() InitConfig {
	return InitConfig{
		Mode:              FFA,
		BoardSeed:         0x1337,
		AgentPositionSeed: -1,
		NumRigid:          36,
		NumWood:           36,
		NumPowerUps:       20,
		Padding:           1,
		BreathingRoom:     3,
	}
}

func invert(pos int) int { return BoardSize - 1 - pos }

// selectRandomInPlace swaps out and returns a uniformly random element from
// arr, moving the discarded arr[0] into the vacated slot so a
// caller can repeat the call with an incremented start pointer to draw a
// sequence of unique elements.
func selectRandomInPlace(arr []Position, rng *rand.Rand) Position {
	idx := rng.Intn(len(arr))
	picked := arr[idx]
	arr[idx] = arr[0]
	return picked
}

// InitBoard builds a fresh board per cfg: agents placed in the four
// corners (optionally shuffled), a breathing room carved around each, a
// wall of wood between rooms, and the remaining free cells randomly filled
// with rigid walls, wood, and power-ups hidden inside that wood.
func InitBoard(cfg InitConfig) *Board {
	b := NewBoard()
	for i := range b.Items {
		for j := range b.Items[i] {
			b.Items[i][j] = Passage
		}
	}

	order := [AgentCount]int{0, 1, 2, 3}
	if cfg.AgentPositionSeed != -1 {
		rng := rand.New(rand.NewSource(cfg.AgentPositionSeed))
		rng.Shuffle(AgentCount, func(i, j int) { order[i], order[j] = order[j], order[i] })
	}
	corners := [AgentCount]Position{
		{cfg.Padding, cfg.Padding},
		{BoardSize - 1 - cfg.Padding, cfg.Padding},
		{BoardSize - 1 - cfg.Padding, BoardSize - 1 - cfg.Padding},
		{cfg.Padding, BoardSize - 1 - cfg.Padding},
	}
	for slot, id := range order {
		b.PutAgent(id, corners[slot])
	}
	setTeams(b, cfg.Mode)

	rng := rand.New(rand.NewSource(cfg.BoardSeed))

	numWood := cfg.NumWood
	numRigid := cfg.NumRigid
	numPowerUps := cfg.NumPowerUps

	var woodCoords []Position
	var freeCoords []Position

	for i := 0; i < BoardSize; i++ {
		for j := 0; j < BoardSize; j++ {
			norm := -1
			if i == cfg.Padding || invert(i) == cfg.Padding {
				norm = min(j, invert(j))
			} else if j == cfg.Padding || invert(j) == cfg.Padding {
				norm = min(i, invert(i))
			}

			if norm != -1 {
				if norm >= cfg.Padding && norm <= cfg.BreathingRoom {
					continue
				}
				if norm > cfg.Padding {
					b.Items[i][j] = Wood
					woodCoords = append(woodCoords, Position{j, i})
					numWood--
					continue
				}
			}
			freeCoords = append(freeCoords, Position{j, i})
		}
	}

	idx := 0
	for numRigid > 0 && idx < len(freeCoords) {
		pos := selectRandomInPlace(freeCoords[idx:], rng)
		idx++
		b.SetItem(pos, Rigid)
		numRigid--
	}
	for numWood > 0 && idx < len(freeCoords) {
		pos := selectRandomInPlace(freeCoords[idx:], rng)
		idx++
		b.SetItem(pos, Wood)
		woodCoords = append(woodCoords, pos)
		numWood--
	}

	widx := 0
	for numPowerUps > 0 && widx < len(woodCoords) {
		pos := selectRandomInPlace(woodCoords[widx:], rng)
		widx++
		flag := 1 + rng.Intn(3)
		b.SetItem(pos, Wood+Item(flag))
		numPowerUps--
	}

	return b
}

// setTeams assigns team ids to agents based on the game mode: FFA puts
// every agent on its own team (no teammates), TwoTeams and TeamRadio pair
// opposite corners together.
func setTeams(b *Board, mode GameMode) {
	switch mode {
	case FFA:
		for i := range b.Agents {
			b.Agents[i].Team = 0
		}
	case TwoTeams, TeamRadio:
		b.Agents[0].Team, b.Agents[2].Team = 1, 1
		b.Agents[1].Team, b.Agents[3].Team = 2, 2
	}
}
