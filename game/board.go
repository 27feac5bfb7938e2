package game

// Board-wide constants, ported directly from the original's tunables.
const (
	BoardSize           = 11
	AgentCount          = 4
	BombLifetime        = 9
	FlameLifetime       = 3
	MaxBombsPerAgent    = 5
	DefaultBombStrength = 1
)

// Board is the mutable playing field: a grid of items, the agents standing
// on it, and the live bombs and flames affecting it.
type Board struct {
	Items  [BoardSize][BoardSize]Item
	Agents [AgentCount]AgentInfo
	Bombs  *BombQueue
	Flames *FlameQueue

	AliveAgents int
	Tick        int
}

// NewBoard returns an empty board with no agents placed.
func NewBoard() *Board {
	b := &Board{Bombs: NewBombQueue(), Flames: NewFlameQueue(), AliveAgents: AgentCount}
	for i := range b.Agents {
		b.Agents[i] = NewAgentInfo(Position{})
	}
	return b
}

// Clear resets every cell to item and empties the bomb and flame queues.
// Agent stats and positions are left untouched.
func (b *Board) Clear(item Item) {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			b.Items[y][x] = item
		}
	}
	b.Bombs.Reset()
	b.Flames.Reset()
}

// InBounds reports whether p sits on the board.
func InBounds(p Position) bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

func (b *Board) ItemAt(p Position) Item    { return b.Items[p.Y][p.X] }
func (b *Board) SetItem(p Position, v Item) { b.Items[p.Y][p.X] = v }

// PutAgent places agent id at pos, overwriting the board cell.
func (b *Board) PutAgent(id int, pos Position) {
	b.Agents[id].Pos = pos
	b.Agents[id].Dead = false
	b.SetItem(pos, AgentItem(id))
}

// PutAgentsInCorners places the four agents in the board's corners, in the
// original's fixed clockwise order, each offset inward by padding cells.
func (b *Board) PutAgentsInCorners(padding int) {
	corners := [AgentCount]Position{
		{padding, padding},
		{BoardSize - 1 - padding, padding},
		{BoardSize - 1 - padding, BoardSize - 1 - padding},
		{padding, BoardSize - 1 - padding},
	}
	for id, pos := range corners {
		b.PutAgent(id, pos)
	}
}

// GetAgentAt returns the id of the agent occupying pos, or -1.
func (b *Board) GetAgentAt(pos Position) int {
	cell := b.ItemAt(pos)
	if !IsAgent(cell) {
		return -1
	}
	return int(cell - Agent0)
}

// PutBomb adds a bomb owned by owner at pos with the given strength and
// time left, incrementing the owner's active bomb count. If setItem is
// true the board cell is also overwritten with BombItem (it is left alone
// when the bomb is hidden beneath the agent that just planted it).
func (b *Board) PutBomb(pos Position, owner, strength, timeLeft int, setItem bool) {
	b.Bombs.Add(NewBomb(pos, owner, strength, timeLeft, DirIdle))
	if owner >= 0 && owner < AgentCount {
		b.Agents[owner].BombCount++
	}
	if setItem {
		b.SetItem(pos, BombItem)
	}
}

// GetBomb returns the bomb at pos and whether one exists there.
func (b *Board) GetBomb(pos Position) (Bomb, bool) {
	return b.Bombs.At2(pos)
}

// HasBomb reports whether pos holds a bomb.
func (b *Board) HasBomb(pos Position) bool {
	return b.Bombs.IndexAt(pos) != -1
}

// Kill marks agent id as dead, decrementing AliveAgents exactly once.
func (b *Board) Kill(id int) {
	if !b.Agents[id].Dead {
		b.Agents[id].Dead = true
		b.AliveAgents--
	}
}

// explodeBombAt removes the bomb at queue index i and spawns its flames,
// which may in turn chain into further explosions.
func (b *Board) explodeBombAt(i int) {
	bomb := b.Bombs.RemoveAt(i)
	b.Flames.Spawn(b, bomb.Pos(), bomb.Strength(), b.Tick)
	b.eventBombExploded(bomb)
}

// eventBombExploded applies the bookkeeping side effect of a bomb going
// off: the owner's active bomb count drops by one, if their stats are
// being tracked at all.
func (b *Board) eventBombExploded(bomb Bomb) {
	id := bomb.Owner()
	if id >= 0 && id < AgentCount && b.Agents[id].StatsVisible {
		b.Agents[id].BombCount--
	}
}

// ExplodeBombAt is the public entry point used by the rules package once a
// bomb's timer reaches zero.
func (b *Board) ExplodeBombAt(i int) {
	b.explodeBombAt(i)
}
