package game

// AgentInfo holds everything known about one agent: its public position
// and liveness, and the private loadout stats that an observation may
// choose to hide from opponents.
type AgentInfo struct {
	Team    int
	Dead    bool
	Visible bool
	Pos     Position

	StatsVisible bool
	BombCount    int
	MaxBombCount int
	BombStrength int
	CanKick      bool

	Won bool
}

// NewAgentInfo returns a freshly spawned agent at pos with default stats.
func NewAgentInfo(pos Position) AgentInfo {
	return AgentInfo{
		Visible:      true,
		StatsVisible: true,
		Pos:          pos,
		MaxBombCount: 1,
		BombStrength: DefaultBombStrength,
	}
}

// IsEnemy reports whether other is an opponent of a: every other agent is
// when a has no team (team 0), otherwise any agent on a different team.
func (a AgentInfo) IsEnemy(other AgentInfo) bool {
	return a.Team == 0 || other.Team != a.Team
}
