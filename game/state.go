package game

// State is a Board plus the terminal-outcome bookkeeping a full game
// tracks across ticks: whether play has ended, whether it ended in a
// draw, and which team or agent, if any, won.
type State struct {
	*Board

	Finished     bool
	IsDraw       bool
	WinningTeam  int
	WinningAgent int
}

// NewState returns a fresh, non-terminal state wrapping board.
func NewState(board *Board) *State {
	return &State{Board: board, WinningAgent: -1}
}

// Clone returns a deep copy of s; mutating the copy never affects s.
func (s *State) Clone() *State {
	b := &Board{
		Items:       s.Items,
		Agents:      s.Agents,
		Bombs:       NewBombQueue(),
		Flames:      NewFlameQueue(),
		AliveAgents: s.AliveAgents,
		Tick:        s.Tick,
	}
	for _, bomb := range s.Bombs.Slice() {
		b.Bombs.r.PushBack(bomb)
	}
	for i := 0; i < s.Flames.Len(); i++ {
		b.Flames.r.PushBack(s.Flames.At(i))
	}
	b.Flames.cur = s.Flames.cur
	return &State{
		Board:        b,
		Finished:     s.Finished,
		IsDraw:       s.IsDraw,
		WinningTeam:  s.WinningTeam,
		WinningAgent: s.WinningAgent,
	}
}

// GetWinningTeam returns the team id that currently holds every alive
// agent, or 0 if the alive agents are split across teams (or unteamed).
func (s *State) GetWinningTeam() int {
	if s.AliveAgents == 0 {
		return 0
	}
	candidate := 0
	for i := 0; i < AgentCount; i++ {
		info := s.Agents[i]
		if info.Dead {
			continue
		}
		if s.AliveAgents == 1 {
			return info.Team
		}
		if info.Team == 0 {
			return 0
		}
		switch candidate {
		case 0:
			candidate = info.Team
		case info.Team:
		default:
			return 0
		}
	}
	return candidate
}

// CheckTerminalState updates Finished, IsDraw, WinningTeam, WinningAgent
// and each agent's Won flag to reflect the current AliveAgents count. It
// should be called whenever the number of alive agents changes.
func (s *State) CheckTerminalState() {
	winningTeam := 0

	switch s.AliveAgents {
	case 0:
		s.Finished = true
		s.IsDraw = true
		for i := range s.Agents {
			s.Agents[i].Won = false
		}
	case 1:
		s.Finished = true
		s.IsDraw = false
		s.WinningAgent = -1
		for i := range s.Agents {
			info := &s.Agents[i]
			if info.Dead {
				info.Won = false
				continue
			}
			info.Won = true
			winningTeam = info.Team
			if winningTeam == 0 {
				s.WinningAgent = i
			}
		}
	default:
		winningTeam = s.GetWinningTeam()
	}

	if winningTeam != 0 {
		s.Finished = true
		s.IsDraw = false
		for i := range s.Agents {
			s.Agents[i].Won = s.Agents[i].Team == winningTeam
		}
	}

	s.WinningTeam = winningTeam
}
