package bridge

import (
	"fmt"
	"sync"

	"github.com/pommergo/pommergo/agent"
	"github.com/pommergo/pommergo/game"
	"github.com/pommergo/pommergo/observation"
)

// Session is an explicit handle for one bridged game: the canonical
// state, each agent's most recent observation, and the agents themselves.
// Nothing here is a package-level global, so a process can host several
// independent Sessions (e.g. one per websocket connection) safely.
type Session struct {
	mu     sync.Mutex
	State  *game.State
	Obs    [game.AgentCount]observation.Observation
	Agents [game.AgentCount]agent.Agent
	Params observation.Parameters
	Mode   game.GameMode
}

// NewSession wraps state and agents into a Session using the given
// observation parameters.
func NewSession(state *game.State, agents [game.AgentCount]agent.Agent, params observation.Parameters, mode game.GameMode) *Session {
	s := &Session{State: state, Agents: agents, Params: params, Mode: mode}
	s.refreshObservations()
	return s
}

func (s *Session) refreshObservations() {
	for i := 0; i < game.AgentCount; i++ {
		s.Obs[i] = observation.Get(s.State, i, s.Params)
	}
}

// EncodeFor returns the wire envelope for agent i's current observation.
func (s *Session) EncodeFor(i int) (WireState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= game.AgentCount {
		return WireState{}, fmt.Errorf("bridge: agent index %d out of range", i)
	}
	ws, err := Encode(&s.Obs[i])
	if err != nil {
		return WireState{}, err
	}
	ws.GameType = gameModeToPy(s.Mode)
	return ws, nil
}

// ApplyWireState replaces the session's canonical state with the decoded
// contents of ws, then refreshes every agent's observation. Used when the
// remote side of the bridge is the authority on state, e.g. during replay.
func (s *Session) ApplyWireState(ws WireState) error {
	state, err := Decode(ws)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = state
	s.refreshObservations()
	return nil
}
