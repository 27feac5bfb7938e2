package bridge

import (
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pommergo/pommergo/game"
	"github.com/pommergo/pommergo/observation"
)

// WireAction is the reply a remote agent sends for one tick: either a
// move/direction code (0-4) or Bomb (5), matching game.Move's values.
type WireAction struct {
	AgentID int `json:"agent_id"`
	Action  int `json:"action"`
}

// RemoteAgent implements agent.Agent by forwarding each Observation to a
// websocket peer as a WireState and waiting for a WireAction reply. It is
// the live equivalent of bridge.Session's request/response pair, used when
// the far side of the bridge is a real network connection rather than a
// struct the caller already holds.
type RemoteAgent struct {
	id      int
	conn    *websocket.Conn
	timeout time.Duration
}

// NewRemoteAgent wraps an already-upgraded websocket connection as an
// Agent for agentID. timeout bounds how long Act waits for a reply; zero
// means wait indefinitely.
func NewRemoteAgent(agentID int, conn *websocket.Conn, timeout time.Duration) *RemoteAgent {
	return &RemoteAgent{id: agentID, conn: conn, timeout: timeout}
}

// Act sends obs to the peer and blocks for its WireAction reply.
func (r *RemoteAgent) Act(obs *observation.Observation) game.Move {
	ws, err := Encode(obs)
	if err != nil {
		return game.Idle
	}

	if r.timeout > 0 {
		_ = r.conn.SetWriteDeadline(time.Now().Add(r.timeout))
	}
	if err := r.conn.WriteJSON(ws); err != nil {
		return game.Idle
	}

	if r.timeout > 0 {
		_ = r.conn.SetReadDeadline(time.Now().Add(r.timeout))
	}
	var act WireAction
	if err := r.conn.ReadJSON(&act); err != nil {
		return game.Idle
	}
	if act.Action < int(game.Idle) || act.Action > int(game.Bomb) {
		return game.Idle
	}
	return game.Move(act.Action)
}

// Close closes the underlying connection.
func (r *RemoteAgent) Close() error {
	return r.conn.Close()
}

func readHandshake(conn *websocket.Conn) (int, error) {
	var hello struct {
		AgentID int `json:"agent_id"`
	}
	if err := conn.ReadJSON(&hello); err != nil {
		return 0, fmt.Errorf("bridge: handshake: %w", err)
	}
	if hello.AgentID < 0 || hello.AgentID >= game.AgentCount {
		return 0, fmt.Errorf("bridge: handshake: agent_id %d out of range", hello.AgentID)
	}
	return hello.AgentID, nil
}

