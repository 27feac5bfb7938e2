package bridge

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Server upgrades incoming HTTP connections to websockets, reads each
// client's handshake (its agent_id), and hands the resulting RemoteAgent
// to OnConnect. A game driver (environment.Environment) is expected to
// hold onto the RemoteAgent and call Act on it once per tick.
type Server struct {
	Log       *slog.Logger
	Timeout   time.Duration
	OnConnect func(agentID int, a *RemoteAgent)

	upgrader websocket.Upgrader
}

// NewServer returns a Server ready to register with an http.ServeMux.
// onConnect is called once per accepted connection, after a valid
// handshake, with the RemoteAgent a caller should wire into an
// environment.Environment in place of a local agent.Agent.
func NewServer(log *slog.Logger, timeout time.Duration, onConnect func(agentID int, a *RemoteAgent)) *Server {
	return &Server{
		Log:       log,
		Timeout:   timeout,
		OnConnect: onConnect,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns an http.HandlerFunc suitable for http.Handle.
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.Log.Warn("bridge: upgrade failed", "err", err)
			return
		}

		if s.Timeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.Timeout))
		}
		agentID, err := readHandshake(conn)
		if err != nil {
			s.Log.Warn("bridge: rejecting connection", "err", err)
			_ = conn.Close()
			return
		}

		s.Log.Info("bridge: agent connected", "agent_id", agentID, "remote", r.RemoteAddr)
		agent := NewRemoteAgent(agentID, conn, s.Timeout)
		if s.OnConnect != nil {
			s.OnConnect(agentID, agent)
		}
	}
}

// ServeValidated is a convenience http.HandlerFunc for a request/response
// bridge that does not hold a persistent websocket: it decodes and
// schema-validates one WireState body per POST and, via decodeAndApply,
// reports input errors with context rather than guessing at intent.
func ServeValidated(decodeAndApply func(ws WireState) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "bridge: POST required", http.StatusMethodNotAllowed)
			return
		}
		buf, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "bridge: read body: "+err.Error(), http.StatusBadRequest)
			return
		}
		ws, err := DecodeValidated(buf)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := decodeAndApply(ws); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
