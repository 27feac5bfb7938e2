package bridge

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pommergo/pommergo/game"
	"github.com/pommergo/pommergo/observation"
)

func dialerURL(httpURL string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http")
}

func TestServer_HandshakeRegistersRemoteAgent(t *testing.T) {
	connected := make(chan int, 1)
	srv := NewServer(testLogger(), time.Second, func(agentID int, a *RemoteAgent) {
		connected <- agentID
	})

	httpSrv := httptest.NewServer(http.HandlerFunc(srv.Handler()))
	t.Cleanup(httpSrv.Close)

	conn, _, err := websocket.DefaultDialer.Dial(dialerURL(httpSrv.URL), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := conn.WriteJSON(map[string]int{"agent_id": 2}); err != nil {
		t.Fatalf("write handshake: %v", err)
	}

	select {
	case id := <-connected:
		if id != 2 {
			t.Fatalf("agent id = %d, want 2", id)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for OnConnect")
	}
}

func TestServer_RejectsOutOfRangeAgentID(t *testing.T) {
	srv := NewServer(testLogger(), time.Second, func(int, *RemoteAgent) {
		t.Fatalf("OnConnect should not be called for a bad handshake")
	})

	httpSrv := httptest.NewServer(http.HandlerFunc(srv.Handler()))
	t.Cleanup(httpSrv.Close)

	conn, _, err := websocket.DefaultDialer.Dial(dialerURL(httpSrv.URL), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := conn.WriteJSON(map[string]int{"agent_id": 99}); err != nil {
		t.Fatalf("write handshake: %v", err)
	}

	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected server to close the connection after a bad handshake")
	}
}

func TestRemoteAgent_ActRoundTripsThroughPeer(t *testing.T) {
	connected := make(chan *RemoteAgent, 1)
	srv := NewServer(testLogger(), 2*time.Second, func(agentID int, a *RemoteAgent) {
		connected <- a
	})

	httpSrv := httptest.NewServer(http.HandlerFunc(srv.Handler()))
	t.Cleanup(httpSrv.Close)

	peerConn, _, err := websocket.DefaultDialer.Dial(dialerURL(httpSrv.URL), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { peerConn.Close() })

	if err := peerConn.WriteJSON(map[string]int{"agent_id": 1}); err != nil {
		t.Fatalf("write handshake: %v", err)
	}

	var ra *RemoteAgent
	select {
	case ra = <-connected:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for OnConnect")
	}

	cfg := game.DefaultInitConfig()
	cfg.AgentPositionSeed = -1
	state := game.NewState(game.InitBoard(cfg))
	obs := observation.Get(state, 1, observation.DefaultParameters())

	actDone := make(chan game.Move, 1)
	go func() { actDone <- ra.Act(&obs) }()

	var ws WireState
	if err := peerConn.ReadJSON(&ws); err != nil {
		t.Fatalf("peer failed to read observation: %v", err)
	}
	if ws.BoardSize != game.BoardSize {
		t.Fatalf("peer received board_size = %d, want %d", ws.BoardSize, game.BoardSize)
	}

	if err := peerConn.WriteJSON(WireAction{AgentID: 1, Action: int(game.Bomb)}); err != nil {
		t.Fatalf("write action: %v", err)
	}

	select {
	case move := <-actDone:
		if move != game.Bomb {
			t.Fatalf("Act returned %v, want Bomb", move)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for Act")
	}
}
