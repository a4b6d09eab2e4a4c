package network

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/game"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(t *testing.T, cfg *Config) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(cfg, 42, quiet())
	srv := httptest.NewServer(hub)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if conn != nil {
		t.Cleanup(func() { conn.Close() })
	}
	return conn, resp, err
}

func read(t *testing.T, conn *websocket.Conn) *Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	typ, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, websocket.BinaryMessage, typ)
	msg, err := Decode(data)
	require.NoError(t, err)
	return msg
}

func TestHubStreamsSnapshots(t *testing.T) {
	hub, srv := serve(t, &Config{FrameEvery: 2})

	conn, _, err := dial(t, srv)
	require.NoError(t, err)

	hello := read(t, conn)
	assert.Equal(t, MsgHello, hello.Type)
	assert.Equal(t, uint64(42), hello.Seed)
	assert.Equal(t, Version, hello.Version)
	assert.Equal(t, 1, hub.Count())

	snap := &game.Snapshot{
		Frame:   1,
		ArenaW:  1024,
		Enemies: []game.EnemyView{{Kind: "tank", X: 3, Y: 4, Health: 50}},
		Player:  game.PlayerView{Health: 90},
	}
	assert.True(t, hub.Broadcast(snap))
	assert.False(t, hub.Broadcast(&game.Snapshot{Frame: 2}))
	assert.True(t, hub.Broadcast(&game.Snapshot{Frame: 3}))
	assert.True(t, hub.Broadcast(&game.Snapshot{Frame: 4, Over: true}), "game over frame is never skipped")

	first := read(t, conn)
	assert.Equal(t, MsgSnapshot, first.Type)
	require.NotNil(t, first.Snapshot)
	assert.Equal(t, int64(1), first.Snapshot.Frame)
	assert.Equal(t, 1024.0, first.Snapshot.ArenaW)
	require.Len(t, first.Snapshot.Enemies, 1)
	assert.Equal(t, "tank", first.Snapshot.Enemies[0].Kind)
	assert.Equal(t, 90, first.Snapshot.Player.Health)
	assert.Greater(t, first.Seq, hello.Seq)

	assert.Equal(t, int64(3), read(t, conn).Snapshot.Frame)
	last := read(t, conn)
	assert.Equal(t, int64(4), last.Snapshot.Frame)
	assert.True(t, last.Snapshot.Over)
}

func TestHubReplaysResultToLateSpectators(t *testing.T) {
	hub, srv := serve(t, nil)
	hub.PublishResult(engine.Result{Score: 310, Kills: 12, Level: 3, Survival: 95 * time.Second})

	conn, _, err := dial(t, srv)
	require.NoError(t, err)
	assert.Equal(t, MsgHello, read(t, conn).Type)

	msg := read(t, conn)
	assert.Equal(t, MsgResult, msg.Type)
	require.NotNil(t, msg.Result)
	assert.Equal(t, 310, msg.Result.Score)
	assert.Equal(t, 95*time.Second, msg.Result.Survival)
}

func TestHubRejectsPastPeerLimit(t *testing.T) {
	_, srv := serve(t, &Config{MaxPeers: 1})

	conn, _, err := dial(t, srv)
	require.NoError(t, err)
	read(t, conn)

	_, resp, err := dial(t, srv)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHubCloseSendsCloseFrame(t *testing.T) {
	hub, srv := serve(t, nil)
	conn, _, err := dial(t, srv)
	require.NoError(t, err)
	read(t, conn)

	require.NoError(t, hub.Close())
	assert.Equal(t, 0, hub.Count())
	assert.False(t, hub.Broadcast(&game.Snapshot{}))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)

	_, resp, err := dial(t, srv)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// TestHubCloseDuringJoin holds the peer lock while a spectator upgrades and the hub closes
func TestHubCloseDuringJoin(t *testing.T) {
	hub, srv := serve(t, nil)

	hub.mu.Lock()
	conn, _, err := dial(t, srv)
	if err != nil {
		hub.mu.Unlock()
		t.Fatalf("dial: %v", err)
	}

	closed := make(chan error, 1)
	go func() { closed <- hub.Close() }()
	assert.Eventually(t, hub.closed.Load, 2*time.Second, 5*time.Millisecond)
	hub.mu.Unlock()

	select {
	case err := <-closed:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("close blocked on a late spectator")
	}
	assert.Equal(t, 0, hub.Count())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	var netErr net.Error
	if errors.As(err, &netErr) {
		assert.False(t, netErr.Timeout(), "connection left open: %v", err)
	}
}

func TestHubStartWithoutAddressIsIdle(t *testing.T) {
	hub := NewHub(&Config{}, 1, quiet())
	require.NoError(t, hub.Start())
	assert.Empty(t, hub.Addr())
	assert.False(t, hub.Broadcast(&game.Snapshot{Frame: 1}), "no spectators")
	require.NoError(t, hub.Close())
	assert.NoError(t, hub.Close())
}

func TestHubStartListens(t *testing.T) {
	hub := NewHub(&Config{Address: "127.0.0.1:0"}, 1, quiet())
	require.NoError(t, hub.Start())
	defer hub.Close()

	url := "ws://" + hub.Addr() + DefaultConfig().Path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, MsgHello, read(t, conn).Type)
}

func TestPeerDropsWhenQueueFull(t *testing.T) {
	p := &peer{send: make(chan []byte, 1), closeCh: make(chan struct{})}
	assert.True(t, p.enqueue([]byte{1}))
	assert.False(t, p.enqueue([]byte{2}))
	assert.Equal(t, uint64(1), p.dropped.Load())

	p.close()
	p.close()
	assert.False(t, p.enqueue([]byte{3}))
	assert.Equal(t, uint64(1), p.dropped.Load(), "closed peers do not count drops")
}

func TestDecodeRejectsBadFrames(t *testing.T) {
	_, err := Decode([]byte{0xc1})
	assert.Error(t, err)

	data, err := Encode(&Message{Type: 9})
	require.NoError(t, err)
	_, err = Decode(data)
	assert.ErrorContains(t, err, "unknown type")
}
