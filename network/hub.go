// Package network streams read-only snapshots of a run to websocket spectators
package network

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/pitfigu/GuardianSurvivor/core"
	"github.com/pitfigu/GuardianSurvivor/engine"
	"github.com/pitfigu/GuardianSurvivor/game"
)

var ErrHubClosed = errors.New("spectator hub closed")

// Hub fans snapshot frames out to spectators
// Broadcast and PublishResult are called from the simulation goroutine and never block on I/O
type Hub struct {
	config   *Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
	seed     uint64

	mu     sync.RWMutex
	peers  map[PeerID]*peer
	nextID PeerID
	result []byte // Replayed to spectators who join after game over

	seq     atomic.Uint32
	offered atomic.Uint64
	closed  atomic.Bool

	listener net.Listener
	server   *http.Server
	wg       sync.WaitGroup
}

// NewHub creates a hub for the run seeded with seed; nil cfg uses defaults
func NewHub(cfg *Config, seed uint64, logger *slog.Logger) *Hub {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	c.sanitize()
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hub{
		config: &c,
		logger: logger.With("component", "spectate"),
		seed:   seed,
		peers:  make(map[PeerID]*peer),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  c.ReadBufferSize,
		WriteBufferSize: c.WriteBufferSize,
		// Read-only stream, any origin may watch
		CheckOrigin: func(*http.Request) bool { return true },
	}
	return h
}

// Start listens on the configured address; an empty address leaves the hub idle
func (h *Hub) Start() error {
	if h.config.Address == "" {
		return nil
	}
	if h.closed.Load() {
		return ErrHubClosed
	}

	ln, err := net.Listen("tcp", h.config.Address)
	if err != nil {
		return errors.Wrapf(err, "listen %s", h.config.Address)
	}
	mux := http.NewServeMux()
	mux.Handle(h.config.Path, h)
	h.listener = ln
	h.server = &http.Server{Handler: mux, ReadHeaderTimeout: h.config.WriteTimeout}

	h.wg.Add(1)
	core.Go(func() {
		defer h.wg.Done()
		if err := h.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("spectator server stopped", "error", err)
		}
	})
	h.logger.Info("spectator server listening", "addr", ln.Addr().String(), "path", h.config.Path)
	return nil
}

// Addr returns the bound address, empty before Start
func (h *Hub) Addr() string {
	if h.listener == nil {
		return ""
	}
	return h.listener.Addr().String()
}

// ServeHTTP upgrades a spectator connection
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.closed.Load() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	if h.Count() >= h.config.MaxPeers {
		http.Error(w, "spectator limit reached", http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	hello, err := Encode(&Message{Type: MsgHello, Seq: h.seq.Add(1), Version: Version, Seed: h.seed})
	if err != nil {
		conn.Close()
		h.logger.Error("hello frame", "error", err)
		return
	}

	// Close sets closed before collecting peers under mu
	h.mu.Lock()
	if h.closed.Load() {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.nextID++
	p := newPeer(h.nextID, conn, h.config.SendQueueSize)
	h.peers[p.id] = p
	result := h.result
	h.wg.Add(2)
	h.mu.Unlock()

	p.enqueue(hello)
	if result != nil {
		p.enqueue(result)
	}
	h.logger.Info("spectator joined", "peer", p.id, "remote", p.addr)

	core.Go(func() {
		defer h.wg.Done()
		p.writeLoop(h.config)
	})
	core.Go(func() {
		defer h.wg.Done()
		p.readLoop(h.config)
		h.remove(p)
	})
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	_, ok := h.peers[p.id]
	delete(h.peers, p.id)
	h.mu.Unlock()
	p.close()
	if ok {
		h.logger.Info("spectator left", "peer", p.id, "dropped", p.dropped.Load())
	}
}

// Count returns the connected spectators
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Dropped returns frames skipped for slow spectators still connected
func (h *Hub) Dropped() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var n uint64
	for _, p := range h.peers {
		n += p.dropped.Load()
	}
	return n
}

// Broadcast sends one of every FrameEvery snapshots; the game-over frame is always sent
// Returns whether a frame went out
func (h *Hub) Broadcast(snap *game.Snapshot) bool {
	if h.closed.Load() || snap == nil {
		return false
	}
	n := h.offered.Add(1)
	if !snap.Over && (n-1)%uint64(h.config.FrameEvery) != 0 {
		return false
	}
	if h.Count() == 0 {
		return false
	}

	data, err := Encode(&Message{Type: MsgSnapshot, Seq: h.seq.Add(1), Snapshot: snap})
	if err != nil {
		h.logger.Error("snapshot frame", "frame", snap.Frame, "error", err)
		return false
	}
	h.fanout(data)
	return true
}

// PublishResult sends the final tally and keeps it for late spectators
func (h *Hub) PublishResult(r engine.Result) {
	if h.closed.Load() {
		return
	}
	data, err := Encode(&Message{Type: MsgResult, Seq: h.seq.Add(1), Result: &r})
	if err != nil {
		h.logger.Error("result frame", "error", err)
		return
	}
	h.mu.Lock()
	h.result = data
	h.mu.Unlock()
	h.fanout(data)
}

func (h *Hub) fanout(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, p := range h.peers {
		p.enqueue(data)
	}
}

// Close sends a close frame to every spectator, stops the listener and waits for peer goroutines
func (h *Hub) Close() error {
	if !h.closed.CompareAndSwap(false, true) {
		return nil
	}

	var err error
	if h.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), h.config.WriteTimeout)
		err = h.server.Shutdown(ctx)
		cancel()
	}

	h.mu.Lock()
	peers := make([]*peer, 0, len(h.peers))
	for id, p := range h.peers {
		peers = append(peers, p)
		delete(h.peers, id)
	}
	h.mu.Unlock()

	deadline := time.Now().Add(time.Second)
	bye := websocket.FormatCloseMessage(websocket.CloseGoingAway, "game closed")
	for _, p := range peers {
		_ = p.conn.WriteControl(websocket.CloseMessage, bye, deadline)
		p.close()
	}

	h.wg.Wait()
	if err != nil {
		return errors.Wrap(err, "stop spectator server")
	}
	return nil
}
