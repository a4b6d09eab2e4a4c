package network

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// PeerID uniquely identifies a connected spectator
type PeerID uint32

// peer is one spectator; frames are queued and written by its own goroutine
type peer struct {
	id   PeerID
	addr string
	conn *websocket.Conn

	send      chan []byte
	closeCh   chan struct{}
	closeOnce sync.Once

	dropped atomic.Uint64
}

func newPeer(id PeerID, conn *websocket.Conn, queue int) *peer {
	return &peer{
		id:      id,
		addr:    conn.RemoteAddr().String(),
		conn:    conn,
		send:    make(chan []byte, queue),
		closeCh: make(chan struct{}),
	}
}

// enqueue hands a frame to the writer
// A full queue drops the frame; a slow spectator never stalls the game
func (p *peer) enqueue(data []byte) bool {
	select {
	case <-p.closeCh:
		return false
	default:
	}
	select {
	case p.send <- data:
		return true
	default:
		p.dropped.Add(1)
		return false
	}
}

func (p *peer) close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
		if p.conn != nil {
			p.conn.Close()
		}
	})
}

// readLoop discards client frames and keeps the deadline alive on pongs
func (p *peer) readLoop(cfg *Config) {
	defer p.close()

	p.conn.SetReadLimit(512)
	_ = p.conn.SetReadDeadline(time.Now().Add(cfg.DisconnectTimeout))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(cfg.DisconnectTimeout))
	})
	for {
		if _, _, err := p.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeLoop drains the send queue and pings on the heartbeat interval
func (p *peer) writeLoop(cfg *Config) {
	ticker := time.NewTicker(cfg.HeartbeatInterval)
	defer func() {
		ticker.Stop()
		p.close()
	}()

	for {
		select {
		case <-p.closeCh:
			return
		case data := <-p.send:
			_ = p.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
