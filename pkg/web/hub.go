// Package web streams trace entries to websocket clients, allowing a
// running program to be followed live from a browser or another tool.
package web

import (
	"context"
	"encoding/binary"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/thelolagemann/kemu/internal/cpu"
	"github.com/thelolagemann/kemu/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Hub fans trace entries out to every connected client. It implements
// cpu.Tracer, and never blocks the execution loop: entries traced while
// the broadcast queue is full are dropped and counted.
type Hub struct {
	// InfoInterval is how often ServerInfo is sent to clients. It must be
	// set before Run is called.
	InfoInterval time.Duration

	clients map[*Client]bool

	broadcast            chan []byte
	register, unregister chan *Client
	done                 chan struct{}

	currentID uint8
	connected atomic.Int64
	traced    atomic.Uint64
	dropped   atomic.Uint64

	log log.Logger
	mu  sync.Mutex
}

// NewHub returns a Hub ready to be served. Run must be running for
// clients to be accepted.
func NewHub(logger log.Logger) *Hub {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Hub{
		InfoInterval: time.Second,
		clients:      make(map[*Client]bool),
		broadcast:    make(chan []byte, 256),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		done:         make(chan struct{}),
		log:          logger,
	}
}

var _ cpu.Tracer = (*Hub)(nil)

// Trace queues e for broadcast.
func (h *Hub) Trace(e cpu.Entry) {
	select {
	case h.broadcast <- EncodeEntry(e):
		h.traced.Add(1)
	default:
		h.dropped.Add(1)
	}
}

// Traced returns the number of entries queued for broadcast.
func (h *Hub) Traced() uint64 {
	return h.traced.Load()
}

// Dropped returns the number of entries dropped because the broadcast
// queue was full.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	return int(h.connected.Load())
}

// ServeHTTP upgrades the request to a websocket connection and registers
// the client with the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnf("web: upgrading connection from %s: %v", r.RemoteAddr, err)
		return
	}

	c := h.newClient(conn, r)
	c.Send <- []byte{ClientInfo, c.ID}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	// spawn read/write pumps
	go c.ReadPump()
	go c.WritePump()

	h.log.Infof("web: client %d connected from %s", c.ID, c.Metadata.RemoteAddr)
}

// Run handles client registration and broadcasting until ctx is done,
// at which point every client is disconnected.
func (h *Hub) Run(ctx context.Context) {
	t := time.NewTicker(h.InfoInterval)
	defer t.Stop()
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.remove(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.connected.Add(1)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.remove(c)
				h.log.Infof("web: client %d disconnected", c.ID)
			}
		case msg := <-h.broadcast:
			h.send(msg)
		case <-t.C:
			h.send(h.info())
		}
	}
}

// send delivers msg to every client, disconnecting clients that are too
// slow to keep up.
func (h *Hub) send(msg []byte) {
	for c := range h.clients {
		select {
		case c.Send <- msg:
		default:
			h.remove(c)
			h.log.Warnf("web: client %d too slow, disconnected", c.ID)
		}
	}
}

func (h *Hub) remove(c *Client) {
	close(c.Send)
	delete(h.clients, c)
	h.connected.Add(-1)
}

// info builds a ServerInfo message.
func (h *Hub) info() []byte {
	msg := make([]byte, 17)
	msg[0] = ServerInfo
	binary.LittleEndian.PutUint64(msg[1:], h.Traced())
	binary.LittleEndian.PutUint64(msg[9:], h.Dropped())
	return msg
}

// newClient creates a new client for conn.
func (h *Hub) newClient(conn *websocket.Conn, r *http.Request) *Client {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.currentID++

	return &Client{
		hub:  h,
		conn: conn,
		Send: make(chan []byte, 256),
		ID:   h.currentID,
		Metadata: struct {
			RemoteAddr string
			UserAgent  string
		}{RemoteAddr: r.RemoteAddr, UserAgent: r.Header.Get("User-Agent")},
	}
}

// Serve runs h and serves it on addr until ctx is done.
func Serve(ctx context.Context, addr string, h *Hub) error {
	srv := &http.Server{Addr: addr, Handler: h}
	go h.Run(ctx)
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	h.log.Infof("web: streaming trace on ws://%s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
