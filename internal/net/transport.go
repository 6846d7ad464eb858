package net

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Message is one export pushed to preview clients.
type Message struct {
	Name    string `json:"name"`
	DataURL string `json:"dataURL"`
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub serves a preview page and pushes every published export to the
// websocket clients watching it.
type Hub struct {
	clients  map[*client]bool
	last     []byte
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	server   *http.Server
}

// NewHub creates a hub with no clients.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Handler routes "/" to the preview page and "/ws" to the websocket feed.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.servePage)
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

// ListenAndServe blocks serving the hub on port until Close is called.
func (h *Hub) ListenAndServe(port int) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("hub: listen on port %d: %w", port, err)
	}
	log.Printf("[HUB] preview listening on port %d", port)
	return h.Serve(ln)
}

// Serve accepts connections on ln until Close is called.
func (h *Hub) Serve(ln net.Listener) error {
	h.mu.Lock()
	h.server = &http.Server{Handler: h.Handler()}
	srv := h.server
	h.mu.Unlock()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("hub: serve: %w", err)
	}
	return nil
}

// Close stops the server and drops every client.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.conn.Close()
		delete(h.clients, c)
	}
	if h.server == nil {
		return nil
	}
	return h.server.Close()
}

// Clients reports how many preview clients are connected.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish sends the export to every client and keeps it for late joiners.
func (h *Hub) Publish(name, dataURL string) {
	data, err := json.Marshal(Message{Name: name, DataURL: dataURL})
	if err != nil {
		log.Printf("[HUB] encode %s: %v", name, err)
		return
	}

	h.mu.Lock()
	h.last = data
	clients := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if err := c.send(data); err != nil {
			log.Printf("[HUB] send to %s: %v", c.conn.RemoteAddr(), err)
			h.remove(c)
		}
	}
}

func (h *Hub) add(c *client) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
	log.Printf("[HUB] client connected from %s", c.conn.RemoteAddr())
	return h.last
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.clients[c] {
		return
	}
	delete(h.clients, c)
	c.conn.Close()
	log.Printf("[HUB] client %s disconnected", c.conn.RemoteAddr())
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HUB] upgrade: %v", err)
		return
	}
	c := &client{conn: conn}
	// c.mu queues any Publish racing this join behind the replay.
	c.mu.Lock()
	var replayErr error
	if last := h.add(c); last != nil {
		replayErr = conn.WriteMessage(websocket.TextMessage, last)
	}
	c.mu.Unlock()
	if replayErr != nil {
		h.remove(c)
		return
	}

	// The feed is one-way; reading only notices when the client goes away.
	defer h.remove(c)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) servePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, previewPage)
}

const previewPage = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Signature preview</title></head>
<body>
<p id="name">waiting for an export</p>
<img id="preview" alt="">
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.onmessage = (ev) => {
  const msg = JSON.parse(ev.data);
  document.getElementById("name").textContent = msg.name;
  document.getElementById("preview").src = msg.dataURL;
};
</script>
</body>
</html>
`
