package conversation

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/snapgala/api/internal/model"
)

// Frame is one websocket message in either direction.
type Frame struct {
	Type     string `json:"type"` // command, text, image, message
	Command  string `json:"command,omitempty"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"` // base64 image bytes
	ImageURL string `json:"image_url,omitempty"`
}

// Frame types
const (
	FrameCommand = "command"
	FrameText    = "text"
	FrameImage   = "image"
	FrameMessage = "message"
)

// Organizer commands
const (
	CommandBegin   = "begin"
	CommandCancel  = "cancel"
	CommandDisable = "disable"
)

// CreationFlow is the inbound side of the creation state machine.
type CreationFlow interface {
	Begin(ctx context.Context, organizerID string)
	Cancel(ctx context.Context, organizerID string)
	BeginDisable(ctx context.Context, organizerID string)
	HandleText(ctx context.Context, organizerID, text string)
	HandleImage(ctx context.Context, organizerID string, data []byte)
	HandleImageURL(ctx context.Context, organizerID, rawURL string)
}

// Gateway upgrades organizer connections and shuttles frames between the
// sockets and the creation flow. It implements the service.Sender used
// for outbound messages.
type Gateway struct {
	mu       sync.RWMutex
	clients  map[string]map[*client]bool // organizerID -> connections
	flow     CreationFlow
	upgrader websocket.Upgrader
}

// NewGateway creates a gateway accepting the given websocket origins.
// An empty list allows any origin.
func NewGateway(allowedOrigins []string) *Gateway {
	return &Gateway{
		clients: make(map[string]map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, o := range allowedOrigins {
					if o == "*" || o == origin {
						return true
					}
				}
				return false
			},
		},
	}
}

// Attach connects the creation flow. Must be called before ServeWS; the
// two-phase setup breaks the constructor cycle between gateway and flow.
func (g *Gateway) Attach(flow CreationFlow) {
	g.flow = flow
}

// ServeWS handles GET /v1/organizer/ws - upgrade an organizer connection
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	organizerID := r.URL.Query().Get("organizer_id")
	if organizerID == "" {
		model.NewBadRequestError("organizer_id required").WriteJSON(w)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	c := &client{
		gateway:     g,
		conn:        conn,
		send:        make(chan []byte, 64),
		organizerID: organizerID,
	}

	g.register(c)
	go c.writePump()
	c.readPump(r.Context())
}

// Send delivers a message to every open connection for the organizer.
// Delivery is best effort: slow connections drop the frame.
func (g *Gateway) Send(ctx context.Context, organizerID, text string) {
	payload, err := json.Marshal(Frame{Type: FrameMessage, Text: text})
	if err != nil {
		slog.Error("marshal outbound frame", slog.String("error", err.Error()))
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	for c := range g.clients[organizerID] {
		select {
		case c.send <- payload:
		default:
		}
	}
}

func (g *Gateway) register(c *client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.clients[c.organizerID] == nil {
		g.clients[c.organizerID] = make(map[*client]bool)
	}
	g.clients[c.organizerID][c] = true
}

func (g *Gateway) unregister(c *client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if conns, ok := g.clients[c.organizerID]; ok {
		if _, ok := conns[c]; ok {
			delete(conns, c)
			close(c.send)
			if len(conns) == 0 {
				delete(g.clients, c.organizerID)
			}
		}
	}
}
