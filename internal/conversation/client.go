package conversation

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size. Images arrive base64 encoded.
	maxFrameSize = 16 << 20
)

// client is one organizer websocket connection.
type client struct {
	gateway     *Gateway
	conn        *websocket.Conn
	send        chan []byte
	organizerID string
}

// readPump reads frames from the socket and dispatches them to the
// creation flow. It runs on the ServeWS goroutine and returns when the
// connection closes.
func (c *client) readPump(ctx context.Context) {
	defer func() {
		c.gateway.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error",
					slog.String("organizer_id", c.organizerID),
					slog.String("error", err.Error()))
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(raw, &frame); err != nil {
			slog.Debug("dropping malformed frame", slog.String("organizer_id", c.organizerID))
			continue
		}

		c.dispatch(ctx, frame)
	}
}

func (c *client) dispatch(ctx context.Context, frame Frame) {
	flow := c.gateway.flow
	if flow == nil {
		return
	}

	switch frame.Type {
	case FrameCommand:
		switch frame.Command {
		case CommandBegin:
			flow.Begin(ctx, c.organizerID)
		case CommandCancel:
			flow.Cancel(ctx, c.organizerID)
		case CommandDisable:
			flow.BeginDisable(ctx, c.organizerID)
		}
	case FrameText:
		flow.HandleText(ctx, c.organizerID, frame.Text)
	case FrameImage:
		if frame.ImageURL != "" {
			flow.HandleImageURL(ctx, c.organizerID, frame.ImageURL)
			return
		}
		data, err := base64.StdEncoding.DecodeString(frame.Data)
		if err != nil {
			slog.Debug("dropping image frame with bad encoding",
				slog.String("organizer_id", c.organizerID))
			return
		}
		flow.HandleImage(ctx, c.organizerID, data)
	}
}

// writePump pushes queued frames to the socket and keeps the connection
// alive with pings. One writePump per connection owns all writes.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
