package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocabdrop/internal/game"
	"github.com/robalobadob/vocabdrop/internal/play"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the reply channel buffer
	replyBufferSize = 16
)

// Replies sent only to the connection that asked.
const (
	MsgDropResult play.MessageType = "drop_result"
	MsgPong       play.MessageType = "pong"
	MsgError      play.MessageType = "error"
)

// clientMessage is an inbound WebSocket frame.
type clientMessage struct {
	Type   string      `json:"type"` // "drop" | "restart" | "ping"
	ItemID game.ItemID `json:"itemId,omitempty"`
	ZoneID game.ZoneID `json:"zoneId,omitempty"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleWS upgrades the connection and runs its pumps until either side closes.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	t := tableFrom(r)
	up := upgrader
	up.CheckOrigin = s.checkOrigin
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade")
		return
	}
	snap, updates, cancel := t.Attach()
	c := &wsClient{
		conn:    conn,
		table:   t,
		updates: updates,
		replies: make(chan play.Message, replyBufferSize),
		done:    make(chan struct{}),
		log:     log.With().Str("session", t.ID()).Logger(),
	}
	c.reply(play.MsgSnapshot, snap)
	go c.writePump()
	c.readPump()
	cancel()
}

// checkOrigin admits non-browser clients (no Origin header) and the configured client origin only.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || origin == s.clientOrigin()
}

// wsClient pumps table updates out and drop/restart requests in.
type wsClient struct {
	conn    *websocket.Conn
	table   *play.Table
	updates <-chan play.Message
	replies chan play.Message
	done    chan struct{}
	log     zerolog.Logger
}

func (c *wsClient) reply(t play.MessageType, payload any) {
	msg := play.Message{Type: t, SessionID: c.table.ID(), Payload: payload, Timestamp: time.Now()}
	select {
	case c.replies <- msg:
	default:
		c.log.Warn().Str("type", string(t)).Msg("reply buffer full, message dropped")
	}
}

// readPump pumps messages from the WebSocket connection
func (c *wsClient) readPump() {
	defer func() {
		close(c.done)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Debug().Err(err).Msg("websocket read error")
			}
			return
		}
		c.handleMessage(data)
	}
}

// writePump pumps updates and replies to the WebSocket connection
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case msg, ok := <-c.updates:
			if !ok {
				// table closed
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return
			}
			if err := c.write(msg); err != nil {
				return
			}
		case msg := <-c.replies:
			if err := c.write(msg); err != nil {
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

func (c *wsClient) write(msg play.Message) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(msg)
}

// handleMessage processes an incoming message from the client
func (c *wsClient) handleMessage(data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.reply(MsgError, errorPayload{Code: "INVALID_MESSAGE", Message: "Invalid message format"})
		return
	}

	switch msg.Type {
	case "drop":
		if msg.ItemID == "" {
			c.reply(MsgError, errorPayload{Code: "INVALID_MESSAGE", Message: "itemId is required"})
			return
		}
		if msg.ZoneID == "" {
			msg.ZoneID = game.DefaultZone
		}
		out, snap := c.table.Drop(msg.ItemID, msg.ZoneID)
		c.reply(MsgDropResult, dropRes{Outcome: out, Snapshot: snap})
	case "restart":
		c.reply(play.MsgSnapshot, c.table.Restart())
	case "ping":
		c.reply(MsgPong, nil)
	default:
		c.reply(MsgError, errorPayload{Code: "INVALID_MESSAGE", Message: "Unknown message type"})
	}
}
