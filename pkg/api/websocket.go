package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yourusername/utttengine/internal/gameid"
	"github.com/yourusername/utttengine/pkg/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // configure properly in production
	},
}

// WSMessage is a generic WebSocket message.
type WSMessage struct {
	Type    string          `json:"type"`    // "create", "join", "move", "sync", "state", "ping"
	ID      string          `json:"id"`      // request ID for correlating responses
	Payload json.RawMessage `json:"payload"` // type-specific payload
}

// WSResponse is a generic WebSocket response.
type WSResponse struct {
	Type    string      `json:"type"` // "result", "update", "error", "pong"
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// WSCreateRequest starts a new game session.
type WSCreateRequest struct {
	State string `json:"state,omitempty"` // optional starting state ID
}

// WSJoinRequest joins an existing session as the second player.
type WSJoinRequest struct {
	Session string `json:"session"`
}

// WSMoveRequest plays a move in a session.
type WSMoveRequest struct {
	Session string `json:"session"`
	Move    string `json:"move"`
}

// WSSyncRequest replaces a session's position with a snapshot. The snapshot
// is trusted as the new source of truth once it decodes to a valid board.
type WSSyncRequest struct {
	Session string `json:"session"`
	State   string `json:"state"`
}

// WSSessionState is the position payload broadcast to session members.
type WSSessionState struct {
	Session string `json:"session"`
	Mark    string `json:"mark,omitempty"` // receiver's mark, set on create/join
	State   string `json:"state"`
	ToMove  string `json:"to_move"`
	Active  int    `json:"active"`
	Result  string `json:"result"`
}

// session is one relayed game between two clients.
type session struct {
	id      string
	state   game.BoardState
	members map[*WSClient]game.Mark
	mu      sync.Mutex
}

// sessionRegistry tracks live sessions by ID.
type sessionRegistry struct {
	sessions map[string]*session
	mu       sync.Mutex
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session)}
}

func (r *sessionRegistry) create(state game.BoardState, owner *WSClient) *session {
	s := &session{
		id:      uuid.NewString(),
		state:   state,
		members: map[*WSClient]game.Mark{owner: game.Cross},
	}
	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s
}

func (r *sessionRegistry) get(id string) *session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[id]
}

func (r *sessionRegistry) drop(c *WSClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		s.mu.Lock()
		delete(s.members, c)
		empty := len(s.members) == 0
		s.mu.Unlock()
		if empty {
			delete(r.sessions, id)
		}
	}
}

// WSClient represents a connected WebSocket client.
type WSClient struct {
	conn     *websocket.Conn
	handlers *Handlers
	sendChan chan WSResponse
}

// WebSocket handles WebSocket connections for live game sessions.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	client := &WSClient{conn: conn, handlers: h, sendChan: make(chan WSResponse, 256)}
	go client.writePump()
	client.readPump()
}

func (c *WSClient) writePump() {
	defer c.conn.Close()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (c *WSClient) readPump() {
	defer func() {
		c.handlers.sessions.drop(c)
		close(c.sendChan)
		c.conn.Close()
	}()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "create":
		c.handleCreate(msg)
	case "join":
		c.handleJoin(msg)
	case "move":
		c.handleMove(msg)
	case "sync":
		c.handleSync(msg)
	case "state":
		c.handleState(msg)
	case "ping":
		c.sendChan <- WSResponse{Type: "pong", ID: msg.ID}
	default:
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "unknown message type"}
	}
}

func (c *WSClient) fail(id, msg string) {
	c.sendChan <- WSResponse{Type: "error", ID: id, Error: msg}
}

func (s *session) statePayload(mark game.Mark) WSSessionState {
	p := WSSessionState{
		Session: s.id,
		State:   gameid.StateID(s.state),
		ToMove:  s.state.ToMove.String(),
		Active:  int(s.state.Active),
		Result:  s.state.Result.String(),
	}
	if mark != game.NoMark {
		p.Mark = mark.String()
	}
	return p
}

// broadcast sends the current position to every member. Callers hold s.mu.
func (s *session) broadcast() {
	payload := s.statePayload(game.NoMark)
	for member := range s.members {
		select {
		case member.sendChan <- WSResponse{Type: "update", Payload: payload}:
		default:
			// slow client, drop the update rather than block the session
		}
	}
}

func (c *WSClient) handleCreate(msg WSMessage) {
	var req WSCreateRequest
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			c.fail(msg.ID, "invalid payload")
			return
		}
	}

	state := game.NewGame()
	if req.State != "" {
		var err error
		if state, err = gameid.StateFromID(req.State); err != nil {
			c.fail(msg.ID, "invalid state")
			return
		}
	}

	s := c.handlers.sessions.create(state, c)
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: s.statePayload(game.Cross)}
}

func (c *WSClient) handleJoin(msg WSMessage) {
	var req WSJoinRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.fail(msg.ID, "invalid payload")
		return
	}
	s := c.handlers.sessions.get(req.Session)
	if s == nil {
		c.fail(msg.ID, "unknown session")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.members) >= 2 {
		c.fail(msg.ID, "session is full")
		return
	}
	s.members[c] = game.Nought
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: s.statePayload(game.Nought)}
}

func (c *WSClient) handleMove(msg WSMessage) {
	var req WSMoveRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.fail(msg.ID, "invalid payload")
		return
	}
	s := c.handlers.sessions.get(req.Session)
	if s == nil {
		c.fail(msg.ID, "unknown session")
		return
	}
	m, err := game.ParseMove(req.Move)
	if err != nil {
		c.fail(msg.ID, "invalid move")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	mark, member := s.members[c]
	if !member {
		c.fail(msg.ID, "not a session member")
		return
	}
	if mark != s.state.ToMove {
		c.fail(msg.ID, "not your turn")
		return
	}
	if !game.IsLegal(s.state, m) {
		c.fail(msg.ID, "illegal move")
		return
	}

	s.state = game.Apply(s.state, m)
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: s.statePayload(game.NoMark)}
	s.broadcast()
}

func (c *WSClient) handleSync(msg WSMessage) {
	var req WSSyncRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.fail(msg.ID, "invalid payload")
		return
	}
	s := c.handlers.sessions.get(req.Session)
	if s == nil {
		c.fail(msg.ID, "unknown session")
		return
	}
	state, err := gameid.StateFromID(req.State)
	if err != nil {
		c.fail(msg.ID, "invalid state")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, member := s.members[c]; !member {
		c.fail(msg.ID, "not a session member")
		return
	}
	s.state = state
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: s.statePayload(game.NoMark)}
	s.broadcast()
}

func (c *WSClient) handleState(msg WSMessage) {
	var req WSJoinRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.fail(msg.ID, "invalid payload")
		return
	}
	s := c.handlers.sessions.get(req.Session)
	if s == nil {
		c.fail(msg.ID, "unknown session")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: s.statePayload(s.members[c])}
}
