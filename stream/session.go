package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/raycaster/engine"
	"github.com/lixenwraith/raycaster/input"
	"github.com/lixenwraith/raycaster/parameter"
	"github.com/lixenwraith/raycaster/render"
)

// Hello is the first text message on a connection
type Hello struct {
	Session string `json:"session"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// inputMessage carries the keys the client currently holds
type inputMessage struct {
	Pressed []string `json:"pressed"`
}

// Session is one websocket client driving its own loop
type Session struct {
	id      string
	conn    *websocket.Conn
	loop    *engine.Loop
	keymap  *input.Keymap
	period  time.Duration
	actions atomic.Uint32
	frame   []byte
}

func newSession(conn *websocket.Conn, loop *engine.Loop, km *input.Keymap, period time.Duration) *Session {
	return &Session{
		id:     uuid.New().String(),
		conn:   conn,
		loop:   loop,
		keymap: km,
		period: period,
	}
}

// ID returns the session uuid
func (s *Session) ID() string { return s.id }

// run serves the session until the client leaves or ctx is cancelled
// The read pump owns incoming messages, the frame loop is the only data writer
func (s *Session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.conn.Close()

	buf := s.loop.Buffer()
	hello := Hello{Session: s.id, Width: buf.Width(), Height: buf.Height()}
	s.conn.SetWriteDeadline(time.Now().Add(parameter.StreamWriteWait))
	if err := s.conn.WriteJSON(hello); err != nil {
		log.Printf("session %s: hello: %v", s.id, err)
		return
	}

	go s.readPump(cancel)
	go s.pingPump(ctx)

	src := engine.InputFunc(func() (input.Actions, bool) {
		return input.Actions(s.actions.Load()), true
	})
	err := s.loop.Run(ctx, src, engine.PresenterFunc(s.present), nil, s.period)
	if err != nil {
		log.Printf("session %s: %v", s.id, err)
		return
	}
	s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(parameter.StreamWriteWait))
}

func (s *Session) present(buf *render.PixelBuffer) error {
	s.frame = EncodeFrame(s.frame, buf)
	s.conn.SetWriteDeadline(time.Now().Add(parameter.StreamWriteWait))
	return s.conn.WriteMessage(websocket.BinaryMessage, s.frame)
}

// readPump applies input messages, cancelling the session on any read error
func (s *Session) readPump(cancel context.CancelFunc) {
	defer cancel()

	s.conn.SetReadLimit(parameter.StreamMaxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(parameter.StreamPongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(parameter.StreamPongWait))
	})

	for {
		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session %s: read: %v", s.id, err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		var msg inputMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("session %s: bad input message: %v", s.id, err)
			continue
		}
		s.actions.Store(uint32(s.keymap.Resolve(msg.Pressed)))
	}
}

// pingPump keeps the read deadline alive on idle clients
// WriteControl may run concurrently with the frame writer
func (s *Session) pingPump(ctx context.Context) {
	ticker := time.NewTicker(parameter.StreamPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deadline := time.Now().Add(parameter.StreamWriteWait)
			if err := s.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}
