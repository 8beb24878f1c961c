// Package stream serves the renderer over websockets: each connection gets its own
// loop, sends held keys as JSON and receives raw RGBA frames.
package stream

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/sasha-s/go-deadlock"

	"github.com/lixenwraith/raycaster/engine"
	"github.com/lixenwraith/raycaster/input"
	"github.com/lixenwraith/raycaster/parameter"
)

//go:embed index.html
var indexHTML []byte

// ErrInvalidOptions marks a server that cannot build sessions
var ErrInvalidOptions = errors.New("invalid stream options")

// Options configures a Server
type Options struct {
	NewLoop        func() (*engine.Loop, error) // called once per connection
	Keymap         *input.Keymap                // nil uses input.DefaultKeymap
	Period         time.Duration                // frame period per session
	AllowedOrigins []string                     // empty or "*" allows any origin
	MaxSessions    int                          // <=0 uses parameter.StreamMaxSessions
}

// Server owns the router and the live sessions
type Server struct {
	opts     Options
	upgrader websocket.Upgrader

	mu       deadlock.RWMutex
	sessions map[string]*Session
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewServer validates opts
func NewServer(opts Options) (*Server, error) {
	if opts.NewLoop == nil {
		return nil, fmt.Errorf("%w: nil loop factory", ErrInvalidOptions)
	}
	if opts.Period <= 0 {
		return nil, fmt.Errorf("%w: frame period %v", ErrInvalidOptions, opts.Period)
	}
	if opts.Keymap == nil {
		opts.Keymap = input.DefaultKeymap()
	}
	if opts.MaxSessions <= 0 {
		opts.MaxSessions = parameter.StreamMaxSessions
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		opts:     opts,
		sessions: make(map[string]*Session),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 64 * 1024,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(opts.AllowedOrigins, r.Header.Get("Origin"))
		},
	}
	return s, nil
}

// Handler builds the chi router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins(s.opts.AllowedOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWebSocket)
	return r
}

// Sessions returns the number of connected clients
func (s *Server) Sessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close cancels every session and waits for them to finish
func (s *Server) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.Sessions(),
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.ctx.Err() != nil {
		http.Error(w, "server closing", http.StatusServiceUnavailable)
		return
	}
	if s.Sessions() >= s.opts.MaxSessions {
		http.Error(w, "too many sessions", http.StatusServiceUnavailable)
		return
	}

	loop, err := s.opts.NewLoop()
	if err != nil {
		log.Printf("stream: build loop: %v", err)
		http.Error(w, "renderer unavailable", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		log.Printf("stream: upgrade: %v", err)
		return
	}

	sess := newSession(conn, loop, s.opts.Keymap, s.opts.Period)
	if !s.register(sess) {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "too many sessions"),
			time.Now().Add(parameter.StreamWriteWait))
		conn.Close()
		return
	}

	log.Printf("stream: session %s connected from %s", sess.ID(), r.RemoteAddr)
	go func() {
		defer s.wg.Done()
		defer s.unregister(sess)
		sess.run(s.ctx)
		log.Printf("stream: session %s closed after %d frames", sess.ID(), loop.Frame())
	}()
}

// register re-checks the limit under the lock, the pre-upgrade check can race
func (s *Server) register(sess *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) >= s.opts.MaxSessions {
		return false
	}
	s.sessions[sess.ID()] = sess
	s.wg.Add(1)
	return true
}

func (s *Server) unregister(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID())
	s.mu.Unlock()
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" || len(allowed) == 0 || slices.Contains(allowed, "*") {
		return true
	}
	return slices.Contains(allowed, origin)
}

func corsOrigins(allowed []string) []string {
	if len(allowed) == 0 {
		return []string{"*"}
	}
	return allowed
}
