package stream

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/raycaster/engine"
	"github.com/lixenwraith/raycaster/physics"
	"github.com/lixenwraith/raycaster/player"
	"github.com/lixenwraith/raycaster/raycast"
	"github.com/lixenwraith/raycaster/render"
	"github.com/lixenwraith/raycaster/world"
)

func testLoop() (*engine.Loop, error) {
	g, spawn, err := world.ParseRows([]string{
		"######",
		"#....#",
		"#.@..#",
		"#....#",
		"######",
	}, 10)
	if err != nil {
		return nil, err
	}
	return engine.NewLoop(engine.LoopConfig{
		Grid:    g,
		Start:   player.AtSpawn(g, spawn),
		Raycast: raycast.Config{FOV: 60, MaxRange: 200},
		Motion:  physics.Params{ForwardSpeed: 10, BackwardSpeed: 10, StrafeSpeed: 10, TurnRate: 90, LookRate: 30, Radius: 2},
		Style:   render.DefaultStyle(),
		Width:   40,
		Height:  30,
	})
}

func startServer(t *testing.T, maxSessions int) (*Server, *httptest.Server) {
	t.Helper()
	srv, err := NewServer(Options{
		NewLoop:     testLoop,
		Period:      10 * time.Millisecond,
		MaxSessions: maxSessions,
	})
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return srv, ts
}

func wsURL(ts *httptest.Server) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	buf, err := render.NewPixelBuffer(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	buf.Set(2, 1, render.RGB{R: 9, G: 8, B: 7})

	frame := EncodeFrame(nil, buf)
	if len(frame) != FrameHeaderSize+3*2*4 {
		t.Fatalf("frame length = %d", len(frame))
	}
	if frame[0] != 0 || frame[1] != 3 || frame[2] != 0 || frame[3] != 2 {
		t.Errorf("header = %v, want big-endian 3x2", frame[:4])
	}

	w, h, rgba, err := DecodeFrame(frame)
	if err != nil || w != 3 || h != 2 {
		t.Fatalf("decode = %d %d %v", w, h, err)
	}
	last := rgba[len(rgba)-4:]
	if last[0] != 9 || last[1] != 8 || last[2] != 7 || last[3] != 0xff {
		t.Errorf("last pixel = %v", last)
	}

	if again := EncodeFrame(frame, buf); &again[0] != &frame[0] {
		t.Error("encode did not reuse a large enough buffer")
	}

	for _, bad := range [][]byte{nil, {0, 1}, {0, 1, 0, 1, 1, 2, 3}} {
		if _, _, _, err := DecodeFrame(bad); !errors.Is(err, ErrBadFrame) {
			t.Errorf("DecodeFrame(%v) err = %v", bad, err)
		}
	}
}

func TestOriginAllowed(t *testing.T) {
	tests := []struct {
		allowed []string
		origin  string
		want    bool
	}{
		{nil, "http://evil.example", true},
		{[]string{"*"}, "http://a.example", true},
		{[]string{"http://a.example"}, "http://a.example", true},
		{[]string{"http://a.example"}, "http://b.example", false},
		{[]string{"http://a.example"}, "", true},
	}
	for _, tt := range tests {
		if got := originAllowed(tt.allowed, tt.origin); got != tt.want {
			t.Errorf("originAllowed(%v, %q) = %v", tt.allowed, tt.origin, got)
		}
	}
}

func TestNewServerValidation(t *testing.T) {
	if _, err := NewServer(Options{Period: time.Second}); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("nil factory err = %v", err)
	}
	if _, err := NewServer(Options{NewLoop: testLoop}); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("zero period err = %v", err)
	}
}

func TestHealthAndIndex(t *testing.T) {
	_, ts := startServer(t, 0)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	var health struct {
		Status   string `json:"status"`
		Sessions int    `json:"sessions"`
	}
	err = json.NewDecoder(resp.Body).Decode(&health)
	resp.Body.Close()
	if err != nil || health.Status != "ok" || health.Sessions != 0 {
		t.Errorf("health = %+v, err %v", health, err)
	}

	resp, err = http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "<canvas") {
		t.Error("index page has no canvas")
	}
}

func TestSessionStreamsFrames(t *testing.T) {
	srv, ts := startServer(t, 0)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var hello Hello
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(hello.Session); err != nil {
		t.Errorf("session id %q: %v", hello.Session, err)
	}
	if hello.Width != 40 || hello.Height != 30 {
		t.Errorf("hello size = %dx%d", hello.Width, hello.Height)
	}

	if err := conn.WriteJSON(inputMessage{Pressed: []string{"left", "w"}}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatal(err)
		}
		if kind != websocket.BinaryMessage {
			t.Fatalf("message %d kind = %d", i, kind)
		}
		w, h, _, err := DecodeFrame(data)
		if err != nil || w != 40 || h != 30 {
			t.Fatalf("frame %d = %dx%d %v", i, w, h, err)
		}
	}
	if n := srv.Sessions(); n != 1 {
		t.Errorf("sessions = %d, want 1", n)
	}

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitFor(t, "session cleanup", func() bool { return srv.Sessions() == 0 })
}

func TestMaxSessions(t *testing.T) {
	srv, ts := startServer(t, 1)

	first, _, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer first.Close()
	waitFor(t, "first session", func() bool { return srv.Sessions() == 1 })

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts), nil)
	if err == nil {
		t.Fatal("second session accepted")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("second dial response = %v", resp)
	}
}
