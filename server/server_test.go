package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/lixenwraith/vi-snake/config"
	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/metrics"
	"github.com/lixenwraith/vi-snake/store"
)

const waitTimeout = 2 * time.Second

func init() {
	gin.SetMode(gin.TestMode)
}

type failingStore struct{}

func (failingStore) Load(context.Context) (int, error) { return 0, errors.New("store down") }
func (failingStore) Save(context.Context, int) error   { return errors.New("store down") }
func (failingStore) Close() error                      { return nil }

func (failingStore) SaveIfHigher(context.Context, int) (int, error) {
	return 0, errors.New("store down")
}

// testServer wraps a Server behind httptest with manual tickers and metrics
type testServer struct {
	t       *testing.T
	srv     *Server
	http    *httptest.Server
	tickers *engine.ManualTickers
	metrics *metrics.Metrics
}

func newTestServer(t *testing.T, cfg config.ServerConfig, st store.ScoreStore) *testServer {
	t.Helper()
	reg := prometheus.NewRegistry()
	ts := &testServer{
		t:       t,
		tickers: &engine.ManualTickers{},
		metrics: metrics.New(reg),
	}
	ts.srv = New(cfg, st,
		WithMetrics(ts.metrics, reg),
		WithSessionOptions(engine.WithTicker(ts.tickers.Factory())),
	)
	ts.http = httptest.NewServer(ts.srv.Handler())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
		defer cancel()
		ts.srv.Close(ctx)
		ts.http.Close()
	})
	return ts
}

func (ts *testServer) get(path string) (int, string) {
	ts.t.Helper()
	resp, err := http.Get(ts.http.URL + path)
	if err != nil {
		ts.t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func (ts *testServer) dial(header http.Header) (*websocket.Conn, *http.Response, error) {
	url := "ws" + strings.TrimPrefix(ts.http.URL, "http") + "/ws"
	return websocket.DefaultDialer.Dial(url, header)
}

// wsClient reads typed messages from a test connection
type wsClient struct {
	t      *testing.T
	conn   *websocket.Conn
	sounds []string
}

func (ts *testServer) connect() *wsClient {
	ts.t.Helper()
	conn, _, err := ts.dial(nil)
	if err != nil {
		ts.t.Fatalf("Failed to dial websocket: %v", err)
	}
	ts.t.Cleanup(func() { conn.Close() })
	return &wsClient{t: ts.t, conn: conn}
}

func (c *wsClient) send(msg ClientMessage) {
	c.t.Helper()
	if err := c.conn.WriteJSON(msg); err != nil {
		c.t.Fatalf("Failed to write message: %v", err)
	}
}

// state returns the next state message, recording sound cues read on the way
func (c *wsClient) state() StateMessage {
	c.t.Helper()
	for {
		c.conn.SetReadDeadline(time.Now().Add(waitTimeout))
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.t.Fatalf("Failed to read message: %v", err)
		}

		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			c.t.Fatalf("Invalid JSON %q: %v", raw, err)
		}

		switch head.Type {
		case MsgState:
			var msg StateMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				c.t.Fatalf("Invalid state message: %v", err)
			}
			return msg
		case MsgSound:
			var msg SoundMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				c.t.Fatalf("Invalid sound message: %v", err)
			}
			c.sounds = append(c.sounds, msg.Sound)
		default:
			c.t.Fatalf("Unexpected message type %q", head.Type)
		}
	}
}

func (c *wsClient) key(name string) StateMessage {
	c.t.Helper()
	c.send(ClientMessage{Type: MsgKey, Key: name})
	return c.state()
}

func TestIndexServesPage(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{}, store.NewMemoryStore(0))

	code, body := ts.get("/")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if !strings.Contains(body, "<canvas") || !strings.Contains(body, "/ws") {
		t.Error("Expected page with canvas and websocket client")
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{}, store.NewMemoryStore(0))

	code, body := ts.get("/healthz")
	if code != http.StatusOK {
		t.Errorf("Expected 200, got %d", code)
	}
	if !strings.Contains(body, `"ok"`) {
		t.Errorf("Expected ok status, got %s", body)
	}
}

func TestHighScoreEndpoint(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{}, store.NewMemoryStore(120))

	code, body := ts.get("/api/highscore")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	var resp struct {
		HighScore int `json:"highScore"`
	}
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if resp.HighScore != 120 {
		t.Errorf("Expected 120, got %d", resp.HighScore)
	}
}

func TestHighScoreEndpointStoreDown(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{}, failingStore{})

	code, _ := ts.get("/api/highscore")
	if code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", code)
	}
}

func TestWebSocketSession(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{}, store.NewMemoryStore(30))
	c := ts.connect()

	msg := c.state()
	if msg.State.Running || msg.State.Over {
		t.Error("Expected idle initial state")
	}
	if msg.State.HighScore != 30 {
		t.Errorf("Expected seeded high score 30, got %d", msg.State.HighScore)
	}
	if got := testutil.ToFloat64(ts.metrics.ActiveSessions); got != 1 {
		t.Errorf("Expected 1 active session, got %v", got)
	}

	msg = c.key(" ")
	if !msg.State.Running {
		t.Fatal("Expected running after space")
	}
	if len(c.sounds) != 1 || c.sounds[0] != "start" {
		t.Errorf("Expected start cue, got %v", c.sounds)
	}

	msg = c.key("ArrowLeft")
	if msg.State.Direction != game.Left {
		t.Errorf("Expected direction left, got %v", msg.State.Direction)
	}

	if !ts.tickers.Fire(waitTimeout) {
		t.Fatal("Expected a live ticker")
	}
	msg = c.state()
	want := game.Cell{X: 9, Y: 10}
	if msg.State.Snake[0] != want {
		t.Errorf("Expected head at %v, got %v", want, msg.State.Snake[0])
	}

	if got := testutil.ToFloat64(ts.metrics.GamesStarted.WithLabelValues("normal")); got != 1 {
		t.Errorf("Expected 1 game started, got %v", got)
	}
}

func TestWebSocketControls(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{}, store.NewMemoryStore(0))
	c := ts.connect()
	c.state()

	c.send(ClientMessage{Type: MsgDifficulty, Difficulty: "hard"})
	msg := c.state()
	if msg.State.Difficulty != game.DifficultyHard {
		t.Errorf("Expected hard, got %v", msg.State.Difficulty)
	}

	off := false
	c.send(ClientMessage{Type: MsgSound, Enabled: &off})
	msg = c.state()
	if msg.State.SoundEnabled {
		t.Error("Expected sound off")
	}

	// Muted sessions send no cues
	c.send(ClientMessage{Type: MsgAction, Action: "start"})
	msg = c.state()
	if !msg.State.Running {
		t.Error("Expected running after start action")
	}
	if len(c.sounds) != 0 {
		t.Errorf("Expected no cues while muted, got %v", c.sounds)
	}

	msg = c.key("1")
	if msg.Status == "" {
		t.Error("Expected a status message for difficulty change while running")
	}
	if msg.State.Difficulty != game.DifficultyHard {
		t.Errorf("Expected difficulty unchanged, got %v", msg.State.Difficulty)
	}
}

func TestWebSocketEscapeKeepsSession(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{}, store.NewMemoryStore(0))
	c := ts.connect()
	c.state()

	msg := c.key("s")
	if !msg.SettingsOpen {
		t.Fatal("Expected settings dialog open")
	}
	msg = c.key("Escape")
	if msg.SettingsOpen {
		t.Error("Expected escape to close the dialog")
	}

	c.key("Escape")
	msg = c.key("Enter")
	if !msg.State.Running {
		t.Error("Expected session to survive escape")
	}
}

func TestWebSocketIgnoresBadMessages(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{}, store.NewMemoryStore(0))
	c := ts.connect()
	c.state()

	if err := c.conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}
	c.send(ClientMessage{Type: "bogus"})
	c.send(ClientMessage{Type: MsgKey, Key: "F5"})

	msg := c.key("Enter")
	if !msg.State.Running {
		t.Error("Expected connection usable after bad messages")
	}
}

func TestWebSocketOriginCheck(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{AllowedOrigin: "http://good.example"}, store.NewMemoryStore(0))

	_, resp, err := ts.dial(http.Header{"Origin": []string{"http://evil.example"}})
	if err == nil {
		t.Fatal("Expected dial with foreign origin to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected 403, got %v", resp)
	}

	conn, _, err := ts.dial(http.Header{"Origin": []string{"http://good.example"}})
	if err != nil {
		t.Fatalf("Expected allowed origin to connect: %v", err)
	}
	conn.Close()
}

func TestCloseEndsSessions(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{}, store.NewMemoryStore(0))
	c := ts.connect()
	c.state()

	ctx, cancel := context.WithTimeout(context.Background(), waitTimeout)
	defer cancel()
	if err := ts.srv.Close(ctx); err != nil {
		t.Fatalf("Expected clean close, got %v", err)
	}

	c.conn.SetReadDeadline(time.Now().Add(waitTimeout))
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
	if got := testutil.ToFloat64(ts.metrics.ActiveSessions); got != 0 {
		t.Errorf("Expected 0 active sessions, got %v", got)
	}

	code, _ := ts.get("/ws")
	if code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 after close, got %d", code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, config.ServerConfig{}, store.NewMemoryStore(0))

	code, body := ts.get("/metrics")
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", code)
	}
	if !strings.Contains(body, "snake_active_sessions") {
		t.Error("Expected snake metrics in exposition")
	}
}

func TestDecodeIntent(t *testing.T) {
	keys := input.DefaultKeyTable()
	on := true

	tests := []struct {
		name    string
		raw     string
		want    input.Intent
		wantErr error
	}{
		{"arrow", `{"type":"key","key":"ArrowUp"}`, input.Turn(game.Up), nil},
		{"space", `{"type":"key","key":" "}`, input.Intent{Type: input.IntentToggle}, nil},
		{"unbound key", `{"type":"key","key":"F5"}`, input.Intent{}, nil},
		{"action", `{"type":"action","action":"pause"}`, input.Intent{Type: input.IntentPause}, nil},
		{"difficulty name", `{"type":"difficulty","difficulty":"extreme"}`, input.SelectDifficulty(game.DifficultyExtreme), nil},
		{"difficulty index", `{"type":"difficulty","difficulty":"1"}`, input.SelectDifficulty(game.DifficultyEasy), nil},
		{"sound", `{"type":"sound","enabled":true}`, input.SetSound(on), nil},
		{"sound without flag", `{"type":"sound"}`, input.Intent{}, ErrMissingEnabled},
		{"unknown action", `{"type":"action","action":"fly"}`, input.Intent{}, ErrUnknownAction},
		{"unknown type", `{"type":"chat"}`, input.Intent{}, ErrUnknownMessage},
		{"bad difficulty", `{"type":"difficulty","difficulty":"insane"}`, input.Intent{}, game.ErrUnknownDifficulty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeIntent([]byte(tt.raw), keys)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}

	if _, err := decodeIntent([]byte("{"), keys); err == nil {
		t.Error("Expected error for malformed JSON")
	}
}
