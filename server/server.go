package server

import (
	"context"
	_ "embed"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/vi-snake/config"
	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/metrics"
	"github.com/lixenwraith/vi-snake/store"
)

//go:embed web/index.html
var indexHTML []byte

// Server hosts one game session per websocket connection
// Sessions are independent and share only the high score store
type Server struct {
	cfg        config.ServerConfig
	store      store.ScoreStore
	difficulty game.Difficulty
	keys       *input.KeyTable

	metrics  *metrics.Metrics
	gatherer prometheus.Gatherer

	sessionOpts []engine.Option

	upgrader websocket.Upgrader
	router   *gin.Engine

	ctx     context.Context
	cancel  context.CancelFunc
	clients sync.WaitGroup
	nextID  atomic.Uint64
}

// Option configures a Server
type Option func(*Server)

// WithMetrics counts session signals and serves the gatherer on /metrics
func WithMetrics(m *metrics.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// WithDifficulty sets the starting difficulty of new sessions
func WithDifficulty(d game.Difficulty) Option {
	return func(s *Server) { s.difficulty = d }
}

// WithKeyTable replaces the browser key bindings
func WithKeyTable(kt *input.KeyTable) Option {
	return func(s *Server) { s.keys = kt }
}

// WithSessionOptions appends options to every new session
func WithSessionOptions(opts ...engine.Option) Option {
	return func(s *Server) { s.sessionOpts = append(s.sessionOpts, opts...) }
}

// New creates a server backed by st
func New(cfg config.ServerConfig, st store.ScoreStore, opts ...Option) *Server {
	s := &Server{
		cfg:        cfg,
		store:      st,
		difficulty: game.DefaultDifficulty,
		keys:       input.DefaultKeyTable(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	allowed := cfg.AllowedOrigin
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowed == "" {
				return true
			}
			return r.Header.Get("Origin") == allowed
		},
	}

	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", s.index)
	r.GET("/ws", s.serveWS)
	r.GET("/healthz", s.health)
	r.GET("/api/highscore", s.highScore)
	if s.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
	}
	return r
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close ends all sessions and waits for their connections to finish
func (s *Server) Close(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.clients.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) highScore(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), constants.StoreTimeout)
	defer cancel()

	score, err := s.store.Load(ctx)
	if err != nil {
		log.Printf("server: load high score: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "high score unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"highScore": score})
}

func (s *Server) serveWS(c *gin.Context) {
	if s.ctx.Err() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "shutting down"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error
		log.Printf("server: ws upgrade: %v", err)
		return
	}

	opts := []engine.Option{
		engine.WithStore(s.store),
		engine.WithState(game.NewState(s.difficulty, nil)),
	}
	if s.metrics != nil {
		opts = append(opts, engine.WithObserver(s.metrics))
	}
	opts = append(opts, s.sessionOpts...)

	id := s.nextID.Add(1)
	cl := newClient(id, conn, s.keys, opts)

	s.clients.Add(1)
	go func() {
		defer s.clients.Done()

		if s.metrics != nil {
			s.metrics.SessionOpened()
			defer s.metrics.SessionClosed()
		}

		start := time.Now()
		log.Printf("server: client %d connected from %s", id, conn.RemoteAddr())
		cl.run(s.ctx)
		log.Printf("server: client %d disconnected after %s", id, time.Since(start).Round(time.Second))
	}()
}
