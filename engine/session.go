package engine

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/lixenwraith/vi-snake/audio"
	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/input"
	"github.com/lixenwraith/vi-snake/store"
)

// Status messages shown by presenters
const (
	StatusDifficultyLocked = "Pause the game to change difficulty"
	StatusSettingsLocked   = "Settings are locked while running"
	StatusSoundOn          = "Sound on"
	StatusSoundOff         = "Sound off"
	StatusStoreUnavailable = "High score store unavailable, not saved"
)

// Frame is everything a presenter needs to draw one screen
type Frame struct {
	Snapshot     game.Snapshot
	SettingsOpen bool
	Status       string // Transient message, empty when none
	StatusSeq    uint64 // Bumped each time a status is raised, so a repeated message restarts its timeout
}

// Presenter draws frames; called on the session goroutine after every change
type Presenter interface {
	Present(f Frame)
}

// PresenterFunc adapts a function to Presenter
type PresenterFunc func(f Frame)

func (p PresenterFunc) Present(f Frame) { p(f) }

// Observer is notified of every emitted signal, regardless of sound setting
type Observer interface {
	OnSignal(sig game.Signal, snap game.Snapshot)
}

// Session owns one game and serializes every mutation on its Run goroutine
type Session struct {
	state   *game.State
	clock   *Clock
	intents chan input.Intent
	done    chan struct{}
	once    sync.Once

	store     store.ScoreStore
	sink      audio.Sink
	presenter Presenter
	observers []Observer

	soundEnabled bool
	quitEnabled  bool
	settingsOpen bool
	status       string
	statusSeq    uint64
	saved        int // Last persisted high score
}

// Option configures a Session
type Option func(*Session)

// WithStore persists the high score; default is an in-memory store
func WithStore(s store.ScoreStore) Option {
	return func(sess *Session) { sess.store = s }
}

// WithSink plays cues; default is silent
func WithSink(s audio.Sink) Option {
	return func(sess *Session) { sess.sink = s }
}

// WithSound sets the initial sound toggle
func WithSound(enabled bool) Option {
	return func(sess *Session) { sess.soundEnabled = enabled }
}

// WithPresenter receives a frame after every change
func WithPresenter(p Presenter) Option {
	return func(sess *Session) { sess.presenter = p }
}

// WithObserver adds a signal observer
func WithObserver(o Observer) Option {
	return func(sess *Session) { sess.observers = append(sess.observers, o) }
}

// WithTicker replaces the production ticker
func WithTicker(f TickerFactory) Option {
	return func(sess *Session) { sess.clock = NewClock(f) }
}

// WithQuitDisabled keeps the session alive on quit intents, which then only close the settings dialog
// Used where the owner ends the session through ctx instead, such as a websocket connection
func WithQuitDisabled() Option {
	return func(sess *Session) { sess.quitEnabled = false }
}

// WithState replaces the default state, used to inject difficulty or a deterministic food placer
func WithState(st *game.State) Option {
	return func(sess *Session) { sess.state = st }
}

// NewSession creates an idle session at normal difficulty
func NewSession(opts ...Option) *Session {
	s := &Session{
		intents:      make(chan input.Intent, constants.IntentQueueSize),
		done:         make(chan struct{}),
		sink:         audio.NopSink{},
		soundEnabled: true,
		quitEnabled:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.state == nil {
		s.state = game.NewState(game.DefaultDifficulty, nil)
	}
	if s.clock == nil {
		s.clock = NewClock(nil)
	}
	if s.store == nil {
		s.store = store.NewMemoryStore(0)
	}
	return s
}

// Submit queues an intent in order; safe from any goroutine
// Blocks while the queue is full, returns false once the session has stopped
func (s *Session) Submit(in input.Intent) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.intents <- in:
		return true
	case <-s.done:
		return false
	}
}

// Done is closed when Run returns
func (s *Session) Done() <-chan struct{} { return s.done }

// Run drives the session until ctx is cancelled or a quit intent arrives
// Returns nil on quit and ctx.Err() on cancellation
func (s *Session) Run(ctx context.Context) error {
	defer s.once.Do(func() { close(s.done) })
	defer s.clock.Stop()

	s.loadHighScore(ctx)
	s.present()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case in := <-s.intents:
			if quit := s.handle(ctx, in); quit {
				return nil
			}

		case <-s.clock.C():
			res := s.state.Step()
			s.afterStep(ctx, res)
		}

		s.clock.Sync(s.state.Active(), s.state.Period())
		s.present()
	}
}

// handle applies one intent; returns true on quit
func (s *Session) handle(ctx context.Context, in input.Intent) bool {
	s.status = ""

	switch in.Type {
	case input.IntentQuit:
		// Esc closes the dialog before it quits
		if s.settingsOpen {
			s.settingsOpen = false
			return false
		}
		return s.quitEnabled

	case input.IntentToggleSound:
		s.setSound(!s.soundEnabled)

	case input.IntentSetSound:
		s.setSound(in.Enabled)

	case input.IntentSettings:
		if s.settingsOpen {
			s.settingsOpen = false
		} else if s.state.Running() {
			s.setStatus(StatusSettingsLocked)
		} else {
			s.settingsOpen = true
		}

	case input.IntentDifficulty:
		if err := s.state.SetDifficulty(in.Difficulty); err != nil {
			if errors.Is(err, game.ErrDifficultyLocked) {
				s.setStatus(StatusDifficultyLocked)
			} else {
				log.Printf("session: set difficulty %d: %v", in.Difficulty, err)
			}
		}

	case input.IntentStart:
		if s.settingsOpen {
			s.settingsOpen = false
			return false
		}
		if s.state.Over() {
			s.refreshHighScore(ctx)
		}
		s.emit(s.state.Start())

	case input.IntentToggle:
		if s.settingsOpen {
			return false
		}
		if s.state.Over() {
			s.refreshHighScore(ctx)
		}
		s.emit(s.state.Toggle())

	case input.IntentPause:
		s.state.Pause()

	case input.IntentRestart:
		if s.settingsOpen {
			return false
		}
		s.refreshHighScore(ctx)
		s.state.Restart()

	case input.IntentDirection:
		s.state.Turn(in.Direction)
	}

	return false
}

func (s *Session) afterStep(ctx context.Context, res game.StepResult) {
	if res.NewRecord {
		s.saveHighScore(ctx)
	}
	s.emit(res.Signal)
}

// emit plays the cue and notifies observers
func (s *Session) emit(sig game.Signal) {
	if sig == game.SignalNone {
		return
	}
	if s.soundEnabled {
		s.sink.Play(sig)
	}
	if len(s.observers) == 0 {
		return
	}
	snap := s.snapshot()
	for _, o := range s.observers {
		o.OnSignal(sig, snap)
	}
}

func (s *Session) setSound(enabled bool) {
	s.soundEnabled = enabled
	if enabled {
		s.setStatus(StatusSoundOn)
	} else {
		s.setStatus(StatusSoundOff)
	}
}

func (s *Session) setStatus(msg string) {
	s.status = msg
	s.statusSeq++
}

// loadHighScore seeds the state; an unavailable store degrades to memory starting at 0
func (s *Session) loadHighScore(ctx context.Context) {
	lctx, cancel := context.WithTimeout(ctx, constants.StoreTimeout)
	defer cancel()

	score, err := s.store.Load(lctx)
	if err != nil {
		log.Printf("session: load high score: %v, using memory", err)
		s.store = store.NewMemoryStore(0)
		return
	}
	s.state.SeedHighScore(score)
	s.saved = s.state.HighScore()
}

// refreshHighScore picks up records saved by other sessions sharing the store
// Failures keep the current value
func (s *Session) refreshHighScore(ctx context.Context) {
	lctx, cancel := context.WithTimeout(ctx, constants.StoreTimeout)
	defer cancel()

	score, err := s.store.Load(lctx)
	if err != nil {
		log.Printf("session: refresh high score: %v", err)
		return
	}
	s.state.SeedHighScore(score)
	s.saved = max(s.saved, score)
}

// saveHighScore persists a new record without lowering a higher one stored by another session
// Failures keep the in-memory value
func (s *Session) saveHighScore(ctx context.Context) {
	hs := s.state.HighScore()
	if hs <= s.saved {
		return
	}

	sctx, cancel := context.WithTimeout(ctx, constants.StoreTimeout)
	defer cancel()

	stored, err := s.store.SaveIfHigher(sctx, hs)
	if err != nil {
		log.Printf("session: save high score %d: %v", hs, err)
		s.setStatus(StatusStoreUnavailable)
		return
	}
	s.state.SeedHighScore(stored)
	s.saved = stored
}

func (s *Session) snapshot() game.Snapshot {
	snap := s.state.Snapshot()
	snap.SoundEnabled = s.soundEnabled
	return snap
}

func (s *Session) present() {
	if s.presenter == nil {
		return
	}
	s.presenter.Present(Frame{
		Snapshot:     s.snapshot(),
		SettingsOpen: s.settingsOpen,
		Status:       s.status,
		StatusSeq:    s.statusSeq,
	})
}
