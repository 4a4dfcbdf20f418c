package audio

import (
	"fmt"
	"log"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/game"
)

// Sink plays the cue for a game signal
// Implementations must not block the caller
type Sink interface {
	Play(sig game.Signal)
}

// NopSink discards every cue
type NopSink struct{}

func (NopSink) Play(game.Signal) {}

// SinkFunc adapts a function to Sink
type SinkFunc func(sig game.Signal)

func (f SinkFunc) Play(sig game.Signal) { f(sig) }

// BeepSink plays synthesized cues through the system speaker
type BeepSink struct {
	mu          sync.Mutex
	config      *AudioConfig
	mixer       *beep.Mixer
	initialized bool
}

// NewBeepSink creates an uninitialized sink, call Init before Play
func NewBeepSink(cfg *AudioConfig) *BeepSink {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &BeepSink{
		config: cfg,
		mixer:  &beep.Mixer{},
	}
}

// Init opens the speaker and starts the mixer
func (s *BeepSink) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	rate := beep.SampleRate(s.config.SampleRate)
	if err := speaker.Init(rate, rate.N(constants.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play mixes the cue into the running output
func (s *BeepSink) Play(sig game.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	streamer := GetSoundEffect(sig, s.config)
	if streamer == nil {
		return
	}

	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Close silences the mixer
// beep has no speaker Close in this version; clearing stops all output
func (s *BeepSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}

	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.initialized = false
}

// NewSink returns a speaker-backed sink, or NopSink when disabled or no device is available
func NewSink(cfg *AudioConfig) (Sink, func()) {
	if cfg == nil || !cfg.Enabled {
		return NopSink{}, func() {}
	}

	bs := NewBeepSink(cfg)
	if err := bs.Init(); err != nil {
		log.Printf("audio: %v, continuing silent", err)
		return NopSink{}, func() {}
	}
	return bs, bs.Close
}
