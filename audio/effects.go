package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/vi-snake/constants"
	"github.com/lixenwraith/vi-snake/game"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and an exponential decay to near silence
type envelope struct {
	streamer      beep.Streamer
	position      int
	attackSamples int
	totalSamples  int
}

// NewEnvelope shapes s over duration
// Decay reaches 1% of peak at the end, like a ramp to 0.01 gain
func NewEnvelope(s beep.Streamer, duration, attack time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total)
	return &envelope{
		streamer:      s,
		attackSamples: att,
		totalSamples:  total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	decaySamples := e.totalSamples - e.attackSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if decaySamples > 0 {
			progress := float64(e.position-e.attackSamples) / float64(decaySamples)
			vol = math.Pow(0.01, progress)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone is one shaped beep
func tone(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, duration, wave, rate)
	return NewEnvelope(osc, duration, constants.ToneAttack, rate)
}

// delayed prefixes s with silence
func delayed(s beep.Streamer, offset time.Duration, rate beep.SampleRate) beep.Streamer {
	if offset <= 0 {
		return s
	}
	return beep.Seq(beep.Silence(rate.N(offset)), s)
}

// run mixes tones starting every gap; the last tone uses lastDuration
func run(freqs []float64, gap, duration, lastDuration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(freqs))
	for i, f := range freqs {
		d := duration
		if i == len(freqs)-1 {
			d = lastDuration
		}
		parts = append(parts, delayed(tone(f, d, wave, rate), time.Duration(i)*gap, rate))
	}
	return beep.Mix(parts...)
}

// Sound effect generators

// CreateStartSound generates a rising 600/800/1000 Hz arpeggio
func CreateStartSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	arp := run([]float64{600, 800, 1000},
		constants.StartSoundNoteGap, constants.StartSoundNoteDuration, constants.StartSoundLastDuration,
		WaveSine, rate)

	return newVolume(arp, constants.ToneGain*cfg.MasterVolume)
}

// CreateEatSound generates a short square blip
func CreateEatSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	blip := tone(constants.EatSoundFrequency, constants.EatSoundDuration, WaveSquare, rate)

	return newVolume(blip, constants.ToneGain*cfg.MasterVolume)
}

// CreateGameOverSound generates a falling 300/250/200 Hz run
func CreateGameOverSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	fall := run([]float64{300, 250, 200},
		constants.GameOverSoundNoteGap, constants.GameOverSoundNoteDuration, constants.GameOverSoundLastDuration,
		WaveSine, rate)

	return newVolume(fall, constants.ToneGain*cfg.MasterVolume)
}

// GetSoundEffect returns the streamer for a game signal, nil for SignalNone
func GetSoundEffect(sig game.Signal, cfg *AudioConfig) beep.Streamer {
	switch sig {
	case game.SignalStart:
		return CreateStartSound(cfg)
	case game.SignalEat:
		return CreateEatSound(cfg)
	case game.SignalGameOver:
		return CreateGameOverSound(cfg)
	default:
		return nil
	}
}
