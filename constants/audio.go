package constants

import "time"

// Audio Output
const (
	// AudioSampleRate is the default output sample rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// AudioMasterVolume is the default master volume (0.0-1.0)
	AudioMasterVolume = 0.5

	// ToneGain is the peak amplitude of a single beep before master volume
	ToneGain = 0.3
)

// Eat Sound Timing
const (
	EatSoundFrequency = 800.0
	EatSoundDuration  = 100 * time.Millisecond
)

// Start Sound Timing (rising three-note arpeggio)
const (
	StartSoundNoteGap      = 100 * time.Millisecond
	StartSoundNoteDuration = 100 * time.Millisecond
	StartSoundLastDuration = 200 * time.Millisecond
)

// Game Over Sound Timing (falling three-note run)
const (
	GameOverSoundNoteGap      = 100 * time.Millisecond
	GameOverSoundNoteDuration = 300 * time.Millisecond
	GameOverSoundLastDuration = 500 * time.Millisecond
)

// Envelope Shape
const (
	ToneAttack = 5 * time.Millisecond
)
