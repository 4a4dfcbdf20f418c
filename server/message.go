package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lixenwraith/vi-snake/engine"
	"github.com/lixenwraith/vi-snake/game"
	"github.com/lixenwraith/vi-snake/input"
)

// Inbound message types
const (
	MsgKey        = "key"
	MsgAction     = "action"
	MsgDifficulty = "difficulty"
	MsgSound      = "sound"
)

// Outbound message types
const (
	MsgState = "state"
)

var (
	ErrUnknownMessage = errors.New("unknown message type")
	ErrUnknownAction  = errors.New("unknown action")
	ErrMissingEnabled = errors.New("sound message without enabled flag")
)

// ClientMessage is sent by the browser
type ClientMessage struct {
	Type       string `json:"type"`
	Key        string `json:"key,omitempty"`        // KeyboardEvent.key
	Action     string `json:"action,omitempty"`     // Button action name
	Difficulty string `json:"difficulty,omitempty"` // Name or 1-4
	Enabled    *bool  `json:"enabled,omitempty"`
}

// StateMessage carries one frame to the browser
type StateMessage struct {
	Type         string        `json:"type"`
	State        game.Snapshot `json:"state"`
	SettingsOpen bool          `json:"settingsOpen"`
	Status       string        `json:"status,omitempty"`
	StatusSeq    uint64        `json:"statusSeq,omitempty"`
}

// SoundMessage asks the browser to play a cue
type SoundMessage struct {
	Type  string `json:"type"`
	Sound string `json:"sound"`
}

func encodeFrame(f engine.Frame) ([]byte, error) {
	return json.Marshal(StateMessage{
		Type:         MsgState,
		State:        f.Snapshot,
		SettingsOpen: f.SettingsOpen,
		Status:       f.Status,
		StatusSeq:    f.StatusSeq,
	})
}

func encodeSound(sig game.Signal) ([]byte, error) {
	return json.Marshal(SoundMessage{Type: MsgSound, Sound: sig.String()})
}

// decodeIntent translates a browser message into a session intent
// Keys without a binding map to IntentNone
func decodeIntent(raw []byte, keys *input.KeyTable) (input.Intent, error) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return input.Intent{}, fmt.Errorf("decode message: %w", err)
	}

	switch msg.Type {
	case MsgKey:
		return keys.Map(input.FromBrowser(msg.Key)), nil

	case MsgAction:
		in, ok := input.ActionIntent(msg.Action)
		if !ok {
			return input.Intent{}, fmt.Errorf("%w: %q", ErrUnknownAction, msg.Action)
		}
		return in, nil

	case MsgDifficulty:
		d, err := game.ParseDifficulty(msg.Difficulty)
		if err != nil {
			return input.Intent{}, err
		}
		return input.SelectDifficulty(d), nil

	case MsgSound:
		if msg.Enabled == nil {
			return input.Intent{}, ErrMissingEnabled
		}
		return input.SetSound(*msg.Enabled), nil

	default:
		return input.Intent{}, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
}
