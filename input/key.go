package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Key identifies a non-printable key, or KeyRune for printable characters
type Key uint8

const (
	KeyNone Key = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyCtrlC
)

// Event is a single key-down, independent of the source device
type Event struct {
	Key  Key
	Rune rune // Set when Key == KeyRune
}

// RuneEvent builds a printable key event
func RuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

var tcellKeys = map[tcell.Key]Key{
	tcell.KeyUp:     KeyUp,
	tcell.KeyDown:   KeyDown,
	tcell.KeyLeft:   KeyLeft,
	tcell.KeyRight:  KeyRight,
	tcell.KeyEnter:  KeyEnter,
	tcell.KeyEscape: KeyEscape,
	tcell.KeyCtrlC:  KeyCtrlC,
}

// FromTcell converts a terminal key event
func FromTcell(ev *tcell.EventKey) Event {
	if ev == nil {
		return Event{}
	}
	if ev.Key() == tcell.KeyRune {
		return RuneEvent(ev.Rune())
	}
	if k, ok := tcellKeys[ev.Key()]; ok {
		return Event{Key: k}
	}
	return Event{}
}

// Browser KeyboardEvent.key values
var browserKeys = map[string]Key{
	"ArrowUp":    KeyUp,
	"ArrowDown":  KeyDown,
	"ArrowLeft":  KeyLeft,
	"ArrowRight": KeyRight,
	"Enter":      KeyEnter,
	"Escape":     KeyEscape,
}

// FromBrowser converts a DOM KeyboardEvent.key value
func FromBrowser(name string) Event {
	if k, ok := browserKeys[name]; ok {
		return Event{Key: k}
	}
	runes := []rune(name)
	if len(runes) == 1 {
		return RuneEvent(runes[0])
	}
	return Event{}
}

// Names accepted in keymap configuration
var keyNames = map[string]Key{
	"up":     KeyUp,
	"down":   KeyDown,
	"left":   KeyLeft,
	"right":  KeyRight,
	"enter":  KeyEnter,
	"esc":    KeyEscape,
	"escape": KeyEscape,
	"ctrl-c": KeyCtrlC,
}

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space": ' ',
}

// KeyByName resolves a keymap key name or single character
func KeyByName(s string) (Event, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if k, ok := keyNames[lower]; ok {
		return Event{Key: k}, true
	}
	if r, ok := runeAliases[lower]; ok {
		return RuneEvent(r), true
	}
	runes := []rune(s)
	if len(runes) == 1 {
		return RuneEvent(runes[0]), true
	}
	return Event{}, false
}
