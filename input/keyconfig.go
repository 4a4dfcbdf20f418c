package input

import (
	"fmt"
	"strings"
)

// LoadKeyConfig parses key name → action name bindings into a sparse override KeyTable
// Returns error on unknown action names or invalid key names
func LoadKeyConfig(bindings map[string]string) (*KeyTable, error) {
	kt := &KeyTable{
		SpecialKeys: make(map[Key]Intent),
		Runes:       make(map[rune]Intent),
	}

	for keyStr, actionName := range bindings {
		ev, ok := KeyByName(keyStr)
		if !ok {
			return nil, fmt.Errorf("unknown key name: %q", keyStr)
		}

		in, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyStr, err)
		}

		if ev.Key == KeyRune {
			kt.Runes[ev.Rune] = in
		} else {
			kt.SpecialKeys[ev.Key] = in
		}
	}

	return kt, nil
}

// resolveAction converts an action name string to an intent
func resolveAction(name string) (Intent, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	in, ok := ActionIntent(name)
	if !ok {
		return Intent{}, fmt.Errorf("unknown action: %q", name)
	}
	return in, nil
}

// MergeKeyTable returns a new KeyTable with base values overridden by the override table
// Override entries bound to "none" delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}

	for k, v := range override.SpecialKeys {
		if v.Type == IntentNone {
			delete(result.SpecialKeys, k)
		} else {
			result.SpecialKeys[k] = v
		}
	}
	for r, v := range override.Runes {
		if v.Type == IntentNone {
			delete(result.Runes, r)
		} else {
			result.Runes[r] = v
		}
	}

	return result
}
