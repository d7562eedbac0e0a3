package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyCombination represents a key with optional modifiers
type KeyCombination struct {
	Key   ebiten.Key
	Shift bool
	Ctrl  bool
	Alt   bool
}

// parseModifiers fills the modifier flags from every part except the last one.
func parseModifiers(parts []string) (shift, ctrl, alt bool, err error) {
	for _, part := range parts {
		switch strings.ToLower(part) {
		case "shift":
			shift = true
		case "ctrl":
			ctrl = true
		case "alt":
			alt = true
		default:
			return false, false, false, fmt.Errorf("unknown modifier: %s", part)
		}
	}
	return shift, ctrl, alt, nil
}

// parseKeyString parses a key string like "Shift+Slash" into a KeyCombination.
// Key names are Ebiten's own (ArrowLeft, Space, A, Digit1, F11...).
func parseKeyString(keyStr string) (KeyCombination, error) {
	parts := strings.Split(keyStr, "+")
	keyName := parts[len(parts)-1]
	if keyName == "" {
		return KeyCombination{}, fmt.Errorf("empty key string")
	}

	var key ebiten.Key
	if err := key.UnmarshalText([]byte(keyName)); err != nil {
		return KeyCombination{}, fmt.Errorf("unknown key: %s", keyName)
	}

	shift, ctrl, alt, err := parseModifiers(parts[:len(parts)-1])
	if err != nil {
		return KeyCombination{}, err
	}
	return KeyCombination{Key: key, Shift: shift, Ctrl: ctrl, Alt: alt}, nil
}

// modifiersMatch checks that exactly the wanted modifiers are held.
func modifiersMatch(shift, ctrl, alt bool) bool {
	return ebiten.IsKeyPressed(ebiten.KeyShift) == shift &&
		ebiten.IsKeyPressed(ebiten.KeyControl) == ctrl &&
		ebiten.IsKeyPressed(ebiten.KeyAlt) == alt
}

// KeybindingManager handles dynamic keybinding processing
type KeybindingManager struct {
	keybindings map[string][]string
	parsed      map[string][]KeyCombination
}

// NewKeybindingManager creates a new KeybindingManager
func NewKeybindingManager(keybindings map[string][]string) *KeybindingManager {
	km := &KeybindingManager{}
	km.UpdateKeybindings(keybindings)
	return km
}

// CheckAction checks if any keybinding for the given action was just pressed
func (km *KeybindingManager) CheckAction(action string) bool {
	for _, combination := range km.parsed[action] {
		if inpututil.IsKeyJustPressed(combination.Key) &&
			modifiersMatch(combination.Shift, combination.Ctrl, combination.Alt) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action using the InputActions interface
func (km *KeybindingManager) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	if !km.CheckAction(action) {
		return false
	}

	return globalActionExecutor.ExecuteAction(action, inputActions, inputState)
}

// GetKeybindings returns the current keybindings map (for display purposes)
func (km *KeybindingManager) GetKeybindings() map[string][]string {
	return km.keybindings
}

// UpdateKeybindings replaces the bindings. Invalid entries are skipped; config
// loading has already reported them.
func (km *KeybindingManager) UpdateKeybindings(keybindings map[string][]string) {
	km.keybindings = keybindings
	km.parsed = make(map[string][]KeyCombination, len(keybindings))
	for action, keys := range keybindings {
		for _, keyStr := range keys {
			if combination, err := parseKeyString(keyStr); err == nil {
				km.parsed[action] = append(km.parsed[action], combination)
			}
		}
	}
}
