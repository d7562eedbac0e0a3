package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	WheelSensitivity float64 `json:"wheel_sensitivity"`
	DoubleClickTime  int     `json:"double_click_time"` // milliseconds
	EnableMouse      bool    `json:"enable_mouse"`
	WheelInverted    bool    `json:"wheel_inverted"`
}

// MouseCombination represents a mouse action with optional modifiers.
// The left button is reserved for swipes and on-screen controls.
type MouseCombination struct {
	Button        ebiten.MouseButton
	IsWheel       bool
	WheelDeltaX   float64
	WheelDeltaY   float64
	IsDoubleClick bool
	Shift         bool
	Ctrl          bool
	Alt           bool
}

var mouseButtonNames = map[string]ebiten.MouseButton{
	"RightClick":  ebiten.MouseButtonRight,
	"MiddleClick": ebiten.MouseButtonMiddle,
	"Back":        ebiten.MouseButton3,
	"Forward":     ebiten.MouseButton4,
}

var wheelDirections = map[string][2]float64{
	"WheelUp":    {0, 1},
	"WheelDown":  {0, -1},
	"WheelLeft":  {-1, 0},
	"WheelRight": {1, 0},
}

// parseMouseString parses a mouse string like "Shift+RightClick" or "WheelUp".
func parseMouseString(mouseStr string) (MouseCombination, error) {
	parts := strings.Split(mouseStr, "+")
	actionName := parts[len(parts)-1]

	var combination MouseCombination
	if delta, ok := wheelDirections[actionName]; ok {
		combination.IsWheel = true
		combination.WheelDeltaX, combination.WheelDeltaY = delta[0], delta[1]
	} else {
		base := actionName
		if strings.HasPrefix(actionName, "Double") {
			combination.IsDoubleClick = true
			base = strings.TrimPrefix(actionName, "Double")
		}
		button, ok := mouseButtonNames[base]
		if !ok {
			return MouseCombination{}, fmt.Errorf("unknown mouse action: %s", actionName)
		}
		combination.Button = button
	}

	var err error
	combination.Shift, combination.Ctrl, combination.Alt, err = parseModifiers(parts[:len(parts)-1])
	if err != nil {
		return MouseCombination{}, err
	}
	return combination, nil
}

// wheelMatches reports whether a wheel delta goes the bound direction.
func wheelMatches(combination MouseCombination, wheelX, wheelY float64) bool {
	if combination.WheelDeltaX != 0 {
		return combination.WheelDeltaX*wheelX > 0
	}
	return combination.WheelDeltaY*wheelY > 0
}

// DoubleClickTracker tracks double-click state
type DoubleClickTracker struct {
	lastClickTime   time.Time
	lastClickButton ebiten.MouseButton
	clickCount      int
}

// register records a press at now and reports whether it completes a double click.
func (t *DoubleClickTracker) register(button ebiten.MouseButton, now time.Time, window time.Duration) bool {
	if t.clickCount > 0 && t.lastClickButton == button && now.Sub(t.lastClickTime) <= window {
		t.clickCount = 0
		t.lastClickTime = now
		return true
	}
	t.clickCount = 1
	t.lastClickButton = button
	t.lastClickTime = now
	return false
}

// MousebindingManager handles dynamic mouse binding processing
type MousebindingManager struct {
	mousebindings      map[string][]string
	parsed             map[string][]MouseCombination
	settings           MouseSettings
	doubleClickTracker DoubleClickTracker
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(mousebindings map[string][]string, settings MouseSettings) *MousebindingManager {
	mm := &MousebindingManager{settings: settings}
	mm.UpdateMousebindings(mousebindings)
	return mm
}

func (mm *MousebindingManager) isTriggered(combination MouseCombination) bool {
	if !modifiersMatch(combination.Shift, combination.Ctrl, combination.Alt) {
		return false
	}

	if combination.IsWheel {
		wheelX, wheelY := ebiten.Wheel()
		if mm.settings.WheelInverted {
			wheelY = -wheelY
		}
		return wheelMatches(combination, wheelX*mm.settings.WheelSensitivity, wheelY*mm.settings.WheelSensitivity)
	}

	if !inpututil.IsMouseButtonJustPressed(combination.Button) {
		return false
	}
	if combination.IsDoubleClick {
		window := time.Duration(mm.settings.DoubleClickTime) * time.Millisecond
		return mm.doubleClickTracker.register(combination.Button, time.Now(), window)
	}
	return true
}

// CheckAction checks if any mouse binding for the given action is triggered
func (mm *MousebindingManager) CheckAction(action string) bool {
	if !mm.settings.EnableMouse {
		return false
	}
	for _, combination := range mm.parsed[action] {
		if mm.isTriggered(combination) {
			return true
		}
	}
	return false
}

// ExecuteAction executes the given action using the InputActions interface
func (mm *MousebindingManager) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	if !mm.CheckAction(action) {
		return false
	}

	return globalActionExecutor.ExecuteAction(action, inputActions, inputState)
}

// GetMousebindings returns the current mouse bindings map (for display purposes)
func (mm *MousebindingManager) GetMousebindings() map[string][]string {
	return mm.mousebindings
}

// UpdateMousebindings replaces the bindings, skipping invalid entries.
func (mm *MousebindingManager) UpdateMousebindings(mousebindings map[string][]string) {
	mm.mousebindings = mousebindings
	mm.parsed = make(map[string][]MouseCombination, len(mousebindings))
	for action, strs := range mousebindings {
		for _, s := range strs {
			if combination, err := parseMouseString(s); err == nil {
				mm.parsed[action] = append(mm.parsed[action], combination)
			}
		}
	}
}

// UpdateSettings updates the mouse settings
func (mm *MousebindingManager) UpdateSettings(settings MouseSettings) {
	mm.settings = settings
}

// GetSettings returns the current mouse settings
func (mm *MousebindingManager) GetSettings() MouseSettings {
	return mm.settings
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		WheelSensitivity: 1.0,
		DoubleClickTime:  300,
		EnableMouse:      true,
		WheelInverted:    false,
	}
}
