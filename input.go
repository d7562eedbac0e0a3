package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"folio/internal/gallery"
)

// controlClick pairs a press with its release so that a control only fires
// when both land on it. Dragging off a control cancels the click.
type controlClick struct {
	active bool
	kind   gallery.ControlKind
	// onControl stays set until the next press so a swipe ending this tick
	// can tell it began on a control.
	onControl bool
}

func (c *controlClick) Press(kind gallery.ControlKind, hit bool) {
	c.active = hit
	c.kind = kind
	c.onControl = hit
}

// StartedOnControl reports whether the latest press landed on a control.
func (c *controlClick) StartedOnControl() bool {
	return c.onControl
}

func (c *controlClick) Release(kind gallery.ControlKind, hit bool) (gallery.ControlKind, bool) {
	fired := c.active && hit && kind == c.kind
	c.active = false
	return c.kind, fired
}

// tapPoint follows one press of the left mouse button or the first touch
// until it is released.
type tapPoint struct {
	touchID  ebiten.TouchID
	touching bool
	x, y     float64
	touchIDs []ebiten.TouchID
}

// pressed reports a left button press or a new touch this tick.
func (p *tapPoint) pressed() (float64, float64, bool) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return float64(x), float64(y), true
	}
	if p.touching {
		return 0, 0, false
	}
	p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) == 0 {
		return 0, 0, false
	}
	p.touchID = p.touchIDs[0]
	p.touching = true
	x, y := ebiten.TouchPosition(p.touchID)
	p.x, p.y = float64(x), float64(y)
	return p.x, p.y, true
}

// released reports where the press ended this tick.
func (p *tapPoint) released() (float64, float64, bool) {
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return float64(x), float64(y), true
	}
	if !p.touching {
		return 0, 0, false
	}
	if inpututil.IsTouchJustReleased(p.touchID) {
		p.touching = false
		return p.x, p.y, true
	}
	// released touches report 0,0 so remember the last live position
	x, y := ebiten.TouchPosition(p.touchID)
	p.x, p.y = float64(x), float64(y)
	return 0, 0, false
}

// InputHandler handles keyboard, mouse binding and on-screen control input
type InputHandler struct {
	inputActions        InputActions
	inputState          InputState
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	tap                 tapPoint
	click               controlClick
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, inputState InputState, keybindingManager *KeybindingManager, mousebindingManager *MousebindingManager) *InputHandler {
	return &InputHandler{
		inputActions:        inputActions,
		inputState:          inputState,
		keybindingManager:   keybindingManager,
		mousebindingManager: mousebindingManager,
	}
}

// HandleInput processes all input for the current frame
// Returns true if any input was processed, false otherwise
func (h *InputHandler) HandleInput() bool {
	if h.inputActions.GetTotalPagesCount() == 0 {
		// Nothing to show; only quitting makes sense
		return h.executeAction("exit")
	}

	if h.inputState.IsZoomed() {
		return h.handleZoomInput()
	}

	inputProcessed := false
	for _, action := range actionDefinitions {
		inputProcessed = h.executeAction(action.Name) || inputProcessed
	}
	inputProcessed = h.handleControlClicks() || inputProcessed

	return inputProcessed
}

// PressStartedOnControl reports whether the current or just released press
// began on an on-screen control. Swipes from such presses are ignored.
func (h *InputHandler) PressStartedOnControl() bool {
	return h.click.StartedOnControl()
}

func (h *InputHandler) executeAction(action string) bool {
	if h.keybindingManager.ExecuteAction(action, h.inputActions, h.inputState) {
		return true
	}
	if h.mousebindingManager != nil {
		return h.mousebindingManager.ExecuteAction(action, h.inputActions, h.inputState)
	}
	return false
}

// handleZoomInput lets exit, zoom and fullscreen through while zoomed. A tap
// anywhere closes the zoom view.
func (h *InputHandler) handleZoomInput() bool {
	inputProcessed := false
	for _, action := range []string{"exit", "zoom", "fullscreen", "help"} {
		inputProcessed = h.executeAction(action) || inputProcessed
	}

	if _, _, ok := h.tap.pressed(); ok {
		h.click.Press(0, false)
	}
	if _, _, ok := h.tap.released(); ok && h.inputState.IsZoomed() {
		h.inputActions.CloseZoom()
		inputProcessed = true
	}
	return inputProcessed
}

func (h *InputHandler) handleControlClicks() bool {
	if x, y, ok := h.tap.pressed(); ok {
		kind, hit := h.inputActions.ControlAt(x, y)
		h.click.Press(kind, hit)
	}

	x, y, ok := h.tap.released()
	if !ok {
		return false
	}
	kind, hit := h.inputActions.ControlAt(x, y)
	if kind, fired := h.click.Release(kind, hit); fired {
		h.inputActions.ActivateControl(kind)
		return true
	}
	return false
}
