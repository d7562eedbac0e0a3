package gesture

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Pointer reports the per-tick state of one input family in screen coordinates.
// Implementations are polled once per tick in the order JustPressed, Position,
// JustReleased.
type Pointer interface {
	// JustPressed reports a press that started this tick.
	JustPressed() (x, y float64, ok bool)
	// Position reports the current position while the pointer is held.
	Position() (x, y float64, ok bool)
	// JustReleased reports whether the held pointer was released this tick.
	JustReleased() bool
	// Reset forgets a held pointer whose release will never be polled.
	Reset()
}

// Adapter normalises one Pointer into Detector updates.
type Adapter struct {
	source   Source
	pointer  Pointer
	tracking bool
	lastX    float64
}

// NewAdapter wraps pointer as an input of the given source family.
func NewAdapter(source Source, pointer Pointer) *Adapter {
	return &Adapter{source: source, pointer: pointer}
}

// NewTouchAdapter reads the first active touch from Ebiten.
func NewTouchAdapter() *Adapter {
	return NewAdapter(SourceTouch, &ebitenTouch{})
}

// NewMouseAdapter reads the left mouse button from Ebiten.
func NewMouseAdapter() *Adapter {
	return NewAdapter(SourceMouse, ebitenMouse{})
}

func (a *Adapter) Source() Source {
	return a.source
}

// Poll feeds this tick's pointer state into d. Presses outside region never
// start a cycle.
func (a *Adapter) Poll(d *Detector, region Region) Intent {
	if x, y, ok := a.pointer.JustPressed(); ok && region.Contains(x, y) {
		if d.Down(a.source, x) {
			a.tracking = true
			a.lastX = x
		}
	}

	if a.tracking {
		if x, _, ok := a.pointer.Position(); ok && x != a.lastX {
			d.Move(a.source, x)
			a.lastX = x
		}
	}

	released := a.pointer.JustReleased()
	if !a.tracking || !released {
		return None
	}
	a.tracking = false
	return d.Up(a.source)
}

// Reset drops any tracking state, including a press the pointer still holds.
func (a *Adapter) Reset() {
	a.tracking = false
	a.lastX = 0
	a.pointer.Reset()
}

// ebitenTouch follows a single touch id from press to release.
type ebitenTouch struct {
	id   ebiten.TouchID
	held bool
	ids  []ebiten.TouchID
}

func (p *ebitenTouch) JustPressed() (float64, float64, bool) {
	if p.held {
		return 0, 0, false
	}
	p.ids = inpututil.AppendJustPressedTouchIDs(p.ids[:0])
	if len(p.ids) == 0 {
		return 0, 0, false
	}
	p.id = p.ids[0]
	p.held = true
	x, y := ebiten.TouchPosition(p.id)
	return float64(x), float64(y), true
}

func (p *ebitenTouch) Position() (float64, float64, bool) {
	if !p.held || inpututil.IsTouchJustReleased(p.id) {
		return 0, 0, false
	}
	x, y := ebiten.TouchPosition(p.id)
	return float64(x), float64(y), true
}

func (p *ebitenTouch) JustReleased() bool {
	if p.held && inpututil.IsTouchJustReleased(p.id) {
		p.held = false
		return true
	}
	return false
}

func (p *ebitenTouch) Reset() {
	p.held = false
	p.id = 0
}

type ebitenMouse struct{}

func (ebitenMouse) JustPressed() (float64, float64, bool) {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return 0, 0, false
	}
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y), true
}

func (ebitenMouse) Position() (float64, float64, bool) {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return 0, 0, false
	}
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y), true
}

func (ebitenMouse) JustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

func (ebitenMouse) Reset() {}
