// Package gesture turns pointer down/move/up cycles from touch and mouse
// input into discrete swipe intents.
package gesture

// MinSwipeDistance is the horizontal travel a cycle needs before it counts as a swipe.
const MinSwipeDistance = 50.0

// Source identifies the input family feeding a cycle.
type Source int

const (
	SourceTouch Source = iota
	SourceMouse
)

func (s Source) String() string {
	if s == SourceTouch {
		return "touch"
	}
	return "mouse"
}

// Intent is the navigation decision derived from one cycle.
type Intent int

const (
	None Intent = iota
	SwipeLeft
	SwipeRight
)

func (i Intent) String() string {
	switch i {
	case SwipeLeft:
		return "swipe-left"
	case SwipeRight:
		return "swipe-right"
	default:
		return "none"
	}
}

// Swipe is the state of a single down->up cycle.
// CurrentX stays nil until the pointer moves.
type Swipe struct {
	Source   Source
	StartX   float64
	CurrentX *float64
}

// Detector classifies pointer cycles. The first source to press owns the
// cycle; events from the other source are ignored until it ends, so touch and
// mouse never produce two intents for the same gesture.
type Detector struct {
	threshold float64
	active    *Swipe
}

// NewDetector creates a Detector using MinSwipeDistance.
func NewDetector() *Detector {
	return &Detector{threshold: MinSwipeDistance}
}

// SetThreshold changes the swipe distance. Non-positive values restore the default.
func (d *Detector) SetThreshold(distance float64) {
	if distance <= 0 {
		distance = MinSwipeDistance
	}
	d.threshold = distance
}

func (d *Detector) Threshold() float64 {
	return d.threshold
}

// Active returns the cycle in progress, or nil.
func (d *Detector) Active() *Swipe {
	return d.active
}

// Down starts a cycle at x. It returns false when another source owns the
// current cycle. A second press from the owning source restarts the cycle.
func (d *Detector) Down(src Source, x float64) bool {
	if d.active != nil && d.active.Source != src {
		return false
	}
	d.active = &Swipe{Source: src, StartX: x}
	return true
}

// Move records the latest position of the owning source.
func (d *Detector) Move(src Source, x float64) {
	if d.active == nil || d.active.Source != src {
		return
	}
	current := x
	d.active.CurrentX = &current
}

// Up ends the cycle and returns its intent. A cycle without any recorded
// move is a tap and yields None.
func (d *Detector) Up(src Source) Intent {
	if d.active == nil || d.active.Source != src {
		return None
	}
	swipe := d.active
	d.active = nil

	if swipe.CurrentX == nil {
		return None
	}
	distance := swipe.StartX - *swipe.CurrentX
	switch {
	case distance > d.threshold:
		return SwipeLeft
	case distance < -d.threshold:
		return SwipeRight
	default:
		return None
	}
}

// Cancel discards any cycle in progress without producing an intent.
func (d *Detector) Cancel() {
	d.active = nil
}
