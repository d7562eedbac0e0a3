package gesture

// Region is the screen rectangle a tracker listens on.
type Region struct {
	X, Y, W, H float64
}

func (r Region) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Tracker scopes a set of adapters to a region and reports the intents they
// produce. Nothing is emitted while detached.
type Tracker struct {
	detector *Detector
	adapters []*Adapter
	region   Region
	onIntent func(Intent)
}

// NewTracker creates a detached Tracker delivering intents to onIntent.
func NewTracker(detector *Detector, onIntent func(Intent)) *Tracker {
	return &Tracker{detector: detector, onIntent: onIntent}
}

// Attach registers adapters for region, replacing any previous registration.
func (t *Tracker) Attach(region Region, adapters ...*Adapter) {
	t.Detach()
	t.region = region
	t.adapters = append(t.adapters, adapters...)
}

// SetRegion moves the listening area without dropping adapters.
func (t *Tracker) SetRegion(region Region) {
	t.region = region
}

// Detach removes every adapter and aborts the cycle in progress.
func (t *Tracker) Detach() {
	for _, a := range t.adapters {
		a.Reset()
	}
	t.adapters = nil
	t.detector.Cancel()
}

func (t *Tracker) Attached() bool {
	return len(t.adapters) > 0
}

// Update polls every adapter once and returns the intent produced this tick.
func (t *Tracker) Update() Intent {
	result := None
	for _, a := range t.adapters {
		if intent := a.Poll(t.detector, t.region); intent != None {
			result = intent
			if t.onIntent != nil {
				t.onIntent(intent)
			}
		}
	}
	return result
}
