package gallery

// ControlKind identifies an on-screen affordance.
type ControlKind int

const (
	ControlPrevious ControlKind = iota
	ControlNext
	ControlFavorite
	ControlZoom
)

func (k ControlKind) String() string {
	switch k {
	case ControlPrevious:
		return "previous"
	case ControlNext:
		return "next"
	case ControlFavorite:
		return "favorite"
	case ControlZoom:
		return "zoom"
	default:
		return "unknown"
	}
}

// Control is an affordance to render for the current state.
type Control struct {
	Kind   ControlKind
	Bounds Rect
	// Active is set on the favorite control when the current item is a favorite.
	Active bool
}

// Controls lists the affordances for viewport. Previous and next only appear
// when there is somewhere to go; an empty gallery has no controls at all.
func (g *Gallery) Controls(viewport Rect) []Control {
	if g.Empty() || viewport.Empty() {
		return nil
	}

	midY := viewport.Y + viewport.H/2 - controlSize/2
	topY := viewport.Y + controlMargin
	right := viewport.X + viewport.W - controlMargin - controlSize

	var controls []Control
	if g.HasPrevious() {
		controls = append(controls, Control{
			Kind:   ControlPrevious,
			Bounds: Rect{X: viewport.X + controlMargin, Y: midY, W: controlSize, H: controlSize},
		})
	}
	if g.HasNext() {
		controls = append(controls, Control{
			Kind:   ControlNext,
			Bounds: Rect{X: right, Y: midY, W: controlSize, H: controlSize},
		})
	}
	controls = append(controls,
		Control{
			Kind:   ControlFavorite,
			Bounds: Rect{X: right, Y: topY, W: controlSize, H: controlSize},
			Active: g.IsCurrentFavorite(),
		},
		Control{
			Kind:   ControlZoom,
			Bounds: Rect{X: right - controlSize - controlMargin, Y: topY, W: controlSize, H: controlSize},
		},
	)
	return controls
}

// HitTest returns the control under (x, y), if any.
func (g *Gallery) HitTest(viewport Rect, x, y float64) (ControlKind, bool) {
	for _, c := range g.Controls(viewport) {
		if c.Bounds.Contains(x, y) {
			return c.Kind, true
		}
	}
	return 0, false
}
