package gallery

import (
	"image/color"
	"math"

	"folio/internal/metrics"
)

const (
	controlSize   = 48.0
	controlMargin = 16.0
	// contentMargin keeps the image clear of the side controls.
	contentMargin = controlSize + controlMargin*2
)

// Rect is an axis-aligned rectangle in screen coordinates.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Orientation classifies the current image.
type Orientation int

const (
	OrientationUnknown Orientation = iota
	OrientationLandscape
	OrientationPortrait
)

// Layout describes where and how the current image is placed.
type Layout struct {
	// Slot is the area reserved for the image. Landscape and unknown images
	// get the wide slot spanning the content area; portrait images get a
	// narrow, centered slot of half the width.
	Slot Rect
	// Image is the image rectangle fitted inside Slot. It equals Slot while
	// the aspect ratio is unknown.
	Image       Rect
	Wide        bool
	Orientation Orientation
	Background  color.RGBA
}

// ContentArea returns the part of viewport available to the image.
func ContentArea(viewport Rect) Rect {
	inner := Rect{
		X: viewport.X + contentMargin,
		Y: viewport.Y + contentMargin,
		W: viewport.W - contentMargin*2,
		H: viewport.H - contentMargin*2,
	}
	if inner.Empty() {
		return viewport
	}
	return inner
}

// Layout computes the placement of the current image. ok is false when the
// gallery is empty or the viewport has no area.
func (g *Gallery) Layout(viewport Rect) (Layout, bool) {
	if g.Empty() || viewport.Empty() {
		return Layout{}, false
	}
	return ComputeLayout(ContentArea(viewport), g.Metrics()), true
}

// ComputeLayout places an image with metrics m inside content.
func ComputeLayout(content Rect, m metrics.Metrics) Layout {
	l := Layout{
		Slot:       content,
		Image:      content,
		Wide:       true,
		Background: metrics.DefaultColor,
	}
	if !m.Resolved || m.AspectRatio <= 0 {
		return l
	}

	if m.ColorResolved {
		l.Background = m.DominantColor
	}

	if m.IsPortrait {
		l.Orientation = OrientationPortrait
		l.Wide = false
		narrow := math.Min(content.W, content.H*m.AspectRatio)
		l.Slot = Rect{X: content.X + (content.W-narrow)/2, Y: content.Y, W: narrow, H: content.H}
	} else {
		l.Orientation = OrientationLandscape
	}
	l.Image = Fit(l.Slot, m.AspectRatio)
	return l
}

// Fit returns the largest rectangle of the given aspect ratio centered in r.
func Fit(r Rect, aspect float64) Rect {
	w := r.W
	h := w / aspect
	if h > r.H {
		h = r.H
		w = h * aspect
	}
	w = math.Max(0, w)
	h = math.Max(0, h)
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}
