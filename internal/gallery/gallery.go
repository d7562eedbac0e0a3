// Package gallery composes navigation, favorites, gesture intents and image
// metrics into one interactive gallery surface.
package gallery

import (
	"folio/internal/favorites"
	"folio/internal/gesture"
	"folio/internal/metrics"
	"folio/internal/navigation"
)

// ImageItem is one entry of the gallery sequence.
type ImageItem struct {
	ID        string // stable identity, usually the source URL
	SourceURL string
	AltText   string
}

// Hooks are optional side effects handed to external collaborators.
type Hooks struct {
	OnZoomRequested   func(item ImageItem)
	OnFavoriteToggled func(id string, favorite bool)
}

// MetricsSlot is the subject slot the gallery resolves the current image through.
type MetricsSlot interface {
	Request(sourceURL string)
	Release()
	Poll() bool
	Current() metrics.Metrics
}

// Gallery owns one gallery session over a fixed sequence of items.
type Gallery struct {
	items     []ImageItem
	nav       *navigation.Navigator
	favorites *favorites.Store
	slot      MetricsSlot
	hooks     Hooks
}

// New creates a Gallery positioned at the first item and starts resolving its
// metrics. A nil store gets a fresh one.
func New(items []ImageItem, slot MetricsSlot, store *favorites.Store, hooks Hooks) *Gallery {
	if store == nil {
		store = favorites.New()
	}
	g := &Gallery{
		items:     append([]ImageItem(nil), items...),
		nav:       navigation.New(len(items)),
		favorites: store,
		slot:      slot,
		hooks:     hooks,
	}
	g.subjectChanged()
	return g
}

func (g *Gallery) Len() int {
	return len(g.items)
}

func (g *Gallery) Empty() bool {
	return len(g.items) == 0
}

func (g *Gallery) Index() int {
	return g.nav.Index()
}

func (g *Gallery) State() navigation.State {
	return g.nav.State()
}

// Current returns the item on screen. ok is false for an empty gallery.
func (g *Gallery) Current() (ImageItem, bool) {
	if g.Empty() {
		return ImageItem{}, false
	}
	return g.items[g.nav.Index()], true
}

// Item returns the item at idx.
func (g *Gallery) Item(idx int) (ImageItem, bool) {
	if idx < 0 || idx >= len(g.items) {
		return ImageItem{}, false
	}
	return g.items[idx], true
}

func (g *Gallery) HasPrevious() bool {
	return g.nav.HasPrevious()
}

func (g *Gallery) HasNext() bool {
	return g.nav.HasNext()
}

func (g *Gallery) Next() bool {
	return g.moved(g.nav.GoNext())
}

func (g *Gallery) Previous() bool {
	return g.moved(g.nav.GoPrevious())
}

func (g *Gallery) First() bool {
	return g.moved(g.nav.First())
}

func (g *Gallery) Last() bool {
	return g.moved(g.nav.Last())
}

// JumpTo moves to the zero-based index idx.
func (g *Gallery) JumpTo(idx int) bool {
	return g.moved(g.nav.JumpTo(idx))
}

// HandleIntent applies a swipe: left shows the next item, right the previous one.
func (g *Gallery) HandleIntent(intent gesture.Intent) bool {
	switch intent {
	case gesture.SwipeLeft:
		return g.Next()
	case gesture.SwipeRight:
		return g.Previous()
	default:
		return false
	}
}

func (g *Gallery) moved(ok bool) bool {
	if ok {
		g.subjectChanged()
	}
	return ok
}

func (g *Gallery) subjectChanged() {
	if g.slot == nil {
		return
	}
	item, ok := g.Current()
	if !ok {
		g.slot.Release()
		return
	}
	g.slot.Request(item.SourceURL)
}

// ToggleFavorite flips the current item's favorite state and returns the new state.
func (g *Gallery) ToggleFavorite() bool {
	item, ok := g.Current()
	if !ok {
		return false
	}
	favorite := g.favorites.Toggle(item.ID)
	if g.hooks.OnFavoriteToggled != nil {
		g.hooks.OnFavoriteToggled(item.ID, favorite)
	}
	return favorite
}

func (g *Gallery) IsCurrentFavorite() bool {
	item, ok := g.Current()
	return ok && g.favorites.IsFavorite(item.ID)
}

// RequestZoom hands the current item to the zoom collaborator.
func (g *Gallery) RequestZoom() bool {
	item, ok := g.Current()
	if !ok || g.hooks.OnZoomRequested == nil {
		return false
	}
	g.hooks.OnZoomRequested(item)
	return true
}

// Update applies pending metrics results and reports whether they changed.
func (g *Gallery) Update() bool {
	if g.slot == nil {
		return false
	}
	return g.slot.Poll()
}

// Metrics returns the metrics of the current item, unresolved until known.
func (g *Gallery) Metrics() metrics.Metrics {
	if g.slot == nil || g.Empty() {
		return metrics.Metrics{}
	}
	return g.slot.Current()
}

// Activate performs the action of an on-screen control.
func (g *Gallery) Activate(kind ControlKind) bool {
	switch kind {
	case ControlPrevious:
		return g.Previous()
	case ControlNext:
		return g.Next()
	case ControlFavorite:
		g.ToggleFavorite()
		return !g.Empty()
	case ControlZoom:
		return g.RequestZoom()
	default:
		return false
	}
}

// Close releases the metrics slot. The gallery stays readable afterwards.
func (g *Gallery) Close() {
	if g.slot != nil {
		g.slot.Release()
	}
}
