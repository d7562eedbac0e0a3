package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"folio/internal/gallery"
	"folio/internal/metrics"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2 * time.Second
)

// RenderState provides read-only access to game state for the renderer
type RenderState interface {
	// Gallery
	GetLayout(viewport gallery.Rect) (gallery.Layout, bool)
	GetControls(viewport gallery.Rect) []gallery.Control
	GetCurrentItem() (gallery.ImageItem, bool)
	GetCurrentMetrics() metrics.Metrics
	IsCurrentFavorite() bool

	// Textures, nil while loading
	GetCurrentTexture() *ebiten.Image
	GetZoomTexture() *ebiten.Image

	// UI state
	IsFullscreen() bool
	IsZoomed() bool
	GetZoomItem() gallery.ImageItem
	IsShowingHelp() bool
	IsShowingInfo() bool
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time

	// Display data
	GetCurrentPageNumber() string
	GetTotalPagesCount() int
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetKeybindings() map[string][]string
	GetMousebindings() map[string][]string
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Application control
	Exit()

	// Display toggles
	ToggleHelp()
	ToggleInfo()
	ToggleFullscreen()

	// Navigation
	NavigateNext()
	NavigatePrevious()
	JumpToFirst()
	JumpToLast()

	// Gallery affordances
	ToggleFavorite()
	RequestZoom()
	CloseZoom()
	ActivateControl(kind gallery.ControlKind)
	ControlAt(x, y float64) (gallery.ControlKind, bool)

	// Messages
	ShowOverlayMessage(message string)

	// Common data access
	GetTotalPagesCount() int
}

// InputState provides read-only access to input-related state
type InputState interface {
	IsZoomed() bool
}
