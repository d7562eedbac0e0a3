package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"folio/internal/favorites"
	"folio/internal/gallery"
	"folio/internal/gesture"
	"folio/internal/metrics"
)

// Game hosts one gallery session inside the Ebiten loop
type Game struct {
	gallery   *gallery.Gallery
	resolver  *metrics.Resolver
	favorites *favorites.Store
	textures  *TextureManager

	detector *gesture.Detector
	tracker  *gesture.Tracker
	adapters []*gesture.Adapter

	inputHandler        *InputHandler
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	renderer            *Renderer

	config       Config
	configStatus ConfigLoadResult
	configPath   string
	watcher      *ConfigWatcher

	fullscreen bool
	showHelp   bool
	showInfo   bool
	zoomed     bool
	zoomItem   gallery.ImageItem

	overlayMessage     string
	overlayMessageTime time.Time

	savedWinW int
	savedWinH int
	screenW   int
	screenH   int

	exitRequested bool
}

// NewGame wires a gallery over items. Textures and metrics are read through loader.
func NewGame(items []gallery.ImageItem, configResult ConfigLoadResult, configPath string, loader metrics.Loader) (*Game, error) {
	config := configResult.Config

	resolver, err := metrics.NewResolver(loader, metrics.Options{
		CacheSize:    config.MetricsCacheSize,
		SampleStride: config.ColorSampleStride,
		WithColor:    config.ColorSampling,
		Logger:       slog.Default().With("component", "metrics"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating metrics resolver: %w", err)
	}

	g := &Game{
		resolver:     resolver,
		favorites:    favorites.New(),
		textures:     NewTextureManager(loader, config.TextureCacheSize),
		detector:     gesture.NewDetector(),
		config:       config,
		configStatus: configResult,
		configPath:   configPath,
		showInfo:     config.ShowInfo,
	}

	g.gallery = gallery.New(items, resolver.NewSlot(), g.favorites, gallery.Hooks{
		OnZoomRequested:   g.openZoom,
		OnFavoriteToggled: g.favoriteToggled,
	})

	g.detector.SetThreshold(config.SwipeThreshold)
	g.tracker = gesture.NewTracker(g.detector, g.handleSwipe)
	g.adapters = []*gesture.Adapter{gesture.NewTouchAdapter(), gesture.NewMouseAdapter()}
	if !g.gallery.Empty() {
		g.tracker.Attach(g.viewportRegion(), g.adapters...)
	}

	g.keybindingManager = NewKeybindingManager(config.Keybindings)
	g.mousebindingManager = NewMousebindingManager(config.Mousebindings, config.MouseSettings)
	g.inputHandler = NewInputHandler(g, g, g.keybindingManager, g.mousebindingManager)
	g.renderer = NewRenderer(g)

	return g, nil
}

func (g *Game) viewport() gallery.Rect {
	return gallery.Rect{W: float64(g.screenW), H: float64(g.screenH)}
}

func (g *Game) viewportRegion() gesture.Region {
	return gesture.Region{W: float64(g.screenW), H: float64(g.screenH)}
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.Exit()
	}
	if g.exitRequested {
		return ebiten.Termination
	}

	g.applyConfigChanges()
	g.gallery.Update()
	g.inputHandler.HandleInput()

	if g.tracker.Attached() {
		g.tracker.SetRegion(g.viewportRegion())
		g.tracker.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screenW, g.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close stops background work and persists the window size
func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			debugLog("Closing config watcher: %v", err)
		}
	}
	g.textures.Stop()
	g.gallery.Close()
	g.resolver.Close()
	saveConfigToPath(g.config, g.configPath)
}

func (g *Game) saveCurrentWindowSize() {
	if g.fullscreen {
		// Keep the size from before fullscreen
		if g.savedWinW > 0 && g.savedWinH > 0 {
			g.config.WindowWidth = g.savedWinW
			g.config.WindowHeight = g.savedWinH
		}
		return
	}
	g.config.WindowWidth, g.config.WindowHeight = ebiten.WindowSize()
}

// applyConfigChanges reloads the config file when the watcher saw a write
func (g *Game) applyConfigChanges() {
	if g.watcher == nil {
		return
	}
	select {
	case event := <-g.watcher.Events():
		g.applyReloadedConfig(loadConfigFromPath(event.Path))
	default:
	}
}

// applyReloadedConfig takes over the settings that can change while running.
// Window, sort and cache settings keep their startup values.
func (g *Game) applyReloadedConfig(result ConfigLoadResult) {
	reloaded := result.Config
	g.config.Keybindings = reloaded.Keybindings
	g.config.Mousebindings = reloaded.Mousebindings
	g.config.MouseSettings = reloaded.MouseSettings
	g.config.SwipeThreshold = reloaded.SwipeThreshold
	g.config.HelpFontSize = reloaded.HelpFontSize

	g.keybindingManager.UpdateKeybindings(reloaded.Keybindings)
	g.mousebindingManager.UpdateMousebindings(reloaded.Mousebindings)
	g.mousebindingManager.UpdateSettings(reloaded.MouseSettings)
	g.detector.SetThreshold(reloaded.SwipeThreshold)

	result.Config = g.config
	g.configStatus = result
	g.ShowOverlayMessage("Config reloaded: " + result.Status)
	debugLog("Config reloaded from %s (%s)", g.configPath, result.Status)
}

// handleSwipe applies a swipe unless its press belonged to an on-screen
// control, which already handled it as a click.
func (g *Game) handleSwipe(intent gesture.Intent) {
	if g.inputHandler.PressStartedOnControl() {
		debugLog("Swipe %s ignored: started on a control", intent)
		return
	}
	if g.gallery.HandleIntent(intent) {
		debugLog("Swipe %s -> %s", intent, g.GetCurrentPageNumber())
	}
}

func (g *Game) openZoom(item gallery.ImageItem) {
	g.zoomed = true
	g.zoomItem = item
	// The zoom view owns the pointer until it closes
	g.tracker.Detach()
	debugLog("Zoom opened: %s", item.SourceURL)
}

func (g *Game) favoriteToggled(id string, favorite bool) {
	if favorite {
		g.ShowOverlayMessage("Added to favorites")
	} else {
		g.ShowOverlayMessage("Removed from favorites")
	}
	debugLog("Favorite %s = %v (%d favorites)", id, favorite, g.favorites.Len())
}

// InputActions

func (g *Game) Exit() {
	g.saveCurrentWindowSize()
	g.exitRequested = true
}

func (g *Game) ToggleHelp() {
	g.showHelp = !g.showHelp
}

func (g *Game) ToggleInfo() {
	g.showInfo = !g.showInfo
	g.config.ShowInfo = g.showInfo
}

func (g *Game) ToggleFullscreen() {
	if !g.fullscreen {
		g.savedWinW, g.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
	} else {
		ebiten.SetFullscreen(false)
		if g.savedWinW > 0 && g.savedWinH > 0 {
			ebiten.SetWindowSize(g.savedWinW, g.savedWinH)
		}
	}
	g.fullscreen = !g.fullscreen
}

func (g *Game) NavigateNext() {
	g.gallery.Next()
}

func (g *Game) NavigatePrevious() {
	g.gallery.Previous()
}

func (g *Game) JumpToFirst() {
	g.gallery.First()
}

func (g *Game) JumpToLast() {
	g.gallery.Last()
}

func (g *Game) ToggleFavorite() {
	g.gallery.ToggleFavorite()
}

func (g *Game) RequestZoom() {
	g.gallery.RequestZoom()
}

func (g *Game) CloseZoom() {
	if !g.zoomed {
		return
	}
	g.zoomed = false
	g.zoomItem = gallery.ImageItem{}
	if !g.gallery.Empty() {
		g.tracker.Attach(g.viewportRegion(), g.adapters...)
	}
}

func (g *Game) ActivateControl(kind gallery.ControlKind) {
	g.gallery.Activate(kind)
}

func (g *Game) ControlAt(x, y float64) (gallery.ControlKind, bool) {
	return g.gallery.HitTest(g.viewport(), x, y)
}

func (g *Game) ShowOverlayMessage(message string) {
	g.overlayMessage = message
	g.overlayMessageTime = time.Now()
}

func (g *Game) GetTotalPagesCount() int {
	return g.gallery.Len()
}

// RenderState and InputState

func (g *Game) GetLayout(viewport gallery.Rect) (gallery.Layout, bool) {
	return g.gallery.Layout(viewport)
}

func (g *Game) GetControls(viewport gallery.Rect) []gallery.Control {
	return g.gallery.Controls(viewport)
}

func (g *Game) GetCurrentItem() (gallery.ImageItem, bool) {
	return g.gallery.Current()
}

func (g *Game) GetCurrentMetrics() metrics.Metrics {
	return g.gallery.Metrics()
}

func (g *Game) IsCurrentFavorite() bool {
	return g.gallery.IsCurrentFavorite()
}

func (g *Game) GetCurrentTexture() *ebiten.Image {
	item, ok := g.gallery.Current()
	if !ok {
		return nil
	}
	img, _ := g.textures.Get(item.SourceURL)
	return img
}

func (g *Game) GetZoomTexture() *ebiten.Image {
	img, _ := g.textures.Get(g.zoomItem.SourceURL)
	return img
}

func (g *Game) IsFullscreen() bool {
	return g.fullscreen
}

func (g *Game) IsZoomed() bool {
	return g.zoomed
}

func (g *Game) GetZoomItem() gallery.ImageItem {
	return g.zoomItem
}

func (g *Game) IsShowingHelp() bool {
	return g.showHelp
}

func (g *Game) IsShowingInfo() bool {
	return g.showInfo
}

func (g *Game) GetOverlayMessage() string {
	return g.overlayMessage
}

func (g *Game) GetOverlayMessageTime() time.Time {
	return g.overlayMessageTime
}

func (g *Game) GetCurrentPageNumber() string {
	if g.gallery.Empty() {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", g.gallery.Index()+1, g.gallery.Len())
}

func (g *Game) GetFontSize() float64 {
	return g.config.HelpFontSize
}

func (g *Game) GetConfigStatus() ConfigLoadResult {
	return g.configStatus
}

func (g *Game) GetKeybindings() map[string][]string {
	return g.keybindingManager.GetKeybindings()
}

func (g *Game) GetMousebindings() map[string][]string {
	return g.mousebindingManager.GetMousebindings()
}
