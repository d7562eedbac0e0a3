package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"folio/internal/gallery"
	"folio/internal/gesture"
	"folio/internal/metrics"
	"folio/internal/source"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), ".folio.json")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name              string
		configJSON        string
		expectedWidth     int
		expectedHeight    int
		expectedThreshold float64
		expectedStride    int
		expectedSort      int
	}{
		{
			name:              "Valid config",
			configJSON:        `{"window_width": 1000, "window_height": 800, "swipe_threshold": 80, "color_sample_stride": 8, "sort_method": 1}`,
			expectedWidth:     1000,
			expectedHeight:    800,
			expectedThreshold: 80,
			expectedStride:    8,
			expectedSort:      source.SortSimple,
		},
		{
			name:              "Window too small",
			configJSON:        `{"window_width": 200, "window_height": 100}`,
			expectedWidth:     defaultWidth,
			expectedHeight:    defaultHeight,
			expectedThreshold: gesture.MinSwipeDistance,
			expectedStride:    metrics.DefaultSampleStride,
			expectedSort:      source.SortNatural,
		},
		{
			name:              "Non-positive swipe threshold",
			configJSON:        `{"swipe_threshold": -3}`,
			expectedWidth:     defaultWidth,
			expectedHeight:    defaultHeight,
			expectedThreshold: gesture.MinSwipeDistance,
			expectedStride:    metrics.DefaultSampleStride,
			expectedSort:      source.SortNatural,
		},
		{
			name:              "Huge swipe threshold",
			configJSON:        `{"swipe_threshold": 5000}`,
			expectedWidth:     defaultWidth,
			expectedHeight:    defaultHeight,
			expectedThreshold: maxSwipeThreshold,
			expectedStride:    metrics.DefaultSampleStride,
			expectedSort:      source.SortNatural,
		},
		{
			name:              "Stride rounded to whole pixels",
			configJSON:        `{"color_sample_stride": 7}`,
			expectedWidth:     defaultWidth,
			expectedHeight:    defaultHeight,
			expectedThreshold: gesture.MinSwipeDistance,
			expectedStride:    4,
			expectedSort:      source.SortNatural,
		},
		{
			name:              "Stride above maximum",
			configJSON:        `{"color_sample_stride": 400}`,
			expectedWidth:     defaultWidth,
			expectedHeight:    defaultHeight,
			expectedThreshold: gesture.MinSwipeDistance,
			expectedStride:    20,
			expectedSort:      source.SortNatural,
		},
		{
			name:              "Unknown sort method",
			configJSON:        `{"sort_method": 9}`,
			expectedWidth:     defaultWidth,
			expectedHeight:    defaultHeight,
			expectedThreshold: gesture.MinSwipeDistance,
			expectedStride:    metrics.DefaultSampleStride,
			expectedSort:      source.SortNatural,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := loadConfigFromPath(writeConfig(t, tt.configJSON))
			config := result.Config

			if result.Status != "OK" {
				t.Errorf("Expected status OK, got %s (%v)", result.Status, result.Warnings)
			}
			if config.WindowWidth != tt.expectedWidth {
				t.Errorf("Expected width %d, got %d", tt.expectedWidth, config.WindowWidth)
			}
			if config.WindowHeight != tt.expectedHeight {
				t.Errorf("Expected height %d, got %d", tt.expectedHeight, config.WindowHeight)
			}
			if config.SwipeThreshold != tt.expectedThreshold {
				t.Errorf("Expected swipe threshold %v, got %v", tt.expectedThreshold, config.SwipeThreshold)
			}
			if config.ColorSampleStride != tt.expectedStride {
				t.Errorf("Expected stride %d, got %d", tt.expectedStride, config.ColorSampleStride)
			}
			if config.SortMethod != tt.expectedSort {
				t.Errorf("Expected sort method %d, got %d", tt.expectedSort, config.SortMethod)
			}
		})
	}
}

func TestCacheSizeClamping(t *testing.T) {
	tests := []struct {
		name            string
		configJSON      string
		expectedMetrics int
		expectedTexture int
	}{
		{"Defaults", `{}`, defaultMetricsCacheSize, defaultTextureCacheSize},
		{"Zero falls back", `{"metrics_cache_size": 0, "texture_cache_size": 0}`, defaultMetricsCacheSize, defaultTextureCacheSize},
		{"Too large is capped", `{"metrics_cache_size": 100000, "texture_cache_size": 500}`, maxMetricsCacheSize, maxTextureCacheSize},
		{"In range kept", `{"metrics_cache_size": 32, "texture_cache_size": 4}`, 32, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := loadConfigFromPath(writeConfig(t, tt.configJSON)).Config
			if config.MetricsCacheSize != tt.expectedMetrics {
				t.Errorf("Expected metrics cache %d, got %d", tt.expectedMetrics, config.MetricsCacheSize)
			}
			if config.TextureCacheSize != tt.expectedTexture {
				t.Errorf("Expected texture cache %d, got %d", tt.expectedTexture, config.TextureCacheSize)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	result := loadConfigFromPath(filepath.Join(t.TempDir(), "missing.json"))

	if result.Status != "Default" {
		t.Errorf("Expected status Default, got %s", result.Status)
	}
	if result.HasError {
		t.Error("Missing config file must not be an error")
	}
	if !reflect.DeepEqual(result.Config.Keybindings, GetDefaultKeybindings()) {
		t.Error("Expected default keybindings")
	}
	if !result.Config.ColorSampling {
		t.Error("Color sampling should be on by default")
	}
	if result.Config.SwipeThreshold != gesture.MinSwipeDistance {
		t.Errorf("Expected default swipe threshold %v, got %v", gesture.MinSwipeDistance, result.Config.SwipeThreshold)
	}
}

func TestInvalidConfigJSON(t *testing.T) {
	result := loadConfigFromPath(writeConfig(t, `{"window_width": `))

	if result.Status != "Error" || !result.HasError {
		t.Errorf("Expected Error status, got %s", result.Status)
	}
	if result.Config.WindowWidth != defaultWidth {
		t.Errorf("Expected default width, got %d", result.Config.WindowWidth)
	}
}

func TestBindingErrorsFallBackToDefaults(t *testing.T) {
	tests := []struct {
		name       string
		configJSON string
		keyboard   bool
	}{
		{"Key conflict", `{"keybindings": {"next": ["N"], "previous": ["N"]}}`, true},
		{"Unknown key", `{"keybindings": {"next": ["NoSuchKey"]}}`, true},
		{"Unknown modifier", `{"keybindings": {"next": ["Hyper+N"]}}`, true},
		{"Unknown mouse action", `{"mousebindings": {"next": ["TripleClick"]}}`, false},
		{"Left button is reserved", `{"mousebindings": {"next": ["LeftClick"]}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := loadConfigFromPath(writeConfig(t, tt.configJSON))

			if result.Status != "Warning" {
				t.Errorf("Expected status Warning, got %s", result.Status)
			}
			if len(result.Warnings) != 1 {
				t.Errorf("Expected one warning, got %v", result.Warnings)
			}
			if tt.keyboard && !reflect.DeepEqual(result.Config.Keybindings, GetDefaultKeybindings()) {
				t.Error("Expected default keybindings after an error")
			}
			if !tt.keyboard && !reflect.DeepEqual(result.Config.Mousebindings, GetDefaultMousebindings()) {
				t.Error("Expected default mouse bindings after an error")
			}
		})
	}
}

func TestPartialBindingsAreCompleted(t *testing.T) {
	config := loadConfigFromPath(writeConfig(t, `{"keybindings": {"next": ["J"]}}`)).Config

	if !reflect.DeepEqual(config.Keybindings["next"], []string{"J"}) {
		t.Errorf("Expected custom next binding, got %v", config.Keybindings["next"])
	}
	if !reflect.DeepEqual(config.Keybindings["previous"], GetDefaultKeybindings()["previous"]) {
		t.Errorf("Expected default previous binding, got %v", config.Keybindings["previous"])
	}
}

func TestSaveConfig(t *testing.T) {
	dir := t.TempDir()

	configPath := filepath.Join(dir, "saved.json")
	config := defaultConfig()
	config.WindowWidth = 1280
	config.SwipeThreshold = 75
	saveConfigToPath(config, configPath)

	loaded := loadConfigFromPath(configPath).Config
	if loaded.WindowWidth != 1280 || loaded.SwipeThreshold != 75 {
		t.Errorf("Saved config not restored: width %d, threshold %v", loaded.WindowWidth, loaded.SwipeThreshold)
	}

	tooSmall := filepath.Join(dir, "small.json")
	config.WindowWidth = 10
	saveConfigToPath(config, tooSmall)
	if _, err := os.Stat(tooSmall); !os.IsNotExist(err) {
		t.Error("Config with an invalid window size must not be saved")
	}
}

func TestParseKeyString(t *testing.T) {
	tests := []struct {
		name     string
		keyStr   string
		expected KeyCombination
		valid    bool
	}{
		{"Plain key", "ArrowLeft", KeyCombination{Key: ebiten.KeyArrowLeft}, true},
		{"Letter", "F", KeyCombination{Key: ebiten.KeyF}, true},
		{"Shift modifier", "Shift+Slash", KeyCombination{Key: ebiten.KeySlash, Shift: true}, true},
		{"Several modifiers", "Ctrl+Alt+F11", KeyCombination{Key: ebiten.KeyF11, Ctrl: true, Alt: true}, true},
		{"Lowercase modifier", "alt+Enter", KeyCombination{Key: ebiten.KeyEnter, Alt: true}, true},
		{"Unknown key", "NoSuchKey", KeyCombination{}, false},
		{"Unknown modifier", "Super+A", KeyCombination{}, false},
		{"Empty", "", KeyCombination{}, false},
		{"Trailing plus", "Shift+", KeyCombination{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combination, err := parseKeyString(tt.keyStr)
			if (err == nil) != tt.valid {
				t.Fatalf("parseKeyString(%q) error = %v, want valid %v", tt.keyStr, err, tt.valid)
			}
			if tt.valid && combination != tt.expected {
				t.Errorf("parseKeyString(%q) = %+v, want %+v", tt.keyStr, combination, tt.expected)
			}
		})
	}
}

func TestParseMouseString(t *testing.T) {
	tests := []struct {
		name     string
		mouseStr string
		expected MouseCombination
		valid    bool
	}{
		{"Wheel up", "WheelUp", MouseCombination{IsWheel: true, WheelDeltaY: 1}, true},
		{"Wheel left", "WheelLeft", MouseCombination{IsWheel: true, WheelDeltaX: -1}, true},
		{"Right click", "RightClick", MouseCombination{Button: ebiten.MouseButtonRight}, true},
		{"Side button", "Back", MouseCombination{Button: ebiten.MouseButton3}, true},
		{"Double middle", "DoubleMiddleClick", MouseCombination{Button: ebiten.MouseButtonMiddle, IsDoubleClick: true}, true},
		{"With modifier", "Ctrl+WheelDown", MouseCombination{IsWheel: true, WheelDeltaY: -1, Ctrl: true}, true},
		{"Left click reserved", "LeftClick", MouseCombination{}, false},
		{"Unknown", "WheelSideways", MouseCombination{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combination, err := parseMouseString(tt.mouseStr)
			if (err == nil) != tt.valid {
				t.Fatalf("parseMouseString(%q) error = %v, want valid %v", tt.mouseStr, err, tt.valid)
			}
			if tt.valid && combination != tt.expected {
				t.Errorf("parseMouseString(%q) = %+v, want %+v", tt.mouseStr, combination, tt.expected)
			}
		})
	}
}

func TestWheelMatches(t *testing.T) {
	up, _ := parseMouseString("WheelUp")
	down, _ := parseMouseString("WheelDown")
	right, _ := parseMouseString("WheelRight")

	tests := []struct {
		name           string
		combination    MouseCombination
		wheelX, wheelY float64
		expected       bool
	}{
		{"Up matches positive", up, 0, 0.5, true},
		{"Up ignores negative", up, 0, -1, false},
		{"Down matches negative", down, 0, -2, true},
		{"No movement", down, 0, 0, false},
		{"Horizontal", right, 1, 0, true},
		{"Horizontal ignores vertical", right, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wheelMatches(tt.combination, tt.wheelX, tt.wheelY); got != tt.expected {
				t.Errorf("wheelMatches = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDoubleClickTracker(t *testing.T) {
	var tracker DoubleClickTracker
	window := 300 * time.Millisecond
	start := time.Now()

	if tracker.register(ebiten.MouseButtonRight, start, window) {
		t.Error("First click must not be a double click")
	}
	if !tracker.register(ebiten.MouseButtonRight, start.Add(100*time.Millisecond), window) {
		t.Error("Second click within the window must be a double click")
	}
	if tracker.register(ebiten.MouseButtonRight, start.Add(150*time.Millisecond), window) {
		t.Error("Third click starts a new pair")
	}
	if tracker.register(ebiten.MouseButtonRight, start.Add(time.Second), window) {
		t.Error("Click outside the window must not be a double click")
	}
	if tracker.register(ebiten.MouseButtonMiddle, start.Add(time.Second+50*time.Millisecond), window) {
		t.Error("A different button must not complete a double click")
	}
}

func TestDefaultBindingsAreValid(t *testing.T) {
	if err := validateKeybindings(GetDefaultKeybindings()); err != nil {
		t.Errorf("Default keybindings invalid: %v", err)
	}
	if err := validateMousebindings(GetDefaultMousebindings()); err != nil {
		t.Errorf("Default mouse bindings invalid: %v", err)
	}

	descriptions := GetActionDescriptions()
	for _, action := range actionDefinitions {
		if descriptions[action.Name] == "" {
			t.Errorf("Action %s has no description", action.Name)
		}
	}
}

// recordingActions records the InputActions calls made by the executor
type recordingActions struct {
	calls  []string
	zoomed bool
}

func (r *recordingActions) record(name string)                       { r.calls = append(r.calls, name) }
func (r *recordingActions) Exit()                                    { r.record("Exit") }
func (r *recordingActions) ToggleHelp()                              { r.record("ToggleHelp") }
func (r *recordingActions) ToggleInfo()                              { r.record("ToggleInfo") }
func (r *recordingActions) ToggleFullscreen()                        { r.record("ToggleFullscreen") }
func (r *recordingActions) NavigateNext()                            { r.record("NavigateNext") }
func (r *recordingActions) NavigatePrevious()                        { r.record("NavigatePrevious") }
func (r *recordingActions) JumpToFirst()                             { r.record("JumpToFirst") }
func (r *recordingActions) JumpToLast()                              { r.record("JumpToLast") }
func (r *recordingActions) ToggleFavorite()                          { r.record("ToggleFavorite") }
func (r *recordingActions) RequestZoom()                             { r.record("RequestZoom") }
func (r *recordingActions) CloseZoom()                               { r.record("CloseZoom") }
func (r *recordingActions) ActivateControl(kind gallery.ControlKind) { r.record("Activate:" + kind.String()) }
func (r *recordingActions) ShowOverlayMessage(string)                { r.record("ShowOverlayMessage") }
func (r *recordingActions) GetTotalPagesCount() int                  { return 3 }
func (r *recordingActions) IsZoomed() bool                           { return r.zoomed }

func (r *recordingActions) ControlAt(x, y float64) (gallery.ControlKind, bool) {
	return 0, false
}

func TestActionExecutor(t *testing.T) {
	tests := []struct {
		action   string
		zoomed   bool
		expected []string
	}{
		{"next", false, []string{"NavigateNext"}},
		{"previous", false, []string{"NavigatePrevious"}},
		{"jump_first", false, []string{"JumpToFirst"}},
		{"jump_last", false, []string{"JumpToLast"}},
		{"favorite", false, []string{"ToggleFavorite"}},
		{"zoom", false, []string{"RequestZoom"}},
		{"zoom", true, []string{"CloseZoom"}},
		{"exit", false, []string{"Exit"}},
		{"exit", true, []string{"CloseZoom"}},
		{"help", false, []string{"ToggleHelp"}},
		{"info", false, []string{"ToggleInfo"}},
		{"fullscreen", false, []string{"ToggleFullscreen"}},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			actions := &recordingActions{zoomed: tt.zoomed}
			if !globalActionExecutor.ExecuteAction(tt.action, actions, actions) {
				t.Fatalf("Action %s not handled", tt.action)
			}
			if !reflect.DeepEqual(actions.calls, tt.expected) {
				t.Errorf("Action %s called %v, want %v", tt.action, actions.calls, tt.expected)
			}
		})
	}

	actions := &recordingActions{}
	if globalActionExecutor.ExecuteAction("rotate_left", actions, actions) {
		t.Error("Unknown actions must not be handled")
	}
}

func TestEveryDefinedActionIsExecutable(t *testing.T) {
	for _, action := range actionDefinitions {
		actions := &recordingActions{}
		if !globalActionExecutor.ExecuteAction(action.Name, actions, actions) {
			t.Errorf("Action %s is defined but not executable", action.Name)
		}
	}
}

func TestControlClick(t *testing.T) {
	tests := []struct {
		name        string
		pressKind   gallery.ControlKind
		pressHit    bool
		releaseKind gallery.ControlKind
		releaseHit  bool
		fired       bool
	}{
		{"Press and release on the same control", gallery.ControlNext, true, gallery.ControlNext, true, true},
		{"Dragged off the control", gallery.ControlNext, true, 0, false, false},
		{"Dragged onto another control", gallery.ControlNext, true, gallery.ControlZoom, true, false},
		{"Pressed outside any control", 0, false, gallery.ControlFavorite, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var click controlClick
			click.Press(tt.pressKind, tt.pressHit)
			kind, fired := click.Release(tt.releaseKind, tt.releaseHit)
			if fired != tt.fired {
				t.Fatalf("fired = %v, want %v", fired, tt.fired)
			}
			if fired && kind != tt.pressKind {
				t.Errorf("kind = %v, want %v", kind, tt.pressKind)
			}
			if _, again := click.Release(tt.releaseKind, tt.releaseHit); again {
				t.Error("A release without a new press must not fire")
			}
		})
	}
}

type failingLoader struct{}

func (failingLoader) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("offline")
}

func newTestGame(t *testing.T, n int) *Game {
	t.Helper()
	var items []gallery.ImageItem
	for _, name := range []string{"one.png", "two.png", "three.png"}[:n] {
		items = append(items, source.NewItem(name))
	}
	configPath := filepath.Join(t.TempDir(), ".folio.json")
	g, err := NewGame(items, loadConfigFromPath(configPath), configPath, failingLoader{})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	g.Layout(1000, 600)
	t.Cleanup(g.Close)
	return g
}

func TestGameNavigation(t *testing.T) {
	g := newTestGame(t, 3)

	if got := g.GetCurrentPageNumber(); got != "1 / 3" {
		t.Errorf("Expected 1 / 3, got %s", got)
	}

	g.NavigatePrevious()
	if got := g.GetCurrentPageNumber(); got != "1 / 3" {
		t.Errorf("Previous at the first image must be a no-op, got %s", got)
	}

	g.NavigateNext()
	g.NavigateNext()
	g.NavigateNext()
	if got := g.GetCurrentPageNumber(); got != "3 / 3" {
		t.Errorf("Next must stop at the last image, got %s", got)
	}

	g.JumpToFirst()
	if item, _ := g.GetCurrentItem(); item.ID != "one.png" {
		t.Errorf("Expected one.png, got %s", item.ID)
	}
	g.JumpToLast()
	if item, _ := g.GetCurrentItem(); item.ID != "three.png" {
		t.Errorf("Expected three.png, got %s", item.ID)
	}
}

func TestGameControls(t *testing.T) {
	g := newTestGame(t, 3)

	var next gallery.Control
	for _, c := range g.GetControls(g.viewport()) {
		if c.Kind == gallery.ControlNext {
			next = c
		}
	}
	kind, ok := g.ControlAt(next.Bounds.X+next.Bounds.W/2, next.Bounds.Y+next.Bounds.H/2)
	if !ok || kind != gallery.ControlNext {
		t.Fatalf("Expected the next control under its center, got %v %v", kind, ok)
	}
	g.ActivateControl(kind)
	if got := g.GetCurrentPageNumber(); got != "2 / 3" {
		t.Errorf("Expected 2 / 3, got %s", got)
	}

	if _, ok := g.ControlAt(500, 300); ok {
		t.Error("The image area is not a control")
	}
}

func TestGameSwipeFromControlDoesNotDoubleNavigate(t *testing.T) {
	g := newTestGame(t, 3)
	g.detector.SetThreshold(20)

	// A short drag across the next control: the click fires on release and
	// the same press also completes a swipe.
	g.inputHandler.click.Press(gallery.ControlNext, true)
	if kind, fired := g.inputHandler.click.Release(gallery.ControlNext, true); fired {
		g.ActivateControl(kind)
	}
	g.handleSwipe(gesture.SwipeLeft)
	if got := g.GetCurrentPageNumber(); got != "2 / 3" {
		t.Errorf("Expected one step to 2 / 3, got %s", got)
	}

	// A swipe that starts on the image still navigates.
	g.inputHandler.click.Press(0, false)
	g.inputHandler.click.Release(0, false)
	g.handleSwipe(gesture.SwipeLeft)
	if got := g.GetCurrentPageNumber(); got != "3 / 3" {
		t.Errorf("Expected 3 / 3, got %s", got)
	}
}

func TestGameFavoriteAndZoom(t *testing.T) {
	g := newTestGame(t, 2)

	g.ToggleFavorite()
	if !g.IsCurrentFavorite() {
		t.Error("Expected the current image to be a favorite")
	}
	if g.GetOverlayMessage() != "Added to favorites" {
		t.Errorf("Unexpected overlay message %q", g.GetOverlayMessage())
	}

	if !g.tracker.Attached() {
		t.Fatal("Gestures should be attached to a non-empty gallery")
	}
	g.RequestZoom()
	if !g.IsZoomed() || g.GetZoomItem().ID != "one.png" {
		t.Fatalf("Expected zoom on one.png, got %v %q", g.IsZoomed(), g.GetZoomItem().ID)
	}
	if g.tracker.Attached() {
		t.Error("Gestures must detach while zoomed")
	}

	g.CloseZoom()
	if g.IsZoomed() {
		t.Error("Zoom should be closed")
	}
	if !g.tracker.Attached() {
		t.Error("Gestures must reattach after zoom closes")
	}
}

func TestGameAppliesReloadedConfig(t *testing.T) {
	g := newTestGame(t, 2)

	result := loadConfigFromPath(writeConfig(t, `{"swipe_threshold": 120, "keybindings": {"next": ["J"]}, "window_width": 1500}`))
	g.applyReloadedConfig(result)

	if g.detector.Threshold() != 120 {
		t.Errorf("Expected swipe threshold 120, got %v", g.detector.Threshold())
	}
	if !reflect.DeepEqual(g.GetKeybindings()["next"], []string{"J"}) {
		t.Errorf("Expected reloaded next binding, got %v", g.GetKeybindings()["next"])
	}
	if g.config.WindowWidth != defaultWidth {
		t.Errorf("Window size must keep its startup value, got %d", g.config.WindowWidth)
	}
	if g.GetConfigStatus().Status != "OK" {
		t.Errorf("Expected OK status, got %s", g.GetConfigStatus().Status)
	}
}

func TestGameMetricsFailureKeepsDefaults(t *testing.T) {
	g := newTestGame(t, 1)

	deadline := time.Now().Add(2 * time.Second)
	for !g.GetCurrentMetrics().Failed() && time.Now().Before(deadline) {
		g.gallery.Update()
		time.Sleep(5 * time.Millisecond)
	}
	if !g.GetCurrentMetrics().Failed() {
		t.Fatal("Expected the failing loader to surface as a metrics failure")
	}

	layout, ok := g.GetLayout(g.viewport())
	if !ok {
		t.Fatal("Expected a layout for a non-empty gallery")
	}
	if !layout.Wide || layout.Background != metrics.DefaultColor {
		t.Errorf("Expected the wide default layout, got %+v", layout)
	}
}

func TestConfigWatcher(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".folio.json")
	watcher, err := NewConfigWatcher(configPath)
	if err != nil {
		t.Fatalf("NewConfigWatcher: %v", err)
	}
	defer watcher.Close()

	// Unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(filepath.Dir(configPath), "other.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte(`{"swipe_threshold": 90}`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case event := <-watcher.Events():
		if event.Path != configPath {
			t.Errorf("Expected event for %s, got %s", configPath, event.Path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("No config change event")
	}
}
