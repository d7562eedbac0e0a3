package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"folio/internal/gesture"
	"folio/internal/metrics"
	"folio/internal/source"
)

// Window size constants
const (
	defaultWidth  = 1024
	defaultHeight = 768
	minWidth      = 400
	minHeight     = 300
)

const (
	defaultHelpFontSize     = 24.0
	defaultMetricsCacheSize = 256
	maxMetricsCacheSize     = 4096
	defaultTextureCacheSize = 8
	maxTextureCacheSize     = 64
	maxSwipeThreshold       = 1000.0
)

// validateKeybindings validates the keybindings configuration
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)

	for action, keys := range keybindings {
		for _, keyStr := range keys {
			if _, err := parseKeyString(keyStr); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %v", keyStr, action, err)
			}
			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// validateMousebindings validates the mouse bindings configuration
func validateMousebindings(mousebindings map[string][]string) error {
	mouseToAction := make(map[string]string)

	for action, strs := range mousebindings {
		for _, s := range strs {
			if _, err := parseMouseString(s); err != nil {
				return fmt.Errorf("invalid mouse binding '%s' for action '%s': %v", s, action, err)
			}
			if existingAction, exists := mouseToAction[s]; exists {
				return fmt.Errorf("mouse conflict: '%s' is bound to both '%s' and '%s'", s, existingAction, action)
			}
			mouseToAction[s] = action
		}
	}

	return nil
}

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

type Config struct {
	WindowWidth       int                 `json:"window_width"`
	WindowHeight      int                 `json:"window_height"`
	Fullscreen        bool                `json:"fullscreen"`
	SortMethod        int                 `json:"sort_method"`
	HelpFontSize      float64             `json:"help_font_size"`
	SwipeThreshold    float64             `json:"swipe_threshold"`
	ColorSampling     bool                `json:"color_sampling"`
	ColorSampleStride int                 `json:"color_sample_stride"`
	MetricsCacheSize  int                 `json:"metrics_cache_size"`
	TextureCacheSize  int                 `json:"texture_cache_size"`
	ShowInfo          bool                `json:"show_info"`
	Keybindings       map[string][]string `json:"keybindings"`
	Mousebindings     map[string][]string `json:"mousebindings"`
	MouseSettings     MouseSettings       `json:"mouse_settings"`
}

func defaultConfig() Config {
	return Config{
		WindowWidth:       defaultWidth,
		WindowHeight:      defaultHeight,
		SortMethod:        source.SortNatural,
		HelpFontSize:      defaultHelpFontSize,
		SwipeThreshold:    gesture.MinSwipeDistance,
		ColorSampling:     true,
		ColorSampleStride: metrics.DefaultSampleStride,
		MetricsCacheSize:  defaultMetricsCacheSize,
		TextureCacheSize:  defaultTextureCacheSize,
		Keybindings:       GetDefaultKeybindings(),
		Mousebindings:     GetDefaultMousebindings(),
		MouseSettings:     GetDefaultMouseSettings(),
	}
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "folio.json"
	}
	return filepath.Join(homeDir, ".folio.json")
}

func clampInt(v, lo, hi, fallback int) int {
	if v < lo {
		return fallback
	}
	if v > hi {
		return hi
	}
	return v
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	if err := json.Unmarshal(data, &config); err != nil {
		log.Printf("Warning: Invalid config file %s, using defaults: %v", configPath, err)
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Help font below 12px is unreadable
	if config.HelpFontSize <= 12.0 {
		config.HelpFontSize = defaultHelpFontSize
	}

	if !source.ValidSortMethod(config.SortMethod) {
		config.SortMethod = source.SortNatural
	}

	if config.SwipeThreshold <= 0 {
		config.SwipeThreshold = gesture.MinSwipeDistance
	} else if config.SwipeThreshold > maxSwipeThreshold {
		config.SwipeThreshold = maxSwipeThreshold
	}

	config.ColorSampleStride = metrics.NormalizeStride(config.ColorSampleStride)
	config.MetricsCacheSize = clampInt(config.MetricsCacheSize, 1, maxMetricsCacheSize, defaultMetricsCacheSize)
	config.TextureCacheSize = clampInt(config.TextureCacheSize, 1, maxTextureCacheSize, defaultTextureCacheSize)

	if config.MouseSettings.WheelSensitivity <= 0 {
		config.MouseSettings.WheelSensitivity = 1.0
	}
	if config.MouseSettings.DoubleClickTime <= 0 {
		config.MouseSettings.DoubleClickTime = GetDefaultMouseSettings().DoubleClickTime
	}

	// Fill in missing bindings with defaults, then fall back entirely on errors
	if config.Keybindings == nil {
		config.Keybindings = GetDefaultKeybindings()
	} else {
		for action, defaultKeys := range GetDefaultKeybindings() {
			if _, exists := config.Keybindings[action]; !exists {
				config.Keybindings[action] = defaultKeys
			}
		}
		if err := validateKeybindings(config.Keybindings); err != nil {
			log.Printf("Warning: Invalid keybindings detected, using defaults: %v", err)
			config.Keybindings = GetDefaultKeybindings()
			result.Status = "Warning"
			result.Warnings = append(result.Warnings, fmt.Sprintf("Keybinding errors: %v", err))
		}
	}

	if config.Mousebindings == nil {
		config.Mousebindings = GetDefaultMousebindings()
	} else {
		for action, defaults := range GetDefaultMousebindings() {
			if _, exists := config.Mousebindings[action]; !exists {
				config.Mousebindings[action] = defaults
			}
		}
		if err := validateMousebindings(config.Mousebindings); err != nil {
			log.Printf("Warning: Invalid mouse bindings detected, using defaults: %v", err)
			config.Mousebindings = GetDefaultMousebindings()
			result.Status = "Warning"
			result.Warnings = append(result.Warnings, fmt.Sprintf("Mouse binding errors: %v", err))
		}
	}

	result.Config = config
	return result
}

// getSortMethodName returns the human-readable name of a sort method
func getSortMethodName(sortMethod int) string {
	return source.GetSortStrategy(sortMethod).Name()
}

func saveConfigToPath(config Config, configPath string) {
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		log.Printf("Warning: Not saving config with invalid window size: %dx%d",
			config.WindowWidth, config.WindowHeight)
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		log.Printf("Error: Failed to marshal config: %v", err)
		return
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		log.Printf("Error: Failed to save config to %s: %v", configPath, err)
	}
}
