package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"folio/internal/source"
)

var debugMode bool

// debugLog prints only when -debug is given
func debugLog(format string, args ...interface{}) {
	if debugMode {
		log.Printf("DEBUG: "+format, args...)
	}
}

func main() {
	configPath := flag.String("config", getConfigPath(), "path to the JSON config file")
	flag.BoolVar(&debugMode, "debug", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <image|archive|directory|url>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if debugMode {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	configResult := loadConfigFromPath(*configPath)
	config := configResult.Config
	debugLog("Config %s: %s", *configPath, configResult.Status)

	items, err := source.Collect(flag.Args(), config.SortMethod)
	if err != nil {
		log.Fatal(err)
	}
	if len(items) == 0 {
		flag.Usage()
		log.Fatal("no image files specified")
	}
	debugLog("Collected %d images (%s sort)", len(items), getSortMethodName(config.SortMethod))

	if err := InitGraphics(); err != nil {
		log.Fatal(err)
	}

	g, err := NewGame(items, configResult, *configPath, source.NewLoader(nil))
	if err != nil {
		log.Fatal(err)
	}

	if watcher, err := NewConfigWatcher(*configPath); err != nil {
		log.Printf("Warning: config reload disabled: %v", err)
	} else {
		g.watcher = watcher
	}

	ebiten.SetWindowTitle("folio")
	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	if config.Fullscreen {
		g.ToggleFullscreen()
	}

	runErr := ebiten.RunGame(g)
	g.Close()
	if runErr != nil {
		log.Fatal(runErr)
	}
}
