package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"runtime"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"folio/internal/metrics"
)

// TextureManager loads GPU textures for source URLs on a worker goroutine.
// Only the most recent request is kept; older queued requests are dropped
// when the user has already moved on.
type TextureManager struct {
	loader      metrics.Loader
	cache       *lru.Cache[string, *ebiten.Image]
	requestChan chan string
	ctx         context.Context
	cancel      context.CancelFunc

	mu       sync.Mutex
	inflight map[string]bool
}

// NewTextureManager creates a TextureManager keeping at most cacheSize textures
func NewTextureManager(loader metrics.Loader, cacheSize int) *TextureManager {
	evict := func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	}
	cache, err := lru.NewWithEvict[string, *ebiten.Image](cacheSize, evict)
	if err != nil {
		log.Printf("Warning: invalid texture cache size %d, using %d: %v", cacheSize, defaultTextureCacheSize, err)
		cache, _ = lru.NewWithEvict[string, *ebiten.Image](defaultTextureCacheSize, evict)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &TextureManager{
		loader:      loader,
		cache:       cache,
		requestChan: make(chan string, 4),
		ctx:         ctx,
		cancel:      cancel,
		inflight:    make(map[string]bool),
	}

	go m.worker()

	return m
}

// Get returns the texture for sourceURL, or starts loading it and returns false.
func (m *TextureManager) Get(sourceURL string) (*ebiten.Image, bool) {
	if sourceURL == "" {
		return nil, false
	}
	if img, ok := m.cache.Get(sourceURL); ok {
		return img, true
	}
	m.request(sourceURL)
	return nil, false
}

func (m *TextureManager) request(sourceURL string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.inflight[sourceURL] {
		return
	}

	// Drop requests nobody is waiting for any more
drain:
	for {
		select {
		case stale := <-m.requestChan:
			delete(m.inflight, stale)
		default:
			break drain
		}
	}

	select {
	case m.requestChan <- sourceURL:
		m.inflight[sourceURL] = true
	default:
		debugLog("Texture request channel full, skipping %s", sourceURL)
	}
}

// Stop stops the worker. Cached textures stay usable.
func (m *TextureManager) Stop() {
	m.cancel()
}

func (m *TextureManager) worker() {
	for {
		select {
		case <-m.ctx.Done():
			return
		case sourceURL := <-m.requestChan:
			m.load(sourceURL)
		}
	}
}

func (m *TextureManager) load(sourceURL string) {
	defer func() {
		m.mu.Lock()
		delete(m.inflight, sourceURL)
		m.mu.Unlock()
	}()

	img, err := m.loadTexture(sourceURL)
	if err != nil {
		if m.ctx.Err() != nil {
			return
		}
		log.Printf("Error: Failed to load image %s: %v", sourceURL, err)
		img = CreateErrorImage(400, 300, sourceURL, err.Error())
	}
	m.cache.Add(sourceURL, img)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	debugLog("Texture loaded: %s (cache: %d items, memory: %dMB)", sourceURL, m.cache.Len(), mem.Alloc/1024/1024)
}

func (m *TextureManager) loadTexture(sourceURL string) (*ebiten.Image, error) {
	data, err := m.loader.Load(m.ctx, sourceURL)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", sourceURL, err)
	}
	return ebiten.NewImageFromImage(img), nil
}
