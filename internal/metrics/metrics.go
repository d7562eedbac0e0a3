// Package metrics derives orientation, aspect ratio and a dominant color from
// images, asynchronously and without letting stale results reach the caller.
package metrics

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

const (
	defaultCacheSize = 64
	// DefaultSampleStride samples every fifth pixel of an RGBA buffer.
	DefaultSampleStride = 20
	minSampleStride     = 4
	maxSampleStride     = 20
)

// DefaultColor is used whenever a dominant color cannot be computed.
var DefaultColor = color.RGBA{0, 0, 0, 255}

// ErrEmptyImage is returned for images with a zero dimension.
var ErrEmptyImage = errors.New("image has no pixels")

// Metrics describes one image. The zero value is unresolved.
type Metrics struct {
	AspectRatio   float64
	IsPortrait    bool
	DominantColor color.RGBA
	Width         int
	Height        int
	// Resolved is set once the image decoded successfully.
	Resolved bool
	// ColorResolved is false when DominantColor holds DefaultColor as a fallback.
	ColorResolved bool
	// Err is set when resolution failed.
	Err error
}

// Failed reports whether resolution finished with an error.
func (m Metrics) Failed() bool {
	return m.Err != nil
}

// Loader supplies the encoded bytes of a source URL.
type Loader interface {
	Load(ctx context.Context, sourceURL string) ([]byte, error)
}

// Options configures a Resolver.
type Options struct {
	CacheSize    int
	SampleStride int
	// WithColor enables dominant color sampling, which needs a full decode.
	WithColor bool
	Logger    *slog.Logger
}

// Resolver computes Metrics for source URLs. Successful results are cached
// and concurrent requests for the same URL share one load.
type Resolver struct {
	loader    Loader
	cache     *lru.Cache[string, Metrics]
	group     singleflight.Group
	stride    int
	withColor bool
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NormalizeStride clamps a sample stride to whole pixels within the supported range.
func NormalizeStride(stride int) int {
	if stride <= 0 {
		return DefaultSampleStride
	}
	if stride < minSampleStride {
		stride = minSampleStride
	}
	if stride > maxSampleStride {
		stride = maxSampleStride
	}
	return stride - stride%4
}

// NewResolver creates a Resolver reading bytes through loader.
func NewResolver(loader Loader, opts Options) (*Resolver, error) {
	if loader == nil {
		return nil, errors.New("metrics: nil loader")
	}
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, Metrics](size)
	if err != nil {
		return nil, fmt.Errorf("creating metrics cache: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Resolver{
		loader:    loader,
		cache:     cache,
		stride:    NormalizeStride(opts.SampleStride),
		withColor: opts.WithColor,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Cached returns previously resolved metrics for sourceURL.
func (r *Resolver) Cached(sourceURL string) (Metrics, bool) {
	return r.cache.Get(sourceURL)
}

// Resolve loads and measures sourceURL. On failure the returned Metrics
// carries the error too, so it can be shown as a fallback state.
func (r *Resolver) Resolve(ctx context.Context, sourceURL string) (Metrics, error) {
	if m, ok := r.cache.Get(sourceURL); ok {
		return m, nil
	}

	v, err, _ := r.group.Do(sourceURL, func() (interface{}, error) {
		m, err := r.measure(ctx, sourceURL)
		if err != nil {
			return Metrics{Err: err}, err
		}
		r.cache.Add(sourceURL, m)
		return m, nil
	})
	m := v.(Metrics)
	if err != nil {
		r.logger.Warn("image metrics unavailable", "url", sourceURL, "error", err)
	}
	return m, err
}

func (r *Resolver) measure(ctx context.Context, sourceURL string) (Metrics, error) {
	data, err := r.loader.Load(ctx, sourceURL)
	if err != nil {
		return Metrics{}, fmt.Errorf("loading %s: %w", sourceURL, err)
	}

	if !r.withColor {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return Metrics{}, fmt.Errorf("decoding %s: %w", sourceURL, err)
		}
		return fromSize(cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Metrics{}, fmt.Errorf("decoding %s: %w", sourceURL, err)
	}
	m, err := fromSize(img.Bounds().Dx(), img.Bounds().Dy())
	if err != nil {
		return Metrics{}, err
	}

	c, err := DominantColor(img, r.stride)
	if err != nil {
		r.logger.Warn("dominant color unavailable, using default", "url", sourceURL, "error", err)
	} else {
		m.ColorResolved = true
	}
	m.DominantColor = c
	return m, nil
}

func fromSize(w, h int) (Metrics, error) {
	if w <= 0 || h <= 0 {
		return Metrics{}, ErrEmptyImage
	}
	return Metrics{
		AspectRatio:   float64(w) / float64(h),
		IsPortrait:    h > w,
		DominantColor: DefaultColor,
		Width:         w,
		Height:        h,
		Resolved:      true,
	}, nil
}

// NewSlot creates a subject slot bound to this resolver.
func (r *Resolver) NewSlot() *Slot {
	return &Slot{
		resolver: r,
		results:  make(chan completion, 8),
	}
}

// Close stops delivery of pending results and aborts in-flight loads.
func (r *Resolver) Close() {
	r.cancel()
}
