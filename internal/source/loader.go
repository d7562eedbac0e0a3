package source

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"
	"github.com/shouni/go-http-kit/pkg/httpkit"
)

const (
	defaultTimeout = 30 * time.Second
	maxRetries     = 2
)

// Fetcher downloads the body behind an http(s) URL. *httpkit.Client
// satisfies it.
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// Loader reads the raw bytes behind a source URL.
type Loader struct {
	fetcher Fetcher
}

// NewLoader creates a Loader. A nil fetcher gets an httpkit client with a
// timeout and a few retries. Network validation is skipped because the user
// names the URLs, and images on the local network are fair game.
func NewLoader(fetcher Fetcher) *Loader {
	if fetcher == nil {
		fetcher = httpkit.New(defaultTimeout,
			httpkit.WithMaxRetries(maxRetries),
			httpkit.WithSkipNetworkValidation(true),
		)
	}
	return &Loader{fetcher: fetcher}
}

// Load returns the bytes for sourceURL, which is a file path, an archive URL
// built by ArchiveURL, or an http(s) URL.
func (l *Loader) Load(ctx context.Context, sourceURL string) ([]byte, error) {
	if isRemote(sourceURL) {
		data, err := l.fetcher.FetchBytes(ctx, sourceURL)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", sourceURL, err)
		}
		return data, nil
	}
	if archivePath, entry, ok := SplitArchiveURL(sourceURL); ok {
		return readArchiveEntry(archivePath, entry)
	}
	return os.ReadFile(sourceURL)
}

func readArchiveEntry(archivePath, entry string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		return readZipEntry(archivePath, entry)
	case ".rar":
		return readRarEntry(archivePath, entry)
	case ".7z":
		return read7zEntry(archivePath, entry)
	default:
		return nil, fmt.Errorf("%w: archive %s", ErrUnsupported, archivePath)
	}
}

func readZipEntry(archivePath, entry string) ([]byte, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entry {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entry, archivePath)
}

func readRarEntry(archivePath, entry string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header.Name == entry {
			return io.ReadAll(r)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entry, archivePath)
}

func read7zEntry(archivePath, entry string) ([]byte, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == entry {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found in %s", entry, archivePath)
}
