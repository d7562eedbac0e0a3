// Package source collects gallery items from files, directories, archives and
// remote URLs, and loads their raw bytes.
package source

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode"

	"folio/internal/gallery"
)

// archiveSep separates an archive path from the entry inside it.
const archiveSep = "!/"

// ErrUnsupported is returned for archive formats or URLs the loader cannot read.
var ErrUnsupported = errors.New("unsupported source")

func isArchiveExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".rar", ".7z":
		return true
	default:
		return false
	}
}

func isSupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".gif":
		return true
	default:
		return false
	}
}

func isRemote(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ArchiveURL addresses an entry inside an archive.
func ArchiveURL(archivePath, entry string) string {
	return archivePath + archiveSep + entry
}

// SplitArchiveURL reverses ArchiveURL. ok is false for plain paths.
func SplitArchiveURL(sourceURL string) (archivePath, entry string, ok bool) {
	offset := 0
	for {
		idx := strings.Index(sourceURL[offset:], archiveSep)
		if idx < 0 {
			return "", "", false
		}
		idx += offset
		if isArchiveExt(sourceURL[:idx]) {
			return sourceURL[:idx], sourceURL[idx+len(archiveSep):], true
		}
		offset = idx + len(archiveSep)
	}
}

// NewItem builds an item whose identity is its source URL.
func NewItem(sourceURL string) gallery.ImageItem {
	name := sourceURL
	if _, entry, ok := SplitArchiveURL(sourceURL); ok {
		name = entry
	}
	if isRemote(name) {
		name = strings.TrimRight(name, "/")
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		if i := strings.IndexAny(name, "?#"); i >= 0 {
			name = name[:i]
		}
	} else {
		name = filepath.Base(name)
	}
	alt := strings.TrimSuffix(name, filepath.Ext(name))

	return gallery.ImageItem{
		ID:        sourceURL,
		SourceURL: sourceURL,
		AltText:   alt,
	}
}

func itemsFromNames(archivePath string, names []string) []gallery.ImageItem {
	var items []gallery.ImageItem
	for _, name := range names {
		if isSupportedExt(name) {
			items = append(items, NewItem(ArchiveURL(archivePath, name)))
		}
	}
	return items
}

func listZip(archivePath string) ([]string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		if !f.FileInfo().IsDir() {
			names = append(names, f.Name)
		}
	}
	return names, nil
}

func listRar(archivePath string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, err := rardecode.NewReader(f, "")
	if err != nil {
		return nil, err
	}

	var names []string
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !header.IsDir {
			names = append(names, header.Name)
		}
	}
	return names, nil
}

func list7z(archivePath string) ([]string, error) {
	r, err := sevenzip.OpenReader(archivePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var names []string
	for _, f := range r.File {
		if !f.FileInfo().IsDir() {
			names = append(names, f.Name)
		}
	}
	return names, nil
}

func processArchive(archivePath string) ([]gallery.ImageItem, error) {
	var names []string
	var err error

	switch strings.ToLower(filepath.Ext(archivePath)) {
	case ".zip":
		names, err = listZip(archivePath)
	case ".rar":
		names, err = listRar(archivePath)
	case ".7z":
		names, err = list7z(archivePath)
	default:
		return nil, fmt.Errorf("%w: archive %s", ErrUnsupported, archivePath)
	}
	if err != nil {
		return nil, fmt.Errorf("reading archive %s: %w", archivePath, err)
	}
	return itemsFromNames(archivePath, names), nil
}

// Collect expands args into an ordered item list. Directories are walked,
// archives contribute their image entries and http(s) URLs are taken as-is.
// Each argument's items are sorted with sortMethod; argument order is kept.
func Collect(args []string, sortMethod int) ([]gallery.ImageItem, error) {
	strategy := GetSortStrategy(sortMethod)

	var list []gallery.ImageItem
	for _, p := range args {
		if isRemote(p) {
			list = append(list, NewItem(p))
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			switch {
			case isSupportedExt(p):
				list = append(list, NewItem(p))
			case isArchiveExt(p):
				items, err := processArchive(p)
				if err != nil {
					slog.Warn("skipping problematic archive", "path", p, "error", err)
					continue
				}
				list = append(list, strategy.Sort(items)...)
			}
			continue
		}

		var dirItems []gallery.ImageItem
		err = filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				return nil
			}
			if isSupportedExt(path) {
				dirItems = append(dirItems, NewItem(path))
			} else if isArchiveExt(path) {
				items, err := processArchive(path)
				if err != nil {
					slog.Warn("skipping problematic archive", "path", path, "error", err)
					return nil
				}
				dirItems = append(dirItems, items...)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		list = append(list, strategy.Sort(dirItems)...)
	}

	return list, nil
}
