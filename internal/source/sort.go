package source

import (
	"sort"

	"github.com/maruel/natural"

	"folio/internal/gallery"
)

// Sort method identifiers stored in the config file.
const (
	SortNatural    = 0 // Natural sort order (e.g., img1, img2, img10)
	SortSimple     = 1 // Lexicographical
	SortEntryOrder = 2 // Keep the order entries were found in
)

// SortStrategy orders gallery items by their source URL.
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(items []gallery.ImageItem) []gallery.ImageItem
	Name() string
	ID() int
}

func cloneItems(items []gallery.ImageItem) []gallery.ImageItem {
	result := make([]gallery.ImageItem, len(items))
	copy(result, items)
	return result
}

type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(items []gallery.ImageItem) []gallery.ImageItem {
	result := cloneItems(items)
	sort.SliceStable(result, func(i, j int) bool {
		return natural.Less(result[i].SourceURL, result[j].SourceURL)
	})
	return result
}

func (s *NaturalSortStrategy) Name() string { return "Natural" }
func (s *NaturalSortStrategy) ID() int      { return SortNatural }

type SimpleSortStrategy struct{}

func (s *SimpleSortStrategy) Sort(items []gallery.ImageItem) []gallery.ImageItem {
	result := cloneItems(items)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SourceURL < result[j].SourceURL
	})
	return result
}

func (s *SimpleSortStrategy) Name() string { return "Simple" }
func (s *SimpleSortStrategy) ID() int      { return SortSimple }

// EntryOrderSortStrategy preserves the original order.
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(items []gallery.ImageItem) []gallery.ImageItem {
	return cloneItems(items)
}

func (s *EntryOrderSortStrategy) Name() string { return "Entry Order" }
func (s *EntryOrderSortStrategy) ID() int      { return SortEntryOrder }

// GetSortStrategy returns the strategy for sortMethod, falling back to natural order.
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortSimple:
		return &SimpleSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &NaturalSortStrategy{}
	}
}

// ValidSortMethod reports whether sortMethod names a known strategy.
func ValidSortMethod(sortMethod int) bool {
	return sortMethod >= SortNatural && sortMethod <= SortEntryOrder
}
