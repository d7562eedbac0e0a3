// Package navigation owns the current position within a fixed, ordered
// sequence of gallery items.
package navigation

// State is the closed set of positions a Navigator can be in.
type State int

const (
	NoItems State = iota
	SingleItem
	AtFirst
	Middle
	AtLast
)

func (s State) String() string {
	switch s {
	case NoItems:
		return "no-items"
	case SingleItem:
		return "single-item"
	case AtFirst:
		return "at-first"
	case Middle:
		return "middle"
	case AtLast:
		return "at-last"
	default:
		return "unknown"
	}
}

// Navigator tracks the current index into a sequence of total items.
// Movement stops at both ends; requests past a bound are ignored.
type Navigator struct {
	index int
	total int
}

// New creates a Navigator positioned at the first item.
func New(total int) *Navigator {
	if total < 0 {
		total = 0
	}
	return &Navigator{total: total}
}

// Index returns the current index. It is 0 for an empty sequence.
func (n *Navigator) Index() int {
	return n.index
}

// Total returns the number of items in the sequence.
func (n *Navigator) Total() int {
	return n.total
}

func (n *Navigator) HasPrevious() bool {
	return n.total > 0 && n.index > 0
}

func (n *Navigator) HasNext() bool {
	return n.total > 0 && n.index < n.total-1
}

// GoNext advances by one item and reports whether the index changed.
func (n *Navigator) GoNext() bool {
	if !n.HasNext() {
		return false
	}
	n.index++
	return true
}

// GoPrevious steps back by one item and reports whether the index changed.
func (n *Navigator) GoPrevious() bool {
	if !n.HasPrevious() {
		return false
	}
	n.index--
	return true
}

// First moves to the first item.
func (n *Navigator) First() bool {
	return n.JumpTo(0)
}

// Last moves to the last item.
func (n *Navigator) Last() bool {
	return n.JumpTo(n.total - 1)
}

// JumpTo moves to idx if it lies within the sequence. Out-of-range targets
// leave the navigator untouched.
func (n *Navigator) JumpTo(idx int) bool {
	if idx < 0 || idx >= n.total || idx == n.index {
		return false
	}
	n.index = idx
	return true
}

// State classifies the current position.
func (n *Navigator) State() State {
	switch {
	case n.total == 0:
		return NoItems
	case n.total == 1:
		return SingleItem
	case n.index == 0:
		return AtFirst
	case n.index == n.total-1:
		return AtLast
	default:
		return Middle
	}
}
