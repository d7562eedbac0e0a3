// Package favorites keeps the set of favorited gallery item ids for one session.
package favorites

// Store is a membership set keyed by item id. Only membership is observable.
type Store struct {
	ids map[string]struct{}
}

// New creates an empty Store.
func New() *Store {
	return &Store{ids: make(map[string]struct{})}
}

// Toggle flips the membership of id and returns the new membership.
func (s *Store) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

func (s *Store) IsFavorite(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of favorited ids.
func (s *Store) Len() int {
	return len(s.ids)
}
