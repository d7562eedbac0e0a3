package metrics

import "sync/atomic"

type completion struct {
	generation uint64
	sourceURL  string
	metrics    Metrics
}

// Slot holds the metrics of one logical subject, such as the image currently
// on screen. Every Request or Release starts a new generation, and a result is
// applied only if it belongs to the current one. Slot is not safe for
// concurrent use; call it from the goroutine that owns the view.
type Slot struct {
	resolver   *Resolver
	generation uint64
	subject    string
	current    Metrics
	results    chan completion
	// abandoned is closed when the generation it was made for ends, so its
	// resolution never waits on a Poll that will not come.
	abandoned chan struct{}
	discarded atomic.Int64
}

// retire ends the current generation's claim on the results channel.
func (s *Slot) retire() {
	if s.abandoned != nil {
		close(s.abandoned)
		s.abandoned = nil
	}
}

// Request makes sourceURL the slot's subject. Cached metrics apply
// immediately; otherwise resolution runs in the background and is picked up
// by Poll.
func (s *Slot) Request(sourceURL string) {
	s.retire()
	s.generation++
	s.subject = sourceURL
	s.current = Metrics{}

	if m, ok := s.resolver.Cached(sourceURL); ok {
		s.current = m
		return
	}

	gen := s.generation
	abandoned := make(chan struct{})
	s.abandoned = abandoned
	r := s.resolver
	go func() {
		m, _ := r.Resolve(r.ctx, sourceURL)
		select {
		case <-abandoned:
			s.discarded.Add(1)
			return
		default:
		}
		select {
		case s.results <- completion{generation: gen, sourceURL: sourceURL, metrics: m}:
		case <-abandoned:
			s.discarded.Add(1)
		case <-r.ctx.Done():
		}
	}()
}

// Release abandons the current subject. Results still in flight are discarded.
func (s *Slot) Release() {
	s.retire()
	s.generation++
	s.subject = ""
	s.current = Metrics{}
}

// Poll applies any result for the current generation and reports whether
// the slot's metrics changed.
func (s *Slot) Poll() bool {
	changed := false
	for {
		select {
		case c := <-s.results:
			if c.generation != s.generation || c.sourceURL != s.subject {
				s.discarded.Add(1)
				continue
			}
			s.current = c.metrics
			changed = true
		default:
			return changed
		}
	}
}

// Current returns the metrics applied for the current subject.
func (s *Slot) Current() Metrics {
	return s.current
}

// Subject returns the source URL the slot is bound to, or "".
func (s *Slot) Subject() string {
	return s.subject
}

// Pending reports whether the subject is still being resolved.
func (s *Slot) Pending() bool {
	return s.subject != "" && !s.current.Resolved && s.current.Err == nil
}

// Discarded counts stale results that were dropped.
func (s *Slot) Discarded() int {
	return int(s.discarded.Load())
}
