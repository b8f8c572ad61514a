package viewcache

import (
	"fmt"
	"sync"
)

// Logical view paths the presentation layer caches. Mutations mark
// them stale; clients re-fetch on the next render.
const (
	ViewVenueList = "venues"
)

func ViewVenueDetail(venueID string) string   { return "venue:" + venueID }
func ViewReviewDetail(reviewID string) string { return "review:" + reviewID }
func ViewFavorites(userID string) string      { return "favorites:" + userID }

// Listener receives every invalidated view path.
type Listener func(view string)

// Registry tracks staleness per view path. Each invalidation bumps the
// view's version, so a reader can tell whether its copy is current.
type Registry struct {
	mu        sync.RWMutex
	versions  map[string]uint64
	stale     map[string]bool
	listeners []Listener
}

func NewRegistry() *Registry {
	return &Registry{
		versions: make(map[string]uint64),
		stale:    make(map[string]bool),
	}
}

// Subscribe registers a listener for invalidation events. Listeners
// are called synchronously, in registration order.
func (r *Registry) Subscribe(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, l)
}

// Invalidate marks the given views stale and notifies listeners.
func (r *Registry) Invalidate(views ...string) {
	r.mu.Lock()
	for _, v := range views {
		r.versions[v]++
		r.stale[v] = true
	}
	listeners := make([]Listener, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, l := range listeners {
		for _, v := range views {
			l(v)
		}
	}
}

// IsStale reports whether a view was invalidated since the last Fresh.
func (r *Registry) IsStale(view string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stale[view]
}

// Version returns the current version of a view; 0 means it was never
// invalidated.
func (r *Registry) Version(view string) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.versions[view]
}

// Fresh clears the stale mark after a re-fetch.
func (r *Registry) Fresh(view string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stale[view] = false
}

// String implements fmt.Stringer for debug logging.
func (r *Registry) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, s := range r.stale {
		if s {
			n++
		}
	}
	return fmt.Sprintf("viewcache{views=%d stale=%d}", len(r.versions), n)
}
