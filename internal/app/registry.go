package service

import (
	"sort"
	"sync"

	"github.com/okian/fightpicks/pkg/metrics"
)

// Registry holds one controller per open event view.
type Registry struct {
	mu          sync.RWMutex
	client      Client
	opts        []Option
	controllers map[string]*Controller
}

// NewRegistry returns an empty registry whose controllers share client and opts.
func NewRegistry(c Client, opts ...Option) *Registry {
	return &Registry{
		client:      c,
		opts:        opts,
		controllers: make(map[string]*Controller),
	}
}

// Ensure returns the controller for eventID, creating it if needed.
// created reports whether the caller must Load it.
func (r *Registry) Ensure(eventID string) (ctl *Controller, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ctl := r.controllers[eventID]; ctl != nil {
		return ctl, false
	}
	ctl = New(eventID, r.client, r.opts...)
	r.controllers[eventID] = ctl
	metrics.UpdateOpenViews(len(r.controllers))
	return ctl, true
}

// Get returns the controller for eventID, or nil.
func (r *Registry) Get(eventID string) *Controller {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.controllers[eventID]
}

// Remove discards the view for eventID along with any unsaved draft.
func (r *Registry) Remove(eventID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.controllers[eventID]; !ok {
		return false
	}
	delete(r.controllers, eventID)
	metrics.UpdateOpenViews(len(r.controllers))
	return true
}

// Len returns the number of open views.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.controllers)
}

// Each calls fn for every controller in event id order. fn runs without the
// registry lock held.
func (r *Registry) Each(fn func(*Controller)) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.controllers))
	for id := range r.controllers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	ctls := make([]*Controller, 0, len(ids))
	for _, id := range ids {
		ctls = append(ctls, r.controllers[id])
	}
	r.mu.RUnlock()

	for _, ctl := range ctls {
		fn(ctl)
	}
}

// UpdateGauges publishes the open and dirty view counts.
func (r *Registry) UpdateGauges() {
	dirty := 0
	r.Each(func(c *Controller) {
		if c.IsDirty() {
			dirty++
		}
	})
	metrics.UpdateOpenViews(r.Len())
	metrics.UpdateDirtyViews(dirty)
}
