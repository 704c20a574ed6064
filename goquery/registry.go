package goquery

import (
	"net/url"
	"sort"
	"strings"
	"sync"
)

// Registry holds site adapters keyed by name and finds the adapter that
// serves a URL by its host.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]Adapter
}

// NewRegistry creates a Registry holding the given adapters.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds an adapter.
// If an adapter is already registered under the same name, it is replaced.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.Name] = a
}

// Get returns the adapter registered under name.
func (r *Registry) Get(name string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.adapters[name]
	return a, ok
}

// Lookup returns the adapter whose URL rules accept the host of rawURL.
// When several match, the one with the lowest name wins.
func (r *Registry) Lookup(rawURL string) (Adapter, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Hostname() == "" {
		return Adapter{}, false
	}
	host := u.Hostname()
	for _, name := range r.List() {
		a, _ := r.Get(name)
		if a.URL.AcceptsHost(host) {
			return a, true
		}
	}
	return Adapter{}, false
}

// List returns the names of all registered adapters in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
