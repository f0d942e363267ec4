package permission

import "sync"

// Registry caches the resource grants of the current principal. It is
// rebuilt wholesale on every login or rehydrate and cleared on logout;
// lookups against it never reach the network.
//
// The registry has exactly one writer (the session store) and any number
// of concurrent readers.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]entry
}

type entry struct {
	label     string
	actions   []string
	actionSet map[string]struct{}
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]entry)}
}

// Populate atomically replaces the full grant set. Stale entries from a
// previous session never survive; there is no merge.
func (r *Registry) Populate(resources []Resource) {
	order := make([]string, 0, len(resources))
	byName := make(map[string]entry, len(resources))
	for _, res := range resources {
		if _, dup := byName[res.Name]; !dup {
			order = append(order, res.Name)
		}
		actions := make([]string, len(res.Actions))
		copy(actions, res.Actions)
		set := make(map[string]struct{}, len(actions))
		for _, a := range actions {
			set[a] = struct{}{}
		}
		byName[res.Name] = entry{label: res.Label, actions: actions, actionSet: set}
	}

	r.mu.Lock()
	r.order = order
	r.byName = byName
	r.mu.Unlock()
}

// Clear atomically resets the registry to empty.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.order = nil
	r.byName = make(map[string]entry)
	r.mu.Unlock()
}

// HasPermission reports whether action is granted on the named resource.
// Absent resources and unknown actions resolve to false; matching is
// exact, with no wildcards and no hierarchy between actions.
func (r *Registry) HasPermission(resource, action string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[resource]
	if !ok {
		return false
	}
	_, granted := e.actionSet[action]
	return granted
}

// ResourceActions returns the granted actions for the named resource, or
// nil when the resource is absent.
func (r *Registry) ResourceActions(resource string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[resource]
	if !ok {
		return nil
	}
	actions := make([]string, len(e.actions))
	copy(actions, e.actions)
	return actions
}

// AvailableResources returns every resource from the last Populate call in
// insertion order. A resource with zero granted actions is still listed;
// callers deciding navigation filter with HasPermission(name, "read").
func (r *Registry) AvailableResources() []Resource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Resource, 0, len(r.order))
	for _, name := range r.order {
		e := r.byName[name]
		actions := make([]string, len(e.actions))
		copy(actions, e.actions)
		out = append(out, Resource{Name: name, Label: e.label, Actions: actions})
	}
	return out
}

// Len reports the number of cached resources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
