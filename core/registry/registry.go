package registry

import "sync"

// Registry is a process-wide key/value store for extension lists. Each key can be
// locked once the application has applied it; writes to a locked key are rejected.
type Registry struct {
	mu     sync.RWMutex
	values map[string]interface{}
	locked map[string]bool
}

// GlobalRegistry is shared by cmd, cron and api registration.
var GlobalRegistry = New()

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		values: make(map[string]interface{}),
		locked: make(map[string]bool),
	}
}

// SetGlobal stores v under key. It is a no-op when key is locked.
func (r *Registry) SetGlobal(key string, v interface{}) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locked[key] {
		return false
	}
	r.values[key] = v
	return true
}

// GetGlobal returns the value stored under key.
func (r *Registry) GetGlobal(key string) (interface{}, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok
}

// Lock makes key immutable.
func (r *Registry) Lock(key string) {
	r.mu.Lock()
	r.locked[key] = true
	r.mu.Unlock()
}

// IsLocked reports whether key has been locked.
func (r *Registry) IsLocked(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.locked[key]
}

// UnlockForTesting re-opens key so tests can register extra entries.
func (r *Registry) UnlockForTesting(key string) {
	r.mu.Lock()
	delete(r.locked, key)
	r.mu.Unlock()
}
