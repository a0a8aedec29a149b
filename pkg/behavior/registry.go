package behavior

import (
	"sort"
	"sync"

	"github.com/clavis/keymapd/internal/logger"
	"github.com/clavis/keymapd/pkg/keyerr"
)

// Registry is the table of known behaviors: name and local-ID lookup,
// guarded by a single mutex since registration happens at startup and
// lookups happen from the dispatch worker, never concurrently with a
// mutation.
//
// Example usage:
//
//	reg := behavior.NewRegistry()
//	reg.Register(&behavior.Behavior{Name: "kp", Locality: behavior.LocalityCentral, ...})
//	reg.CheckDuplicateNames()
//	CRC16Policy{}.AssignLocalIDs(ctx, reg)
//
//	b, err := reg.ResolveByName("kp")
type Registry struct {
	mu        sync.RWMutex
	byName    map[string]*Behavior
	byLocalID map[uint16]*Behavior
	order     []string // registration order, for stable iteration/diagnostics
	attempts  []string // every name ever passed to Register, including repeats
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:    make(map[string]*Behavior),
		byLocalID: make(map[uint16]*Behavior),
	}
}

// Register adds b to the registry under b.Name. It is an error to
// register a nil behavior or one with an empty name. Registering a name
// that is already present (the same object again or a distinct one) is
// not an error: the later registration replaces the earlier one and the
// name is reported by CheckDuplicateNames, matching the firmware's
// boot-time diagnostic rather than a hard failure. A behavior registered
// with a nonzero LocalID is resolvable by that ID right away.
func (r *Registry) Register(b *Behavior) error {
	if b == nil {
		return keyerr.New(keyerr.UnknownBehavior, "cannot register nil behavior")
	}
	if b.Name == "" {
		return keyerr.New(keyerr.UnknownBehavior, "cannot register behavior with empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[b.Name]; exists {
		logger.Warn("behavior name already registered, overwriting", logger.Behavior(b.Name))
	} else {
		r.order = append(r.order, b.Name)
	}
	r.attempts = append(r.attempts, b.Name)
	r.byName[b.Name] = b
	if b.LocalID != 0 {
		r.byLocalID[b.LocalID] = b
	}
	return nil
}

// ResolveByName looks up a behavior by name. Only ready behaviors match.
func (r *Registry) ResolveByName(name string) (*Behavior, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byName[name]
	if !ok || !b.ready() {
		return nil, keyerr.New(keyerr.UnknownBehavior, "behavior "+name+" not found")
	}
	return b, nil
}

// ResolveByLocalID looks up a behavior by its assigned local ID. Callers
// should invoke AssignLocalIDs once at startup before relying on this.
func (r *Registry) ResolveByLocalID(id uint16) (*Behavior, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byLocalID[id]
	if !ok || !b.ready() {
		return nil, keyerr.New(keyerr.UnknownBehavior, "no behavior with that local id")
	}
	return b, nil
}

// LocalIDOf returns the local ID assigned to name.
func (r *Registry) LocalIDOf(name string) (uint16, error) {
	b, err := r.ResolveByName(name)
	if err != nil {
		return 0, err
	}
	return b.LocalID, nil
}

// List returns every registered behavior in registration order.
func (r *Registry) List() []*Behavior {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Behavior, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// CheckDuplicateNames is a startup diagnostic: it logs every name
// registered more than once (which Register already allows, overwriting
// the previous entry) but never fails. Returns the duplicate names found,
// primarily for tests.
func (r *Registry) CheckDuplicateNames() []string {
	r.mu.RLock()
	counts := make(map[string]int, len(r.attempts))
	for _, name := range r.attempts {
		counts[name]++
	}
	r.mu.RUnlock()

	var dups []string
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	for _, name := range dups {
		logger.Error("duplicate behavior name registered", logger.Behavior(name))
	}
	return dups
}

// assignLocalID is called by a LocalIDPolicy to bind a local ID to a
// registered behavior. It is unexported: policies live in this package.
func (r *Registry) assignLocalID(name string, id uint16) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byName[name]
	if !ok {
		return keyerr.New(keyerr.UnknownBehavior, "cannot assign local id to unregistered behavior "+name)
	}
	b.LocalID = id
	r.byLocalID[id] = b
	return nil
}

// names returns the registered behavior names in registration order,
// used by local-ID policies to find unmapped behaviors.
func (r *Registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// hasLocalID reports whether name already has a nonzero local ID
// assigned.
func (r *Registry) hasLocalID(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byName[name]
	return ok && b.LocalID != 0
}

// nameExists reports whether name is registered, regardless of local-ID
// assignment.
func (r *Registry) nameExists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byName[name]
	return ok
}
