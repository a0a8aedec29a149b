package layout

import (
	"context"
	"sync"

	"github.com/clavis/keymapd/internal/logger"
	"github.com/clavis/keymapd/pkg/keyerr"
	"github.com/clavis/keymapd/pkg/persist"
)

// Manager holds the single "active" physical layout pointer and wires
// the pipeline's scan callback to whichever layout is selected.
type Manager struct {
	mu       sync.Mutex
	layouts  []*PhysicalLayout
	active   int
	store    persist.Store
	callback ScanCallback
}

// NewManager returns a Manager over the given layouts. callback is
// registered with whichever layout's scan source is active; store is used
// to persist and reload the selection (may be nil to disable persistence).
// active starts at -1 (no layout selected yet) so the first Select, even
// for index 0, actually enables that layout's scan source instead of
// short-circuiting on selectLocked's "already active" check.
func NewManager(layouts []*PhysicalLayout, store persist.Store, callback ScanCallback) (*Manager, error) {
	if len(layouts) == 0 {
		return nil, keyerr.New(keyerr.DomainRange, "at least one physical layout is required")
	}
	return &Manager{layouts: layouts, store: store, callback: callback, active: -1}, nil
}

// GetSelected returns the index of the currently active layout.
func (m *Manager) GetSelected() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Active returns the currently active layout.
func (m *Manager) Active() *PhysicalLayout {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.layouts[m.active]
}

// Select switches the active layout to index, disabling the previous
// scan source and enabling the new one. Select is idempotent when index
// is already active.
func (m *Manager) Select(ctx context.Context, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectLocked(ctx, index)
}

// SelectByHandle selects the layout by identity rather than index.
func (m *Manager) SelectByHandle(ctx context.Context, layout *PhysicalLayout) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, l := range m.layouts {
		if l == layout {
			return m.selectLocked(ctx, i)
		}
	}
	return keyerr.New(keyerr.DomainRange, "layout not registered with this manager")
}

func (m *Manager) selectLocked(ctx context.Context, index int) error {
	if index < 0 || index >= len(m.layouts) {
		return keyerr.New(keyerr.DomainRange, "physical layout index out of range")
	}
	if index == m.active {
		return nil
	}

	if m.active >= 0 {
		prev := m.layouts[m.active]
		if prev.ScanSource != nil {
			if err := prev.ScanSource.Disable(ctx); err != nil {
				logger.Warn("failed to disable previous scan source", logger.Layout(prev.Name), logger.Err(err))
			}
			if s, ok := prev.ScanSource.(PowerSuspendable); ok {
				if err := s.Suspend(ctx); err != nil {
					logger.Warn("failed to suspend previous scan source", logger.Layout(prev.Name), logger.Err(err))
				}
			}
		}
	}

	next := m.layouts[index]
	m.active = index

	if next.ScanSource == nil {
		return nil
	}

	if r, ok := next.ScanSource.(PowerResumable); ok {
		if err := r.Resume(ctx); err != nil {
			// Leave the layout installed but disabled, per the manager's
			// error-propagation contract.
			return keyerr.Wrap(keyerr.DeviceNotReady, "failed to resume scan source for layout "+next.Name, err)
		}
	}

	next.ScanSource.SetCallback(m.callback)
	return next.ScanSource.Enable(ctx)
}

// SelectInitial resolves the startup layout: the configured "chosen"
// layout if chosen >= 0, else layout 0; then any persisted selection
// overrides it.
func (m *Manager) SelectInitial(ctx context.Context, chosen int) error {
	initial := 0
	if chosen >= 0 && chosen < len(m.layouts) {
		initial = chosen
	}

	if m.store != nil {
		if v, ok, err := m.store.Get(ctx, persist.SelectedLayoutKey()); err == nil && ok && len(v) == 1 {
			if idx := int(v[0]); idx >= 0 && idx < len(m.layouts) {
				initial = idx
			}
		}
	}

	return m.Select(ctx, initial)
}

// SaveSelected persists the active layout index so it survives a reboot.
func (m *Manager) SaveSelected(ctx context.Context) error {
	if m.store == nil {
		return keyerr.New(keyerr.Unsupported, "persistence disabled")
	}
	idx := m.GetSelected()
	if err := m.store.Put(ctx, persist.SelectedLayoutKey(), []byte{byte(idx)}); err != nil {
		return keyerr.Wrap(keyerr.PersistenceIO, "failed to persist selected layout", err)
	}
	return nil
}
