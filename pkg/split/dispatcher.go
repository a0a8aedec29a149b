// Package split models the central/peripheral locality switch described
// for split-keyboard behaviors: a Dispatcher abstracts over invoking a
// behavior locally versus routing it to (or broadcasting it to) a
// peripheral half over the split RPC transport.
package split

import (
	"context"

	"github.com/clavis/keymapd/pkg/behavior"
)

// Target identifies where a behavior invocation should execute.
type Target struct {
	// Peripheral names the destination peripheral. Empty means central
	// (local) execution.
	Peripheral string
}

// IsLocal reports whether t targets the central half.
func (t Target) IsLocal() bool { return t.Peripheral == "" }

// Dispatcher executes one press or release invocation against the given
// target, resolving the behavior itself from binding.BehaviorName.
type Dispatcher interface {
	Invoke(ctx context.Context, target Target, binding behavior.Binding, event behavior.Event) (int, error)
}

// LocalDispatcher resolves the behavior from a registry and invokes its
// handle directly, ignoring target. It is used for central-locality
// behaviors and for event-source-locality behaviors whose originating
// event was already local.
type LocalDispatcher struct {
	Registry *behavior.Registry
}

// Invoke implements Dispatcher.
func (d LocalDispatcher) Invoke(ctx context.Context, _ Target, binding behavior.Binding, event behavior.Event) (int, error) {
	b, err := d.Registry.ResolveByName(binding.BehaviorName)
	if err != nil {
		return 0, err
	}
	if event.Pressed {
		return b.Handle.Pressed(ctx, binding, event)
	}
	return b.Handle.Released(ctx, binding, event)
}
