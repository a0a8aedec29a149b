// Package builtin provides the two trivial, stateless behaviors the
// dispatch cascade itself depends on structurally: "none" (always
// consumes) and "trans" (always falls through to the next candidate
// layer). Every other behavior (tap/hold, macros, HID key presses, and
// so on) is a real device-specific implementation external to this
// engine (spec.md's non-goals) and must be supplied by the embedder via
// engine.Options.Behaviors; these two exist only so a bare keymapd
// instance has something to dispatch to out of the box.
package builtin

import (
	"context"

	"github.com/clavis/keymapd/pkg/behavior"
)

// noneHandle always reports ResponseOpaque, matching Classify's
// convention for "consumed, stop the cascade".
type noneHandle struct{}

func (noneHandle) Pressed(context.Context, behavior.Binding, behavior.Event) (int, error) {
	return int(behavior.ResponseOpaque), nil
}

func (noneHandle) Released(context.Context, behavior.Binding, behavior.Event) (int, error) {
	return int(behavior.ResponseOpaque), nil
}

func (noneHandle) ConvertCentralStateDependentParams(_ context.Context, b behavior.Binding) (behavior.Binding, error) {
	return b, nil
}

// transparentHandle always reports ResponseTransparent, letting the
// dispatch cascade continue to the next active layer down.
type transparentHandle struct{}

func (transparentHandle) Pressed(context.Context, behavior.Binding, behavior.Event) (int, error) {
	return int(behavior.ResponseTransparent), nil
}

func (transparentHandle) Released(context.Context, behavior.Binding, behavior.Event) (int, error) {
	return int(behavior.ResponseTransparent), nil
}

func (transparentHandle) ConvertCentralStateDependentParams(_ context.Context, b behavior.Binding) (behavior.Binding, error) {
	return b, nil
}

// Behaviors returns the "none" and "trans" behaviors, both
// LocalityCentral and taking no parameters.
func Behaviors() []*behavior.Behavior {
	return []*behavior.Behavior{
		{Name: "none", Locality: behavior.LocalityCentral, Metadata: behavior.Standard(behavior.DomainNull, behavior.DomainNull), Handle: noneHandle{}},
		{Name: "trans", Locality: behavior.LocalityCentral, Metadata: behavior.Standard(behavior.DomainNull, behavior.DomainNull), Handle: transparentHandle{}},
	}
}
