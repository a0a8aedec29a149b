// Package behavior implements the behavior registry: the table mapping
// stable names and 16-bit local identifiers to dispatchable behavior
// endpoints.
package behavior

import "context"

// Locality identifies where a behavior must execute on a split keyboard.
type Locality int

const (
	// LocalityCentral behaviors always run on the central half.
	LocalityCentral Locality = iota
	// LocalityEventSource behaviors run on whichever half originated the
	// triggering event.
	LocalityEventSource
	// LocalityGlobal behaviors run on the central half and are also
	// broadcast to every peripheral.
	LocalityGlobal
)

func (l Locality) String() string {
	switch l {
	case LocalityCentral:
		return "central"
	case LocalityEventSource:
		return "event-source"
	case LocalityGlobal:
		return "global"
	default:
		return "unknown"
	}
}

// Response is the outcome of invoking a behavior on a press, release, or
// sensor event.
type Response int

const (
	// ResponseError means the behavior failed; the cascade stops and the
	// error surfaces to the caller.
	ResponseError Response = iota - 1
	// ResponseOpaque means the event was consumed; the cascade stops.
	ResponseOpaque
	// ResponseTransparent means the event should continue cascading to
	// the next lower candidate layer.
	ResponseTransparent
)

// Classify maps a raw integer return code to a Response, matching the
// firmware convention: negative is error, zero is opaque, positive is
// transparent.
func Classify(code int) Response {
	switch {
	case code < 0:
		return ResponseError
	case code == 0:
		return ResponseOpaque
	default:
		return ResponseTransparent
	}
}

// Binding is a (behavior, param1, param2) triple. BehaviorName resolves
// the behavior at dispatch time; LocalID is the stable identifier used
// for persistence and the wire schema.
type Binding struct {
	BehaviorName    string
	BehaviorLocalID uint16
	Param1          uint32
	Param2          uint32
}

// Event carries the data offered to a behavior on dispatch.
type Event struct {
	Source    int // local == -1; otherwise a peripheral index
	Position  int
	Pressed   bool
	Timestamp int64
}

// IsLocal reports whether the event originated on this (central) half.
func (e Event) IsLocal() bool { return e.Source < 0 }

// Handle is the runtime-resolved endpoint a Behavior dispatches to. Real
// tap/hold/macro/etc. implementations live outside this engine; Handle is
// the seam they plug into.
type Handle interface {
	// Pressed handles a press event. The return value follows the
	// Classify convention.
	Pressed(ctx context.Context, binding Binding, event Event) (int, error)
	// Released handles a release event.
	Released(ctx context.Context, binding Binding, event Event) (int, error)
	// ConvertCentralStateDependentParams rewrites binding's parameters
	// that are declared relative to current central state into their
	// absolute form before dispatch. Implementations that have no such
	// parameters return binding unchanged.
	ConvertCentralStateDependentParams(ctx context.Context, binding Binding) (Binding, error)
}

// ReadyChecker is implemented by Handles backed by a device that can
// report whether it is initialized. Behaviors whose Handle does not
// implement it are always considered ready.
type ReadyChecker interface {
	Ready() bool
}

// AcceptData and Process are the sensor-dispatch analogues of
// Pressed/Released.
type AcceptData interface {
	AcceptData(ctx context.Context, binding Binding, raw []byte) error
}

// Process handles a sensor channel event once AcceptData has ingested raw
// sensor data. mode distinguishes a live trigger from a discard pass that
// lets stateful behaviors update internal accumulators without side
// effect.
type Process interface {
	Process(ctx context.Context, binding Binding, mode ProcessMode) (int, error)
}

// ProcessMode tells a sensor behavior whether this call should produce a
// visible effect.
type ProcessMode int

const (
	// ModeTrigger means the layer is live-active and no higher layer has
	// already emitted an opaque response.
	ModeTrigger ProcessMode = iota
	// ModeDiscard means the call should update internal state only.
	ModeDiscard
)

// Behavior is a named, registered dispatch endpoint.
type Behavior struct {
	Name     string
	LocalID  uint16
	Locality Locality
	Metadata ParameterMetadata
	Handle   Handle
}

// ready reports whether b's underlying Handle is ready to dispatch.
func (b *Behavior) ready() bool {
	if rc, ok := b.Handle.(ReadyChecker); ok {
		return rc.Ready()
	}
	return true
}
