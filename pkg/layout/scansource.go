package layout

import "context"

// ScanCallback is invoked by a ScanSource on every raw matrix event.
type ScanCallback func(row, col uint32, pressed bool)

// ScanSource is the lifecycle a physical layout's matrix scanner exposes.
// The real implementation is an external collaborator (device-tree-bound
// GPIO/I2C matrix driver); this engine only needs its enable/disable
// surface and the ability to install a callback.
type ScanSource interface {
	// SetCallback installs the function called on every raw scan event.
	// It may be called again to replace a previously installed callback.
	SetCallback(cb ScanCallback)

	// Enable starts delivering events to the installed callback.
	Enable(ctx context.Context) error

	// Disable stops delivering events. Idempotent.
	Disable(ctx context.Context) error
}

// PowerSuspendable is implemented by scan sources that support a
// power-management suspend request. Not every source does; the layout
// manager treats its absence as "nothing to do", not an error.
type PowerSuspendable interface {
	Suspend(ctx context.Context) error
}

// PowerResumable is the resume-side counterpart of PowerSuspendable.
type PowerResumable interface {
	Resume(ctx context.Context) error
}

// KeyPhysicalAttrs is descriptive key geometry used only by inspection
// tooling; it is never consulted by the transform or dispatch algorithms.
type KeyPhysicalAttrs struct {
	Width, Height float64
	X, Y          int
	RX, RY        float64
	R             float64
}

// PhysicalLayout is one selectable layout: a display name, its matrix
// transform, optional key geometry, and the scan source it owns while
// active.
type PhysicalLayout struct {
	Name       string
	Transform  *MatrixTransform
	Keys       []KeyPhysicalAttrs
	ScanSource ScanSource // nil if this layout has no bound scan device
}
