// Package rpc defines the wire-facing message schema of §6 and the
// handler functions that implement the management/inspection
// operations (GetKeymap, SetLayerBinding, SaveChanges, DiscardChanges)
// ported from studio/keymap_subsystem.c. The actual BLE/physical RPC
// framing is out of scope; pkg/rpc/httpapi supplies a concrete JSON
// transport for these handlers.
package rpc

// BehaviorBinding is the wire form of a keymap cell. BehaviorID is the
// behavior's local ID, not its name.
type BehaviorBinding struct {
	BehaviorID uint32 `json:"behavior_id"`
	Param1     uint32 `json:"param1"`
	Param2     uint32 `json:"param2"`
}

// Layer is the wire form of one keymap overlay.
type Layer struct {
	Name     string            `json:"name"`
	Bindings []BehaviorBinding `json:"bindings"`
}

// Keymap is the wire form of the full keymap, returned by GetKeymap.
type Keymap struct {
	Layers        []Layer `json:"layers"`
	HighestActive int     `json:"highest_active_layer"`
}

// SetLayerBindingRequest edits one keymap cell.
type SetLayerBindingRequest struct {
	Layer       uint32          `json:"layer"`
	KeyPosition uint32          `json:"key_position"`
	Binding     BehaviorBinding `json:"binding"`
}

// SetLayerBindingResponse reports the outcome of SetLayerBinding.
type SetLayerBindingResponse int

const (
	ResponseSuccess SetLayerBindingResponse = iota
	ResponseInvalidBehavior
	ResponseInvalidParameters
	ResponseInvalidLocation
)

func (r SetLayerBindingResponse) String() string {
	switch r {
	case ResponseSuccess:
		return "SUCCESS"
	case ResponseInvalidBehavior:
		return "INVALID_BEHAVIOR"
	case ResponseInvalidParameters:
		return "INVALID_PARAMETERS"
	case ResponseInvalidLocation:
		return "INVALID_LOCATION"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON renders the response as its string name, matching the
// wire schema's enum-as-string convention.
func (r SetLayerBindingResponse) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}
