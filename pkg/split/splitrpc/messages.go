// Package splitrpc is the gRPC transport behind split.PeripheralDispatcher:
// the channel a central half uses to invoke a behavior on a peripheral,
// or to broadcast a global-locality behavior to every peripheral.
//
// The on-device firmware frames this channel over BLE/serial with a
// nanopb-coded message (see original_source/app/src/studio for the
// analogous management-RPC encoder); here it is modeled as a real gRPC
// service so the whole central -> peripheral data path is exercised
// end to end. Message encoding uses a small JSON codec registered in
// place of gRPC's default protobuf codec (see codec.go) rather than
// hand-authored protoc output — see DESIGN.md for why.
package splitrpc

// InvokeRequest asks a peripheral to invoke one behavior binding.
type InvokeRequest struct {
	BehaviorName    string
	BehaviorLocalID uint32
	Param1          uint32
	Param2          uint32
	Position        uint32
	Pressed         bool
	Timestamp       int64
}

// InvokeResponse carries the peripheral's classified return code, or an
// error description if the peripheral could not dispatch the binding.
type InvokeResponse struct {
	Code  int32
	Error string
}
