package splitrpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// jsonCodec implements encoding.Codec over encoding/json. It registers
// itself under the name "proto" so that gRPC's default content type
// (which always resolves to the codec named "proto") picks it up without
// requiring callers to opt in per-call. This lets split.Dispatcher's
// peripheral messages be plain Go structs instead of generated
// proto.Message types.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string { return "proto" }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
