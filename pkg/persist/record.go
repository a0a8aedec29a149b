package persist

import (
	"encoding/binary"

	"github.com/clavis/keymapd/pkg/keyerr"
)

// BindingRecord is the persisted form of one keymap cell: a behavior
// local ID plus its two opaque parameters.
type BindingRecord struct {
	BehaviorLocalID uint16
	Param1          uint32
	Param2          uint32
}

// Encode serializes r with trailing-zero compression: the param2 field is
// dropped entirely when it is zero, and param1 is additionally dropped
// when it is also zero. The local ID always occupies the first 4 bytes
// (2 bytes of value, 2 bytes of alignment padding), matching the record
// layout accepted lengths of 4, 8, or 12 bytes.
func (r BindingRecord) Encode() []byte {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint16(buf[0:2], r.BehaviorLocalID)
	binary.LittleEndian.PutUint32(buf[4:8], r.Param1)
	binary.LittleEndian.PutUint32(buf[8:12], r.Param2)

	if r.Param2 != 0 {
		return buf[:12]
	}
	if r.Param1 != 0 {
		return buf[:8]
	}
	return buf[:4]
}

// DecodeBindingRecord parses a persisted record. Accepted lengths are 4,
// 8, and 12 bytes; any other length is a persistence-layer error.
func DecodeBindingRecord(data []byte) (BindingRecord, error) {
	switch len(data) {
	case 4, 8, 12:
	default:
		return BindingRecord{}, keyerr.New(keyerr.PersistenceIO, "binding record has invalid length")
	}

	r := BindingRecord{
		BehaviorLocalID: binary.LittleEndian.Uint16(data[0:2]),
	}
	if len(data) >= 8 {
		r.Param1 = binary.LittleEndian.Uint32(data[4:8])
	}
	if len(data) >= 12 {
		r.Param2 = binary.LittleEndian.Uint32(data[8:12])
	}
	return r, nil
}
