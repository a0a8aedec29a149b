package behavior

import (
	"context"
	"fmt"

	"github.com/clavis/keymapd/internal/logger"
	"github.com/clavis/keymapd/pkg/keyerr"
	"github.com/clavis/keymapd/pkg/persist"
)

// LocalIDPolicy assigns stable local IDs to every registered behavior.
// Exactly one policy is selected at configuration time. CRC16Policy
// writes nothing to the store; MonotonicPolicy writes its id->name
// entries under persist.BehaviorLocalIDPrefix().
type LocalIDPolicy interface {
	AssignLocalIDs(ctx context.Context, reg *Registry) error
}

// CRC16Policy assigns id = CRC16(name) to every behavior. It is
// deterministic across rebuilds (no persisted state needed) but a name
// change or an unlucky hash collision changes or breaks the mapping.
type CRC16Policy struct{}

// AssignLocalIDs implements LocalIDPolicy.
func (CRC16Policy) AssignLocalIDs(_ context.Context, reg *Registry) error {
	assigned := make(map[uint16]string, len(reg.names()))
	for _, name := range reg.names() {
		id := crc16ANSI(name)
		if other, collide := assigned[id]; collide && other != name {
			return keyerr.New(keyerr.Unsupported, fmt.Sprintf("crc16 local id collision between %q and %q", other, name))
		}
		assigned[id] = name
		if err := reg.assignLocalID(name, id); err != nil {
			return err
		}
	}
	return nil
}

// MonotonicPolicy assigns each behavior the next integer above the
// current maximum, persisting the id->name mapping so it survives
// reboots even across link-order changes. Behaviors whose persisted
// mapping no longer matches a registered name are logged and left
// unmapped; their ID is never reused within this session (see DESIGN.md,
// "dead-ID retention").
type MonotonicPolicy struct {
	Store persist.Store
}

// AssignLocalIDs implements LocalIDPolicy.
func (p MonotonicPolicy) AssignLocalIDs(ctx context.Context, reg *Registry) error {
	var maxID uint16

	err := p.Store.IteratePrefix(ctx, persist.BehaviorLocalIDPrefix(), func(key string, value []byte) error {
		id, ok := persist.ParseBehaviorLocalIDKey(key)
		if !ok {
			return nil
		}
		if id > maxID {
			maxID = id
		}

		name := string(value)
		if !reg.nameExists(name) {
			logger.Warn("persisted behavior local id has no matching behavior in image",
				logger.LocalID(id), logger.Behavior(name))
			return nil
		}
		return reg.assignLocalID(name, id)
	})
	if err != nil {
		return keyerr.Wrap(keyerr.PersistenceIO, "failed to load persisted local ids", err)
	}

	for _, name := range reg.names() {
		if reg.hasLocalID(name) {
			continue
		}
		maxID++
		if err := reg.assignLocalID(name, maxID); err != nil {
			return err
		}
		if err := p.Store.Put(ctx, persist.BehaviorLocalIDKey(maxID), []byte(name)); err != nil {
			return keyerr.Wrap(keyerr.PersistenceIO, "failed to persist behavior local id", err)
		}
	}
	return nil
}

// crc16ANSI computes the CRC-16/ARC ("ANSI") checksum: polynomial 0xA001
// (reflected 0x8005), initial value 0, no final XOR. Matches the
// zero-config hash used by the firmware's deterministic local-ID policy.
func crc16ANSI(s string) uint16 {
	var crc uint16
	for i := 0; i < len(s); i++ {
		crc ^= uint16(s[i])
		for bit := 0; bit < 8; bit++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ 0xA001
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}
