package config

import (
	"fmt"

	"github.com/clavis/keymapd/pkg/behavior"
	"github.com/clavis/keymapd/pkg/persist"
	"github.com/clavis/keymapd/pkg/persist/badgerstore"
	"github.com/clavis/keymapd/pkg/persist/memstore"
)

// CreateStore builds the persist.Store backend named by
// cfg.Persistence.Backend.
func CreateStore(cfg PersistenceConfig) (persist.Store, error) {
	switch cfg.Backend {
	case "memory":
		return memstore.New(), nil
	case "badger":
		store, err := badgerstore.Open(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown persistence backend: %q", cfg.Backend)
	}
}

// CreateLocalIDPolicy builds the behavior.LocalIDPolicy named by
// cfg.BehaviorIDs.Policy. store is only consulted for "monotonic".
func CreateLocalIDPolicy(cfg BehaviorIDConfig, store persist.Store) (behavior.LocalIDPolicy, error) {
	switch cfg.Policy {
	case "crc16":
		return behavior.CRC16Policy{}, nil
	case "monotonic":
		return behavior.MonotonicPolicy{Store: store}, nil
	default:
		return nil, fmt.Errorf("unknown behavior local-id policy: %q", cfg.Policy)
	}
}
