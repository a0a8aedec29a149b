package rpc

import (
	"context"

	"github.com/clavis/keymapd/internal/logger"
	"github.com/clavis/keymapd/pkg/behavior"
	"github.com/clavis/keymapd/pkg/behavior/validate"
	"github.com/clavis/keymapd/pkg/keymap"
	"github.com/clavis/keymapd/pkg/persist"
)

// GetKeymap renders km's full binding table in wire form. Each
// binding's behavior ID is re-resolved from reg rather than trusted
// from the in-memory cell, so the response always reflects the
// currently assigned local ID.
func GetKeymap(km *keymap.Keymap, reg *behavior.Registry) Keymap {
	out := Keymap{HighestActive: km.LayerState().HighestActive()}

	for layer := 0; layer < km.LayerCount(); layer++ {
		name, _ := km.LayerName(layer)
		wireLayer := Layer{Name: name, Bindings: make([]BehaviorBinding, km.KeyCount())}

		for pos := 0; pos < km.KeyCount(); pos++ {
			binding, err := km.Binding(layer, pos)
			if err != nil {
				continue
			}
			id := binding.BehaviorLocalID
			if b, err := reg.ResolveByName(binding.BehaviorName); err == nil {
				id = b.LocalID
			}
			wireLayer.Bindings[pos] = BehaviorBinding{BehaviorID: uint32(id), Param1: binding.Param1, Param2: binding.Param2}
		}
		out.Layers = append(out.Layers, wireLayer)
	}
	return out
}

// SetLayerBinding edits one keymap cell: resolve the behavior, validate
// the parameters against its declared metadata, then mutate the cell
// and mark it dirty.
func SetLayerBinding(km *keymap.Keymap, reg *behavior.Registry, dirty *persist.DirtyBitmap, req SetLayerBindingRequest) SetLayerBindingResponse {
	b, err := reg.ResolveByLocalID(uint16(req.Binding.BehaviorID))
	if err != nil {
		return ResponseInvalidBehavior
	}

	binding := behavior.Binding{
		BehaviorName:    b.Name,
		BehaviorLocalID: b.LocalID,
		Param1:          req.Binding.Param1,
		Param2:          req.Binding.Param2,
	}
	if err := validate.Binding(b.Metadata, binding, km.LayerCount()); err != nil {
		return ResponseInvalidParameters
	}

	if err := km.SetBinding(int(req.Layer), int(req.KeyPosition), binding); err != nil {
		return ResponseInvalidLocation
	}

	dirty.Set(int(req.Layer), int(req.KeyPosition))
	return ResponseSuccess
}

// SaveChanges writes every dirty cell with trailing-zero compression
// and clears the dirty bitmap layer by layer. The first persistence
// error aborts the walk; cells already written remain committed.
func SaveChanges(ctx context.Context, km *keymap.Keymap, dirty *persist.DirtyBitmap, store persist.Store) error {
	for layer := 0; layer < km.LayerCount(); layer++ {
		positions := dirty.DirtyPositions(layer)
		if len(positions) == 0 {
			continue
		}

		for _, pos := range positions {
			binding, err := km.Binding(layer, pos)
			if err != nil {
				continue
			}
			record := persist.BindingRecord{
				BehaviorLocalID: binding.BehaviorLocalID,
				Param1:          binding.Param1,
				Param2:          binding.Param2,
			}
			if err := store.Put(ctx, persist.KeymapCellKey(layer, pos), record.Encode()); err != nil {
				return err
			}
		}
		dirty.ClearLayer(layer)
	}
	return nil
}

// DiscardChanges reloads the persisted keymap subtree, overwriting each
// cell that has a persisted record with its stored value. Cells with no
// persisted record are left untouched (the open question of §9: an
// edit-then-discard cycle on a never-persisted cell keeps the edited
// in-memory value).
func DiscardChanges(ctx context.Context, km *keymap.Keymap, reg *behavior.Registry, store persist.Store) error {
	return store.IteratePrefix(ctx, persist.KeymapSubtreePrefix(), func(key string, value []byte) error {
		layer, position, ok := persist.ParseKeymapCellKey(key)
		if !ok {
			return nil
		}

		record, err := persist.DecodeBindingRecord(value)
		if err != nil {
			logger.Error("discard_changes: malformed binding record", logger.Layer(layer), logger.Position(position), logger.Err(err))
			return nil
		}

		b, err := reg.ResolveByLocalID(record.BehaviorLocalID)
		if err != nil {
			logger.Error("discard_changes: unknown persisted local id", logger.Layer(layer), logger.Position(position), logger.LocalID(record.BehaviorLocalID))
			return nil
		}

		binding := behavior.Binding{
			BehaviorName:    b.Name,
			BehaviorLocalID: b.LocalID,
			Param1:          record.Param1,
			Param2:          record.Param2,
		}
		if err := km.SetBinding(layer, position, binding); err != nil {
			logger.Error("discard_changes: cell out of range", logger.Layer(layer), logger.Position(position), logger.Err(err))
		}
		return nil
	})
}
