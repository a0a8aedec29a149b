package persist

import (
	"strconv"
	"strings"
)

const (
	behaviorLocalIDPrefix = "behavior/local_id/"
	keymapLayerPrefix     = "keymap/l/"
	selectedLayoutKey     = "physical_layouts/selected"
)

// BehaviorLocalIDKey returns the key under which a behavior name is
// persisted for a given local ID, used by the monotonic local-ID policy.
func BehaviorLocalIDKey(id uint16) string {
	return behaviorLocalIDPrefix + strconv.FormatUint(uint64(id), 10)
}

// BehaviorLocalIDPrefix returns the prefix covering every persisted
// behavior/local_id mapping.
func BehaviorLocalIDPrefix() string {
	return behaviorLocalIDPrefix
}

// ParseBehaviorLocalIDKey extracts the local ID encoded in key, if key is
// a well-formed behavior/local_id/<id> key.
func ParseBehaviorLocalIDKey(key string) (id uint16, ok bool) {
	suffix, found := strings.CutPrefix(key, behaviorLocalIDPrefix)
	if !found {
		return 0, false
	}
	n, err := strconv.ParseUint(suffix, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}

// KeymapCellKey returns the persistence key for one (layer, position) cell.
func KeymapCellKey(layer, position int) string {
	return keymapLayerPrefix + strconv.Itoa(layer) + "/" + strconv.Itoa(position)
}

// KeymapLayerPrefix returns the key prefix covering every persisted cell
// in a single layer.
func KeymapLayerPrefix(layer int) string {
	return keymapLayerPrefix + strconv.Itoa(layer) + "/"
}

// KeymapSubtreePrefix returns the prefix covering every persisted
// keymap cell across all layers, used by discard_changes to reload the
// whole subtree.
func KeymapSubtreePrefix() string {
	return keymapLayerPrefix
}

// ParseKeymapCellKey extracts the layer and position encoded in key, if
// key is a well-formed keymap/l/<layer>/<position> key.
func ParseKeymapCellKey(key string) (layer, position int, ok bool) {
	suffix, found := strings.CutPrefix(key, keymapLayerPrefix)
	if !found {
		return 0, 0, false
	}
	parts := strings.SplitN(suffix, "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	l, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	p, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return l, p, true
}

// SelectedLayoutKey returns the key holding the persisted physical layout
// selection.
func SelectedLayoutKey() string {
	return selectedLayoutKey
}
