// Package validate checks a behavior binding's parameters against the
// behavior's declared ParameterMetadata, the binding validator described
// in the keymap engine's component design.
package validate

import (
	"github.com/clavis/keymapd/pkg/behavior"
	"github.com/clavis/keymapd/pkg/keyerr"
)

// Binding checks b.Param1/b.Param2 against meta and the number of layers
// configured (needed to bound DomainLayerIndex). It returns nil if the
// binding is acceptable, or an *keyerr.Error with code InvalidParameters
// otherwise.
func Binding(meta behavior.ParameterMetadata, b behavior.Binding, layerCount int) error {
	switch meta.Tag {
	case behavior.TagStandard:
		if err := standardParam(meta.StandardParam1, b.Param1, layerCount); err != nil {
			return err
		}
		return standardParam(meta.StandardParam2, b.Param2, layerCount)
	case behavior.TagCustom:
		return customParams(meta.CustomSets, b.Param1, b.Param2, layerCount)
	default:
		return keyerr.New(keyerr.InvalidParameters, "unknown parameter metadata tag")
	}
}

// standardParam validates one parameter against a single standard
// domain.
func standardParam(domain behavior.StandardDomain, value uint32, layerCount int) error {
	switch domain {
	case behavior.DomainNull:
		if value != 0 {
			return keyerr.New(keyerr.InvalidParameters, "domain null requires a zero value")
		}
		return nil
	case behavior.DomainHIDUsage:
		return hidUsage(value)
	case behavior.DomainLayerIndex:
		if int(value) >= layerCount {
			return keyerr.New(keyerr.InvalidParameters, "layer index out of range")
		}
		return nil
	case behavior.DomainHSV:
		return nil
	default:
		return keyerr.New(keyerr.InvalidParameters, "unknown standard domain")
	}
}

// customParams accepts the binding iff at least one set matches both
// positions. Within a set, a position with entries must match one of
// them; a position with no entries must be zero.
func customParams(sets []behavior.CustomSet, param1, param2 uint32, layerCount int) error {
	for _, set := range sets {
		if matchPosition(set.Param1, param1, layerCount) && matchPosition(set.Param2, param2, layerCount) {
			return nil
		}
	}
	return keyerr.New(keyerr.InvalidParameters, "no custom parameter set matched")
}

// matchPosition reports whether value satisfies the entries declared for
// one parameter position within a custom set.
func matchPosition(entries []behavior.ParamEntry, value uint32, layerCount int) bool {
	if len(entries) == 0 {
		return value == 0
	}
	for _, e := range entries {
		switch e.Kind {
		case behavior.EntryValue:
			if value == e.Value {
				return true
			}
		case behavior.EntryRange:
			if value >= e.Min && value <= e.Max {
				return true
			}
		case behavior.EntryDomain:
			if standardParam(e.Domain, value, layerCount) == nil {
				return true
			}
		}
	}
	return false
}
