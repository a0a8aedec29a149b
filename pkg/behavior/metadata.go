package behavior

// StandardDomain is one of the fixed parameter domains a standard-form
// ParameterMetadata can declare for param1 or param2.
type StandardDomain int

const (
	// DomainNull requires the parameter to be exactly 0.
	DomainNull StandardDomain = iota
	// DomainHIDUsage validates a packed HID usage (page in the upper 16
	// bits, usage ID in the lower 16 bits) against fixed per-page bounds.
	DomainHIDUsage
	// DomainLayerIndex requires the parameter to be a valid layer index.
	DomainLayerIndex
	// DomainHSV accepts any value; reserved for behaviors that encode an
	// HSV color triple into the parameter and have no practical bound.
	DomainHSV
)

func (d StandardDomain) String() string {
	switch d {
	case DomainNull:
		return "null"
	case DomainHIDUsage:
		return "hid-usage"
	case DomainLayerIndex:
		return "layer-index"
	case DomainHSV:
		return "hsv"
	default:
		return "unknown"
	}
}

// MetadataTag distinguishes the two shapes a ParameterMetadata can take.
type MetadataTag int

const (
	// TagStandard means param1/param2 are each validated independently
	// against a declared StandardDomain.
	TagStandard MetadataTag = iota
	// TagCustom means param1/param2 are validated against one or more
	// CustomSets; the binding is accepted if any single set matches both
	// parameters.
	TagCustom
)

// ParamEntryKind distinguishes the three ways a CustomSet position can
// accept a value.
type ParamEntryKind int

const (
	// EntryValue matches one literal value.
	EntryValue ParamEntryKind = iota
	// EntryRange matches an inclusive [Min, Max] range.
	EntryRange
	// EntryDomain delegates to a StandardDomain validator.
	EntryDomain
)

// ParamEntry is one acceptable-value entry for a single parameter
// position within a CustomSet.
type ParamEntry struct {
	Kind     ParamEntryKind
	Value    uint32         // used when Kind == EntryValue
	Min, Max uint32         // used when Kind == EntryRange, inclusive
	Domain   StandardDomain // used when Kind == EntryDomain
}

// CustomSet enumerates the acceptable entries for param1 and param2 for
// one alternative binding shape. A position with no entries must be
// zero; a position with entries must match at least one of them.
type CustomSet struct {
	Param1 []ParamEntry
	Param2 []ParamEntry
}

// ParameterMetadata is the tagged union a Behavior declares to describe
// what param1/param2 values it accepts.
type ParameterMetadata struct {
	Tag MetadataTag

	// Used when Tag == TagStandard.
	StandardParam1 StandardDomain
	StandardParam2 StandardDomain

	// Used when Tag == TagCustom.
	CustomSets []CustomSet
}

// Standard builds a TagStandard ParameterMetadata.
func Standard(param1, param2 StandardDomain) ParameterMetadata {
	return ParameterMetadata{Tag: TagStandard, StandardParam1: param1, StandardParam2: param2}
}

// Custom builds a TagCustom ParameterMetadata from one or more sets.
func Custom(sets ...CustomSet) ParameterMetadata {
	return ParameterMetadata{Tag: TagCustom, CustomSets: sets}
}
