package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/clavis/keymapd/pkg/behavior"
	"github.com/clavis/keymapd/pkg/keymap"
	"github.com/clavis/keymapd/pkg/layout"
)

// KeymapConfig is the declarative configuration record of spec §6:
// layers, physical layouts, and the startup layout/transform/kscan
// choices. It is supplied as its own YAML document, independent of the
// ambient Config.
type KeymapConfig struct {
	Layers                []LayerConfig          `yaml:"layers" validate:"required,min=1,dive"`
	PhysicalLayouts       []PhysicalLayoutConfig `yaml:"physical_layouts" validate:"required,min=1,dive"`
	ChosenLayout          string                 `yaml:"chosen_layout"`
	ChosenMatrixTransform string                 `yaml:"chosen_matrix_transform"`
	ChosenKscan           string                 `yaml:"chosen_kscan"`
}

// LayerConfig is one entry of KeymapConfig.Layers.
type LayerConfig struct {
	Name           string          `yaml:"name"`
	Bindings       []BindingConfig `yaml:"bindings" validate:"required,dive"`
	SensorBindings []BindingConfig `yaml:"sensor_bindings"`
}

// BindingConfig is one (behavior_name, param1?, param2?) triple as it
// appears in the declarative keymap document.
type BindingConfig struct {
	Behavior string `yaml:"behavior" validate:"required"`
	Param1   uint32 `yaml:"param1"`
	Param2   uint32 `yaml:"param2"`
}

// PhysicalLayoutConfig is one entry of KeymapConfig.PhysicalLayouts.
type PhysicalLayoutConfig struct {
	Name      string                   `yaml:"name" validate:"required"`
	Transform []TransformEntryConfig   `yaml:"transform" validate:"required,min=1,dive"`
	Keys      []KeyPhysicalAttrsConfig `yaml:"keys"`
	Kscan     string                   `yaml:"kscan"`
}

// TransformEntryConfig is one (row, col) -> position mapping.
type TransformEntryConfig struct {
	Row      uint32 `yaml:"row"`
	Col      uint32 `yaml:"col"`
	Position int    `yaml:"position"`
}

// KeyPhysicalAttrsConfig is descriptive key geometry, carried through to
// layout.KeyPhysicalAttrs unchanged; consulted only by inspection
// tooling.
type KeyPhysicalAttrsConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	X      int     `yaml:"x"`
	Y      int     `yaml:"y"`
	RX     float64 `yaml:"rx"`
	RY     float64 `yaml:"ry"`
	R      float64 `yaml:"r"`
}

// LoadKeymap reads and validates a declarative keymap document from path.
func LoadKeymap(path string) (*KeymapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keymap config %q: %w", path, err)
	}

	var cfg KeymapConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse keymap config %q: %w", path, err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("keymap config validation failed: %w", err)
	}

	return &cfg, nil
}

// ToLayers converts cfg's layers into pkg/keymap.Layer values, resolving
// each binding's BehaviorLocalID against reg. reg must already have
// local IDs assigned (the registry-ID-assignment startup step runs
// before keymap reconciliation). An unresolved behavior name is not an
// error here: the binding is kept with LocalID 0 and name-only
// resolution, matching the runtime dispatch cascade's own "unresolved ->
// log and skip" handling rather than failing the whole load.
func ToLayers(cfg *KeymapConfig, reg *behavior.Registry) []keymap.Layer {
	layers := make([]keymap.Layer, len(cfg.Layers))
	for i, lc := range cfg.Layers {
		layers[i] = keymap.Layer{
			Name:           lc.Name,
			Bindings:       toBindings(lc.Bindings, reg),
			SensorBindings: toBindings(lc.SensorBindings, reg),
		}
	}
	return layers
}

func toBindings(bcs []BindingConfig, reg *behavior.Registry) []behavior.Binding {
	bindings := make([]behavior.Binding, len(bcs))
	for i, bc := range bcs {
		b := behavior.Binding{BehaviorName: bc.Behavior, Param1: bc.Param1, Param2: bc.Param2}
		if id, err := reg.LocalIDOf(bc.Behavior); err == nil {
			b.BehaviorLocalID = id
		}
		bindings[i] = b
	}
	return bindings
}

// ToPhysicalLayouts converts cfg's physical layouts into
// pkg/layout.PhysicalLayout values. scanSources maps a layout's "kscan"
// name to the already-constructed layout.ScanSource collaborator; a
// layout with no matching entry (or an empty Kscan) gets a nil
// ScanSource, matching a layout with no bound scan device.
func ToPhysicalLayouts(cfg *KeymapConfig, scanSources map[string]layout.ScanSource) []*layout.PhysicalLayout {
	layouts := make([]*layout.PhysicalLayout, len(cfg.PhysicalLayouts))
	for i, lc := range cfg.PhysicalLayouts {
		entries := make([]layout.TransformEntry, len(lc.Transform))
		for j, t := range lc.Transform {
			entries[j] = layout.TransformEntry{Row: t.Row, Col: t.Col, Position: t.Position}
		}

		keys := make([]layout.KeyPhysicalAttrs, len(lc.Keys))
		for j, k := range lc.Keys {
			keys[j] = layout.KeyPhysicalAttrs{Width: k.Width, Height: k.Height, X: k.X, Y: k.Y, RX: k.RX, RY: k.RY, R: k.R}
		}

		layouts[i] = &layout.PhysicalLayout{
			Name:       lc.Name,
			Transform:  layout.NewMatrixTransform(entries),
			Keys:       keys,
			ScanSource: scanSources[lc.Kscan],
		}
	}
	return layouts
}

// ChosenLayoutIndex resolves cfg.ChosenLayout (a layout name) to its
// index among cfg.PhysicalLayouts, or -1 if unset or not found, in which
// case layout.Manager.SelectInitial falls back to layout 0.
func ChosenLayoutIndex(cfg *KeymapConfig) int {
	if cfg.ChosenLayout == "" {
		return -1
	}
	for i, lc := range cfg.PhysicalLayouts {
		if lc.Name == cfg.ChosenLayout {
			return i
		}
	}
	return -1
}
