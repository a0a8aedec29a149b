package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clavis/keymapd/pkg/behavior/builtin"
	"github.com/clavis/keymapd/pkg/config"
	"github.com/clavis/keymapd/pkg/engine"
	"github.com/clavis/keymapd/pkg/layout"
	"github.com/clavis/keymapd/pkg/split"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Dump the running engine's live state as JSON",
}

var showKeymapCmd = &cobra.Command{
	Use:   "keymap",
	Short: "Dump the current keymap (layers and bindings) as JSON",
	Long: `Boots the engine against the configured persistence store (exactly
as "serve" would) and prints the resulting keymap, without starting the
HTTP API or scan pipeline consumer-visibly. Reflects any edits already
saved to the store.`,
	RunE: runShowKeymap,
}

var showLayoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Dump the physical layouts and the currently selected one as JSON",
	RunE:  runShowLayout,
}

func init() {
	showCmd.AddCommand(showKeymapCmd)
	showCmd.AddCommand(showLayoutCmd)
}

func bootEngine(configPath string) (*engine.Engine, *config.KeymapConfig, error) {
	cfg, keymapCfg, err := loadConfigPair(configPath)
	if err != nil {
		return nil, nil, err
	}

	store, err := config.CreateStore(cfg.Persistence)
	if err != nil {
		return nil, nil, err
	}

	idPolicy, err := config.CreateLocalIDPolicy(cfg.BehaviorIDs, store)
	if err != nil {
		return nil, nil, err
	}

	eng, err := engine.New(engine.Options{
		Config:      cfg,
		KeymapCfg:   keymapCfg,
		Store:       store,
		Behaviors:   builtin.Behaviors(),
		IDPolicy:    idPolicy,
		Split:       split.LocalDispatcher{},
		ScanSources: map[string]layout.ScanSource{},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build engine: %w", err)
	}

	if err := eng.Start(context.Background()); err != nil {
		return nil, nil, fmt.Errorf("failed to start engine: %w", err)
	}
	return eng, keymapCfg, nil
}

func runShowKeymap(cmd *cobra.Command, args []string) error {
	eng, _, err := bootEngine(GetConfigFile())
	if err != nil {
		return err
	}
	defer eng.Stop()

	out, err := json.MarshalIndent(eng.GetKeymap(), "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

type layoutSummary struct {
	Name     string `json:"name"`
	KeyCount int    `json:"key_count"`
	Active   bool   `json:"active"`
}

func runShowLayout(cmd *cobra.Command, args []string) error {
	eng, keymapCfg, err := bootEngine(GetConfigFile())
	if err != nil {
		return err
	}
	defer eng.Stop()

	selected := eng.Layouts.GetSelected()
	layouts := make([]layoutSummary, len(keymapCfg.PhysicalLayouts))
	for i, lc := range keymapCfg.PhysicalLayouts {
		layouts[i] = layoutSummary{Name: lc.Name, KeyCount: len(lc.Transform), Active: i == selected}
	}

	out, err := json.MarshalIndent(layouts, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}
