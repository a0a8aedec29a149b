package commands

import (
	"github.com/spf13/cobra"

	"github.com/clavis/keymapd/pkg/config"
)

var validateConfigCmd = &cobra.Command{
	Use:   "validate-config",
	Short: "Validate the server config and keymap config without starting the engine",
	Long: `Loads the server configuration and, via its keymap_file setting, the
declarative keymap document, and runs both through struct-tag validation.
Does not open the persistence store or assign behavior local IDs, so it
is safe to run against a config pointing at a store already in use by a
running instance.

Examples:
  keymapd validate-config
  keymapd validate-config --config /etc/keymapd/config.yaml`,
	RunE: runValidateConfig,
}

func runValidateConfig(cmd *cobra.Command, args []string) error {
	configPath := GetConfigFile()

	cfg, keymapCfg, err := loadConfigPair(configPath)
	if err != nil {
		return err
	}

	displayPath := configPath
	if displayPath == "" {
		displayPath = config.DefaultConfigPath()
	}

	cmd.Printf("Server config:    %s\n", displayPath)
	cmd.Printf("Keymap config:    %s\n", cfg.KeymapFile)
	cmd.Println("Validation: OK")

	cmd.Println()
	cmd.Println("Configuration summary:")
	cmd.Printf("  Persistence backend: %s\n", cfg.Persistence.Backend)
	cmd.Printf("  Behavior ID policy:  %s\n", cfg.BehaviorIDs.Policy)
	cmd.Printf("  API:                 enabled=%t port=%d\n", cfg.API.Enabled, cfg.API.Port)
	cmd.Printf("  Metrics:             enabled=%t port=%d\n", cfg.Metrics.Enabled, cfg.Metrics.Port)
	cmd.Printf("  Layers:              %d\n", len(keymapCfg.Layers))
	cmd.Printf("  Physical layouts:    %d\n", len(keymapCfg.PhysicalLayouts))
	if keymapCfg.ChosenLayout != "" {
		cmd.Printf("  Chosen layout:       %s\n", keymapCfg.ChosenLayout)
	}

	return nil
}
