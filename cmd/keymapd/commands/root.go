// Package commands implements the keymapd CLI: serve runs the engine,
// show inspects its live or on-disk state, validate-config checks a
// configuration pair without starting anything.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "keymapd",
	Short: "keymapd - layered keymap engine for mechanical keyboard firmware",
	Long: `keymapd dispatches key and sensor events through a layered keymap
against a registry of behaviors, tracks physical layout and scan state,
and persists edits made at runtime.

Use "keymapd [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and parses flags.
// Called once by main.main.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// GetConfigFile returns the config file path from the global --config flag.
func GetConfigFile() string {
	return cfgFile
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "server config file (default: $XDG_CONFIG_HOME/keymapd/config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(validateConfigCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the keymapd version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Printf("keymapd %s (commit %s, built %s)\n", Version, Commit, Date)
		return nil
	},
}
