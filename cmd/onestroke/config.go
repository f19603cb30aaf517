package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/onestroke/internal/config"
	"github.com/vovakirdan/onestroke/internal/games/onestroke"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show game configuration",
	Long: `Show the built-in defaults or the configuration that would be used.

Config search order:
  --config path
  ~/.onestroke/configs/onestroke.yaml
  ./configs/onestroke.yaml
  built-in defaults`,
}

var configDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the built-in default config YAML",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		os.Stdout.Write(config.GetDefaultYAML())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config after search and presets",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		cfg, err := onestroke.LoadConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
	},
}

func init() {
	configCmd.AddCommand(configDefaultsCmd)
	configCmd.AddCommand(configShowCmd)
}
