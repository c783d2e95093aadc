package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pathmaster/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in default configuration as YAML.

Save the output as ~/.pathmaster/configs/pathmaster.yaml or
./configs/pathmaster.yaml and edit it to change board sizes, palettes
or the save directory.

Examples:
  pathmaster config
  pathmaster config > ~/.pathmaster/configs/pathmaster.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	_, err := os.Stdout.Write(config.GetDefaultYAML())
	return err
}
