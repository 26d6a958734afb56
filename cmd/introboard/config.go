package main

import (
	"fmt"
	"os"

	"introboard/internal/config"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "introboard.yaml"

var forceConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a configuration file with the default settings",
	Example: `  introboard config init
  introboard config init /etc/introboard.yaml --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigPath
		if len(args) == 1 {
			path = args[0]
		}
		if err := writeDefaultConfig(path, forceConfig); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&forceConfig, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	return config.Default().Save(path)
}
