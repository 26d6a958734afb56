// Introboard serves a self-introduction board for newly joined colleagues.
//
// Visitors fill in a short form and browse everyone's introductions as cards.
// Records live in a spreadsheet web endpoint; the sheet command runs a local
// stand-in for it backed by memory, PostgreSQL or SQLite.
//
// Usage:
//
//	introboard serve [flags]
//	introboard sheet [flags]
//	introboard migrate
//	introboard config init [path]
package main

import (
	"fmt"
	"os"

	"introboard/internal/config"
	"introboard/internal/logger"
	"introboard/internal/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "introboard",
	Short:         "Self-introduction board",
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sheetCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and environment, applies the shared flags
// and sets up logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := logger.Init(cfg.Log.Level); err != nil {
		return nil, err
	}
	// net/http server errors go through the standard log package.
	zap.RedirectStdLog(logger.Get())
	return cfg, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("introboard %s\n", version.Full())
	},
}
