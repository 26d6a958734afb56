package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"introboard/internal/config"
	"introboard/internal/database"
	"introboard/internal/logger"
	"introboard/internal/sheet"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	sheetAddr  string
	sheetStore string
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Run the local spreadsheet endpoint",
	Long: `Run a stand-in for the spreadsheet web endpoint the board talks to.

POST appends an introduction; GET with ?action=get returns every row.
Rows are kept in memory, in PostgreSQL (DATABASE_URL) or in a SQLite file.`,
	Example: `  introboard sheet --store sqlite
  DATABASE_URL=postgres://localhost/introboard introboard sheet --store postgres`,
	RunE: runSheet,
}

func init() {
	sheetCmd.Flags().StringVar(&sheetAddr, "addr", "", "Listen address (default from config, :8090)")
	sheetCmd.Flags().StringVar(&sheetStore, "store", "", "Row store: memory, postgres or sqlite")
}

func runSheet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if sheetAddr != "" {
		cfg.Sheet.Addr = sheetAddr
	}
	if sheetStore != "" {
		cfg.Sheet.Store = sheetStore
	}
	if err := cfg.ValidateSheet(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	logger.Info("starting sheet endpoint",
		zap.String("addr", cfg.Sheet.Addr),
		zap.String("path", cfg.Sheet.Path),
		zap.String("store", cfg.Sheet.Store),
	)

	g, gctx := errgroup.WithContext(ctx)
	runEcho(gctx, g, newSheetServer(cfg, store), cfg.Sheet.Addr)
	return g.Wait()
}

// openStore builds the configured row store and returns its cleanup.
func openStore(ctx context.Context, cfg *config.Config) (sheet.Store, func(), error) {
	switch cfg.Sheet.Store {
	case config.StorePostgres:
		if err := database.Migrations(cfg.Sheet.Migrations, cfg.Sheet.DatabaseURL); err != nil {
			return nil, nil, err
		}
		pool, err := database.Connection(ctx, cfg.Sheet.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return database.NewPostgresStore(pool), pool.Close, nil
	case config.StoreSQLite:
		store, err := database.OpenSQLite(cfg.Sheet.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close sqlite store", err)
			}
		}, nil
	default:
		return sheet.NewMemoryStore(), func() {}, nil
	}
}
