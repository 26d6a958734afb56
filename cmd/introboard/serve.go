package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "introboard/docs"
	"introboard/internal/board"
	"introboard/internal/config"
	"introboard/internal/handlers"
	"introboard/internal/intro"
	"introboard/internal/logger"
	"introboard/internal/session"
	"introboard/internal/sheet"
	"introboard/internal/sheetclient"
	"introboard/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddr     string
	serveEndpoint string
	withSheet     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the introduction board",
	Long: `Start the web board: the introduction form, the card list and the JSON API.

The board reads and writes introductions through a spreadsheet web endpoint,
set with --endpoint, endpoint.url in the config file or INTROBOARD_ENDPOINT_URL.
With --with-sheet a local stand-in endpoint is started alongside the board and
used when no endpoint is configured.`,
	Example: `  # Against a deployed endpoint
  introboard serve --endpoint https://script.google.com/macros/s/XXXX/exec

  # Fully local, with the in-memory sheet
  introboard serve --with-sheet --log-level debug`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().StringVar(&serveEndpoint, "endpoint", "", "Spreadsheet endpoint URL")
	serveCmd.Flags().BoolVar(&withSheet, "with-sheet", false, "Also run the local sheet endpoint")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if serveEndpoint != "" {
		cfg.Endpoint.URL = serveEndpoint
	}
	if withSheet && cfg.Endpoint.URL == "" {
		cfg.Endpoint.URL = localURL(cfg.Sheet.Addr) + cfg.Sheet.Path
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	if withSheet {
		if err := cfg.ValidateSheet(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		store, closeStore, err := openStore(gctx, cfg)
		if err != nil {
			return err
		}
		defer closeStore()
		runEcho(gctx, g, newSheetServer(cfg, store), cfg.Sheet.Addr)
	}

	client := sheetclient.NewClient(cfg.Endpoint.URL,
		sheetclient.WithTimeout(cfg.Endpoint.Timeout),
		sheetclient.WithReadAction(cfg.Endpoint.ReadAction),
		sheetclient.WithAllowedRedirectHosts(cfg.Endpoint.AllowedRedirectHosts...),
	)
	b := board.New(client, intro.NewValidator(cfg.Form.Required))
	sessions := session.NewStore(cfg.Session.TTL, func() *view.Controller {
		return view.NewController(view.WithToastDuration(cfg.Toast.Duration))
	})

	e := newEcho()
	e.Renderer = view.Renderer{}
	e.StaticFS("/static", echo.MustSubFS(view.Static, "static"))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	handlers.Register(e, b, sessions, handlers.NewLocalizer(cfg.Language(), cfg.Location()))

	logger.Info("starting introboard",
		zap.String("addr", cfg.Addr),
		zap.String("endpoint", cfg.Endpoint.URL),
		zap.Strings("required", b.Validator().RequiredFields()),
	)

	g.Go(func() error { return sessions.Run(gctx, cfg.Session.SweepInterval) })
	runEcho(gctx, g, e, cfg.Addr)

	return g.Wait()
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(log.WARN)
	e.Use(middleware.Recover())
	e.Use(handlers.RequestLogger())
	return e
}

func newSheetServer(cfg *config.Config, store sheet.Store) *echo.Echo {
	e := newEcho()
	sheet.Register(e, cfg.Sheet.Path, store, cfg.Endpoint.ReadAction)
	return e
}

// runEcho starts e on addr inside g and shuts it down when ctx ends.
func runEcho(ctx context.Context, g *errgroup.Group, e *echo.Echo, addr string) {
	g.Go(func() error {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server on %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down", zap.String("addr", addr))
		return e.Shutdown(shutdownCtx)
	})
}

func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
