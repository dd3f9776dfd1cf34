package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	httpadapter "github.com/fredcamaral/markdeck/internal/adapters/primary/http"
	"github.com/fredcamaral/markdeck/internal/adapters/secondary/browser"
	"github.com/fredcamaral/markdeck/internal/adapters/secondary/config"
	"github.com/fredcamaral/markdeck/internal/adapters/secondary/document"
	"github.com/fredcamaral/markdeck/internal/adapters/secondary/parser"
	"github.com/fredcamaral/markdeck/internal/adapters/secondary/watcher"
	"github.com/fredcamaral/markdeck/internal/domain/entities"
	"github.com/fredcamaral/markdeck/internal/domain/ports"
	"github.com/fredcamaral/markdeck/internal/domain/services"
)

// serveOptions holds the serve command flags
type serveOptions struct {
	port      int
	host      string
	noBrowser bool
	watch     bool
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a presentation from a markdown file",
		Long: `Start a local HTTP server that presents the markdown file in the
browser. With watching enabled, open viewers reload whenever the file
changes.

Example:
  markdeck serve talk.md
  markdeck serve talk.md --port 8080 --no-browser`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args[0], opts)
		},
	}

	// Zero values leave the configured setting alone
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to serve on (overrides config)")
	cmd.Flags().StringVar(&opts.host, "host", "", "Host to bind to (overrides config)")
	cmd.Flags().BoolVar(&opts.noBrowser, "no-browser", false, "Don't open browser automatically (overrides config)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", true, "Reload viewers when the file changes (overrides config)")

	return cmd
}

// serveFlags converts the flags the user actually set into config overrides
func serveFlags(cmd *cobra.Command, opts *serveOptions, documentPath string) map[string]interface{} {
	flags := map[string]interface{}{
		config.FlagDocument: documentPath,
	}

	if cmd.Flags().Changed("port") {
		flags[config.FlagPort] = opts.port
	}
	if cmd.Flags().Changed("host") {
		flags[config.FlagHost] = opts.host
	}
	if cmd.Flags().Changed("no-browser") {
		flags[config.FlagNoBrowser] = opts.noBrowser
	}
	if cmd.Flags().Changed("watch") {
		flags[config.FlagWatch] = opts.watch
	}

	return flags
}

// validateServeConfig checks the settings that only matter when serving
func validateServeConfig(cfg *entities.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", cfg.Server.Port)
	}

	if cfg.Server.Document == "" {
		return entities.ErrNoDocument
	}

	return nil
}

func runServe(cmd *cobra.Command, file string, opts *serveOptions) error {
	documentPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", file, err)
	}

	if _, err := os.Stat(documentPath); err != nil {
		return fmt.Errorf("%w: %w", entities.ErrDocumentNotFound, err)
	}

	cfg, err := loadConfig(cmd, filepath.Dir(documentPath), serveFlags(cmd, opts, documentPath))
	if err != nil {
		return err
	}
	if err := validateServeConfig(cfg); err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Logging)
	slog.SetDefault(logger)

	app := newServeApp(cfg, logger)
	return app.run(cmd.Context(), cmd)
}

// serveApp wires the adapters behind a running presentation server
type serveApp struct {
	config     *entities.Config
	logger     *slog.Logger
	presenter  *services.PresentationService
	server     *httpadapter.Server
	liveReload *services.LiveReloadService
	launcher   ports.BrowserLauncher
}

// newServeApp builds the server and its collaborators from cfg
func newServeApp(cfg *entities.Config, logger *slog.Logger) *serveApp {
	segmenter := parser.NewSegmenter(parser.NewGoldmarkRenderer(cfg.Render), logger)
	presenter := services.NewPresentationService(document.NewFileSource(), segmenter, logger)

	server := httpadapter.NewServerWithLogging(presenter, &cfg.Server, &cfg.Logging)

	app := &serveApp{
		config:    cfg,
		logger:    logger.With("component", "serve"),
		presenter: presenter,
		server:    server,
		launcher:  browser.NewLauncher(),
	}

	if cfg.Watcher.Enabled {
		fileWatcher := watcher.NewPollingWatcher(cfg.Watcher.GetInterval(), cfg.Watcher.GetDebounce())
		app.liveReload = services.NewLiveReloadService(fileWatcher, server, presenter, logger)
	}

	return app
}

// run serves until ctx is cancelled, then shuts everything down
func (a *serveApp) run(ctx context.Context, cmd *cobra.Command) error {
	documentPath := a.config.Server.Document

	title, err := a.presenter.Title(ctx, documentPath)
	if err != nil {
		return fmt.Errorf("loading presentation: %w", err)
	}

	if err := a.server.Start(ctx); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	if a.liveReload != nil {
		if err := a.liveReload.Start(ctx, documentPath); err != nil {
			a.logger.Warn("Live reload disabled", slog.Any("error", err))
		}
	}

	url := a.server.URL()
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %q at %s\n", title, url)
	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")

	if a.config.Browser.AutoOpen {
		if err := a.launcher.Launch(url); err != nil {
			a.logger.Warn("Failed to open browser", slog.Any("error", err))
		}
	}

	<-ctx.Done()

	return a.shutdown()
}

// shutdown stops live reload and the server
func (a *serveApp) shutdown() error {
	if a.liveReload != nil && a.liveReload.IsWatching() {
		if err := a.liveReload.Stop(); err != nil {
			a.logger.Warn("Stopping live reload", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.GetShutdownTimeout())
	defer cancel()

	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("stopping server: %w", err)
	}

	a.logger.Info("Server stopped")
	return nil
}
