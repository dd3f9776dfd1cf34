package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/markdeck/internal/adapters/secondary/config"
	"github.com/fredcamaral/markdeck/internal/domain/entities"
	"github.com/fredcamaral/markdeck/internal/domain/services"
)

var (
	// Version is set during build
	Version = "dev"

	// BuildDate is set during build
	BuildDate = "unknown"
)

// rootCmd represents the base command
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markdeck",
		Short: "Present markdown files as slide decks",
		Long: `markdeck turns a markdown file into a slide deck. Slides are
separated by a line containing only ---, speaker notes live in
<!-- NOTES: ... --> comments and :::columns blocks split a slide
into two columns.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
Build Date: ` + BuildDate + `
`)

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().StringP("config", "c", "", "Global config file (default: ~/.config/markdeck/config.toml)")

	cmd.AddCommand(newServeCmd(), newExportCmd(), newConfigCmd())

	return cmd
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newConfigService builds the config service, honoring the --config flag
func newConfigService(cmd *cobra.Command) *services.ConfigService {
	loader := config.NewTOMLLoader()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loader = config.NewTOMLLoaderWithPath(path)
	}

	return services.NewConfigService(loader, config.NewConfigMerger())
}

// loadConfig resolves the configuration for a document in workingDir
func loadConfig(cmd *cobra.Command, workingDir string, flags map[string]interface{}) (*entities.Config, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		flags[config.FlagVerbose] = true
	}

	cfg, err := newConfigService(cmd).LoadConfig(cmd.Context(), workingDir, flags)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	return cfg, nil
}

// newLogger builds the structured logger for services and adapters
func newLogger(w io.Writer, logging entities.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch logging.GetLevel() {
	case entities.LogLevelDebug:
		level = slog.LevelDebug
	case entities.LogLevelWarn:
		level = slog.LevelWarn
	case entities.LogLevelError:
		level = slog.LevelError
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: logging.Verbose,
	}))
}
