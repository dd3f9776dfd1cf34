package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/markdeck/internal/adapters/secondary/document"
	"github.com/fredcamaral/markdeck/internal/adapters/secondary/parser"
	"github.com/fredcamaral/markdeck/internal/adapters/secondary/renderer"
	"github.com/fredcamaral/markdeck/internal/domain/entities"
	"github.com/fredcamaral/markdeck/internal/domain/ports"
	"github.com/fredcamaral/markdeck/internal/domain/services"
)

// Export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHTML = "html"
)

// stdinName names a presentation read from standard input
const stdinName = "stdin"

// exportOptions holds the export command flags
type exportOptions struct {
	format string
	output string
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Print the parsed slides of a markdown file",
		Long: `Parse a markdown file and print its slides, total and title.
Use - as the file to read from standard input.

Example:
  markdeck export talk.md
  markdeck export talk.md --format yaml --output talk.yaml
  markdeck export talk.md --format html --output talk.html
  cat talk.md | markdeck export -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatJSON, "Output format: json, yaml or html")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to this file instead of standard output")

	return cmd
}

func runExport(cmd *cobra.Command, file string, opts *exportOptions) error {
	format := strings.ToLower(strings.TrimSpace(opts.format))
	if format != FormatJSON && format != FormatYAML && format != FormatHTML {
		return fmt.Errorf("unsupported format %q (want %s, %s or %s)", opts.format, FormatJSON, FormatYAML, FormatHTML)
	}

	workingDir := "."
	if file != "-" {
		workingDir = filepath.Dir(file)
	}

	cfg, err := loadConfig(cmd, workingDir, map[string]interface{}{})
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Logging)
	markdown := parser.NewGoldmarkRenderer(cfg.Render)
	segmenter := parser.NewSegmenter(markdown, logger)
	presenter := services.NewPresentationService(document.NewFileSource(), segmenter, logger)

	var presentation *entities.Presentation
	if file == "-" {
		presentation, err = presenter.ParseReader(cmd.Context(), stdinName, cmd.InOrStdin())
	} else {
		presentation, err = presenter.Parse(cmd.Context(), file)
	}
	if err != nil {
		return err
	}

	write := func(w io.Writer) error {
		if format == FormatHTML {
			return writeHTML(cmd.Context(), w, markdown, presentation.Export())
		}
		return writeExport(w, presentation.Export(), format)
	}

	if opts.output == "" {
		return write(cmd.OutOrStdout())
	}

	out, err := os.Create(opts.output) // #nosec G304 - output path chosen by the user
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	if err := write(out); err != nil {
		_ = out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}

	return nil
}

// writeHTML renders export as a standalone HTML deck
func writeHTML(ctx context.Context, w io.Writer, markdown ports.MarkdownRenderer, export *entities.Export) error {
	deck, err := renderer.NewTemplateRenderer(markdown)
	if err != nil {
		return err
	}
	return deck.RenderPresentation(ctx, w, export)
}

// writeExport encodes export to w in the given format
func writeExport(w io.Writer, export *entities.Export, format string) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(export); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return encoder.Close()

	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(export); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	}
}
