package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stevenAthompson/resume/pkg/mustache"
	"github.com/stevenAthompson/resume/pkg/resume"
)

var renderOpts struct {
	content  string
	template string
	output   string
	dataOut  string
	overlay  string
	watch    bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the resume to an HTML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		if renderOpts.watch {
			return watchAndRender(cmd.Context(), logger)
		}
		return renderOnce(logger)
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderOpts.content, "content", "resume.md", "path to the markdown content file")
	renderCmd.Flags().StringVar(&renderOpts.template, "template", "templates/resume_base"+mustache.PartialExt, "path to the Mustache HTML template")
	renderCmd.Flags().StringVar(&renderOpts.output, "output", "resume_generated.html", "path to write the rendered HTML")
	renderCmd.Flags().StringVar(&renderOpts.dataOut, "data-out", "", "optional path to write the final context as JSON")
	renderCmd.Flags().StringVar(&renderOpts.overlay, "data", "", "optional YAML or JSON mapping overlaid on the extracted data")
	renderCmd.Flags().BoolVar(&renderOpts.watch, "watch", false, "re-render whenever the content or templates change")
	rootCmd.AddCommand(renderCmd)
}

// renderOnce runs the full pipeline: extract the markdown data, apply the
// overlay, render the template and write the output atomically so a build
// watched by a browser never sees a half-written file.
func renderOnce(logger *slog.Logger) error {
	data, err := buildContext(logger)
	if err != nil {
		return err
	}

	tmplRaw, err := os.ReadFile(renderOpts.template)
	if err != nil {
		return fmt.Errorf("failed to read template file: %w", err)
	}

	renderer := mustache.New(filepath.Dir(renderOpts.template))
	out, err := renderer.Render(string(tmplRaw), data)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", renderOpts.template, err)
	}

	if renderOpts.dataOut != "" {
		encoded, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode context data: %w", err)
		}
		if err := atomic.WriteFile(renderOpts.dataOut, bytes.NewReader(encoded)); err != nil {
			return fmt.Errorf("failed to write %s: %w", renderOpts.dataOut, err)
		}
		logger.Info("Wrote context data", "path", renderOpts.dataOut)
	}

	if err := atomic.WriteFile(renderOpts.output, strings.NewReader(out)); err != nil {
		return fmt.Errorf("failed to write %s: %w", renderOpts.output, err)
	}
	logger.Info("Wrote rendered resume", "output", renderOpts.output, "bytes", len(out))
	return nil
}

// buildContext extracts the context mapping from the markdown content and
// overlays the optional data file on top of it.
func buildContext(logger *slog.Logger) (map[string]any, error) {
	md, err := os.ReadFile(renderOpts.content)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}
	data, err := resume.NewParser(logger).Parse(string(md))
	if err != nil {
		return nil, err
	}

	if renderOpts.overlay != "" {
		overlay, err := loadOverlay(renderOpts.overlay)
		if err != nil {
			return nil, err
		}
		mergeContext(data, overlay)
		logger.Debug("Applied data overlay", "path", renderOpts.overlay, "keys", len(overlay))
	}
	return data, nil
}

// loadOverlay reads a YAML mapping. JSON works too, being a YAML subset.
func loadOverlay(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data overlay: %w", err)
	}
	var overlay map[string]any
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return nil, fmt.Errorf("failed to parse data overlay %s: %w", path, err)
	}
	return overlay, nil
}

// mergeContext replaces top-level keys in base with the overlay's values.
func mergeContext(base, overlay map[string]any) {
	for k, v := range overlay {
		base[k] = v
	}
}
