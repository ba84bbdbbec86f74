package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "resume",
	Short: "Render a resume from markdown content and a Mustache template",
	Long: `resume turns a structured markdown resume into an HTML document.

The markdown content is parsed into structured data (name, personal info,
summary, skills, education, acknowledgments, experience, keywords) and
rendered through a logic-less Mustache-style template. Partials referenced
by the template are resolved relative to the template file's directory.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command under the given signal context.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newLogger builds the CLI logger at the level selected by --verbose.
// Logs go to stderr so rendered output and data dumps stay pipeable.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
