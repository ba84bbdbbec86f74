package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/stevenAthompson/resume/pkg/resume"
)

var dataOpts struct {
	content string
	format  string
}

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Print the data extracted from the markdown content",
	Long: `data parses the markdown content file and prints the resulting
context mapping. Useful when writing templates: every name printed here can
be referenced with {{...}} tags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		md, err := os.ReadFile(dataOpts.content)
		if err != nil {
			return fmt.Errorf("failed to read content file: %w", err)
		}
		data, err := resume.NewParser(newLogger()).Parse(string(md))
		if err != nil {
			return err
		}

		switch dataOpts.format {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(data)
		case "yaml":
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer func() { _ = enc.Close() }()
			return enc.Encode(data)
		}
		return fmt.Errorf("unknown format %q (expected json or yaml)", dataOpts.format)
	},
}

func init() {
	dataCmd.Flags().StringVar(&dataOpts.content, "content", "resume.md", "path to the markdown content file")
	dataCmd.Flags().StringVar(&dataOpts.format, "format", "json", "output format: json or yaml")
	rootCmd.AddCommand(dataCmd)
}
