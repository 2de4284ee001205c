package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mind-engage/introscore/internal/rubric"
)

// NewRubricCmd creates the rubric command group.
func NewRubricCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rubric",
		Short: "Inspect and export the scoring rubric",
	}
	cmd.AddCommand(newRubricExportCmd())
	return cmd
}

func newRubricExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the rubric as a CSV sheet or a YAML rubric file",
		Long: `Export writes the rubric in one of two shapes:

  csv   the eight-row rubric sheet (criterion, description, keywords,
        weight, min_words, max_words)
  yaml  the full engine rubric, loadable again via RUBRIC_PATH or --rubric

Examples:
  introscore rubric export --format csv -o rubric.csv
  introscore rubric export --format yaml > rubric.yaml`,
		Args: cobra.NoArgs,
		RunE: runRubricExport,
	}
	cmd.Flags().StringP("format", "f", "csv", "Output format: csv or yaml")
	cmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringP("rubric", "r", "", "Start from a YAML rubric instead of the built-in one")
	return cmd
}

func runRubricExport(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	rb, err := loadRubric(cmd)
	if err != nil {
		return err
	}

	var write func(io.Writer) error
	switch format {
	case "csv":
		write = rb.WriteCSV
	case "yaml", "yml":
		write = rb.WriteYAML
	default:
		return fmt.Errorf("unknown format %q (want csv or yaml)", format)
	}

	if output == "" {
		return write(cmd.OutOrStdout())
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(output) //nolint:gosec // user-provided output path
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadRubric(cmd *cobra.Command) (rubric.Rubric, error) {
	path, err := cmd.Flags().GetString("rubric")
	if err != nil || path == "" {
		return rubric.Default(), nil
	}
	rb, err := rubric.Load(path)
	if err != nil {
		return rubric.Rubric{}, fmt.Errorf("load rubric: %w", err)
	}
	return rb, nil
}
