package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driven"
	"github.com/custodia-labs/ecoreport/internal/render"
	"github.com/custodia-labs/ecoreport/internal/watch"
)

var (
	reportFiles  []string
	reportNames  []string
	reportFormat string
	reportOutput string
	reportWatch  bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate reports from data files",
	Long: `Reads every input file, merges the rows into one dataset and runs the
requested reports in order.

Files are read by extension: .csv and .txt use the configured delimiter,
.tsv is tab separated and .xlsx/.xlsm are Excel workbooks (first sheet).

A malformed row in any file stops the run before any report executes.
A failing report is reported on stderr and the remaining reports still run.

Examples:
  ecoreport report --files a.csv --files b.csv --report average-gdp
  ecoreport report -f a.csv,b.csv -r average-gdp,continent-population --format json
  ecoreport report -f data.xlsx -r average-gdp --format xlsx -o summary.xlsx
  ecoreport report -f a.csv -r average-gdp --watch`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringSliceVarP(&reportFiles, "files", "f", nil, "input files (repeat or comma-separate)")
	reportCmd.Flags().StringSliceVarP(&reportNames, "report", "r", nil, "reports to run, in order (repeat or comma-separate)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "", "output format: table, markdown, json, yaml, csv or xlsx")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "write output to a file instead of stdout")
	reportCmd.Flags().BoolVar(&reportWatch, "watch", false, "re-run when any input file changes")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if err := requirePipeline(); err != nil {
		return err
	}
	if len(reportFiles) == 0 {
		return fmt.Errorf("%w: at least one --files value is required", domain.ErrInvalidInput)
	}
	if len(reportNames) == 0 {
		return fmt.Errorf("%w: at least one --report value is required", domain.ErrInvalidInput)
	}

	settings, err := effectiveSettings(reportFormat)
	if err != nil {
		return err
	}
	format := settings.Output.Format
	if format.RequiresFile() && reportOutput == "" {
		return fmt.Errorf("%w: --format %s requires --output", domain.ErrInvalidInput, format)
	}

	// Fail on an unknown format before any file is read.
	if _, err := render.NewRegistry(render.Options{}).Get(format); err != nil {
		return err
	}

	run := func(ctx context.Context) error {
		return generate(ctx, cmd, settings, format)
	}

	if !reportWatch {
		return run(cmd.Context())
	}
	return watchAndRun(cmd, run)
}

// generate runs the pipeline once and presents every result.
// JSON and YAML documents carry the run ID recorded in the history.
func generate(ctx context.Context, cmd *cobra.Command, settings domain.AppSettings, format domain.OutputFormat) error {
	summary, err := services.Pipeline.Run(ctx, reportFiles, reportNames)
	if errors.Is(err, domain.ErrNoData) {
		fmt.Fprintln(cmd.OutOrStdout(), "No data to process.")
		return nil
	}
	if err != nil {
		return err
	}

	renderer, err := render.NewRegistry(render.Options{
		Color:    settings.Output.Color,
		Envelope: render.ForRun(summary.RunID),
	}).Get(format)
	if err != nil {
		return err
	}

	w, closeOutput, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOutput()

	var printable []domain.ReportResult
	for _, res := range summary.Results {
		switch {
		case res.Failed():
			fmt.Fprintf(cmd.ErrOrStderr(), "Error generating report %s: %v\n", res.Name, res.Err)
		case res.IsEmpty():
			fmt.Fprintf(cmd.OutOrStdout(), "Report %s has no data.\n", res.Name)
		default:
			printable = append(printable, res)
		}
	}

	if err := present(w, renderer, format, printable); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if failed := summary.Failed(); failed > 0 {
		return fmt.Errorf("%w: %d of %d reports failed", domain.ErrReportFailed, failed, len(summary.Results))
	}
	return nil
}

// present writes results with the chosen renderer. Text formats get a
// heading per report; batch renderers receive all results at once.
func present(w io.Writer, renderer driven.Renderer, format domain.OutputFormat, results []domain.ReportResult) error {
	if batch, ok := renderer.(driven.BatchRenderer); ok {
		return batch.RenderAll(w, results)
	}

	for _, res := range results {
		if hasHeading(format) {
			if _, err := fmt.Fprintf(w, "--- Report: %s ---\n", res.Name); err != nil {
				return err
			}
		}
		if err := renderer.Render(w, res); err != nil {
			return err
		}
	}
	return nil
}

// hasHeading reports whether a format is read by people rather than parsers.
func hasHeading(format domain.OutputFormat) bool {
	return format == domain.FormatTable || format == domain.FormatMarkdown
}

// openOutput returns the destination for rendered reports.
func openOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	if reportOutput == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(reportOutput)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", reportOutput, err)
	}
	return f, func() { f.Close() }, nil //nolint:errcheck
}

// watchAndRun runs once, then again after every change to an input file.
// Failures are printed and watching continues until interrupted.
func watchAndRun(cmd *cobra.Command, run func(context.Context) error) error {
	w, err := watch.New(reportFiles)
	if err != nil {
		return err
	}
	defer w.Close()

	runOnce := func(ctx context.Context) {
		if err := run(ctx); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Watching for changes (Ctrl+C to stop)...")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runOnce(ctx)
	return w.Run(ctx, runOnce)
}
