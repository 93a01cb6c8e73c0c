package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ecoreport/internal/adapters/driving/tui"
	"github.com/custodia-labs/ecoreport/internal/core/domain"
)

var (
	viewFiles   []string
	viewReports []string
)

// viewCmd launches the interactive report browser.
var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse reports in an interactive terminal UI",
	Long: `Runs the reports and shows them in a tabbed terminal browser.
Every registered report is shown when --report is omitted.

Controls:
  tab/→, shift+tab/← - Switch report
  ↑/k, ↓/j           - Scroll rows
  r                  - Reload from the input files
  ?                  - Toggle help
  q                  - Quit`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringSliceVarP(&viewFiles, "files", "f", nil, "input files (repeat or comma-separate)")
	viewCmd.Flags().StringSliceVarP(&viewReports, "report", "r", nil, "reports to show (default all)")
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := requirePipeline(); err != nil {
		return err
	}
	if len(viewFiles) == 0 {
		return fmt.Errorf("%w: at least one --files value is required", domain.ErrInvalidInput)
	}

	names := viewReports
	if len(names) == 0 && services.Reports != nil {
		for _, info := range services.Reports.Available() {
			names = append(names, info.Name)
		}
	}

	app, err := tui.NewApp(&tui.Ports{
		Pipeline: services.Pipeline,
		Files:    viewFiles,
		Reports:  names,
	}, nil)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
