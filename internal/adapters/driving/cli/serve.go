package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	httpapi "github.com/custodia-labs/ecoreport/internal/adapters/driving/http"
	"github.com/custodia-labs/ecoreport/internal/core/domain"
)

var (
	serveFiles []string
	serveAddr  string
	serveRate  float64
	serveBurst int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve reports over HTTP",
	Long: `Starts a read-only HTTP API over the given input files. Every request
re-reads the files, so edits show up on the next request.

Endpoints:
  GET /healthz         - liveness check
  GET /reports         - registered reports
  GET /reports/{name}  - one report as a JSON document
  GET /metrics         - Prometheus metrics

Examples:
  ecoreport serve --files 2022.csv,2023.csv
  ecoreport serve -f data.xlsx --addr 127.0.0.1:9000 --rate 1 --burst 5`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringSliceVarP(&serveFiles, "files", "f", nil, "input files (repeat or comma-separate)")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	serveCmd.Flags().Float64Var(&serveRate, "rate", httpapi.DefaultRate, "requests per second per client (0 disables limiting)")
	serveCmd.Flags().IntVar(&serveBurst, "burst", httpapi.DefaultBurst, "request burst per client")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := requirePipeline(); err != nil {
		return err
	}
	if len(serveFiles) == 0 {
		return fmt.Errorf("%w: at least one --files value is required", domain.ErrInvalidInput)
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Pipeline: services.Pipeline,
		Reports:  services.Reports,
		Files:    serveFiles,
	}, httpapi.WithRateLimit(serveRate, serveBurst))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving reports on http://%s\n", displayAddr(serveAddr))
	return server.Run(cmd.Context(), serveAddr)
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
