package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ecoreport/internal/adapters/driving/mcp"
	"github.com/custodia-labs/ecoreport/internal/core/domain"
)

var (
	mcpPort  int
	mcpHost  string
	mcpFiles []string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can list and run
reports over local data files.

Tools:
  list_reports                 - registered reports and their descriptions
  run_report {files, reports}  - read the files and generate the reports

Tool calls can only read the files given with --files; run_report reads all
of them unless it names a subset.

By default the server speaks JSON-RPC over stdio. Use --port to serve the
streamable HTTP transport instead. It listens on 127.0.0.1 unless --host
says otherwise.

Examples:
  ecoreport mcp serve --files 2022.csv,2023.csv
  ecoreport mcp serve -f data.xlsx --port 8081`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().StringSliceVarP(&mcpFiles, "files", "f", nil, "input files tool calls may read (repeat or comma-separate)")
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "127.0.0.1", "HTTP listen host")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if services == nil {
		return fmt.Errorf("services not configured")
	}
	if len(mcpFiles) == 0 {
		return fmt.Errorf("%w: at least one --files value is required", domain.ErrInvalidInput)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Reports:  services.Reports,
		Pipeline: services.Pipeline,
		Files:    mcpFiles,
	})
	if err != nil {
		return err
	}

	if mcpPort > 0 {
		addr := mcpListenAddr(mcpHost, mcpPort)
		// stdout is the protocol channel in stdio mode, so only announce HTTP.
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://%s\n", displayAddr(addr))
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

// mcpListenAddr joins host and port; an empty host listens on every interface.
func mcpListenAddr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
