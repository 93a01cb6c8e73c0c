package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/ecoreport/internal/logger"
	output "github.com/custodia-labs/ecoreport/internal/render"
)

// Version is the MCP server version.
const Version = "0.1.0"

// instructions is sent to clients during initialization.
const instructions = "Economic indicator reports over local CSV and XLSX files. " +
	"Call list_reports to see the report identifiers, then run_report with the input files."

// shutdownTimeout bounds how long in-flight HTTP sessions may take to finish.
const shutdownTimeout = 5 * time.Second

// Server is the MCP server for ecoreport.
type Server struct {
	ports    *Ports
	server   *mcp.Server
	envelope []output.EnvelopeOption
	served   map[string]string // absolute path -> configured path
}

// Option configures a Server.
type Option func(*Server)

// WithEnvelope passes options to the document envelope of run_report results.
func WithEnvelope(opts ...output.EnvelopeOption) Option {
	return func(s *Server) {
		s.envelope = opts
	}
}

// NewServer creates a new MCP server with the given ports.
func NewServer(ports *Ports, opts ...Option) (*Server, error) {
	if ports == nil {
		return nil, ErrMissingReportService
	}
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "ecoreport",
		Version: Version,
	}

	served, err := servedFiles(ports.Files)
	if err != nil {
		return nil, err
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{Instructions: instructions}),
		served: served,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()

	return s, nil
}

// servedFiles indexes the configured files by absolute path.
func servedFiles(files []string) (map[string]string, error) {
	served := make(map[string]string, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", f, err)
		}
		served[abs] = f
	}
	return served, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts the MCP server over HTTP on the specified address.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp: shutdown: %v", err)
		}
	}()

	logger.Info("mcp: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
