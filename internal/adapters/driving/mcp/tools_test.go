package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/core/ports/driving"
	output "github.com/custodia-labs/ecoreport/internal/render"
)

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// servedFixtures are the files test servers are started with.
var servedFixtures = []string{"a.csv", "b.csv", "gone.csv"}

func newTestServer(t *testing.T, p *mockPipeline) *Server {
	t.Helper()
	server, err := NewServer(
		&Ports{Reports: testReports(), Pipeline: p, Files: servedFixtures},
		WithEnvelope(output.WithRunID("run-1"), output.WithClock(func() time.Time { return fixedTime })),
	)
	require.NoError(t, err)
	return server
}

func gdpSummary() *driving.RunSummary {
	return &driving.RunSummary{
		Files:     2,
		Countries: 2,
		Records:   5,
		Results: []domain.ReportResult{
			{
				Name:    "average-gdp",
				Columns: []string{"country", "avg_gdp"},
				Rows: []domain.Row{
					{"country": "Japan", "avg_gdp": 5000000.0},
					{"country": "Chile", "avg_gdp": 300000.0},
				},
			},
			{Name: "continent-population", Columns: []string{"continent", "countries", "population"}, Err: fmt.Errorf("%w: boom", domain.ErrReportFailed)},
		},
	}
}

func TestServer_handleListReports(t *testing.T) {
	server := newTestServer(t, &mockPipeline{})

	_, out, err := server.handleListReports(context.Background(), nil, ListReportsInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, "average-gdp", out.Reports[0].Name)
	assert.Equal(t, "Population per continent", out.Reports[1].Description)
}

func TestServer_handleRunReport(t *testing.T) {
	ctx := context.Background()

	t.Run("returns report documents", func(t *testing.T) {
		p := &mockPipeline{summary: gdpSummary()}
		server := newTestServer(t, p)

		input := RunReportInput{Files: []string{"a.csv", "b.csv"}, Reports: []string{"average-gdp", "continent-population"}}
		_, out, err := server.handleRunReport(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, []string{"a.csv", "b.csv"}, p.files)
		assert.Equal(t, "run-1", out.RunID)
		assert.Equal(t, "2024-05-01T12:00:00Z", out.GeneratedAt)
		assert.Equal(t, 2, out.Files)
		assert.Equal(t, 2, out.Countries)
		assert.Equal(t, 5, out.Records)
		assert.Equal(t, 1, out.Failed)
		require.Len(t, out.Reports, 2)
		assert.Equal(t, "average-gdp", out.Reports[0].Report)
		assert.Equal(t, "Japan", out.Reports[0].Rows[0]["country"])
		assert.Equal(t, "report generation failed: boom", out.Reports[1].Error)
		assert.Empty(t, out.Reports[1].Rows)
	})

	t.Run("defaults to all reports", func(t *testing.T) {
		p := &mockPipeline{summary: gdpSummary()}
		server := newTestServer(t, p)

		_, _, err := server.handleRunReport(ctx, nil, RunReportInput{Files: []string{"a.csv"}})

		require.NoError(t, err)
		assert.Equal(t, []string{"average-gdp", "continent-population"}, p.reports)
	})

	t.Run("defaults to all served files", func(t *testing.T) {
		p := &mockPipeline{summary: gdpSummary()}
		server := newTestServer(t, p)

		_, out, err := server.handleRunReport(ctx, nil, RunReportInput{})

		require.NoError(t, err)
		assert.Equal(t, servedFixtures, p.files)
		assert.Equal(t, 3, out.Files)
	})

	t.Run("equivalent paths map to the served file", func(t *testing.T) {
		p := &mockPipeline{summary: gdpSummary()}
		server := newTestServer(t, p)

		_, _, err := server.handleRunReport(ctx, nil, RunReportInput{Files: []string{"./a.csv", "sub/../b.csv"}})

		require.NoError(t, err)
		assert.Equal(t, []string{"a.csv", "b.csv"}, p.files)
	})

	t.Run("refuses files outside the served set", func(t *testing.T) {
		secret := filepath.Join(t.TempDir(), "secrets.env")
		require.NoError(t, os.WriteFile(secret, []byte("KEY=VALUE\nDB_PASSWORD=hunter2\n"), 0o600))

		tests := []struct {
			name  string
			files []string
		}{
			{"unrelated file", []string{secret}},
			{"mixed with a served file", []string{"a.csv", secret}},
			{"parent directory", []string{"../a.csv"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				p := &mockPipeline{summary: gdpSummary()}
				server := newTestServer(t, p)

				_, _, err := server.handleRunReport(ctx, nil, RunReportInput{Files: tt.files})

				require.Error(t, err)
				assert.ErrorIs(t, err, ErrFileNotServed)
				assert.NotContains(t, err.Error(), "hunter2")
				assert.Nil(t, p.files, "pipeline must not run")
			})
		}
	})

	t.Run("no data yields empty reports", func(t *testing.T) {
		p := &mockPipeline{err: fmt.Errorf("%w: 1 files contained no rows", domain.ErrNoData)}
		server := newTestServer(t, p)

		_, out, err := server.handleRunReport(ctx, nil, RunReportInput{Files: []string{"a.csv"}, Reports: []string{"average-gdp"}})

		require.NoError(t, err)
		require.Len(t, out.Reports, 1)
		assert.Equal(t, "average-gdp", out.Reports[0].Report)
		assert.Empty(t, out.Reports[0].Rows)
		assert.Empty(t, out.Reports[0].Error)
	})

	t.Run("returns error on ingestion failure", func(t *testing.T) {
		p := &mockPipeline{err: &domain.FileError{Path: "a.csv", Err: domain.ErrFileNotFound}}
		server := newTestServer(t, p)

		_, _, err := server.handleRunReport(ctx, nil, RunReportInput{Files: []string{"a.csv"}})

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrFileNotFound)
		assert.Contains(t, err.Error(), "a.csv")
	})
}

// connect wires a client to the server over in-memory transports.
func connect(t *testing.T, server *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ss, err := server.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

func TestServer_Tools_OverTransport(t *testing.T) {
	server := newTestServer(t, &mockPipeline{summary: gdpSummary()})
	cs := connect(t, server)
	ctx := context.Background()

	tools, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_reports", "run_report"}, names)

	res, err := cs.CallTool(ctx, &mcp.CallToolParams{
		Name:      "run_report",
		Arguments: map[string]any{"files": []string{"a.csv"}, "reports": []string{"average-gdp"}},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out RunReportOutput
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "run-1", out.RunID)
	require.Len(t, out.Reports, 2)
	assert.Equal(t, []string{"country", "avg_gdp"}, out.Reports[0].Columns)
}

func TestServer_Tools_ErrorResult(t *testing.T) {
	server := newTestServer(t, &mockPipeline{err: &domain.FileError{Path: "gone.csv", Err: domain.ErrFileNotFound}})
	cs := connect(t, server)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "run_report",
		Arguments: map[string]any{"files": []string{"gone.csv"}},
	})

	require.NoError(t, err)
	assert.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "gone.csv")
}

func TestServer_Initialize_Instructions(t *testing.T) {
	cs := connect(t, newTestServer(t, &mockPipeline{}))

	res := cs.InitializeResult()
	require.NotNil(t, res)
	assert.Equal(t, "ecoreport", res.ServerInfo.Name)
	assert.Contains(t, res.Instructions, "run_report")
}

func TestServer_Tools_RefusesUnservedFile(t *testing.T) {
	p := &mockPipeline{summary: gdpSummary()}
	cs := connect(t, newTestServer(t, p))

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "run_report",
		Arguments: map[string]any{"files": []string{"/etc/passwd"}},
	})

	require.NoError(t, err)
	assert.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "file is not served")
	assert.Nil(t, p.files)
}
