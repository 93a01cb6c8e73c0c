package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
	"github.com/custodia-labs/ecoreport/internal/logger"
	output "github.com/custodia-labs/ecoreport/internal/render"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReportsResponse is the body of GET /reports.
type ReportsResponse struct {
	Reports []ReportInfo `json:"reports"`
	Count   int          `json:"count"`
}

// ReportInfo describes one registered report.
type ReportInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{Status: "ok"})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	available := s.ports.Reports.Available()

	resp := ReportsResponse{
		Reports: make([]ReportInfo, len(available)),
		Count:   len(available),
	}
	for i, info := range available {
		resp.Reports[i] = ReportInfo{Name: info.Name, Description: info.Description}
	}

	render.JSON(w, r, resp)
}

// handleReport runs the whole pipeline for one report and returns its
// envelope.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	start := time.Now()
	summary, err := s.ports.Pipeline.Run(r.Context(), s.ports.Files, []string{name})
	s.metrics.ObserveRun(summary, time.Since(start))

	var runID string
	if summary != nil {
		runID = summary.RunID
	}
	renderer := output.NewJSON(output.ForRun(runID, s.envelope...)...)

	switch {
	case errors.Is(err, domain.ErrUnknownReport):
		writeError(w, r, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, domain.ErrNoData):
		// An empty dataset yields an empty report, not a failure.
		render.JSON(w, r, renderer.Document(domain.ReportResult{Name: name}))
		return
	case domain.IsIngestionError(err):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		logger.Warn("report %s: %v", name, err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	if len(summary.Results) == 0 {
		writeError(w, r, http.StatusInternalServerError, "pipeline returned no results")
		return
	}

	res := summary.Results[0]
	if res.Failed() {
		render.Status(r, http.StatusInternalServerError)
	}
	render.JSON(w, r, renderer.Document(res))
}
