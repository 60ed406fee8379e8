package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mentorhub/data-importer/internal/importer"
	"github.com/mentorhub/data-importer/internal/logging"
	"github.com/mentorhub/data-importer/internal/model"
)

// ImportService is the surface the handlers need from the import service.
type ImportService interface {
	StartImport() string
	Status(id string) (importer.Run, bool)
	DryRun(ctx context.Context) (*model.Result, error)
}

// handleHealth reports process liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleStartImport kicks off a background import run and returns its id.
func (s *Server) handleStartImport(w http.ResponseWriter, r *http.Request) {
	id := s.service.StartImport()
	logging.FromContext(r.Context()).Info("import run accepted", "import_id", id)

	writeJSON(w, http.StatusAccepted, map[string]string{
		"message":   "import started, poll the status endpoint for progress",
		"import_id": id,
		"status":    string(importer.StatusStarted),
	})
}

// handleImportStatus returns the state of a run.
func (s *Server) handleImportStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "importID")

	run, ok := s.service.Status(id)
	if !ok {
		writeError(w, http.StatusNotFound, "import not found")
		return
	}

	writeJSON(w, http.StatusOK, run)
}

// handleDryRun fetches and processes the source data without persisting it.
func (s *Server) handleDryRun(w http.ResponseWriter, r *http.Request) {
	result, err := s.service.DryRun(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error("dry run failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch or process spreadsheet data")
		return
	}

	// Entity counts only; the full record lists can run to thousands of rows.
	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "dry run completed, no data was imported",
		"statistics": result.Stats,
		"processed_data": map[string]int{
			"students":          len(result.Data.Students),
			"mentors":           len(result.Data.Mentors),
			"projects":          len(result.Data.Projects),
			"reviews":           len(result.Data.Reviews),
			"sponsored_reviews": len(result.Data.SponsoredReviews),
		},
	})
}

// writeJSON encodes v as JSON and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
