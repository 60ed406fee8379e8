package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/data-importer/internal/importer"
	"github.com/mentorhub/data-importer/internal/model"
)

type fakeService struct {
	startID   string
	runs      map[string]importer.Run
	dryResult *model.Result
	dryErr    error
}

func (f *fakeService) StartImport() string { return f.startID }

func (f *fakeService) Status(id string) (importer.Run, bool) {
	run, ok := f.runs[id]
	return run, ok
}

func (f *fakeService) DryRun(ctx context.Context) (*model.Result, error) {
	return f.dryResult, f.dryErr
}

func newTestServer(svc ImportService) *Server {
	return NewServer(svc, 5*time.Second)
}

func TestHandleStartImport(t *testing.T) {
	srv := newTestServer(&fakeService{startID: "run-123"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/start", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "run-123", body["import_id"])
	assert.Equal(t, "started", body["status"])
	assert.NotEmpty(t, body["message"])
}

func TestHandleImportStatus(t *testing.T) {
	now := time.Now().UTC()
	srv := newTestServer(&fakeService{
		runs: map[string]importer.Run{
			"run-123": {ID: "run-123", Status: importer.StatusImporting, StartedAt: now},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/import/status/run-123", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var run importer.Run
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&run))
	assert.Equal(t, importer.StatusImporting, run.Status)
}

func TestHandleImportStatusUnknown(t *testing.T) {
	srv := newTestServer(&fakeService{runs: map[string]importer.Run{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/import/status/nope", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleDryRun(t *testing.T) {
	result := &model.Result{Timestamp: time.Now().UTC()}
	result.Stats.Students.Total = 3
	result.Data.Students = []model.Student{{TelegramHandle: "alice"}, {TelegramHandle: "bob"}}
	srv := newTestServer(&fakeService{dryResult: result})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/dry-run", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Message       string         `json:"message"`
		Statistics    model.Stats    `json:"statistics"`
		ProcessedData map[string]int `json:"processed_data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.NotEmpty(t, got.Message)
	assert.Equal(t, 3, got.Statistics.Students.Total)
	assert.Equal(t, 2, got.ProcessedData["students"])
	assert.Equal(t, 0, got.ProcessedData["projects"])
}

func TestHandleDryRunError(t *testing.T) {
	srv := newTestServer(&fakeService{dryErr: errors.New("sheets unavailable")})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/dry-run", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
