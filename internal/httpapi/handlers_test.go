package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"taskplatform/internal/jobs"
	"taskplatform/internal/store/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSubmitter struct {
	id  string
	err error
}

func (f fakeSubmitter) Submit(ctx context.Context, req jobs.Request) (string, error) {
	return f.id, f.err
}

type fakeLookup struct {
	run *models.JobRun
	err error
}

func (f fakeLookup) GetJobRun(ctx context.Context, req models.GetJobRunRequest) (*models.JobRun, error) {
	return f.run, f.err
}

func (f fakeLookup) ListJobRuns(ctx context.Context, req models.ListJobRunsRequest) (*models.ListJobRunsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ListJobRunsResponse{JobRuns: []models.JobRun{*f.run}, Total: 1}, nil
}

func TestCreateJobReturns202OnSuccess(t *testing.T) {
	router := gin.New()
	router.POST("/jobs", CreateJob(fakeSubmitter{id: "job-1"}))

	body, _ := json.Marshal(createJobRequest{Name: "fetch", URLs: []string{"http://a"}})
	req := httptest.NewRequest(http.MethodPost, "/jobs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateJobReturns400OnBadBody(t *testing.T) {
	router := gin.New()
	router.POST("/jobs", CreateJob(fakeSubmitter{id: "job-1"}))

	req := httptest.NewRequest(http.MethodPost, "/jobs", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetJobReturns404WhenMissing(t *testing.T) {
	router := gin.New()
	router.GET("/jobs/:id", GetJob(fakeLookup{err: models.ErrNotFound}))

	req := httptest.NewRequest(http.MethodGet, "/jobs/missing", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetJobReturns200WithBody(t *testing.T) {
	router := gin.New()
	router.GET("/jobs/:id", GetJob(fakeLookup{run: &models.JobRun{ID: "job-1", Status: models.StatusSuccess}}))

	req := httptest.NewRequest(http.MethodGet, "/jobs/job-1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
