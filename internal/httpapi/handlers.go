// Package httpapi exposes the task platform over HTTP with gin, the way
// the teacher's internal/routers and internal/handlers expose the user
// CRUD demo, generalized from user records to job submission and
// status lookup.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskplatform/internal/jobs"
	"taskplatform/internal/store/models"
)

// SubmitFetchJob is the dependency httpapi needs to start a job; it is
// satisfied by *jobs.FetchJob.
type SubmitFetchJob interface {
	Submit(ctx context.Context, req jobs.Request) (string, error)
}

// JobLookup is the dependency httpapi needs to look up job state; it is
// satisfied by *store.Store.
type JobLookup interface {
	GetJobRun(ctx context.Context, req models.GetJobRunRequest) (*models.JobRun, error)
	ListJobRuns(ctx context.Context, req models.ListJobRunsRequest) (*models.ListJobRunsResponse, error)
}

type createJobRequest struct {
	Name string   `json:"name" binding:"required"`
	URLs []string `json:"urls" binding:"required,min=1"`
}

// CreateJob handles POST /api/v1/jobs.
func CreateJob(submitter SubmitFetchJob) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createJobRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		id, err := submitter.Submit(c.Request.Context(), jobs.Request{Name: req.Name, URLs: req.URLs})
		if err != nil {
			var invalid *jobs.ErrInvalidRequest
			if errors.As(err, &invalid) {
				c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
				return
			}
			slog.Error("failed to submit job", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit job"})
			return
		}

		c.JSON(http.StatusAccepted, gin.H{"id": id})
	}
}

// GetJob handles GET /api/v1/jobs/:id.
func GetJob(lookup JobLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		run, err := lookup.GetJobRun(c.Request.Context(), models.GetJobRunRequest{ID: id})
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
				return
			}
			slog.Error("failed to fetch job", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch job"})
			return
		}

		c.JSON(http.StatusOK, run)
	}
}

// ListJobs handles GET /api/v1/jobs.
func ListJobs(lookup JobLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := lookup.ListJobRuns(c.Request.Context(), models.ListJobRunsRequest{})
		if err != nil {
			slog.Error("failed to list jobs", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list jobs"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
