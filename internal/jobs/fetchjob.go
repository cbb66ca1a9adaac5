// Package jobs is the one concrete client of the task-manager core: it
// builds a FetchJob's worker Tasks, wires them into a
// taskmanager.Manager, and drives the supporting collaborators (the
// store, the audit log, the metrics) around that Manager's lifecycle.
// Nothing in internal/tasktype, internal/taskmanager, or
// internal/tasksync knows this package exists.
package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"taskplatform/internal/audit"
	"taskplatform/internal/metrics"
	"taskplatform/internal/param"
	"taskplatform/internal/store/models"
	"taskplatform/internal/taskmanager"
	"taskplatform/internal/taskruntime"
	"taskplatform/internal/webservice"
)

// ErrInvalidRequest is returned by Submit when the Request is malformed.
type ErrInvalidRequest struct {
	Field, Message string
}

func (e *ErrInvalidRequest) Error() string {
	return fmt.Sprintf("jobs: invalid field %q: %s", e.Field, e.Message)
}

// JobStore is the slice of *store.Store a FetchJob needs, narrow enough
// to fake in tests without a real Postgres connection behind it.
type JobStore interface {
	CreateJobRun(ctx context.Context, req models.CreateJobRunRequest) (*models.JobRun, error)
	UpdateJobRunStatus(ctx context.Context, req models.UpdateJobRunStatusRequest) error
}

// FetchJob fetches a set of URLs concurrently, one worker Task per valid
// URL, and records each result once the Manager's monitor observes that
// every worker (plus every URL rejected up front) has been accounted
// for.
type FetchJob struct {
	store      JobStore
	audit      audit.Logger
	metrics    *metrics.Metrics
	invoker    webservice.Invoker
	runtime    *taskruntime.Runtime
	workerPool chan struct{}
}

// New builds a FetchJob. metrics may be nil, in which case task timing
// is not recorded. runtime may be nil, in which case the Managers it
// creates are not tracked for graceful shutdown. workerPoolSize caps how
// many worker Tasks run concurrently across all FetchJob invocations; 0
// means unbounded.
func New(st JobStore, auditLog audit.Logger, m *metrics.Metrics, invoker webservice.Invoker, rt *taskruntime.Runtime, workerPoolSize int) *FetchJob {
	var pool chan struct{}
	if workerPoolSize > 0 {
		pool = make(chan struct{}, workerPoolSize)
	}
	return &FetchJob{store: st, audit: auditLog, metrics: m, invoker: invoker, runtime: rt, workerPool: pool}
}

// Request describes one FetchJob invocation: a name for bookkeeping and
// the set of URLs to fetch.
type Request struct {
	Name string
	URLs []string
}

// validateFetchURL reports why url is unfit to fetch, or nil if it is
// fine. A rejected URL never gets a worker Task; instead it pre-charges
// the Manager's monitor the way a parameter validation failure in the
// source's services layer would count against the job's expected
// completions without ever dispatching work for it.
func validateFetchURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("url is empty")
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("url is malformed: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme %q is not http or https", u.Scheme)
	}
	return nil
}

// Submit validates params, creates the job's store record, builds one
// worker Task per valid URL, pre-charges the Manager's monitor for any
// URL rejected up front, and runs the Manager. It returns the JobRun's
// ID immediately; the job itself finishes asynchronously and its result
// is only visible through the store once the Manager's cleanup runs.
func (j *FetchJob) Submit(ctx context.Context, req Request) (string, error) {
	if req.Name == "" {
		return "", &ErrInvalidRequest{Field: "name", Message: "job name is required"}
	}
	if len(req.URLs) == 0 {
		return "", &ErrInvalidRequest{Field: "urls", Message: "at least one URL is required"}
	}

	jobID := uuid.NewString()

	run, err := j.store.CreateJobRun(ctx, models.CreateJobRunRequest{ID: jobID, Name: req.Name})
	if err != nil {
		return "", fmt.Errorf("jobs: creating job run: %w", err)
	}
	j.audit.LogJobState(run.ID, req.Name, models.StatusQueued)

	set := param.NewSet(req.Name, "URLs fetched by this job")
	for i, u := range req.URLs {
		set.AddToGroup("urls", param.Parameter{Name: fmt.Sprintf("url_%d", i), Value: u})
	}
	j.audit.LogParameterSet(run.ID, set)

	if err := j.store.UpdateJobRunStatus(ctx, models.UpdateJobRunStatusRequest{
		ID: run.ID, Status: models.StatusRunning,
	}); err != nil {
		return "", fmt.Errorf("jobs: marking job run running: %w", err)
	}
	j.audit.LogJobState(run.ID, req.Name, models.StatusRunning)

	results := make([]any, len(req.URLs))
	errs := make([]error, len(req.URLs))

	var mgr *taskmanager.Manager
	mgr = taskmanager.New(run.ID, func(any) {
		if j.runtime != nil {
			j.runtime.Untrack(mgr)
		}
		j.finish(ctx, run.ID, req.Name, results, errs)
	}, nil)

	var preCharged int32
	for i, u := range req.URLs {
		if err := validateFetchURL(u); err != nil {
			errs[i] = fmt.Errorf("jobs: rejecting url %q: %w", u, err)
			preCharged++
			continue
		}

		i, u := i, u
		task := mgr.NewWorkerTask(fmt.Sprintf("%s.fetch.%d", req.Name, i))
		task.SetRun(func(any) any {
			if j.workerPool != nil {
				j.workerPool <- struct{}{}
				defer func() { <-j.workerPool }()
			}

			var started time.Time
			if j.metrics != nil {
				started = j.metrics.ObserveTaskStart()
			}

			var dst any
			fetchErr := j.invoker.Invoke(ctx, u, &dst)

			if j.metrics != nil {
				j.metrics.ObserveTaskEnd(started, fetchErr)
			}

			results[i] = dst
			errs[i] = fetchErr
			return nil
		}, nil)
	}

	if err := mgr.Prepare(preCharged); err != nil {
		return "", fmt.Errorf("jobs: preparing fetch job: %w", err)
	}

	if j.runtime != nil {
		j.runtime.Track(mgr)
	}

	for i := 0; i < int(preCharged); i++ {
		mgr.IncrementCount()
	}

	if err := mgr.StartWorkers(); err != nil {
		return "", fmt.Errorf("jobs: starting fetch job: %w", err)
	}

	return run.ID, nil
}

func (j *FetchJob) finish(ctx context.Context, jobID, name string, results []any, errs []error) {
	var firstErr error
	for _, e := range errs {
		if e != nil {
			firstErr = e
			break
		}
	}

	if firstErr != nil {
		j.audit.LogJobError(jobID, name, firstErr)
		_ = j.store.UpdateJobRunStatus(ctx, models.UpdateJobRunStatusRequest{
			ID: jobID, Status: models.StatusFailed, ErrorText: firstErr.Error(),
		})
		return
	}

	payload, err := json.Marshal(results)
	if err != nil {
		payload = []byte("null")
	}

	j.audit.LogJobState(jobID, name, models.StatusSuccess)
	_ = j.store.UpdateJobRunStatus(ctx, models.UpdateJobRunStatusRequest{
		ID: jobID, Status: models.StatusSuccess, ResultJSON: string(payload),
	})
}
