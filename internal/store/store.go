// Package store persists job-run bookkeeping: the durable record of
// each job a FetchJob-style worker executed, its status, and its
// outcome. It follows the teacher's internal/db layering (a thin
// interface over *pgxpool.Pool, pre-loaded SQL text, pgx error
// translation) generalized from a user CRUD table to a job_runs table.
package store

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"taskplatform/internal/store/models"
)

const sqlDir = "sql/"

//go:embed sql/*.sql
var sqlFiles embed.FS

// conn is the minimal pgx surface Store needs, narrow enough to fake in
// tests without pulling in a real Postgres connection.
type conn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Config configures a Store.
type Config struct {
	Conn conn
}

// Validate reports whether the Config is usable.
func (c Config) Validate() error {
	var errs []error
	if c.Conn == nil {
		errs = append(errs, fmt.Errorf("store: Conn cannot be nil"))
	}
	return errors.Join(errs...)
}

// Store persists and retrieves JobRun records.
type Store struct {
	conn conn

	insertJobRun       string
	selectJobRun       string
	selectJobRuns      string
	updateJobRunStatus string
}

// New creates a Store with its SQL text pre-loaded from the embedded
// sql/ directory.
func New(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Store{
		conn:               cfg.Conn,
		insertJobRun:       loadSQL("insert_job_run.sql"),
		selectJobRun:       loadSQL("select_job_run.sql"),
		selectJobRuns:      loadSQL("select_job_runs.sql"),
		updateJobRunStatus: loadSQL("update_job_run_status.sql"),
	}, nil
}

// CreateJobRun inserts a new JobRun row with status "queued".
func (s *Store) CreateJobRun(ctx context.Context, req models.CreateJobRunRequest) (*models.JobRun, error) {
	if req.ID == "" {
		return nil, models.NewValidationError("id", "job run ID is required")
	}
	if req.Name == "" {
		return nil, models.NewValidationError("name", "job run name is required")
	}

	var id string
	if err := s.conn.QueryRow(ctx, s.insertJobRun, req.ID, req.Name).Scan(&id); err != nil {
		return nil, convertPgError(err)
	}

	zap.L().Info("job run created", zap.String("job_id", id), zap.String("job_name", req.Name))

	return s.GetJobRun(ctx, models.GetJobRunRequest{ID: id})
}

// GetJobRun retrieves a single JobRun by ID.
func (s *Store) GetJobRun(ctx context.Context, req models.GetJobRunRequest) (*models.JobRun, error) {
	if req.ID == "" {
		return nil, models.NewValidationError("id", "job run ID is required")
	}

	var run models.JobRun
	err := s.conn.QueryRow(ctx, s.selectJobRun, req.ID).Scan(
		&run.ID, &run.Name, &run.Status, &run.ResultJSON, &run.ErrorText, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		return nil, convertPgError(err)
	}
	return &run, nil
}

// ListJobRuns retrieves JobRuns ordered newest-first.
func (s *Store) ListJobRuns(ctx context.Context, req models.ListJobRunsRequest) (*models.ListJobRunsResponse, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	rows, err := s.conn.Query(ctx, s.selectJobRuns, req.Limit, req.Offset)
	if err != nil {
		return nil, convertPgError(err)
	}
	defer closeRows(rows)

	var runs []models.JobRun
	for rows.Next() {
		var run models.JobRun
		if err := rows.Scan(
			&run.ID, &run.Name, &run.Status, &run.ResultJSON, &run.ErrorText, &run.CreatedAt, &run.UpdatedAt,
		); err != nil {
			return nil, convertPgError(err)
		}
		runs = append(runs, run)
	}

	return &models.ListJobRunsResponse{JobRuns: runs, Total: len(runs)}, nil
}

// UpdateJobRunStatus transitions a JobRun's status and optionally
// records its result or error text.
func (s *Store) UpdateJobRunStatus(ctx context.Context, req models.UpdateJobRunStatusRequest) error {
	if req.ID == "" {
		return models.NewValidationError("id", "job run ID is required")
	}
	if req.Status == "" {
		return models.NewValidationError("status", "job run status is required")
	}

	_, err := s.conn.Exec(ctx, s.updateJobRunStatus, req.ID, req.Status, req.ResultJSON, req.ErrorText)
	if err != nil {
		return convertPgError(err)
	}
	return nil
}

func loadSQL(name string) string {
	content, err := sqlFiles.ReadFile(sqlDir + name)
	if err != nil {
		panic(fmt.Errorf("store: reading sql file %s: %v", name, err))
	}
	return string(content)
}

func convertPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return models.NewDatabaseError("unexpected error type", err)
	}

	if pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return models.NewDatabaseError("constraint violation", err)
	}
	return models.NewDatabaseError("unknown database error", err)
}

func closeRows(rows pgx.Rows) {
	rows.Close()
	if err := rows.Err(); err != nil {
		zap.L().Error("error iterating job_runs rows", zap.Error(err))
	}
}
