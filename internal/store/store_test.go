package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"taskplatform/internal/store/models"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeConn struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	execFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (f *fakeConn) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeConn) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return f.queryRowFn(ctx, sql, args...)
}

func (f *fakeConn) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return f.execFn(ctx, sql, args...)
}

func newTestStore(t *testing.T, c conn) *Store {
	t.Helper()
	s, err := New(Config{Conn: c})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestCreateJobRunValidatesInput(t *testing.T) {
	s := newTestStore(t, &fakeConn{})
	if _, err := s.CreateJobRun(context.Background(), models.CreateJobRunRequest{}); err == nil {
		t.Fatal("expected validation error for missing id/name")
	}
}

func TestGetJobRunNotFound(t *testing.T) {
	s := newTestStore(t, &fakeConn{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return fakeRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	})

	_, err := s.GetJobRun(context.Background(), models.GetJobRunRequest{ID: "missing"})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetJobRunSuccess(t *testing.T) {
	now := time.Now()
	s := newTestStore(t, &fakeConn{
		queryRowFn: func(ctx context.Context, sql string, args ...any) pgx.Row {
			return fakeRow{scan: func(dest ...any) error {
				*dest[0].(*string) = "job-1"
				*dest[1].(*string) = "fetch"
				*dest[2].(*string) = models.StatusRunning
				*dest[3].(*string) = ""
				*dest[4].(*string) = ""
				*dest[5].(*time.Time) = now
				*dest[6].(*time.Time) = now
				return nil
			}}
		},
	})

	run, err := s.GetJobRun(context.Background(), models.GetJobRunRequest{ID: "job-1"})
	if err != nil {
		t.Fatalf("GetJobRun: %v", err)
	}
	if run.Status != models.StatusRunning {
		t.Fatalf("expected status running, got %q", run.Status)
	}
}

func TestUpdateJobRunStatusValidatesInput(t *testing.T) {
	s := newTestStore(t, &fakeConn{})
	err := s.UpdateJobRunStatus(context.Background(), models.UpdateJobRunStatusRequest{ID: "job-1"})
	if err == nil {
		t.Fatal("expected validation error for missing status")
	}
}

func TestUpdateJobRunStatusSuccess(t *testing.T) {
	var gotStatus string
	s := newTestStore(t, &fakeConn{
		execFn: func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			gotStatus = args[1].(string)
			return pgconn.CommandTag{}, nil
		},
	})

	err := s.UpdateJobRunStatus(context.Background(), models.UpdateJobRunStatusRequest{
		ID:     "job-1",
		Status: models.StatusSuccess,
	})
	if err != nil {
		t.Fatalf("UpdateJobRunStatus: %v", err)
	}
	if gotStatus != models.StatusSuccess {
		t.Fatalf("expected status success, got %q", gotStatus)
	}
}
