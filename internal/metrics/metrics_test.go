package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveTaskEndIncrementsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg, "test-manager")

	started := m.ObserveTaskStart()
	m.ObserveTaskEnd(started, nil)

	started = m.ObserveTaskStart()
	m.ObserveTaskEnd(started, errors.New("boom"))

	var out dto.Metric
	if err := m.tasksProcessed.Write(&out); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if out.GetCounter().GetValue() != 2 {
		t.Fatalf("expected 2 processed, got %v", out.GetCounter().GetValue())
	}

	out = dto.Metric{}
	if err := m.taskErrors.Write(&out); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if out.GetCounter().GetValue() != 1 {
		t.Fatalf("expected 1 error, got %v", out.GetCounter().GetValue())
	}

	out = dto.Metric{}
	if err := m.activeWorkers.Write(&out); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if out.GetGauge().GetValue() != 0 {
		t.Fatalf("expected active workers back to 0, got %v", out.GetGauge().GetValue())
	}
}
