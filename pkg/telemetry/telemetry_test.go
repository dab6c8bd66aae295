package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordDispatch(true)
	m.RecordNodeCreated()
	m.RecordDragStart()
	m.RecordDragMove()
	m.RecordResolve(false)
	m.PreviewSessionOpened()
	m.PreviewSessionClosed()
}

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	m.RecordDispatch(true)
	m.RecordDispatch(true)
	m.RecordDispatch(false)
	m.RecordNodeCreated()
	m.RecordDragStart()
	m.RecordDragMove()
	m.RecordDragMove()
	m.RecordResolve(false)
	m.PreviewSessionOpened()
	m.PreviewSessionOpened()
	m.PreviewSessionClosed()

	tests := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"dispatch hit", m.dispatchTotal.WithLabelValues("hit"), 2},
		{"dispatch miss", m.dispatchTotal.WithLabelValues("miss"), 1},
		{"nodes", m.nodesCreated, 1},
		{"drag sessions", m.dragSessions, 1},
		{"drag moves", m.dragMoves, 2},
		{"resolve miss", m.resolveTotal.WithLabelValues("miss"), 1},
		{"preview sessions", m.previewSession, 1},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(tt.c); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	n, err := testutil.GatherAndCount(reg, "test_drag_moves_total")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if n != 1 {
		t.Errorf("GatherAndCount = %d, want 1", n)
	}
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), "test")
	if ctx == nil || span == nil {
		t.Fatal("StartSpan returned nil")
	}
	EndSpan(span, errors.New("boom"))

	_, span = StartSpan(context.Background(), "ok")
	EndSpan(span, nil)
}
