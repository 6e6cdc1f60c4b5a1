package metrics

import (
	"context"
	"fmt"

	"github.com/Garsondee/Eva-Sense/internal/locomotion"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/Garsondee/Eva-Sense/internal/metrics"

// Recorder counts governor events. It satisfies locomotion.Telemetry.
type Recorder struct {
	modeChanges metric.Int64Counter
	arrivals    metric.Int64Counter
	recoveries  metric.Int64Counter
	breakFrees  metric.Int64Counter
}

var _ locomotion.Telemetry = (*Recorder)(nil)

// New creates a Recorder on the global OTel meter (no-op if not configured).
func New() (*Recorder, error) {
	return NewWithMeter(otel.Meter(instrumentationName))
}

// NewWithMeter creates a Recorder on m.
func NewWithMeter(m metric.Meter) (*Recorder, error) {
	r := &Recorder{}
	var err error

	r.modeChanges, err = m.Int64Counter(
		"eva.mode.changes",
		metric.WithDescription("Navigation mode transitions"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating mode change counter: %w", err)
	}

	r.arrivals, err = m.Int64Counter(
		"eva.arrivals",
		metric.WithDescription("Ticks on which the active strategy reported arrival"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating arrival counter: %w", err)
	}

	r.recoveries, err = m.Int64Counter(
		"eva.ragdoll.recoveries",
		metric.WithDescription("Ragdoll recoveries started"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating recovery counter: %w", err)
	}

	r.breakFrees, err = m.Int64Counter(
		"eva.break_free",
		metric.WithDescription("Orders cancelled by manual input"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating break free counter: %w", err)
	}

	return r, nil
}

func (r *Recorder) ModeChanged(from, to locomotion.Mode, reason string) {
	ctx := context.Background()
	r.modeChanges.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
		attribute.String("reason", reason),
	))
	if reason == "break free" {
		r.breakFrees.Add(ctx, 1)
	}
}

func (r *Recorder) Arrived(mode locomotion.Mode) {
	r.arrivals.Add(context.Background(), 1, metric.WithAttributes(attribute.String("mode", mode.String())))
}

func (r *Recorder) RecoveryTriggered() {
	r.recoveries.Add(context.Background(), 1)
}
