package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Load strategies recorded by RecordLoad.
const (
	StrategyDirectory  = "directory"   // listed as a directory
	StrategyListing    = "listing"     // parsed as an exported JSON listing
	StrategyParseError = "parse_error" // read as a file but not a JSON listing
	StrategyUnreadable = "unreadable"  // neither a directory nor a readable file
)

// Metrics holds all OTEL metric instruments for dir-diff.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Loads partitioned by strategy.
	Loads metric.Int64Counter
	// Entries collected per load.
	LoadedEntries metric.Int64Histogram
	// Per-entry enumeration failures (entry skipped).
	SkippedEntries metric.Int64Counter
	// Exports partitioned by outcome: ok, error.
	Exports metric.Int64Counter
	// Pane operations partitioned by op (open, import, export, reload) and
	// outcome (done, cancelled).
	Operations metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(ServiceName)
	m := &Metrics{}
	var err error

	m.Loads, err = meter.Int64Counter("loader.loads",
		metric.WithDescription("Pane loads partitioned by the strategy that produced the entry set"))
	if err != nil {
		return nil, err
	}

	m.LoadedEntries, err = meter.Int64Histogram("loader.entries",
		metric.WithDescription("Number of entries collected by a single load"),
		metric.WithUnit("{entry}"))
	if err != nil {
		return nil, err
	}

	m.SkippedEntries, err = meter.Int64Counter("loader.skipped_entries",
		metric.WithDescription("Directory entries skipped because their metadata could not be read"),
		metric.WithUnit("{entry}"))
	if err != nil {
		return nil, err
	}

	m.Exports, err = meter.Int64Counter("export.total",
		metric.WithDescription("Listing exports partitioned by outcome (ok, error)"))
	if err != nil {
		return nil, err
	}

	m.Operations, err = meter.Int64Counter("pane.operations",
		metric.WithDescription("Pane operations partitioned by op and outcome"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordLoad records one load with its strategy and resulting entry count.
func (m *Metrics) RecordLoad(ctx context.Context, strategy string, entries int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("load.strategy", strategy))
	m.Loads.Add(ctx, 1, attrs)
	m.LoadedEntries.Record(ctx, int64(entries), attrs)
}

// RecordSkippedEntry records a directory entry dropped during enumeration.
func (m *Metrics) RecordSkippedEntry(ctx context.Context) {
	if m == nil {
		return
	}
	m.SkippedEntries.Add(ctx, 1)
}

// RecordExport records an export attempt.
func (m *Metrics) RecordExport(ctx context.Context, ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.Exports.Add(ctx, 1, metric.WithAttributes(attribute.String("export.outcome", outcome)))
}

// RecordOperation records a pane operation. cancelled is true when the user
// dismissed the dialog.
func (m *Metrics) RecordOperation(ctx context.Context, op, pane string, cancelled bool) {
	if m == nil {
		return
	}
	outcome := "done"
	if cancelled {
		outcome = "cancelled"
	}
	m.Operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pane.op", op),
		attribute.String("pane.id", pane),
		attribute.String("pane.outcome", outcome),
	))
}
