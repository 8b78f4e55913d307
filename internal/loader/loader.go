// Package loader turns a path into a pane slot: either the names of a
// directory's direct children, or the entries of a previously exported
// JSON listing.
//
// Loading never fails outward. Every failure degrades to an empty entry set
// and a logged diagnostic, so callers can always publish the result.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/timvw/dir-diff/internal/logging"
	"github.com/timvw/dir-diff/internal/model"
	ddotel "github.com/timvw/dir-diff/internal/otel"
)

var tracer = otel.Tracer(ddotel.ServiceName)

// Loader reads directories and exported listings through a Source.
type Loader struct {
	source  Source
	logger  *slog.Logger
	metrics *ddotel.Metrics
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(ld *Loader) {
		if l != nil {
			ld.logger = l
		}
	}
}

// WithMetrics sets the metric recorder. A nil recorder records nothing.
func WithMetrics(m *ddotel.Metrics) Option {
	return func(ld *Loader) {
		ld.metrics = m
	}
}

// New returns a Loader reading from src.
func New(src Source, opts ...Option) *Loader {
	l := &Loader{
		source: src,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load produces the slot for path. The directory listing is tried first; if
// path cannot be listed it is read as an exported JSON listing. Origin is
// always path, even when nothing could be read.
func (l *Loader) Load(ctx context.Context, path string) model.Slot {
	ctx, span := tracer.Start(ctx, "loader.load",
		trace.WithAttributes(attribute.String("load.path", path)))
	defer span.End()

	slot := model.Slot{Origin: path, Entries: model.NewEntrySet()}
	strategy := l.load(ctx, path, &slot)

	span.SetAttributes(
		attribute.String("load.strategy", strategy),
		attribute.Int("load.entries", slot.Entries.Len()),
	)
	if strategy == ddotel.StrategyParseError || strategy == ddotel.StrategyUnreadable {
		span.SetStatus(codes.Error, strategy)
	}
	l.metrics.RecordLoad(ctx, strategy, slot.Entries.Len())
	return slot
}

func (l *Loader) load(ctx context.Context, path string, slot *model.Slot) string {
	if path == "" {
		l.logger.Error("failed to read directory/file", "path", path, "err", "empty path")
		return ddotel.StrategyUnreadable
	}

	entries, dirErr := l.source.ReadDir(path)
	if dirErr == nil || len(entries) > 0 {
		if dirErr != nil {
			l.logger.Warn("directory listing cut short", "path", path, "err", dirErr)
		}
		slot.Entries = l.collect(ctx, path, entries)
		return ddotel.StrategyDirectory
	}

	data, err := l.source.ReadFile(path)
	if err != nil {
		l.logger.Error("failed to read directory/file",
			"path", path, "dir_err", dirErr, "err", err)
		return ddotel.StrategyUnreadable
	}

	set, err := Decode(data)
	if err != nil {
		l.logger.Error("could not parse listing as JSON", "path", path, "err", err)
		return ddotel.StrategyParseError
	}
	slot.Entries = set
	return ddotel.StrategyListing
}

// collect gathers entry names, skipping entries whose metadata is unreadable.
// Names that are not valid UTF-8 are stored lossily so they survive an
// export and import unchanged.
func (l *Loader) collect(ctx context.Context, dir string, entries []fs.DirEntry) model.EntrySet {
	set := model.NewEntrySet()
	for _, e := range entries {
		if _, err := e.Info(); err != nil {
			l.logger.Warn("failed to get directory entry", "dir", dir, "entry", e.Name(), "err", err)
			l.metrics.RecordSkippedEntry(ctx)
			continue
		}
		set.Add(strings.ToValidUTF8(e.Name(), "\uFFFD"))
	}
	return set
}

// Export writes entries to path as a pretty-printed JSON array.
func (l *Loader) Export(ctx context.Context, path string, entries model.EntrySet) error {
	_, span := tracer.Start(ctx, "loader.export",
		trace.WithAttributes(
			attribute.String("export.path", path),
			attribute.Int("export.entries", entries.Len()),
		))
	defer span.End()

	data, err := Encode(entries)
	if err == nil {
		err = l.source.WriteFile(path, data, 0o644)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "export failed")
		l.metrics.RecordExport(ctx, false)
		return fmt.Errorf("export %s: %w", path, err)
	}
	l.metrics.RecordExport(ctx, true)
	return nil
}

// Encode renders entries as a sorted, two-space indented JSON array followed
// by a newline.
func Encode(entries model.EntrySet) ([]byte, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode parses a JSON array of strings. Duplicates collapse.
func Decode(data []byte) (model.EntrySet, error) {
	var set model.EntrySet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	return set, nil
}
