// Package pane owns the two compared slots and keeps their derived views
// (titles, listings and one-way diffs) consistent across every mutation.
//
// Operations that need a path from the user suspend on a Dialog and resume in
// its completion callback. No lock is held while a dialog is open, so a second
// operation on the same pane may start before the first resumes; whichever
// completes last wins.
package pane

import (
	"context"
	"log/slog"
	"sync"

	"github.com/timvw/dir-diff/internal/loader"
	"github.com/timvw/dir-diff/internal/logging"
	"github.com/timvw/dir-diff/internal/model"
	ddotel "github.com/timvw/dir-diff/internal/otel"
)

// Operation names recorded on the metrics recorder.
const (
	OpOpen   = "open"
	OpImport = "import"
	OpExport = "export"
	OpReload = "reload"
)

// slotCell guards one pane's slot.
type slotCell struct {
	mu   sync.Mutex
	slot model.Slot
}

func (c *slotCell) get() model.Slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slot
}

func (c *slotCell) set(s model.Slot) {
	c.mu.Lock()
	c.slot = s
	c.mu.Unlock()
}

// State is the two-pane comparison model.
type State struct {
	loader *loader.Loader
	dialog Dialog

	ctx      context.Context
	sorted   bool
	logger   *slog.Logger
	metrics  *ddotel.Metrics
	exported func(id model.PaneID, path string, err error)

	slots [2]slotCell

	presMu    sync.Mutex
	presenter Presenter
}

// Option configures a State.
type Option func(*State)

// WithSorted controls whether listings and diffs are published in lexical
// order. Default true.
func WithSorted(sorted bool) Option {
	return func(s *State) { s.sorted = sorted }
}

// WithLogger sets the logger for operation diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metric recorder.
func WithMetrics(m *ddotel.Metrics) Option {
	return func(s *State) { s.metrics = m }
}

// WithExportObserver registers fn to be told the outcome of every export
// that was not cancelled.
func WithExportObserver(fn func(id model.PaneID, path string, err error)) Option {
	return func(s *State) { s.exported = fn }
}

// WithContext sets the context loads and exports run under.
func WithContext(ctx context.Context) Option {
	return func(s *State) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// New returns a State with two empty slots.
func New(ld *loader.Loader, dialog Dialog, opts ...Option) *State {
	s := &State{
		loader: ld,
		dialog: dialog,
		ctx:    context.Background(),
		sorted: true,
		logger: logging.Discard(),
	}
	for i := range s.slots {
		s.slots[i].slot = model.Slot{Entries: model.NewEntrySet()}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *State) cell(id model.PaneID) *slotCell {
	return &s.slots[id]
}

// Bind attaches the presentation sink and publishes the current state of
// both panes to it.
func (s *State) Bind(p Presenter) {
	s.presMu.Lock()
	s.presenter = p
	s.presMu.Unlock()
	s.publish()
}

// Detach drops the presentation sink. Later publishes do nothing.
func (s *State) Detach() {
	s.presMu.Lock()
	s.presenter = nil
	s.presMu.Unlock()
}

// Open asks for a folder and loads it into pane id.
func (s *State) Open(id model.PaneID) {
	s.dialog.PickFolder(TitleOpen, func(path string, ok bool) {
		s.finishLoad(OpOpen, id, path, ok)
	})
}

// Import asks for an exported listing and loads it into pane id.
func (s *State) Import(id model.PaneID) {
	s.dialog.PickFile(TitleImport, JSONFilter, func(path string, ok bool) {
		s.finishLoad(OpImport, id, path, ok)
	})
}

// Export asks for a destination and writes pane id's entries there. The
// slots are not changed; a failed write is logged.
func (s *State) Export(id model.PaneID) {
	s.dialog.SaveFile(TitleExport, JSONFilter, func(path string, ok bool) {
		if !ok {
			s.metrics.RecordOperation(s.ctx, OpExport, id.String(), true)
			return
		}
		s.metrics.RecordOperation(s.ctx, OpExport, id.String(), false)
		entries := s.cell(id).get().Entries
		err := s.loader.Export(s.ctx, path, entries)
		if err != nil {
			s.logger.Error("failed to export list", "pane", id, "path", path, "err", err)
		} else {
			s.logger.Info("exported list", "pane", id, "path", path, "entries", entries.Len())
		}
		if s.exported != nil {
			s.exported(id, path, err)
		}
	})
}

// Reload re-reads pane id from the path it was last loaded from.
func (s *State) Reload(id model.PaneID) {
	origin := s.cell(id).get().Origin
	s.metrics.RecordOperation(s.ctx, OpReload, id.String(), false)
	s.logger.Debug("reloading pane", "pane", id, "path", origin)
	s.cell(id).set(s.loader.Load(s.ctx, origin))
	s.publish()
}

// Load replaces pane id with the contents of path without publishing.
func (s *State) Load(id model.PaneID, path string) {
	s.cell(id).set(s.loader.Load(s.ctx, path))
}

// Slot returns a snapshot of pane id's slot.
func (s *State) Slot(id model.PaneID) model.Slot {
	return s.cell(id).get()
}

// View derives the published view of pane id.
func (s *State) View(id model.PaneID) model.View {
	own := s.cell(id).get()
	other := s.cell(id.Complement()).get()
	return model.View{
		Pane:  id,
		Title: own.Origin,
		Lines: model.Lines(s.names(own.Entries)),
		Diff:  model.Lines(s.names(own.Entries.Difference(other.Entries))),
	}
}

func (s *State) finishLoad(op string, id model.PaneID, path string, ok bool) {
	s.metrics.RecordOperation(s.ctx, op, id.String(), !ok)
	if !ok {
		s.logger.Debug("dialog cancelled", "op", op, "pane", id)
		return
	}
	s.cell(id).set(s.loader.Load(s.ctx, path))
	s.publish()
}

// publish pushes the view of both panes. Both diffs change whenever either
// slot changes.
func (s *State) publish() {
	s.presMu.Lock()
	p := s.presenter
	s.presMu.Unlock()
	if p == nil {
		return
	}
	for _, id := range model.Panes {
		v := s.View(id)
		p.SetLines(id, v.Lines)
		p.SetDiff(id, v.Diff)
		p.SetTitle(id, v.Title)
	}
}

func (s *State) names(set model.EntrySet) []string {
	if s.sorted {
		return set.Sorted()
	}
	out := make([]string, 0, set.Len())
	for n := range set {
		out = append(out, n)
	}
	return out
}
