// Package overlay produces numbered series of document snapshots (slide
// overlays) from a single layered drawing and presentation fragments
// including them.
//
// A Session owns the document for its lifetime. Sequencing routine (Script)
// changes visibility of layers and elements and takes snapshots; every
// snapshot gets next index, but until deferred start threshold is reached
// snapshots are only counted. Fragment enumerates all snapshots taken since
// the previous fragment. Session is not safe for concurrent use.
package overlay

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"svgovl/config"
	"svgovl/raster"
	"svgovl/scape"
	"svgovl/svg"
)

// Script drives a session, it is invoked once after session is set up.
type Script func(ctx context.Context, s *Session) error

// Option configures session.
type Option func(*Session)

// WithRasterizer replaces rasterizer built from configuration.
func WithRasterizer(r raster.Rasterizer) Option {
	return func(s *Session) {
		s.rasterizer = r
	}
}

// WithReport attaches debug report, snapshots and fragments are copied there.
func WithReport(rpt *config.Report) Option {
	return func(s *Session) {
		s.rpt = rpt
	}
}

// Session drives one overlay run over a document: it mutates layers and
// elements, counts snapshots and groups emitted ones into fragments.
type Session struct {
	id    string
	scape *scape.Scape
	state State
	last  *etree.Element

	emitter    *Emitter
	fragments  *FragmentWriter
	rasterizer raster.Rasterizer
	rpt        *config.Report
	log        *zap.Logger
}

// NewSession prepares session for the document according to cfg.
func NewSession(doc *svg.Document, cfg *config.OverlayConfig, log *zap.Logger, opts ...Option) (*Session, error) {
	id := uuid.NewString()
	if v7, err := uuid.NewV7(); err == nil {
		id = v7.String()
	}
	log = log.With(zap.String("session", id))

	s := &Session{
		id:    id,
		scape: scape.New(doc, log, scape.WithExactProperties(cfg.StrictProperties)),
		state: NewState(),
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.rasterizer == nil && cfg.Rasterize {
		r, err := raster.New(&cfg.Rasterizer, log)
		if err != nil {
			return nil, fmt.Errorf("unable to prepare rasterizer: %w", err)
		}
		s.rasterizer = r
	}
	if !cfg.Rasterize {
		s.rasterizer = nil
	}

	base := doc.BaseName()
	if cfg.NameTransliterate {
		base = slug.Make(base)
	}
	base = config.CleanFileName(base)

	dir := cfg.OutputDir
	if len(dir) == 0 {
		dir = "."
	}

	s.emitter = &Emitter{
		doc:        doc,
		dir:        dir,
		base:       base,
		ext:        cfg.Rasterizer.OutputExt(),
		rasterizer: s.rasterizer,
		cleanup:    cfg.Cleanup,
		quiet:      cfg.Quiet,
		rpt:        s.rpt,
		log:        log,
	}

	tmpl := cfg.Fragment.Template
	if len(tmpl) == 0 {
		tmpl = config.DefaultFragmentTemplate
	}
	ext := cfg.Fragment.Extension
	if len(ext) == 0 {
		ext = ".tex"
	}
	var err error
	if s.fragments, err = newFragmentWriter(dir, base, ext, tmpl); err != nil {
		return nil, err
	}

	log.Debug("Session prepared",
		zap.String("source", doc.Source()),
		zap.String("base", base),
		zap.String("output", dir),
		zap.Bool("rasterize", s.rasterizer != nil))
	return s, nil
}

// Animate creates session and runs script on it.
func Animate(ctx context.Context, doc *svg.Document, cfg *config.OverlayConfig, log *zap.Logger, script Script, opts ...Option) (*Session, error) {
	s, err := NewSession(doc, cfg, log, opts...)
	if err != nil {
		return nil, err
	}
	return s, s.Run(ctx, script)
}

// Run invokes script once.
func (s *Session) Run(ctx context.Context, script Script) error {
	if script == nil {
		s.log.Warn("Nothing to animate, no script")
		return nil
	}
	if err := script(ctx, s); err != nil {
		return err
	}
	from, to := s.state.FragmentRange()
	s.log.Debug("Script finished",
		zap.Int("snapshots", s.state.SnapshotCount-1),
		zap.Int("fragments", s.state.FragmentCount-1),
		zap.Int("unreferenced", max(to-from+1, 0)))
	return nil
}

// ID returns unique session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns copy of sequencing state.
func (s *Session) State() State {
	return s.state
}

// Scape gives access to the edited document.
func (s *Session) Scape() *scape.Scape {
	return s.scape
}

// LastLayer returns layer most recently shown by ShowLayer or SwapLayer.
func (s *Session) LastLayer() *etree.Element {
	return s.last
}

// DeferUntil makes snapshots with index below index counted but not
// emitted. Document changes are still performed.
func (s *Session) DeferUntil(index int) {
	s.state.WaitThreshold = index
	s.log.Debug("Deferring snapshots", zap.Int("until", index))
}

// ShowLayer shows layer and remembers it as the last one.
func (s *Session) ShowLayer(label string) {
	s.last = s.scape.Layer(label)
	s.scape.ShowLayer(s.last)
}

// HideLayer hides layer, the last layer is not affected.
func (s *Session) HideLayer(label string) {
	s.scape.HideLayer(s.scape.Layer(label))
}

// SwapLayer hides the last layer shown and shows this one instead.
func (s *Session) SwapLayer(label string) {
	s.scape.HideLayer(s.last)
	s.ShowLayer(label)
}

// Show makes element with id visible.
func (s *Session) Show(id string) {
	s.scape.Show(id)
}

// Hide makes element with id invisible.
func (s *Session) Hide(id string) {
	s.scape.Hide(id)
}

// SetStyleProperty merges property:value into style of element with id.
func (s *Session) SetStyleProperty(id, property, value string) {
	s.scape.SetStyleProperty(id, property, value)
}

// SetAttributeProperty merges property:value into declaration kept in
// attribute of element with id.
func (s *Session) SetAttributeProperty(id, attribute, property, value string) {
	s.scape.SetAttributeProperty(id, attribute, property, value)
}

// SetAttribute sets attribute of element with id to value.
func (s *Session) SetAttribute(id, attribute, value string) {
	s.scape.SetAttribute(id, attribute, value)
}

// Save writes current document to path, sequencing is not affected.
func (s *Session) Save(path string) error {
	return s.scape.Save(path)
}

// Snapshot emits current state of the document as the next artifact or only
// counts it while deferred start threshold is not reached. Returned artifact
// is nil when snapshot was skipped.
func (s *Session) Snapshot(ctx context.Context) (*Artifact, error) {
	if s.state.Skipping() {
		s.log.Debug("Snapshot skipped", zap.Int("index", s.state.SnapshotCount), zap.Int("until", s.state.WaitThreshold))
		s.state.Advance()
		return nil, nil
	}
	a, err := s.emitter.Emit(ctx, s.state.SnapshotCount)
	if err != nil {
		return nil, fmt.Errorf("snapshot %d: %w", s.state.SnapshotCount, err)
	}
	s.state.Advance()
	return &a, nil
}

// Fragment writes presentation include file for snapshots taken since the
// previous fragment and returns its name. Prefix is prepended to every
// referenced snapshot name.
func (s *Session) Fragment(title, prefix string) (string, error) {
	from, to := s.state.FragmentRange()
	name, err := s.fragments.Write(s.state.FragmentCount, title, prefix, from, to)
	if err != nil {
		return "", fmt.Errorf("fragment %d: %w", s.state.FragmentCount, err)
	}
	s.log.Debug("Fragment written", zap.String("file", name), zap.Int("from", from), zap.Int("to", to))
	s.rpt.Store("fragments/"+filepath.Base(name), name)
	s.state.FragmentWritten()
	return name, nil
}
