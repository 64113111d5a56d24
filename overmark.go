// Package overmark wires the text model, selection, highlight, and input
// layers into one document view.
//
// Basic usage:
//
//	view := overmark.New(nil)
//	view.Refresh(fragments)
//
//	view.Input().PointerDown(x, y, time.Now())
//	view.Input().PointerMove(x2, y2)
//	view.Input().Frame()
//	view.Input().PointerUp(x2, y2)
//
//	rects := view.SelectionRects(scrollX, scrollY)
//
// Every View is self-contained; multiple views over different documents
// coexist in one process with no shared state.
package overmark

import (
	"log/slog"

	"github.com/tsawler/overmark/config"
	"github.com/tsawler/overmark/highlight"
	"github.com/tsawler/overmark/input"
	"github.com/tsawler/overmark/measure"
	"github.com/tsawler/overmark/model"
	"github.com/tsawler/overmark/overlay"
	"github.com/tsawler/overmark/selection"
	"github.com/tsawler/overmark/textmodel"
)

// View is one independent document view: a text model built from the layout
// collaborator's fragments plus the selection, highlight, and pointer state
// layered on top of it.
type View struct {
	config config.Config
	logger *slog.Logger

	surface    measure.Surface
	model      *textmodel.Model
	generator  *overlay.Generator
	selections *selection.Manager
	highlights *highlight.Store
	input      *input.Coordinator
}

// New creates a view with default configuration. A nil logger uses
// slog.Default().
func New(logger *slog.Logger) *View {
	return NewWithConfig(config.Default(), logger)
}

// NewWithConfig creates a view with custom configuration.
func NewWithConfig(cfg config.Config, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}

	surface := measure.NewSurface(logger)
	m := textmodel.New(cfg.TextModelConfig(), surface)
	gen := overlay.NewGeneratorWithConfig(m, surface, cfg.OverlayConfig())
	selections := selection.NewManager(m, gen)

	return &View{
		config:     cfg,
		logger:     logger,
		surface:    surface,
		model:      m,
		generator:  gen,
		selections: selections,
		highlights: highlight.NewStore(m, gen, logger),
		input:      input.NewCoordinatorWithConfig(m, selections, logger, cfg.InputConfig()),
	}
}

// Refresh rebuilds the text model from a full fragment list. The layout
// collaborator calls this on every layout pass; rebuilds are wholesale, not
// incremental. Selections and highlights computed against the superseded
// model are clamped to the new document or dropped.
func (v *View) Refresh(fragments []model.TextFragment) {
	v.model.Build(fragments)
	v.selections.Reclamp()
	v.highlights.Reclamp()
}

// Model returns the view's text model.
func (v *View) Model() *textmodel.Model {
	return v.model
}

// Selections returns the view's selection manager.
func (v *View) Selections() *selection.Manager {
	return v.selections
}

// Highlights returns the view's highlight store.
func (v *View) Highlights() *highlight.Store {
	return v.highlights
}

// Input returns the view's pointer gesture coordinator.
func (v *View) Input() *input.Coordinator {
	return v.input
}

// Config returns the configuration the view was built with.
func (v *View) Config() config.Config {
	return v.config
}

// SelectionRects returns the primary selection's overlay rectangles shifted
// into viewport space by the given scroll offset. Nil when there is no
// selection.
func (v *View) SelectionRects(scrollX, scrollY float64) []model.Rect {
	sel := v.selections.Primary()
	if sel == nil {
		return nil
	}
	return model.TranslateRects(v.selections.Rects(sel), scrollX, scrollY)
}

// HighlightRects returns the overlay rectangles of every highlight shifted
// into viewport space, each carrying its highlight's color.
func (v *View) HighlightRects(scrollX, scrollY float64) []model.Rect {
	var out []model.Rect
	for _, h := range v.highlights.All() {
		out = append(out, v.highlights.Rects(h)...)
	}
	return model.TranslateRects(out, scrollX, scrollY)
}
