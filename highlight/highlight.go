// Package highlight manages the persistent, styled, annotated ranges of a
// document view. Highlights live independently of selections: clearing a
// selection never touches them, and they survive layout passes by
// re-clamping against the rebuilt text model.
package highlight

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tsawler/overmark/model"
	"github.com/tsawler/overmark/overlay"
	"github.com/tsawler/overmark/textmodel"
)

// Highlight is one persistent highlighted range
type Highlight struct {
	ID        string
	Range     model.CharRange
	Color     string
	Note      string
	Metadata  map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Attrs carries the styling for a new highlight
type Attrs struct {
	Color    string
	Note     string
	Metadata map[string]any
}

// Patch is a partial update: nil fields are left untouched
type Patch struct {
	Color    *string
	Note     *string
	Metadata map[string]any
}

// Store owns the highlights of one document view
type Store struct {
	model  *textmodel.Model
	gen    *overlay.Generator
	logger *slog.Logger

	highlights []*Highlight
	notifier   notifier
	now        func() time.Time
}

// NewStore creates a highlight store over the given model and rectangle
// generator. A nil logger uses slog.Default().
func NewStore(m *textmodel.Model, gen *overlay.Generator, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		model:  m,
		gen:    gen,
		logger: logger,
		now:    time.Now,
	}
	s.notifier.logger = logger
	return s
}

// Add creates a highlight over the half-open range [start, end), assigning
// a stable unique id and timestamps. Offsets are normalized and clamped.
func (s *Store) Add(start, end int, attrs Attrs) *Highlight {
	now := s.now()
	h := &Highlight{
		ID:        uuid.NewString(),
		Range:     model.NewCharRange(start, end).Clamp(s.model.Len()),
		Color:     attrs.Color,
		Note:      attrs.Note,
		Metadata:  attrs.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.highlights = append(s.highlights, h)
	s.notifier.dispatch(Event{Kind: Added, Highlight: h})
	return h
}

// Get returns the highlight with the given id, or nil when unknown
func (s *Store) Get(id string) *Highlight {
	for _, h := range s.highlights {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// Update patches a highlight's color, note, or metadata and bumps its
// UpdatedAt. It returns false for an unknown id.
func (s *Store) Update(id string, patch Patch) bool {
	h := s.Get(id)
	if h == nil {
		return false
	}

	if patch.Color != nil {
		h.Color = *patch.Color
	}
	if patch.Note != nil {
		h.Note = *patch.Note
	}
	if patch.Metadata != nil {
		h.Metadata = patch.Metadata
	}
	h.UpdatedAt = s.now()

	s.notifier.dispatch(Event{Kind: Updated, Highlight: h})
	return true
}

// Remove deletes a highlight by id, reporting whether it existed
func (s *Store) Remove(id string) bool {
	for i, h := range s.highlights {
		if h.ID == id {
			s.highlights = append(s.highlights[:i], s.highlights[i+1:]...)
			s.notifier.dispatch(Event{Kind: Removed, Highlight: h})
			return true
		}
	}
	return false
}

// RemoveInRange deletes every highlight whose half-open interval overlaps
// [start, end). Touching at a boundary is not overlap. It returns the
// number removed.
func (s *Store) RemoveInRange(start, end int) int {
	query := model.NewCharRange(start, end)

	removed := 0
	keep := s.highlights[:0]
	var dropped []*Highlight
	for _, h := range s.highlights {
		if h.Range.Overlaps(query) {
			dropped = append(dropped, h)
			removed++
		} else {
			keep = append(keep, h)
		}
	}
	s.highlights = keep

	for _, h := range dropped {
		s.notifier.dispatch(Event{Kind: Removed, Highlight: h})
	}
	return removed
}

// Clear removes all highlights
func (s *Store) Clear() {
	s.highlights = nil
	s.notifier.dispatch(Event{Kind: Cleared})
}

// Len returns the number of highlights
func (s *Store) Len() int {
	return len(s.highlights)
}

// All returns the highlights sorted by start offset
func (s *Store) All() []*Highlight {
	out := make([]*Highlight, len(s.highlights))
	copy(out, s.highlights)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Range.Start < out[j].Range.Start
	})
	return out
}

// ByColor returns the highlights with the given color
func (s *Store) ByColor(color string) []*Highlight {
	var out []*Highlight
	for _, h := range s.highlights {
		if h.Color == color {
			out = append(out, h)
		}
	}
	return out
}

// ByColorCategory returns the highlights whose color falls in the given
// named category (see ColorCategory)
func (s *Store) ByColorCategory(category string) []*Highlight {
	var out []*Highlight
	for _, h := range s.highlights {
		if ColorCategory(h.Color) == category {
			out = append(out, h)
		}
	}
	return out
}

// WithNotes returns the highlights carrying a non-empty trimmed note
func (s *Store) WithNotes() []*Highlight {
	var out []*Highlight
	for _, h := range s.highlights {
		if strings.TrimSpace(h.Note) != "" {
			out = append(out, h)
		}
	}
	return out
}

// At returns the highlights containing the given position, pos in
// [start, end)
func (s *Store) At(pos int) []*Highlight {
	var out []*Highlight
	for _, h := range s.highlights {
		if h.Range.ContainsOffset(pos) {
			out = append(out, h)
		}
	}
	return out
}

// Overlapping returns the highlights overlapping the half-open range
// [start, end)
func (s *Store) Overlapping(start, end int) []*Highlight {
	query := model.NewCharRange(start, end)
	var out []*Highlight
	for _, h := range s.highlights {
		if h.Range.Overlaps(query) {
			out = append(out, h)
		}
	}
	return out
}

// Text returns the document text covered by a highlight
func (s *Store) Text(h *Highlight) string {
	if h == nil {
		return ""
	}
	return s.model.GetText(h.Range.Start, h.Range.End)
}

// Rects returns the screen rectangles painting a highlight, carrying its
// color. Highlights use measured precision: they are not recomputed per
// frame, so they trade drag-time speed for visual accuracy.
func (s *Store) Rects(h *Highlight) []model.Rect {
	if h == nil {
		return nil
	}
	rects := s.gen.Rects(h.Range.Start, h.Range.End, overlay.Measured)
	for i := range rects {
		rects[i].Color = h.Color
	}
	return rects
}

// Reclamp constrains every highlight to the current document length and
// drops those that collapse to nothing. Called after the model rebuilds.
func (s *Store) Reclamp() {
	keep := s.highlights[:0]
	var dropped []*Highlight
	for _, h := range s.highlights {
		h.Range = h.Range.Clamp(s.model.Len())
		if h.Range.IsEmpty() {
			dropped = append(dropped, h)
		} else {
			keep = append(keep, h)
		}
	}
	s.highlights = keep

	for _, h := range dropped {
		s.notifier.dispatch(Event{Kind: Removed, Highlight: h})
	}
}
