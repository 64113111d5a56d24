// Package selection manages transient selection ranges over the text model:
// drag selections, search results, and smart expansions. Selections never
// outlive a layout pass the way highlights do; consumers clear or re-clamp
// them when the model rebuilds.
package selection

import (
	"sort"

	"github.com/google/uuid"
	"github.com/tsawler/overmark/model"
	"github.com/tsawler/overmark/overlay"
	"github.com/tsawler/overmark/textmodel"
)

// Type classifies a selection by its origin
type Type string

const (
	// TypeUser is a pointer-driven drag selection
	TypeUser Type = "user"
	// TypeSearch marks a search result
	TypeSearch Type = "search"
	// TypeSmart is a heuristic expansion (word/sentence/line/all)
	TypeSmart Type = "smart"
	// TypeAnnotation is a selection pending conversion to a highlight
	TypeAnnotation Type = "annotation"
)

// Selection is one transient selected range
type Selection struct {
	ID       string
	Range    model.CharRange
	Type     Type
	Metadata map[string]any
}

// Manager owns the selections of one document view
type Manager struct {
	model *textmodel.Model
	gen   *overlay.Generator

	// Creation order; Primary walks this backward
	selections []*Selection
}

// NewManager creates a selection manager over the given model and rectangle
// generator
func NewManager(m *textmodel.Model, gen *overlay.Generator) *Manager {
	return &Manager{model: m, gen: gen}
}

// Create adds a selection. Offsets are normalized so start <= end regardless
// of argument order, then clamped to the document.
func (mgr *Manager) Create(start, end int, typ Type, metadata map[string]any) *Selection {
	sel := &Selection{
		ID:       uuid.NewString(),
		Range:    model.NewCharRange(start, end).Clamp(mgr.model.Len()),
		Type:     typ,
		Metadata: metadata,
	}
	mgr.selections = append(mgr.selections, sel)
	return sel
}

// Get returns the selection with the given id, or nil when unknown
func (mgr *Manager) Get(id string) *Selection {
	for _, sel := range mgr.selections {
		if sel.ID == id {
			return sel
		}
	}
	return nil
}

// Update mutates a selection's range in place. It returns false for an
// unknown id; it never fails for out-of-range offsets, which are clamped.
func (mgr *Manager) Update(id string, start, end int) bool {
	sel := mgr.Get(id)
	if sel == nil {
		return false
	}
	sel.Range = model.NewCharRange(start, end).Clamp(mgr.model.Len())
	return true
}

// Remove deletes a selection by id, reporting whether it existed
func (mgr *Manager) Remove(id string) bool {
	for i, sel := range mgr.selections {
		if sel.ID == id {
			mgr.selections = append(mgr.selections[:i], mgr.selections[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every selection of the given type, or all selections when
// no type is given
func (mgr *Manager) Clear(types ...Type) {
	if len(types) == 0 {
		mgr.selections = nil
		return
	}

	keep := mgr.selections[:0]
	for _, sel := range mgr.selections {
		drop := false
		for _, t := range types {
			if sel.Type == t {
				drop = true
				break
			}
		}
		if !drop {
			keep = append(keep, sel)
		}
	}
	mgr.selections = keep
}

// Primary returns the most recently created user-type selection, or nil
func (mgr *Manager) Primary() *Selection {
	for i := len(mgr.selections) - 1; i >= 0; i-- {
		if mgr.selections[i].Type == TypeUser {
			return mgr.selections[i]
		}
	}
	return nil
}

// All returns the selections in creation order
func (mgr *Manager) All() []*Selection {
	out := make([]*Selection, len(mgr.selections))
	copy(out, mgr.selections)
	return out
}

// FindOverlapping returns the selections whose half-open range shares at
// least one character with [start, end)
func (mgr *Manager) FindOverlapping(start, end int) []*Selection {
	query := model.NewCharRange(start, end)
	var out []*Selection
	for _, sel := range mgr.selections {
		if sel.Range.Overlaps(query) {
			out = append(out, sel)
		}
	}
	return out
}

// MergeOverlapping coalesces touching or overlapping selections of the same
// type into single ranges. The survivor of each merged run is the earliest
// by start offset; the absorbed selections are removed. Used for cleanup
// passes, not live dragging.
func (mgr *Manager) MergeOverlapping() {
	byType := make(map[Type][]*Selection)
	for _, sel := range mgr.selections {
		byType[sel.Type] = append(byType[sel.Type], sel)
	}

	var merged []*Selection
	for _, group := range byType {
		sort.Slice(group, func(i, j int) bool {
			return group[i].Range.Start < group[j].Range.Start
		})

		current := group[0]
		for _, sel := range group[1:] {
			if current.Range.Touches(sel.Range) {
				current.Range = current.Range.Union(sel.Range)
			} else {
				merged = append(merged, current)
				current = sel
			}
		}
		merged = append(merged, current)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Range.Start < merged[j].Range.Start
	})
	mgr.selections = merged
}

// SetSelection is the drag-time entry point: it replaces the current user
// selection (creating one if needed) with the normalized range
func (mgr *Manager) SetSelection(start, end int) *Selection {
	if sel := mgr.Primary(); sel != nil {
		sel.Range = model.NewCharRange(start, end).Clamp(mgr.model.Len())
		return sel
	}
	return mgr.Create(start, end, TypeUser, nil)
}

// Text returns the document text covered by a selection
func (mgr *Manager) Text(sel *Selection) string {
	if sel == nil {
		return ""
	}
	return mgr.model.GetText(sel.Range.Start, sel.Range.End)
}

// Rects returns the screen rectangles painting a selection. Selections use
// uniform per-character widths: cheap enough to recompute on every drag
// frame.
func (mgr *Manager) Rects(sel *Selection) []model.Rect {
	if sel == nil {
		return nil
	}
	return mgr.gen.Rects(sel.Range.Start, sel.Range.End, overlay.Uniform)
}

// Reclamp constrains every selection to the current document length and
// drops those that collapse to nothing. Called after the model rebuilds.
func (mgr *Manager) Reclamp() {
	keep := mgr.selections[:0]
	for _, sel := range mgr.selections {
		sel.Range = sel.Range.Clamp(mgr.model.Len())
		if !sel.Range.IsEmpty() {
			keep = append(keep, sel)
		}
	}
	mgr.selections = keep
}
