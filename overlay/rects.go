// Package overlay generates the screen-space rectangles that paint selection
// and highlight ranges.
//
// Both overlay types share one generator and one merge pass. They differ only
// in precision: selections use uniform per-character widths because they are
// recomputed on every drag frame, highlights measure the covered sub-spans
// because they are drawn once and must hug the glyphs.
package overlay

import (
	"math"
	"sort"

	"github.com/tsawler/overmark/measure"
	"github.com/tsawler/overmark/model"
	"github.com/tsawler/overmark/textmodel"
)

// Precision selects how character x-offsets within a fragment are computed
type Precision int

const (
	// Uniform spreads the fragment width evenly across its characters
	Uniform Precision = iota
	// Measured uses the text measurement surface for per-prefix widths
	Measured
)

// Config holds configuration for rectangle generation and merging
type Config struct {
	// RowTolerance is the rounding bucket, in points, used to group
	// rectangles into rows before merging (default: 5)
	RowTolerance float64

	// MergeGap is the maximum horizontal gap, in points, between two
	// rectangles on the same row that still merge into one (default: 2)
	MergeGap float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		RowTolerance: 5.0,
		MergeGap:     2.0,
	}
}

// Generator produces overlay rectangles for character ranges of a document
type Generator struct {
	model   *textmodel.Model
	surface measure.Surface
	config  Config
}

// NewGenerator creates a generator over the given model. The surface is only
// consulted at Measured precision; nil degrades Measured to Uniform.
func NewGenerator(m *textmodel.Model, surface measure.Surface) *Generator {
	return NewGeneratorWithConfig(m, surface, DefaultConfig())
}

// NewGeneratorWithConfig creates a generator with custom configuration
func NewGeneratorWithConfig(m *textmodel.Model, surface measure.Surface, config Config) *Generator {
	if config.RowTolerance <= 0 {
		config.RowTolerance = DefaultConfig().RowTolerance
	}
	if config.MergeGap <= 0 {
		config.MergeGap = DefaultConfig().MergeGap
	}
	return &Generator{model: m, surface: surface, config: config}
}

// Rects returns merged rectangles covering the half-open character range
// [start, end). Offsets are clamped to the document; separators between
// fragments produce no rectangles.
func (g *Generator) Rects(start, end int, precision Precision) []model.Rect {
	r := model.NewCharRange(start, end).Clamp(g.model.Len())
	if r.IsEmpty() {
		return nil
	}

	var rects []model.Rect
	for _, frag := range g.model.FragmentsInRange(r.Start, r.End) {
		s := r.Start
		if frag.CharStart > s {
			s = frag.CharStart
		}
		e := r.End
		if frag.CharEnd < e {
			e = frag.CharEnd
		}
		if e <= s {
			continue
		}

		x0 := frag.X + g.offsetX(frag, s-frag.CharStart, precision)
		x1 := frag.X + g.offsetX(frag, e-frag.CharStart, precision)
		if x1 <= x0 {
			continue
		}

		rects = append(rects, model.Rect{
			X:      x0,
			Y:      frag.Y,
			Width:  x1 - x0,
			Height: frag.Height,
		})
	}

	return MergeRects(rects, g.config.RowTolerance, g.config.MergeGap)
}

// offsetX computes the x-offset of character index i within a fragment
func (g *Generator) offsetX(frag *model.TextFragment, i int, precision Precision) float64 {
	n := frag.Length()
	if n == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}

	if precision == Measured && g.surface != nil {
		widths := measure.PrefixWidths(g.surface, frag.Text, frag.FontSize)
		if total := widths[n]; total > 0 {
			return widths[i] * (frag.Width / total)
		}
	}

	return float64(i) * (frag.Width / float64(n))
}

// MergeRects coalesces adjacent rectangles: group by Y rounded to the row
// tolerance, sort each row by X, and merge neighbors whose horizontal gap is
// at most maxGap. Both overlay types use this exact pass so they render
// consistently.
func MergeRects(rects []model.Rect, rowTolerance, maxGap float64) []model.Rect {
	if len(rects) <= 1 {
		return rects
	}

	rows := make(map[float64][]model.Rect)
	for _, r := range rects {
		key := math.Round(r.Y/rowTolerance) * rowTolerance
		rows[key] = append(rows[key], r)
	}

	keys := make([]float64, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	var merged []model.Rect
	for _, k := range keys {
		row := rows[k]
		sort.Slice(row, func(i, j int) bool { return row[i].X < row[j].X })

		current := row[0]
		for _, r := range row[1:] {
			gap := r.X - (current.X + current.Width)
			if gap <= maxGap && r.Color == current.Color {
				right := current.X + current.Width
				if r.X+r.Width > right {
					right = r.X + r.Width
				}
				current.Width = right - current.X
				if r.Y < current.Y {
					bottom := current.Y + current.Height
					current.Y = r.Y
					current.Height = bottom - current.Y
				}
				if r.Y+r.Height > current.Y+current.Height {
					current.Height = r.Y + r.Height - current.Y
				}
			} else {
				merged = append(merged, current)
				current = r
			}
		}
		merged = append(merged, current)
	}

	return merged
}
