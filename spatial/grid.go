// Package spatial provides a uniform grid index over text fragments for
// coordinate hit-testing and region queries.
package spatial

import (
	"math"

	"github.com/tsawler/overmark/model"
)

// GridConfig holds configuration for the fragment grid
type GridConfig struct {
	// CellSize is the width and height of one grid cell in points
	// (default: 100)
	CellSize float64

	// YWeight scales the vertical component of the nearest-fragment
	// distance, biasing hits toward fragments on the same line
	// (default: 3)
	YWeight float64
}

// DefaultGridConfig returns sensible default configuration
func DefaultGridConfig() GridConfig {
	return GridConfig{
		CellSize: 100.0,
		YWeight:  3.0,
	}
}

type cellKey struct {
	col int
	row int
}

// Grid buckets fragments into uniform cells keyed by position. A fragment is
// inserted into every cell its bounding box overlaps, so lookups never miss
// a fragment that straddles a cell boundary.
type Grid struct {
	config    GridConfig
	fragments []model.TextFragment
	buckets   map[cellKey][]int
}

// NewGrid creates an empty grid with default configuration
func NewGrid() *Grid {
	return NewGridWithConfig(DefaultGridConfig())
}

// NewGridWithConfig creates an empty grid with custom configuration
func NewGridWithConfig(config GridConfig) *Grid {
	if config.CellSize <= 0 {
		config.CellSize = DefaultGridConfig().CellSize
	}
	if config.YWeight <= 0 {
		config.YWeight = DefaultGridConfig().YWeight
	}
	return &Grid{
		config:  config,
		buckets: make(map[cellKey][]int),
	}
}

// Build indexes the given fragments, replacing any previous index. The grid
// keeps the slice; callers must not mutate it afterward.
func (g *Grid) Build(fragments []model.TextFragment) {
	g.fragments = fragments
	g.buckets = make(map[cellKey][]int)

	for i := range fragments {
		box := fragments[i].BBox()
		minCol, minRow := g.cellFor(box.Left(), box.Top())
		maxCol, maxRow := g.cellFor(box.Right(), box.Bottom())

		for col := minCol; col <= maxCol; col++ {
			for row := minRow; row <= maxRow; row++ {
				key := cellKey{col, row}
				g.buckets[key] = append(g.buckets[key], i)
			}
		}
	}
}

// Len returns the number of indexed fragments
func (g *Grid) Len() int {
	return len(g.fragments)
}

// cellFor maps a coordinate to its cell column and row
func (g *Grid) cellFor(x, y float64) (int, int) {
	return int(math.Floor(x / g.config.CellSize)), int(math.Floor(y / g.config.CellSize))
}

// FindNear returns the fragment nearest to (x, y), or nil when the target
// cell and its 8 neighbors contain no fragments. A fragment whose bounding
// box contains the point is always preferred; otherwise the candidate with
// the smallest Y-weighted Manhattan distance to its box center wins.
func (g *Grid) FindNear(x, y float64) *model.TextFragment {
	p := model.Point{X: x, Y: y}
	col, row := g.cellFor(x, y)

	// Target cell plus its 3x3 neighborhood. Containment hits short-circuit.
	var best *model.TextFragment
	bestDist := math.MaxFloat64
	seen := make(map[int]bool)

	for dc := -1; dc <= 1; dc++ {
		for dr := -1; dr <= 1; dr++ {
			for _, idx := range g.buckets[cellKey{col + dc, row + dr}] {
				if seen[idx] {
					continue
				}
				seen[idx] = true

				frag := &g.fragments[idx]
				box := frag.BBox()
				if box.Contains(p) {
					return frag
				}

				dist := p.WeightedManhattan(box.Center(), g.config.YWeight)
				if dist < bestDist {
					bestDist = dist
					best = frag
				}
			}
		}
	}

	return best
}

// InRegion returns all fragments whose bounding box overlaps the given
// region. Fragments spanning multiple cells are reported once.
func (g *Grid) InRegion(region model.BBox) []*model.TextFragment {
	minCol, minRow := g.cellFor(region.Left(), region.Top())
	maxCol, maxRow := g.cellFor(region.Right(), region.Bottom())

	seen := make(map[int]bool)
	var result []*model.TextFragment

	for col := minCol; col <= maxCol; col++ {
		for row := minRow; row <= maxRow; row++ {
			for _, idx := range g.buckets[cellKey{col, row}] {
				if seen[idx] {
					continue
				}
				seen[idx] = true

				if g.fragments[idx].BBox().Intersects(region) {
					result = append(result, &g.fragments[idx])
				}
			}
		}
	}

	return result
}
