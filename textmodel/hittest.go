package textmodel

import (
	"math"

	"github.com/tsawler/overmark/measure"
	"github.com/tsawler/overmark/model"
)

// CoordinatesToOffset maps a screen-space point to the nearest global
// character offset. The second return is false only when the document has no
// fragments at all.
func (m *Model) CoordinatesToOffset(x, y float64) (int, bool) {
	return m.coordinatesToOffset(x, y, nil)
}

// CoordinatesToOffsetAnchored is CoordinatesToOffset for a selection in
// progress. When the click is far from the anchor on the anchor's own line,
// empty-space resolution biases candidates toward fragments consistent with
// the drag direction.
func (m *Model) CoordinatesToOffsetAnchored(x, y float64, anchor model.Point) (int, bool) {
	return m.coordinatesToOffset(x, y, &anchor)
}

func (m *Model) coordinatesToOffset(x, y float64, anchor *model.Point) (int, bool) {
	if len(m.fragments) == 0 {
		return 0, false
	}

	// Grid lookup covers the target cell and its 8 neighbors; an exact bbox
	// hit or a near fragment resolves directly.
	if frag := m.grid.FindNear(x, y); frag != nil {
		return m.offsetWithinFragment(frag, x), true
	}

	// Click landed in an empty margin or gap. Fall back to the nearest line.
	line := m.nearestLine(y)
	if line == nil {
		return 0, false
	}

	return m.offsetOnLine(line, x, anchor), true
}

// nearestLine returns the line whose vertical band is closest to y
func (m *Model) nearestLine(y float64) *Line {
	var best *Line
	bestDist := math.MaxFloat64

	for i := range m.lines {
		line := &m.lines[i]
		dist := 0.0
		switch {
		case y < line.BBox.Top():
			dist = line.BBox.Top() - y
		case y > line.BBox.Bottom():
			dist = y - line.BBox.Bottom()
		}
		if dist < bestDist {
			bestDist = dist
			best = line
		}
	}

	return best
}

// offsetOnLine resolves a horizontal coordinate to an offset within a line:
// before-start and after-end clamp to the line's edges, a click between two
// fragments bisects the gap, and anything else takes the fragment nearest by
// center distance.
func (m *Model) offsetOnLine(line *Line, x float64, anchor *model.Point) int {
	first := &m.fragments[line.Fragments[0]]
	last := &m.fragments[line.Fragments[len(line.Fragments)-1]]

	if x <= line.BBox.Left() {
		return first.CharStart
	}
	if x >= line.BBox.Right() {
		return last.CharEnd
	}

	// Inside the line band. A direct bbox hit wins.
	for _, idx := range line.Fragments {
		frag := &m.fragments[idx]
		if x >= frag.X && x <= frag.X+frag.Width {
			return m.offsetWithinFragment(frag, x)
		}
	}

	// Between two fragments: assign to whichever side of the gap midpoint
	// the click falls.
	for i := 0; i < len(line.Fragments)-1; i++ {
		prev := &m.fragments[line.Fragments[i]]
		next := &m.fragments[line.Fragments[i+1]]
		if x > prev.X+prev.Width && x < next.X {
			mid := (prev.X + prev.Width + next.X) / 2
			if x < mid {
				return prev.CharEnd
			}
			return next.CharStart
		}
	}

	// Nearest by center distance, with directional bias when dragging far
	// from an anchor on this line.
	candidates := line.Fragments
	if anchor != nil && m.anchorOnLine(line, *anchor) &&
		absFloat(x-anchor.X) > m.config.DirectionalBiasDistance {
		if biased := m.directionConsistent(line, *anchor, x); len(biased) > 0 {
			candidates = biased
		}
	}

	best := candidates[0]
	bestDist := math.MaxFloat64
	p := model.Point{X: x, Y: line.BBox.Center().Y}
	for _, idx := range candidates {
		d := p.Distance(m.fragments[idx].BBox().Center())
		if d < bestDist {
			bestDist = d
			best = idx
		}
	}

	return m.offsetWithinFragment(&m.fragments[best], x)
}

// anchorOnLine reports whether the anchor point falls in the line's band
func (m *Model) anchorOnLine(line *Line, anchor model.Point) bool {
	return anchor.Y >= line.BBox.Top() && anchor.Y <= line.BBox.Bottom()
}

// directionConsistent returns the line's fragments lying on the drag side of
// the anchor: ahead of it for a forward drag, behind for a backward one
func (m *Model) directionConsistent(line *Line, anchor model.Point, x float64) []int {
	forward := x > anchor.X
	var out []int
	for _, idx := range line.Fragments {
		center := m.fragments[idx].BBox().Center().X
		if (forward && center >= anchor.X) || (!forward && center <= anchor.X) {
			out = append(out, idx)
		}
	}
	return out
}

// offsetWithinFragment finds the character offset inside a fragment for a
// click X. With a measuring surface it scans cumulative prefix widths and
// snaps to whichever side of the straddling character's midpoint the click
// is closer to; without one it degrades to proportional math.
func (m *Model) offsetWithinFragment(frag *model.TextFragment, x float64) int {
	n := frag.Length()
	if n == 0 {
		return frag.CharStart
	}

	relX := x - frag.X
	if relX <= 0 {
		return frag.CharStart
	}
	if relX >= frag.Width {
		return frag.CharEnd
	}

	if m.surface == nil {
		return frag.CharStart + proportionalIndex(relX, frag.Width, n)
	}

	widths := measure.PrefixWidths(m.surface, frag.Text, frag.FontSize)
	total := widths[n]
	if total <= 0 {
		return frag.CharStart + proportionalIndex(relX, frag.Width, n)
	}

	// Rescale measured widths into the fragment's laid-out width.
	scale := frag.Width / total
	for i := 0; i < n; i++ {
		left := widths[i] * scale
		right := widths[i+1] * scale
		if relX >= left && relX < right {
			if relX > (left+right)/2 {
				return frag.CharStart + i + 1
			}
			return frag.CharStart + i
		}
	}

	return frag.CharEnd
}

// proportionalIndex assumes uniform character widths within the fragment
func proportionalIndex(relX, width float64, n int) int {
	idx := int(math.Round(relX / width * float64(n)))
	if idx < 0 {
		idx = 0
	}
	if idx > n {
		idx = n
	}
	return idx
}
