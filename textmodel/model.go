// Package textmodel reconciles the positioned text fragments supplied by the
// layout pipeline into one logical character stream with stable global
// offsets, line and page structure, and a spatial index for hit-testing.
package textmodel

import (
	"sort"
	"strings"

	"github.com/tsawler/overmark/measure"
	"github.com/tsawler/overmark/model"
	"github.com/tsawler/overmark/spatial"
)

// Config holds configuration for document building and hit-testing
type Config struct {
	// LineHeightTolerance is the Y-distance tolerance for grouping
	// fragments into lines as a fraction of fragment height (default: 0.5)
	LineHeightTolerance float64

	// SyntheticSpaceRatio is the horizontal gap, as a fraction of fragment
	// height, beyond which a synthetic space separates two fragments on the
	// same line (default: 0.3)
	SyntheticSpaceRatio float64

	// DirectionalBiasDistance is how far (in points) a click must be from
	// the drag anchor before empty-space hit-testing biases candidates
	// toward the selection direction. Empirically tuned (default: 50).
	DirectionalBiasDistance float64

	// Grid configures the spatial index
	Grid spatial.GridConfig
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		LineHeightTolerance:     0.5,
		SyntheticSpaceRatio:     0.3,
		DirectionalBiasDistance: 50.0,
		Grid:                    spatial.DefaultGridConfig(),
	}
}

// Line is one visual line of the document: consecutive fragments whose Y
// positions fall within the clustering tolerance
type Line struct {
	// BBox is the union of the line's fragment boxes
	BBox model.BBox

	// Fragments are indices into the model's fragment slice, sorted by X
	Fragments []int

	// Index is the line's position in the document (0-based)
	Index int

	// PageIndex is the page the line belongs to
	PageIndex int

	// CharStart and CharEnd are the global offsets covered by the line's
	// fragments, half-open
	CharStart int
	CharEnd   int
}

// Page groups the lines sharing a page index
type Page struct {
	Index     int
	Lines     []int
	CharStart int
	CharEnd   int
}

// Model is the canonical text model for one document view. Every layout pass
// rebuilds it wholesale; all derived structures (offsets, lines, pages,
// spatial index) are replaced atomically by Build.
type Model struct {
	config  Config
	surface measure.Surface

	fragments []model.TextFragment
	runes     []rune
	text      string
	lines     []Line
	pages     []Page
	grid      *spatial.Grid
	version   uint64
}

// New creates an empty text model. A nil surface degrades sub-character
// placement to proportional math.
func New(config Config, surface measure.Surface) *Model {
	if config.LineHeightTolerance <= 0 {
		config.LineHeightTolerance = DefaultConfig().LineHeightTolerance
	}
	if config.SyntheticSpaceRatio <= 0 {
		config.SyntheticSpaceRatio = DefaultConfig().SyntheticSpaceRatio
	}
	if config.DirectionalBiasDistance <= 0 {
		config.DirectionalBiasDistance = DefaultConfig().DirectionalBiasDistance
	}

	return &Model{
		config:  config,
		surface: surface,
		grid:    spatial.NewGridWithConfig(config.Grid),
	}
}

// Build rebuilds the model from a full fragment set, assigning contiguous
// character ranges in reading order (page, then Y within tolerance, then X)
// and inserting synthetic separators: a newline where the vertical gap
// exceeds the line tolerance or the page changes, a space where the
// horizontal gap exceeds SyntheticSpaceRatio times the fragment height.
func (m *Model) Build(fragments []model.TextFragment) {
	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	m.sortReadingOrder(sorted)

	var sb strings.Builder
	offset := 0

	for i := range sorted {
		if i > 0 {
			sep := m.separatorBetween(&sorted[i-1], &sorted[i])
			if sep != 0 {
				sb.WriteRune(sep)
				offset++
			}
		}

		n := sorted[i].Length()
		sorted[i].CharStart = offset
		sorted[i].CharEnd = offset + n
		sb.WriteString(sorted[i].Text)
		offset += n
	}

	m.fragments = sorted
	m.text = sb.String()
	m.runes = []rune(m.text)
	m.buildLines()
	m.buildPages()
	m.grid = spatial.NewGridWithConfig(m.config.Grid)
	m.grid.Build(m.fragments)
	m.version++
}

// Version increments on every rebuild. Consumers holding ranges computed
// against an older version must re-clamp or drop them before rendering.
func (m *Model) Version() uint64 {
	return m.version
}

// sortReadingOrder sorts fragments by page, then Y within the line
// tolerance, then X
func (m *Model) sortReadingOrder(fragments []model.TextFragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		if fragments[i].PageIndex != fragments[j].PageIndex {
			return fragments[i].PageIndex < fragments[j].PageIndex
		}

		yDiff := fragments[i].Y - fragments[j].Y
		if absFloat(yDiff) > m.lineTolerance(&fragments[i], &fragments[j]) {
			return yDiff < 0
		}

		return fragments[i].X < fragments[j].X
	})
}

// lineTolerance returns the Y tolerance for treating two fragments as the
// same line
func (m *Model) lineTolerance(a, b *model.TextFragment) float64 {
	h := a.Height
	if b.Height > h {
		h = b.Height
	}
	return h * m.config.LineHeightTolerance
}

// separatorBetween decides the synthetic separator between two consecutive
// fragments in reading order, or 0 for none
func (m *Model) separatorBetween(prev, next *model.TextFragment) rune {
	if next.PageIndex != prev.PageIndex {
		return '\n'
	}
	if absFloat(next.Y-prev.Y) > m.lineTolerance(prev, next) {
		return '\n'
	}

	gap := next.X - (prev.X + prev.Width)
	if gap > prev.Height*m.config.SyntheticSpaceRatio {
		return ' '
	}
	return 0
}

// buildLines clusters the sorted fragments into lines
func (m *Model) buildLines() {
	m.lines = nil
	if len(m.fragments) == 0 {
		return
	}

	current := Line{
		BBox:      m.fragments[0].BBox(),
		Fragments: []int{0},
		PageIndex: m.fragments[0].PageIndex,
		CharStart: m.fragments[0].CharStart,
		CharEnd:   m.fragments[0].CharEnd,
	}

	for i := 1; i < len(m.fragments); i++ {
		frag := &m.fragments[i]
		prev := &m.fragments[current.Fragments[len(current.Fragments)-1]]

		sameLine := frag.PageIndex == prev.PageIndex &&
			absFloat(frag.Y-prev.Y) <= m.lineTolerance(prev, frag)

		if sameLine {
			current.Fragments = append(current.Fragments, i)
			current.BBox = current.BBox.Union(frag.BBox())
			current.CharEnd = frag.CharEnd
		} else {
			current.Index = len(m.lines)
			m.lines = append(m.lines, current)
			current = Line{
				BBox:      frag.BBox(),
				Fragments: []int{i},
				PageIndex: frag.PageIndex,
				CharStart: frag.CharStart,
				CharEnd:   frag.CharEnd,
			}
		}
	}

	current.Index = len(m.lines)
	m.lines = append(m.lines, current)
}

// buildPages groups lines by page index
func (m *Model) buildPages() {
	m.pages = nil

	for i := range m.lines {
		line := &m.lines[i]
		if len(m.pages) == 0 || m.pages[len(m.pages)-1].Index != line.PageIndex {
			m.pages = append(m.pages, Page{
				Index:     line.PageIndex,
				CharStart: line.CharStart,
				CharEnd:   line.CharEnd,
			})
		}
		page := &m.pages[len(m.pages)-1]
		page.Lines = append(page.Lines, i)
		page.CharEnd = line.CharEnd
	}
}

// Len returns the document length in characters, separators included
func (m *Model) Len() int {
	return len(m.runes)
}

// Text returns the full document text
func (m *Model) Text() string {
	return m.text
}

// GetText returns the document text between two global offsets. Out-of-range
// offsets are clamped silently.
func (m *Model) GetText(start, end int) string {
	r := model.NewCharRange(start, end).Clamp(m.Len())
	return string(m.runes[r.Start:r.End])
}

// ItemAt returns the fragment containing the given global offset, or nil
// when the offset falls on a synthetic separator or outside the document
func (m *Model) ItemAt(offset int) *model.TextFragment {
	i := sort.Search(len(m.fragments), func(i int) bool {
		return m.fragments[i].CharEnd > offset
	})
	if i < len(m.fragments) && m.fragments[i].ContainsOffset(offset) {
		return &m.fragments[i]
	}
	return nil
}

// Fragments returns the model's fragments in reading order
func (m *Model) Fragments() []model.TextFragment {
	return m.fragments
}

// FragmentsInRange returns the fragments whose character range overlaps the
// half-open range [start, end)
func (m *Model) FragmentsInRange(start, end int) []*model.TextFragment {
	r := model.NewCharRange(start, end).Clamp(m.Len())

	first := sort.Search(len(m.fragments), func(i int) bool {
		return m.fragments[i].CharEnd > r.Start
	})

	var result []*model.TextFragment
	for i := first; i < len(m.fragments) && m.fragments[i].CharStart < r.End; i++ {
		result = append(result, &m.fragments[i])
	}
	return result
}

// ItemsInRegion returns the fragments whose bounding box overlaps the given
// screen-space region
func (m *Model) ItemsInRegion(region model.BBox) []*model.TextFragment {
	return m.grid.InRegion(region)
}

// LineCount returns the number of detected lines
func (m *Model) LineCount() int {
	return len(m.lines)
}

// GetLine returns the line at the given index, or nil when out of range
func (m *Model) GetLine(index int) *Line {
	if index < 0 || index >= len(m.lines) {
		return nil
	}
	return &m.lines[index]
}

// PageCount returns the number of pages with content
func (m *Model) PageCount() int {
	return len(m.pages)
}

// OffsetToPosition maps a global offset to its page, line, and in-line
// character index. Offsets on separators resolve to the end of the
// preceding line; offsets past the document clamp to its last position.
func (m *Model) OffsetToPosition(offset int) model.Position {
	offset = model.ClampOffset(offset, m.Len())
	pos := model.Position{GlobalOffset: offset}
	if len(m.lines) == 0 {
		return pos
	}

	// Last line whose CharStart <= offset.
	i := sort.Search(len(m.lines), func(i int) bool {
		return m.lines[i].CharStart > offset
	})
	if i > 0 {
		i--
	}

	line := &m.lines[i]
	pos.LineIndex = line.Index
	pos.PageIndex = line.PageIndex
	pos.CharIndex = offset - line.CharStart
	if pos.CharIndex > line.CharEnd-line.CharStart {
		pos.CharIndex = line.CharEnd - line.CharStart
	}
	return pos
}

// absFloat returns the absolute value of a float64
func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
