package textmodel

import (
	"testing"

	"github.com/tsawler/overmark/measure"
	"github.com/tsawler/overmark/model"
)

func TestCoordinatesToOffset_InsideFragment(t *testing.T) {
	m := New(DefaultConfig(), measure.NewSurface(nil))
	m.Build([]model.TextFragment{
		makeFragment("Hello", 100, 100, 40, 12),
		makeFragment("World", 145, 100, 40, 12),
	})

	frag := m.ItemAt(0)
	if frag == nil {
		t.Fatal("expected fragment at offset 0")
	}

	// Any point inside the bbox must resolve within the fragment's range.
	for _, x := range []float64{101, 110, 120, 139} {
		offset, ok := m.CoordinatesToOffset(x, 106)
		if !ok {
			t.Fatalf("expected hit at x=%v", x)
		}
		if offset < frag.CharStart || offset > frag.CharEnd {
			t.Errorf("x=%v: offset %d outside [%d, %d]", x, offset, frag.CharStart, frag.CharEnd)
		}
	}
}

func TestCoordinatesToOffset_EdgesOfFragment(t *testing.T) {
	m := newTestModel()
	m.Build([]model.TextFragment{
		makeFragment("abcd", 100, 100, 40, 12),
	})

	if offset, _ := m.CoordinatesToOffset(100, 106); offset != 0 {
		t.Errorf("left edge: expected offset 0, got %d", offset)
	}
	if offset, _ := m.CoordinatesToOffset(140, 106); offset != 4 {
		t.Errorf("right edge: expected offset 4, got %d", offset)
	}
}

func TestCoordinatesToOffset_EmptyDocument(t *testing.T) {
	m := newTestModel()
	m.Build(nil)

	if _, ok := m.CoordinatesToOffset(10, 10); ok {
		t.Error("expected no hit on empty document")
	}
}

func TestCoordinatesToOffset_EmptySpaceRightOfLine(t *testing.T) {
	m := newTestModel()
	// Two-line layout "AB" / "CD". A click far to the right of line 2 must
	// resolve onto line 2, not line 1.
	m.Build([]model.TextFragment{
		makeFragment("AB", 0, 0, 20, 12),
		makeFragment("CD", 0, 20, 20, 12),
	})
	// Document text: "AB\nCD"

	offset, ok := m.CoordinatesToOffset(500, 25)
	if !ok {
		t.Fatal("expected a fallback hit")
	}
	if offset != 5 {
		t.Errorf("expected end of line 2 (offset 5), got %d", offset)
	}

	pos := m.OffsetToPosition(offset)
	if pos.LineIndex != 1 {
		t.Errorf("expected line 1, got line %d", pos.LineIndex)
	}
}

func TestCoordinatesToOffset_EmptySpaceLeftOfLine(t *testing.T) {
	m := newTestModel()
	m.Build([]model.TextFragment{
		makeFragment("AB", 400, 0, 20, 12),
		makeFragment("CD", 400, 20, 20, 12),
	})

	offset, ok := m.CoordinatesToOffset(0, 3)
	if !ok {
		t.Fatal("expected a fallback hit")
	}
	if offset != 0 {
		t.Errorf("expected start of line 1 (offset 0), got %d", offset)
	}
}

func TestCoordinatesToOffset_GapBisection(t *testing.T) {
	m := newTestModel()
	// Two fragments on one line with a 100-point gap between x=120 and
	// x=220; the midpoint is 170.
	m.Build([]model.TextFragment{
		makeFragment("left", 100, 300, 20, 12),
		makeFragment("right", 220, 300, 30, 12),
	})
	// Document text: "left right"

	// The gap cells are shared with the fragments here, so force the
	// line fallback by clicking between them vertically near the band.
	offset, ok := m.CoordinatesToOffset(150, 306)
	if !ok {
		t.Fatal("expected a hit")
	}
	if offset > 5 {
		t.Errorf("click left of gap midpoint: expected an offset on 'left' side, got %d", offset)
	}

	offset, ok = m.CoordinatesToOffset(215, 306)
	if !ok {
		t.Fatal("expected a hit")
	}
	if offset < 4 {
		t.Errorf("click right of gap midpoint: expected an offset on 'right' side, got %d", offset)
	}
}

func TestCoordinatesToOffsetAnchored(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.CellSize = 10 // keep the 3x3 neighborhood small so the gap misses
	m := New(cfg, measure.ProportionalSurface{})
	// Wide empty region between fragments on one line.
	m.Build([]model.TextFragment{
		makeFragment("start", 0, 100, 30, 12),
		makeFragment("finish", 400, 100, 40, 12),
	})

	// Forward drag from an anchor on the left fragment. Gap bisection
	// assigns the click to the left side of the midpoint (215).
	offset, ok := m.CoordinatesToOffsetAnchored(190, 106, model.Point{X: 10, Y: 106})
	if !ok {
		t.Fatal("expected a hit")
	}
	if offset != 5 {
		t.Errorf("expected offset 5 at left fragment end, got %d", offset)
	}

	offset, ok = m.CoordinatesToOffsetAnchored(300, 106, model.Point{X: 10, Y: 106})
	if !ok {
		t.Fatal("expected a hit")
	}
	if offset < 6 {
		t.Errorf("past midpoint: expected an offset on 'finish', got %d", offset)
	}
}

func TestOffsetWithinFragment_ProportionalFallback(t *testing.T) {
	m := New(DefaultConfig(), nil)
	m.Build([]model.TextFragment{
		makeFragment("abcd", 0, 0, 40, 12),
	})

	// With nil surface, placement is relativeX / width * length, rounded.
	tests := []struct {
		x    float64
		want int
	}{
		{1, 0},
		{14, 1},
		{21, 2},
		{39, 4},
	}

	for _, tt := range tests {
		offset, ok := m.CoordinatesToOffset(tt.x, 6)
		if !ok {
			t.Fatalf("expected hit at x=%v", tt.x)
		}
		if offset != tt.want {
			t.Errorf("x=%v: expected offset %d, got %d", tt.x, tt.want, offset)
		}
	}
}
