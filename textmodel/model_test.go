package textmodel

import (
	"testing"

	"github.com/tsawler/overmark/measure"
	"github.com/tsawler/overmark/model"
)

// makeFragment creates a test fragment on page 0
func makeFragment(txt string, x, y, width, height float64) model.TextFragment {
	return model.TextFragment{
		Text:     txt,
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		FontSize: 12,
	}
}

func newTestModel() *Model {
	return New(DefaultConfig(), measure.ProportionalSurface{})
}

func TestBuild_EmptyFragments(t *testing.T) {
	m := newTestModel()
	m.Build(nil)

	if m.Len() != 0 {
		t.Errorf("expected empty document, got length %d", m.Len())
	}
	if m.LineCount() != 0 {
		t.Errorf("expected 0 lines, got %d", m.LineCount())
	}
}

func TestBuild_AssignsContiguousOffsets(t *testing.T) {
	m := newTestModel()
	m.Build([]model.TextFragment{
		makeFragment("World", 45, 100, 40, 12),
		makeFragment("Hello", 0, 100, 40, 12),
		makeFragment("Below", 0, 120, 40, 12),
	})

	frags := m.Fragments()
	if len(frags) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(frags))
	}

	// Reading order: Hello, World (same line, X ascending), then Below.
	expected := []string{"Hello", "World", "Below"}
	for i, want := range expected {
		if frags[i].Text != want {
			t.Errorf("fragment %d: expected '%s', got '%s'", i, want, frags[i].Text)
		}
	}

	// Offsets contiguous and non-decreasing; gaps only where separators sit.
	prevEnd := 0
	for i, f := range frags {
		if f.CharStart < prevEnd {
			t.Errorf("fragment %d: CharStart %d before previous end %d", i, f.CharStart, prevEnd)
		}
		if f.CharStart > prevEnd+1 {
			t.Errorf("fragment %d: gap larger than one separator (%d..%d)", i, prevEnd, f.CharStart)
		}
		if f.CharEnd-f.CharStart != f.Length() {
			t.Errorf("fragment %d: range length %d != text length %d", i, f.CharEnd-f.CharStart, f.Length())
		}
		prevEnd = f.CharEnd
	}
}

func TestBuild_SyntheticSeparators(t *testing.T) {
	m := newTestModel()
	// Horizontal gap of 5 > 0.3*12 between Hello and World, newline before
	// the second line.
	m.Build([]model.TextFragment{
		makeFragment("Hello", 0, 100, 40, 12),
		makeFragment("World", 45, 100, 40, 12),
		makeFragment("Below", 0, 120, 40, 12),
	})

	if got := m.Text(); got != "Hello World\nBelow" {
		t.Errorf("expected 'Hello World\\nBelow', got %q", got)
	}
}

func TestBuild_NoSeparatorForTightGap(t *testing.T) {
	m := newTestModel()
	// Gap of 0.5 points is below 0.3*12 = 3.6, so the fragments join.
	m.Build([]model.TextFragment{
		makeFragment("he", 0, 100, 10, 12),
		makeFragment("llo", 10.5, 100, 15, 12),
	})

	if got := m.Text(); got != "hello" {
		t.Errorf("expected 'hello', got %q", got)
	}
}

func TestBuild_PageBreakInsertsNewline(t *testing.T) {
	m := newTestModel()
	first := makeFragment("end.", 0, 700, 30, 12)
	second := makeFragment("Start", 0, 10, 40, 12)
	second.PageIndex = 1

	m.Build([]model.TextFragment{second, first})

	if got := m.Text(); got != "end.\nStart" {
		t.Errorf("expected page-ordered 'end.\\nStart', got %q", got)
	}
	if m.PageCount() != 2 {
		t.Errorf("expected 2 pages, got %d", m.PageCount())
	}
}

func TestBuild_RoundTrip(t *testing.T) {
	m := newTestModel()
	m.Build([]model.TextFragment{
		makeFragment("one", 0, 0, 20, 12),
		makeFragment("two", 25, 0, 20, 12),
		makeFragment("three", 0, 20, 30, 12),
	})

	if got := m.GetText(0, m.Len()); got != m.Text() {
		t.Errorf("GetText(0, len) = %q, want %q", got, m.Text())
	}
	if m.Text() != "one two\nthree" {
		t.Errorf("unexpected document text %q", m.Text())
	}
}

func TestBuild_Idempotent(t *testing.T) {
	input := []model.TextFragment{
		makeFragment("alpha", 0, 0, 30, 12),
		makeFragment("beta", 35, 0, 25, 12),
		makeFragment("gamma", 0, 20, 35, 12),
	}

	a := newTestModel()
	a.Build(input)
	b := newTestModel()
	b.Build(input)
	b.Build(input)

	if a.Text() != b.Text() {
		t.Fatalf("rebuild changed text: %q vs %q", a.Text(), b.Text())
	}
	for i := range a.Fragments() {
		af, bf := a.Fragments()[i], b.Fragments()[i]
		if af.CharStart != bf.CharStart || af.CharEnd != bf.CharEnd {
			t.Errorf("fragment %d: ranges differ (%d,%d) vs (%d,%d)",
				i, af.CharStart, af.CharEnd, bf.CharStart, bf.CharEnd)
		}
	}
}

func TestGetText_ClampsOffsets(t *testing.T) {
	m := newTestModel()
	m.Build([]model.TextFragment{makeFragment("hello", 0, 0, 30, 12)})

	if got := m.GetText(-5, 99); got != "hello" {
		t.Errorf("expected clamped full text, got %q", got)
	}
	if got := m.GetText(4, 1); got != "ell" {
		t.Errorf("expected normalized range text 'ell', got %q", got)
	}
}

func TestItemAt(t *testing.T) {
	m := newTestModel()
	m.Build([]model.TextFragment{
		makeFragment("ab", 0, 0, 15, 12),
		makeFragment("cd", 0, 20, 15, 12),
	})
	// Document text: "ab\ncd"

	if f := m.ItemAt(1); f == nil || f.Text != "ab" {
		t.Errorf("ItemAt(1): expected 'ab', got %v", f)
	}
	if f := m.ItemAt(2); f != nil {
		t.Errorf("ItemAt on separator: expected nil, got '%s'", f.Text)
	}
	if f := m.ItemAt(3); f == nil || f.Text != "cd" {
		t.Errorf("ItemAt(3): expected 'cd', got %v", f)
	}
	if f := m.ItemAt(99); f != nil {
		t.Error("ItemAt past document: expected nil")
	}
}

func TestFragmentsInRange(t *testing.T) {
	m := newTestModel()
	m.Build([]model.TextFragment{
		makeFragment("ab", 0, 0, 15, 12),
		makeFragment("cd", 20, 0, 15, 12),
		makeFragment("ef", 40, 0, 15, 12),
	})
	// Document text: "ab cd ef"

	got := m.FragmentsInRange(1, 4)
	if len(got) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(got))
	}
	if got[0].Text != "ab" || got[1].Text != "cd" {
		t.Errorf("expected ab and cd, got '%s' and '%s'", got[0].Text, got[1].Text)
	}

	if got := m.FragmentsInRange(2, 3); len(got) != 0 {
		t.Errorf("separator-only range: expected no fragments, got %d", len(got))
	}
}

func TestOffsetToPosition(t *testing.T) {
	m := newTestModel()
	second := makeFragment("page2", 0, 10, 35, 12)
	second.PageIndex = 1
	m.Build([]model.TextFragment{
		makeFragment("line one", 0, 0, 50, 12),
		makeFragment("line two", 0, 20, 50, 12),
		second,
	})
	// Document text: "line one\nline two\npage2"

	tests := []struct {
		offset   int
		wantPage int
		wantLine int
		wantChar int
	}{
		{0, 0, 0, 0},
		{4, 0, 0, 4},
		{9, 0, 1, 0},
		{12, 0, 1, 3},
		{18, 1, 2, 0},
	}

	for _, tt := range tests {
		pos := m.OffsetToPosition(tt.offset)
		if pos.PageIndex != tt.wantPage || pos.LineIndex != tt.wantLine || pos.CharIndex != tt.wantChar {
			t.Errorf("OffsetToPosition(%d) = {page %d line %d char %d}, want {page %d line %d char %d}",
				tt.offset, pos.PageIndex, pos.LineIndex, pos.CharIndex,
				tt.wantPage, tt.wantLine, tt.wantChar)
		}
	}

	if pos := m.OffsetToPosition(999); pos.GlobalOffset != m.Len() {
		t.Errorf("expected clamp to document length, got %d", pos.GlobalOffset)
	}
}

func TestVersion_IncrementsOnBuild(t *testing.T) {
	m := newTestModel()
	v0 := m.Version()
	m.Build([]model.TextFragment{makeFragment("x", 0, 0, 5, 12)})
	if m.Version() == v0 {
		t.Error("expected version to change after rebuild")
	}
}
