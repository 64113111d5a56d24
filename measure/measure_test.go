package measure

import "testing"

func TestFaceSurface_StringWidth(t *testing.T) {
	fs, err := NewFaceSurface()
	if err != nil {
		t.Fatalf("NewFaceSurface: %v", err)
	}

	w := fs.StringWidth("hello", 12)
	if w <= 0 {
		t.Errorf("expected positive width, got %v", w)
	}

	// Wider strings must measure wider.
	longer := fs.StringWidth("hello world", 12)
	if longer <= w {
		t.Errorf("expected 'hello world' (%v) wider than 'hello' (%v)", longer, w)
	}

	// Larger font sizes must measure wider.
	bigger := fs.StringWidth("hello", 24)
	if bigger <= w {
		t.Errorf("expected size-24 width (%v) greater than size-12 (%v)", bigger, w)
	}
}

func TestFaceSurface_EmptyString(t *testing.T) {
	fs, err := NewFaceSurface()
	if err != nil {
		t.Fatalf("NewFaceSurface: %v", err)
	}

	if w := fs.StringWidth("", 12); w != 0 {
		t.Errorf("expected zero width for empty string, got %v", w)
	}
}

func TestProportionalSurface_StringWidth(t *testing.T) {
	var ps ProportionalSurface

	// Half an em per rune.
	if w := ps.StringWidth("abcd", 10); w != 20 {
		t.Errorf("expected 20, got %v", w)
	}
	if w := ps.StringWidth("", 10); w != 0 {
		t.Errorf("expected 0 for empty string, got %v", w)
	}
}

func TestPrefixWidths_Monotonic(t *testing.T) {
	surface := NewSurface(nil)

	widths := PrefixWidths(surface, "hello", 12)
	if len(widths) != 6 {
		t.Fatalf("expected 6 prefix widths, got %d", len(widths))
	}
	if widths[0] != 0 {
		t.Errorf("expected zero width for empty prefix, got %v", widths[0])
	}
	for i := 1; i < len(widths); i++ {
		if widths[i] < widths[i-1] {
			t.Errorf("prefix widths not monotonic at %d: %v < %v", i, widths[i], widths[i-1])
		}
	}
}
