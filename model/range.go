package model

// CharRange is a half-open range [Start, End) of global character offsets.
// It is the shared vocabulary between selections and highlights.
type CharRange struct {
	Start int
	End   int
}

// NewCharRange creates a normalized range so Start <= End regardless of
// argument order
func NewCharRange(a, b int) CharRange {
	if a > b {
		a, b = b, a
	}
	return CharRange{Start: a, End: b}
}

// Clamp constrains both endpoints to [0, docLen]
func (r CharRange) Clamp(docLen int) CharRange {
	r.Start = clampOffset(r.Start, docLen)
	r.End = clampOffset(r.End, docLen)
	if r.Start > r.End {
		r.Start, r.End = r.End, r.Start
	}
	return r
}

// Len returns the number of characters covered
func (r CharRange) Len() int {
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no characters
func (r CharRange) IsEmpty() bool {
	return r.End <= r.Start
}

// Overlaps reports whether two half-open ranges share at least one
// character. Touching at a boundary is not overlap.
func (r CharRange) Overlaps(other CharRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// Touches reports whether the ranges overlap or are exactly adjacent.
// Merge passes use this so back-to-back selections coalesce.
func (r CharRange) Touches(other CharRange) bool {
	return r.Start <= other.End && other.Start <= r.End
}

// ContainsOffset reports whether offset falls inside [Start, End)
func (r CharRange) ContainsOffset(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Union returns the smallest range covering both
func (r CharRange) Union(other CharRange) CharRange {
	out := r
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// clampOffset constrains a single offset to [0, docLen]
func clampOffset(offset, docLen int) int {
	if offset < 0 {
		return 0
	}
	if offset > docLen {
		return docLen
	}
	return offset
}

// ClampOffset constrains a global offset to the document bounds [0, docLen]
func ClampOffset(offset, docLen int) int {
	return clampOffset(offset, docLen)
}
