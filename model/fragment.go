package model

// TextFragment is one positioned run of text supplied by the rendering
// collaborator on every layout pass, roughly one font run. CharStart and
// CharEnd are assigned by the text model when the document is built; they
// index into the concatenated document text and are half-open [CharStart,
// CharEnd).
type TextFragment struct {
	Text       string
	X          float64
	Y          float64
	Width      float64
	Height     float64
	FontSize   float64
	FontFamily string
	PageIndex  int

	// Assigned during document build
	CharStart int
	CharEnd   int
}

// BBox returns the fragment's bounding box
func (f *TextFragment) BBox() BBox {
	return BBox{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

// Length returns the number of runes in the fragment text
func (f *TextFragment) Length() int {
	return len([]rune(f.Text))
}

// ContainsOffset reports whether the global offset falls inside the
// fragment's assigned character range [CharStart, CharEnd)
func (f *TextFragment) ContainsOffset(offset int) bool {
	return offset >= f.CharStart && offset < f.CharEnd
}

// Position is a denormalized view of a global character offset for
// navigation: which page and line the offset sits on, and its index within
// that line.
type Position struct {
	PageIndex    int
	LineIndex    int
	CharIndex    int
	GlobalOffset int
}
