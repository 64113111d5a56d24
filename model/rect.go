package model

// Rect is a screen-space rectangle produced for the rendering collaborator
// when painting selection or highlight overlays. Color is empty for
// selection rectangles, which take the theme's selection color.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  string  `json:"color,omitempty"`
}

// BBox returns the rectangle's geometry without the color
func (r Rect) BBox() BBox {
	return BBox{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// TranslateRects shifts every rectangle by the given scroll offset, mapping
// document space into viewport space
func TranslateRects(rects []Rect, dx, dy float64) []Rect {
	out := make([]Rect, len(rects))
	for i, r := range rects {
		r.X += dx
		r.Y += dy
		out[i] = r
	}
	return out
}
