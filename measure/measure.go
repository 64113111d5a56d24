// Package measure provides text width measurement for hit-testing and
// highlight rectangle generation.
//
// The default surface renders against an embedded font via
// golang.org/x/image/font. Exact per-family metrics are out of scope; one
// regular face is good enough for hit-testing, and callers rescale measured
// widths to each fragment's laid-out width.
package measure

import (
	"fmt"
	"log/slog"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Surface measures rendered text widths in points
type Surface interface {
	// StringWidth returns the rendered width of s at the given font size
	StringWidth(s string, fontSize float64) float64
}

// FaceSurface measures strings against a parsed font face. Faces are cached
// per font size because face construction is far more expensive than a
// measurement.
type FaceSurface struct {
	fnt   *sfnt.Font
	faces map[float64]font.Face
}

// NewFaceSurface parses the embedded regular font and returns a measuring
// surface backed by it
func NewFaceSurface() (*FaceSurface, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse embedded font: %w", err)
	}

	return &FaceSurface{
		fnt:   fnt,
		faces: make(map[float64]font.Face),
	}, nil
}

// StringWidth returns the rendered width of s at the given font size
func (fs *FaceSurface) StringWidth(s string, fontSize float64) float64 {
	if s == "" {
		return 0
	}
	if fontSize <= 0 {
		fontSize = 12
	}

	face, err := fs.face(fontSize)
	if err != nil {
		// Face construction failed for this size; fall back per string.
		return proportionalWidth(s, fontSize)
	}

	adv := font.MeasureString(face, s)
	return float64(adv) / 64.0
}

// face returns a cached face for the given size, creating it on first use
func (fs *FaceSurface) face(size float64) (font.Face, error) {
	if f, ok := fs.faces[size]; ok {
		return f, nil
	}

	f, err := opentype.NewFace(fs.fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face at size %v: %w", size, err)
	}

	fs.faces[size] = f
	return f, nil
}

// ProportionalSurface estimates widths as a fixed fraction of the font size
// per rune. It is the degraded mode when no font face is available.
type ProportionalSurface struct{}

// StringWidth returns an estimated width of s at the given font size
func (ProportionalSurface) StringWidth(s string, fontSize float64) float64 {
	return proportionalWidth(s, fontSize)
}

// proportionalWidth estimates half an em per rune, matching the width
// estimate used when a fragment arrives without usable font metrics
func proportionalWidth(s string, fontSize float64) float64 {
	return float64(len([]rune(s))) * fontSize * 0.5
}

// NewSurface returns the best available measuring surface. When the embedded
// font cannot be parsed it logs a warning and degrades to proportional
// estimation; the caller always gets a usable surface.
func NewSurface(logger *slog.Logger) Surface {
	if logger == nil {
		logger = slog.Default()
	}

	fs, err := NewFaceSurface()
	if err != nil {
		logger.Warn("text measurement unavailable, using proportional widths", "error", err)
		return ProportionalSurface{}
	}
	return fs
}

// PrefixWidths returns the rendered width of every prefix of s, from the
// empty prefix through the full string. The result has rune-count+1 entries.
// Hit-testing scans these to find which character a click X falls on.
func PrefixWidths(surface Surface, s string, fontSize float64) []float64 {
	runes := []rune(s)
	widths := make([]float64, len(runes)+1)
	for i := 1; i <= len(runes); i++ {
		widths[i] = surface.StringWidth(string(runes[:i]), fontSize)
	}
	return widths
}
