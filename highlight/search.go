package highlight

import (
	"regexp"
	"unicode/utf8"

	"github.com/tsawler/overmark/model"
	"golang.org/x/text/language"
	"golang.org/x/text/search"
)

// FindText returns the half-open ranges of every literal occurrence of
// pattern in the document text
func (s *Store) FindText(pattern string) []model.CharRange {
	if pattern == "" {
		return nil
	}

	text := s.model.Text()
	m := search.New(language.Und)
	return s.matchAll(m.CompileString(pattern), text)
}

// FindTextFolded is FindText with Unicode case folding, so "bye" matches
// "Bye"
func (s *Store) FindTextFolded(pattern string) []model.CharRange {
	if pattern == "" {
		return nil
	}

	text := s.model.Text()
	m := search.New(language.Und, search.IgnoreCase)
	return s.matchAll(m.CompileString(pattern), text)
}

// matchAll collects every non-overlapping match of a compiled pattern,
// converting byte offsets to rune offsets
func (s *Store) matchAll(pat *search.Pattern, text string) []model.CharRange {
	var out []model.CharRange
	base := 0
	for {
		start, end := pat.IndexString(text[base:])
		if start < 0 {
			break
		}
		out = append(out, model.CharRange{
			Start: utf8.RuneCountInString(text[:base+start]),
			End:   utf8.RuneCountInString(text[:base+end]),
		})
		base += end
		if end == start {
			break
		}
	}
	return out
}

// FindPattern returns the half-open ranges of every match of the regular
// expression in the document text
func (s *Store) FindPattern(re *regexp.Regexp) []model.CharRange {
	if re == nil {
		return nil
	}

	text := s.model.Text()
	var out []model.CharRange
	for _, loc := range re.FindAllStringIndex(text, -1) {
		out = append(out, model.CharRange{
			Start: utf8.RuneCountInString(text[:loc[0]]),
			End:   utf8.RuneCountInString(text[:loc[1]]),
		})
	}
	return out
}

// HighlightText creates one highlight per literal occurrence of pattern,
// returning the created highlights in document order
func (s *Store) HighlightText(pattern string, attrs Attrs) []*Highlight {
	return s.addRanges(s.FindText(pattern), attrs)
}

// HighlightTextFolded is HighlightText with Unicode case folding
func (s *Store) HighlightTextFolded(pattern string, attrs Attrs) []*Highlight {
	return s.addRanges(s.FindTextFolded(pattern), attrs)
}

// HighlightPattern creates one highlight per regular expression match
func (s *Store) HighlightPattern(re *regexp.Regexp, attrs Attrs) []*Highlight {
	return s.addRanges(s.FindPattern(re), attrs)
}

func (s *Store) addRanges(ranges []model.CharRange, attrs Attrs) []*Highlight {
	var out []*Highlight
	for _, r := range ranges {
		out = append(out, s.Add(r.Start, r.End, attrs))
	}
	return out
}

// RemoveByText removes the highlights whose range exactly matches an
// occurrence of pattern, the inverse of HighlightText. It returns the
// number removed.
func (s *Store) RemoveByText(pattern string) int {
	removed := 0
	for _, r := range s.FindText(pattern) {
		for _, h := range s.Overlapping(r.Start, r.End) {
			if h.Range == r && s.Remove(h.ID) {
				removed++
			}
		}
	}
	return removed
}
