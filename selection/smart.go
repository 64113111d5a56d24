package selection

import "github.com/tsawler/overmark/model"

// wordBoundary reports whether r terminates a word expansion
func wordBoundary(r rune) bool {
	switch r {
	case ' ', '\n', '\t', '.', ',', ';', '!', '?':
		return true
	}
	return false
}

// sentenceTerminator reports whether r ends a sentence
func sentenceTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// isWhitespace reports whether r is a whitespace character
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}

// WordRangeAt expands left and right from offset while the characters are
// not word boundaries. The second return is false when the offset sits on a
// boundary character or outside the document, where expansion collapses to
// zero width.
func (mgr *Manager) WordRangeAt(offset int) (model.CharRange, bool) {
	runes := []rune(mgr.model.Text())
	if offset < 0 || offset >= len(runes) || wordBoundary(runes[offset]) {
		return model.CharRange{}, false
	}

	start := offset
	for start > 0 && !wordBoundary(runes[start-1]) {
		start--
	}

	end := offset
	for end < len(runes) && !wordBoundary(runes[end]) {
		end++
	}

	if end <= start {
		return model.CharRange{}, false
	}
	return model.CharRange{Start: start, End: end}, true
}

// SentenceRangeAt scans backward to the previous sentence terminator, skips
// the whitespace that follows it, and scans forward to the next terminator
// inclusive. Both scans clamp to the document bounds when no terminator is
// found.
func (mgr *Manager) SentenceRangeAt(offset int) (model.CharRange, bool) {
	runes := []rune(mgr.model.Text())
	if len(runes) == 0 {
		return model.CharRange{}, false
	}
	offset = model.ClampOffset(offset, len(runes)-1)

	start := 0
	for i := offset - 1; i >= 0; i-- {
		if sentenceTerminator(runes[i]) {
			start = i + 1
			break
		}
	}
	for start < len(runes) && isWhitespace(runes[start]) {
		start++
	}

	end := len(runes)
	for i := offset; i < len(runes); i++ {
		if sentenceTerminator(runes[i]) {
			end = i + 1
			break
		}
	}

	if end <= start {
		return model.CharRange{}, false
	}
	return model.CharRange{Start: start, End: end}, true
}

// LineRangeAt scans to the nearest preceding and following newline,
// excluding the newlines themselves
func (mgr *Manager) LineRangeAt(offset int) (model.CharRange, bool) {
	runes := []rune(mgr.model.Text())
	if len(runes) == 0 {
		return model.CharRange{}, false
	}
	offset = model.ClampOffset(offset, len(runes)-1)

	start := 0
	for i := offset - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			start = i + 1
			break
		}
	}

	end := len(runes)
	for i := offset; i < len(runes); i++ {
		if runes[i] == '\n' {
			end = i
			break
		}
	}

	return model.CharRange{Start: start, End: end}, true
}

// SelectWordAt creates a smart selection covering the word at offset, or
// returns nil when there is no word there
func (mgr *Manager) SelectWordAt(offset int) *Selection {
	r, ok := mgr.WordRangeAt(offset)
	if !ok {
		return nil
	}
	return mgr.Create(r.Start, r.End, TypeSmart, nil)
}

// SelectSentenceAt creates a smart selection covering the sentence at offset
func (mgr *Manager) SelectSentenceAt(offset int) *Selection {
	r, ok := mgr.SentenceRangeAt(offset)
	if !ok {
		return nil
	}
	return mgr.Create(r.Start, r.End, TypeSmart, nil)
}

// SelectLineAt creates a smart selection covering the visual line at offset
func (mgr *Manager) SelectLineAt(offset int) *Selection {
	r, ok := mgr.LineRangeAt(offset)
	if !ok {
		return nil
	}
	return mgr.Create(r.Start, r.End, TypeSmart, nil)
}

// SelectAll creates a smart selection covering the whole document, or nil
// when the document is empty
func (mgr *Manager) SelectAll() *Selection {
	if mgr.model.Len() == 0 {
		return nil
	}
	return mgr.Create(0, mgr.model.Len(), TypeSmart, nil)
}
