package highlight

import "time"

// Record is the export-ready shape of a highlight for external persistence.
// Text carries the covered document text at export time.
type Record struct {
	ID        string         `json:"id,omitempty"`
	Start     int            `json:"start"`
	End       int            `json:"end"`
	Color     string         `json:"color,omitempty"`
	Note      string         `json:"note,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt,omitempty"`
	Text      string         `json:"text,omitempty"`
}

// Export returns plain records for every highlight, sorted by start offset
func (s *Store) Export() []Record {
	all := s.All()
	out := make([]Record, 0, len(all))
	for _, h := range all {
		out = append(out, Record{
			ID:        h.ID,
			Start:     h.Range.Start,
			End:       h.Range.End,
			Color:     h.Color,
			Note:      h.Note,
			Metadata:  h.Metadata,
			CreatedAt: h.CreatedAt,
			UpdatedAt: h.UpdatedAt,
			Text:      s.Text(h),
		})
	}
	return out
}

// Import creates highlights from plain records. Incoming ids and timestamps
// are discarded; each highlight gets a fresh id and the current time, and
// offsets are clamped to the current document. The created highlights are
// returned in record order.
func (s *Store) Import(records []Record) []*Highlight {
	out := make([]*Highlight, 0, len(records))
	for _, r := range records {
		out = append(out, s.Add(r.Start, r.End, Attrs{
			Color:    r.Color,
			Note:     r.Note,
			Metadata: r.Metadata,
		}))
	}
	return out
}
