// Package compose keeps a background strand and the parts attached to it in
// one composed coordinate space.
package compose

import (
	"github.com/yumyai/genecanvas/pkg/seq"
)

// Part is a placed (or floating) biological part. Its sequence travels as a
// unit and is never spliced into the background.
type Part struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Sequence seq.Sequence `json:"-"`

	// Boundary is the composed-space insertion boundary where the part starts.
	// It only means something when Placed is set.
	Boundary int  `json:"boundary"`
	Placed   bool `json:"placed"`
}

func (p Part) Len() int {
	return len(p.Sequence)
}

// End is the boundary right after the part.
func (p Part) End() int {
	return p.Boundary + len(p.Sequence)
}

func (p Part) Span() Span {
	return Span{PartID: p.ID, Start: p.Boundary, End: p.End()}
}

// Span is a part's extent in composed coordinates, [Start, End).
type Span struct {
	PartID string `json:"part_id"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether boundary b lies strictly inside the span.
func (s Span) Contains(b int) bool {
	return s.Start < b && b < s.End
}

func (s Span) Overlaps(o Span) bool {
	if s.Len() == 0 || o.Len() == 0 {
		return false
	}
	return s.Start < o.End && o.Start < s.End
}

func cloneParts(parts []Part) []Part {
	out := make([]Part, len(parts))
	copy(out, parts)
	return out
}

func placedSpans(parts []Part) []Span {
	spans := make([]Span, 0, len(parts))
	for _, p := range parts {
		if p.Placed {
			spans = append(spans, p.Span())
		}
	}
	return spans
}

func indexOf(parts []Part, id string) int {
	for i := range parts {
		if parts[i].ID == id {
			return i
		}
	}
	return -1
}
