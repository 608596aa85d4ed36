package compose

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/yumyai/genecanvas/pkg/seq"
)

// NoBackground marks a composed index that is not backed by a background
// symbol.
const NoBackground = -1

// Layout is the composed view of a background plus its placed parts. It is a
// snapshot: rebuild it after every edit instead of patching it.
type Layout struct {
	Sequence         seq.Sequence
	ToBackground     []int
	ToPart           []string
	Spans            []Span
	BackgroundLength int
}

// BuildLayout merges the background and the placed parts (plus any preview
// parts used for drag feedback) into one composed sequence.
func BuildLayout(background seq.Sequence, parts []Part, previews ...Part) *Layout {
	placed := make([]Part, 0, len(parts)+len(previews))
	for _, p := range parts {
		if p.Placed {
			placed = append(placed, p)
		}
	}
	for _, p := range previews {
		p.Placed = true
		placed = append(placed, p)
	}
	// A zero-length part sharing a boundary with another part sits before it,
	// so every span starts at its part's boundary.
	sort.SliceStable(placed, func(i, j int) bool {
		if placed[i].Boundary != placed[j].Boundary {
			return placed[i].Boundary < placed[j].Boundary
		}
		return placed[i].Len() == 0 && placed[j].Len() > 0
	})

	total := len(background)
	for _, p := range placed {
		total += p.Len()
	}
	// A part beyond the naive total must not be truncated.
	for _, p := range placed {
		if p.End() > total {
			total = p.End()
		}
	}

	l := &Layout{
		Sequence:         make(seq.Sequence, 0, total),
		ToBackground:     make([]int, 0, total),
		ToPart:           make([]string, 0, total),
		Spans:            make([]Span, 0, len(placed)),
		BackgroundLength: len(background),
	}

	bi, pi, i := 0, 0, 0
	for i < total || pi < len(placed) || bi < len(background) {
		if pi < len(placed) && placed[pi].Boundary <= i {
			p := placed[pi]
			pi++
			l.Spans = append(l.Spans, Span{PartID: p.ID, Start: i, End: i + p.Len()})
			for _, sym := range p.Sequence {
				l.emit(sym, NoBackground, p.ID)
				i++
			}
			continue
		}
		if bi < len(background) {
			l.emit(background[bi], bi, "")
			bi++
			i++
			continue
		}
		// Background exhausted before the next part: pad with unowned wildcards.
		l.emit(seq.N, NoBackground, "")
		i++
	}
	return l
}

func (l *Layout) emit(sym seq.Symbol, bg int, partID string) {
	l.Sequence = append(l.Sequence, sym)
	l.ToBackground = append(l.ToBackground, bg)
	l.ToPart = append(l.ToPart, partID)
}

// Len is the composed length.
func (l *Layout) Len() int {
	return len(l.Sequence)
}

// IsComposedIndexOwnedByPart reports whether composed index i holds part
// content. Out-of-range indices are not owned.
func (l *Layout) IsComposedIndexOwnedByPart(i int) bool {
	_, ok := l.PartAt(i)
	return ok
}

func (l *Layout) PartAt(i int) (string, bool) {
	if i < 0 || i >= len(l.ToPart) || l.ToPart[i] == "" {
		return "", false
	}
	return l.ToPart[i], true
}

func (l *Layout) BackgroundIndex(i int) (int, bool) {
	if i < 0 || i >= len(l.ToBackground) || l.ToBackground[i] == NoBackground {
		return NoBackground, false
	}
	return l.ToBackground[i], true
}

// ComposedIndexOfBackground is the reverse mapping of BackgroundIndex.
func (l *Layout) ComposedIndexOfBackground(b int) (int, bool) {
	if b < 0 || b >= l.BackgroundLength {
		return 0, false
	}
	for i, v := range l.ToBackground {
		if v == b {
			return i, true
		}
	}
	return 0, false
}

// TranslateInsertionToBackground counts the background symbols lying before a
// composed boundary. That count is the splice index into the background for
// an insertion at the boundary.
func (l *Layout) TranslateInsertionToBackground(boundary int) int {
	boundary = clamp(boundary, 0, l.Len())
	n := 0
	for i := 0; i < boundary; i++ {
		if l.ToBackground[i] != NoBackground {
			n++
		}
	}
	return n
}

func (l *Layout) SpanOf(partID string) (Span, bool) {
	for _, s := range l.Spans {
		if s.PartID == partID {
			return s, true
		}
	}
	return Span{}, false
}

// IsInsidePart reports whether boundary falls strictly inside a part span.
func (l *Layout) IsInsidePart(boundary int) (string, bool) {
	for _, s := range l.Spans {
		if s.Contains(boundary) {
			return s.PartID, true
		}
	}
	return "", false
}

// CheckBijection verifies that the background-backed composed indices map,
// in increasing order, onto every background index exactly once.
func (l *Layout) CheckBijection() error {
	next := 0
	for i, b := range l.ToBackground {
		if b == NoBackground {
			continue
		}
		if b != next {
			return fmt.Errorf("%w: composed index %d maps to background %d, expected %d", ErrIntegrity, i, b, next)
		}
		next++
	}
	if next != l.BackgroundLength {
		return fmt.Errorf("%w: %d of %d background symbols mapped", ErrIntegrity, next, l.BackgroundLength)
	}
	return nil
}

// CheckAnchors verifies that every placed part starts at its own boundary.
// A part laid out anywhere else would drift against the background on the
// next edit.
func (l *Layout) CheckAnchors(parts []Part) error {
	var errs error
	for _, p := range parts {
		if !p.Placed {
			continue
		}
		span, ok := l.SpanOf(p.ID)
		if !ok || span.Start != p.Boundary {
			errs = multierr.Append(errs, fmt.Errorf("%w: part %q at boundary %d laid out at %d", ErrIntegrity, p.ID, p.Boundary, span.Start))
		}
	}
	return errs
}
