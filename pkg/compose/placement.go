package compose

import (
	"sort"
)

// PlacementOptions describes the space a placement is resolved in.
type PlacementOptions struct {
	// ComposedLength of the space the spans live in. For a move this is the
	// closed space, with the moving part already taken out.
	ComposedLength int

	// Repositioning allows landing anywhere up to ComposedLength, including
	// exactly on another part's start (that part is pushed right on reinsert).
	Repositioning bool
}

// Placement is the outcome of ResolvePlacement.
type Placement struct {
	Boundary int `json:"boundary"`
	// Snapped is set when Boundary differs from the clamped request.
	Snapped bool `json:"snapped"`
	// Clamped is set when the request was outside the valid range.
	Clamped bool `json:"clamped"`
	// Conflict is set when no free boundary exists; Boundary is then the
	// clamped request, returned as a best effort.
	Conflict bool     `json:"conflict"`
	Blocking []string `json:"blocking,omitempty"`
}

// ResolvePlacement finds a conflict-free boundary for a part of the given
// length as close as possible to desired. It never fails: a placement with
// Conflict set is returned when nothing fits.
func ResolvePlacement(desired, length int, spans []Span, opts PlacementOptions) Placement {
	if length < 0 {
		length = 0
	}

	maxBoundary := opts.ComposedLength
	if !opts.Repositioning {
		maxBoundary -= length
	}
	if maxBoundary < 0 {
		maxBoundary = 0
	}

	clamped := clamp(desired, 0, maxBoundary)
	result := Placement{Boundary: clamped, Clamped: clamped != desired}

	// The request is tested against current positions. Alternatives are
	// tested against the positions they would end up in: when repositioning,
	// every span starting at or after the candidate is pushed right.
	fits := func(c int) bool {
		return len(conflictingSpans(c, length, spans, opts.Repositioning)) == 0
	}

	blockers := conflictingSpans(clamped, length, spans, false)
	if len(blockers) == 0 {
		return result
	}
	for _, b := range blockers {
		result.Blocking = append(result.Blocking, b.PartID)
	}

	candidates := make([]int, 0, 3*len(blockers))
	for _, b := range blockers {
		candidates = append(candidates, b.Start-length, b.End)
		if opts.Repositioning {
			candidates = append(candidates, b.Start)
		}
	}

	best, found := 0, false
	for _, c := range candidates {
		if c < 0 || c > maxBoundary || !fits(c) {
			continue
		}
		if !found || closer(c, best, desired) {
			best, found = c, true
		}
	}

	if !found {
		// Bounded outward scan, lower side first at each distance.
		for d := 1; d <= opts.ComposedLength && !found; d++ {
			for _, c := range [2]int{clamped - d, clamped + d} {
				if c < 0 || c > maxBoundary {
					continue
				}
				if fits(c) {
					best, found = c, true
					break
				}
			}
		}
	}

	if !found {
		result.Conflict = true
		return result
	}

	result.Boundary = best
	result.Snapped = best != clamped
	return result
}

// conflictingSpans lists the spans a part placed at c would collide with,
// sorted by start. A boundary strictly inside a span always collides, even for
// a zero-length part. With shifted set, spans starting at or after c are taken
// as already pushed right, so only spans strictly containing c count.
func conflictingSpans(c, length int, spans []Span, shifted bool) []Span {
	var out []Span
	candidate := Span{Start: c, End: c + length}
	for _, s := range spans {
		if s.Contains(c) || (!shifted && candidate.Overlaps(s)) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func closer(c, best, desired int) bool {
	dc, db := abs(c-desired), abs(best-desired)
	if dc != db {
		return dc < db
	}
	return c < best
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
