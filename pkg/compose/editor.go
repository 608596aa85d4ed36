package compose

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yumyai/genecanvas/pkg/seq"
)

// Editor owns a background strand and its parts. The two always change
// together: every edit that touches one adjusts the other in the same step.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	background seq.Sequence
	parts      []Part
	log        *zap.Logger
	strict     bool
}

type Option func(*Editor)

func WithLogger(log *zap.Logger) Option {
	return func(e *Editor) {
		if log != nil {
			e.log = log
		}
	}
}

// WithStrictIntegrity makes integrity violations panic instead of being
// clamped and logged.
func WithStrictIntegrity(strict bool) Option {
	return func(e *Editor) {
		e.strict = strict
	}
}

func NewEditor(background seq.Sequence, opts ...Option) *Editor {
	e := &Editor{
		background: background.Clone(),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Restore rebuilds an editor from a saved arrangement. Parts keep their
// boundaries as given; every problem found is reported, not only the first.
func Restore(background seq.Sequence, parts []Part, opts ...Option) (*Editor, error) {
	e := NewEditor(background, opts...)

	var errs error
	seen := make(map[string]bool, len(parts))
	restored := make([]Part, 0, len(parts))
	for _, p := range parts {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if seen[p.ID] {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q", ErrDuplicatePart, p.ID))
			continue
		}
		seen[p.ID] = true
		if p.Placed && p.Boundary < 0 {
			errs = multierr.Append(errs, fmt.Errorf("%w: part %q at negative boundary %d", ErrInvalidRange, p.ID, p.Boundary))
			continue
		}
		p.Sequence = p.Sequence.Clone()
		restored = append(restored, p)
	}
	errs = multierr.Append(errs, checkOverlaps(restored))
	if errs != nil {
		return nil, errs
	}

	e.parts = restored
	return e, nil
}

// Background returns a copy of the background strand.
func (e *Editor) Background() seq.Sequence {
	return e.background.Clone()
}

// Parts returns a copy of every part, placed or floating, in insertion order.
func (e *Editor) Parts() []Part {
	return cloneParts(e.parts)
}

func (e *Editor) Part(id string) (Part, bool) {
	i := indexOf(e.parts, id)
	if i < 0 {
		return Part{}, false
	}
	return e.parts[i], true
}

// Layout builds a fresh composed view. Preview parts are laid out as if
// placed but are not added to the editor.
func (e *Editor) Layout(previews ...Part) *Layout {
	return BuildLayout(e.background, e.parts, previews...)
}

func (e *Editor) ComposedLength() int {
	return e.Layout().Len()
}

func (e *Editor) IsComposedIndexOwnedByPart(i int) bool {
	return e.Layout().IsComposedIndexOwnedByPart(i)
}

// InsertPart places a new part as close to desired as possible and pushes
// every part at or after the resolved boundary to the right. An empty ID is
// replaced with a generated one, which is returned.
func (e *Editor) InsertPart(p Part, desired int) (string, Placement, error) {
	const op = "insert part"

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if indexOf(e.parts, p.ID) >= 0 {
		return "", Placement{}, editErr(op, ErrDuplicatePart, "part %q already exists", p.ID)
	}

	placement := e.resolveInsert(p.Len(), desired)
	parts, report := ShiftAtOrAfter(e.parts, placement.Boundary, p.Len(), "")

	p.Sequence = p.Sequence.Clone()
	p.Boundary, p.Placed = placement.Boundary, true
	parts = append(parts, p)

	e.commit(op, e.background, parts, report)
	e.logPlacement(op, p.ID, desired, placement)
	return p.ID, placement, nil
}

// AddFloating adds a part that is not attached anywhere yet.
func (e *Editor) AddFloating(p Part) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if indexOf(e.parts, p.ID) >= 0 {
		return "", editErr("add part", ErrDuplicatePart, "part %q already exists", p.ID)
	}
	p.Sequence = p.Sequence.Clone()
	p.Boundary, p.Placed = 0, false
	e.parts = append(cloneParts(e.parts), p)
	return p.ID, nil
}

// PlacePart attaches a floating part with the same rules as InsertPart. An
// already placed part is moved instead.
func (e *Editor) PlacePart(id string, desired int) (Placement, error) {
	const op = "place part"

	i := indexOf(e.parts, id)
	if i < 0 {
		return Placement{}, editErr(op, ErrUnknownPart, "no part %q", id)
	}
	if e.parts[i].Placed {
		return e.MovePart(id, desired)
	}

	length := e.parts[i].Len()
	placement := e.resolveInsert(length, desired)
	parts, report := ShiftAtOrAfter(e.parts, placement.Boundary, length, id)
	parts[i].Boundary, parts[i].Placed = placement.Boundary, true

	e.commit(op, e.background, parts, report)
	e.logPlacement(op, id, desired, placement)
	return placement, nil
}

// DeletePart removes a part and closes the gap it leaves. The background is
// never touched: parts are overlays.
func (e *Editor) DeletePart(id string) error {
	const op = "delete part"

	i := indexOf(e.parts, id)
	if i < 0 {
		return editErr(op, ErrUnknownPart, "no part %q", id)
	}
	p := e.parts[i]

	parts := make([]Part, 0, len(e.parts)-1)
	parts = append(parts, e.parts[:i]...)
	parts = append(parts, e.parts[i+1:]...)

	var report ShiftReport
	if p.Placed {
		parts, report = ShiftAtOrAfter(parts, p.End(), -p.Len(), "")
	}

	e.commit(op, e.background, parts, report)
	e.log.Debug("Deleted part", zap.String("part_id", id))
	return nil
}

// MovePart repositions a placed part. The part is first taken out, closing
// its gap; desired is translated into that closed space and resolved there,
// then the space is reopened at the resolved boundary. Resolving in the open
// space would let the part collide with itself.
func (e *Editor) MovePart(id string, desired int) (Placement, error) {
	const op = "move part"

	i := indexOf(e.parts, id)
	if i < 0 {
		return Placement{}, editErr(op, ErrUnknownPart, "no part %q", id)
	}
	p := e.parts[i]
	if !p.Placed {
		return e.PlacePart(id, desired)
	}

	length := p.Len()
	openLength := e.ComposedLength()
	closed, closeReport := ShiftAtOrAfter(e.parts, p.End(), -length, id)

	target := desired
	switch {
	case desired >= p.End():
		target = desired - length
	case desired > p.Boundary:
		target = p.Boundary
	}

	others := make([]Span, 0, len(closed))
	for _, q := range closed {
		if q.Placed && q.ID != id {
			others = append(others, q.Span())
		}
	}
	placement := ResolvePlacement(target, length, others, PlacementOptions{
		ComposedLength: openLength - length,
		Repositioning:  true,
	})

	reopened, openReport := ShiftAtOrAfter(closed, placement.Boundary, length, id)
	reopened[i].Boundary = placement.Boundary

	e.commit(op, e.background, reopened, closeReport, openReport)
	e.logPlacement(op, id, desired, placement)
	return placement, nil
}

func (e *Editor) resolveInsert(length, desired int) Placement {
	spans := placedSpans(e.parts)
	n := e.ComposedLength()

	p := ResolvePlacement(desired, length, spans, PlacementOptions{ComposedLength: n})
	if !p.Conflict {
		return p
	}

	// Nothing is free under the insert rule. Any boundary that is not strictly
	// inside a part still keeps parts disjoint once later parts are pushed right.
	fallback := ResolvePlacement(p.Boundary, length, spans, PlacementOptions{ComposedLength: n, Repositioning: true})
	fallback.Snapped = fallback.Boundary != p.Boundary
	fallback.Clamped = p.Clamped
	fallback.Conflict = true
	fallback.Blocking = p.Blocking
	return fallback
}

func (e *Editor) logPlacement(op, id string, desired int, p Placement) {
	switch {
	case p.Conflict:
		e.log.Warn("No free boundary, placed at nearest part edge",
			zap.String("op", op),
			zap.String("part_id", id),
			zap.Int("desired", desired),
			zap.Int("boundary", p.Boundary),
			zap.Strings("blocking", p.Blocking),
		)
	case p.Snapped:
		e.log.Debug("Placement snapped",
			zap.String("op", op),
			zap.String("part_id", id),
			zap.Int("desired", desired),
			zap.Int("boundary", p.Boundary),
			zap.Strings("blocking", p.Blocking),
		)
	default:
		e.log.Debug("Placed part", zap.String("op", op), zap.String("part_id", id), zap.Int("boundary", p.Boundary))
	}
}

// commit swaps in the new state once it has been checked. A violation panics
// in strict mode, leaving the editor as it was; otherwise it is logged and the
// state is taken over with the clamped values.
func (e *Editor) commit(op string, background seq.Sequence, parts []Part, reports ...ShiftReport) {
	var errs error
	for _, r := range reports {
		if !r.OK() {
			errs = multierr.Append(errs, fmt.Errorf("%w: negative boundary clamped to 0 for %v", ErrIntegrity, r.Clamped))
		}
	}
	layout := BuildLayout(background, parts)
	errs = multierr.Combine(errs, checkOverlaps(parts), layout.CheckBijection(), layout.CheckAnchors(parts))
	if errs != nil {
		e.integrity(op, errs)
	}

	e.background, e.parts = background, parts
}

func (e *Editor) integrity(op string, err error) {
	if e.strict {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	e.log.Warn("Structural integrity violation", zap.String("op", op), zap.Error(err))
}

func checkOverlaps(parts []Part) error {
	spans := placedSpans(parts)
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })

	var errs error
	for i := 1; i < len(spans); i++ {
		for j := i - 1; j >= 0; j-- {
			// A zero-length part strictly inside another part also collides.
			if spans[j].Overlaps(spans[i]) || spans[j].Contains(spans[i].Start) {
				errs = multierr.Append(errs, fmt.Errorf("%w: parts %q [%d, %d) and %q [%d, %d) overlap",
					ErrIntegrity, spans[j].PartID, spans[j].Start, spans[j].End, spans[i].PartID, spans[i].Start, spans[i].End))
			}
		}
	}
	return errs
}
