package compose

import (
	"go.uber.org/zap"

	"github.com/yumyai/genecanvas/pkg/seq"
)

// Background edits address composed coordinates but only ever touch
// background symbols. A selection [start, end) must map onto background with
// no part in between; start > end is a selection wrapping over the origin.

// CopySelection returns the background symbols under a composed selection.
func (e *Editor) CopySelection(start, end int) (seq.Sequence, error) {
	sel, err := e.selection("copy", start, end)
	if err != nil {
		return nil, err
	}
	return sel.copyFrom(e.background), nil
}

// DeleteSelection removes the background symbols under a composed selection
// and pulls later parts left.
func (e *Editor) DeleteSelection(start, end int) error {
	_, err := e.cut("delete selection", start, end)
	return err
}

// CutSelection is CopySelection followed by DeleteSelection.
func (e *Editor) CutSelection(start, end int) (seq.Sequence, error) {
	return e.cut("cut selection", start, end)
}

func (e *Editor) cut(op string, start, end int) (seq.Sequence, error) {
	sel, err := e.selection(op, start, end)
	if err != nil {
		return nil, err
	}
	removed := sel.copyFrom(e.background)

	var background seq.Sequence
	if sel.wrapped {
		background, err = e.background.Slice(sel.bgEnd, sel.bgStart)
	} else {
		background, err = e.background.DeleteRange(sel.bgStart, sel.bgEnd)
	}
	if err != nil {
		return nil, editErr(op, ErrInvalidRange, "%v", err)
	}

	parts := e.Parts()
	var report ShiftReport
	if !sel.wrapped {
		parts, report = ShiftAfterBackgroundEdit(parts, start, -len(removed))
	}

	e.commit(op, background, parts, report)
	e.log.Debug("Removed background", zap.String("op", op), zap.Int("start", start), zap.Int("end", end), zap.Int("count", len(removed)))
	return removed, nil
}

// Paste splices symbols into the background at a composed boundary and
// pushes every part at or after the boundary right by the inserted count.
func (e *Editor) Paste(boundary int, symbols seq.Sequence) error {
	const op = "paste"

	layout := e.Layout()
	if boundary < 0 || boundary > layout.Len() {
		return editErr(op, ErrInvalidRange, "boundary %d outside [0, %d]", boundary, layout.Len())
	}
	if id, inside := layout.IsInsidePart(boundary); inside {
		return editErr(op, ErrInvalidRange, "boundary %d is inside part %q", boundary, id)
	}
	if len(symbols) == 0 {
		return nil
	}

	at := layout.TranslateInsertionToBackground(boundary)
	background, err := e.background.InsertAt(at, symbols)
	if err != nil {
		return editErr(op, ErrInvalidRange, "%v", err)
	}
	parts, report := ShiftAtOrAfter(e.parts, boundary, len(symbols), "")

	e.commit(op, background, parts, report)
	e.log.Debug("Pasted background", zap.Int("boundary", boundary), zap.Int("background_index", at), zap.Int("count", len(symbols)))
	return nil
}

// SetOrigin rotates the circular design so that origin becomes boundary 0.
// The origin must lie strictly inside the composed space and must not fall
// strictly inside a part.
func (e *Editor) SetOrigin(origin int) error {
	const op = "set origin"

	layout := e.Layout()
	n := layout.Len()
	if origin <= 0 || origin >= n {
		return editErr(op, ErrInvalidRange, "origin %d outside (0, %d)", origin, n)
	}
	if id, inside := layout.IsInsidePart(origin); inside {
		return editErr(op, ErrUnsupportedEdit, "origin %d is inside part %q", origin, id)
	}

	background, err := e.background.Rotate(layout.TranslateInsertionToBackground(origin))
	if err != nil {
		return editErr(op, ErrInvalidRange, "%v", err)
	}

	parts := e.Parts()
	for i := range parts {
		if parts[i].Placed {
			parts[i].Boundary = ((parts[i].Boundary-origin)%n + n) % n
		}
	}

	e.commit(op, background, parts)
	e.log.Debug("Rotated origin", zap.Int("origin", origin), zap.Int("length", n))
	return nil
}

type selection struct {
	wrapped        bool
	bgStart, bgEnd int
}

func (s selection) copyFrom(background seq.Sequence) seq.Sequence {
	if !s.wrapped {
		return background[s.bgStart:s.bgEnd].Clone()
	}
	out := make(seq.Sequence, 0, len(background)-s.bgStart+s.bgEnd)
	out = append(out, background[s.bgStart:]...)
	out = append(out, background[:s.bgEnd]...)
	return out
}

// selection maps a composed selection onto background indices, rejecting
// anything that would touch part content.
func (e *Editor) selection(op string, start, end int) (selection, error) {
	layout := e.Layout()
	n := layout.Len()

	if start < 0 || end < 0 || start > n || end > n {
		return selection{}, editErr(op, ErrInvalidRange, "selection [%d, %d) outside [0, %d]", start, end, n)
	}

	if start > end {
		if len(layout.Spans) > 0 {
			return selection{}, editErr(op, ErrUnsupportedEdit, "selection [%d, %d) wraps the origin of a design with placed parts", start, end)
		}
		// No placed parts: composed and background coordinates coincide.
		return selection{wrapped: true, bgStart: start, bgEnd: end}, nil
	}

	for _, s := range layout.Spans {
		if s.Start < end && start < s.End && s.Len() > 0 {
			return selection{}, editErr(op, ErrUnsupportedEdit, "selection [%d, %d) covers part %q [%d, %d)", start, end, s.PartID, s.Start, s.End)
		}
		if s.Len() == 0 && start < s.Start && s.Start < end {
			return selection{}, editErr(op, ErrUnsupportedEdit, "selection [%d, %d) straddles part %q at %d", start, end, s.PartID, s.Start)
		}
	}
	for i := start; i < end; i++ {
		if _, ok := layout.BackgroundIndex(i); !ok {
			return selection{}, editErr(op, ErrUnsupportedEdit, "composed index %d is not backed by background", i)
		}
	}

	bgStart := layout.TranslateInsertionToBackground(start)
	return selection{bgStart: bgStart, bgEnd: bgStart + (end - start)}, nil
}
