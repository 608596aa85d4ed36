package compose

// ShiftReport lists the parts whose shifted boundary had to be clamped at 0.
// A non-empty report means an edit was applied out of order.
type ShiftReport struct {
	Clamped []string
}

func (r ShiftReport) OK() bool {
	return len(r.Clamped) == 0
}

// ShiftAtOrAfter moves every placed part with Boundary >= from by delta.
// Used for part insert, delete and move, where a part sitting exactly on the
// boundary is pushed along.
func ShiftAtOrAfter(parts []Part, from, delta int, excludeID string) ([]Part, ShiftReport) {
	return shift(parts, delta, excludeID, func(b int) bool { return b >= from })
}

// ShiftAfterBackgroundEdit moves every placed part with Boundary > editPoint
// by delta. A part sitting exactly on the edit point stays where it is.
func ShiftAfterBackgroundEdit(parts []Part, editPoint, delta int) ([]Part, ShiftReport) {
	return shift(parts, delta, "", func(b int) bool { return b > editPoint })
}

func shift(parts []Part, delta int, excludeID string, affected func(int) bool) ([]Part, ShiftReport) {
	out := cloneParts(parts)
	var report ShiftReport
	if delta == 0 {
		return out, report
	}
	for i := range out {
		p := &out[i]
		if !p.Placed || (excludeID != "" && p.ID == excludeID) || !affected(p.Boundary) {
			continue
		}
		p.Boundary += delta
		if p.Boundary < 0 {
			p.Boundary = 0
			report.Clamped = append(report.Clamped, p.ID)
		}
	}
	return out, report
}
