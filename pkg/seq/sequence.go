package seq

import (
	"errors"
	"fmt"
	"strings"
)

// Defining possible error
var ErrOutOfRange = errors.New("sequence index out of range")

// Sequence is an ordered run of symbols. Every splice returns a new Sequence
// and leaves the receiver untouched, so a failed edit never leaves a half
// spliced strand behind.
type Sequence []Symbol

// Parse converts text into a Sequence. Whitespace is skipped, any other
// non-base character becomes N.
func Parse(text string) Sequence {
	out := make(Sequence, 0, len(text))
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\n', '\r':
			continue
		}
		out = append(out, ParseSymbol(text[i]))
	}
	return out
}

// Repeat returns n copies of s.
func Repeat(s Symbol, n int) Sequence {
	if n <= 0 {
		return Sequence{}
	}
	out := make(Sequence, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func (s Sequence) Len() int {
	return len(s)
}

func (s Sequence) String() string {
	var b strings.Builder
	b.Grow(len(s))
	for _, sym := range s {
		b.WriteByte(byte(sym))
	}
	return b.String()
}

func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Slice copies [start, end).
func (s Sequence) Slice(start, end int) (Sequence, error) {
	if start < 0 || end > len(s) || start > end {
		return nil, fmt.Errorf("%w: slice [%d, %d) of %d", ErrOutOfRange, start, end, len(s))
	}
	return s[start:end].Clone(), nil
}

// InsertAt splices symbols in before index at (at == Len() appends).
func (s Sequence) InsertAt(at int, symbols Sequence) (Sequence, error) {
	if at < 0 || at > len(s) {
		return nil, fmt.Errorf("%w: insert at %d of %d", ErrOutOfRange, at, len(s))
	}
	out := make(Sequence, 0, len(s)+len(symbols))
	out = append(out, s[:at]...)
	out = append(out, symbols...)
	out = append(out, s[at:]...)
	return out, nil
}

// DeleteRange removes [start, end).
func (s Sequence) DeleteRange(start, end int) (Sequence, error) {
	if start < 0 || end > len(s) || start > end {
		return nil, fmt.Errorf("%w: delete [%d, %d) of %d", ErrOutOfRange, start, end, len(s))
	}
	out := make(Sequence, 0, len(s)-(end-start))
	out = append(out, s[:start]...)
	out = append(out, s[end:]...)
	return out, nil
}

// Rotate makes origin the new index 0: the tail from origin comes first,
// followed by the head.
func (s Sequence) Rotate(origin int) (Sequence, error) {
	if origin < 0 || origin > len(s) {
		return nil, fmt.Errorf("%w: origin %d of %d", ErrOutOfRange, origin, len(s))
	}
	out := make(Sequence, 0, len(s))
	out = append(out, s[origin:]...)
	out = append(out, s[:origin]...)
	return out, nil
}

func (s Sequence) ReverseComplement() Sequence {
	n := len(s)
	out := make(Sequence, n)
	for i := 0; i < n; i++ {
		out[i] = s[n-1-i].Complement()
	}
	return out
}

func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
