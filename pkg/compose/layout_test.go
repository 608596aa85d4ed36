package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yumyai/genecanvas/pkg/seq"
)

func TestBuildLayoutIdentity(t *testing.T) {
	l := BuildLayout(seq.Parse("ACGT"), nil)

	assert.Equal(t, 4, l.Len())
	assert.Equal(t, []int{0, 1, 2, 3}, l.ToBackground)
	assert.Empty(t, l.Spans)
	for i := 0; i < 4; i++ {
		assert.False(t, l.IsComposedIndexOwnedByPart(i))
	}
	assert.Equal(t, 2, l.TranslateInsertionToBackground(2))
	require.NoError(t, l.CheckBijection())
}

func TestBuildLayoutWithParts(t *testing.T) {
	p := Part{ID: "p", Sequence: seq.Parse("GGG"), Boundary: 2, Placed: true}
	q := Part{ID: "q", Sequence: seq.Parse("CC"), Boundary: 8, Placed: true}

	l := BuildLayout(seq.Repeat(seq.A, 10), []Part{q, p})

	assert.Equal(t, 15, l.Len())
	assert.Equal(t, "AAGGGAAACCAAAAA", l.Sequence.String())
	assert.Equal(t, []int{0, 1, -1, -1, -1, 2, 3, 4, -1, -1, 5, 6, 7, 8, 9}, l.ToBackground)
	assert.Equal(t, []Span{{PartID: "p", Start: 2, End: 5}, {PartID: "q", Start: 8, End: 10}}, l.Spans)
	require.NoError(t, l.CheckBijection())

	assert.True(t, l.IsComposedIndexOwnedByPart(3))
	assert.False(t, l.IsComposedIndexOwnedByPart(5))
	assert.False(t, l.IsComposedIndexOwnedByPart(-1))
	assert.False(t, l.IsComposedIndexOwnedByPart(15))

	assert.Equal(t, 2, l.TranslateInsertionToBackground(5))
	assert.Equal(t, 5, l.TranslateInsertionToBackground(8))
	assert.Equal(t, 10, l.TranslateInsertionToBackground(99))

	id, inside := l.IsInsidePart(3)
	assert.True(t, inside)
	assert.Equal(t, "p", id)
	_, inside = l.IsInsidePart(2)
	assert.False(t, inside)

	i, ok := l.ComposedIndexOfBackground(5)
	assert.True(t, ok)
	assert.Equal(t, 10, i)
}

func TestBuildLayoutPartBeyondNaiveTotal(t *testing.T) {
	p := Part{ID: "p", Sequence: seq.Parse("GG"), Boundary: 10, Placed: true}

	l := BuildLayout(seq.Parse("AA"), []Part{p})

	assert.Equal(t, 12, l.Len())
	assert.Equal(t, "AANNNNNNNNGG", l.Sequence.String())
	span, ok := l.SpanOf("p")
	assert.True(t, ok)
	assert.Equal(t, Span{PartID: "p", Start: 10, End: 12}, span)
	require.NoError(t, l.CheckBijection())
}

func TestBuildLayoutZeroLengthPart(t *testing.T) {
	z := Part{ID: "z", Boundary: 2, Placed: true}

	l := BuildLayout(seq.Parse("ACGT"), []Part{z})

	assert.Equal(t, 4, l.Len())
	assert.Equal(t, []Span{{PartID: "z", Start: 2, End: 2}}, l.Spans)
	for i := 0; i < 4; i++ {
		assert.False(t, l.IsComposedIndexOwnedByPart(i))
	}
}

func TestBuildLayoutSkipsFloatingAndAddsPreviews(t *testing.T) {
	floating := Part{ID: "f", Sequence: seq.Parse("TTTT")}
	ghost := Part{ID: "ghost", Sequence: seq.Parse("GG"), Boundary: 1}

	l := BuildLayout(seq.Parse("ACGT"), []Part{floating}, ghost)

	assert.Equal(t, "AGGCGT", l.Sequence.String())
	id, ok := l.PartAt(1)
	assert.True(t, ok)
	assert.Equal(t, "ghost", id)
}
