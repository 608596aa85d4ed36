package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePlacementFree(t *testing.T) {
	spans := []Span{{PartID: "p1", Start: 10, End: 20}}

	got := ResolvePlacement(30, 5, spans, PlacementOptions{ComposedLength: 100})

	assert.Equal(t, Placement{Boundary: 30}, got)
}

func TestResolvePlacementClamp(t *testing.T) {
	got := ResolvePlacement(-5, 10, nil, PlacementOptions{ComposedLength: 100})
	assert.Equal(t, 0, got.Boundary)
	assert.True(t, got.Clamped)
	assert.False(t, got.Snapped)

	got = ResolvePlacement(200, 10, nil, PlacementOptions{ComposedLength: 100})
	assert.Equal(t, 90, got.Boundary)

	// A moving part may land right at the end.
	got = ResolvePlacement(200, 10, nil, PlacementOptions{ComposedLength: 100, Repositioning: true})
	assert.Equal(t, 100, got.Boundary)

	// Part longer than the space.
	got = ResolvePlacement(3, 10, nil, PlacementOptions{ComposedLength: 4})
	assert.Equal(t, 0, got.Boundary)
}

func TestResolvePlacementSnapsToNearestSide(t *testing.T) {
	spans := []Span{{PartID: "p1", Start: 10, End: 20}}

	got := ResolvePlacement(12, 5, spans, PlacementOptions{ComposedLength: 100})
	assert.Equal(t, 5, got.Boundary)
	assert.True(t, got.Snapped)
	assert.Equal(t, []string{"p1"}, got.Blocking)

	got = ResolvePlacement(16, 5, spans, PlacementOptions{ComposedLength: 100})
	assert.Equal(t, 20, got.Boundary)
}

func TestResolvePlacementTieTakesLowerBoundary(t *testing.T) {
	spans := []Span{{PartID: "p1", Start: 10, End: 20}}

	// Candidates 6 and 20 are both 7 away from 13.
	got := ResolvePlacement(13, 4, spans, PlacementOptions{ComposedLength: 100})
	assert.Equal(t, 6, got.Boundary)
}

func TestResolvePlacementRepositioning(t *testing.T) {
	spans := []Span{{PartID: "p1", Start: 10, End: 20}}

	// Landing on another part's start is legal: that part gets pushed.
	got := ResolvePlacement(10, 100, spans, PlacementOptions{ComposedLength: 20, Repositioning: true})
	assert.Equal(t, Placement{Boundary: 10, Blocking: []string{"p1"}}, got)

	// Inside a part: its start wins over 5 and 20.
	got = ResolvePlacement(14, 5, spans, PlacementOptions{ComposedLength: 100, Repositioning: true})
	assert.Equal(t, 10, got.Boundary)
	assert.True(t, got.Snapped)
	assert.Equal(t, []string{"p1"}, got.Blocking)

	// Landing just before a part would cover it: snap to the nearer edge.
	got = ResolvePlacement(10, 100, []Span{{PartID: "b", Start: 15, End: 30}}, PlacementOptions{ComposedLength: 200, Repositioning: true})
	assert.Equal(t, Placement{Boundary: 15, Snapped: true, Blocking: []string{"b"}}, got)
}

func TestResolvePlacementFallbackScan(t *testing.T) {
	spans := []Span{
		{PartID: "a", Start: 5, End: 10},
		{PartID: "b", Start: 10, End: 20},
		{PartID: "c", Start: 20, End: 25},
	}

	got := ResolvePlacement(12, 5, spans, PlacementOptions{ComposedLength: 60})

	assert.Equal(t, 0, got.Boundary)
	assert.True(t, got.Snapped)
	assert.False(t, got.Conflict)
	assert.Equal(t, []string{"b"}, got.Blocking)
}

func TestResolvePlacementConflict(t *testing.T) {
	spans := []Span{
		{PartID: "a", Start: 0, End: 8},
		{PartID: "b", Start: 8, End: 20},
		{PartID: "c", Start: 20, End: 28},
	}

	got := ResolvePlacement(12, 5, spans, PlacementOptions{ComposedLength: 30})

	assert.True(t, got.Conflict)
	assert.Equal(t, 12, got.Boundary)
	assert.NotEmpty(t, got.Blocking)
}

func TestResolvePlacementDeterministic(t *testing.T) {
	spans := []Span{
		{PartID: "a", Start: 3, End: 9},
		{PartID: "b", Start: 30, End: 44},
		{PartID: "c", Start: 44, End: 50},
	}
	opts := PlacementOptions{ComposedLength: 80}

	for desired := -3; desired < 85; desired++ {
		first := ResolvePlacement(desired, 7, spans, opts)
		second := ResolvePlacement(desired, 7, spans, opts)
		assert.Equal(t, first, second, "desired %d", desired)
	}
}

func TestResolvePlacementZeroLength(t *testing.T) {
	spans := []Span{{PartID: "p1", Start: 10, End: 20}}

	// Strictly inside a part is never a valid boundary, whatever the length.
	got := ResolvePlacement(15, 0, spans, PlacementOptions{ComposedLength: 100})
	assert.Equal(t, Placement{Boundary: 10, Snapped: true, Blocking: []string{"p1"}}, got)

	got = ResolvePlacement(17, 0, spans, PlacementOptions{ComposedLength: 100, Repositioning: true})
	assert.Equal(t, Placement{Boundary: 20, Snapped: true, Blocking: []string{"p1"}}, got)

	// Part edges are fine.
	for _, b := range []int{10, 20} {
		got = ResolvePlacement(b, 0, spans, PlacementOptions{ComposedLength: 100})
		assert.Equal(t, Placement{Boundary: b}, got)
	}
}
