package tweetmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square builds a closed unit ring from (x0, y0) to (x1, y1).
func square(x0, y0, x1, y1 float64) Ring {
	return Ring{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
		{X: x0, Y: y0},
	}
}

func squareFeature(id, name string, x0, y0, x1, y1 float64) Feature {
	return NewFeature(id, name, Geometry{
		Type:     GeometryTypePolygon,
		Polygons: []Polygon{{square(x0, y0, x1, y1)}},
	})
}

// twoSquares is the region fixture used across the package tests: unit
// square "A" at the origin and unit square "B" at (2,2)-(3,3).
func twoSquares() []Feature {
	return []Feature{
		squareFeature("A", "Alpha", 0, 0, 1, 1),
		squareFeature("B", "Beta", 2, 2, 3, 3),
	}
}

func TestLocateInside(t *testing.T) {
	locator := NewRegionLocator(twoSquares())

	tests := []struct {
		name  string
		point Point
		want  string
	}{
		{"center of A", Point{X: 0.5, Y: 0.5}, "A"},
		{"center of B", Point{X: 2.5, Y: 2.5}, "B"},
		{"near corner of A", Point{X: 0.001, Y: 0.999}, "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := locator.Locate(tt.point)
			require.True(t, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestLocateOutside(t *testing.T) {
	locator := NewRegionLocator(twoSquares())

	tests := []struct {
		name  string
		point Point
	}{
		{"far away", Point{X: 9, Y: 9}},
		{"between the squares", Point{X: 1.5, Y: 1.5}},
		{"outside all bounding envelopes", Point{X: -100, Y: 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := locator.Locate(tt.point)
			assert.False(t, ok)
			assert.Equal(t, UnknownRegion, id)
		})
	}
}

// A point on the shared edge of two adjacent regions belongs to the
// first region in input order. This is a pinned contract, not an
// iteration accident.
func TestLocateSharedBoundaryFirstWins(t *testing.T) {
	left := squareFeature("L", "Left", 0, 0, 1, 1)
	right := squareFeature("R", "Right", 1, 0, 2, 1)

	id, ok := NewRegionLocator([]Feature{left, right}).Locate(Point{X: 1, Y: 0.5})
	require.True(t, ok)
	assert.Equal(t, "L", id)

	// Reversed input order flips the winner.
	id, ok = NewRegionLocator([]Feature{right, left}).Locate(Point{X: 1, Y: 0.5})
	require.True(t, ok)
	assert.Equal(t, "R", id)
}

func TestLocateBoundaryContained(t *testing.T) {
	locator := NewRegionLocator(twoSquares())

	for _, pt := range []Point{
		{X: 0, Y: 0},   // corner
		{X: 1, Y: 0.5}, // edge
		{X: 0.5, Y: 1}, // edge
	} {
		id, ok := locator.Locate(pt)
		require.True(t, ok, "point %+v should be contained", pt)
		assert.Equal(t, "A", id)
	}
}

func TestLocateMultiPolygon(t *testing.T) {
	islands := NewFeature("I", "Islands", Geometry{
		Type: GeometryTypeMultiPolygon,
		Polygons: []Polygon{
			{square(0, 0, 1, 1)},
			{square(10, 10, 11, 11)},
		},
	})
	locator := NewRegionLocator([]Feature{islands})

	id, ok := locator.Locate(Point{X: 10.5, Y: 10.5})
	require.True(t, ok)
	assert.Equal(t, "I", id)

	_, ok = locator.Locate(Point{X: 5, Y: 5})
	assert.False(t, ok)
}

func TestLocateHole(t *testing.T) {
	donut := NewFeature("D", "Donut", Geometry{
		Type: GeometryTypePolygon,
		Polygons: []Polygon{{
			square(0, 0, 10, 10),
			square(4, 4, 6, 6), // hole
		}},
	})
	locator := NewRegionLocator([]Feature{donut})

	_, ok := locator.Locate(Point{X: 5, Y: 5})
	assert.False(t, ok, "point inside the hole is not contained")

	id, ok := locator.Locate(Point{X: 2, Y: 2})
	require.True(t, ok)
	assert.Equal(t, "D", id)

	id, ok = locator.Locate(Point{X: 4, Y: 5})
	require.True(t, ok, "point on the hole boundary counts as contained")
	assert.Equal(t, "D", id)
}
