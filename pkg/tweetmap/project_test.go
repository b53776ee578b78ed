package tweetmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shift translates coordinates by a fixed offset; used to make projected
// output distinguishable from the input.
type shift struct {
	dx, dy float64
}

func (s shift) Project(lon, lat float64) (float64, float64, error) {
	return lon + s.dx, lat + s.dy, nil
}

func TestProjectFeaturesPreservesShape(t *testing.T) {
	features := twoSquares()

	projected, err := ProjectFeatures(features, shift{dx: 100, dy: -50})
	require.NoError(t, err)
	require.Len(t, projected, len(features))

	for i := range features {
		assert.Equal(t, features[i].ID(), projected[i].ID())
		assert.Equal(t, features[i].Name(), projected[i].Name())

		original := features[i].Geometry()
		got := projected[i].Geometry()
		assert.Equal(t, original.Type, got.Type)
		require.Len(t, got.Polygons, len(original.Polygons))
		for j := range original.Polygons {
			require.Len(t, got.Polygons[j], len(original.Polygons[j]))
			for k := range original.Polygons[j] {
				require.Len(t, got.Polygons[j][k], len(original.Polygons[j][k]))
				for m, pt := range original.Polygons[j][k] {
					assert.Equal(t, Point{X: pt.X + 100, Y: pt.Y - 50}, got.Polygons[j][k][m])
				}
			}
		}
	}
}

func TestProjectFeaturesDoesNotMutateInput(t *testing.T) {
	features := twoSquares()
	want := features[0].Geometry().Polygons[0][0][0]

	_, err := ProjectFeatures(features, shift{dx: 1000, dy: 1000})
	require.NoError(t, err)

	assert.Equal(t, want, features[0].Geometry().Polygons[0][0][0],
		"projection must copy, not rewrite in place")
}

func TestProjectFeaturesIdentityUnchanged(t *testing.T) {
	features := twoSquares()

	once, err := ProjectFeatures(features, Identity{})
	require.NoError(t, err)
	twice, err := ProjectFeatures(once, Identity{})
	require.NoError(t, err)

	for i := range features {
		assert.Equal(t, features[i].Geometry(), twice[i].Geometry())
	}
}

func TestFeatureBounds(t *testing.T) {
	bounds, err := FeatureBounds(twoSquares())
	require.NoError(t, err)

	assert.Equal(t, 0.0, bounds.MinX)
	assert.Equal(t, 3.0, bounds.MaxX)
	assert.Equal(t, 0.0, bounds.MinY)
	assert.Equal(t, 3.0, bounds.MaxY)
}

func TestFeatureBoundsSinglePoint(t *testing.T) {
	single := NewFeature("P", "Point-ish", Geometry{
		Type:     GeometryTypePolygon,
		Polygons: []Polygon{{Ring{{X: 2.5, Y: 3.5}}}},
	})

	bounds, err := FeatureBounds([]Feature{single})
	require.NoError(t, err)

	assert.Equal(t, bounds.MinX, bounds.MaxX)
	assert.Equal(t, bounds.MinY, bounds.MaxY)
	assert.Equal(t, 2.5, bounds.MinX)
	assert.Equal(t, 3.5, bounds.MinY)
}

func TestFeatureBoundsEmpty(t *testing.T) {
	_, err := FeatureBounds(nil)
	assert.Error(t, err)
}

func TestBoundsYMargin(t *testing.T) {
	b := Bounds{MinX: -10, MaxX: 10, MinY: 20, MaxY: 40}

	minX, maxX := b.XRange()
	assert.Equal(t, -10.0, minX, "x bounds carry no margin")
	assert.Equal(t, 10.0, maxX)

	minY, maxY := b.YRange()
	assert.InDelta(t, 21.0, minY, 1e-12)
	assert.InDelta(t, 42.0, maxY, 1e-12)
}
