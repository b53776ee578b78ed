package tweetmap

import (
	"fmt"
	"math"
)

// Bounds is an axis-aligned bounding box over planar coordinates.
type Bounds struct {
	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

// XRange returns the horizontal extent of the bounds.
func (b Bounds) XRange() (min, max float64) {
	return b.MinX, b.MaxX
}

// YRange returns the vertical extent with each bound multiplied by a
// 1.05 margin factor. The X bounds carry no margin; the asymmetry is an
// intentional visual choice preserved from the reference rendering.
func (b Bounds) YRange() (min, max float64) {
	return b.MinY * 1.05, b.MaxY * 1.05
}

// ProjectFeatures applies a projection to every coordinate of every
// feature and returns a transformed copy.
//
// The input features are never mutated; geometry is deep-copied with the
// same nesting shape and element count at every level. Feature ids and
// names carry over unchanged so projected features can be joined with
// per-region counts.
func ProjectFeatures(features []Feature, projection Projection) ([]Feature, error) {
	projected := make([]Feature, len(features))
	for i, feature := range features {
		geometry, err := projectGeometry(feature.Geometry(), projection)
		if err != nil {
			return nil, fmt.Errorf("project feature %q: %w", feature.ID(), err)
		}
		projected[i] = Feature{
			id:       feature.id,
			name:     feature.name,
			geometry: geometry,
		}
	}
	return projected, nil
}

func projectGeometry(g Geometry, projection Projection) (Geometry, error) {
	polygons := make([]Polygon, len(g.Polygons))
	for i, polygon := range g.Polygons {
		rings := make(Polygon, len(polygon))
		for j, ring := range polygon {
			points := make(Ring, len(ring))
			for k, pt := range ring {
				x, y, err := projection.Project(pt.X, pt.Y)
				if err != nil {
					return Geometry{}, err
				}
				points[k] = Point{X: x, Y: y}
			}
			rings[j] = points
		}
		polygons[i] = rings
	}
	return Geometry{Type: g.Type, Polygons: polygons}, nil
}

// FeatureBounds computes the bounding box over every coordinate of every
// feature. It is recomputed in full on each call, never incrementally.
//
// Returns an error when the features contain no coordinates at all,
// since bounds over nothing are undefined.
func FeatureBounds(features []Feature) (Bounds, error) {
	b := Bounds{
		MinX: math.MaxFloat64,
		MinY: math.MaxFloat64,
		MaxX: -math.MaxFloat64,
		MaxY: -math.MaxFloat64,
	}
	seen := false
	for _, feature := range features {
		for _, polygon := range feature.Geometry().Polygons {
			for _, ring := range polygon {
				for _, pt := range ring {
					seen = true
					b.MinX = math.Min(b.MinX, pt.X)
					b.MaxX = math.Max(b.MaxX, pt.X)
					b.MinY = math.Min(b.MinY, pt.Y)
					b.MaxY = math.Max(b.MaxY, pt.Y)
				}
			}
		}
	}
	if !seen {
		return Bounds{}, fmt.Errorf("no coordinates to compute bounds over")
	}
	return b, nil
}
