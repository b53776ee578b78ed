// Package tweetmap assigns geotagged social-media posts to geographic
// regions and prepares per-region counts and projected boundaries for
// choropleth rendering.
//
// The pipeline has two independent halves. The counting half streams
// newline-delimited JSON records through location extraction and
// point-in-polygon assignment (LocationExtractor, RegionLocator,
// Aggregator). The display half projects the same region boundaries to
// planar coordinates and computes the viewport (Projection,
// ProjectFeatures, FeatureBounds). The halves share only the feature
// id and name.
package tweetmap

import (
	"github.com/beetlebugorg/tweetmap/internal/geojson"
)

// Point is a coordinate pair: (longitude, latitude) before projection,
// (x, y) after. Always exactly two numeric components.
type Point struct {
	X float64
	Y float64
}

// Ring is a closed sequence of points forming a linear ring.
type Ring []Point

// Polygon is a set of rings; the first ring is the exterior boundary,
// the rest are holes.
type Polygon []Ring

// GeometryType identifies the kind of geometry a feature carries.
type GeometryType int

const (
	// GeometryTypePolygon is a single polygon, possibly with holes.
	GeometryTypePolygon GeometryType = iota

	// GeometryTypeMultiPolygon is a collection of polygons.
	GeometryTypeMultiPolygon
)

// String returns the GeoJSON name of the geometry type.
func (g GeometryType) String() string {
	switch g {
	case GeometryTypePolygon:
		return "Polygon"
	case GeometryTypeMultiPolygon:
		return "MultiPolygon"
	default:
		return "Unknown"
	}
}

// Geometry is a tagged geometry variant fixed at parse time.
//
// Polygons holds one element for Polygon and one per constituent polygon
// for MultiPolygon.
type Geometry struct {
	Type     GeometryType
	Polygons []Polygon
}

// Feature is a named region against which points are tested for
// containment.
//
// A feature is immutable after load: projection produces new Feature
// values rather than rewriting geometry in place.
type Feature struct {
	id       string
	name     string
	geometry Geometry
}

// NewFeature constructs a feature from its id, display name, and boundary
// geometry.
func NewFeature(id, name string, geometry Geometry) Feature {
	return Feature{id: id, name: name, geometry: geometry}
}

// ID returns the stable region identifier.
func (f *Feature) ID() string { return f.id }

// Name returns the display name used in the count table.
func (f *Feature) Name() string { return f.name }

// Geometry returns the boundary geometry of the feature.
func (f *Feature) Geometry() Geometry { return f.geometry }

// LoadFeatures reads a GeoJSON FeatureCollection of region boundaries.
//
// Each feature must carry "id" and "name" properties and Polygon or
// MultiPolygon geometry; any other geometry type is an error. An empty
// collection is a configuration error because the viewport bounds over
// it would be undefined.
func LoadFeatures(path string) ([]Feature, error) {
	parsed, err := geojson.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return convertFeatures(parsed), nil
}

// convertFeatures converts internal parser features to the public API type.
func convertFeatures(parsed []geojson.Feature) []Feature {
	features := make([]Feature, len(parsed))
	for i, f := range parsed {
		features[i] = Feature{
			id:       f.ID,
			name:     f.Name,
			geometry: convertGeometry(f.Geometry),
		}
	}
	return features
}

func convertGeometry(g geojson.Geometry) Geometry {
	polygons := make([]Polygon, len(g.Polygons))
	for i, poly := range g.Polygons {
		rings := make(Polygon, len(poly))
		for j, ring := range poly {
			points := make(Ring, len(ring))
			for k, pt := range ring {
				points[k] = Point{X: pt.X, Y: pt.Y}
			}
			rings[j] = points
		}
		polygons[i] = rings
	}
	return Geometry{
		Type:     GeometryType(g.Type),
		Polygons: polygons,
	}
}
