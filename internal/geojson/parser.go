// Package geojson decodes GeoJSON FeatureCollections into tagged geometry
// variants suitable for point-in-polygon testing and projection.
//
// Only the subset of RFC 7946 needed for region boundary files is handled:
// a single FeatureCollection whose features carry Polygon or MultiPolygon
// geometry and "id"/"name" properties. Anything else fails loudly; this
// package never repairs malformed input.
package geojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// featureCollection mirrors the wire structure of a FeatureCollection.
// Coordinates are kept raw until the geometry type is known.
type featureCollection struct {
	Type     string        `json:"type"`
	Features []featureJSON `json:"features"`
}

type featureJSON struct {
	Properties struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"properties"`
	Geometry struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
}

// ParseFile reads a GeoJSON FeatureCollection from a file.
func ParseFile(path string) ([]Feature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open boundary file: %w", err)
	}
	defer f.Close()

	features, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return features, nil
}

// Parse decodes a FeatureCollection from r.
//
// Returns ErrEmptyCollection for a collection with no features and
// ErrUnsupportedGeometry for any geometry other than Polygon or
// MultiPolygon.
func Parse(r io.Reader) ([]Feature, error) {
	var fc featureCollection
	dec := json.NewDecoder(r)
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, &ErrEmptyCollection{}
	}

	features := make([]Feature, 0, len(fc.Features))
	for _, raw := range fc.Features {
		geometry, err := decodeGeometry(raw.Properties.ID, raw.Geometry.Type, raw.Geometry.Coordinates)
		if err != nil {
			return nil, err
		}
		features = append(features, Feature{
			ID:       raw.Properties.ID,
			Name:     raw.Properties.Name,
			Geometry: geometry,
		})
	}
	return features, nil
}

// decodeGeometry dispatches on the GeoJSON "type" member and builds the
// tagged variant. The nesting depth is fixed by the type, so no structural
// probing of the coordinate arrays is needed.
func decodeGeometry(featureID, geomType string, coords json.RawMessage) (Geometry, error) {
	switch geomType {
	case "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(coords, &rings); err != nil {
			return Geometry{}, fmt.Errorf("feature %q: decode Polygon coordinates: %w", featureID, err)
		}
		polygon, err := buildPolygon(featureID, rings)
		if err != nil {
			return Geometry{}, err
		}
		return Geometry{
			Type:     GeometryTypePolygon,
			Polygons: []Polygon{polygon},
		}, nil

	case "MultiPolygon":
		var parts [][][][]float64
		if err := json.Unmarshal(coords, &parts); err != nil {
			return Geometry{}, fmt.Errorf("feature %q: decode MultiPolygon coordinates: %w", featureID, err)
		}
		polygons := make([]Polygon, 0, len(parts))
		for _, rings := range parts {
			polygon, err := buildPolygon(featureID, rings)
			if err != nil {
				return Geometry{}, err
			}
			polygons = append(polygons, polygon)
		}
		return Geometry{
			Type:     GeometryTypeMultiPolygon,
			Polygons: polygons,
		}, nil

	default:
		return Geometry{}, &ErrUnsupportedGeometry{Type: geomType}
	}
}

func buildPolygon(featureID string, rings [][][]float64) (Polygon, error) {
	polygon := make(Polygon, 0, len(rings))
	for _, ring := range rings {
		points := make(Ring, 0, len(ring))
		for _, position := range ring {
			// RFC 7946 §3.1.1 allows a third (elevation) element; anything
			// beyond the first two components is ignored.
			if len(position) < 2 {
				return nil, &ErrInvalidPosition{FeatureID: featureID, Length: len(position)}
			}
			points = append(points, Point{X: position[0], Y: position[1]})
		}
		polygon = append(polygon, points)
	}
	return polygon, nil
}
