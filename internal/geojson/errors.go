package geojson

import (
	"fmt"
)

// ErrUnsupportedGeometry indicates a geometry type other than Polygon
// or MultiPolygon. Region boundary files are expected to contain area
// geometries only, so this is treated as a boundary-file assumption
// violation rather than something to skip silently.
type ErrUnsupportedGeometry struct {
	Type string
}

func (e *ErrUnsupportedGeometry) Error() string {
	return fmt.Sprintf("unsupported geometry type %q (only Polygon and MultiPolygon are supported)", e.Type)
}

// ErrInvalidPosition indicates a coordinate position with fewer than two
// numeric components.
type ErrInvalidPosition struct {
	FeatureID string
	Length    int
}

func (e *ErrInvalidPosition) Error() string {
	return fmt.Sprintf("feature %q: position has %d components, want at least 2",
		e.FeatureID, e.Length)
}

// ErrEmptyCollection indicates a FeatureCollection with no features.
// Bounds over an empty collection are undefined, so an empty boundary
// file is rejected at load time.
type ErrEmptyCollection struct{}

func (e *ErrEmptyCollection) Error() string {
	return "feature collection contains no features"
}
