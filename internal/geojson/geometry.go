package geojson

// Point is a single position in [longitude, latitude] order.
//
// RFC 7946 §3.1.1: the first element is longitude, the second latitude.
// X holds longitude and Y latitude so the same struct can carry projected
// planar coordinates without reinterpretation.
type Point struct {
	X float64
	Y float64
}

// Ring is a closed sequence of positions forming a linear ring.
type Ring []Point

// Polygon is a set of rings. The first ring is the exterior boundary,
// any following rings are holes (RFC 7946 §3.1.6).
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

// Geometry is a tagged geometry variant.
//
// The variant is fixed at parse time from the GeoJSON "type" member, so
// consumers never have to probe coordinate nesting depth at runtime.
// Polygons holds one element for Polygon and one per constituent polygon
// for MultiPolygon.
type Geometry struct {
	Type     GeometryType
	Polygons []Polygon
}

// Feature is a named region with a stable identifier.
//
// ID and Name come from the feature's "properties" object. Geometry is the
// region boundary in unprojected geographic coordinates.
type Feature struct {
	ID       string
	Name     string
	Geometry Geometry
}
