package tweetmap

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// UnknownRegion is the sentinel region id for a record whose location
// could not be extracted or did not fall inside any known region.
const UnknownRegion = ""

// RegionLocator finds which region's polygon contains a point.
//
// Containment is tested in raw geographic coordinates against the
// unprojected features. An R-tree over region bounding boxes narrows
// each lookup to a handful of candidates; candidates are then tested in
// feature input order, so a point on a shared boundary between two
// adjacent regions is assigned to the first region in input order. That
// tie-break is part of the contract, not an accident of iteration.
//
// A point exactly on a region boundary counts as contained.
//
// The locator is read-only after construction and safe for concurrent
// use from multiple goroutines.
type RegionLocator struct {
	regions []*indexedRegion
	rtree   *rtreego.Rtree
}

// indexedRegion wraps a feature for R-tree storage, keeping its input
// position so candidate sets can be replayed in collection order.
type indexedRegion struct {
	order   int
	feature Feature
	bounds  Bounds
}

// Bounds implements rtreego.Spatial.
func (r *indexedRegion) Bounds() rtreego.Rect {
	point := rtreego.Point{r.bounds.MinX, r.bounds.MinY}

	// R-tree rectangles need non-zero dimensions; pad degenerate
	// bounding boxes (~11 meters at the equator).
	const epsilon = 0.0001
	width := r.bounds.MaxX - r.bounds.MinX
	height := r.bounds.MaxY - r.bounds.MinY
	if width < epsilon {
		width = epsilon
	}
	if height < epsilon {
		height = epsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{width, height})
	return rect
}

// NewRegionLocator builds a locator over the given features in input
// order.
func NewRegionLocator(features []Feature) *RegionLocator {
	locator := &RegionLocator{
		regions: make([]*indexedRegion, len(features)),
		rtree:   rtreego.NewTree(2, 25, 50),
	}
	for i, feature := range features {
		region := &indexedRegion{
			order:   i,
			feature: feature,
			bounds:  geometryBounds(feature.Geometry()),
		}
		locator.regions[i] = region
		locator.rtree.Insert(region)
	}
	return locator
}

// Locate returns the id of the first region in input order whose polygon
// contains the point, or (UnknownRegion, false) when no region does.
func (l *RegionLocator) Locate(pt Point) (string, bool) {
	const epsilon = 1e-9
	rect, _ := rtreego.NewRect(rtreego.Point{pt.X, pt.Y}, []float64{epsilon, epsilon})

	candidates := l.rtree.SearchIntersect(rect)
	regions := make([]*indexedRegion, 0, len(candidates))
	for _, candidate := range candidates {
		regions = append(regions, candidate.(*indexedRegion))
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].order < regions[j].order })

	for _, region := range regions {
		if geometryContains(region.feature.Geometry(), pt) {
			return region.feature.ID(), true
		}
	}
	return UnknownRegion, false
}

// geometryContains reports whether any constituent polygon contains the
// point.
func geometryContains(g Geometry, pt Point) bool {
	for _, polygon := range g.Polygons {
		if polygonContains(polygon, pt) {
			return true
		}
	}
	return false
}

// polygonContains tests one polygon with hole semantics: inside the
// exterior ring and outside every hole. Points on any ring boundary,
// including hole boundaries, count as contained.
func polygonContains(polygon Polygon, pt Point) bool {
	if len(polygon) == 0 {
		return false
	}
	for _, ring := range polygon {
		if onRing(pt, ring) {
			return true
		}
	}
	if !inRing(pt, polygon[0]) {
		return false
	}
	for _, hole := range polygon[1:] {
		if inRing(pt, hole) {
			return false
		}
	}
	return true
}

// inRing is the even-odd ray casting test.
func inRing(pt Point, ring Ring) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].X, ring[i].Y
		xj, yj := ring[j].X, ring[j].Y
		if (yi > pt.Y) != (yj > pt.Y) &&
			pt.X < (xj-xi)*(pt.Y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// onRing reports whether the point lies on any segment of the ring.
func onRing(pt Point, ring Ring) bool {
	n := len(ring)
	if n < 2 {
		return false
	}
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		if onSegment(pt, ring[j], ring[i]) {
			return true
		}
	}
	return false
}

// onSegment reports whether p lies on the segment from a to b.
func onSegment(p, a, b Point) bool {
	const epsilon = 1e-12
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > epsilon {
		return false
	}
	return p.X >= math.Min(a.X, b.X)-epsilon && p.X <= math.Max(a.X, b.X)+epsilon &&
		p.Y >= math.Min(a.Y, b.Y)-epsilon && p.Y <= math.Max(a.Y, b.Y)+epsilon
}

// geometryBounds folds the axis-aligned bounding box over every
// coordinate in the geometry.
func geometryBounds(g Geometry) Bounds {
	b := Bounds{
		MinX: math.MaxFloat64,
		MinY: math.MaxFloat64,
		MaxX: -math.MaxFloat64,
		MaxY: -math.MaxFloat64,
	}
	for _, polygon := range g.Polygons {
		for _, ring := range polygon {
			for _, pt := range ring {
				b.MinX = math.Min(b.MinX, pt.X)
				b.MaxX = math.Max(b.MaxX, pt.X)
				b.MinY = math.Min(b.MinY, pt.Y)
				b.MaxY = math.Max(b.MaxY, pt.Y)
			}
		}
	}
	return b
}
