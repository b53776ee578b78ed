package tweetmap

import (
	"fmt"

	"github.com/ctessum/geom/proj"
)

// Projection maps a (longitude, latitude) pair to planar (x, y)
// coordinates for display.
type Projection interface {
	// Project transforms geographic coordinates in decimal degrees to
	// planar coordinates. Implementations must be pure: the same input
	// always yields the same output.
	Project(lon, lat float64) (x, y float64, err error)
}

// Proj4 strings for the three AlbersUSA sub-projections. These match the
// ESRI/EPSG definitions used by D3's albersUsa composite:
//
//	lower48: USA Contiguous Albers Equal Area Conic
//	alaska:  NAD83 / Alaska Albers
//	hawaii:  Hawaii Albers Equal Area Conic
const (
	lower48Proj4 = "+proj=aea +lat_1=29.5 +lat_2=45.5 +lat_0=37.5 +lon_0=-96 +x_0=0 +y_0=0 +ellps=GRS80 +datum=NAD83 +units=m +no_defs"
	alaskaProj4  = "+proj=aea +lat_1=55 +lat_2=65 +lat_0=50 +lon_0=-154 +x_0=0 +y_0=0 +ellps=GRS80 +datum=NAD83 +units=m +no_defs"
	hawaiiProj4  = "+proj=aea +lat_1=8 +lat_2=18 +lat_0=13 +lon_0=-157 +x_0=0 +y_0=0 +ellps=GRS80 +datum=NAD83 +units=m +no_defs"
)

// AlbersUSA is a composite projection that packs Alaska, Hawaii, and
// Puerto Rico next to the contiguous United States in one compact frame.
//
// Routing between the three conic sub-projections is a pure function of
// fixed thresholds: latitudes above 50° go through the Alaska projection
// (scaled by 0.35 and translated), longitudes west of -140° through the
// Hawaii projection (translated), everything else through the lower-48
// projection with an extra translation below 20° latitude for Puerto
// Rico. The thresholds and translation constants are empirical values
// chosen for visual packing and are reproduced exactly.
type AlbersUSA struct {
	lower48 proj.Transformer
	alaska  proj.Transformer
	hawaii  proj.Transformer
}

// NewAlbersUSA builds the composite AlbersUSA projection.
func NewAlbersUSA() (*AlbersUSA, error) {
	src, err := proj.Parse("+proj=longlat +datum=NAD83")
	if err != nil {
		return nil, fmt.Errorf("parse geographic source: %w", err)
	}

	transform := func(proj4 string) (proj.Transformer, error) {
		dst, err := proj.Parse(proj4)
		if err != nil {
			return nil, err
		}
		return src.NewTransform(dst)
	}

	p := &AlbersUSA{}
	if p.lower48, err = transform(lower48Proj4); err != nil {
		return nil, fmt.Errorf("lower48 projection: %w", err)
	}
	if p.alaska, err = transform(alaskaProj4); err != nil {
		return nil, fmt.Errorf("alaska projection: %w", err)
	}
	if p.hawaii, err = transform(hawaiiProj4); err != nil {
		return nil, fmt.Errorf("hawaii projection: %w", err)
	}
	return p, nil
}

// Project implements Projection.
func (p *AlbersUSA) Project(lon, lat float64) (float64, float64, error) {
	switch {
	case lat > 50:
		x, y, err := p.alaska(lon, lat)
		if err != nil {
			return 0, 0, err
		}
		return x*0.35 - 2250000, y*0.35 - 1250000, nil
	case lon < -140:
		x, y, err := p.hawaii(lon, lat)
		if err != nil {
			return 0, 0, err
		}
		return x - 1250000, y - 1750000, nil
	default:
		x, y, err := p.lower48(lon, lat)
		if err != nil {
			return 0, 0, err
		}
		if lat < 20 { // Puerto Rico
			x -= 1125000
			y += 750000
		}
		return x, y, nil
	}
}

// namedProjection delegates to an arbitrary proj4 projection id.
type namedProjection struct {
	name      string
	transform proj.Transformer
}

// NewNamedProjection builds a pass-through projection for any projection
// id the geodesy library recognizes (e.g. "merc", "lcc"). An unknown id
// is a configuration error reported at setup time.
func NewNamedProjection(name string) (Projection, error) {
	src, err := proj.Parse("+proj=longlat +datum=WGS84")
	if err != nil {
		return nil, fmt.Errorf("parse geographic source: %w", err)
	}
	dst, err := proj.Parse("+proj=" + name)
	if err != nil {
		return nil, fmt.Errorf("unknown projection %q: %w", name, err)
	}
	transform, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("projection %q: %w", name, err)
	}
	return &namedProjection{name: name, transform: transform}, nil
}

func (p *namedProjection) Project(lon, lat float64) (float64, float64, error) {
	return p.transform(lon, lat)
}

// Identity passes coordinates through unchanged. Useful for planar input
// data and for testing.
type Identity struct{}

// Project implements Projection.
func (Identity) Project(lon, lat float64) (float64, float64, error) {
	return lon, lat, nil
}

// NewProjection selects a projection by name. "albersUsa" builds the
// composite projection; any other name is delegated to the geodesy
// library.
func NewProjection(name string) (Projection, error) {
	if name == "albersUsa" {
		return NewAlbersUSA()
	}
	return NewNamedProjection(name)
}
