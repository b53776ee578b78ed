// Package render draws the choropleth heat map.
//
// It is a consumer of the core pipeline: given projected region
// boundaries, per-region counts, and viewport bounds it assembles the
// figure and exports it. The core never depends on this package.
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/carto"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/beetlebugorg/tweetmap/pkg/tweetmap"
)

var (
	figWidth  = 10 * vg.Inch
	figHeight = 5 * vg.Inch
)

// WriteMap renders the projected features shaded by count and writes the
// image to path. The output format is selected by the file extension:
// .png, .jpg/.jpeg, .tif/.tiff, or .svg.
//
// Hue is the color ramp hue angle in degrees; regions with more records
// are drawn darker along that hue, zero-count regions are white.
func WriteMap(path string, features []tweetmap.Feature, counts tweetmap.Counts, bounds tweetmap.Bounds, hue float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
		canvas := vgsvg.New(figWidth, figHeight)
		if err := drawMap(draw.New(canvas), features, counts, bounds, hue); err != nil {
			return err
		}
		_, err = canvas.WriteTo(f)
		return err
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		canvas := vgimg.NewWith(vgimg.UseWH(figWidth, figHeight), vgimg.UseDPI(96))
		if err := drawMap(draw.New(canvas), features, counts, bounds, hue); err != nil {
			return err
		}
		switch ext {
		case ".png":
			_, err = vgimg.PngCanvas{Canvas: canvas}.WriteTo(f)
		case ".jpg", ".jpeg":
			_, err = vgimg.JpegCanvas{Canvas: canvas}.WriteTo(f)
		default:
			_, err = vgimg.TiffCanvas{Canvas: canvas}.WriteTo(f)
		}
		return err
	default:
		return fmt.Errorf("unsupported image format %q", ext)
	}
}

func drawMap(dc draw.Canvas, features []tweetmap.Feature, counts tweetmap.Counts, bounds tweetmap.Bounds, hue float64) error {
	minX, maxX := bounds.XRange()
	minY, maxY := bounds.YRange()
	m := carto.NewCanvas(maxY, minY, maxX, minX, dc)

	stroke := color.NRGBA{A: 255}
	lineStyle := draw.LineStyle{Width: 0.25 * vg.Millimeter, Color: stroke}
	glyph := draw.GlyphStyle{Radius: 0.5 * vg.Millimeter, Shape: draw.CircleGlyph{}}

	maxCount := counts.Max()
	for i := range features {
		g, err := featureGeom(features[i].Geometry())
		if err != nil {
			return fmt.Errorf("feature %q: %w", features[i].ID(), err)
		}
		fill := fillColor(counts[features[i].ID()], maxCount, hue)
		glyph.Color = fill
		m.DrawVector(g, fill, lineStyle, glyph)
	}
	return nil
}

// featureGeom converts boundary geometry to the drawing library's types.
func featureGeom(g tweetmap.Geometry) (geom.Geom, error) {
	switch g.Type {
	case tweetmap.GeometryTypePolygon:
		if len(g.Polygons) == 0 {
			return geom.Polygon{}, nil
		}
		return polygonGeom(g.Polygons[0]), nil
	case tweetmap.GeometryTypeMultiPolygon:
		multi := make(geom.MultiPolygon, len(g.Polygons))
		for i, polygon := range g.Polygons {
			multi[i] = polygonGeom(polygon)
		}
		return multi, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %v", g.Type)
	}
}

func polygonGeom(polygon tweetmap.Polygon) geom.Polygon {
	out := make(geom.Polygon, len(polygon))
	for i, ring := range polygon {
		path := make(geom.Path, len(ring))
		for j, pt := range ring {
			path[j] = geom.Point{X: pt.X, Y: pt.Y}
		}
		out[i] = path
	}
	return out
}

// fillColor maps a count to a fill along the configured hue: full count
// is the pure hue at half lightness, zero count fades to white.
func fillColor(count, maxCount int, hue float64) color.NRGBA {
	ratio := 0.0
	if maxCount > 0 {
		ratio = float64(count) / float64(maxCount)
	}
	lightness := 0.5 + (1-ratio)/2
	r, g, b := hlsToRGB(hue/360, lightness, 1)
	return color.NRGBA{
		R: uint8(r*255 + 0.5),
		G: uint8(g*255 + 0.5),
		B: uint8(b*255 + 0.5),
		A: 255,
	}
}

// hlsToRGB converts hue/lightness/saturation (all in [0, 1]) to RGB.
func hlsToRGB(h, l, s float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2
	return hueComponent(m1, m2, h+1.0/3), hueComponent(m1, m2, h), hueComponent(m1, m2, h-1.0/3)
}

func hueComponent(m1, m2, hue float64) float64 {
	hue = hue - float64(int(hue))
	if hue < 0 {
		hue++
	}
	switch {
	case hue < 1.0/6:
		return m1 + (m2-m1)*hue*6
	case hue < 0.5:
		return m2
	case hue < 2.0/3:
		return m1 + (m2-m1)*(2.0/3-hue)*6
	default:
		return m1
	}
}
