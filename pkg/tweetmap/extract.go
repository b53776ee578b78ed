package tweetmap

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// LocationFormat declares how coordinates are laid out at the end of the
// key path within a record.
type LocationFormat string

const (
	// FormatLatLonArray is a two-element [latitude, longitude] array
	// (Gnip Activity Streams).
	FormatLatLonArray LocationFormat = "lat-lon-array"

	// FormatLonLatArray is a two-element [longitude, latitude] array
	// (Twitter API Tweets, GeoJSON convention).
	FormatLonLatArray LocationFormat = "lon-lat-array"

	// FormatLatLonDict is an object with "lat" and "lon" members.
	FormatLatLonDict LocationFormat = "lat-lon-dict"
)

// LocationExtractor pulls a coordinate out of a loosely structured JSON
// record given a field path and a coordinate ordering convention.
//
// Extraction fails softly: a missing key, out-of-range index, wrong
// shape, or undecodable record yields ok=false, never an error. Only an
// unknown format tag is an error, and it is raised once at construction
// time rather than per record.
type LocationExtractor struct {
	path   string
	format LocationFormat
}

// NewLocationExtractor builds an extractor for the given key path. Path
// elements are object keys or decimal array indices, applied in order.
func NewLocationExtractor(keyPath []string, format LocationFormat) (*LocationExtractor, error) {
	switch format {
	case FormatLatLonArray, FormatLonLatArray, FormatLatLonDict:
	default:
		return nil, fmt.Errorf("invalid location format %q", format)
	}
	if len(keyPath) == 0 {
		return nil, fmt.Errorf("key path must have at least one element")
	}

	parts := make([]string, len(keyPath))
	for i, key := range keyPath {
		parts[i] = escapePathKey(key)
	}
	return &LocationExtractor{
		path:   strings.Join(parts, "."),
		format: format,
	}, nil
}

// Extract walks the record along the key path and returns the location
// as a (longitude, latitude) point.
func (e *LocationExtractor) Extract(record []byte) (Point, bool) {
	if !gjson.ValidBytes(record) {
		return Point{}, false
	}
	location := gjson.GetBytes(record, e.path)
	if !location.Exists() {
		return Point{}, false
	}

	switch e.format {
	case FormatLatLonDict:
		lat := location.Get("lat")
		lon := location.Get("lon")
		if lat.Type != gjson.Number || lon.Type != gjson.Number {
			return Point{}, false
		}
		return Point{X: lon.Float(), Y: lat.Float()}, true

	case FormatLatLonArray:
		first, second, ok := coordinatePair(location)
		if !ok {
			return Point{}, false
		}
		return Point{X: second, Y: first}, true

	default: // FormatLonLatArray
		first, second, ok := coordinatePair(location)
		if !ok {
			return Point{}, false
		}
		return Point{X: first, Y: second}, true
	}
}

// coordinatePair reads a value as an array of exactly two numbers.
func coordinatePair(value gjson.Result) (first, second float64, ok bool) {
	if !value.IsArray() {
		return 0, 0, false
	}
	elements := value.Array()
	if len(elements) != 2 {
		return 0, 0, false
	}
	if elements[0].Type != gjson.Number || elements[1].Type != gjson.Number {
		return 0, 0, false
	}
	return elements[0].Float(), elements[1].Float(), true
}

// escapePathKey escapes characters gjson treats as path syntax so that
// literal keys like "geo.point" traverse correctly.
func escapePathKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '\\', '|', '#', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
