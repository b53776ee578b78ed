// Command tweetmap assigns geotagged tweets to regions and renders a
// choropleth heat map of tweet density per region.
//
// Input is one JSON-encoded tweet per line, read from the given data
// files or from stdin. Region boundaries come from a GeoJSON
// FeatureCollection. The per-region count table is written to stdout as
// CSV; the rendered map is written to the optional output file, with
// the image format chosen by its extension.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/beetlebugorg/tweetmap/internal/render"
	"github.com/beetlebugorg/tweetmap/pkg/tweetmap"
)

var (
	keyPath = kingpin.Flag("key-path", "key path to location coordinates within each tweet (repeat for nested keys)").
		Short('k').Default("coordinates", "coordinates").Strings()
	locationFormat = kingpin.Flag("location-format", "format of coordinates within each tweet").
			Short('l').Default("lon-lat-array").Enum("lat-lon-array", "lon-lat-array", "lat-lon-dict")
	projectionName = kingpin.Flag("projection", "map projection: albersUsa or any proj4 projection id").
			Short('p').Default("albersUsa").String()
	featuresFile = kingpin.Flag("features-file", "GeoJSON FeatureCollection of region boundaries").
			Short('f').Default("feature_sets/us_states.geo.json").String()
	outputFile = kingpin.Flag("output-file", "path to write the heat map image to; format chosen by extension (png, jpg, tif, svg)").
			Short('o').String()
	hue = kingpin.Flag("hue", "hue angle in degrees for the color ramp").
		Default("216").Float64()
	workers = kingpin.Flag("workers", "number of record processing workers (0 = number of CPUs)").
		Default("0").Int()
	verbose   = kingpin.Flag("verbose", "enable debug logging").Short('v').Bool()
	dataFiles = kingpin.Arg("data-files", "files containing one JSON tweet per line (stdin if omitted)").Strings()
)

func main() {
	kingpin.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	// Everything configurable is validated up front; past this point the
	// only failures left are per-record ones, and those never abort the
	// run.
	features, err := tweetmap.LoadFeatures(*featuresFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", *featuresFile).Msg("cannot load region boundaries")
	}
	log.Debug().Int("regions", len(features)).Msg("loaded region boundaries")

	extractor, err := tweetmap.NewLocationExtractor(*keyPath, tweetmap.LocationFormat(*locationFormat))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid location configuration")
	}

	projection, err := tweetmap.NewProjection(*projectionName)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid projection")
	}

	input, closeInput, err := openInput(*dataFiles)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot open input")
	}
	defer closeInput()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aggregator := tweetmap.NewAggregator(extractor, tweetmap.NewRegionLocator(features))
	counts, err := aggregator.Aggregate(ctx, input, tweetmap.AggregateOptions{Workers: *workers})
	if err != nil {
		if errors.Is(err, tweetmap.ErrNoneLocated) {
			log.Fatal().Msg("no tweets located in any region; check --key-path and --location-format")
		}
		log.Fatal().Err(err).Msg("aggregation failed")
	}
	log.Debug().Int("located", counts.Located()).Int("unknown", counts[tweetmap.UnknownRegion]).Msg("aggregation complete")

	if err := tweetmap.WriteCountTable(os.Stdout, features, counts); err != nil {
		log.Fatal().Err(err).Msg("cannot write count table")
	}

	if *outputFile == "" {
		return
	}

	projected, err := tweetmap.ProjectFeatures(features, projection)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot project region boundaries")
	}
	bounds, err := tweetmap.FeatureBounds(projected)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot compute viewport bounds")
	}
	if err := render.WriteMap(*outputFile, projected, counts, bounds, *hue); err != nil {
		log.Fatal().Err(err).Str("file", *outputFile).Msg("cannot render heat map")
	}
	log.Info().Str("file", *outputFile).Msg("heat map written")
}

// openInput returns a reader over the given data files in order, or
// stdin when none are given.
func openInput(paths []string) (io.Reader, func(), error) {
	if len(paths) == 0 {
		return os.Stdin, func() {}, nil
	}

	files := make([]*os.File, 0, len(paths))
	readers := make([]io.Reader, 0, len(paths))
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files = append(files, f)
		readers = append(readers, f)
	}
	return io.MultiReader(readers...), closeAll, nil
}
