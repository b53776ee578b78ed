package tweetmap

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"runtime"
	"sync"
)

// ErrNoneLocated reports a run in which not a single record was assigned
// to a region. An all-zero map is almost always a misconfigured key path
// or coordinate format, so it is surfaced as a failure rather than
// rendered silently.
var ErrNoneLocated = errors.New("no tweets located in any region")

// Counts maps region ids to the number of records assigned to each.
// Records whose location could not be extracted or matched are tallied
// under UnknownRegion.
type Counts map[string]int

// Located returns the number of records assigned to a real region.
func (c Counts) Located() int {
	total := 0
	for id, n := range c {
		if id != UnknownRegion {
			total += n
		}
	}
	return total
}

// Max returns the highest count over real regions, ignoring the unknown
// sentinel. Used to scale the color ramp.
func (c Counts) Max() int {
	max := 0
	for id, n := range c {
		if id != UnknownRegion && n > max {
			max = n
		}
	}
	return max
}

// AggregateOptions controls the worker pool that maps records to regions.
type AggregateOptions struct {
	// Workers is the number of concurrent record processors.
	// If 0, defaults to runtime.NumCPU().
	Workers int

	// Progress is an optional callback invoked after each record is
	// tallied, with the number of records processed so far.
	Progress func(processed int)
}

// Aggregator drives parallel assignment of records to region ids and
// tallies the counts.
type Aggregator struct {
	extract *LocationExtractor
	locator *RegionLocator
}

// NewAggregator builds an aggregator from an extractor and a locator.
func NewAggregator(extract *LocationExtractor, locator *RegionLocator) *Aggregator {
	return &Aggregator{extract: extract, locator: locator}
}

// Aggregate streams newline-delimited JSON records from r and returns
// per-region counts.
//
// Records are fanned out to a fixed-size worker pool; each worker runs
// the decode, extract, locate pipeline and returns only a region id, so
// no tally state is shared across workers. The coordinator folds results
// into the counts map in whatever order they arrive, which is safe
// because counting is commutative.
//
// Per-record failures never abort the run: an undecodable record, a
// missing field, or a point outside every region all collapse to the
// UnknownRegion tally. Blank lines are skipped entirely. If the input is
// exhausted without a single record landing in a region, the counts are
// returned together with ErrNoneLocated.
//
// Cancelling ctx stops the run early and returns the context error.
func (a *Aggregator) Aggregate(ctx context.Context, r io.Reader, opts AggregateOptions) (Counts, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	// Bounded queue: keeps memory flat on large inputs and lets
	// cancellation take effect between records.
	jobs := make(chan []byte, workers*2)
	results := make(chan string, workers*2)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range jobs {
				results <- a.locateRecord(record)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	scanErr := make(chan error, 1)
	go func() {
		defer close(jobs)
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			// Scanner reuses its buffer; hand each worker its own copy.
			record := make([]byte, len(line))
			copy(record, line)
			select {
			case jobs <- record:
			case <-ctx.Done():
				scanErr <- ctx.Err()
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	counts := make(Counts)
	processed := 0
	for id := range results {
		counts[id]++
		processed++
		if opts.Progress != nil {
			opts.Progress(processed)
		}
	}

	if err := <-scanErr; err != nil {
		return nil, err
	}
	if counts.Located() == 0 {
		return counts, ErrNoneLocated
	}
	return counts, nil
}

// locateRecord runs the per-record pipeline: extract a location, then
// find the containing region. Every failure mode collapses to the
// unknown sentinel.
func (a *Aggregator) locateRecord(record []byte) string {
	location, ok := a.extract.Extract(record)
	if !ok {
		return UnknownRegion
	}
	id, ok := a.locator.Locate(location)
	if !ok {
		return UnknownRegion
	}
	return id
}
