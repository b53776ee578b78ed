package tweetmap

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
)

// WriteCountTable writes the per-region count table as CSV.
//
// Rows are sorted by region name, regions with a zero count are omitted,
// and records that could not be located are reported in a trailing
// "Unknown Location" row.
func WriteCountTable(w io.Writer, features []Feature, counts Counts) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Feature", "Tweet Count"}); err != nil {
		return err
	}

	sorted := make([]Feature, len(features))
	copy(sorted, features)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name() < sorted[j].Name() })

	for i := range sorted {
		count := counts[sorted[i].ID()]
		if count == 0 {
			continue
		}
		if err := writer.Write([]string{sorted[i].Name(), strconv.Itoa(count)}); err != nil {
			return err
		}
	}

	if unknown := counts[UnknownRegion]; unknown > 0 {
		if err := writer.Write([]string{"Unknown Location", strconv.Itoa(unknown)}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
