package main

import "sort"

// MetadataBag is a flat key-value mapping produced by one metadata source for
// one photo. Values are heterogeneous: numbers, strings, or lists, depending
// on the source. Bags from different sources are never merged; resolvers query
// each bag independently in priority order.
type MetadataBag map[string]any

// PhotoRecord holds the resolved metadata for a single photo.
type PhotoRecord struct {
	Path     string
	Filename string

	// Caption resolved by the caption cascade. First writer wins.
	Caption string

	// Pixel dimensions; zero if the image layer could not be opened.
	Width  int
	Height int

	// Decimal degrees. Either both are set or neither is.
	Latitude  float64
	Longitude float64
	HasGPS    bool

	// Compass bearing in degrees.
	Orientation    float64
	HasOrientation bool

	// Path to a transient decoded copy created for dimension reading (HEIC).
	// Owned by this record; deleted by CleanupTempFiles after the batch.
	TempFile string

	// Err records an unexpected per-photo failure. The record is still
	// returned (possibly partial) and the batch continues.
	Err error
}

// tagValue is one candidate caption tag discovered while scanning a source's
// keys for description-like names.
type tagValue struct {
	Name  string
	Value string
}

// sortedKeys returns the bag's keys in lexical order so scans over a bag are
// deterministic run to run.
func sortedKeys(m MetadataBag) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
