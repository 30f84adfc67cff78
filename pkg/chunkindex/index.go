// Package chunkindex implements the chunk-location index (C7): a
// diagnostic-only map from chunk code to every (file, offset) location at
// which that code has been observed, used to print overlap reports.
package chunkindex

import (
	"github.com/cdctools/chunkscope/internal/identity"
	"github.com/cdctools/chunkscope/pkg/chunk"
)

// Location names one occurrence of a chunk code: the file it was found in
// and its byte offset within that file.
type Location struct {
	File   identity.FileID
	Offset int
}

// OverlapRecord is one entry of an overlap report: a code from the queried
// chunk list, the offset within that list's own file, and every location
// previously recorded for that code.
type OverlapRecord struct {
	Code      chunk.Code
	Offset    int
	Locations []Location
}

// Index maps chunk codes to the locations they have been seen at. It is
// diagnostic-only: nothing about deduplication accounting depends on it.
type Index struct {
	locations map[chunk.Code][]Location
}

// New returns an empty Index.
func New() *Index {
	return &Index{locations: make(map[chunk.Code][]Location)}
}

// Add records file's chunk codes into the index, advancing a byte cursor
// by each code's length as it goes. It returns the number of codes that
// were not already present in the index (i.e. that grew the key set).
func (idx *Index) Add(file identity.FileID, codes []chunk.Code) int {
	var novel int
	cursor := 0
	for _, c := range codes {
		if _, ok := idx.locations[c]; !ok {
			novel++
		}
		idx.locations[c] = append(idx.locations[c], Location{File: file, Offset: cursor})
		cursor += c.Length()
	}
	return novel
}

// Overlaps walks codes, tracking the same byte cursor Add uses, and for
// every code already present in the index returns an OverlapRecord
// carrying that code's previously recorded locations. It stops once
// maxPrint overlapping codes have been collected; maxPrint <= 0 means no
// limit.
func (idx *Index) Overlaps(codes []chunk.Code, maxPrint int) []OverlapRecord {
	var records []OverlapRecord
	cursor := 0
	for _, c := range codes {
		if locs, ok := idx.locations[c]; ok {
			records = append(records, OverlapRecord{
				Code:      c,
				Offset:    cursor,
				Locations: append([]Location(nil), locs...),
			})
			if maxPrint > 0 && len(records) >= maxPrint {
				break
			}
		}
		cursor += c.Length()
	}
	return records
}
