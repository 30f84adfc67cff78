// Package identity gives each scanned file a compact, self-describing
// identifier for use in diagnostics (the chunk-location index), instead of
// carrying a raw path string through every location record.
package identity

import (
	"fmt"

	"github.com/multiformats/go-multihash"
)

// FileID is a multihash-backed identity for a file, derived from its path
// and size. It is opaque outside this package; compare FileIDs with ==.
type FileID string

// ForFile computes the FileID for a file at path with the given size. The
// hash input is the path and size rather than the file's content, since the
// chunk-location index already tracks per-chunk content identity — FileID
// only needs to name "which file", not "which bytes".
func ForFile(path string, size int64) (FileID, error) {
	input := fmt.Sprintf("%s:%d", path, size)
	mh, err := multihash.Sum([]byte(input), multihash.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("identity: computing multihash for %s: %w", path, err)
	}
	return FileID(mh.B58String()), nil
}

// String returns the multihash's base58 representation.
func (f FileID) String() string {
	return string(f)
}
