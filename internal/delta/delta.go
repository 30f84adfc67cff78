// Package delta gives the chunk-location index's overlap report a concrete
// cost figure: how large a binary patch between two overlapping files
// would actually be, alongside the raw chunk-overlap count.
package delta

import (
	"fmt"

	"github.com/gabstv/go-bsdiff/pkg/bsdiff"
)

// EstimatePatchSize computes a bsdiff patch from oldData to newData and
// returns its size in bytes. It is a diagnostic, not a stored artifact —
// the patch itself is discarded once its length is read.
func EstimatePatchSize(oldData, newData []byte) (int, error) {
	if len(oldData) == 0 || len(newData) == 0 {
		return len(newData), nil
	}
	patch, err := bsdiff.Bytes(oldData, newData)
	if err != nil {
		return 0, fmt.Errorf("delta: computing bsdiff patch: %w", err)
	}
	return len(patch), nil
}
