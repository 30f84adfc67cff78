package packer

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// GzipSink writes a standard RFC 1952 gzip container, using
// klauspost/compress's drop-in gzip.Writer (same API as compress/gzip,
// faster deflate implementation) so that Flush ends the current deflate
// block with a sync-flush marker without closing the gzip stream.
type GzipSink struct {
	w *gzip.Writer
}

// NewGzipSink wraps w in a gzip.Writer at the given compression level
// (gzip.DefaultCompression if level is 0).
func NewGzipSink(w io.Writer, level int) (*GzipSink, error) {
	if level == 0 {
		level = gzip.DefaultCompression
	}
	gw, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return nil, err
	}
	return &GzipSink{w: gw}, nil
}

func (s *GzipSink) Write(p []byte) (int, error) { return s.w.Write(p) }
func (s *GzipSink) Flush() error                { return s.w.Flush() }
func (s *GzipSink) Close() error                { return s.w.Close() }
