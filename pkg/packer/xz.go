package packer

import (
	"io"

	"github.com/ulikunitz/xz"
)

// XZSink is the alternate C6 backend selected by --format=xz. The xz
// format has no mid-stream block-flush primitive comparable to deflate's
// sync flush, so each Flush finishes the current xz.Writer's stream and
// opens a fresh one on the same underlying writer for the next chunk. The
// xz container format explicitly permits concatenated streams (the same
// trick gzip.Reader.Multistream relies on), so the result is a single
// valid multi-stream xz artifact whose stream boundaries align with chunk
// boundaries — the xz analogue of C6's block-aligned contract.
type XZSink struct {
	dst     io.Writer
	cfg     xz.WriterConfig
	current *xz.Writer
}

// NewXZSink wraps w with the default xz writer configuration.
func NewXZSink(w io.Writer) (*XZSink, error) {
	s := &XZSink{dst: w}
	if err := s.openStream(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *XZSink) openStream() error {
	xw, err := s.cfg.NewWriter(s.dst)
	if err != nil {
		return err
	}
	s.current = xw
	return nil
}

func (s *XZSink) Write(p []byte) (int, error) {
	return s.current.Write(p)
}

// Flush closes the current xz stream and starts a new one, so the stream
// boundary lands exactly at the chunk boundary.
func (s *XZSink) Flush() error {
	if err := s.current.Close(); err != nil {
		return err
	}
	return s.openStream()
}

// Close finishes the current xz stream. Unlike GzipSink, there is no
// single top-level container to finalize beyond that.
func (s *XZSink) Close() error {
	return s.current.Close()
}
