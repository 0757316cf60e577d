// Package scan locates a fixed marker sequence in a byte stream.
//
// The matcher is deliberately naive: it keeps a single match index, advances it
// when the next window equals the expected part of the marker and drops it to
// zero on any mismatch, without re-testing the mismatching window against the
// start of the marker. This finds every occurrence only for markers without a
// self-overlapping prefix, and may still miss an occurrence preceded by a
// partial match (e.g. "I" directly before "IEND..."). Do not reuse it for
// arbitrary sequences without checking that property first.
package scan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

type Scanner struct {
	marker   []byte
	step     int
	index    int
	consumed int64
}

// New returns a Scanner that reads the stream step bytes at a time.
// The marker length must be a multiple of step.
func New(marker []byte, step int) (*Scanner, error) {
	if step < 1 {
		step = 1
	}
	if len(marker) == 0 || len(marker)%step != 0 {
		return nil, fmt.Errorf("marker length %d is not a multiple of step %d", len(marker), step)
	}
	m := make([]byte, len(marker))
	copy(m, marker)
	return &Scanner{marker: m, step: step}, nil
}

// Consumed returns the number of bytes read by Scan.
func (s *Scanner) Consumed() int64 {
	return s.consumed
}

func (s *Scanner) matched() bool {
	return s.index >= len(s.marker)
}

// feed advances the matcher by one window of step bytes.
func (s *Scanner) feed(window []byte) {
	if bytes.Equal(window, s.marker[s.index:s.index+s.step]) {
		s.index += s.step
	} else {
		s.index = 0
	}
}

// Scan reads windows from r until the marker is matched or the stream ends.
// Every window read, including a short one at end of stream, is written to
// mirror when it is not nil. Reading stops right after the marker.
func (s *Scanner) Scan(r io.Reader, mirror io.Writer) (bool, error) {
	window := make([]byte, s.step)
	for !s.matched() {
		n, err := io.ReadFull(r, window)
		s.consumed += int64(n)
		if mirror != nil && n > 0 {
			if _, werr := mirror.Write(window[:n]); werr != nil {
				return false, werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return false, nil
			}
			return false, err
		}
		s.feed(window)
	}
	return true, nil
}
