// Package trailer hides a message after the end-of-image marker of JPEG and
// PNG streams, where decoders stop reading.
package trailer

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/yyyoichi/steg_zero/internal/scan"
	"github.com/yyyoichi/steg_zero/internal/shift"
)

var ErrMarkerNotFound = errors.New("end-of-image marker not found")

var (
	// JPEGMarker is the JPEG end-of-image (EOI) marker.
	JPEGMarker = []byte{0xFF, 0xD9}
	// PNGMarker is the type and CRC of the PNG IEND chunk.
	PNGMarker = []byte{0x49, 0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82}
)

const (
	jpegStep = 2
	pngStep  = 1
)

// EmbedJPEG copies the rest of in to out, then appends the EOI marker and msg.
// An existing EOI marker in the input is not looked for.
func EmbedJPEG(in io.Reader, out io.Writer, msg []byte) (int64, error) {
	n, err := io.Copy(out, in)
	if err != nil {
		return n, err
	}
	if _, err := out.Write(JPEGMarker); err != nil {
		return n, err
	}
	if _, err := out.Write(msg); err != nil {
		return n, err
	}
	return n, nil
}

// ExtractJPEG scans in two bytes at a time for the EOI marker and returns
// everything after it, passed through c. A marker starting at an odd distance
// from the scan start is not seen.
func ExtractJPEG(in io.Reader, c *shift.Cipher) ([]byte, int64, error) {
	s, err := scan.New(JPEGMarker, jpegStep)
	if err != nil {
		return nil, 0, err
	}
	r := bufio.NewReader(in)
	found, err := s.Scan(r, nil)
	if err != nil {
		return nil, s.Consumed(), err
	}
	if !found {
		return nil, s.Consumed(), fmt.Errorf("%w: jpeg: scanned %d bytes", ErrMarkerNotFound, s.Consumed())
	}
	msg, err := readPairs(r, c)
	return msg, s.Consumed(), err
}

// readPairs reads r to its end two bytes at a time. A dangling final byte
// is kept.
func readPairs(r io.Reader, c *shift.Cipher) ([]byte, error) {
	var (
		msg  []byte
		pair = make([]byte, 2)
	)
	for {
		n, err := io.ReadFull(r, pair)
		for _, b := range pair[:n] {
			msg = append(msg, c.DecryptByte(b))
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return msg, nil
			}
			return msg, err
		}
	}
}

// EmbedPNG copies in to out up to and including the IEND marker, then writes
// msg. Anything after the marker in the input is dropped. If the marker is
// missing, the whole input has been copied and ErrMarkerNotFound is returned.
func EmbedPNG(in io.Reader, out io.Writer, msg []byte) (int64, error) {
	s, err := scan.New(PNGMarker, pngStep)
	if err != nil {
		return 0, err
	}
	found, err := s.Scan(bufio.NewReader(in), out)
	if err != nil {
		return s.Consumed(), err
	}
	if !found {
		return s.Consumed(), fmt.Errorf("%w: png: scanned %d bytes", ErrMarkerNotFound, s.Consumed())
	}
	if _, err := out.Write(msg); err != nil {
		return s.Consumed(), err
	}
	return s.Consumed(), nil
}

// ExtractPNG scans in byte by byte for the IEND marker and returns every
// remaining byte, passed through c.
func ExtractPNG(in io.Reader, c *shift.Cipher) ([]byte, int64, error) {
	s, err := scan.New(PNGMarker, pngStep)
	if err != nil {
		return nil, 0, err
	}
	r := bufio.NewReader(in)
	found, err := s.Scan(r, nil)
	if err != nil {
		return nil, s.Consumed(), err
	}
	if !found {
		return nil, s.Consumed(), fmt.Errorf("%w: png: scanned %d bytes", ErrMarkerNotFound, s.Consumed())
	}
	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, s.Consumed(), err
	}
	return c.Decrypt(rest), s.Consumed(), nil
}
