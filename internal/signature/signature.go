package signature

import (
	"errors"
	"fmt"
	"io"
)

// Size is the number of leading bytes used to classify a container.
const Size = 2

type Format int

const (
	Unsupported Format = iota
	BMP
	JPG
	PNG
)

func (f Format) String() string {
	switch f {
	case BMP:
		return "BMP"
	case JPG:
		return "JPG"
	case PNG:
		return "PNG"
	}
	return "Unsupported"
}

// Classify maps the first two bytes of a stream to a Format.
func Classify(b0, b1 byte) Format {
	switch uint16(b0)<<8 | uint16(b1) {
	case 0x424D:
		return BMP
	case 0xFFD8:
		return JPG
	case 0x8950:
		return PNG
	}
	return Unsupported
}

// Detect rewinds in (and mirror, when not nil) to the start, reads the
// signature bytes and classifies them. The same bytes are written to mirror
// unmodified. On return both cursors sit right after the signature.
//
// A stream shorter than the signature is reported as Unsupported.
func Detect(in io.ReadSeeker, mirror io.WriteSeeker) (Format, error) {
	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return Unsupported, fmt.Errorf("rewind input: %w", err)
	}
	if mirror != nil {
		if _, err := mirror.Seek(0, io.SeekStart); err != nil {
			return Unsupported, fmt.Errorf("rewind output: %w", err)
		}
	}
	var buf [Size]byte
	if _, err := io.ReadFull(in, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Unsupported, nil
		}
		return Unsupported, err
	}
	if mirror != nil {
		if _, err := mirror.Write(buf[:]); err != nil {
			return Unsupported, err
		}
	}
	return Classify(buf[0], buf[1]), nil
}
