package bmp

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/yyyoichi/steg_zero/internal/shift"
)

// Stats describes a finished Hide.
type Stats struct {
	PixelArrayOffset int64
	PixelBytes       int64
	Embedded         int
}

// Hide embeds msg into the BMP read from in and writes the carrier to out.
// Both cursors must sit right after the signature. When checked is set the
// capacity and reserved-byte preconditions are enforced before any output is
// written. Otherwise the message is truncated at the end of the pixel array,
// the carrier is still written in full and ErrNotStored is returned.
func Hide(in io.ReadSeeker, out io.Writer, msg []byte, checked bool) (Stats, error) {
	var st Stats
	h, err := ReadHeader(in)
	if err != nil {
		return st, err
	}
	st.PixelArrayOffset = h.PixelArrayOffset

	size, err := streamSize(in)
	if err != nil {
		return st, err
	}
	st.PixelBytes = h.PixelBytes(size)
	if checked {
		if size < h.PixelArrayOffset {
			return st, fmt.Errorf("%w: pixel array offset %d beyond end of stream %d", ErrInvalidHeader, h.PixelArrayOffset, size)
		}
		if err := Check(msg, st.PixelBytes); err != nil {
			return st, err
		}
	}

	if _, err := h.WriteTo(out); err != nil {
		return st, err
	}
	r := bufio.NewReader(in)
	if err := CopyRegion(r, out, h); err != nil {
		if !checked && errors.Is(err, io.EOF) {
			return st, fmt.Errorf("%w: %w", ErrNotStored, err)
		}
		return st, err
	}
	st.Embedded, err = Embed(r, out, msg)
	return st, err
}

// Reveal reads the header, moves in to the pixel array and extracts the message.
// The cursor of in must sit right after the signature.
func Reveal(in io.ReadSeeker, c *shift.Cipher) ([]byte, Header, error) {
	h, err := ReadHeader(in)
	if err != nil {
		return nil, h, err
	}
	if _, err := in.Seek(h.PixelArrayOffset, io.SeekStart); err != nil {
		return nil, h, err
	}
	msg, err := Extract(bufio.NewReader(in), c)
	return msg, h, err
}

// streamSize returns the total size of s without moving its cursor.
func streamSize(s io.Seeker) (int64, error) {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	size, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return size, nil
}
