package steg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/yyyoichi/steg_zero/internal/bmp"
	"github.com/yyyoichi/steg_zero/internal/shift"
	"github.com/yyyoichi/steg_zero/internal/signature"
	"github.com/yyyoichi/steg_zero/internal/trailer"
)

var (
	ErrUnsupportedFormat  = errors.New("unsupported image format")
	ErrInvalidHeader      = bmp.ErrInvalidHeader
	ErrCapacityExceeded   = bmp.ErrCapacityExceeded
	ErrReservedByte       = bmp.ErrReservedByte
	ErrTerminatorNotFound = bmp.ErrTerminatorNotFound
	ErrNotStored          = bmp.ErrNotStored
	ErrMarkerNotFound     = trailer.ErrMarkerNotFound
)

// Embed hides msg in the image read from in and writes the result to out.
// This is a convenience function that creates a Codec and calls its Embed method.
func Embed(ctx context.Context, in io.ReadSeeker, out io.Writer, msg []byte, opts ...Option) (Format, error) {
	c, err := New(opts...)
	if err != nil {
		return Unsupported, err
	}
	return c.Embed(ctx, in, out, msg)
}

// Extract recovers a message hidden in the image read from in.
// This is a convenience function that creates a Codec and calls its Extract method.
func Extract(ctx context.Context, in io.ReadSeeker, opts ...Option) ([]byte, error) {
	c, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return c.Extract(ctx, in)
}

// Codec embeds messages into and extracts them from BMP, JPEG and PNG streams.
// It holds no stream state, so one Codec can serve any number of operations.
type Codec struct {
	cipher *shift.Cipher
	legacy bool
	logger *log.Logger
}

// New initializes a Codec. Without options no passkey is used, BMP capacity
// is checked and nothing is logged.
func New(opts ...Option) (*Codec, error) {
	c := new(Codec)
	if err := c.init(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// Embed hides msg in the image read from in and writes the carrier to out.
//
// Process:
//  1. Rewinds both streams and copies the two signature bytes.
//  2. BMP: copies the header and the bytes up to the pixel array, then stores
//     one message byte in the LSBs of every 8 pixel bytes and clears the LSBs
//     of every following chunk.
//  3. JPEG: copies the whole input, then appends FF D9 and the message.
//  4. PNG: copies the input up to the end of the IEND chunk, then appends the message.
//
// The passkey is never applied here. If out can seek it is rewound first,
// otherwise it is assumed to be empty.
//
// With WithLegacyCapacity a BMP message that leaves no chunk for the
// terminator is truncated: the carrier is still written to out and
// ErrNotStored is returned.
func (c *Codec) Embed(ctx context.Context, in io.ReadSeeker, out io.Writer, msg []byte) (Format, error) {
	if err := ctx.Err(); err != nil {
		return Unsupported, err
	}
	f, err := signature.Detect(in, seekable(out))
	if err != nil {
		return f, err
	}
	c.logger.Printf("embed: detected %s, message %d bytes", f, len(msg))

	w := bufio.NewWriter(out)
	switch f {
	case BMP:
		var st bmp.Stats
		st, err = bmp.Hide(in, w, msg, !c.legacy)
		c.logger.Printf("embed: bmp pixel array at %d, %d pixel bytes, capacity %d, stored %d bytes",
			st.PixelArrayOffset, st.PixelBytes, bmp.Capacity(st.PixelBytes), st.Embedded)
		if errors.Is(err, bmp.ErrNotStored) {
			c.logger.Printf("embed: message truncated to %d of %d bytes without terminator", st.Embedded, len(msg))
		}
	case JPG:
		var n int64
		n, err = trailer.EmbedJPEG(in, w, msg)
		c.logger.Printf("embed: jpeg copied %d bytes before appended marker", n)
	case PNG:
		var n int64
		n, err = trailer.EmbedPNG(in, w, msg)
		c.logger.Printf("embed: png scanned %d bytes", n)
	default:
		return f, ErrUnsupportedFormat
	}
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return f, fmt.Errorf("embed %s: %w", f, err)
	}
	return f, nil
}

// Extract recovers the message hidden in the image read from in. When the
// Codec has a passkey, every recovered byte except newlines is shifted back,
// whether or not it was shifted when embedded.
//
// For BMP the bytes decoded before a missing terminator are returned together
// with ErrTerminatorNotFound. A zero byte ends the message before the passkey
// is applied, so a byte that only becomes zero once shifted is kept.
//
// For JPEG the first FF D9 pair at an even offset is taken as the marker and
// everything after it is returned. A JPEG whose own EOI marker sits at an even
// offset therefore yields FF D9 followed by the message, and one whose EOI
// sits at an odd offset fails with ErrMarkerNotFound unless some earlier
// aligned FF D9 pair exists.
func (c *Codec) Extract(ctx context.Context, in io.ReadSeeker) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := signature.Detect(in, nil)
	if err != nil {
		return nil, err
	}
	c.logger.Printf("extract: detected %s", f)

	var msg []byte
	switch f {
	case BMP:
		var h bmp.Header
		msg, h, err = bmp.Reveal(in, c.cipher)
		c.logger.Printf("extract: bmp pixel array at %d", h.PixelArrayOffset)
	case JPG:
		var at int64
		msg, at, err = trailer.ExtractJPEG(in, c.cipher)
		c.logger.Printf("extract: jpeg scanned %d bytes", at)
	case PNG:
		var at int64
		msg, at, err = trailer.ExtractPNG(in, c.cipher)
		c.logger.Printf("extract: png scanned %d bytes", at)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return msg, fmt.Errorf("extract %s: %w", f, err)
	}
	c.logger.Printf("extract: recovered %d bytes", len(msg))
	return msg, nil
}

func (c *Codec) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard, "", 0)
	}
	return nil
}

// streamWriter lets a plain io.Writer stand in for a stream positioned at its start.
type streamWriter struct {
	io.Writer
}

func (streamWriter) Seek(int64, int) (int64, error) {
	return 0, nil
}

func seekable(w io.Writer) io.WriteSeeker {
	if ws, ok := w.(io.WriteSeeker); ok {
		return ws
	}
	return streamWriter{w}
}
