package bmp

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/yyyoichi/steg_zero/internal/bitconv"
	"github.com/yyyoichi/steg_zero/internal/shift"
	"github.com/yyyoichi/steg_zero/internal/signature"
)

const (
	// HeaderSize is the size of the BMP file header, signature included.
	HeaderSize = 14
	// ChunkSize is the number of pixel-array bytes carrying one message byte.
	ChunkSize = 8
)

var (
	ErrInvalidHeader      = errors.New("invalid bmp header")
	ErrCapacityExceeded   = errors.New("message exceeds bmp capacity")
	ErrReservedByte       = errors.New("message contains the reserved zero byte")
	ErrTerminatorNotFound = errors.New("message terminator not found")
	ErrNotStored          = errors.New("message not stored")
)

// Header is the part of the BMP file header that follows the signature.
type Header struct {
	Raw              [HeaderSize - signature.Size]byte
	PixelArrayOffset int64
}

// ReadHeader reads the header bytes following the signature.
//
// The pixel-array offset is built from header bytes 8, 9 and 10 only, so
// offsets of 16 MiB and more are not representable.
func ReadHeader(in io.Reader) (Header, error) {
	var h Header
	if _, err := io.ReadFull(in, h.Raw[:]); err != nil {
		return h, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	h.PixelArrayOffset = int64((uint32(h.Raw[10])<<8|uint32(h.Raw[9]))<<8 | uint32(h.Raw[8]))
	if h.PixelArrayOffset < HeaderSize {
		return h, fmt.Errorf("%w: pixel array offset %d < %d", ErrInvalidHeader, h.PixelArrayOffset, HeaderSize)
	}
	return h, nil
}

// WriteTo writes the raw header bytes to w.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(h.Raw[:])
	return int64(n), err
}

// PixelBytes returns the pixel-array length of a stream of size bytes.
func (h Header) PixelBytes(size int64) int64 {
	if size < h.PixelArrayOffset {
		return 0
	}
	return size - h.PixelArrayOffset
}

// Capacity returns the longest message that fits in pixelBytes, one chunk
// being kept for the terminator.
func Capacity(pixelBytes int64) int64 {
	if c := pixelBytes/ChunkSize - 1; c > 0 {
		return c
	}
	return 0
}

// Check validates msg against the pixel array it will be embedded into.
func Check(msg []byte, pixelBytes int64) error {
	if need := int64(len(msg)+1) * ChunkSize; need > pixelBytes {
		return fmt.Errorf("%w: %d bytes need %d pixel bytes, have %d", ErrCapacityExceeded, len(msg), need, pixelBytes)
	}
	if i := bytes.IndexByte(msg, 0); i >= 0 {
		return fmt.Errorf("%w: at %d", ErrReservedByte, i)
	}
	return nil
}

// CopyRegion copies the bytes between the header and the pixel array verbatim.
func CopyRegion(in io.Reader, out io.Writer, h Header) error {
	n := h.PixelArrayOffset - HeaderSize
	if _, err := io.CopyN(out, in, n); err != nil {
		return fmt.Errorf("%w: copy %d bytes before pixel array: %w", ErrInvalidHeader, n, err)
	}
	return nil
}

// Embed rewrites the pixel array read from in into out, one message byte per
// chunk, least-significant bit first. Every chunk after the message has all
// its LSBs cleared, which also writes the terminator. A short trailing chunk
// is modified as far as it goes. It returns the number of message bytes stored.
//
// The whole pixel array is always written. If the array ends before a chunk
// is left for the terminator, ErrNotStored is returned.
func Embed(in io.Reader, out io.Writer, msg []byte) (int, error) {
	var (
		bits       = bitconv.LSBFirst(msg)
		buf        = make([]byte, ChunkSize)
		index      int
		terminated bool
	)
	for {
		n, err := io.ReadFull(in, buf)
		if n > 0 {
			chunk := buf[:n]
			if index >= len(msg) {
				bitconv.StoreZero(chunk)
				terminated = true
			} else {
				bitconv.StoreByte(chunk, bits, index)
				index++
			}
			if _, werr := out.Write(chunk); werr != nil {
				return index, werr
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
				return index, err
			}
			if !terminated {
				return index, fmt.Errorf("%w: %w: %d of %d bytes written, no chunk left for the terminator",
					ErrNotStored, ErrCapacityExceeded, index, len(msg))
			}
			return index, nil
		}
	}
}

// Extract decodes chunks from in until a zero byte is rebuilt. Non-zero bytes
// are passed through c (nil means no transform). If the stream ends first,
// the bytes decoded so far are returned with ErrTerminatorNotFound.
func Extract(in io.Reader, c *shift.Cipher) ([]byte, error) {
	var (
		msg []byte
		buf = make([]byte, ChunkSize)
	)
	for {
		if _, err := io.ReadFull(in, buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return msg, ErrTerminatorNotFound
			}
			return msg, err
		}
		v := bitconv.LoadByte(buf)
		if v == 0 {
			return msg, nil
		}
		msg = append(msg, c.DecryptByte(v))
	}
}
