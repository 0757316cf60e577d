package steg

import (
	"fmt"
	"image"
	"io"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/yyyoichi/steg_zero/internal/bmp"
	"github.com/yyyoichi/steg_zero/internal/signature"
)

// Format is the container type of an image stream.
type Format = signature.Format

const (
	Unsupported = signature.Unsupported
	BMP         = signature.BMP
	JPG         = signature.JPG
	PNG         = signature.PNG
)

// Detect classifies in by its first two bytes and leaves the cursor after them.
func Detect(in io.ReadSeeker) (Format, error) {
	return signature.Detect(in, nil)
}

// Info describes a carrier before anything is embedded in it.
type Info struct {
	Format Format
	// Width and Height are zero when the image data cannot be decoded.
	Width, Height int

	// PixelArrayOffset and PixelBytes are only set for BMP.
	PixelArrayOffset int64
	PixelBytes       int64
	// Capacity is the longest message Embed accepts, or -1 when unbounded.
	Capacity int64
}

// Inspect reports the format of in, its dimensions and how many message
// bytes it can carry.
func Inspect(in io.ReadSeeker) (Info, error) {
	var info Info
	f, err := signature.Detect(in, nil)
	if err != nil {
		return info, err
	}
	info.Format = f
	switch f {
	case BMP:
		h, err := bmp.ReadHeader(in)
		if err != nil {
			return info, err
		}
		size, err := in.Seek(0, io.SeekEnd)
		if err != nil {
			return info, err
		}
		info.PixelArrayOffset = h.PixelArrayOffset
		info.PixelBytes = h.PixelBytes(size)
		info.Capacity = bmp.Capacity(info.PixelBytes)
	case JPG, PNG:
		info.Capacity = -1
	default:
		return info, ErrUnsupportedFormat
	}

	if _, err := in.Seek(0, io.SeekStart); err != nil {
		return info, fmt.Errorf("rewind input: %w", err)
	}
	if cfg, _, err := image.DecodeConfig(in); err == nil {
		info.Width, info.Height = cfg.Width, cfg.Height
	}
	return info, nil
}
