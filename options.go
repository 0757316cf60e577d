package steg

import (
	"errors"
	"log"

	"github.com/yyyoichi/steg_zero/internal/shift"
)

type Option func(*Codec) error

// WithPasskey shifts every byte recovered by Extract back by the passkey's
// shift (the sum of its bytes modulo 26), leaving newlines as they are.
//
// Embed ignores the passkey, so extracting with a passkey whose shift is not
// zero garbles a message embedded by this package. Use Obfuscate on the
// message beforehand to make both sides agree.
func WithPasskey(passkey string) Option {
	return func(c *Codec) error {
		c.cipher = shift.New(passkey)
		return nil
	}
}

// WithLegacyCapacity disables the BMP preconditions. A message longer than the
// pixel array is truncated and zero bytes in it are embedded as is,
// reproducing carriers made by earlier tools bit for bit. A truncated message
// still produces the carrier but Embed reports ErrNotStored.
func WithLegacyCapacity() Option {
	return func(c *Codec) error {
		c.legacy = true
		return nil
	}
}

// WithLogger reports progress of every operation to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Codec) error {
		if l == nil {
			return errors.New("logger must not be nil")
		}
		c.logger = l
		return nil
	}
}
