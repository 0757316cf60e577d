// Package shift implements the additive byte obfuscation keyed by a passkey.
// It is a toy transform, not encryption.
package shift

// Modulus bounds the derived shift.
const Modulus = 26

// Shift returns the sum of the passkey bytes modulo Modulus.
func Shift(passkey string) byte {
	var sum int
	for i := 0; i < len(passkey); i++ {
		sum += int(passkey[i])
	}
	return byte(sum % Modulus)
}

// Cipher applies a fixed shift. A nil *Cipher is the identity.
type Cipher struct {
	shift byte
}

func New(passkey string) *Cipher {
	return &Cipher{shift: Shift(passkey)}
}

// Shift returns the derived shift, or 0 for a nil Cipher.
func (c *Cipher) Shift() byte {
	if c == nil {
		return 0
	}
	return c.shift
}

// EncryptByte subtracts the shift with 8-bit wraparound.
func (c *Cipher) EncryptByte(b byte) byte {
	if c == nil {
		return b
	}
	return b - c.shift
}

// DecryptByte adds the shift with 8-bit wraparound. Newlines pass through.
func (c *Cipher) DecryptByte(b byte) byte {
	if c == nil || b == '\n' {
		return b
	}
	return b + c.shift
}

// Encrypt returns a transformed copy of src.
func (c *Cipher) Encrypt(src []byte) []byte {
	dst := make([]byte, len(src))
	for i, b := range src {
		dst[i] = c.EncryptByte(b)
	}
	return dst
}

// Decrypt returns a transformed copy of src.
func (c *Cipher) Decrypt(src []byte) []byte {
	dst := make([]byte, len(src))
	for i, b := range src {
		dst[i] = c.DecryptByte(b)
	}
	return dst
}
