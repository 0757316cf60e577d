package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShift(t *testing.T) {
	test := []struct {
		passkey string
		exp     byte
	}{
		{"", 0},
		{"a", 97 % 26},
		{"ab", (97 + 98) % 26},
		{"key", (107 + 101 + 121) % 26},
		{"\x1a", 0},
		{"\xff\xff", (255 + 255) % 26},
	}
	for _, tt := range test {
		t.Run(tt.passkey, func(t *testing.T) {
			s := Shift(tt.passkey)
			assert.Equal(t, tt.exp, s)
			assert.Less(t, s, byte(Modulus))
		})
	}
}

func TestCipher_Bytes(t *testing.T) {
	c := New("a") // shift 19
	assert.Equal(t, byte(19), c.Shift())
	assert.Equal(t, byte('a'-19), c.EncryptByte('a'))
	assert.Equal(t, byte('a'+19), c.DecryptByte('a'))

	// 8-bit wraparound in both directions
	assert.Equal(t, byte(0xFF-18), c.EncryptByte(0x00))
	assert.Equal(t, byte(0x12), c.DecryptByte(0xFF))

	// newline survives decryption but not encryption
	assert.Equal(t, byte('\n'), c.DecryptByte('\n'))
	assert.NotEqual(t, byte('\n'), c.EncryptByte('\n'))
}

func TestCipher_Nil(t *testing.T) {
	var c *Cipher
	assert.Zero(t, c.Shift())
	assert.Equal(t, []byte("as is"), c.Decrypt([]byte("as is")))
	assert.Equal(t, []byte("as is"), c.Encrypt([]byte("as is")))
}

func TestCipher_RoundTrip(t *testing.T) {
	c := New("passkey")
	src := []byte("Hello, World")
	enc := c.Encrypt(src)
	assert.NotEqual(t, src, enc)
	assert.Equal(t, src, c.Decrypt(enc))
}

func TestCipher_DecryptWithoutEncrypt(t *testing.T) {
	src := []byte("plain text\n")
	garbled := New("k").Decrypt(src) // shift 107%26 = 3
	assert.Equal(t, []byte("sodlq#wh{w\n"), garbled)

	// a passkey whose shift is zero reproduces the message
	assert.Equal(t, src, New("\x1a").Decrypt(src))
}
