package scan

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var iend = []byte{0x49, 0x45, 0x4E, 0x44, 0xAE, 0x42, 0x60, 0x82}

func TestNew(t *testing.T) {
	_, err := New(iend, 1)
	assert.NoError(t, err)
	_, err = New([]byte{0xFF, 0xD9}, 2)
	assert.NoError(t, err)
	_, err = New([]byte{0xFF, 0xD9, 0x00}, 2)
	assert.Error(t, err)
	_, err = New(nil, 1)
	assert.Error(t, err)

	s, err := New([]byte{0x01}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, s.step)
}

func TestScanner_Scan(t *testing.T) {
	test := []struct {
		name     string
		marker   []byte
		step     int
		data     []byte
		found    bool
		consumed int64
	}{
		{"png at start", iend, 1, append(append([]byte{}, iend...), 'x'), true, 8},
		{"png at offset", iend, 1, append([]byte{0x00, 0x01, 0x02}, iend...), true, 11},
		{"png first occurrence", iend, 1, append(append([]byte{0x07}, iend...), iend...), true, 9},
		{"png broken marker", iend, 1, []byte{0x49, 0x45, 0x4E, 0x00, 0xAE, 0x42, 0x60, 0x82}, false, 8},
		{"png missing", iend, 1, []byte("no marker here"), false, 14},
		{"png empty", iend, 1, nil, false, 0},
		{"jpg aligned", []byte{0xFF, 0xD9}, 2, []byte{0x00, 0x11, 0xFF, 0xD9, 0x22}, true, 4},
		{"jpg odd aligned is missed", []byte{0xFF, 0xD9}, 2, []byte{0x00, 0xFF, 0xD9, 0x11}, false, 4},
		{"jpg dangling byte", []byte{0xFF, 0xD9}, 2, []byte{0x00, 0x11, 0xFF}, false, 3},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.marker, tt.step)
			require.NoError(t, err)
			found, err := s.Scan(bytes.NewReader(tt.data), nil)
			require.NoError(t, err)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.consumed, s.Consumed())
		})
	}
}

func TestScanner_NoOverlapRecovery(t *testing.T) {
	// the second 0x49 is consumed by the reset and the marker that follows it is missed
	data := append([]byte{0x49}, iend...)
	s, err := New(iend, 1)
	require.NoError(t, err)
	found, err := s.Scan(bytes.NewReader(data), nil)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestScanner_MirrorAndRemainder(t *testing.T) {
	data := append(append([]byte("prefix"), iend...), []byte("hidden")...)
	r := bufio.NewReader(bytes.NewReader(data))
	var mirror bytes.Buffer

	s, err := New(iend, 1)
	require.NoError(t, err)
	found, err := s.Scan(r, &mirror)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, data[:len(data)-6], mirror.Bytes())

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("hidden"), rest)

	// once matched further scans are no-ops
	found, err = s.Scan(r, &mirror)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, s.matched())
	assert.Equal(t, int64(len(data)-6), s.Consumed())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestScanner_ReadError(t *testing.T) {
	s, err := New(iend, 1)
	require.NoError(t, err)
	_, err = s.Scan(failingReader{}, nil)
	assert.EqualError(t, err, "boom")
}
