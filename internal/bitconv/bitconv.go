package bitconv

import "github.com/yyyoichi/bitstream-go"

// LSBFirst lays the bits of b out least-significant first: bit j of b[i]
// lives at position i*8+j of the returned reader. It returns nil for empty input.
func LSBFirst(b []byte) *bitstream.BitReader[uint64] {
	if len(b) == 0 {
		return nil
	}
	w := bitstream.NewBitWriter[uint64](0, 0)
	for i, bb := range b {
		for j := range 8 {
			w.WriteBitAt(i*8+j, (bb>>uint(j))&1 == 1)
		}
	}
	r := bitstream.NewBitReader(w.Data(), 0, 0)
	r.SetBits(len(b) * 8)
	return r
}

// LSB reports whether the least-significant bit of b is set.
func LSB(b byte) bool {
	return b%2 == 1
}

// SetLSB forces the least-significant bit of b, leaving the others untouched.
func SetLSB(b byte, bit bool) byte {
	if bit {
		return b | 1
	}
	return b &^ 1
}

// StoreByte writes the 8 bits starting at position at*8 of bits into the
// LSBs of chunk, one bit per chunk byte. Bytes beyond len(chunk) are dropped.
func StoreByte(chunk []byte, bits *bitstream.BitReader[uint64], at int) {
	for i := 0; i < 8 && i < len(chunk); i++ {
		bit, _ := bits.ReadBitAt(at*8 + i)
		chunk[i] = SetLSB(chunk[i], bit)
	}
}

// StoreZero clears the LSB of every chunk byte.
func StoreZero(chunk []byte) {
	for i := range chunk {
		chunk[i] = SetLSB(chunk[i], false)
	}
}

// LoadByte rebuilds a byte from the LSBs of up to 8 chunk bytes,
// chunk[0] being the least-significant bit.
func LoadByte(chunk []byte) byte {
	var v byte
	for i := 0; i < 8 && i < len(chunk); i++ {
		v += (chunk[i] % 2) << uint(i)
	}
	return v
}
