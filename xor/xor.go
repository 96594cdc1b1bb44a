// Package xor implements repeating-key XOR and the bit distance used to
// estimate its key size.
package xor

import (
	"crypto/cipher"
	"errors"
	"math/bits"
)

// ErrInvalidKey is returned when a key has no bytes.
var ErrInvalidKey = errors.New("xor: invalid key")

// Apply returns the XOR combination of data with a repeating key.
// Applying the same key twice returns the original data.
func Apply(data, key []byte) ([]byte, error) {
	stream, err := NewCipher(key)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(data))
	stream.XORKeyStream(out, data)

	return out, nil
}

// xorCipher represents a repeating XOR stream cipher.
type xorCipher struct {
	key []byte
	pos int
}

// NewCipher creates a new repeating XOR cipher.
// The position in the key is kept between calls to XORKeyStream.
func NewCipher(key []byte) (cipher.Stream, error) {
	if len(key) == 0 {
		return nil, ErrInvalidKey
	}
	return &xorCipher{key: append([]byte(nil), key...)}, nil
}

// XORKeyStream encrypts a buffer with repeating XOR.
func (x *xorCipher) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("xor: output smaller than input")
	}
	for i := range src {
		dst[i] = src[i] ^ x.key[x.pos]
		x.pos++
		if x.pos == len(x.key) {
			x.pos = 0
		}
	}
}

// XORSingleByte produces the XOR combination of a buffer with a single byte.
func XORSingleByte(dst, src []byte, b byte) {
	// Panic if dst is smaller than src.
	for i := range src {
		dst[i] = src[i] ^ b
	}
}

// BitDistance returns the number of differing bits between two buffers.
// The shorter buffer is repeated to the length of the longer one.
func BitDistance(b1, b2 []byte) int {
	if len(b1) == 0 || len(b2) == 0 {
		return 0
	}
	short, long := b1, b2
	if len(b2) < len(b1) {
		short, long = b2, b1
	}
	var n int
	for i := range long {
		n += bits.OnesCount8(long[i] ^ short[i%len(short)])
	}
	return n
}
