// Package attack recovers repeating-key XOR keys from ciphertext alone.
package attack

import (
	"github.com/pmaddams/cryt/criteria"
	"github.com/pmaddams/cryt/xor"
)

// SingleByteResult is the outcome of a single-byte XOR attack.
type SingleByteResult struct {
	Key       byte
	Score     float64
	Plaintext []byte
}

// SingleByte tries every one-byte key against buf and returns the one whose
// plaintext scores highest. A key replaces the best so far only if its score
// is strictly greater, starting from key 0 with score 0 and no plaintext.
func SingleByte(buf []byte, c criteria.Criterion) SingleByteResult {
	var best SingleByteResult
	tmp := make([]byte, len(buf))
	for i := 0; i <= 0xff; i++ {
		xor.XORSingleByte(tmp, buf, byte(i))
		if score := c.Score(tmp); score > best.Score {
			best.Key = byte(i)
			best.Score = score
			best.Plaintext = append(best.Plaintext[:0], tmp...)
		}
	}
	return best
}
