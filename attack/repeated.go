package attack

import (
	"sync"

	"github.com/pmaddams/cryt/criteria"
	"github.com/pmaddams/cryt/xor"
)

// Repeated breaks repeating-key XOR.
//
// The key size is estimated first, then every key byte is recovered on its
// own by a single-byte attack against the column of ciphertext it encrypted.
// Columns are solved independently, so when the estimated size is wrong the
// attack can still settle on a key that each column finds plausible but
// that decrypts to garbage. Trying more than one keysize and ranking the
// results with Result mitigates this.
type Repeated struct {
	// Min and Max bound the key sizes to consider.
	Min, Max int

	// Tries is the number of top ranked key sizes to attempt.
	Tries int

	// Keysize ranks key sizes. The default is HammingDistance.
	Keysize KeysizeCriterion

	// Column scores the decryption of a single column.
	// The default is criteria.Text.
	Column criteria.Criterion

	// Result scores a complete decryption when Tries is greater than 1.
	// The default is criteria.Text.
	Result criteria.Criterion
}

// RepeatedResult is the outcome of a repeating-key XOR attack.
type RepeatedResult struct {
	Key       []byte
	Plaintext []byte

	// Score is the Result score of the plaintext, or 0 if only one
	// keysize was tried. A NaN score is reported as -Inf.
	Score float64

	// Keysizes holds the ranked candidates that were tried.
	Keysizes []Keysize
}

// RepeatedKey breaks repeating-key XOR with the default keysize and result
// criteria.
func RepeatedKey(buf []byte, lower, upper, tries int, column criteria.Criterion) (RepeatedResult, error) {
	r := Repeated{
		Min:    lower,
		Max:    upper,
		Tries:  tries,
		Column: column,
	}
	return r.Attack(buf)
}

// Attack returns the probable key and plaintext for buf.
func (r Repeated) Attack(buf []byte) (RepeatedResult, error) {
	if r.Tries < 1 {
		return RepeatedResult{}, ErrTries
	}
	if r.Keysize == nil {
		r.Keysize = HammingDistance
	}
	if r.Column == nil {
		r.Column = criteria.Text
	}
	if r.Result == nil {
		r.Result = criteria.Text
	}
	sizes, err := Keysizes(buf, r.Min, r.Max, r.Keysize)
	if err != nil {
		return RepeatedResult{}, err
	}
	if len(sizes) > r.Tries {
		sizes = sizes[:r.Tries]
	}

	var best RepeatedResult
	for i, size := range sizes {
		key := breakKey(buf, size.Size, r.Column)
		plaintext, err := xor.Apply(buf, key)
		if err != nil {
			return RepeatedResult{}, err
		}
		if len(sizes) == 1 {
			best = RepeatedResult{Key: key, Plaintext: plaintext}
			break
		}
		if score := ordered(r.Result.Score(plaintext)); i == 0 || score > best.Score {
			best = RepeatedResult{Key: key, Plaintext: plaintext, Score: score}
		}
	}
	best.Keysizes = sizes

	return best, nil
}

// breakKey recovers a key of the given size, one column at a time.
func breakKey(buf []byte, size int, c criteria.Criterion) []byte {
	cols := Transpose(buf, size)
	key := make([]byte, size)

	var wg sync.WaitGroup
	wg.Add(size)
	for i := 0; i < size; i++ {
		go func(i int) {
			defer wg.Done()
			key[i] = SingleByte(cols[i], c).Key
		}(i)
	}
	wg.Wait()

	return key
}

// Transpose returns size columns, where column j holds the bytes of buf at
// every position congruent to j modulo size, in order.
// It returns nil if size is less than 1.
func Transpose(buf []byte, size int) [][]byte {
	if size < 1 {
		return nil
	}
	cols := make([][]byte, size)
	for j := range cols {
		cols[j] = make([]byte, 0, len(buf)/size+1)
	}
	for i, b := range buf {
		cols[i%size] = append(cols[i%size], b)
	}
	return cols
}
