package attack

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/pmaddams/cryt/xor"
)

var (
	// ErrRange is returned for an empty or invalid keysize range.
	ErrRange = errors.New("attack: invalid keysize range")

	// ErrTries is returned when no keysize candidates are to be tried.
	ErrTries = errors.New("attack: keysizes to try must be at least 1")
)

// KeysizeCriterion scores how likely size is the key length of buf.
type KeysizeCriterion interface {
	Score(buf []byte, size int) float64
}

// KeysizeFunc adapts an ordinary function to a KeysizeCriterion.
type KeysizeFunc func([]byte, int) float64

// Score calls f(buf, size).
func (f KeysizeFunc) Score(buf []byte, size int) float64 {
	return f(buf, size)
}

// HammingDistance scores a keysize by the inverse normalized bit distance
// between consecutive pairs of blocks.
var HammingDistance KeysizeCriterion = KeysizeFunc(NormalizedDistance)

// Keysize is a candidate key length and its score.
type Keysize struct {
	Size  int
	Score float64
}

// Keysizes scores every size from lower to upper inclusive and returns the
// candidates in descending order of score. Equal scores keep ascending size.
func Keysizes(buf []byte, lower, upper int, c KeysizeCriterion) ([]Keysize, error) {
	if lower < 1 || upper < lower {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrRange, lower, upper)
	}
	n := upper - lower + 1
	if n > maxPrealloc {
		n = maxPrealloc
	}
	res := make([]Keysize, 0, n)
	// Stop at upper before incrementing, so upper may be math.MaxInt.
	for size := lower; ; size++ {
		res = append(res, Keysize{size, ordered(c.Score(buf, size))})
		if size == upper {
			break
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Score > res[j].Score
	})
	return res, nil
}

// maxPrealloc bounds the capacity reserved for a keysize range.
const maxPrealloc = 1024

// ordered returns score, or -Inf if score is NaN, which cannot be sorted.
func ordered(score float64) float64 {
	if math.IsNaN(score) {
		return math.Inf(-1)
	}
	return score
}

// NormalizedDistance returns the inverse of the mean bit distance between
// the pairs of blocks (0, 1), (2, 3), ... divided by the block size.
// If the buffer holds fewer than two blocks, it returns -Inf.
func NormalizedDistance(buf []byte, blockSize int) float64 {
	blocks := Subdivide(buf, blockSize)
	var sum, pairs int
	for i := 0; i+1 < len(blocks); i += 2 {
		sum += xor.BitDistance(blocks[i], blocks[i+1])
		pairs++
	}
	if pairs == 0 {
		return math.Inf(-1)
	}
	return 1 / (float64(sum) / float64(pairs) / float64(blockSize))
}

// Subdivide divides a buffer into blocks, dropping a short final block.
func Subdivide(buf []byte, blockSize int) [][]byte {
	if blockSize < 1 {
		return nil
	}
	var blocks [][]byte
	for len(buf) >= blockSize {
		// Return pointers, not copies.
		blocks = append(blocks, buf[:blockSize:blockSize])
		buf = buf[blockSize:]
	}
	return blocks
}
