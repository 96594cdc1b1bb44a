package attack

import (
	"bytes"
	"errors"
	"math"
	"os"
	"reflect"
	"testing"

	"github.com/pmaddams/cryt/criteria"
	"github.com/pmaddams/cryt/xor"
)

func readSample(t *testing.T) []byte {
	t.Helper()
	buf, err := os.ReadFile("testdata/alice.txt")
	if err != nil {
		t.Fatal(err)
	}
	return bytes.TrimSpace(buf)
}

func encrypt(t *testing.T, plaintext, key []byte) []byte {
	t.Helper()
	buf, err := xor.Apply(plaintext, key)
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

// alphabet returns a criterion that counts bytes appearing in sample.
func alphabet(sample []byte) criteria.Criterion {
	return criteria.Func(func(buf []byte) float64 {
		var n int
		for _, b := range buf {
			if bytes.IndexByte(sample, b) >= 0 {
				n++
			}
		}
		return float64(n)
	})
}

func TestRepeatedKey(t *testing.T) {
	cases := []struct {
		plaintext []byte
		key       []byte
	}{
		{
			[]byte("this text is encrypted with repeated xor"),
			[]byte("SeCreT"),
		},
		{
			readSample(t),
			[]byte("SeCreT"),
		},
	}
	for _, c := range cases {
		r := Repeated{
			Min:     1,
			Max:     15,
			Tries:   1,
			Keysize: favor(len(c.key)),
			Column:  alphabet(c.plaintext),
		}
		got, err := r.Attack(encrypt(t, c.plaintext, c.key))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got.Key, c.key) {
			t.Errorf("got key %q, want %q", got.Key, c.key)
		}
		if !bytes.Equal(got.Plaintext, c.plaintext) {
			t.Errorf("got %q, want %q", got.Plaintext, c.plaintext)
		}
	}
}

func TestRepeatedKeyHammingDistance(t *testing.T) {
	plaintext := readSample(t)
	key := []byte("SeCreT")
	got, err := RepeatedKey(encrypt(t, plaintext, key), 2, 11, 1, criteria.Text)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Key, key) {
		t.Errorf("got key %q, want %q", got.Key, key)
	}
	if !bytes.Equal(got.Plaintext, plaintext) {
		t.Errorf("got %q, want %q", got.Plaintext, plaintext)
	}
}

func TestRepeatedKeyMultiple(t *testing.T) {
	// Over a wide range a multiple of the key size can rank first.
	// The recovered key is then the real key repeated, which still
	// decrypts correctly.
	plaintext := readSample(t)
	key := []byte("SeCreT")
	got, err := RepeatedKey(encrypt(t, plaintext, key), 1, 15, 1, criteria.Text)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Key)%len(key) != 0 || !bytes.Equal(got.Key[:len(key)], key) {
		t.Errorf("got key %q, want repetition of %q", got.Key, key)
	}
	if !bytes.Equal(got.Plaintext, plaintext) {
		t.Errorf("got %q, want %q", got.Plaintext, plaintext)
	}
}

// wrong ranks size 5 first and size 6 second.
var wrong = KeysizeFunc(func(_ []byte, n int) float64 {
	switch n {
	case 5:
		return 3
	case 6:
		return 2
	}
	return 1 / float64(n)
})

func TestRepeatedTries(t *testing.T) {
	plaintext := readSample(t)
	key := []byte("SeCreT")
	ciphertext := encrypt(t, plaintext, key)

	r := Repeated{Min: 1, Max: 15, Tries: 1, Keysize: wrong}
	got, err := r.Attack(ciphertext)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Key) != 5 {
		t.Errorf("got key %q, want length 5", got.Key)
	}
	if got.Score != 0 {
		t.Errorf("got score %v, want 0", got.Score)
	}

	r.Tries = 3
	got, err = r.Attack(ciphertext)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Key, key) {
		t.Errorf("got key %q, want %q", got.Key, key)
	}
	if want := criteria.Text.Score(plaintext); got.Score != want {
		t.Errorf("got score %v, want %v", got.Score, want)
	}
	wantSizes := []Keysize{{5, 3}, {6, 2}, {1, 1}}
	if !reflect.DeepEqual(got.Keysizes, wantSizes) {
		t.Errorf("got %v, want %v", got.Keysizes, wantSizes)
	}
}

func TestRepeatedNaNResult(t *testing.T) {
	plaintext := readSample(t)
	key := []byte("SeCreT")

	// The garbage decryption of the first candidate scores NaN.
	nan := criteria.Func(func(buf []byte) float64 {
		if score := criteria.Text.Score(buf); score > 0.99 {
			return score
		}
		return math.NaN()
	})
	r := Repeated{Min: 1, Max: 15, Tries: 3, Keysize: wrong, Result: nan}
	got, err := r.Attack(encrypt(t, plaintext, key))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got.Key, key) {
		t.Errorf("got key %q, want %q", got.Key, key)
	}
	if math.IsNaN(got.Score) {
		t.Errorf("got score %v, want a number", got.Score)
	}
}

func TestRepeatedShortInput(t *testing.T) {
	cases := []struct {
		buf          []byte
		lower, upper int
		tries        int
		key          []byte
	}{
		{
			nil,
			1, 4, 1,
			[]byte{0},
		},
		{
			[]byte("ab"),
			3, 5, 2,
			[]byte{0, 0, 0},
		},
	}
	for _, c := range cases {
		got, err := RepeatedKey(c.buf, c.lower, c.upper, c.tries, criteria.Text)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got.Key, c.key) {
			t.Errorf("got key %v, want %v", got.Key, c.key)
		}
		if !bytes.Equal(got.Plaintext, c.buf) {
			t.Errorf("got %q, want %q", got.Plaintext, c.buf)
		}
	}
}

func TestRepeatedErrors(t *testing.T) {
	cases := []struct {
		lower, upper, tries int
		want                error
	}{
		{0, 4, 1, ErrRange},
		{5, 4, 1, ErrRange},
		{1, 4, 0, ErrTries},
		{1, 4, -1, ErrTries},
	}
	for _, c := range cases {
		_, err := RepeatedKey([]byte("data"), c.lower, c.upper, c.tries, criteria.Text)
		if !errors.Is(err, c.want) {
			t.Errorf("RepeatedKey(%d, %d, %d): got %v, want %v", c.lower, c.upper, c.tries, err, c.want)
		}
	}
}

func TestTranspose(t *testing.T) {
	cases := []struct {
		buf  []byte
		size int
		want [][]byte
	}{
		{
			[]byte{0, 1, 2, 3},
			2,
			[][]byte{
				{0, 2},
				{1, 3},
			},
		},
		{
			[]byte{0, 1, 2, 3, 4},
			2,
			[][]byte{
				{0, 2, 4},
				{1, 3},
			},
		},
		{
			[]byte{0, 1},
			3,
			[][]byte{
				{0},
				{1},
				{},
			},
		},
		{
			[]byte("abc"),
			0,
			nil,
		},
		{
			[]byte("abc"),
			-1,
			nil,
		},
	}
	for _, c := range cases {
		got := Transpose(c.buf, c.size)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("got %v, want %v", got, c.want)
		}
	}
}
