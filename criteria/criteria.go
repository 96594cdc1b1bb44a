// Package criteria scores how plausible a buffer is as decrypted text.
//
// Every criterion returns a higher score for more text-like input and is
// defined for empty input.
package criteria

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
)

// Criterion scores a candidate plaintext.
type Criterion interface {
	Score(buf []byte) float64
}

// Func adapts an ordinary function to a Criterion.
type Func func([]byte) float64

// Score calls f(buf).
func (f Func) Score(buf []byte) float64 {
	return f(buf)
}

var (
	// Printable scores the fraction of printable ASCII bytes.
	Printable Criterion = Func(PrintableBytes)

	// Text scores the fraction of letters, spaces and common punctuation.
	Text Criterion = Func(TextBytes)
)

// ratio returns n/total, or 0 if total is 0.
func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

// PrintableBytes returns the fraction of bytes in the range 0x20 to 0x7e.
func PrintableBytes(buf []byte) float64 {
	var n int
	for _, b := range buf {
		if b >= 0x20 && b <= 0x7e {
			n++
		}
	}
	return ratio(n, len(buf))
}

var textBytes = func() (set [256]bool) {
	for b := 'a'; b <= 'z'; b++ {
		set[b] = true
	}
	for b := 'A'; b <= 'Z'; b++ {
		set[b] = true
	}
	for _, b := range " ,.'!;:" {
		set[b] = true
	}
	return
}()

// TextBytes returns the fraction of bytes that are letters, spaces,
// or one of the punctuation marks , . ' ! ; :
func TextBytes(buf []byte) float64 {
	var n int
	for _, b := range buf {
		if textBytes[b] {
			n++
		}
	}
	return ratio(n, len(buf))
}

// CommonByte scores the fraction of bytes equal to itself.
type CommonByte byte

// Score returns the fraction of bytes in buf equal to c.
func (c CommonByte) Score(buf []byte) float64 {
	var n int
	for _, b := range buf {
		if b == byte(c) {
			n++
		}
	}
	return ratio(n, len(buf))
}

// Frequency scores a buffer by the byte frequencies of a sample text.
type Frequency [256]float64

// SampleFrequency reads sample text and returns its byte frequencies.
func SampleFrequency(in io.Reader) (*Frequency, error) {
	buf, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	var counts [256]int
	for _, b := range buf {
		counts[b]++
	}
	f := new(Frequency)
	for i, n := range counts {
		f[i] = ratio(n, len(buf))
	}
	return f, nil
}

// Score returns the mean sample frequency of the bytes in buf.
func (f *Frequency) Score(buf []byte) float64 {
	if len(buf) == 0 {
		return 0
	}
	var sum float64
	for _, b := range buf {
		sum += f[b]
	}
	return sum / float64(len(buf))
}

// ErrUnknown is returned for criterion names that cannot be parsed.
var ErrUnknown = errors.New("criteria: unknown criterion")

var byteName = regexp.MustCompile(`^byte\((\d{1,3})\)$`)

// Parse returns the criterion with the given name:
// "printable", "text", or "byte(N)" for a decimal N between 0 and 255.
func Parse(name string) (Criterion, error) {
	switch name {
	case "printable":
		return Printable, nil
	case "text":
		return Text, nil
	}
	m := byteName.FindStringSubmatch(name)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	n, err := strconv.ParseUint(m[1], 10, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: byte out of range: %s", ErrUnknown, m[1])
	}
	return CommonByte(n), nil
}
