package tlshindex

import (
	"github.com/dchest/siphash"
	"github.com/dgryski/go-bits"
	"github.com/dgryski/go-tlsh"
)

// Sketch is a 64-bit simhash-style summary of a FuzzyHash's encoded bytes.
// It is cheap to compare with hamming distance, which makes it useful as
// an approximate prefilter ahead of an exact tlsh.Compare.
type Sketch uint64

// sketchGramSize is the width of the sliding window NewSketch slides over
// the encoded digest. Trigrams keep enough neighbour context that a
// one-byte change in the digest only disturbs three votes per bit.
const sketchGramSize = 3

// NewSketch derives a Sketch from h with Charikar's simhash scheme: each
// trigram of the digest's encoded byte stream (checksum, length code,
// q-ratios, body) is hashed with siphash, and each of the 64 hash bits
// votes that bit of the sketch up or down.
func NewSketch(h *tlsh.FuzzyHash) Sketch {
	body := h.Body()
	buf := make([]byte, 0, 3+len(body))
	buf = append(buf, h.Checksum(), h.LengthCode(), h.QRatios())
	buf = append(buf, body[:]...)

	var votes [64]int
	for i := 0; i+sketchGramSize <= len(buf); i++ {
		f := siphash.Hash(0, 0, buf[i:i+sketchGramSize])
		for j := range votes {
			if f&1 == 1 {
				votes[j]++
			} else {
				votes[j]--
			}
			f >>= 1
		}
	}

	var s uint64
	for j := 63; j >= 0; j-- {
		s <<= 1
		if votes[j] < 0 {
			s |= 1
		}
	}
	return Sketch(s)
}

// Distance returns the hamming distance between two sketches.
func (s Sketch) Distance(other Sketch) int {
	return int(bits.Popcnt(uint64(s) ^ uint64(other)))
}
