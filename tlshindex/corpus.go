package tlshindex

import (
	"bytes"
	"errors"
	"io"
	"sort"

	"github.com/dgryski/go-bits"
	"github.com/dgryski/go-bitstream"
	"github.com/dgryski/go-huff"
)

const (
	blockSize     = 1024
	blockSizeBits = blockSize * 8
)

// CompressedCorpus is the bulk-storage counterpart to a live Store: a
// sorted run of Sketch values delta-compressed into fixed-size blocks.
// Sorted sketches compress well, since each one's leading bits tend to
// agree with its neighbour's; each delta is framed as a Huffman-coded
// shared-prefix length followed by the raw differing tail. The first
// sketch of every block is kept uncompressed in an index, which doubles
// as a block directory for membership lookups.
type CompressedCorpus struct {
	index []Sketch
	d     *huff.Decoder
	b     []byte
}

// Blocks returns the number of fixed-size blocks in the corpus.
func (c *CompressedCorpus) Blocks() int {
	return len(c.index)
}

var (
	ErrCorruptCorpus = errors.New("tlshindex: corrupt compressed corpus")
	ErrInvalidBlock  = errors.New("tlshindex: invalid block")
)

// deltaPrefix returns the number of leading bits s shares with prev.
func deltaPrefix(prev, s Sketch) int {
	return int(bits.Clz(uint64(prev ^ s)))
}

// CompressCorpus compresses a sorted slice of Sketch values. u must be
// sorted strictly ascending (sort and deduplicate first); CompressCorpus
// verifies neither.
func CompressCorpus(u []Sketch) *CompressedCorpus {
	if len(u) == 0 {
		return &CompressedCorpus{}
	}

	var counts [64]int
	for i := 1; i < len(u); i++ {
		counts[deltaPrefix(u[i-1], u[i])]++
	}
	e := huff.NewEncoder(counts[:])

	var w bytes.Buffer
	hw := e.Writer(&w)
	eofbits := e.SymbolLen(huff.EOF)

	var index []Sketch
	var nbits int

	// A block opens with its first sketch spelled out in full; the
	// same value lands in the index so lookups can find the block
	// without decompressing anything.
	openBlock := func(s Sketch) {
		index = append(index, s)
		hw.WriteBits(uint64(s), 64)
		nbits = 64
	}

	// Closing a block writes the EOF symbol and zero-pads out to the
	// fixed block size, so block boundaries stay byte-addressable.
	closeBlock := func() {
		hw.WriteSymbol(huff.EOF)
		nbits += eofbits
		for nbits%8 != 0 {
			hw.WriteBit(bitstream.Zero)
			nbits++
		}
		for nbits < blockSizeBits {
			hw.WriteByte(0)
			nbits += 8
		}
	}

	openBlock(u[0])
	for i := 1; i < len(u); i++ {
		same := deltaPrefix(u[i-1], u[i])
		need := e.SymbolLen(uint32(same)) + (64 - same - 1)

		// Writing a delta must always leave room for the EOF symbol.
		if nbits+need+eofbits >= blockSizeBits {
			closeBlock()
			openBlock(u[i])
			continue
		}

		hw.WriteSymbol(uint32(same))
		hw.WriteBits(uint64(u[i]), 64-same-1)
		nbits += need
	}
	hw.WriteSymbol(huff.EOF)
	hw.Flush(bitstream.Zero)

	return &CompressedCorpus{index, e.Decoder(), w.Bytes()}
}

// DecompressBlock decompresses the given block index back into its
// original sorted Sketch run.
func (c *CompressedCorpus) DecompressBlock(block int) ([]Sketch, error) {
	if block < 0 || block >= len(c.index) {
		return nil, ErrInvalidBlock
	}

	offs := block * blockSize
	end := offs + blockSize
	if end > len(c.b) {
		end = len(c.b)
	}
	br := bitstream.NewReader(bytes.NewReader(c.b[offs:end]))

	first, err := br.ReadBits(64)
	if err != nil {
		return nil, ErrCorruptCorpus
	}

	u := []Sketch{Sketch(first)}
	prev := first
	for {
		same, err := c.d.ReadSymbol(br)
		if same == huff.EOF {
			break
		}
		tail, tailErr := br.ReadBits(int(64 - same - 1))
		if tailErr != nil {
			return nil, ErrCorruptCorpus
		}

		// Rebuild the sketch: shared prefix from its predecessor, the
		// first differing bit (always 1, since the run is ascending),
		// then the raw tail.
		keep := uint64(((1 << same) - 1) << (64 - same))
		sig := (prev & keep) | (1 << (64 - same - 1)) | tail

		u = append(u, Sketch(sig))
		prev = sig
		if err == io.EOF {
			break
		}
	}

	return u, nil
}

// Contains reports whether s is present in the corpus. The block index
// narrows the search to the single block that could hold s, so at most
// one block is decompressed.
func (c *CompressedCorpus) Contains(s Sketch) (bool, error) {
	if len(c.index) == 0 {
		return false, nil
	}

	// Last block whose first sketch is <= s.
	i := sort.Search(len(c.index), func(i int) bool { return c.index[i] > s }) - 1
	if i < 0 {
		return false, nil
	}

	u, err := c.DecompressBlock(i)
	if err != nil {
		return false, err
	}
	j := sort.Search(len(u), func(j int) bool { return u[j] >= s })
	return j < len(u) && u[j] == s, nil
}
