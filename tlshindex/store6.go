package tlshindex

import "github.com/dgryski/go-tlsh"

// Store6 is an approximate-nearest-neighbour index over fuzzy hashes,
// prefiltering on Sketch hamming distance <= 6. It trades a larger table
// set for a wider net than Store.
type Store6 struct {
	Store
}

// NewStore6 returns an empty Store6. hashes, if nonzero, preallocates each
// internal table's capacity.
func NewStore6(hashes int) *Store6 {
	var s Store6
	s.tables = make([]table, 49)
	s.exact = make(map[uint64]*tlsh.FuzzyHash)

	if hashes != 0 {
		for i := range s.tables {
			s.tables[i] = make([]entry, 0, hashes)
		}
	}

	return &s
}

// Add inserts h under docid into the store.
func (s *Store6) Add(h *tlsh.FuzzyHash, docid uint64) {
	s.exact[docid] = h
	s.addSketch6(uint64(NewSketch(h)), docid)
}

func (s *Store6) addSketch6(sig uint64, docid uint64) {
	t := 0

	var p uint64

	for i := 0; i < 6; i++ {
		p = sig
		s.tables[t] = append(s.tables[t], entry{hash: p, docid: docid})
		t++
		p = (sig & 0xff80007fffffffff) | (sig & 0x007f800000000000 >> 8) | (sig & 0x00007f8000000000 << 8)
		s.tables[t] = append(s.tables[t], entry{hash: p, docid: docid})
		t++
		p = (sig & 0xff807f807fffffff) | (sig & 0x007f800000000000 >> 16) | (sig & 0x0000007f80000000 << 16)
		s.tables[t] = append(s.tables[t], entry{hash: p, docid: docid})
		t++
		p = (sig & 0xff807fff807fffff) | (sig & 0x007f800000000000 >> 24) | (sig & 0x000000007f800000 << 24)
		s.tables[t] = append(s.tables[t], entry{hash: p, docid: docid})
		t++
		p = (sig & 0xff807fffff807fff) | (sig & 0x007f800000000000 >> 32) | (sig & 0x00000000007f8000 << 32)
		s.tables[t] = append(s.tables[t], entry{hash: p, docid: docid})
		t++
		p = (sig & 0xff807fffffff807f) | (sig & 0x007f800000000000 >> 40) | (sig & 0x0000000000007f80 << 40)
		s.tables[t] = append(s.tables[t], entry{hash: p, docid: docid})
		t++
		p = (sig & 0xff80ffffffffff80) | (sig & 0x007f000000000000 >> 48) | (sig & 0x000000000000007f << 48)
		s.tables[t] = append(s.tables[t], entry{hash: p, docid: docid})
		t++
		sig = (sig << 9) | (sig >> (64 - 9))
	}

	s.tables[t] = append(s.tables[t], entry{hash: p, docid: docid})
	t++
	p = (sig & 0xffc0003fffffffff) | (sig & 0x003fc00000000000 >> 8) | (sig & 0x00003fc000000000 << 8)
	s.tables[t] = append(s.tables[t], entry{hash: p, docid: docid})
	t++
	p = (sig & 0xffc03fc03fffffff) | (sig & 0x003fc00000000000 >> 16) | (sig & 0x0000003fc0000000 << 16)
	s.tables[t] = append(s.tables[t], entry{hash: p, docid: docid})
	t++
	p = (sig & 0xffc03fffc03fffff) | (sig & 0x003fc00000000000 >> 24) | (sig & 0x000000003fc00000 << 24)
	s.tables[t] = append(s.tables[t], entry{hash: p, docid: docid})
	t++
	p = (sig & 0xffc03fffffc03fff) | (sig & 0x003fc00000000000 >> 32) | (sig & 0x00000000003fc000 << 32)
	s.tables[t] = append(s.tables[t], entry{hash: p, docid: docid})
	t++
	p = (sig & 0xffc07fffffffc07f) | (sig & 0x003f800000000000 >> 40) | (sig & 0x0000000000003f80 << 40)
	s.tables[t] = append(s.tables[t], entry{hash: p, docid: docid})
	t++
	p = (sig & 0xffc07fffffffff80) | (sig & 0x003f800000000000 >> 47) | (sig & 0x000000000000007f << 47)
	s.tables[t] = append(s.tables[t], entry{hash: p, docid: docid})
}

const mask6_9_8 = 0xffff800000000000
const mask6_9_7 = 0xffff000000000000
const mask6_10_8 = 0xffffc00000000000
const mask6_10_7 = 0xffff800000000000

func (s *Store6) findSketches6(sig uint64) []uint64 {
	var ids []uint64

	// TODO(dgryski): search in parallel

	t := 0

	var p uint64

	for i := 0; i < 6; i++ {
		p = sig
		ids = append(ids, s.tables[t].find(p, mask6_9_8, 6)...)
		t++
		p = (sig & 0xff80007fffffffff) | (sig & 0x007f800000000000 >> 8) | (sig & 0x00007f8000000000 << 8)
		ids = append(ids, s.tables[t].find(p, mask6_9_8, 6)...)
		t++
		p = (sig & 0xff807f807fffffff) | (sig & 0x007f800000000000 >> 16) | (sig & 0x0000007f80000000 << 16)
		ids = append(ids, s.tables[t].find(p, mask6_9_8, 6)...)
		t++
		p = (sig & 0xff807fff807fffff) | (sig & 0x007f800000000000 >> 24) | (sig & 0x000000007f800000 << 24)
		ids = append(ids, s.tables[t].find(p, mask6_9_8, 6)...)
		t++
		p = (sig & 0xff807fffff807fff) | (sig & 0x007f800000000000 >> 32) | (sig & 0x00000000007f8000 << 32)
		ids = append(ids, s.tables[t].find(p, mask6_9_8, 6)...)
		t++
		p = (sig & 0xff807fffffff807f) | (sig & 0x007f800000000000 >> 40) | (sig & 0x0000000000007f80 << 40)
		ids = append(ids, s.tables[t].find(p, mask6_9_8, 6)...)
		t++
		p = (sig & 0xff80ffffffffff80) | (sig & 0x007f000000000000 >> 48) | (sig & 0x000000000000007f << 48)
		ids = append(ids, s.tables[t].find(p, mask6_9_7, 6)...)
		t++
		sig = (sig << 9) | (sig >> (64 - 9))
	}

	ids = append(ids, s.tables[t].find(p, mask6_10_8, 6)...)
	t++
	p = (sig & 0xffc0003fffffffff) | (sig & 0x003fc00000000000 >> 8) | (sig & 0x00003fc000000000 << 8)
	ids = append(ids, s.tables[t].find(p, mask6_10_8, 6)...)
	t++
	p = (sig & 0xffc03fc03fffffff) | (sig & 0x003fc00000000000 >> 16) | (sig & 0x0000003fc0000000 << 16)
	ids = append(ids, s.tables[t].find(p, mask6_10_8, 6)...)
	t++
	p = (sig & 0xffc03fffc03fffff) | (sig & 0x003fc00000000000 >> 24) | (sig & 0x000000003fc00000 << 24)
	ids = append(ids, s.tables[t].find(p, mask6_10_8, 6)...)
	t++
	p = (sig & 0xffc03fffffc03fff) | (sig & 0x003fc00000000000 >> 32) | (sig & 0x00000000003fc000 << 32)
	ids = append(ids, s.tables[t].find(p, mask6_10_8, 6)...)
	t++
	p = (sig & 0xffc07fffffffc07f) | (sig & 0x003f800000000000 >> 40) | (sig & 0x0000000000003f80 << 40)
	ids = append(ids, s.tables[t].find(p, mask6_10_7, 6)...)
	t++
	p = (sig & 0xffc07fffffffff80) | (sig & 0x003f800000000000 >> 47) | (sig & 0x000000000000007f << 47)
	ids = append(ids, s.tables[t].find(p, mask6_10_7, 6)...)
	t++

	return unique(ids)
}

// Find searches the store for hashes within maxDistance of query, using a
// Sketch hamming-distance-6 prefilter followed by exact tlsh.Compare
// re-ranking.
func (s *Store6) Find(query *tlsh.FuzzyHash, maxDistance uint32) []Candidate {
	sketch := uint64(NewSketch(query))
	return s.rerank(s.findSketches6(sketch), query, maxDistance)
}
