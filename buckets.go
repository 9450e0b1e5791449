package tlsh

import "sort"

// numBuckets is the number of effective buckets in the 128-bucket (compact
// hash) variant this package implements.
const numBuckets = 128

// rawBucketCount is the width of the underlying bucket array. bMapping
// returns indices over the full 0..255 range even though this variant
// only scores the first 128 of them, so the array is sized to the
// mapping's real range instead of truncating it.
const rawBucketCount = 256

// minNonzeroBuckets is the minimum count of non-zero buckets TLSH requires
// before it will trust the resulting quartiles and body.
const minNonzeroBuckets = numBuckets/2 + 1

// buckets accumulates one 32-bit counter per bucket while a Generator
// slides its window over the input. It is mutable generator-private state;
// FuzzyHash never stores it directly. Only the first numBuckets counters
// feed the quartile/body derivation; the rest exist solely because
// bMapping's output range requires them.
type buckets [rawBucketCount]uint32

// increment bumps the bucket selected by a B-mapping result.
func (b *buckets) increment(index byte) {
	b[index]++
}

// quartiles returns the three quartile values used by the finalizer to
// turn raw bucket counts into q1 <= q2 <= q3. It operates on a throwaway
// sorted copy of the first numBuckets counters; 128 elements makes a full
// sort cheap enough that there is no need for the reference
// implementation's partial-selection trick.
func (b *buckets) quartiles() (q1, q2, q3 uint32, nonzero int) {
	var sorted [numBuckets]uint32
	copy(sorted[:], b[:numBuckets])
	for _, v := range sorted {
		if v != 0 {
			nonzero++
		}
	}
	sort.Slice(sorted[:], func(i, j int) bool { return sorted[i] < sorted[j] })
	q1 = sorted[numBuckets/4-1]
	q2 = sorted[numBuckets/2-1]
	q3 = sorted[numBuckets*3/4-1]
	return
}
