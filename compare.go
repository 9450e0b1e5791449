package tlsh

// CompareOption adjusts how Compare weighs the parts of a FuzzyHash
// against each other. Passing no options gives the default: every
// component (checksum, length, q-ratios, body) contributes.
type CompareOption func(*compareOptions)

type compareOptions struct {
	skipLengthPenalty bool
	bodyOnly          bool
}

// WithLengthPenalty controls whether the length-code distance
// contributes to the total. It is included by default; pass
// WithLengthPenalty(false) to compare two hashes as if their inputs had
// been the same size, which is useful when comparing a small fragment
// against a much larger corpus file.
func WithLengthPenalty(enabled bool) CompareOption {
	return func(o *compareOptions) { o.skipLengthPenalty = !enabled }
}

// BodyOnly restricts Compare to the body distance alone, ignoring
// checksum, length and q-ratios entirely. Useful for a coarse similarity
// pre-filter ahead of a full comparison.
func BodyOnly(enabled bool) CompareOption {
	return func(o *compareOptions) { o.bodyOnly = enabled }
}

// Compare returns a similarity distance between a and b: 0 means
// identical, and larger values mean less similar. Under the default
// options the result never exceeds MaxDistance.
func Compare(a, b *FuzzyHash, opts ...CompareOption) uint32 {
	var o compareOptions
	for _, opt := range opts {
		opt(&o)
	}

	dist := a.body.distance(&b.body)
	if o.bodyOnly {
		return dist
	}

	dist += distanceChecksum(a.checksum, b.checksum)
	dist += distanceQRatios(a.qratios, b.qratios)
	if !o.skipLengthPenalty {
		dist += distanceLength(a.length, b.length)
	}
	return dist
}

// MaxDistance returns the largest value Compare can return for this
// package's fixed 128-bucket/1-byte-checksum variant under the default
// options.
func MaxDistance() uint32 {
	return maxBodyDistance + 1 + maxQRatioDistance + maxLengthDistance
}
