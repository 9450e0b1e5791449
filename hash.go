package tlsh

// FuzzyHash is an immutable TLSH digest: a 1-byte running checksum, a
// 1-byte logarithmic length code, a 1-byte pair of quartile ratios, and a
// 32-byte quartile-encoded body. It is safe for concurrent use by
// multiple goroutines because nothing ever mutates it after Finalize or
// Parse produce it.
type FuzzyHash struct {
	checksum byte
	length   byte
	qratios  byte
	body     body
}

// Checksum returns the hash's 1-byte running checksum.
func (h *FuzzyHash) Checksum() byte { return h.checksum }

// LengthCode returns the hash's logarithmic length code.
func (h *FuzzyHash) LengthCode() byte { return h.length }

// QRatios returns the hash's packed quartile-ratio byte (q1ratio in the
// low nibble, q2ratio in the high nibble).
func (h *FuzzyHash) QRatios() byte { return h.qratios }

// Body returns a copy of the hash's 32-byte quartile-encoded body.
func (h *FuzzyHash) Body() [bodySize]byte { return h.body }

// Equal reports whether h and other encode the same digest.
func (h *FuzzyHash) Equal(other *FuzzyHash) bool {
	if h == other {
		return true
	}
	if h == nil || other == nil {
		return false
	}
	return h.checksum == other.checksum &&
		h.length == other.length &&
		h.qratios == other.qratios &&
		h.body == other.body
}
