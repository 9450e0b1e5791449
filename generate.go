package tlsh

// windowSize is the width of the sliding window TLSH uses to capture
// local features. It is not meant to be configurable.
const windowSize = 5

// minInputLength is the smallest input, in bytes, the default generator
// will accept.
const minInputLength = 50

// minInputLengthStrict is the smallest input the generator will accept
// when constructed with StrictInputLength(true).
const minInputLengthStrict = 256

// Generator accumulates bytes fed via Update into a running bucket
// histogram and checksum; Finalize turns that state into an immutable
// FuzzyHash. A Generator has no concurrent-safety of its own: it is
// meant to be owned and driven by a single goroutine, the same way
// bytes.Buffer or hash.Hash implementations are.
type Generator struct {
	buckets  buckets
	checksum byte
	length   uint64

	minLength uint64

	// tail holds the last windowSize-1 bytes seen so far, used to seed
	// the sliding window across calls to Update.
	tail    [windowSize - 1]byte
	tailLen int
}

// GeneratorOption configures a Generator returned by NewGenerator.
type GeneratorOption func(*Generator)

// StrictInputLength raises the minimum acceptable input from 50 bytes to
// 256 bytes. TLSH's reference implementation calls this its conservative
// mode: short inputs produce unstable quartiles even when they clear the
// default minimum, so callers who care more about hash quality than
// being able to hash small files can opt in.
func StrictInputLength(enabled bool) GeneratorOption {
	return func(g *Generator) {
		if enabled {
			g.minLength = minInputLengthStrict
		} else {
			g.minLength = minInputLength
		}
	}
}

// NewGenerator returns a Generator ready to accept input via Update.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{minLength: minInputLength}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Update feeds more input bytes into the generator. It may be called any
// number of times; the hash that Finalize eventually produces does not
// depend on how the input was chunked across calls.
func (g *Generator) Update(data []byte) {
	if g.tailLen < len(g.tail) {
		room := len(g.tail) - g.tailLen
		if len(data) <= room {
			copy(g.tail[g.tailLen:], data)
			g.tailLen += len(data)
			return
		}
		copy(g.tail[g.tailLen:], data[:room])
		g.tailLen += room
		data = data[room:]
	}

	g.length += uint64(len(data))

	b0, b1, b2, b3 := g.tail[0], g.tail[1], g.tail[2], g.tail[3]
	for _, b4 := range data {
		g.checksum = checksumUpdate(g.checksum, b4, b3)
		g.buckets.increment(bMapping(0x2, b4, b3, b2))
		g.buckets.increment(bMapping(0x3, b4, b3, b1))
		g.buckets.increment(bMapping(0x5, b4, b2, b1))
		g.buckets.increment(bMapping(0x7, b4, b2, b0))
		g.buckets.increment(bMapping(0xb, b4, b3, b0))
		g.buckets.increment(bMapping(0xd, b4, b1, b0))
		b0, b1, b2, b3 = b1, b2, b3, b4
	}

	if len(data) >= len(g.tail) {
		copy(g.tail[:], data[len(data)-len(g.tail):])
	} else {
		copy(g.tail[:len(g.tail)-len(data)], g.tail[len(data):])
		copy(g.tail[len(g.tail)-len(data):], data)
	}
}

// processedLen returns the total number of bytes fed to Update so far.
func (g *Generator) processedLen() uint64 {
	return g.length + uint64(g.tailLen)
}

// Finalize derives an immutable FuzzyHash from everything fed to the
// generator so far. It does not reset or otherwise mutate the generator;
// calling it twice in a row returns equal hashes.
func (g *Generator) Finalize() (*FuzzyHash, error) {
	n := g.processedLen()
	if n < g.minLength {
		return nil, ErrInputTooShort
	}
	lcode, ok := encodeLength(n)
	if !ok {
		return nil, ErrInputTooLarge
	}

	q1, q2, q3, nonzero := g.buckets.quartiles()
	if q3 == 0 || nonzero < minNonzeroBuckets {
		return nil, ErrInsufficientComplexity
	}

	qr := encodeQRatios(q1, q2, q3)
	b := aggregate(&g.buckets, q1, q2, q3)

	return &FuzzyHash{
		checksum: g.checksum,
		length:   lcode,
		qratios:  qr,
		body:     b,
	}, nil
}

// Oneshot computes the FuzzyHash of data in a single call, equivalent to
// feeding all of data to a fresh Generator and calling Finalize.
func Oneshot(data []byte, opts ...GeneratorOption) (*FuzzyHash, error) {
	g := NewGenerator(opts...)
	g.Update(data)
	return g.Finalize()
}
