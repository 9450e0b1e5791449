// Package tlsh implements Trendmicro Locality Sensitive Hash (TLSH), a
// fuzzy hash used to estimate the similarity of two byte streams.
//
// A TLSH digest is built by streaming arbitrary bytes through a Generator,
// which slides a 5-byte window over the input and uses Pearson hashing to
// bump per-bucket counters. Finalize derives a quartile-encoded body, a
// running checksum and a logarithmic length code from those counters into
// an immutable FuzzyHash. Two hashes can then be compared with Compare,
// which returns an edit-distance-like score: low scores mean the inputs
// were similar, zero means identical.
//
// This package only implements the 128-bucket / 1-byte-checksum TLSH
// variant (TLSH's default "compact hash", textual form "T1" followed by
// 70 hex digits) and aims to be bit-for-bit compatible with the reference
// TLSH implementation's output for that variant.
package tlsh
