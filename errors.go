package tlsh

import "errors"

// Errors returned by Generator.Finalize.
var (
	// ErrInputTooShort is returned when fewer bytes were fed to the
	// generator than the minimum TLSH requires to produce a hash.
	ErrInputTooShort = errors.New("tlsh: input too short")

	// ErrInputTooLarge is returned when the input length cannot be
	// represented by the length code at all.
	ErrInputTooLarge = errors.New("tlsh: input too large")

	// ErrInsufficientComplexity is returned when the input's byte
	// distribution is too uniform for TLSH to derive meaningful quartiles
	// or a useful body (too many empty buckets).
	ErrInsufficientComplexity = errors.New("tlsh: insufficient input complexity")
)

// Errors returned by Parse.
var (
	// ErrBadLength is returned when a textual hash is not 70 hex digits
	// (72 with the optional "T1" prefix).
	ErrBadLength = errors.New("tlsh: bad text length")

	// ErrBadCharacter is returned when a textual hash contains a
	// non-hexadecimal character where a hex digit was expected.
	ErrBadCharacter = errors.New("tlsh: bad character")

	// ErrStrictViolation is returned by strict parsing when a textual
	// hash is well-formed but could not have been produced by the
	// encoder: it lacks the "T1" prefix, or its length code lies past the
	// end of the length table.
	ErrStrictViolation = errors.New("tlsh: strict parse violation")
)
