package tlsh

import "sort"

// lengthTopValue[i] is the maximum input length (inclusive) that encodes
// to length code i. It is strictly increasing; encoding is a binary
// search for the first entry >= the input length, mirroring the reference
// TLSH implementation's logarithmic length buckets exactly (the step
// points are not derivable from a closed-form formula without matching
// rounding quirks, so they are reproduced verbatim as a table).
var lengthTopValue = [...]uint32{
	1, 2, 3, 5, 7, 11, 17, 25, 38, 57, 86, 129, 194, 291, 437, 656,
	854, 1110, 1443, 1876, 2439, 3171,
	3475, 3823, 4205, 4626, 5088, 5597, 6157, 6772, 7450, 8195, 9014, 9916,
	10907, 11998, 13198, 14518, 15970, 17567, 19323, 21256, 23382, 25720, 28292,
	31121, 34233, 37656, 41422, 45564, 50121, 55133, 60646, 66711, 73382, 80721,
	88793, 97672, 107439, 118183, 130002, 143002, 157302, 173032, 190335, 209369,
	230306, 253337, 278670, 306538, 337191, 370911, 408002, 448802, 493682, 543050,
	597356, 657091, 722800, 795081, 874589, 962048, 1058252, 1164078, 1280486,
	1408534, 1549388, 1704327, 1874759, 2062236, 2268459, 2495305, 2744836, 3019320,
	3321252, 3653374, 4018711, 4420582, 4862641, 5348905, 5883796, 6472176, 7119394,
	7831333, 8614467, 9475909, 10423501, 11465851, 12612437, 13873681, 15261050,
	16787154, 18465870, 20312458, 22343706, 24578077, 27035886, 29739474, 32713425,
	35984770, 39583245, 43541573, 47895730, 52685306, 57953837, 63749221, 70124148,
	77136564, 84850228, 93335252, 102668779, 112935659, 124229227, 136652151,
	150317384, 165349128, 181884040, 200072456, 220079703, 242087671, 266296456,
	292926096, 322218735, 354440623, 389884688, 428873168, 471760495, 518936559,
	570830240, 627913311, 690704607, 759775136, 835752671, 919327967, 1011260767,
	1112386880, 1223623232, 1345985727, 1480584256, 1628642751, 1791507135,
	1970657856, 2167723648, 2384496256, 2622945920, 2885240448, 3173764736,
	3491141248, 3840255616, 4224281216,
}

// maxInputLength is the largest input length (in bytes) that Lcode can
// encode.
var maxInputLength = lengthTopValue[len(lengthTopValue)-1]

// lengthDistanceMultiplier scales the raw length-code difference once it
// exceeds the "close enough" threshold of 1.
const lengthDistanceMultiplier = 12

// maxLengthDistance is the largest value distanceLength can return.
const maxLengthDistance = 0x80 * lengthDistanceMultiplier

// encodeLength computes the logarithmic 1-byte length code (Lcode) for a
// given input byte count, ok is false if length exceeds what Lcode can
// represent.
func encodeLength(length uint64) (code byte, ok bool) {
	if length == 0 {
		return 0, true
	}
	if length > uint64(maxInputLength) {
		return 0, false
	}
	i := sort.Search(len(lengthTopValue), func(i int) bool {
		return uint64(lengthTopValue[i]) >= length
	})
	return byte(i), true
}

// distanceOnRingMod256 returns the shorter of the two distances between x
// and y on the ring of integers modulo 256.
func distanceOnRingMod256(x, y byte) byte {
	d := uint16(x - y)
	if d > 128 {
		d = 256 - d
	}
	return byte(d)
}

// distanceLength computes the contribution of two length codes to the
// total comparison distance.
func distanceLength(a, b byte) uint32 {
	d := uint32(distanceOnRingMod256(a, b))
	if d <= 1 {
		return d
	}
	return d * lengthDistanceMultiplier
}
