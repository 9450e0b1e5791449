package tlsh

import "testing"

func mustParse(t *testing.T, s string) *FuzzyHash {
	t.Helper()
	h, err := Parse(s, ParseLenient)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return h
}

// Each header field's contribution to the total distance is pinned
// against values computable from the published formulas: checksum
// mismatch costs 1, a length-code gap of d costs d*12 past the
// give-or-take-one band, and a q-ratio gap of d costs (d-1)*12.
func TestCompareComponentContributions(t *testing.T) {
	zeros := stringRepeat("0", 64)
	base := mustParse(t, "T1"+"00"+"00"+"00"+zeros)

	cases := []struct {
		name string
		text string
		want uint32
	}{
		{"checksum differs", "T1" + "10" + "00" + "00" + zeros, 1},
		{"length code off by one", "T1" + "00" + "10" + "00" + zeros, 1},
		{"length gap of two", "T1" + "00" + "20" + "00" + zeros, 24},
		{"q1 ratio gap of three", "T1" + "00" + "00" + "30" + zeros, 24},
		{"one body lane at opposite extreme", "T1" + "00" + "00" + "00" + zeros[:62] + "03", 6},
	}
	for _, c := range cases {
		h := mustParse(t, c.text)
		if got := Compare(base, h); got != c.want {
			t.Errorf("%s: Compare = %d, want %d", c.name, got, c.want)
		}
	}
}

// The published digests of two neighbouring rustc builds (1.66.1 and
// 1.67.1, Linux x86_64) are at distance 9.
func TestReferenceVectorDistance(t *testing.T) {
	a := mustParse(t, "T12AD5BE86FFE41D17CC268876A9AE472077B2B0032716DBAF1849A7647DDB7C0DF16488")
	b := mustParse(t, "T1EDD5BE96FFE41D1BCC268C7699AE4720B7B2A0032716DBAF1848A7647DD77C0DF16488")
	if d := Compare(a, b); d != 9 {
		t.Fatalf("Compare = %d, want 9", d)
	}
	if d := Compare(b, a); d != 9 {
		t.Fatalf("Compare reversed = %d, want 9", d)
	}
}

func TestCompareBodyOnlyIgnoresHeader(t *testing.T) {
	zeros := stringRepeat("0", 64)
	a := mustParse(t, "T1"+"12"+"34"+"56"+zeros)
	b := mustParse(t, "T1"+"00"+"00"+"00"+zeros)
	if d := Compare(a, b, BodyOnly(true)); d != 0 {
		t.Fatalf("BodyOnly Compare with equal bodies = %d, want 0", d)
	}
}

func TestCompareWithoutLengthPenalty(t *testing.T) {
	zeros := stringRepeat("0", 64)
	a := mustParse(t, "T1"+"00"+"80"+"00"+zeros)
	b := mustParse(t, "T1"+"00"+"00"+"00"+zeros)
	if d := Compare(a, b, WithLengthPenalty(false)); d != 0 {
		t.Fatalf("Compare without length penalty = %d, want 0", d)
	}
	if d := Compare(a, b); d == 0 {
		t.Fatalf("Compare with length penalty = 0, want > 0")
	}
}
