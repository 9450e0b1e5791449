package tlsh

import "testing"

func TestEncodeQRatiosNibbleOrder(t *testing.T) {
	// q1=25, q2=50, q3=100 -> q1ratio=(25*100/100)%16=25%16=9,
	// q2ratio=(50*100/100)%16=50%16=2.
	got := encodeQRatios(25, 50, 100)
	if lo := got & 0x0f; lo != 9 {
		t.Errorf("low nibble (q1ratio) = %d, want 9", lo)
	}
	if hi := got >> 4; hi != 2 {
		t.Errorf("high nibble (q2ratio) = %d, want 2", hi)
	}
}

func TestDistanceQRatiosZeroAtSelf(t *testing.T) {
	for v := 0; v < 256; v += 7 {
		if d := distanceQRatios(byte(v), byte(v)); d != 0 {
			t.Errorf("distanceQRatios(%d,%d) = %d, want 0", v, v, d)
		}
	}
}

func TestDistanceOnRingMod16(t *testing.T) {
	cases := []struct{ x, y, want byte }{
		{0, 0, 0},
		{0, 1, 1},
		{0, 8, 8},
		{0, 15, 1},
		{15, 0, 1},
		{3, 12, 7},
	}
	for _, c := range cases {
		if got := distanceOnRingMod16(c.x, c.y); got != c.want {
			t.Errorf("distanceOnRingMod16(%d,%d) = %d, want %d", c.x, c.y, got, c.want)
		}
	}
}
