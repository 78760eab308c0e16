package ledger

import "testing"

func TestDeriveStatus(t *testing.T) {
	cases := []struct {
		total, belum int64
		want         StatusPembayaran
	}{
		{0, 0, StatusTidakAdaTagihan},
		{3, 0, StatusLunas},
		{3, 1, StatusBelumLunas},
		{1, 1, StatusBelumLunas},
	}
	for _, tc := range cases {
		if got := DeriveStatus(tc.total, tc.belum); got != tc.want {
			t.Errorf("DeriveStatus(%d, %d) = %s, want %s", tc.total, tc.belum, got, tc.want)
		}
	}
}
