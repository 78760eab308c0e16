package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatRupiah(t *testing.T) {
	cases := map[string]string{
		"0":          "0",
		"999":        "999",
		"1000":       "1.000",
		"150000":     "150.000",
		"1500000":    "1.500.000",
		"2500.5":     "2.500,50",
		"10.05":      "10,05",
		"-1234567.8": "-1.234.567,80",
	}
	for in, want := range cases {
		if got := FormatRupiah(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatRupiah(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeBasket(t *testing.T) {
	if _, err := normalizeBasket(nil); err == nil {
		t.Error("basket kosong harus ditolak")
	}
	var ve *ValidationError
	_, err := normalizeBasket([]BasketLine{{Jumlah: decimal.NewFromInt(5)}})
	if err == nil {
		t.Fatal("tagihan_id kosong harus ditolak")
	}
	if ve, _ = err.(*ValidationError); ve == nil || ve.Field != "pembayaran[0].tagihan_id" {
		t.Errorf("field = %+v", ve)
	}
}
