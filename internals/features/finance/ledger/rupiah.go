package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatRupiah: 1500000 -> "1.500.000", 2500.5 -> "2.500,50".
func FormatRupiah(d decimal.Decimal) string {
	neg := d.IsNegative()
	d = d.Abs().Round(2)

	whole := d.Truncate(0)
	frac := d.Sub(whole)

	digits := whole.String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if !frac.IsZero() {
		cents := frac.Shift(2).IntPart()
		out += "," + leftPad2(cents)
	}
	if neg {
		out = "-" + out
	}
	return out
}

func leftPad2(n int64) string {
	if n < 10 {
		return "0" + decimal.NewFromInt(n).String()
	}
	return decimal.NewFromInt(n).String()
}
