// Package views menyimpan template HTML (kwitansi) yang di-embed ke binary.
package views

import (
	"embed"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"

	"sekolahku_backend/internals/features/finance/ledger"
)

//go:embed *.html
var files embed.FS

var namaBulan = [...]string{"", "Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember"}

func NamaBulan(b int) string {
	if b < 1 || b > 12 {
		return ""
	}
	return namaBulan[b]
}

// Engine membuat template engine fiber dengan helper format rupiah/tanggal.
func Engine() *html.Engine {
	engine := html.NewFileSystem(http.FS(files), ".html")
	engine.AddFunc("rupiah", func(d decimal.Decimal) string { return "Rp " + ledger.FormatRupiah(d) })
	engine.AddFunc("bulan", func(b *int) string {
		if b == nil {
			return "-"
		}
		return NamaBulan(*b)
	})
	engine.AddFunc("inc", func(i int) int { return i + 1 })
	engine.AddFunc("tanggal", func(t time.Time) string {
		return t.Format("02") + " " + NamaBulan(int(t.Month())) + " " + t.Format("2006 15:04")
	})
	return engine
}
