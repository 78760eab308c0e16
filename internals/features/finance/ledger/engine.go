// Package ledger berisi aturan inti tagihan & pembayaran siswa:
// pembuatan tagihan (satuan & per kelas), checkout pembayaran multi-tagihan,
// dan status agregat per siswa.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// batas kolom decimal(12,2)
var maxNominal = decimal.New(1, 10)

type Engine struct {
	DB    *gorm.DB
	Siswa StudentDirectory
	Kelas ClassDirectory
	Pos   PaymentItemCatalog

	// Now dipakai untuk tanggal transaksi; bisa diganti di test.
	Now func() time.Time
}

func New(db *gorm.DB, siswa StudentDirectory, kelas ClassDirectory, pos PaymentItemCatalog) *Engine {
	return &Engine{
		DB:    db,
		Siswa: siswa,
		Kelas: kelas,
		Pos:   pos,
		Now:   time.Now,
	}
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func wrapInfra(op string, err error) error {
	return fmt.Errorf("ledger: %s: %w", op, err)
}

// checkAmount: > 0, maksimal 2 desimal, muat di decimal(12,2).
func checkAmount(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return invalid(field, "harus lebih besar dari 0")
	}
	if !d.Equal(d.Round(2)) {
		return invalid(field, "maksimal 2 angka desimal")
	}
	if d.GreaterThanOrEqual(maxNominal) {
		return invalid(field, "melebihi batas nominal")
	}
	return nil
}
