package service

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Jenis string

const (
	JenisPembayaran Jenis = "pembayaran"
	JenisTunggakan  Jenis = "tunggakan"
)

func (j Jenis) Valid() bool { return j == JenisPembayaran || j == JenisTunggakan }

// Filter sudah tervalidasi; Rentang nil berarti tanpa batas waktu.
type Filter struct {
	Jenis    Jenis
	Rentang  *Rentang
	NIS      string
	KelasID  *uuid.UUID
	Angkatan string
}

// Predicate: satu kondisi WHERE yang bisa dipakai sebagai gorm scope.
type Predicate struct {
	Expr string
	Args []any
}

func (p Predicate) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB { return db.Where(p.Expr, p.Args...) }
}

// target: kolom tanggal & FK siswa per jenis laporan.
type target struct {
	Tanggal string
	SiswaFK string
}

var targets = map[Jenis]target{
	JenisPembayaran: {Tanggal: "transaksi.transaksi_tanggal", SiswaFK: "transaksi.transaksi_siswa_id"},
	JenisTunggakan:  {Tanggal: "tagihan.tagihan_created_at", SiswaFK: "tagihan.tagihan_siswa_id"},
}

// BuildPredicates menerjemahkan Filter ke daftar kondisi.
func BuildPredicates(f Filter) []Predicate {
	tg := targets[f.Jenis]
	var out []Predicate

	if f.Jenis == JenisTunggakan {
		out = append(out, Predicate{Expr: "tagihan.tagihan_status = ?", Args: []any{"belum_lunas"}})
	}
	if f.Rentang != nil {
		out = append(out, Predicate{
			Expr: tg.Tanggal + " >= ? AND " + tg.Tanggal + " < ?",
			Args: []any{f.Rentang.Mulai, f.Rentang.Sampai},
		})
	}
	if nis := strings.TrimSpace(f.NIS); nis != "" {
		out = append(out, Predicate{
			Expr: tg.SiswaFK + " IN (SELECT siswa_id FROM siswa WHERE siswa_nis = ?)",
			Args: []any{nis},
		})
	}
	if f.KelasID != nil {
		out = append(out, Predicate{
			Expr: tg.SiswaFK + " IN (SELECT siswa_id FROM siswa WHERE siswa_kelas_id = ?)",
			Args: []any{*f.KelasID},
		})
	}
	if a := strings.TrimSpace(f.Angkatan); a != "" {
		out = append(out, Predicate{
			Expr: tg.SiswaFK + " IN (SELECT s.siswa_id FROM siswa s JOIN kelas k ON k.kelas_id = s.siswa_kelas_id WHERE k.kelas_angkatan = ?)",
			Args: []any{a},
		})
	}
	return out
}

func Scopes(preds []Predicate) []func(*gorm.DB) *gorm.DB {
	out := make([]func(*gorm.DB) *gorm.DB, 0, len(preds))
	for _, p := range preds {
		out = append(out, p.Scope())
	}
	return out
}
