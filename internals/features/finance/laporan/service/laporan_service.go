package service

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
	transaksiModel "sekolahku_backend/internals/features/finance/transaksi/model"
)

type Laporan struct {
	Jenis   Jenis           `json:"jenis"`
	Rentang *Rentang        `json:"rentang,omitempty"`
	Jumlah  int             `json:"jumlah"`
	Total   decimal.Decimal `json:"total"`
	Data    any             `json:"data"`
}

// Query menjalankan laporan. Pembayaran: total_bayar; tunggakan: total sisa.
func Query(ctx context.Context, db *gorm.DB, f Filter) (*Laporan, error) {
	scopes := Scopes(BuildPredicates(f))
	out := &Laporan{Jenis: f.Jenis, Rentang: f.Rentang, Total: decimal.Zero}

	switch f.Jenis {
	case JenisPembayaran:
		var rows []transaksiModel.Transaksi
		err := db.WithContext(ctx).
			Scopes(scopes...).
			Preload("Siswa.Kelas").
			Preload("Petugas").
			Preload("Details.Tagihan.Pos").
			Order("transaksi.transaksi_tanggal DESC").
			Find(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			out.Total = out.Total.Add(r.TransaksiTotal)
		}
		out.Jumlah, out.Data = len(rows), rows

	default:
		var rows []tagihanModel.Tagihan
		err := db.WithContext(ctx).
			Scopes(scopes...).
			Preload("Siswa.Kelas").
			Preload("Pos").
			Order("tagihan.tagihan_created_at DESC").
			Find(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			out.Total = out.Total.Add(r.TagihanSisa)
		}
		out.Jumlah, out.Data = len(rows), rows
	}
	return out, nil
}
