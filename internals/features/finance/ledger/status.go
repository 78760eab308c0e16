package ledger

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
)

// StatusPembayaran: status agregat siswa, dihitung dari tagihan (tidak disimpan).
type StatusPembayaran string

const (
	StatusTidakAdaTagihan StatusPembayaran = "tidak_ada_tagihan"
	StatusLunas           StatusPembayaran = "lunas"
	StatusBelumLunas      StatusPembayaran = "belum_lunas"
)

// DeriveStatus: aturan status dari jumlah tagihan dan jumlah yang belum lunas.
func DeriveStatus(total, belum int64) StatusPembayaran {
	switch {
	case total == 0:
		return StatusTidakAdaTagihan
	case belum > 0:
		return StatusBelumLunas
	default:
		return StatusLunas
	}
}

func (e *Engine) AggregateStatus(ctx context.Context, nis string) (StatusPembayaran, error) {
	siswa, err := e.findSiswa(ctx, strings.TrimSpace(nis))
	if err != nil {
		return "", err
	}
	return statusSiswa(e.DB.WithContext(ctx), siswa.SiswaID)
}

func statusSiswa(db *gorm.DB, siswaID uuid.UUID) (StatusPembayaran, error) {
	var total, belum int64
	base := func() *gorm.DB {
		return db.Model(&tagihanModel.Tagihan{}).Where("tagihan_siswa_id = ?", siswaID)
	}
	if err := base().Count(&total).Error; err != nil {
		return "", wrapInfra("hitung tagihan", err)
	}
	if total > 0 {
		if err := base().Where("tagihan_status = ?", tagihanModel.TagihanStatusBelumLunas).
			Count(&belum).Error; err != nil {
			return "", wrapInfra("hitung tagihan belum lunas", err)
		}
	}
	return DeriveStatus(total, belum), nil
}

// StatusBanyak menghitung status untuk banyak siswa sekaligus (list pembayaran).
// Siswa tanpa tagihan tidak muncul di map; pemanggil menganggapnya tidak_ada_tagihan.
func StatusBanyak(ctx context.Context, db *gorm.DB, siswaIDs []uuid.UUID) (map[uuid.UUID]StatusPembayaran, error) {
	out := make(map[uuid.UUID]StatusPembayaran, len(siswaIDs))
	if len(siswaIDs) == 0 {
		return out, nil
	}
	type row struct {
		SiswaID uuid.UUID `gorm:"column:siswa_id"`
		Total   int64     `gorm:"column:total"`
		Belum   int64     `gorm:"column:belum"`
	}
	var rows []row
	err := db.WithContext(ctx).
		Model(&tagihanModel.Tagihan{}).
		Select("tagihan_siswa_id AS siswa_id, COUNT(*) AS total, "+
			"SUM(CASE WHEN tagihan_status = ? THEN 1 ELSE 0 END) AS belum", tagihanModel.TagihanStatusBelumLunas).
		Where("tagihan_siswa_id IN ?", siswaIDs).
		Group("tagihan_siswa_id").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapInfra("status siswa", err)
	}
	for _, r := range rows {
		out[r.SiswaID] = DeriveStatus(r.Total, r.Belum)
	}
	return out, nil
}
