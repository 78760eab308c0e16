package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
	posModel "sekolahku_backend/internals/features/finance/pos_pembayaran/model"
	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
)

// Pengingat: satu baris daftar penagihan ke wali siswa.
type Pengingat struct {
	SiswaID       uuid.UUID       `json:"siswa_id"`
	NIS           string          `json:"siswa_nis"`
	Nama          string          `json:"siswa_nama_lengkap"`
	Kelas         string          `json:"kelas_nama"`
	NamaOrangTua  *string         `json:"siswa_nama_orang_tua"`
	NoWAOrangTua  *string         `json:"siswa_no_wa_ortu"`
	JumlahTagihan int64           `json:"jumlah_tagihan"`
	TotalSisa     decimal.Decimal `json:"total_sisa"`
}

type sisaRow struct {
	SiswaID uuid.UUID       `gorm:"column:siswa_id"`
	Jumlah  int64           `gorm:"column:jumlah"`
	Total   decimal.Decimal `gorm:"column:total"`
}

// DaftarPengingat: siswa yang masih punya tagihan belum lunas untuk pos tertentu.
func DaftarPengingat(ctx context.Context, db *gorm.DB, posID uuid.UUID) ([]Pengingat, error) {
	var rows []sisaRow
	err := db.WithContext(ctx).
		Model(&tagihanModel.Tagihan{}).
		Select("tagihan_siswa_id AS siswa_id, COUNT(*) AS jumlah, SUM(tagihan_sisa) AS total").
		Where("tagihan_pos_id = ? AND tagihan_status = ?", posID, tagihanModel.TagihanStatusBelumLunas).
		Group("tagihan_siswa_id").
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return []Pengingat{}, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.SiswaID)
	}
	var siswa []siswaModel.Siswa
	if err := db.WithContext(ctx).Preload("Kelas").
		Where("siswa_id IN ?", ids).
		Order("siswa_nama_lengkap ASC").
		Find(&siswa).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]sisaRow, len(rows))
	for _, r := range rows {
		byID[r.SiswaID] = r
	}
	out := make([]Pengingat, 0, len(siswa))
	for _, s := range siswa {
		r := byID[s.SiswaID]
		p := Pengingat{
			SiswaID:       s.SiswaID,
			NIS:           s.SiswaNIS,
			Nama:          s.SiswaNamaLengkap,
			NamaOrangTua:  s.SiswaNamaOrangTua,
			NoWAOrangTua:  s.SiswaNoWAOrtu,
			JumlahTagihan: r.Jumlah,
			TotalSisa:     r.Total,
		}
		if s.Kelas != nil {
			p.Kelas = s.Kelas.KelasNama
		}
		out = append(out, p)
	}
	return out, nil
}

// RekapPos: ringkasan tunggakan per pos, dipakai job pengingat harian.
type RekapPos struct {
	PosID      uuid.UUID       `gorm:"column:pos_id" json:"pos_id"`
	PosNama    string          `gorm:"column:pos_nama" json:"pos_nama"`
	JumlahSisa int64           `gorm:"column:jumlah_siswa" json:"jumlah_siswa"`
	TotalSisa  decimal.Decimal `gorm:"column:total_sisa" json:"total_sisa"`
}

func RekapTunggakan(ctx context.Context, db *gorm.DB) ([]RekapPos, error) {
	var out []RekapPos
	err := db.WithContext(ctx).
		Table(tagihanModel.Tagihan{}.TableName()+" AS t").
		Select("p.pos_id AS pos_id, p.pos_nama AS pos_nama, "+
			"COUNT(DISTINCT t.tagihan_siswa_id) AS jumlah_siswa, SUM(t.tagihan_sisa) AS total_sisa").
		Joins("JOIN "+posModel.PosPembayaran{}.TableName()+" AS p ON p.pos_id = t.tagihan_pos_id").
		Where("t.tagihan_status = ?", tagihanModel.TagihanStatusBelumLunas).
		Group("p.pos_id, p.pos_nama").
		Order("p.pos_nama ASC").
		Scan(&out).Error
	return out, err
}
