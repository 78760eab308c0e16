package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
	posModel "sekolahku_backend/internals/features/finance/pos_pembayaran/model"
)

type TagihanStatus string

const (
	TagihanStatusBelumLunas TagihanStatus = "belum_lunas"
	TagihanStatusLunas      TagihanStatus = "lunas"
)

// TanpaBulan disimpan di kolom bulan untuk tagihan non-bulanan, supaya
// unique index (siswa, pos, tahun ajaran, bulan) tetap berlaku.
const TanpaBulan int16 = 0

type Tagihan struct {
	TagihanID      uuid.UUID `gorm:"column:tagihan_id;type:uuid;primaryKey" json:"tagihan_id"`
	TagihanSiswaID uuid.UUID `gorm:"column:tagihan_siswa_id;type:uuid;not null;uniqueIndex:uq_tagihan_periode,priority:1;index" json:"tagihan_siswa_id"`
	TagihanPosID   uuid.UUID `gorm:"column:tagihan_pos_id;type:uuid;not null;uniqueIndex:uq_tagihan_periode,priority:2;index" json:"tagihan_pos_id"`

	TagihanTahunAjaran string `gorm:"column:tagihan_tahun_ajaran;type:varchar(10);not null;uniqueIndex:uq_tagihan_periode,priority:3" json:"tagihan_tahun_ajaran"`
	TagihanBulan       int16  `gorm:"column:tagihan_bulan;type:smallint;not null;default:0;uniqueIndex:uq_tagihan_periode,priority:4" json:"tagihan_bulan"`

	TagihanNominal decimal.Decimal `gorm:"column:tagihan_nominal;type:decimal(12,2);not null" json:"tagihan_nominal"`
	TagihanSisa    decimal.Decimal `gorm:"column:tagihan_sisa;type:decimal(12,2);not null" json:"tagihan_sisa"`
	TagihanStatus  TagihanStatus   `gorm:"column:tagihan_status;type:varchar(20);not null;default:'belum_lunas';index" json:"tagihan_status"`

	Siswa *siswaModel.Siswa       `gorm:"foreignKey:TagihanSiswaID;references:SiswaID" json:"siswa,omitempty"`
	Pos   *posModel.PosPembayaran `gorm:"foreignKey:TagihanPosID;references:PosID" json:"pos,omitempty"`

	TagihanCreatedAt time.Time `gorm:"column:tagihan_created_at;not null;autoCreateTime;index" json:"tagihan_created_at"`
	TagihanUpdatedAt time.Time `gorm:"column:tagihan_updated_at;not null;autoUpdateTime" json:"tagihan_updated_at"`
}

func (Tagihan) TableName() string { return "tagihan" }

func (t *Tagihan) BeforeCreate(tx *gorm.DB) error {
	if t.TagihanID == uuid.Nil {
		t.TagihanID = uuid.New()
	}
	if t.TagihanStatus == "" {
		t.TagihanStatus = TagihanStatusBelumLunas
	}
	return nil
}

// Bulan mengembalikan nil untuk tagihan tanpa bulan.
func (t Tagihan) Bulan() *int {
	if t.TagihanBulan == TanpaBulan {
		return nil
	}
	b := int(t.TagihanBulan)
	return &b
}

func (t Tagihan) Lunas() bool {
	return t.TagihanStatus == TagihanStatusLunas
}

// Kurangi mengurangi sisa tagihan; sisa <= 0 di-clamp ke 0 dan status jadi lunas.
func (t *Tagihan) Kurangi(jumlah decimal.Decimal) {
	t.TagihanSisa = t.TagihanSisa.Sub(jumlah)
	if !t.TagihanSisa.IsPositive() {
		t.TagihanSisa = decimal.Zero
		t.TagihanStatus = TagihanStatusLunas
	}
}

// BulanKolom mengubah bulan opsional ke nilai kolom.
func BulanKolom(bulan *int) int16 {
	if bulan == nil {
		return TanpaBulan
	}
	return int16(*bulan)
}
