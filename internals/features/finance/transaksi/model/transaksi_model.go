package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

// Transaksi: satu kali checkout pembayaran. Immutable setelah dibuat.
type Transaksi struct {
	TransaksiID        uuid.UUID       `gorm:"column:transaksi_id;type:uuid;primaryKey" json:"transaksi_id"`
	TransaksiSiswaID   uuid.UUID       `gorm:"column:transaksi_siswa_id;type:uuid;not null;index" json:"transaksi_siswa_id"`
	TransaksiPetugasID uuid.UUID       `gorm:"column:transaksi_petugas_id;type:uuid;not null;index" json:"transaksi_petugas_id"`
	TransaksiTanggal   time.Time       `gorm:"column:transaksi_tanggal;not null;index" json:"transaksi_tanggal"`
	TransaksiTotal     decimal.Decimal `gorm:"column:transaksi_total_bayar;type:decimal(12,2);not null" json:"transaksi_total_bayar"`

	// snapshot nama pos & periode per baris, dipakai kwitansi
	TransaksiSnapshot datatypes.JSON `gorm:"column:transaksi_snapshot;type:jsonb" json:"transaksi_snapshot,omitempty"`

	Siswa   *siswaModel.Siswa `gorm:"foreignKey:TransaksiSiswaID;references:SiswaID" json:"siswa,omitempty"`
	Petugas *userModel.User   `gorm:"foreignKey:TransaksiPetugasID;references:UserID" json:"petugas,omitempty"`
	Details []DetailTransaksi `gorm:"foreignKey:DetailTransaksiTransaksiID;references:TransaksiID" json:"details,omitempty"`

	TransaksiCreatedAt time.Time `gorm:"column:transaksi_created_at;not null;autoCreateTime" json:"transaksi_created_at"`
}

func (Transaksi) TableName() string { return "transaksi" }

func (t *Transaksi) BeforeCreate(tx *gorm.DB) error {
	if t.TransaksiID == uuid.Nil {
		t.TransaksiID = uuid.New()
	}
	return nil
}

type DetailTransaksi struct {
	DetailTransaksiID          uuid.UUID       `gorm:"column:detail_transaksi_id;type:uuid;primaryKey" json:"detail_transaksi_id"`
	DetailTransaksiTransaksiID uuid.UUID       `gorm:"column:detail_transaksi_transaksi_id;type:uuid;not null;index" json:"detail_transaksi_transaksi_id"`
	DetailTransaksiTagihanID   uuid.UUID       `gorm:"column:detail_transaksi_tagihan_id;type:uuid;not null;index" json:"detail_transaksi_tagihan_id"`
	DetailTransaksiJumlahBayar decimal.Decimal `gorm:"column:detail_transaksi_jumlah_bayar;type:decimal(12,2);not null" json:"detail_transaksi_jumlah_bayar"`

	Tagihan *tagihanModel.Tagihan `gorm:"foreignKey:DetailTransaksiTagihanID;references:TagihanID" json:"tagihan,omitempty"`

	DetailTransaksiCreatedAt time.Time `gorm:"column:detail_transaksi_created_at;not null;autoCreateTime" json:"detail_transaksi_created_at"`
}

func (DetailTransaksi) TableName() string { return "detail_transaksi" }

func (d *DetailTransaksi) BeforeCreate(tx *gorm.DB) error {
	if d.DetailTransaksiID == uuid.Nil {
		d.DetailTransaksiID = uuid.New()
	}
	return nil
}
