package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kelas merepresentasikan tabel kelas (rombongan belajar).
type Kelas struct {
	KelasID          uuid.UUID `gorm:"column:kelas_id;type:uuid;primaryKey" json:"kelas_id"`
	KelasNama        string    `gorm:"column:kelas_nama;type:varchar(50);not null" json:"kelas_nama"`
	KelasAngkatan    string    `gorm:"column:kelas_angkatan;type:varchar(10);not null;index" json:"kelas_angkatan"`
	KelasTahunAjaran string    `gorm:"column:kelas_tahun_ajaran;type:varchar(10);not null" json:"kelas_tahun_ajaran"`

	KelasCreatedAt time.Time `gorm:"column:kelas_created_at;not null;autoCreateTime" json:"kelas_created_at"`
	KelasUpdatedAt time.Time `gorm:"column:kelas_updated_at;not null;autoUpdateTime" json:"kelas_updated_at"`
}

func (Kelas) TableName() string { return "kelas" }

func (k *Kelas) BeforeCreate(tx *gorm.DB) error {
	if k.KelasID == uuid.Nil {
		k.KelasID = uuid.New()
	}
	return nil
}
