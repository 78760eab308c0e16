package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tipe tagihan untuk sebuah pos
type PosTipe string

const (
	PosTipeBulanan PosTipe = "Bulanan"
	PosTipeTahunan PosTipe = "Tahunan"
	PosTipeBebas   PosTipe = "Bebas"
)

func (t PosTipe) Valid() bool {
	switch t {
	case PosTipeBulanan, PosTipeTahunan, PosTipeBebas:
		return true
	}
	return false
}

type PosPembayaran struct {
	PosID   uuid.UUID `gorm:"column:pos_id;type:uuid;primaryKey" json:"pos_id"`
	PosNama string    `gorm:"column:pos_nama;type:varchar(255);not null" json:"pos_nama"`
	PosTipe PosTipe   `gorm:"column:pos_tipe;type:varchar(10);not null" json:"pos_tipe"`

	PosCreatedAt time.Time `gorm:"column:pos_created_at;not null;autoCreateTime" json:"pos_created_at"`
	PosUpdatedAt time.Time `gorm:"column:pos_updated_at;not null;autoUpdateTime" json:"pos_updated_at"`
}

func (PosPembayaran) TableName() string { return "pos_pembayaran" }

func (p *PosPembayaran) BeforeCreate(tx *gorm.DB) error {
	if p.PosID == uuid.Nil {
		p.PosID = uuid.New()
	}
	return nil
}
