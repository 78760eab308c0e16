package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	posModel "sekolahku_backend/internals/features/finance/pos_pembayaran/model"
)

type Catalog struct {
	DB *gorm.DB
}

func NewCatalog(db *gorm.DB) *Catalog { return &Catalog{DB: db} }

func (c *Catalog) FindByID(ctx context.Context, id uuid.UUID) (*posModel.PosPembayaran, error) {
	var p posModel.PosPembayaran
	if err := c.DB.WithContext(ctx).Where("pos_id = ?", id).Take(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
