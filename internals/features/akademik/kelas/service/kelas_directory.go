package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	kelasModel "sekolahku_backend/internals/features/akademik/kelas/model"
)

// Directory: lookup kelas berbasis gorm.
type Directory struct {
	DB *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory { return &Directory{DB: db} }

// FindByID mengembalikan gorm.ErrRecordNotFound kalau kelas tidak ada.
func (d *Directory) FindByID(ctx context.Context, id uuid.UUID) (*kelasModel.Kelas, error) {
	var k kelasModel.Kelas
	if err := d.DB.WithContext(ctx).Where("kelas_id = ?", id).Take(&k).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

// NextKelas: kelas yang dibuat tepat setelah kelas ini (urutan input);
// nil kalau sudah paling akhir.
func (d *Directory) NextKelas(ctx context.Context, current *kelasModel.Kelas) (*kelasModel.Kelas, error) {
	var next kelasModel.Kelas
	err := d.DB.WithContext(ctx).
		Where("kelas_created_at > ? OR (kelas_created_at = ? AND kelas_id > ?)",
			current.KelasCreatedAt, current.KelasCreatedAt, current.KelasID).
		Order("kelas_created_at ASC, kelas_id ASC").
		Take(&next).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &next, nil
}
