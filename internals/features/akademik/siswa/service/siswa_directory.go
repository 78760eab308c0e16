package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
)

// Directory: lookup siswa berbasis gorm, dipakai ledger & handler.
type Directory struct {
	DB *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory { return &Directory{DB: db} }

// FindByNIS mengembalikan gorm.ErrRecordNotFound kalau NIS tidak terdaftar.
func (d *Directory) FindByNIS(ctx context.Context, nis string) (*siswaModel.Siswa, error) {
	var s siswaModel.Siswa
	err := d.DB.WithContext(ctx).
		Preload("Kelas").
		Where("siswa_nis = ?", strings.TrimSpace(nis)).
		Take(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByClass: semua siswa yang saat ini tercatat di kelas, urut nama.
func (d *Directory) ListByClass(ctx context.Context, kelasID uuid.UUID) ([]siswaModel.Siswa, error) {
	var out []siswaModel.Siswa
	err := d.DB.WithContext(ctx).
		Where("siswa_kelas_id = ?", kelasID).
		Order("siswa_nama_lengkap ASC").
		Find(&out).Error
	return out, err
}
