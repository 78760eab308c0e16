package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	kelasModel "sekolahku_backend/internals/features/akademik/kelas/model"
	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
	posModel "sekolahku_backend/internals/features/finance/pos_pembayaran/model"
)

// Lookup eksternal yang dibutuhkan engine. Implementasi boleh mengembalikan
// gorm.ErrRecordNotFound atau ErrNotFound untuk data yang tidak ada.

type StudentDirectory interface {
	FindByNIS(ctx context.Context, nis string) (*siswaModel.Siswa, error)
	ListByClass(ctx context.Context, kelasID uuid.UUID) ([]siswaModel.Siswa, error)
}

type ClassDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (*kelasModel.Kelas, error)
}

type PaymentItemCatalog interface {
	FindByID(ctx context.Context, id uuid.UUID) (*posModel.PosPembayaran, error)
}

func isMissing(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound)
}

func (e *Engine) findSiswa(ctx context.Context, nis string) (*siswaModel.Siswa, error) {
	s, err := e.Siswa.FindByNIS(ctx, nis)
	if err != nil {
		if isMissing(err) {
			return nil, &NotFoundError{Entity: "siswa", Key: nis}
		}
		return nil, wrapInfra("cari siswa", err)
	}
	return s, nil
}

func (e *Engine) findKelas(ctx context.Context, id uuid.UUID) (*kelasModel.Kelas, error) {
	k, err := e.Kelas.FindByID(ctx, id)
	if err != nil {
		if isMissing(err) {
			return nil, &NotFoundError{Entity: "kelas", Key: id.String()}
		}
		return nil, wrapInfra("cari kelas", err)
	}
	return k, nil
}

func (e *Engine) findPos(ctx context.Context, id uuid.UUID) (*posModel.PosPembayaran, error) {
	p, err := e.Pos.FindByID(ctx, id)
	if err != nil {
		if isMissing(err) {
			return nil, &NotFoundError{Entity: "pos_pembayaran", Key: id.String()}
		}
		return nil, wrapInfra("cari pos", err)
	}
	return p, nil
}
