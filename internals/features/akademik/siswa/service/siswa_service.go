package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	kelasModel "sekolahku_backend/internals/features/akademik/kelas/model"
	kelasService "sekolahku_backend/internals/features/akademik/kelas/service"
	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
	transaksiModel "sekolahku_backend/internals/features/finance/transaksi/model"
)

var (
	ErrSiswaTidakAda     = errors.New("siswa tidak ditemukan")
	ErrSiswaPunyaRiwayat = errors.New("siswa sudah memiliki riwayat pembayaran, tidak dapat dihapus")
	ErrKelasTidakAda     = errors.New("kelas tujuan tidak ditemukan")
	ErrKelasTujuanWajib  = errors.New("target_kelas_id wajib diisi untuk aksi pindah")
	ErrAksiTidakDikenal  = errors.New("aksi tidak dikenal")
)

// Hapus menghapus siswa beserta tagihannya. Ditolak kalau siswa sudah punya transaksi.
func Hapus(ctx context.Context, db *gorm.DB, siswaID uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var s siswaModel.Siswa
		if err := tx.Where("siswa_id = ?", siswaID).Take(&s).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSiswaTidakAda
			}
			return err
		}

		var n int64
		if err := tx.Model(&transaksiModel.Transaksi{}).
			Where("transaksi_siswa_id = ?", siswaID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrSiswaPunyaRiwayat
		}

		if err := tx.Where("tagihan_siswa_id = ?", siswaID).Delete(&tagihanModel.Tagihan{}).Error; err != nil {
			return fmt.Errorf("hapus tagihan: %w", err)
		}
		return tx.Delete(&s).Error
	})
}

type Aksi string

const (
	AksiNaik    Aksi = "naik"
	AksiPindah  Aksi = "pindah"
	AksiTinggal Aksi = "tinggal"
	AksiLulus   Aksi = "lulus"
)

// BatchUpdate menerapkan aksi kenaikan/pindah/lulus ke banyak siswa dalam satu transaksi.
// Mengembalikan jumlah siswa yang berubah.
func BatchUpdate(ctx context.Context, db *gorm.DB, ids []uuid.UUID, aksi Aksi, target *uuid.UUID) (int, error) {
	switch aksi {
	case AksiTinggal:
		return 0, nil
	case AksiNaik, AksiPindah, AksiLulus:
	default:
		return 0, ErrAksiTidakDikenal
	}
	if aksi == AksiPindah && target == nil {
		return 0, ErrKelasTujuanWajib
	}

	changed := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch aksi {
		case AksiLulus:
			res := tx.Model(&siswaModel.Siswa{}).
				Where("siswa_id IN ?", ids).
				Update("siswa_status", siswaModel.SiswaStatusLulus)
			changed = int(res.RowsAffected)
			return res.Error

		case AksiPindah:
			var k kelasModel.Kelas
			if err := tx.Where("kelas_id = ?", *target).Take(&k).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrKelasTidakAda
				}
				return err
			}
			res := tx.Model(&siswaModel.Siswa{}).
				Where("siswa_id IN ?", ids).
				Update("siswa_kelas_id", k.KelasID)
			changed = int(res.RowsAffected)
			return res.Error
		}

		// naik: tiap kelas asal punya kelas tujuan sendiri
		var list []siswaModel.Siswa
		if err := tx.Preload("Kelas").Where("siswa_id IN ?", ids).Find(&list).Error; err != nil {
			return err
		}
		dir := kelasService.NewDirectory(tx)
		next := map[uuid.UUID]*kelasModel.Kelas{}
		for _, s := range list {
			if s.Kelas == nil {
				continue
			}
			n, ok := next[s.SiswaKelasID]
			if !ok {
				var err error
				if n, err = dir.NextKelas(ctx, s.Kelas); err != nil {
					return err
				}
				next[s.SiswaKelasID] = n
			}
			if n == nil {
				continue // kelas terakhir
			}
			if err := tx.Model(&siswaModel.Siswa{}).
				Where("siswa_id = ?", s.SiswaID).
				Update("siswa_kelas_id", n.KelasID).Error; err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}
