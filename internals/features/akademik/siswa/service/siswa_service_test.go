package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sekolahku_backend/internals/databases/testdb"
	kelasModel "sekolahku_backend/internals/features/akademik/kelas/model"
	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
	siswaService "sekolahku_backend/internals/features/akademik/siswa/service"
	posModel "sekolahku_backend/internals/features/finance/pos_pembayaran/model"
	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
	transaksiModel "sekolahku_backend/internals/features/finance/transaksi/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

func reloadSiswa(t *testing.T, db *gorm.DB, id uuid.UUID) siswaModel.Siswa {
	t.Helper()
	var s siswaModel.Siswa
	if err := db.Where("siswa_id = ?", id).Take(&s).Error; err != nil {
		t.Fatalf("reload siswa: %v", err)
	}
	return s
}

func TestHapusCascadeTagihan(t *testing.T) {
	db := testdb.Open(t)
	k := testdb.Kelas(t, db, "X A", "2024")
	s := testdb.Siswa(t, db, k.KelasID, "3001", "Citra")
	pos := testdb.Pos(t, db, "SPP", posModel.PosTipeBulanan)
	testdb.Tagihan(t, db, s.SiswaID, pos.PosID, "2024/2025", 7, 100000)

	if err := siswaService.Hapus(context.Background(), db, s.SiswaID); err != nil {
		t.Fatalf("Hapus: %v", err)
	}
	var n int64
	db.Model(&tagihanModel.Tagihan{}).Where("tagihan_siswa_id = ?", s.SiswaID).Count(&n)
	if n != 0 {
		t.Errorf("tagihan tersisa = %d, want 0", n)
	}
	db.Model(&siswaModel.Siswa{}).Where("siswa_id = ?", s.SiswaID).Count(&n)
	if n != 0 {
		t.Error("siswa masih ada")
	}

	if err := siswaService.Hapus(context.Background(), db, s.SiswaID); !errors.Is(err, siswaService.ErrSiswaTidakAda) {
		t.Errorf("hapus kedua: err = %v", err)
	}
}

func TestHapusDitolakKalauAdaTransaksi(t *testing.T) {
	db := testdb.Open(t)
	k := testdb.Kelas(t, db, "X A", "2024")
	s := testdb.Siswa(t, db, k.KelasID, "3001", "Citra")
	u := testdb.User(t, db, "kasir", userModel.RoleStaff)
	trx := transaksiModel.Transaksi{
		TransaksiSiswaID:   s.SiswaID,
		TransaksiPetugasID: u.UserID,
		TransaksiTanggal:   time.Now(),
		TransaksiTotal:     decimal.NewFromInt(1000),
	}
	if err := db.Create(&trx).Error; err != nil {
		t.Fatal(err)
	}

	err := siswaService.Hapus(context.Background(), db, s.SiswaID)
	if !errors.Is(err, siswaService.ErrSiswaPunyaRiwayat) {
		t.Fatalf("err = %v, want ErrSiswaPunyaRiwayat", err)
	}
	reloadSiswa(t, db, s.SiswaID)
}

func TestBatchUpdate(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	// kelas dibuat berurutan: X -> XI -> XII
	kelas := make([]kelasModel.Kelas, 0, 3)
	for i, nama := range []string{"X", "XI", "XII"} {
		k := kelasModel.Kelas{
			KelasNama:        nama,
			KelasAngkatan:    "2024",
			KelasTahunAjaran: "2024/2025",
			KelasCreatedAt:   time.Date(2024, 7, 1, 0, 0, i, 0, time.UTC),
		}
		if err := db.Create(&k).Error; err != nil {
			t.Fatal(err)
		}
		kelas = append(kelas, k)
	}
	a := testdb.Siswa(t, db, kelas[0].KelasID, "4001", "A")
	b := testdb.Siswa(t, db, kelas[2].KelasID, "4002", "B")

	n, err := siswaService.BatchUpdate(ctx, db, []uuid.UUID{a.SiswaID, b.SiswaID}, siswaService.AksiNaik, nil)
	if err != nil {
		t.Fatalf("naik: %v", err)
	}
	if n != 1 {
		t.Errorf("naik changed = %d, want 1 (kelas terakhir tidak naik)", n)
	}
	if got := reloadSiswa(t, db, a.SiswaID); got.SiswaKelasID != kelas[1].KelasID {
		t.Errorf("A di kelas %s, want XI", got.SiswaKelasID)
	}
	if got := reloadSiswa(t, db, b.SiswaID); got.SiswaKelasID != kelas[2].KelasID {
		t.Error("B harus tetap di XII")
	}

	if _, err := siswaService.BatchUpdate(ctx, db, []uuid.UUID{a.SiswaID}, siswaService.AksiPindah, nil); !errors.Is(err, siswaService.ErrKelasTujuanWajib) {
		t.Errorf("pindah tanpa target: err = %v", err)
	}
	bogus := uuid.New()
	if _, err := siswaService.BatchUpdate(ctx, db, []uuid.UUID{a.SiswaID}, siswaService.AksiPindah, &bogus); !errors.Is(err, siswaService.ErrKelasTidakAda) {
		t.Errorf("pindah ke kelas fiktif: err = %v", err)
	}
	if _, err := siswaService.BatchUpdate(ctx, db, []uuid.UUID{a.SiswaID}, siswaService.AksiPindah, &kelas[0].KelasID); err != nil {
		t.Fatalf("pindah: %v", err)
	}
	if got := reloadSiswa(t, db, a.SiswaID); got.SiswaKelasID != kelas[0].KelasID {
		t.Error("A harus kembali ke X")
	}

	if n, _ := siswaService.BatchUpdate(ctx, db, []uuid.UUID{a.SiswaID}, siswaService.AksiTinggal, nil); n != 0 {
		t.Errorf("tinggal changed = %d", n)
	}

	if _, err := siswaService.BatchUpdate(ctx, db, []uuid.UUID{a.SiswaID, b.SiswaID}, siswaService.AksiLulus, nil); err != nil {
		t.Fatalf("lulus: %v", err)
	}
	if got := reloadSiswa(t, db, b.SiswaID); got.SiswaStatus != siswaModel.SiswaStatusLulus {
		t.Errorf("status B = %s, want Lulus", got.SiswaStatus)
	}

	if _, err := siswaService.BatchUpdate(ctx, db, nil, "hapus", nil); !errors.Is(err, siswaService.ErrAksiTidakDikenal) {
		t.Errorf("aksi tidak dikenal: err = %v", err)
	}
}
