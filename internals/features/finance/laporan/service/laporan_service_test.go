package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sekolahku_backend/internals/databases/testdb"
	"sekolahku_backend/internals/features/finance/laporan/service"
	posModel "sekolahku_backend/internals/features/finance/pos_pembayaran/model"
	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
	transaksiModel "sekolahku_backend/internals/features/finance/transaksi/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

func TestQueryPembayaranDanTunggakan(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	k10 := testdb.Kelas(t, db, "X A", "2024")
	k11 := testdb.Kelas(t, db, "XI A", "2023")
	a := testdb.Siswa(t, db, k10.KelasID, "2001", "Ani")
	b := testdb.Siswa(t, db, k11.KelasID, "2002", "Bayu")
	spp := testdb.Pos(t, db, "SPP", posModel.PosTipeBulanan)
	petugas := testdb.User(t, db, "kasir", userModel.RoleStaff)

	trx := func(siswaID uuid.UUID, tgl time.Time, total int64) {
		row := transaksiModel.Transaksi{
			TransaksiSiswaID:   siswaID,
			TransaksiPetugasID: petugas.UserID,
			TransaksiTanggal:   tgl,
			TransaksiTotal:     decimal.NewFromInt(total),
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatal(err)
		}
	}
	trx(a.SiswaID, time.Date(2025, 8, 14, 9, 0, 0, 0, time.UTC), 100000)
	trx(b.SiswaID, time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC), 50000)
	trx(a.SiswaID, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), 70000) // di luar Agustus

	agustus, _ := service.ResolveRange(service.PeriodeBulan, time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC), time.UTC)

	got, err := service.Query(ctx, db, service.Filter{Jenis: service.JenisPembayaran, Rentang: &agustus})
	if err != nil {
		t.Fatalf("Query pembayaran: %v", err)
	}
	if got.Jumlah != 2 || !got.Total.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("pembayaran agustus = %d / %s, want 2 / 150000", got.Jumlah, got.Total)
	}

	got, err = service.Query(ctx, db, service.Filter{Jenis: service.JenisPembayaran, Rentang: &agustus, Angkatan: "2023"})
	if err != nil {
		t.Fatalf("Query angkatan: %v", err)
	}
	if got.Jumlah != 1 || !got.Total.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("angkatan 2023 = %d / %s", got.Jumlah, got.Total)
	}

	got, _ = service.Query(ctx, db, service.Filter{Jenis: service.JenisPembayaran, NIS: "2001"})
	if got.Jumlah != 2 {
		t.Errorf("nis 2001 tanpa rentang = %d, want 2", got.Jumlah)
	}

	// tunggakan: hanya belum_lunas
	open := testdb.Tagihan(t, db, a.SiswaID, spp.PosID, "2025/2026", 8, 150000)
	paid := testdb.Tagihan(t, db, b.SiswaID, spp.PosID, "2025/2026", 8, 150000)
	db.Model(&tagihanModel.Tagihan{}).Where("tagihan_id = ?", paid.TagihanID).
		Updates(map[string]any{"tagihan_sisa": decimal.Zero, "tagihan_status": tagihanModel.TagihanStatusLunas})

	got, err = service.Query(ctx, db, service.Filter{Jenis: service.JenisTunggakan, KelasID: &k10.KelasID})
	if err != nil {
		t.Fatalf("Query tunggakan: %v", err)
	}
	rows, ok := got.Data.([]tagihanModel.Tagihan)
	if !ok || len(rows) != 1 || rows[0].TagihanID != open.TagihanID {
		t.Fatalf("tunggakan = %+v", got.Data)
	}
	if rows[0].Pos == nil || rows[0].Siswa == nil || rows[0].Siswa.Kelas == nil {
		t.Error("relasi siswa.kelas & pos harus ikut dimuat")
	}
	if !got.Total.Equal(decimal.NewFromInt(150000)) {
		t.Errorf("total tunggakan = %s", got.Total)
	}
}

func TestBuildPredicates(t *testing.T) {
	r := service.Rentang{Mulai: time.Unix(0, 0), Sampai: time.Unix(86400, 0)}
	preds := service.BuildPredicates(service.Filter{Jenis: service.JenisTunggakan, Rentang: &r, NIS: " 1 ", Angkatan: "2024"})
	if len(preds) != 4 {
		t.Fatalf("predicates = %d, want 4 (status, rentang, nis, angkatan)", len(preds))
	}
	if !strings.HasPrefix(preds[1].Expr, "tagihan.tagihan_created_at >= ?") {
		t.Errorf("rentang tunggakan = %q, want tagihan_created_at", preds[1].Expr)
	}
	if preds[2].Args[0] != "1" {
		t.Errorf("nis harus di-trim: %v", preds[2].Args)
	}

	if n := len(service.BuildPredicates(service.Filter{Jenis: service.JenisPembayaran})); n != 0 {
		t.Errorf("pembayaran tanpa filter = %d predicate, want 0", n)
	}
}
