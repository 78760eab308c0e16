package service_test

import (
	"context"
	"testing"

	"sekolahku_backend/internals/databases/testdb"
	"sekolahku_backend/internals/features/finance/pembayaran/service"
	posModel "sekolahku_backend/internals/features/finance/pos_pembayaran/model"
	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
)

func TestDaftarPengingat(t *testing.T) {
	db := testdb.Open(t)
	k := testdb.Kelas(t, db, "7A", "2024")
	a := testdb.Siswa(t, db, k.KelasID, "1001", "Budi")
	b := testdb.Siswa(t, db, k.KelasID, "1002", "Ani")
	wa := "08123"
	if err := db.Model(&a).Update("siswa_no_wa_ortu", wa).Error; err != nil {
		t.Fatal(err)
	}
	spp := testdb.Pos(t, db, "SPP", posModel.PosTipeBulanan)
	buku := testdb.Pos(t, db, "Buku", posModel.PosTipeBebas)

	testdb.Tagihan(t, db, a.SiswaID, spp.PosID, "2024/2025", 7, 150000)
	testdb.Tagihan(t, db, a.SiswaID, spp.PosID, "2024/2025", 8, 150000)
	lunas := testdb.Tagihan(t, db, b.SiswaID, spp.PosID, "2024/2025", 7, 150000)
	db.Model(&lunas).Updates(map[string]any{"tagihan_sisa": 0, "tagihan_status": tagihanModel.TagihanStatusLunas})
	testdb.Tagihan(t, db, b.SiswaID, buku.PosID, "2024/2025", 0, 90000)

	list, err := service.DaftarPengingat(context.Background(), db, spp.PosID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d, want 1 (Ani sudah lunas SPP)", len(list))
	}
	got := list[0]
	if got.NIS != "1001" || got.JumlahTagihan != 2 || got.TotalSisa.IntPart() != 300000 {
		t.Errorf("pengingat = %+v", got)
	}
	if got.NoWAOrangTua == nil || *got.NoWAOrangTua != wa || got.Kelas != "7A" {
		t.Errorf("data wali/kelas = %+v", got)
	}

	rekap, err := service.RekapTunggakan(context.Background(), db)
	if err != nil {
		t.Fatal(err)
	}
	if len(rekap) != 2 {
		t.Fatalf("rekap = %+v", rekap)
	}
	// urut nama pos: Buku, SPP
	if rekap[0].PosNama != "Buku" || rekap[0].JumlahSisa != 1 || rekap[0].TotalSisa.IntPart() != 90000 {
		t.Errorf("rekap buku = %+v", rekap[0])
	}
	if rekap[1].PosNama != "SPP" || rekap[1].JumlahSisa != 1 || rekap[1].TotalSisa.IntPart() != 300000 {
		t.Errorf("rekap spp = %+v", rekap[1])
	}
}
