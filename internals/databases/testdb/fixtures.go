package testdb

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	kelasModel "sekolahku_backend/internals/features/akademik/kelas/model"
	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
	posModel "sekolahku_backend/internals/features/finance/pos_pembayaran/model"
	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

func mustCreate(t testing.TB, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed %T: %v", v, err)
	}
}

func Kelas(t testing.TB, db *gorm.DB, nama, angkatan string) kelasModel.Kelas {
	k := kelasModel.Kelas{KelasNama: nama, KelasAngkatan: angkatan, KelasTahunAjaran: "2024/2025"}
	mustCreate(t, db, &k)
	return k
}

func Siswa(t testing.TB, db *gorm.DB, kelasID uuid.UUID, nis, nama string) siswaModel.Siswa {
	s := siswaModel.Siswa{SiswaNIS: nis, SiswaNamaLengkap: nama, SiswaKelasID: kelasID}
	mustCreate(t, db, &s)
	return s
}

func Pos(t testing.TB, db *gorm.DB, nama string, tipe posModel.PosTipe) posModel.PosPembayaran {
	p := posModel.PosPembayaran{PosNama: nama, PosTipe: tipe}
	mustCreate(t, db, &p)
	return p
}

func User(t testing.TB, db *gorm.DB, username, role string) userModel.User {
	u := userModel.User{
		UserNama:     username,
		UserUsername: username,
		UserEmail:    username + "@example.com",
		UserPassword: "x",
		UserRole:     role,
	}
	mustCreate(t, db, &u)
	return u
}

// Tagihan langsung ke tabel, tanpa lewat ledger.
func Tagihan(t testing.TB, db *gorm.DB, siswaID, posID uuid.UUID, tahun string, bulan int16, nominal int64) tagihanModel.Tagihan {
	n := decimal.NewFromInt(nominal)
	tg := tagihanModel.Tagihan{
		TagihanSiswaID:     siswaID,
		TagihanPosID:       posID,
		TagihanTahunAjaran: tahun,
		TagihanBulan:       bulan,
		TagihanNominal:     n,
		TagihanSisa:        n,
	}
	mustCreate(t, db, &tg)
	return tg
}
