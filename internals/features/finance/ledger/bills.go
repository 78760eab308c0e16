package ledger

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
	posModel "sekolahku_backend/internals/features/finance/pos_pembayaran/model"
	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
	helper "sekolahku_backend/internals/helpers"
)

type CreateBillCommand struct {
	NIS         string
	PosID       uuid.UUID
	TahunAjaran string
	Bulan       *int
	Nominal     decimal.Decimal
}

type CreateClassBillsCommand struct {
	KelasID     uuid.UUID
	PosID       uuid.UUID
	TahunAjaran string
	Bulan       *int
	Nominal     decimal.Decimal
}

// kolom unik tagihan, dipakai untuk ON CONFLICT
var tagihanPeriodeColumns = []clause.Column{
	{Name: "tagihan_siswa_id"},
	{Name: "tagihan_pos_id"},
	{Name: "tagihan_tahun_ajaran"},
	{Name: "tagihan_bulan"},
}

func validateBillInput(tahunAjaran string, bulan *int, nominal decimal.Decimal) (string, error) {
	if err := checkAmount("nominal", nominal); err != nil {
		return "", err
	}
	tahun := strings.TrimSpace(tahunAjaran)
	if tahun == "" {
		return "", invalid("tahun_ajaran", "wajib diisi")
	}
	if len(tahun) > 10 {
		return "", invalid("tahun_ajaran", "maksimal 10 karakter")
	}
	if bulan != nil && (*bulan < 1 || *bulan > 12) {
		return "", invalid("bulan", "harus di antara 1 dan 12")
	}
	return tahun, nil
}

func checkPosPeriod(pos *posModel.PosPembayaran, bulan *int) error {
	if pos.PosTipe == posModel.PosTipeBulanan && bulan == nil {
		return invalid("bulan", "wajib diisi untuk POS bulanan")
	}
	return nil
}

func newTagihan(siswaID, posID uuid.UUID, tahun string, bulan *int, nominal decimal.Decimal) tagihanModel.Tagihan {
	return tagihanModel.Tagihan{
		TagihanSiswaID:     siswaID,
		TagihanPosID:       posID,
		TagihanTahunAjaran: tahun,
		TagihanBulan:       tagihanModel.BulanKolom(bulan),
		TagihanNominal:     nominal,
		TagihanSisa:        nominal,
		TagihanStatus:      tagihanModel.TagihanStatusBelumLunas,
	}
}

// CreateBillForStudent membuat satu tagihan. Gagal dengan DuplicateBillError
// kalau (siswa, pos, tahun ajaran, bulan) sudah punya tagihan.
func (e *Engine) CreateBillForStudent(ctx context.Context, cmd CreateBillCommand) (*tagihanModel.Tagihan, error) {
	tahun, err := validateBillInput(cmd.TahunAjaran, cmd.Bulan, cmd.Nominal)
	if err != nil {
		return nil, err
	}
	nis := strings.TrimSpace(cmd.NIS)
	if nis == "" {
		return nil, invalid("nis", "wajib diisi")
	}

	siswa, err := e.findSiswa(ctx, nis)
	if err != nil {
		return nil, err
	}
	pos, err := e.findPos(ctx, cmd.PosID)
	if err != nil {
		return nil, err
	}
	if err := checkPosPeriod(pos, cmd.Bulan); err != nil {
		return nil, err
	}

	dup := &DuplicateBillError{NIS: nis, PosID: pos.PosID, TahunAjaran: tahun, Bulan: cmd.Bulan}
	db := e.DB.WithContext(ctx)

	var n int64
	if err := db.Model(&tagihanModel.Tagihan{}).
		Where("tagihan_siswa_id = ? AND tagihan_pos_id = ? AND tagihan_tahun_ajaran = ? AND tagihan_bulan = ?",
			siswa.SiswaID, pos.PosID, tahun, tagihanModel.BulanKolom(cmd.Bulan)).
		Count(&n).Error; err != nil {
		return nil, wrapInfra("cek tagihan", err)
	}
	if n > 0 {
		return nil, dup
	}

	t := newTagihan(siswa.SiswaID, pos.PosID, tahun, cmd.Bulan, cmd.Nominal)
	if err := db.Create(&t).Error; err != nil {
		// request lain bisa menang di antara cek & insert
		if helper.IsUniqueViolation(err) {
			return nil, dup
		}
		return nil, wrapInfra("simpan tagihan", err)
	}
	t.Siswa = siswa
	t.Pos = pos
	return &t, nil
}

// CreateBillsForClass membuat tagihan untuk semua siswa di kelas.
// Tagihan yang sudah ada dilewati (dihitung di skipped), bukan error.
func (e *Engine) CreateBillsForClass(ctx context.Context, cmd CreateClassBillsCommand) (created, skipped int, err error) {
	tahun, err := validateBillInput(cmd.TahunAjaran, cmd.Bulan, cmd.Nominal)
	if err != nil {
		return 0, 0, err
	}
	kelas, err := e.findKelas(ctx, cmd.KelasID)
	if err != nil {
		return 0, 0, err
	}
	pos, err := e.findPos(ctx, cmd.PosID)
	if err != nil {
		return 0, 0, err
	}
	if err := checkPosPeriod(pos, cmd.Bulan); err != nil {
		return 0, 0, err
	}

	students, err := e.Siswa.ListByClass(ctx, kelas.KelasID)
	if err != nil {
		return 0, 0, wrapInfra("daftar siswa kelas", err)
	}
	if len(students) == 0 {
		return 0, 0, nil
	}

	err = e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertClassBills(tx, students, pos.PosID, tahun, cmd.Bulan, cmd.Nominal, &created, &skipped)
	})
	if err != nil {
		return 0, 0, wrapInfra("simpan tagihan kelas", err)
	}

	log.Printf("[LEDGER] tagihan kelas %s pos %s %s: dibuat=%d dilewati=%d",
		kelas.KelasNama, pos.PosNama, tahun, created, skipped)
	return created, skipped, nil
}

func insertClassBills(
	tx *gorm.DB,
	students []siswaModel.Siswa,
	posID uuid.UUID,
	tahun string,
	bulan *int,
	nominal decimal.Decimal,
	created, skipped *int,
) error {
	for _, s := range students {
		t := newTagihan(s.SiswaID, posID, tahun, bulan, nominal)
		res := tx.Clauses(clause.OnConflict{Columns: tagihanPeriodeColumns, DoNothing: true}).Create(&t)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			*skipped++
		} else {
			*created++
		}
	}
	return nil
}
