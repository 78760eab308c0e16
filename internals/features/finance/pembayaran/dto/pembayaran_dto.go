package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	kelasModel "sekolahku_backend/internals/features/akademik/kelas/model"
	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
	"sekolahku_backend/internals/features/finance/ledger"
	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
	transaksiModel "sekolahku_backend/internals/features/finance/transaksi/model"
)

/* ===== Tagihan ===== */

type TagihanRequest struct {
	NIS         string          `json:"nis" validate:"required,max=20"`
	PosID       string          `json:"pos_id" validate:"required,uuid"`
	TahunAjaran string          `json:"tahun_ajaran" validate:"required,max=10"`
	Bulan       *int            `json:"bulan" validate:"omitempty,min=1,max=12"`
	Nominal     decimal.Decimal `json:"nominal"`
}

func (r TagihanRequest) Command() ledger.CreateBillCommand {
	return ledger.CreateBillCommand{
		NIS:         strings.TrimSpace(r.NIS),
		PosID:       uuid.MustParse(r.PosID),
		TahunAjaran: strings.TrimSpace(r.TahunAjaran),
		Bulan:       r.Bulan,
		Nominal:     r.Nominal,
	}
}

type TagihanKelasRequest struct {
	KelasID     string          `json:"kelas_id" validate:"required,uuid"`
	PosID       string          `json:"pos_id" validate:"required,uuid"`
	TahunAjaran string          `json:"tahun_ajaran" validate:"required,max=10"`
	Bulan       *int            `json:"bulan" validate:"omitempty,min=1,max=12"`
	Nominal     decimal.Decimal `json:"nominal"`
}

func (r TagihanKelasRequest) Command() ledger.CreateClassBillsCommand {
	return ledger.CreateClassBillsCommand{
		KelasID:     uuid.MustParse(r.KelasID),
		PosID:       uuid.MustParse(r.PosID),
		TahunAjaran: strings.TrimSpace(r.TahunAjaran),
		Bulan:       r.Bulan,
		Nominal:     r.Nominal,
	}
}

/* ===== Bayar ===== */

type BayarLine struct {
	TagihanID string          `json:"tagihan_id" validate:"required,uuid"`
	Jumlah    decimal.Decimal `json:"jumlah"`
}

type BayarRequest struct {
	Pembayaran []BayarLine `json:"pembayaran" validate:"required,min=1,dive"`
}

func (r BayarRequest) Command(nis string, petugasID uuid.UUID) ledger.PayCommand {
	lines := make([]ledger.BasketLine, 0, len(r.Pembayaran))
	for _, l := range r.Pembayaran {
		lines = append(lines, ledger.BasketLine{TagihanID: uuid.MustParse(l.TagihanID), Jumlah: l.Jumlah})
	}
	return ledger.PayCommand{NIS: nis, PetugasID: petugasID, Lines: lines}
}

/* ===== Responses ===== */

type SiswaPembayaranRow struct {
	SiswaID          uuid.UUID               `json:"siswa_id"`
	SiswaNIS         string                  `json:"siswa_nis"`
	SiswaNamaLengkap string                  `json:"siswa_nama_lengkap"`
	SiswaStatus      siswaModel.SiswaStatus  `json:"siswa_status"`
	Kelas            *kelasModel.Kelas       `json:"kelas,omitempty"`
	StatusPembayaran ledger.StatusPembayaran `json:"status_pembayaran"`
}

func ToSiswaPembayaranRow(s siswaModel.Siswa, st ledger.StatusPembayaran) SiswaPembayaranRow {
	return SiswaPembayaranRow{
		SiswaID:          s.SiswaID,
		SiswaNIS:         s.SiswaNIS,
		SiswaNamaLengkap: s.SiswaNamaLengkap,
		SiswaStatus:      s.SiswaStatus,
		Kelas:            s.Kelas,
		StatusPembayaran: st,
	}
}

type TagihanResponse struct {
	TagihanID          uuid.UUID                  `json:"tagihan_id"`
	PosID              uuid.UUID                  `json:"pos_id"`
	PosNama            string                     `json:"pos_nama"`
	PosTipe            string                     `json:"pos_tipe"`
	TagihanTahunAjaran string                     `json:"tahun_ajaran"`
	TagihanBulan       *int                       `json:"bulan"`
	TagihanNominal     decimal.Decimal            `json:"nominal"`
	TagihanSisa        decimal.Decimal            `json:"sisa"`
	TagihanStatus      tagihanModel.TagihanStatus `json:"status"`
	TagihanCreatedAt   time.Time                  `json:"created_at"`
}

func ToTagihanResponse(t tagihanModel.Tagihan) TagihanResponse {
	out := TagihanResponse{
		TagihanID:          t.TagihanID,
		PosID:              t.TagihanPosID,
		TagihanTahunAjaran: t.TagihanTahunAjaran,
		TagihanBulan:       t.Bulan(),
		TagihanNominal:     t.TagihanNominal,
		TagihanSisa:        t.TagihanSisa,
		TagihanStatus:      t.TagihanStatus,
		TagihanCreatedAt:   t.TagihanCreatedAt,
	}
	if t.Pos != nil {
		out.PosNama = t.Pos.PosNama
		out.PosTipe = string(t.Pos.PosTipe)
	}
	return out
}

type DetailSiswaResponse struct {
	Siswa            siswaModel.Siswa           `json:"siswa"`
	StatusPembayaran ledger.StatusPembayaran    `json:"status_pembayaran"`
	TotalSisa        decimal.Decimal            `json:"total_sisa"`
	Tagihan          []TagihanResponse          `json:"tagihan"`
	Transaksi        []transaksiModel.Transaksi `json:"transaksi"`
}
