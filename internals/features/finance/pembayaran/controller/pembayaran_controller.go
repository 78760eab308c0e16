package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	kelasService "sekolahku_backend/internals/features/akademik/kelas/service"
	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
	siswaService "sekolahku_backend/internals/features/akademik/siswa/service"
	"sekolahku_backend/internals/features/finance/ledger"
	dto "sekolahku_backend/internals/features/finance/pembayaran/dto"
	pembayaranService "sekolahku_backend/internals/features/finance/pembayaran/service"
	posService "sekolahku_backend/internals/features/finance/pos_pembayaran/service"
	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
	transaksiModel "sekolahku_backend/internals/features/finance/transaksi/model"
	helper "sekolahku_backend/internals/helpers"
)

type PembayaranHandler struct {
	DB     *gorm.DB
	Ledger *ledger.Engine
}

func NewPembayaranHandler(db *gorm.DB) *PembayaranHandler {
	return &PembayaranHandler{
		DB: db,
		Ledger: ledger.New(db,
			siswaService.NewDirectory(db),
			kelasService.NewDirectory(db),
			posService.NewCatalog(db),
		),
	}
}

// ledgerError memetakan error ledger ke status HTTP.
func ledgerError(c *fiber.Ctx, err error) error {
	var (
		ve  *ledger.ValidationError
		nf  *ledger.NotFoundError
		dup *ledger.DuplicateBillError
		ex  *ledger.PaymentExceedsBalanceError
	)
	switch {
	case errors.As(err, &ve):
		if ve.Field == "" {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, ve.Message)
		}
		return helper.JsonValidationError(c, map[string][]string{ve.Field: {ve.Message}})
	case errors.As(err, &nf):
		return helper.JsonError(c, fiber.StatusNotFound, nf.Error())
	case errors.As(err, &dup):
		return helper.JsonError(c, fiber.StatusConflict, dup.Error())
	case errors.As(err, &ex):
		return helper.JsonErrorDetails(c, fiber.StatusUnprocessableEntity, ex.Error(), fiber.Map{
			"tagihan_id": ex.TagihanID,
			"pos_nama":   ex.NamaPos,
			"max":        ex.Maksimal,
			"diminta":    ex.Diminta,
		})
	}
	return helper.FromFiberError(c, err)
}

func bindValid(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(out); errs != nil {
		return helper.FieldErrors(errs)
	}
	return nil
}

/* =========================
   Index (GET /pembayaran?q=&nis=&kelas_id=&angkatan=)
========================= */

func (h *PembayaranHandler) Index(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 10, 100)

	q := h.DB.WithContext(c.UserContext()).
		Model(&siswaModel.Siswa{}).
		Where("siswa_id IN (SELECT DISTINCT tagihan_siswa_id FROM tagihan)")
	if v := strings.TrimSpace(c.Query("q", c.Query("search"))); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(siswa_nama_lengkap) LIKE ? OR siswa_nis LIKE ?", like, like)
	}
	if v := strings.TrimSpace(c.Query("nis")); v != "" {
		q = q.Where("siswa_nis = ?", v)
	}
	if v := strings.TrimSpace(c.Query("kelas_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "kelas_id tidak valid")
		}
		q = q.Where("siswa_kelas_id = ?", id)
	}
	if v := strings.TrimSpace(c.Query("angkatan")); v != "" {
		q = q.Where("siswa_kelas_id IN (SELECT kelas_id FROM kelas WHERE kelas_angkatan = ?)", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	var list []siswaModel.Siswa
	if err := q.Preload("Kelas").
		Order("siswa_nama_lengkap ASC").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&list).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	ids := make([]uuid.UUID, 0, len(list))
	for _, s := range list {
		ids = append(ids, s.SiswaID)
	}
	status, err := ledger.StatusBanyak(c.UserContext(), h.DB, ids)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	rows := make([]dto.SiswaPembayaranRow, 0, len(list))
	for _, s := range list {
		st, ok := status[s.SiswaID]
		if !ok {
			st = ledger.StatusTidakAdaTagihan
		}
		rows = append(rows, dto.ToSiswaPembayaranRow(s, st))
	}
	return helper.JsonList(c, "Daftar pembayaran siswa", rows, helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage))
}

/* =========================
   Show (GET /pembayaran/:nis)
========================= */

func (h *PembayaranHandler) Show(c *fiber.Ctx) error {
	nis := strings.TrimSpace(c.Params("nis"))
	ctx := c.UserContext()

	siswa, err := h.Ledger.Siswa.FindByNIS(ctx, nis)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return helper.FromFiberError(c, err)
	}

	var tagihan []tagihanModel.Tagihan
	if err := h.DB.WithContext(ctx).Preload("Pos").
		Where("tagihan_siswa_id = ?", siswa.SiswaID).
		Order("tagihan_tahun_ajaran DESC, tagihan_bulan ASC, tagihan_created_at ASC").
		Find(&tagihan).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	var transaksi []transaksiModel.Transaksi
	if err := h.DB.WithContext(ctx).
		Preload("Petugas").
		Preload("Details.Tagihan.Pos").
		Where("transaksi_siswa_id = ?", siswa.SiswaID).
		Order("transaksi_tanggal DESC, transaksi_created_at DESC").
		Find(&transaksi).Error; err != nil {
		return helper.FromFiberError(c, err)
	}

	out := dto.DetailSiswaResponse{
		Siswa:     *siswa,
		TotalSisa: decimal.Zero,
		Tagihan:   make([]dto.TagihanResponse, 0, len(tagihan)),
		Transaksi: transaksi,
	}
	var belum int64
	for _, t := range tagihan {
		out.Tagihan = append(out.Tagihan, dto.ToTagihanResponse(t))
		out.TotalSisa = out.TotalSisa.Add(t.TagihanSisa)
		if !t.Lunas() {
			belum++
		}
	}
	out.StatusPembayaran = ledger.DeriveStatus(int64(len(tagihan)), belum)
	if out.Transaksi == nil {
		out.Transaksi = []transaksiModel.Transaksi{}
	}
	return helper.JsonOK(c, "Detail pembayaran siswa", out)
}

/* =========================
   Tagihan
========================= */

func (h *PembayaranHandler) StoreTagihan(c *fiber.Ctx) error {
	var in dto.TagihanRequest
	if err := bindValid(c, &in); err != nil {
		return helper.FromFiberError(c, err)
	}
	t, err := h.Ledger.CreateBillForStudent(c.UserContext(), in.Command())
	if err != nil {
		return ledgerError(c, err)
	}
	return helper.JsonCreated(c, "Tagihan berhasil dibuat.", dto.ToTagihanResponse(*t))
}

func (h *PembayaranHandler) StoreTagihanKelas(c *fiber.Ctx) error {
	var in dto.TagihanKelasRequest
	if err := bindValid(c, &in); err != nil {
		return helper.FromFiberError(c, err)
	}
	created, skipped, err := h.Ledger.CreateBillsForClass(c.UserContext(), in.Command())
	if err != nil {
		return ledgerError(c, err)
	}
	msg := fmt.Sprintf("%d tagihan berhasil dibuat.", created)
	if skipped > 0 {
		msg = fmt.Sprintf("%d tagihan berhasil dibuat, %d dilewati karena sudah ada.", created, skipped)
	}
	return helper.JsonCreated(c, msg, fiber.Map{"created": created, "skipped": skipped})
}

// Pengingat (GET /tagihan/pengingat?pos_id=)
func (h *PembayaranHandler) Pengingat(c *fiber.Ctx) error {
	posID, err := uuid.Parse(strings.TrimSpace(c.Query("pos_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "pos_id wajib diisi dan harus uuid")
	}
	pos, err := h.Ledger.Pos.FindByID(c.UserContext(), posID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "POS tidak ditemukan")
		}
		return helper.FromFiberError(c, err)
	}
	list, err := pembayaranService.DaftarPengingat(c.UserContext(), h.DB, pos.PosID)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Daftar pengingat "+pos.PosNama, fiber.Map{"pos": pos, "siswa": list})
}

/* =========================
   Bayar (POST /pembayaran/:nis/bayar)
========================= */

func (h *PembayaranHandler) Bayar(c *fiber.Ctx) error {
	petugasID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var in dto.BayarRequest
	if err := bindValid(c, &in); err != nil {
		return helper.FromFiberError(c, err)
	}
	res, err := h.Ledger.Pay(c.UserContext(), in.Command(c.Params("nis"), petugasID))
	if err != nil {
		return ledgerError(c, err)
	}
	return helper.JsonCreated(c, "Pembayaran berhasil disimpan.", res)
}

/* =========================
   Kwitansi (GET /kwitansi/:id)
========================= */

func (h *PembayaranHandler) Kwitansi(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var trx transaksiModel.Transaksi
	err = h.DB.WithContext(c.UserContext()).
		Preload("Siswa.Kelas").
		Preload("Petugas").
		Preload("Details.Tagihan.Pos").
		Where("transaksi_id = ?", id).
		Take(&trx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Transaksi tidak ditemukan")
		}
		return helper.FromFiberError(c, err)
	}
	return c.Render("kwitansi", kwitansiData(&trx))
}

func kwitansiData(trx *transaksiModel.Transaksi) fiber.Map {
	data := fiber.Map{
		"Nomor":   "KW-" + trx.TransaksiTanggal.Format("20060102") + "-" + strings.ToUpper(trx.TransaksiID.String()[:8]),
		"Tanggal": trx.TransaksiTanggal,
		"Total":   trx.TransaksiTotal,
		"Lines":   kwitansiLines(trx),
		"Petugas": "-",
		"NIS":     "",
		"Nama":    "",
		"Kelas":   "-",
	}
	if trx.Petugas != nil {
		data["Petugas"] = trx.Petugas.UserNama
	}
	if s := trx.Siswa; s != nil {
		data["NIS"] = s.SiswaNIS
		data["Nama"] = s.SiswaNamaLengkap
		if s.Kelas != nil {
			data["Kelas"] = s.Kelas.KelasNama
		}
	}
	return data
}

// kwitansiLines memakai snapshot; transaksi lama tanpa snapshot dibangun dari detail.
func kwitansiLines(trx *transaksiModel.Transaksi) []ledger.SnapshotLine {
	if len(trx.TransaksiSnapshot) > 0 {
		var lines []ledger.SnapshotLine
		if err := json.Unmarshal(trx.TransaksiSnapshot, &lines); err == nil && len(lines) > 0 {
			return lines
		}
		log.Printf("[WARN] snapshot transaksi %s tidak terbaca, pakai detail", trx.TransaksiID)
	}
	lines := make([]ledger.SnapshotLine, 0, len(trx.Details))
	for _, d := range trx.Details {
		l := ledger.SnapshotLine{TagihanID: d.DetailTransaksiTagihanID, JumlahBayar: d.DetailTransaksiJumlahBayar}
		if t := d.Tagihan; t != nil {
			l.TahunAjaran = t.TagihanTahunAjaran
			l.Bulan = t.Bulan()
			l.Nominal = t.TagihanNominal
			l.SisaSetelah = t.TagihanSisa
			if t.Pos != nil {
				l.PosNama = t.Pos.PosNama
			}
		}
		lines = append(lines, l)
	}
	return lines
}
