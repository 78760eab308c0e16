package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	kelasModel "sekolahku_backend/internals/features/akademik/kelas/model"
	dto "sekolahku_backend/internals/features/akademik/siswa/dto"
	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
	siswaService "sekolahku_backend/internals/features/akademik/siswa/service"
	helper "sekolahku_backend/internals/helpers"
)

type SiswaHandler struct {
	DB *gorm.DB
}

func NewSiswaHandler(db *gorm.DB) *SiswaHandler { return &SiswaHandler{DB: db} }

/* =========================
   List (GET /siswa?q=&kelas_id=&angkatan=&status=)
========================= */

func (h *SiswaHandler) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 10, 100)

	q := h.DB.WithContext(c.UserContext()).Model(&siswaModel.Siswa{})
	if v := strings.TrimSpace(c.Query("q", c.Query("search"))); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(siswa_nama_lengkap) LIKE ? OR siswa_nis LIKE ?", like, like)
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
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		q = q.Where("siswa_status = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung siswa")
	}

	var list []siswaModel.Siswa
	if err := q.Preload("Kelas").
		Order("siswa_nama_lengkap ASC").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil siswa")
	}
	return helper.JsonList(c, "Daftar siswa", list, helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage))
}

func (h *SiswaHandler) load(c *fiber.Ctx) (*siswaModel.Siswa, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var s siswaModel.Siswa
	if err := h.DB.WithContext(c.UserContext()).Preload("Kelas").Where("siswa_id = ?", id).Take(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Siswa tidak ditemukan")
		}
		return nil, err
	}
	return &s, nil
}

func (h *SiswaHandler) Get(c *fiber.Ctx) error {
	s, err := h.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail siswa", s)
}

// bind: parse + validasi + cek kelas.
func (h *SiswaHandler) bind(c *fiber.Ctx) (*dto.SiswaRequest, error) {
	var in dto.SiswaRequest
	if err := c.BodyParser(&in); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	in.Normalize()
	if errs := helper.ValidateStruct(in); errs != nil {
		return nil, helper.FieldErrors(errs)
	}

	var n int64
	if err := h.DB.WithContext(c.UserContext()).Model(&kelasModel.Kelas{}).
		Where("kelas_id = ?", in.SiswaKelasID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, helper.FieldErrors{"siswa_kelas_id": {"kelas tidak ditemukan"}}
	}
	return &in, nil
}

func (h *SiswaHandler) Create(c *fiber.Ctx) error {
	in, err := h.bind(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var s siswaModel.Siswa
	in.Apply(&s)
	if err := h.DB.WithContext(c.UserContext()).Create(&s).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "NIS sudah terdaftar")
		}
		log.Printf("[ERROR] create siswa: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan siswa")
	}
	return helper.JsonCreated(c, "Data siswa berhasil ditambahkan.", s)
}

func (h *SiswaHandler) Update(c *fiber.Ctx) error {
	s, err := h.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	in, err := h.bind(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	in.Apply(s)
	s.Kelas = nil
	if err := h.DB.WithContext(c.UserContext()).Omit("Kelas").Save(s).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "NIS sudah terdaftar")
		}
		log.Printf("[ERROR] update siswa: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui siswa")
	}
	return helper.JsonUpdated(c, "Data siswa berhasil diubah.", s)
}

// Delete: tagihan ikut terhapus; ditolak kalau sudah ada transaksi.
func (h *SiswaHandler) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	switch err := siswaService.Hapus(c.UserContext(), h.DB, id); {
	case err == nil:
		return helper.JsonDeleted(c, "Data siswa berhasil dihapus.", fiber.Map{"siswa_id": id})
	case errors.Is(err, siswaService.ErrSiswaTidakAda):
		return helper.JsonError(c, fiber.StatusNotFound, "Siswa tidak ditemukan")
	case errors.Is(err, siswaService.ErrSiswaPunyaRiwayat):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	default:
		return helper.FromFiberError(c, err)
	}
}

/* =========================
   Batch (POST /siswa/batch) naik | pindah | tinggal | lulus
========================= */

func (h *SiswaHandler) Batch(c *fiber.Ctx) error {
	var in dto.BatchRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	n, err := siswaService.BatchUpdate(c.UserContext(), h.DB, in.ParsedIDs(), siswaService.Aksi(in.Action), in.Target())
	switch {
	case err == nil:
	case errors.Is(err, siswaService.ErrKelasTujuanWajib), errors.Is(err, siswaService.ErrKelasTidakAda):
		return helper.JsonValidationError(c, map[string][]string{"target_kelas_id": {err.Error()}})
	default:
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Aksi berhasil diterapkan.", fiber.Map{"action": in.Action, "updated": n})
}
