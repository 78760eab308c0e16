package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/akademik/kelas/dto"
	kelasModel "sekolahku_backend/internals/features/akademik/kelas/model"
	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
	helper "sekolahku_backend/internals/helpers"
)

type KelasHandler struct {
	DB *gorm.DB
}

func NewKelasHandler(db *gorm.DB) *KelasHandler { return &KelasHandler{DB: db} }

func (h *KelasHandler) countSiswa(c *fiber.Ctx, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := map[uuid.UUID]int64{}
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		KelasID uuid.UUID `gorm:"column:kelas_id"`
		Jumlah  int64     `gorm:"column:jumlah"`
	}
	err := h.DB.WithContext(c.UserContext()).
		Model(&siswaModel.Siswa{}).
		Select("siswa_kelas_id AS kelas_id, COUNT(*) AS jumlah").
		Where("siswa_kelas_id IN ?", ids).
		Group("siswa_kelas_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.KelasID] = r.Jumlah
	}
	return out, nil
}

/* =========================
   List (GET /kelas?q=&angkatan=)
========================= */

func (h *KelasHandler) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 50, 200)

	q := h.DB.WithContext(c.UserContext()).Model(&kelasModel.Kelas{})
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		q = q.Where("LOWER(kelas_nama) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	if v := strings.TrimSpace(c.Query("angkatan")); v != "" {
		q = q.Where("kelas_angkatan = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung kelas")
	}

	var list []kelasModel.Kelas
	if err := q.Order("kelas_angkatan DESC, kelas_nama ASC").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kelas")
	}

	ids := make([]uuid.UUID, 0, len(list))
	for _, k := range list {
		ids = append(ids, k.KelasID)
	}
	counts, err := h.countSiswa(c, ids)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung siswa")
	}

	resp := make([]dto.KelasResponse, 0, len(list))
	for _, k := range list {
		resp = append(resp, dto.ToKelasResponse(k, counts[k.KelasID]))
	}
	return helper.JsonList(c, "Daftar kelas", resp, helper.BuildPaginationFromPage(total, pg.Page, pg.PerPage))
}

/* =========================
   Angkatan (GET /kelas/angkatan)
========================= */

func (h *KelasHandler) Angkatan(c *fiber.Ctx) error {
	var out []string
	if err := h.DB.WithContext(c.UserContext()).
		Model(&kelasModel.Kelas{}).
		Distinct("kelas_angkatan").
		Order("kelas_angkatan DESC").
		Pluck("kelas_angkatan", &out).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil angkatan")
	}
	return helper.JsonOK(c, "Daftar angkatan", out)
}

func (h *KelasHandler) load(c *fiber.Ctx) (*kelasModel.Kelas, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var k kelasModel.Kelas
	if err := h.DB.WithContext(c.UserContext()).Where("kelas_id = ?", id).Take(&k).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Kelas tidak ditemukan")
		}
		return nil, err
	}
	return &k, nil
}

func (h *KelasHandler) Get(c *fiber.Ctx) error {
	k, err := h.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	counts, err := h.countSiswa(c, []uuid.UUID{k.KelasID})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Detail kelas", dto.ToKelasResponse(*k, counts[k.KelasID]))
}

func (h *KelasHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateKelasRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	in.Normalize()
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	k := in.ToModel()
	if err := h.DB.WithContext(c.UserContext()).Create(&k).Error; err != nil {
		log.Printf("[ERROR] create kelas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan kelas")
	}
	return helper.JsonCreated(c, "Data kelas berhasil ditambahkan.", dto.ToKelasResponse(k, 0))
}

func (h *KelasHandler) Update(c *fiber.Ctx) error {
	k, err := h.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var in dto.UpdateKelasRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	in.Normalize()
	if errs := helper.ValidateStruct(in); errs != nil {
		return helper.JsonValidationError(c, errs)
	}

	in.Apply(k)
	if err := h.DB.WithContext(c.UserContext()).Save(k).Error; err != nil {
		log.Printf("[ERROR] update kelas: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui kelas")
	}
	counts, err := h.countSiswa(c, []uuid.UUID{k.KelasID})
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Data kelas berhasil diperbarui.", dto.ToKelasResponse(*k, counts[k.KelasID]))
}

// Delete ditolak selama masih ada siswa di kelas.
func (h *KelasHandler) Delete(c *fiber.Ctx) error {
	k, err := h.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var n int64
	if err := h.DB.WithContext(c.UserContext()).
		Model(&siswaModel.Siswa{}).
		Where("siswa_kelas_id = ?", k.KelasID).
		Count(&n).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Kelas masih memiliki siswa, pindahkan siswa terlebih dahulu.")
	}

	if err := h.DB.WithContext(c.UserContext()).Delete(k).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Data kelas berhasil dihapus.", fiber.Map{"kelas_id": k.KelasID})
}
