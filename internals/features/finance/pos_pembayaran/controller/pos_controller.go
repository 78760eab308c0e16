package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "sekolahku_backend/internals/features/finance/pos_pembayaran/dto"
	posModel "sekolahku_backend/internals/features/finance/pos_pembayaran/model"
	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
	helper "sekolahku_backend/internals/helpers"
)

type PosHandler struct {
	DB *gorm.DB
}

func NewPosHandler(db *gorm.DB) *PosHandler { return &PosHandler{DB: db} }

func (h *PosHandler) List(c *fiber.Ctx) error {
	q := h.DB.WithContext(c.UserContext()).Model(&posModel.PosPembayaran{})
	if v := strings.TrimSpace(c.Query("tipe")); v != "" {
		q = q.Where("pos_tipe = ?", v)
	}
	var list []posModel.PosPembayaran
	if err := q.Order("pos_nama ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil POS")
	}
	return helper.JsonOK(c, "Daftar POS pembayaran", list)
}

func (h *PosHandler) bind(c *fiber.Ctx) (*dto.PosRequest, error) {
	var in dto.PosRequest
	if err := c.BodyParser(&in); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid json")
	}
	in.Normalize()
	if errs := helper.ValidateStruct(in); errs != nil {
		return nil, helper.FieldErrors(errs)
	}
	return &in, nil
}

func (h *PosHandler) Create(c *fiber.Ctx) error {
	in, err := h.bind(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	var p posModel.PosPembayaran
	in.Apply(&p)
	if err := h.DB.WithContext(c.UserContext()).Create(&p).Error; err != nil {
		log.Printf("[ERROR] create pos: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan POS")
	}
	return helper.JsonCreated(c, "POS pembayaran berhasil ditambahkan.", p)
}

func (h *PosHandler) load(c *fiber.Ctx) (*posModel.PosPembayaran, error) {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return nil, err
	}
	var p posModel.PosPembayaran
	if err := h.DB.WithContext(c.UserContext()).Where("pos_id = ?", id).Take(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "POS tidak ditemukan")
		}
		return nil, err
	}
	return &p, nil
}

// Update: tipe tidak boleh berubah kalau sudah ada tagihan (aturan bulan bergantung pada tipe).
func (h *PosHandler) Update(c *fiber.Ctx) error {
	p, err := h.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	in, err := h.bind(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	if posModel.PosTipe(in.PosTipe) != p.PosTipe {
		n, err := h.countTagihan(c, p)
		if err != nil {
			return helper.FromFiberError(c, err)
		}
		if n > 0 {
			return helper.JsonError(c, fiber.StatusConflict, "Tipe POS tidak dapat diubah karena sudah memiliki tagihan.")
		}
	}

	in.Apply(p)
	if err := h.DB.WithContext(c.UserContext()).Save(p).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "POS pembayaran berhasil diperbarui.", p)
}

func (h *PosHandler) Delete(c *fiber.Ctx) error {
	p, err := h.load(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	n, err := h.countTagihan(c, p)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if n > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "POS masih dipakai oleh tagihan.")
	}
	if err := h.DB.WithContext(c.UserContext()).Delete(p).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "POS pembayaran berhasil dihapus.", fiber.Map{"pos_id": p.PosID})
}

func (h *PosHandler) countTagihan(c *fiber.Ctx, p *posModel.PosPembayaran) (int64, error) {
	var n int64
	err := h.DB.WithContext(c.UserContext()).
		Model(&tagihanModel.Tagihan{}).
		Where("tagihan_pos_id = ?", p.PosID).
		Count(&n).Error
	return n, err
}
