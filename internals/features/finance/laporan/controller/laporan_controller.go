package controller

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/features/finance/laporan/service"
	helper "sekolahku_backend/internals/helpers"
)

type LaporanHandler struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewLaporanHandler(db *gorm.DB) *LaporanHandler {
	return &LaporanHandler{DB: db, Now: time.Now}
}

/* =========================
   GET /laporan/data?jenis=&filter=&periode=&nis=&kelas_id=&angkatan=
========================= */

func (h *LaporanHandler) Data(c *fiber.Ctx) error {
	errs := map[string][]string{}

	jenis := service.Jenis(strings.ToLower(strings.TrimSpace(c.Query("jenis", string(service.JenisPembayaran)))))
	if !jenis.Valid() {
		errs["jenis"] = []string{"harus pembayaran atau tunggakan"}
	}
	periode := service.Periode(strings.ToLower(strings.TrimSpace(c.Query("filter"))))
	if !periode.Valid() {
		errs["filter"] = []string{"harus salah satu dari: hari minggu bulan triwulan semester tahun"}
	}

	f := service.Filter{
		Jenis:    jenis,
		NIS:      c.Query("nis"),
		Angkatan: c.Query("angkatan"),
	}
	if v := strings.TrimSpace(c.Query("kelas_id")); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			errs["kelas_id"] = []string{"format uuid tidak valid"}
		} else {
			f.KelasID = &id
		}
	}

	if periode != service.PeriodeSemua && periode.Valid() {
		loc := configs.Location()
		anchor, err := service.ParseAnchor(c.Query("periode"), loc, h.Now())
		if err != nil {
			errs["periode"] = []string{err.Error()}
		} else {
			r, err := service.ResolveRange(periode, anchor, loc)
			if err != nil {
				errs["filter"] = []string{err.Error()}
			} else {
				f.Rentang = &r
			}
		}
	}
	if len(errs) > 0 {
		return helper.JsonValidationError(c, errs)
	}

	out, err := service.Query(c.UserContext(), h.DB, f)
	if err != nil {
		log.Printf("[ERROR] laporan %s: %v", jenis, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil laporan")
	}
	return helper.JsonOK(c, "Laporan "+string(jenis), out)
}
