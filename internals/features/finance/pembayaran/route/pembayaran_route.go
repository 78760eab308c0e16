package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	pembayaranController "sekolahku_backend/internals/features/finance/pembayaran/controller"
)

// Admin dan staff punya akses yang sama ke modul pembayaran.
func PembayaranRoutes(r fiber.Router, db *gorm.DB) {
	ctl := pembayaranController.NewPembayaranHandler(db)

	p := r.Group("/pembayaran")
	{
		p.Get("/", ctl.Index)
		p.Get("/:nis", ctl.Show)
		p.Post("/:nis/bayar", ctl.Bayar)
	}

	t := r.Group("/tagihan")
	{
		t.Post("/", ctl.StoreTagihan)
		t.Post("/kelas", ctl.StoreTagihanKelas)
		t.Get("/pengingat", ctl.Pengingat)
	}

	r.Get("/kwitansi/:id", ctl.Kwitansi)
}
