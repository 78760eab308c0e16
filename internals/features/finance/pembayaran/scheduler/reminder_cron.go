package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/finance/ledger"
	"sekolahku_backend/internals/features/finance/pembayaran/service"
)

// StartReminderCron menjalankan rekap tunggakan harian di zona waktu loc.
// Pemanggil wajib Stop() saat shutdown.
func StartReminderCron(db *gorm.DB, schedule string, loc *time.Location) (*cron.Cron, error) {
	if loc == nil {
		loc = time.UTC
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := RunReminderRecap(ctx, db); err != nil {
			log.Printf("[REMINDER] error: %v", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("jadwal REMINDER_CRON %q tidak valid: %w", schedule, err)
	}
	log.Printf("[REMINDER] started schedule=%q tz=%s", schedule, loc)
	c.Start()
	return c, nil
}

// RunReminderRecap mencatat ke log jumlah siswa & total tunggakan per pos.
func RunReminderRecap(ctx context.Context, db *gorm.DB) ([]service.RekapPos, error) {
	rekap, err := service.RekapTunggakan(ctx, db)
	if err != nil {
		return nil, err
	}
	if len(rekap) == 0 {
		log.Println("[REMINDER] tidak ada tunggakan")
		return rekap, nil
	}
	for _, r := range rekap {
		log.Printf("[REMINDER] pos=%q siswa=%d total=Rp %s", r.PosNama, r.JumlahSisa, ledger.FormatRupiah(r.TotalSisa))
	}
	return rekap, nil
}
