package database

import (
	"log"
	"time"

	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	kelasModel "sekolahku_backend/internals/features/akademik/kelas/model"
	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
	posModel "sekolahku_backend/internals/features/finance/pos_pembayaran/model"
	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
	transaksiModel "sekolahku_backend/internals/features/finance/transaksi/model"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	db, err := configs.OpenPostgres(configs.PostgresDSN())
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := Ping(DB); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

// Models urut sesuai dependensi FK.
func Models() []any {
	return []any{
		&userModel.User{},
		&kelasModel.Kelas{},
		&siswaModel.Siswa{},
		&posModel.PosPembayaran{},
		&tagihanModel.Tagihan{},
		&transaksiModel.Transaksi{},
		&transaksiModel.DetailTransaksi{},
	}
}

// Migrate membuat/menyesuaikan skema. Dipakai juga oleh test (SQLite in-memory).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func Ping(db *gorm.DB) error {
	if db == nil {
		return gorm.ErrInvalidDB
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
