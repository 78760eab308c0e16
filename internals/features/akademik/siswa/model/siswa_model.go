package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	kelasModel "sekolahku_backend/internals/features/akademik/kelas/model"
)

type SiswaStatus string

const (
	SiswaStatusAktif  SiswaStatus = "Aktif"
	SiswaStatusLulus  SiswaStatus = "Lulus"
	SiswaStatusPindah SiswaStatus = "Pindah"
)

func (s SiswaStatus) Valid() bool {
	switch s {
	case SiswaStatusAktif, SiswaStatusLulus, SiswaStatusPindah:
		return true
	}
	return false
}

// Siswa: NIS (nomor induk) unik dan menjadi kunci yang dipakai modul pembayaran.
type Siswa struct {
	SiswaID  uuid.UUID `gorm:"column:siswa_id;type:uuid;primaryKey" json:"siswa_id"`
	SiswaNIS string    `gorm:"column:siswa_nis;type:varchar(20);not null;uniqueIndex:uq_siswa_nis" json:"siswa_nis"`

	SiswaNISN         *string    `gorm:"column:siswa_nisn;type:varchar(20)" json:"siswa_nisn,omitempty"`
	SiswaNIK          *string    `gorm:"column:siswa_nik;type:varchar(20)" json:"siswa_nik,omitempty"`
	SiswaNamaLengkap  string     `gorm:"column:siswa_nama_lengkap;type:varchar(255);not null;index" json:"siswa_nama_lengkap"`
	SiswaJenisKelamin *string    `gorm:"column:siswa_jenis_kelamin;type:varchar(1)" json:"siswa_jenis_kelamin,omitempty"`
	SiswaTempatLahir  *string    `gorm:"column:siswa_tempat_lahir;type:varchar(255)" json:"siswa_tempat_lahir,omitempty"`
	SiswaTanggalLahir *time.Time `gorm:"column:siswa_tanggal_lahir;type:date" json:"siswa_tanggal_lahir,omitempty"`
	SiswaAlamat       *string    `gorm:"column:siswa_alamat;type:text" json:"siswa_alamat,omitempty"`

	// Wali
	SiswaNoWAOrtu       *string `gorm:"column:siswa_no_wa_ortu;type:varchar(20)" json:"siswa_no_wa_ortu,omitempty"`
	SiswaNamaOrangTua   *string `gorm:"column:siswa_nama_orang_tua;type:varchar(255)" json:"siswa_nama_orang_tua,omitempty"`
	SiswaAlamatOrangTua *string `gorm:"column:siswa_alamat_orang_tua;type:text" json:"siswa_alamat_orang_tua,omitempty"`

	SiswaKeterangan *string     `gorm:"column:siswa_keterangan;type:text" json:"siswa_keterangan,omitempty"`
	SiswaKelasID    uuid.UUID   `gorm:"column:siswa_kelas_id;type:uuid;not null;index" json:"siswa_kelas_id"`
	SiswaStatus     SiswaStatus `gorm:"column:siswa_status;type:varchar(10);not null;default:'Aktif'" json:"siswa_status"`

	Kelas *kelasModel.Kelas `gorm:"foreignKey:SiswaKelasID;references:KelasID" json:"kelas,omitempty"`

	SiswaCreatedAt time.Time `gorm:"column:siswa_created_at;not null;autoCreateTime" json:"siswa_created_at"`
	SiswaUpdatedAt time.Time `gorm:"column:siswa_updated_at;not null;autoUpdateTime" json:"siswa_updated_at"`
}

func (Siswa) TableName() string { return "siswa" }

func (s *Siswa) BeforeCreate(tx *gorm.DB) error {
	if s.SiswaID == uuid.Nil {
		s.SiswaID = uuid.New()
	}
	if s.SiswaStatus == "" {
		s.SiswaStatus = SiswaStatusAktif
	}
	return nil
}
