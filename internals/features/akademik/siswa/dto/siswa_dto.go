package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	siswaModel "sekolahku_backend/internals/features/akademik/siswa/model"
)

const layoutTanggal = "2006-01-02"

// SiswaRequest dipakai untuk create & update (replace penuh, seperti form siswa).
type SiswaRequest struct {
	SiswaNIS            string  `json:"siswa_nis" validate:"required,max=20"`
	SiswaNISN           *string `json:"siswa_nisn" validate:"omitempty,max=20"`
	SiswaNIK            *string `json:"siswa_nik" validate:"omitempty,max=20"`
	SiswaNamaLengkap    string  `json:"siswa_nama_lengkap" validate:"required,max=255"`
	SiswaJenisKelamin   *string `json:"siswa_jenis_kelamin" validate:"omitempty,oneof=L P"`
	SiswaTempatLahir    *string `json:"siswa_tempat_lahir" validate:"omitempty,max=255"`
	SiswaTanggalLahir   *string `json:"siswa_tanggal_lahir" validate:"omitempty,datetime=2006-01-02"`
	SiswaAlamat         *string `json:"siswa_alamat"`
	SiswaNoWAOrtu       *string `json:"siswa_no_wa_ortu" validate:"omitempty,max=20"`
	SiswaNamaOrangTua   *string `json:"siswa_nama_orang_tua" validate:"omitempty,max=255"`
	SiswaAlamatOrangTua *string `json:"siswa_alamat_orang_tua"`
	SiswaKeterangan     *string `json:"siswa_keterangan"`
	SiswaStatus         string  `json:"siswa_status" validate:"omitempty,oneof=Aktif Lulus Pindah"`
	SiswaKelasID        string  `json:"siswa_kelas_id" validate:"required,uuid"`
}

// string kosong -> nil
func clean(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func (r *SiswaRequest) Normalize() {
	r.SiswaNIS = strings.TrimSpace(r.SiswaNIS)
	r.SiswaNamaLengkap = strings.TrimSpace(r.SiswaNamaLengkap)
	r.SiswaKelasID = strings.TrimSpace(r.SiswaKelasID)
	r.SiswaStatus = strings.TrimSpace(r.SiswaStatus)
	for _, p := range []**string{
		&r.SiswaNISN, &r.SiswaNIK, &r.SiswaJenisKelamin, &r.SiswaTempatLahir, &r.SiswaTanggalLahir,
		&r.SiswaAlamat, &r.SiswaNoWAOrtu, &r.SiswaNamaOrangTua, &r.SiswaAlamatOrangTua, &r.SiswaKeterangan,
	} {
		*p = clean(*p)
	}
	if r.SiswaJenisKelamin != nil {
		v := strings.ToUpper(*r.SiswaJenisKelamin)
		r.SiswaJenisKelamin = &v
	}
}

// Apply menyalin field tervalidasi ke model. Dipanggil setelah ValidateStruct.
func (r SiswaRequest) Apply(s *siswaModel.Siswa) {
	s.SiswaNIS = r.SiswaNIS
	s.SiswaNISN = r.SiswaNISN
	s.SiswaNIK = r.SiswaNIK
	s.SiswaNamaLengkap = r.SiswaNamaLengkap
	s.SiswaJenisKelamin = r.SiswaJenisKelamin
	s.SiswaTempatLahir = r.SiswaTempatLahir
	s.SiswaTanggalLahir = nil
	if r.SiswaTanggalLahir != nil {
		if t, err := time.Parse(layoutTanggal, *r.SiswaTanggalLahir); err == nil {
			s.SiswaTanggalLahir = &t
		}
	}
	s.SiswaAlamat = r.SiswaAlamat
	s.SiswaNoWAOrtu = r.SiswaNoWAOrtu
	s.SiswaNamaOrangTua = r.SiswaNamaOrangTua
	s.SiswaAlamatOrangTua = r.SiswaAlamatOrangTua
	s.SiswaKeterangan = r.SiswaKeterangan
	if r.SiswaStatus != "" {
		s.SiswaStatus = siswaModel.SiswaStatus(r.SiswaStatus)
	} else if s.SiswaStatus == "" {
		s.SiswaStatus = siswaModel.SiswaStatusAktif
	}
	s.SiswaKelasID = uuid.MustParse(r.SiswaKelasID)
}

type BatchRequest struct {
	IDs           []string `json:"ids" validate:"required,min=1,dive,uuid"`
	Action        string   `json:"action" validate:"required,oneof=naik pindah tinggal lulus"`
	TargetKelasID *string  `json:"target_kelas_id" validate:"omitempty,uuid"`
}

func (r BatchRequest) ParsedIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(r.IDs))
	for _, s := range r.IDs {
		out = append(out, uuid.MustParse(s))
	}
	return out
}

func (r BatchRequest) Target() *uuid.UUID {
	if r.TargetKelasID == nil {
		return nil
	}
	id := uuid.MustParse(*r.TargetKelasID)
	return &id
}
