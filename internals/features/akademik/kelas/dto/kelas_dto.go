package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	kelasModel "sekolahku_backend/internals/features/akademik/kelas/model"
)

type CreateKelasRequest struct {
	KelasNama        string `json:"kelas_nama" validate:"required,max=50"`
	KelasAngkatan    string `json:"kelas_angkatan" validate:"required,max=10"`
	KelasTahunAjaran string `json:"kelas_tahun_ajaran" validate:"required,max=10"`
}

func (r *CreateKelasRequest) Normalize() {
	r.KelasNama = strings.TrimSpace(r.KelasNama)
	r.KelasAngkatan = strings.TrimSpace(r.KelasAngkatan)
	r.KelasTahunAjaran = strings.TrimSpace(r.KelasTahunAjaran)
}

func (r CreateKelasRequest) ToModel() kelasModel.Kelas {
	return kelasModel.Kelas{
		KelasNama:        r.KelasNama,
		KelasAngkatan:    r.KelasAngkatan,
		KelasTahunAjaran: r.KelasTahunAjaran,
	}
}

// Update parsial: field nil tidak diubah.
type UpdateKelasRequest struct {
	KelasNama        *string `json:"kelas_nama" validate:"omitempty,min=1,max=50"`
	KelasAngkatan    *string `json:"kelas_angkatan" validate:"omitempty,min=1,max=10"`
	KelasTahunAjaran *string `json:"kelas_tahun_ajaran" validate:"omitempty,min=1,max=10"`
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}

func (r *UpdateKelasRequest) Normalize() {
	r.KelasNama = trimPtr(r.KelasNama)
	r.KelasAngkatan = trimPtr(r.KelasAngkatan)
	r.KelasTahunAjaran = trimPtr(r.KelasTahunAjaran)
}

func (r UpdateKelasRequest) Apply(k *kelasModel.Kelas) {
	if r.KelasNama != nil {
		k.KelasNama = *r.KelasNama
	}
	if r.KelasAngkatan != nil {
		k.KelasAngkatan = *r.KelasAngkatan
	}
	if r.KelasTahunAjaran != nil {
		k.KelasTahunAjaran = *r.KelasTahunAjaran
	}
}

type KelasResponse struct {
	KelasID          uuid.UUID `json:"kelas_id"`
	KelasNama        string    `json:"kelas_nama"`
	KelasAngkatan    string    `json:"kelas_angkatan"`
	KelasTahunAjaran string    `json:"kelas_tahun_ajaran"`
	JumlahSiswa      int64     `json:"jumlah_siswa"`
	KelasCreatedAt   time.Time `json:"kelas_created_at"`
	KelasUpdatedAt   time.Time `json:"kelas_updated_at"`
}

func ToKelasResponse(k kelasModel.Kelas, jumlahSiswa int64) KelasResponse {
	return KelasResponse{
		KelasID:          k.KelasID,
		KelasNama:        k.KelasNama,
		KelasAngkatan:    k.KelasAngkatan,
		KelasTahunAjaran: k.KelasTahunAjaran,
		JumlahSiswa:      jumlahSiswa,
		KelasCreatedAt:   k.KelasCreatedAt,
		KelasUpdatedAt:   k.KelasUpdatedAt,
	}
}
