package dto

import (
	"strings"

	posModel "sekolahku_backend/internals/features/finance/pos_pembayaran/model"
)

type PosRequest struct {
	PosNama string `json:"pos_nama" validate:"required,max=255"`
	PosTipe string `json:"pos_tipe" validate:"required,oneof=Bulanan Tahunan Bebas"`
}

func (r *PosRequest) Normalize() {
	r.PosNama = strings.TrimSpace(r.PosNama)
	r.PosTipe = strings.TrimSpace(r.PosTipe)
}

func (r PosRequest) Apply(p *posModel.PosPembayaran) {
	p.PosNama = r.PosNama
	p.PosTipe = posModel.PosTipe(r.PosTipe)
}
