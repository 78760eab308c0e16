package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	posModel "sekolahku_backend/internals/features/finance/pos_pembayaran/model"
	tagihanModel "sekolahku_backend/internals/features/finance/tagihan/model"
	transaksiModel "sekolahku_backend/internals/features/finance/transaksi/model"
)

type BasketLine struct {
	TagihanID uuid.UUID
	Jumlah    decimal.Decimal
}

type PayCommand struct {
	NIS       string
	PetugasID uuid.UUID
	Lines     []BasketLine
}

type PayResult struct {
	Transaksi *transaksiModel.Transaksi `json:"transaksi"`
	Status    StatusPembayaran          `json:"status_pembayaran"`
}

// SnapshotLine disimpan di transaksi_snapshot untuk kwitansi.
type SnapshotLine struct {
	TagihanID   uuid.UUID       `json:"tagihan_id"`
	PosNama     string          `json:"pos_nama"`
	TahunAjaran string          `json:"tahun_ajaran"`
	Bulan       *int            `json:"bulan,omitempty"`
	Nominal     decimal.Decimal `json:"nominal"`
	JumlahBayar decimal.Decimal `json:"jumlah_bayar"`
	SisaSetelah decimal.Decimal `json:"sisa_setelah"`
}

// normalizeBasket membuang baris 0 dan menolak baris negatif / ganda.
func normalizeBasket(lines []BasketLine) ([]BasketLine, error) {
	out := make([]BasketLine, 0, len(lines))
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for i, l := range lines {
		field := fmt.Sprintf("pembayaran[%d]", i)
		if l.TagihanID == uuid.Nil {
			return nil, invalid(field+".tagihan_id", "wajib diisi")
		}
		if l.Jumlah.IsNegative() {
			return nil, invalid(field+".jumlah", "tidak boleh negatif")
		}
		if l.Jumlah.IsZero() {
			continue
		}
		if err := checkAmount(field+".jumlah", l.Jumlah); err != nil {
			return nil, err
		}
		if _, dup := seen[l.TagihanID]; dup {
			return nil, invalid(field+".tagihan_id", "tagihan muncul lebih dari sekali")
		}
		seen[l.TagihanID] = struct{}{}
		out = append(out, l)
	}
	if len(out) == 0 {
		return nil, invalid("pembayaran", "Tidak ada item pembayaran yang valid.")
	}
	return out, nil
}

// Pay mencatat satu transaksi untuk beberapa tagihan milik satu siswa.
// Semua langkah dalam satu transaksi DB; error apa pun = rollback penuh.
func (e *Engine) Pay(ctx context.Context, cmd PayCommand) (*PayResult, error) {
	lines, err := normalizeBasket(cmd.Lines)
	if err != nil {
		return nil, err
	}
	if cmd.PetugasID == uuid.Nil {
		return nil, invalid("petugas", "petugas tidak diketahui")
	}
	nis := strings.TrimSpace(cmd.NIS)
	if nis == "" {
		return nil, invalid("nis", "wajib diisi")
	}

	siswa, err := e.findSiswa(ctx, nis)
	if err != nil {
		return nil, err
	}

	var (
		trx    transaksiModel.Transaksi
		status StatusPembayaran
	)
	err = e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := lockTagihan(tx, lines)
		if err != nil {
			return err
		}
		names, err := posNames(tx, locked)
		if err != nil {
			return err
		}

		// validasi semua baris dulu, baru mutasi
		total := decimal.Zero
		snapshot := make([]SnapshotLine, 0, len(lines))
		for i, l := range lines {
			t := locked[l.TagihanID]
			if t.TagihanSiswaID != siswa.SiswaID {
				return invalid(fmt.Sprintf("pembayaran[%d].tagihan_id", i), "tagihan bukan milik siswa ini")
			}
			if l.Jumlah.GreaterThan(t.TagihanSisa) {
				return &PaymentExceedsBalanceError{
					TagihanID: t.TagihanID,
					NamaPos:   names[t.TagihanPosID],
					Maksimal:  t.TagihanSisa,
					Diminta:   l.Jumlah,
				}
			}
			total = total.Add(l.Jumlah)
			snapshot = append(snapshot, SnapshotLine{
				TagihanID:   t.TagihanID,
				PosNama:     names[t.TagihanPosID],
				TahunAjaran: t.TagihanTahunAjaran,
				Bulan:       t.Bulan(),
				Nominal:     t.TagihanNominal,
				JumlahBayar: l.Jumlah,
				SisaSetelah: t.TagihanSisa.Sub(l.Jumlah),
			})
		}

		if err := checkAmount("total", total); err != nil {
			return err
		}

		raw, err := json.Marshal(snapshot)
		if err != nil {
			return err
		}
		trx = transaksiModel.Transaksi{
			TransaksiSiswaID:   siswa.SiswaID,
			TransaksiPetugasID: cmd.PetugasID,
			TransaksiTanggal:   e.now(),
			TransaksiTotal:     total,
			TransaksiSnapshot:  datatypes.JSON(raw),
		}
		if err := tx.Create(&trx).Error; err != nil {
			return wrapInfra("simpan transaksi", err)
		}

		details := make([]transaksiModel.DetailTransaksi, 0, len(lines))
		for _, l := range lines {
			t := locked[l.TagihanID]
			t.Kurangi(l.Jumlah)
			if err := tx.Model(t).Updates(map[string]any{
				"tagihan_sisa":   t.TagihanSisa,
				"tagihan_status": t.TagihanStatus,
			}).Error; err != nil {
				return wrapInfra("update tagihan", err)
			}
			details = append(details, transaksiModel.DetailTransaksi{
				DetailTransaksiTransaksiID: trx.TransaksiID,
				DetailTransaksiTagihanID:   t.TagihanID,
				DetailTransaksiJumlahBayar: l.Jumlah,
				Tagihan:                    t,
			})
		}
		if err := tx.Omit(clause.Associations).Create(&details).Error; err != nil {
			return wrapInfra("simpan detail transaksi", err)
		}
		trx.Details = details

		status, err = statusSiswa(tx, siswa.SiswaID)
		return err
	})
	if err != nil {
		return nil, err
	}

	trx.Siswa = siswa
	log.Printf("[LEDGER] pembayaran %s nis=%s total=%s baris=%d status=%s",
		trx.TransaksiID, nis, trx.TransaksiTotal.StringFixed(2), len(trx.Details), status)
	return &PayResult{Transaksi: &trx, Status: status}, nil
}

// lockTagihan mengunci baris tagihan satu per satu dengan urutan id naik,
// supaya dua pembayaran yang beririsan tidak saling deadlock.
func lockTagihan(tx *gorm.DB, lines []BasketLine) (map[uuid.UUID]*tagihanModel.Tagihan, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.TagihanID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	out := make(map[uuid.UUID]*tagihanModel.Tagihan, len(ids))
	for _, id := range ids {
		var t tagihanModel.Tagihan
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tagihan_id = ?", id).
			Take(&t).Error
		if err != nil {
			if isMissing(err) {
				return nil, &NotFoundError{Entity: "tagihan", Key: id.String()}
			}
			return nil, wrapInfra("kunci tagihan", err)
		}
		out[id] = &t
	}
	return out, nil
}

func posNames(tx *gorm.DB, locked map[uuid.UUID]*tagihanModel.Tagihan) (map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(locked))
	seen := map[uuid.UUID]bool{}
	for _, t := range locked {
		if !seen[t.TagihanPosID] {
			seen[t.TagihanPosID] = true
			ids = append(ids, t.TagihanPosID)
		}
	}
	var rows []posModel.PosPembayaran
	if err := tx.Where("pos_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, wrapInfra("nama pos", err)
	}
	out := make(map[uuid.UUID]string, len(rows))
	for _, p := range rows {
		out[p.PosID] = p.PosNama
	}
	return out, nil
}
