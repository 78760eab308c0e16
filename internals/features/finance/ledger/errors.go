package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sentinel untuk errors.Is; tipe konkret di bawah membawa detailnya.
var (
	ErrValidation            = errors.New("ledger: validation failed")
	ErrNotFound              = errors.New("ledger: not found")
	ErrDuplicateBill         = errors.New("ledger: duplicate bill")
	ErrPaymentExceedsBalance = errors.New("ledger: payment exceeds remaining balance")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

type NotFoundError struct {
	Entity string // siswa | kelas | pos_pembayaran | tagihan
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s tidak ditemukan", e.Entity, e.Key)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type DuplicateBillError struct {
	NIS         string
	PosID       uuid.UUID
	TahunAjaran string
	Bulan       *int
}

func (e *DuplicateBillError) Error() string {
	return "Tagihan untuk siswa ini dengan POS, bulan dan tahun tersebut sudah ada."
}

func (e *DuplicateBillError) Is(target error) bool { return target == ErrDuplicateBill }

type PaymentExceedsBalanceError struct {
	TagihanID uuid.UUID
	NamaPos   string
	Maksimal  decimal.Decimal
	Diminta   decimal.Decimal
}

func (e *PaymentExceedsBalanceError) Error() string {
	return fmt.Sprintf("Pembayaran melebihi sisa tagihan untuk POS %s. Maksimal Rp %s",
		e.NamaPos, FormatRupiah(e.Maksimal))
}

func (e *PaymentExceedsBalanceError) Is(target error) bool {
	return target == ErrPaymentExceedsBalance
}
