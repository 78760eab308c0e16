package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError mengubah error (biasanya *fiber.Error hasil Transaction)
// menjadi response JSON konsisten via JsonError.
// Jika bukan *fiber.Error, fallback ke 500 tanpa membocorkan pesan internal.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fields FieldErrors
	if errors.As(err, &fields) {
		return JsonValidationError(c, fields)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	return JsonError(c, fiber.StatusInternalServerError, "")
}

// FieldErrors: error validasi per field, dirender sebagai 422.
type FieldErrors map[string][]string

func (f FieldErrors) Error() string { return "validation failed" }

// ErrorHandler untuk fiber.Config.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
