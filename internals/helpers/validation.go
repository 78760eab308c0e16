package helper

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator dipakai bersama; nama field diambil dari tag json.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// ValidateStruct mengembalikan nil kalau valid, atau map field -> pesan.
func ValidateStruct(v any) map[string][]string {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	return ValidationErrorsMap(err)
}

func ValidationErrorsMap(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fe := range ve {
		field := fe.Field()
		out[field] = append(out[field], messageFor(fe))
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "wajib diisi"
	case "min":
		return "minimal " + fe.Param()
	case "max":
		return "maksimal " + fe.Param()
	case "len":
		return "panjang harus " + fe.Param()
	case "oneof":
		return "harus salah satu dari: " + fe.Param()
	case "email":
		return "format email tidak valid"
	case "uuid", "uuid4":
		return "format uuid tidak valid"
	case "gt":
		return "harus lebih besar dari " + fe.Param()
	case "gte":
		return "minimal " + fe.Param()
	case "lte":
		return "maksimal " + fe.Param()
	case "numeric":
		return "harus berupa angka"
	case "dive":
		return "item tidak valid"
	default:
		return "tidak valid (" + fe.Tag() + ")"
	}
}
