package dto

import (
	"strings"

	userModel "sekolahku_backend/internals/features/users/user/model"
)

type CreateUserRequest struct {
	UserNama     string `json:"user_nama" validate:"required,max=255"`
	UserUsername string `json:"user_username" validate:"required,min=3,max=50"`
	UserEmail    string `json:"user_email" validate:"required,email,max=255"`
	UserPassword string `json:"user_password" validate:"required,min=8"`
	UserRole     string `json:"user_role" validate:"required,oneof=admin staff"`
}

func (r *CreateUserRequest) Normalize() {
	r.UserNama = strings.TrimSpace(r.UserNama)
	r.UserUsername = strings.TrimSpace(r.UserUsername)
	r.UserEmail = strings.ToLower(strings.TrimSpace(r.UserEmail))
	r.UserRole = strings.ToLower(strings.TrimSpace(r.UserRole))
}

// ToModel: password diisi hash oleh controller.
func (r CreateUserRequest) ToModel(hash string) userModel.User {
	return userModel.User{
		UserNama:     r.UserNama,
		UserUsername: r.UserUsername,
		UserEmail:    r.UserEmail,
		UserPassword: hash,
		UserRole:     r.UserRole,
	}
}

// UpdateUserRequest: semua opsional; password kosong = tidak diubah.
type UpdateUserRequest struct {
	UserNama     *string `json:"user_nama" validate:"omitempty,max=255"`
	UserUsername *string `json:"user_username" validate:"omitempty,min=3,max=50"`
	UserEmail    *string `json:"user_email" validate:"omitempty,email,max=255"`
	UserPassword *string `json:"user_password" validate:"omitempty,min=8"`
	UserRole     *string `json:"user_role" validate:"omitempty,oneof=admin staff"`
}

func trimPtr(p *string, lower bool) {
	if p == nil {
		return
	}
	v := strings.TrimSpace(*p)
	if lower {
		v = strings.ToLower(v)
	}
	*p = v
}

func (r *UpdateUserRequest) Normalize() {
	trimPtr(r.UserNama, false)
	trimPtr(r.UserUsername, false)
	trimPtr(r.UserEmail, true)
	trimPtr(r.UserRole, true)
	if r.UserPassword != nil && *r.UserPassword == "" {
		r.UserPassword = nil
	}
}

func (r UpdateUserRequest) Apply(u *userModel.User) {
	if r.UserNama != nil {
		u.UserNama = *r.UserNama
	}
	if r.UserUsername != nil {
		u.UserUsername = *r.UserUsername
	}
	if r.UserEmail != nil {
		u.UserEmail = *r.UserEmail
	}
	if r.UserRole != nil {
		u.UserRole = *r.UserRole
	}
}
