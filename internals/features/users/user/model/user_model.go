package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User: petugas (admin/staff) yang login ke sistem.
type User struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	UserNama     string    `gorm:"column:user_nama;type:varchar(255);not null" json:"user_nama"`
	UserUsername string    `gorm:"column:user_username;type:varchar(50);not null;uniqueIndex:uq_users_username" json:"user_username"`
	UserEmail    string    `gorm:"column:user_email;type:varchar(255);not null;uniqueIndex:uq_users_email" json:"user_email"`
	UserPassword string    `gorm:"column:user_password;not null" json:"-"`
	UserRole     string    `gorm:"column:user_role;type:varchar(10);not null;default:'staff'" json:"user_role"`

	UserCreatedAt time.Time `gorm:"column:user_created_at;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time `gorm:"column:user_updated_at;not null;autoUpdateTime" json:"user_updated_at"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	if u.UserRole == "" {
		u.UserRole = RoleStaff
	}
	return nil
}

func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleStaff
}

func (u User) IsAdmin() bool { return u.UserRole == RoleAdmin }
