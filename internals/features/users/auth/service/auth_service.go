// Package service: login petugas (bcrypt) dan penerbitan/verifikasi JWT.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

var (
	ErrInvalidCredentials = errors.New("username/email atau password salah")
	ErrMissingSecret      = errors.New("JWT_SECRET belum diset")
	ErrInvalidToken       = errors.New("token tidak valid")
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	if s := strings.TrimSpace(configs.JWTSecret); s != "" {
		return s, nil
	}
	return "", ErrMissingSecret
}

func ttl() time.Duration {
	if configs.JWTTTL > 0 {
		return configs.JWTTTL
	}
	return 12 * time.Hour
}

/* ==========================
   Password
========================== */

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

/* ==========================
   Login
========================== */

// Authenticate mencari user berdasarkan username atau email lalu cek password.
func Authenticate(ctx context.Context, db *gorm.DB, identifier, password string) (*userModel.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	var u userModel.User
	err := db.WithContext(ctx).
		Where("user_username = ? OR LOWER(user_email) = ?", identifier, strings.ToLower(identifier)).
		Take(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := CheckPassword(u.UserPassword, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

/* ==========================
   JWT
========================== */

type Claims struct {
	UserID uuid.UUID
	Role   string
	Name   string
}

func buildAccessClaims(u userModel.User, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":  "access",
		"sub":  u.UserID.String(),
		"role": u.UserRole,
		"name": u.UserNama,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl()).Unix(),
	}
}

// IssueToken menandatangani access token HS256.
func IssueToken(u userModel.User) (string, time.Time, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return "", time.Time{}, err
	}
	now := nowUTC()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(u, now)).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tok, now.Add(ttl()), nil
}

// ParseToken memverifikasi tanda tangan & exp, lalu mengambil sub/role/name.
func ParseToken(raw string) (*Claims, error) {
	secret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}
	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if typ, _ := claims["typ"].(string); typ != "" && typ != "access" {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(strings.TrimSpace(sub))
	if err != nil {
		return nil, ErrInvalidToken
	}
	out := &Claims{UserID: id}
	out.Role, _ = claims["role"].(string)
	out.Name, _ = claims["name"].(string)
	return out, nil
}

/* ==========================
   Seeder admin awal
========================== */

type AdminSeed struct {
	Nama     string
	Username string
	Email    string
	Password string
}

// EnsureAdmin membuat admin pertama kalau belum ada admin sama sekali.
// true kalau user baru dibuat.
func EnsureAdmin(ctx context.Context, db *gorm.DB, in AdminSeed) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&userModel.User{}).
		Where("user_role = ?", userModel.RoleAdmin).
		Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	if in.Username == "" || in.Password == "" {
		return false, errors.New("ADMIN_USERNAME dan ADMIN_PASSWORD wajib diisi untuk membuat admin awal")
	}
	hash, err := HashPassword(in.Password)
	if err != nil {
		return false, err
	}
	u := userModel.User{
		UserNama:     in.Nama,
		UserUsername: in.Username,
		UserEmail:    strings.ToLower(in.Email),
		UserPassword: hash,
		UserRole:     userModel.RoleAdmin,
	}
	if u.UserNama == "" {
		u.UserNama = "Administrator"
	}
	if u.UserEmail == "" {
		u.UserEmail = in.Username + "@localhost"
	}
	if err := db.WithContext(ctx).Create(&u).Error; err != nil {
		return false, err
	}
	return true, nil
}
