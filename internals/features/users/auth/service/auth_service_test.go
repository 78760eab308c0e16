package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/databases/testdb"
	"sekolahku_backend/internals/features/users/auth/service"
	userModel "sekolahku_backend/internals/features/users/user/model"
)

func withSecret(t *testing.T) {
	t.Helper()
	old, oldTTL := configs.JWTSecret, configs.JWTTTL
	configs.JWTSecret, configs.JWTTTL = "test-secret", time.Hour
	t.Cleanup(func() { configs.JWTSecret, configs.JWTTTL = old, oldTTL })
}

func TestAuthenticate(t *testing.T) {
	db := testdb.Open(t)
	hash, err := service.HashPassword("rahasia123")
	if err != nil {
		t.Fatal(err)
	}
	u := userModel.User{UserNama: "Siti", UserUsername: "siti", UserEmail: "siti@sekolah.id", UserPassword: hash}
	if err := db.Create(&u).Error; err != nil {
		t.Fatal(err)
	}
	if u.UserRole != userModel.RoleStaff {
		t.Errorf("role default = %q", u.UserRole)
	}

	ctx := context.Background()
	for _, id := range []string{"siti", "SITI@sekolah.id", " siti "} {
		got, err := service.Authenticate(ctx, db, id, "rahasia123")
		if err != nil || got.UserID != u.UserID {
			t.Errorf("Authenticate(%q) = %v, %v", id, got, err)
		}
	}
	for _, tc := range []struct{ id, pw string }{
		{"siti", "salah"},
		{"budi", "rahasia123"},
		{"", "rahasia123"},
	} {
		if _, err := service.Authenticate(ctx, db, tc.id, tc.pw); !errors.Is(err, service.ErrInvalidCredentials) {
			t.Errorf("Authenticate(%q,%q) err = %v", tc.id, tc.pw, err)
		}
	}
}

func TestIssueAndParseToken(t *testing.T) {
	withSecret(t)
	u := testUser()
	tok, exp, err := service.IssueToken(u)
	if err != nil {
		t.Fatal(err)
	}
	if d := time.Until(exp); d < 59*time.Minute || d > time.Hour {
		t.Errorf("exp = %v", exp)
	}
	c, err := service.ParseToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	if c.UserID != u.UserID || c.Role != userModel.RoleAdmin || c.Name != "Admin" {
		t.Errorf("claims = %+v", c)
	}

	// secret lain
	configs.JWTSecret = "other"
	if _, err := service.ParseToken(tok); !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("secret beda: err = %v", err)
	}
	configs.JWTSecret = "test-secret"

	// kedaluwarsa
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": u.UserID.String(), "role": "admin", "exp": time.Now().Add(-time.Minute).Unix(),
	})
	raw, _ := expired.SignedString([]byte("test-secret"))
	if _, err := service.ParseToken(raw); !errors.Is(err, service.ErrInvalidToken) {
		t.Errorf("expired: err = %v", err)
	}

	// tanpa secret
	configs.JWTSecret = ""
	if _, _, err := service.IssueToken(u); !errors.Is(err, service.ErrMissingSecret) {
		t.Errorf("tanpa secret: err = %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	seed := service.AdminSeed{Username: "admin", Password: "admin12345"}

	created, err := service.EnsureAdmin(ctx, db, seed)
	if err != nil || !created {
		t.Fatalf("pertama: %v %v", created, err)
	}
	created, err = service.EnsureAdmin(ctx, db, seed)
	if err != nil || created {
		t.Fatalf("kedua harus no-op: %v %v", created, err)
	}
	u, err := service.Authenticate(ctx, db, "admin", "admin12345")
	if err != nil || !u.IsAdmin() {
		t.Fatalf("login admin seed: %v %v", u, err)
	}

	t.Run("tanpa kredensial", func(t *testing.T) {
		empty := testdb.Open(t)
		if _, err := service.EnsureAdmin(ctx, empty, service.AdminSeed{}); err == nil {
			t.Error("tanpa username/password harus error")
		}
	})
}

func testUser() userModel.User {
	u := userModel.User{UserNama: "Admin", UserUsername: "admin", UserRole: userModel.RoleAdmin}
	_ = u.BeforeCreate(nil)
	return u
}
