package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	"sekolahku_backend/internals/databases/testdb"
	authService "sekolahku_backend/internals/features/users/auth/service"
	userModel "sekolahku_backend/internals/features/users/user/model"
	helper "sekolahku_backend/internals/helpers"
	"sekolahku_backend/views"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	old := configs.JWTSecret
	configs.JWTSecret, configs.JWTTTL = "route-test", time.Hour
	t.Cleanup(func() { configs.JWTSecret = old })

	db := testdb.Open(t)
	for _, u := range []struct{ username, role string }{{"admin", userModel.RoleAdmin}, {"kasir", userModel.RoleStaff}} {
		hash, err := authService.HashPassword(passwordTest)
		if err != nil {
			t.Fatal(err)
		}
		if err := db.Create(&userModel.User{
			UserNama: u.username, UserUsername: u.username, UserEmail: u.username + "@sekolah.id",
			UserPassword: hash, UserRole: u.role,
		}).Error; err != nil {
			t.Fatal(err)
		}
	}

	app := fiber.New(fiber.Config{Views: views.Engine(), ErrorHandler: helper.ErrorHandler})
	SetupRoutes(app, db)
	return app, db
}

func call(t *testing.T, app *fiber.App, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

const passwordTest = "password123"

func login(t *testing.T, app *fiber.App, id, password string) string {
	t.Helper()
	code, out := call(t, app, http.MethodPost, "/api/auth/login", "", `{"identifier":"`+id+`","password":"`+password+`"}`)
	if code != fiber.StatusOK {
		t.Fatalf("login %s = %d %v", id, code, out)
	}
	data, _ := out["data"].(map[string]any)
	tok, _ := data["access_token"].(string)
	if tok == "" {
		t.Fatalf("token kosong: %v", out)
	}
	return tok
}

func TestRoleGroups(t *testing.T) {
	app, _ := setup(t)
	admin := login(t, app, "admin", passwordTest)
	kasir := login(t, app, "kasir@sekolah.id", passwordTest)

	cases := []struct {
		name, method, path, token string
		want                      int
	}{
		{"tanpa token", http.MethodGet, "/api/s/pembayaran", "", fiber.StatusUnauthorized},
		{"token rusak", http.MethodGet, "/api/s/pembayaran", "abc.def.ghi", fiber.StatusUnauthorized},
		{"staff pembayaran", http.MethodGet, "/api/s/pembayaran", kasir, fiber.StatusOK},
		{"staff pos", http.MethodGet, "/api/s/pos", kasir, fiber.StatusOK},
		{"staff kelas", http.MethodGet, "/api/s/kelas", kasir, fiber.StatusOK},
		{"staff ke admin", http.MethodGet, "/api/a/users", kasir, fiber.StatusForbidden},
		{"staff laporan", http.MethodGet, "/api/a/laporan/data?jenis=pembayaran", kasir, fiber.StatusForbidden},
		{"admin users", http.MethodGet, "/api/a/users", admin, fiber.StatusOK},
		{"admin siswa", http.MethodGet, "/api/a/siswa", admin, fiber.StatusOK},
		{"admin laporan", http.MethodGet, "/api/a/laporan/data?jenis=tunggakan", admin, fiber.StatusOK},
		{"admin lewat staff", http.MethodGet, "/api/s/pembayaran", admin, fiber.StatusOK},
		{"me", http.MethodGet, "/api/auth/me", kasir, fiber.StatusOK},
		{"me tanpa token", http.MethodGet, "/api/auth/me", "", fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if code, out := call(t, app, tc.method, tc.path, tc.token, ""); code != tc.want {
				t.Errorf("%s %s = %d, want %d (%v)", tc.method, tc.path, code, tc.want, out)
			}
		})
	}
}

func TestLoginSalah(t *testing.T) {
	app, _ := setup(t)
	code, _ := call(t, app, http.MethodPost, "/api/auth/login", "", `{"identifier":"admin","password":"salah"}`)
	if code != fiber.StatusUnauthorized {
		t.Errorf("password salah = %d", code)
	}
	code, out := call(t, app, http.MethodPost, "/api/auth/login", "", `{"identifier":""}`)
	if code != fiber.StatusUnprocessableEntity {
		t.Errorf("body kosong = %d %v", code, out)
	}
}

func TestUserDihapusTokenDitolak(t *testing.T) {
	app, db := setup(t)
	kasir := login(t, app, "kasir", passwordTest)
	if err := db.Where("user_username = ?", "kasir").Delete(&userModel.User{}).Error; err != nil {
		t.Fatal(err)
	}
	if code, _ := call(t, app, http.MethodGet, "/api/s/pembayaran", kasir, ""); code != fiber.StatusUnauthorized {
		t.Errorf("user terhapus = %d", code)
	}
}

func TestAdminKelolaUser(t *testing.T) {
	app, _ := setup(t)
	admin := login(t, app, "admin", passwordTest)

	body := `{"user_nama":"Kasir 2","user_username":"kasir2","user_email":"kasir2@sekolah.id","user_password":"rahasia123","user_role":"staff"}`
	code, out := call(t, app, http.MethodPost, "/api/a/users", admin, body)
	if code != fiber.StatusCreated {
		t.Fatalf("create = %d %v", code, out)
	}
	data := out["data"].(map[string]any)
	if _, leaked := data["user_password"]; leaked {
		t.Error("password tidak boleh ikut di response")
	}
	id := data["user_id"].(string)

	if code, _ := call(t, app, http.MethodPost, "/api/a/users", admin, body); code != fiber.StatusConflict {
		t.Errorf("duplikat = %d", code)
	}
	login(t, app, "kasir2", "rahasia123")
	if code, _ := call(t, app, http.MethodPost, "/api/auth/login", "", `{"identifier":"kasir2","password":"`+passwordTest+`"}`); code != fiber.StatusUnauthorized {
		t.Errorf("login kasir2 dengan password lain = %d, want 401", code)
	}

	if code, out := call(t, app, http.MethodPut, "/api/a/users/"+id, admin, `{"user_role":"admin"}`); code != fiber.StatusOK {
		t.Errorf("update = %d %v", code, out)
	}
	if code, _ := call(t, app, http.MethodDelete, "/api/a/users/"+id, admin, ""); code != fiber.StatusOK {
		t.Errorf("delete = %d", code)
	}
}

func TestHealth(t *testing.T) {
	app, _ := setup(t)
	code, out := call(t, app, http.MethodGet, "/health", "", "")
	if code != fiber.StatusOK || out["database"] != "Connected" {
		t.Errorf("health = %d %v", code, out)
	}
}
