package user

import (
	"os"
	"path/filepath"
	"testing"

	"sekolahku_backend/internals/databases/testdb"
	"sekolahku_backend/internals/features/users/user/model"
)

func TestSeedUsersFromJSON(t *testing.T) {
	db := testdb.Open(t)
	testdb.User(t, db, "ada", model.RoleStaff)

	path := filepath.Join(t.TempDir(), "users.json")
	data := `[
		{"user_nama":"Kasir 1","user_username":"kasir1","user_email":"Kasir1@Sekolah.id","user_password":"kasir12345","user_role":"staff"},
		{"user_nama":"Ada","user_username":"ada","user_email":"ada2@sekolah.id","user_password":"x12345678"},
		{"user_nama":"Kepala","user_username":"kepala","user_email":"kepala@sekolah.id","user_password":"kepala1234","user_role":"ADMIN"}
	]`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := SeedUsersFromJSON(db, path); err != nil {
		t.Fatal(err)
	}

	var users []model.User
	db.Order("user_username").Find(&users)
	if len(users) != 3 {
		t.Fatalf("users = %d, want 3", len(users))
	}
	byName := map[string]model.User{}
	for _, u := range users {
		byName[u.UserUsername] = u
	}
	if byName["kasir1"].UserEmail != "kasir1@sekolah.id" || byName["kasir1"].UserRole != model.RoleStaff {
		t.Errorf("kasir1 = %+v", byName["kasir1"])
	}
	if !byName["kepala"].IsAdmin() {
		t.Errorf("kepala harus admin: %+v", byName["kepala"])
	}
	if byName["kasir1"].UserPassword == "kasir12345" {
		t.Error("password harus di-hash")
	}

	if err := SeedUsersFromJSON(db, filepath.Join(t.TempDir(), "tidak-ada.json")); err == nil {
		t.Error("file tidak ada harus error")
	}
}
