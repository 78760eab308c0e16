package model

import (
	"testing"

	"github.com/google/uuid"
)

func TestUserBeforeCreate(t *testing.T) {
	u := &User{UserUsername: "kasir"}
	if err := u.BeforeCreate(nil); err != nil {
		t.Fatal(err)
	}
	if u.UserID == uuid.Nil {
		t.Error("user_id harus terisi")
	}
	if u.UserRole != RoleStaff || u.IsAdmin() {
		t.Errorf("role = %q, want staff", u.UserRole)
	}

	id := uuid.New()
	admin := &User{UserID: id, UserRole: RoleAdmin}
	if err := admin.BeforeCreate(nil); err != nil {
		t.Fatal(err)
	}
	if admin.UserID != id || !admin.IsAdmin() {
		t.Errorf("admin berubah: %+v", admin)
	}
}

func TestValidRole(t *testing.T) {
	for role, want := range map[string]bool{"admin": true, "staff": true, "": false, "guru": false} {
		if got := ValidRole(role); got != want {
			t.Errorf("ValidRole(%q) = %v", role, got)
		}
	}
}
