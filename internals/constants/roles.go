package constants

import (
	"fmt"

	userModel "sekolahku_backend/internals/features/users/user/model"
)

// Template pesan error role
const (
	ErrOnlyAdminsCanAccess = "Hanya admin yang boleh mengakses fitur %s."
	ErrOnlyStaffCanAccess  = "Hanya petugas (staff/admin) yang boleh mengakses fitur %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AdminOnly = []string{
		userModel.RoleAdmin,
	}

	// admin juga boleh memakai jalur staff
	StaffAndAbove = []string{
		userModel.RoleStaff,
		userModel.RoleAdmin,
	}
)
