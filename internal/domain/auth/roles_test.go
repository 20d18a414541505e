package auth

import "testing"

func TestAtLeastOrdering(t *testing.T) {
	if !AtLeast(RoleAdmin, RoleHR) {
		t.Fatal("admin should clear the hr threshold")
	}
	if !AtLeast(RoleHR, RoleHR) {
		t.Fatal("hr should clear its own threshold")
	}
	if AtLeast(RoleHOD, RoleHR) {
		t.Fatal("hod must not clear the hr threshold")
	}
	if !AtLeast(RoleHOD, RoleHOD) {
		t.Fatal("hod should clear the hod threshold")
	}
	if AtLeast(RoleStaff, RoleHOD) {
		t.Fatal("staff must not clear the hod threshold")
	}
}

func TestAtLeastUnknownRole(t *testing.T) {
	if AtLeast("superuser", RoleStaff) {
		t.Fatal("unknown role must never qualify")
	}
	if AtLeast(RoleAdmin, "superuser") {
		t.Fatal("unknown threshold must never be met")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleStaff, RoleHOD, RoleHR, RoleAdmin} {
		if !ValidRole(role) {
			t.Fatalf("expected %s to be valid", role)
		}
	}
	if ValidRole("manager") {
		t.Fatal("manager is not part of the role set")
	}
}
