package types

import "testing"

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		role string
		min  string
		want bool
	}{
		{RoleOwner, RoleOwner, true},
		{RoleOwner, RoleViewer, true},
		{RoleCoGM, RoleOwner, false},
		{RoleCoGM, RoleCoGM, true},
		{RoleViewer, RoleCoGM, false},
		{RoleViewer, RoleViewer, true},
		{"", RoleViewer, false},
		{"stranger", RoleViewer, false},
	}
	for _, tc := range cases {
		if got := RoleAtLeast(tc.role, tc.min); got != tc.want {
			t.Errorf("RoleAtLeast(%q, %q) = %v, want %v", tc.role, tc.min, got, tc.want)
		}
	}
}

func TestIsAssignableRole(t *testing.T) {
	if IsAssignableRole(RoleOwner) {
		t.Error("owner must not be assignable")
	}
	if !IsAssignableRole(RoleCoGM) || !IsAssignableRole(RoleViewer) {
		t.Error("co-gm and viewer must be assignable")
	}
	if IsAssignableRole("gm") {
		t.Error("directory role leaked into campaign roles")
	}
}

func TestIsValidJobStatus(t *testing.T) {
	for _, s := range ValidJobStatuses {
		if !IsValidJobStatus(s) {
			t.Errorf("IsValidJobStatus(%q) = false", s)
		}
	}
	if IsValidJobStatus("cancelled") {
		t.Error("unknown status accepted")
	}
}
