package models

import "testing"

func TestWordSubmissionStatusHelpers(t *testing.T) {
	tests := []struct {
		name         string
		status       string
		wantPending  bool
		wantApproved bool
		wantRejected bool
	}{
		{"pending status", StatusPending, true, false, false},
		{"approved status", StatusApproved, false, true, false},
		{"rejected status", StatusRejected, false, false, true},
		{"empty status", "", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &WordSubmission{Status: tt.status}
			if got := s.IsPending(); got != tt.wantPending {
				t.Errorf("IsPending() = %v, want %v", got, tt.wantPending)
			}
			if got := s.IsApproved(); got != tt.wantApproved {
				t.Errorf("IsApproved() = %v, want %v", got, tt.wantApproved)
			}
			if got := s.IsRejected(); got != tt.wantRejected {
				t.Errorf("IsRejected() = %v, want %v", got, tt.wantRejected)
			}
		})
	}
}

func TestStatusConstants(t *testing.T) {
	if StatusPending != "pending" {
		t.Errorf("StatusPending = %q, want %q", StatusPending, "pending")
	}
	if StatusApproved != "approved" {
		t.Errorf("StatusApproved = %q, want %q", StatusApproved, "approved")
	}
	if StatusRejected != "rejected" {
		t.Errorf("StatusRejected = %q, want %q", StatusRejected, "rejected")
	}
}

func TestUserRoleHelpers(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		isMod   bool
		isAdmin bool
	}{
		{"regular user", RoleUser, false, false},
		{"moderator", RoleModerator, true, false},
		{"admin", RoleAdmin, true, true},
		{"empty role", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			if got := u.IsModerator(); got != tt.isMod {
				t.Errorf("IsModerator() = %v, want %v", got, tt.isMod)
			}
			if got := u.IsAdmin(); got != tt.isAdmin {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.isAdmin)
			}
		})
	}
}
