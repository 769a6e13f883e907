package auth

import (
	"testing"

	"lawdesk/internal/apperr"
	"lawdesk/internal/model"
)

func TestRequireRoleAllowed(t *testing.T) {
	p := Principal{ID: 1, Username: "ana", Role: model.RoleLawyer}
	if err := RequireRole(p, model.RoleAdmin, model.RoleLawyer); err != nil {
		t.Fatalf("expected lawyer to pass, got %v", err)
	}
}

func TestRequireRoleDenied(t *testing.T) {
	p := Principal{ID: 2, Username: "sam", Role: model.RoleStaff}
	err := RequireRole(p, model.RoleAdmin)
	if err == nil {
		t.Fatal("expected staff to be denied")
	}
	if !apperr.Is(err, apperr.Forbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	if apperr.Key(err) != "PERMISSION_DENIED" {
		t.Fatalf("unexpected key: %s", apperr.Key(err))
	}
}

func TestRequireRoleEmptyAllowedSet(t *testing.T) {
	p := Principal{ID: 3, Username: "root", Role: model.RoleAdmin}
	if err := RequireRole(p); err == nil {
		t.Fatal("empty allowed set must deny everyone")
	}
}
