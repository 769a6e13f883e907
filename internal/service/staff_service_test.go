package service

import (
	"context"
	"errors"
	"testing"

	"lawdesk/internal/apperr"
	"lawdesk/internal/auth"
	"lawdesk/internal/model"
)

func newStaffFixture() (*stubUserRepo, StaffService) {
	repo := newStubUserRepo()
	return repo, NewStaffService(repo, stubTx{})
}

func validStaffReq(username string) CreateStaffRequest {
	return CreateStaffRequest{
		Username: username,
		Email:    username + "@example.com",
		Name:     "Staff " + username,
		Password: "longenough1",
	}
}

func TestCreateStaffHashesPassword(t *testing.T) {
	repo, svc := newStaffFixture()

	created, err := svc.CreateStaff(context.Background(), validStaffReq("sam"))
	if err != nil {
		t.Fatalf("CreateStaff returned error: %v", err)
	}
	if created.Role != string(model.RoleStaff) {
		t.Fatalf("role must be staff, got %s", created.Role)
	}

	stored, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("stored user missing: %v", err)
	}
	if stored.HashedPassword == "longenough1" {
		t.Fatal("password must be hashed at rest")
	}
	if !auth.CheckPassword("longenough1", stored.HashedPassword) {
		t.Fatal("stored hash must verify against the original password")
	}
}

func TestCreateStaffDuplicateUsernameIncludesDeleted(t *testing.T) {
	_, svc := newStaffFixture()
	ctx := context.Background()

	created, err := svc.CreateStaff(ctx, validStaffReq("sam"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.SoftDeleteStaff(ctx, created.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	// Deleted rows still hold their username.
	_, err = svc.CreateStaff(ctx, validStaffReq("sam"))
	if !apperr.Is(err, apperr.Duplicate) {
		t.Fatalf("expected Duplicate, got %v", err)
	}
	if apperr.Key(err) != "USERNAME_EXISTS" {
		t.Fatalf("got key %s", apperr.Key(err))
	}
}

func TestCreateStaffDuplicateEmail(t *testing.T) {
	_, svc := newStaffFixture()
	ctx := context.Background()

	if _, err := svc.CreateStaff(ctx, validStaffReq("sam")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	req := validStaffReq("other")
	req.Email = "sam@example.com"
	_, err := svc.CreateStaff(ctx, req)
	if apperr.Key(err) != "EMAIL_EXISTS" {
		t.Fatalf("expected EMAIL_EXISTS, got %v", err)
	}
}

func TestCreateStaffLookupFailurePropagates(t *testing.T) {
	repo, svc := newStaffFixture()
	repo.lookupErr = errors.New("connection reset by peer")

	// A failed uniqueness lookup is a storage error, not proof of absence.
	_, err := svc.CreateStaff(context.Background(), validStaffReq("sam"))
	if err == nil || apperr.Is(err, apperr.Duplicate) {
		t.Fatalf("lookup failure must propagate, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatal("no user may be created when the uniqueness check fails")
	}
}

func TestUpdateStaffPartial(t *testing.T) {
	_, svc := newStaffFixture()
	ctx := context.Background()

	created, err := svc.CreateStaff(ctx, validStaffReq("sam"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	name := "Renamed"
	updated, err := svc.UpdateStaff(ctx, created.ID, UpdateStaffRequest{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("name not updated: %s", updated.Name)
	}
	if updated.Email != created.Email {
		t.Fatalf("untouched field changed: %s", updated.Email)
	}
}

func TestBlockUnblockStaffToggles(t *testing.T) {
	_, svc := newStaffFixture()
	ctx := context.Background()

	created, err := svc.CreateStaff(ctx, validStaffReq("sam"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	blocked, err := svc.BlockUnblockStaff(ctx, created.ID)
	if err != nil {
		t.Fatalf("block failed: %v", err)
	}
	if !blocked.IsBlocked {
		t.Fatal("first toggle must block")
	}

	unblocked, err := svc.BlockUnblockStaff(ctx, created.ID)
	if err != nil {
		t.Fatalf("unblock failed: %v", err)
	}
	if unblocked.IsBlocked {
		t.Fatal("second toggle must unblock")
	}
}

func TestStaffLifecycleConflicts(t *testing.T) {
	_, svc := newStaffFixture()
	ctx := context.Background()

	created, err := svc.CreateStaff(ctx, validStaffReq("sam"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.RestoreStaff(ctx, created.ID); apperr.Key(err) != "STAFF_NOT_DELETED" {
		t.Fatalf("restore of active staff: got %v", err)
	}
	if err := svc.SoftDeleteStaff(ctx, created.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	if err := svc.SoftDeleteStaff(ctx, created.ID); apperr.Key(err) != "STAFF_ALREADY_DELETED" {
		t.Fatalf("double delete: got %v", err)
	}

	// Deleted staff disappear from active reads but restore still finds them.
	if _, err := svc.GetStaff(ctx, created.ID); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("deleted staff must read as NotFound, got %v", err)
	}
	if err := svc.RestoreStaff(ctx, created.ID); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if _, err := svc.GetStaff(ctx, created.ID); err != nil {
		t.Fatalf("restored staff must be readable: %v", err)
	}

	if err := svc.DeleteStaff(ctx, created.ID); err != nil {
		t.Fatalf("hard delete failed: %v", err)
	}
	if err := svc.RestoreStaff(ctx, created.ID); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("restore after hard delete: expected NotFound, got %v", err)
	}
}

func TestListStaffFiltersRoleAndDeleted(t *testing.T) {
	repo, svc := newStaffFixture()
	ctx := context.Background()

	repo.add(model.User{Username: "lawyer", Role: model.RoleLawyer})
	active, err := svc.CreateStaff(ctx, validStaffReq("active"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	gone, err := svc.CreateStaff(ctx, validStaffReq("gone"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.SoftDeleteStaff(ctx, gone.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	listed, total, err := svc.ListStaff(ctx, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(listed) != 1 || listed[0].ID != active.ID {
		t.Fatalf("expected only the active staff member, got %+v (total %d)", listed, total)
	}
}
