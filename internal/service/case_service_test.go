package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lawdesk/internal/apperr"
	"lawdesk/internal/auth"
	"lawdesk/internal/model"
)

type caseFixture struct {
	users   *stubUserRepo
	clients *stubClientRepo
	cases   *stubCaseRepo
	svc     CaseService
}

func newCaseFixture() *caseFixture {
	users := newStubUserRepo()
	clients := newStubClientRepo()
	cases := newStubCaseRepo(users, clients)
	return &caseFixture{
		users:   users,
		clients: clients,
		cases:   cases,
		svc:     NewCaseService(cases, clients, users, stubTx{}, nil),
	}
}

func (f *caseFixture) lawyer() auth.Principal {
	u := f.users.add(model.User{Username: "lawyer", Role: model.RoleLawyer})
	return auth.Principal{ID: u.ID, Username: u.Username, Role: u.Role}
}

func (f *caseFixture) staffUser(username string) *model.User {
	return f.users.add(model.User{Username: username, Name: username, Role: model.RoleStaff})
}

func (f *caseFixture) client() *model.Client {
	return f.clients.add(model.Client{Username: "client", Name: "Client"})
}

func createReq(clientID uint, staffIDs ...uint) CreateCaseRequest {
	return CreateCaseRequest{
		CaseNumber:   "C-1001",
		CaseName:     "State v. Doe",
		CaseCategory: "fraud",
		CaseStage:    "first degree",
		ClientID:     clientID,
		StaffIDs:     staffIDs,
	}
}

func TestCreateCase(t *testing.T) {
	f := newCaseFixture()
	lawyer := f.lawyer()
	client := f.client()
	staff := f.staffUser("paralegal")

	created, err := f.svc.CreateCase(context.Background(), lawyer, createReq(client.ID, staff.ID))
	if err != nil {
		t.Fatalf("CreateCase returned error: %v", err)
	}
	if created.CaseStatus != model.CaseStatusOpen {
		t.Fatalf("new case must open as %q, got %q", model.CaseStatusOpen, created.CaseStatus)
	}
	if created.Lawyer.ID != lawyer.ID {
		t.Fatalf("case must be owned by the creating lawyer, got %d", created.Lawyer.ID)
	}
	if created.Client.ID != client.ID {
		t.Fatalf("case must reference its client, got %d", created.Client.ID)
	}
	if len(created.StaffMembers) != 1 || created.StaffMembers[0].ID != staff.ID {
		t.Fatalf("unexpected staff assignment: %+v", created.StaffMembers)
	}
}

func TestCreateCaseDuplicateNumber(t *testing.T) {
	f := newCaseFixture()
	lawyer := f.lawyer()
	client := f.client()

	if _, err := f.svc.CreateCase(context.Background(), lawyer, createReq(client.ID)); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	_, err := f.svc.CreateCase(context.Background(), lawyer, createReq(client.ID))
	if !apperr.Is(err, apperr.Duplicate) {
		t.Fatalf("expected Duplicate, got %v", err)
	}
	if apperr.Key(err) != "CASE_NUM_EXISTS" {
		t.Fatalf("got key %s", apperr.Key(err))
	}
}

func TestCreateCaseDuplicateNumberIncludesDeleted(t *testing.T) {
	f := newCaseFixture()
	lawyer := f.lawyer()
	client := f.client()

	created, err := f.svc.CreateCase(context.Background(), lawyer, createReq(client.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := f.svc.SoftDeleteCase(context.Background(), created.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}

	// The number stays reserved even though the holder is soft-deleted.
	_, err = f.svc.CreateCase(context.Background(), lawyer, createReq(client.ID))
	if !apperr.Is(err, apperr.Duplicate) {
		t.Fatalf("expected Duplicate, got %v", err)
	}
}

func TestCreateCaseRejectsBadStaffBatch(t *testing.T) {
	f := newCaseFixture()
	lawyer := f.lawyer()
	client := f.client()
	good := f.staffUser("good")
	deleted := f.staffUser("deleted")
	f.users.users[deleted.ID].IsDeleted = true
	notStaff := f.users.add(model.User{Username: "other-lawyer", Role: model.RoleLawyer})

	cases := []struct {
		name string
		ids  []uint
	}{
		{"unknown id", []uint{good.ID, 999}},
		{"soft-deleted staff", []uint{good.ID, deleted.ID}},
		{"wrong role", []uint{good.ID, notStaff.ID}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateCase(context.Background(), lawyer, createReq(client.ID, tc.ids...))
			if !apperr.Is(err, apperr.NotFound) {
				t.Fatalf("expected NotFound, got %v", err)
			}
			if apperr.Key(err) != "STAFF_NOT_FOUND" {
				t.Fatalf("got key %s", apperr.Key(err))
			}
			// All-or-nothing: the case must not exist.
			if _, ferr := f.cases.FindByNumber(context.Background(), "C-1001"); ferr == nil {
				t.Fatal("case must not be created when the staff batch fails")
			}
		})
	}
}

func TestCreateCaseNumberLookupFailurePropagates(t *testing.T) {
	f := newCaseFixture()
	lawyer := f.lawyer()
	client := f.client()
	f.cases.numberErr = errors.New("connection reset by peer")

	// A failed uniqueness lookup is a storage error, not proof of absence.
	_, err := f.svc.CreateCase(context.Background(), lawyer, createReq(client.ID))
	if err == nil || apperr.Is(err, apperr.Duplicate) {
		t.Fatalf("lookup failure must propagate, got %v", err)
	}
	if len(f.cases.cases) != 0 {
		t.Fatal("no case may be created when the uniqueness check fails")
	}
}

func TestCreateCaseMissingClient(t *testing.T) {
	f := newCaseFixture()
	lawyer := f.lawyer()

	_, err := f.svc.CreateCase(context.Background(), lawyer, createReq(42))
	if !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if apperr.Key(err) != "CLIENT_NOT_FOUND" {
		t.Fatalf("got key %s", apperr.Key(err))
	}
}

func TestStaffScopedVisibility(t *testing.T) {
	f := newCaseFixture()
	lawyer := f.lawyer()
	client := f.client()
	assigned := f.staffUser("assigned")
	outsider := f.staffUser("outsider")

	created, err := f.svc.CreateCase(context.Background(), lawyer, createReq(client.ID, assigned.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	assignedP := auth.Principal{ID: assigned.ID, Role: model.RoleStaff}
	outsiderP := auth.Principal{ID: outsider.ID, Role: model.RoleStaff}

	if _, err := f.svc.GetCase(context.Background(), assignedP, created.ID); err != nil {
		t.Fatalf("assigned staff must see the case: %v", err)
	}

	// Unassigned staff get NotFound, never Forbidden: the case's existence
	// must not leak.
	_, err = f.svc.GetCase(context.Background(), outsiderP, created.ID)
	if !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound for outsider, got %v", err)
	}

	visible, total, err := f.svc.ListCases(context.Background(), outsiderP, 1, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 || len(visible) != 0 {
		t.Fatalf("outsider must see an empty list, got %d/%d", len(visible), total)
	}

	if _, err := f.svc.GetCase(context.Background(), lawyer, created.ID); err != nil {
		t.Fatalf("lawyer must see the case: %v", err)
	}
}

func TestUpdateCaseReplacesStaffSet(t *testing.T) {
	f := newCaseFixture()
	lawyer := f.lawyer()
	client := f.client()
	first := f.staffUser("first")
	second := f.staffUser("second")
	third := f.staffUser("third")

	created, err := f.svc.CreateCase(context.Background(), lawyer, createReq(client.ID, first.ID, second.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newSet := []uint{third.ID}
	updated, err := f.svc.UpdateCase(context.Background(), created.ID, UpdateCaseRequest{StaffIDs: &newSet})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.StaffMembers) != 1 || updated.StaffMembers[0].ID != third.ID {
		t.Fatalf("replace must discard the old set, got %+v", updated.StaffMembers)
	}

	// Empty-but-present clears every assignment.
	empty := []uint{}
	updated, err = f.svc.UpdateCase(context.Background(), created.ID, UpdateCaseRequest{StaffIDs: &empty})
	if err != nil {
		t.Fatalf("clearing update failed: %v", err)
	}
	if len(updated.StaffMembers) != 0 {
		t.Fatalf("empty set must clear assignments, got %+v", updated.StaffMembers)
	}
}

func TestUpdateCaseBadStaffBatchKeepsOldSet(t *testing.T) {
	f := newCaseFixture()
	lawyer := f.lawyer()
	client := f.client()
	first := f.staffUser("first")

	created, err := f.svc.CreateCase(context.Background(), lawyer, createReq(client.ID, first.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	bad := []uint{first.ID, 999}
	_, err = f.svc.UpdateCase(context.Background(), created.ID, UpdateCaseRequest{StaffIDs: &bad})
	if !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "999") {
		t.Fatalf("error must name the offending id, got %q", err.Error())
	}

	current, err := f.svc.GetCase(context.Background(), lawyer, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(current.StaffMembers) != 1 || current.StaffMembers[0].ID != first.ID {
		t.Fatalf("failed replace must leave the old set intact, got %+v", current.StaffMembers)
	}
}

func TestUpdateCasePartialFields(t *testing.T) {
	f := newCaseFixture()
	lawyer := f.lawyer()
	client := f.client()

	created, err := f.svc.CreateCase(context.Background(), lawyer, createReq(client.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	closed := model.CaseStatusClosed
	updated, err := f.svc.UpdateCase(context.Background(), created.ID, UpdateCaseRequest{CaseStatus: &closed})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.CaseStatus != model.CaseStatusClosed {
		t.Fatalf("status not updated: %s", updated.CaseStatus)
	}
	if updated.CaseName != created.CaseName {
		t.Fatalf("untouched field changed: %s", updated.CaseName)
	}
}

func TestCaseLifecycle(t *testing.T) {
	f := newCaseFixture()
	lawyer := f.lawyer()
	client := f.client()

	created, err := f.svc.CreateCase(context.Background(), lawyer, createReq(client.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	ctx := context.Background()

	// Restore before delete is a conflict.
	if err := f.svc.RestoreCase(ctx, created.ID); !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("restore of active case: expected Conflict, got %v", err)
	}

	if err := f.svc.SoftDeleteCase(ctx, created.ID); err != nil {
		t.Fatalf("soft delete failed: %v", err)
	}
	// Deleted cases vanish from scoped reads.
	if _, err := f.svc.GetCase(ctx, lawyer, created.ID); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("deleted case must read as NotFound, got %v", err)
	}
	// Double delete is a conflict.
	if err := f.svc.SoftDeleteCase(ctx, created.ID); !apperr.Is(err, apperr.Conflict) {
		t.Fatalf("double delete: expected Conflict, got %v", err)
	}
	if apperr.Key(f.svc.SoftDeleteCase(ctx, created.ID)) != "CASE_ALREADY_DELETED" {
		t.Fatal("double delete must carry CASE_ALREADY_DELETED")
	}

	if err := f.svc.RestoreCase(ctx, created.ID); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if _, err := f.svc.GetCase(ctx, lawyer, created.ID); err != nil {
		t.Fatalf("restored case must be readable: %v", err)
	}

	if err := f.svc.DeleteCase(ctx, created.ID); err != nil {
		t.Fatalf("hard delete failed: %v", err)
	}
	if err := f.svc.DeleteCase(ctx, created.ID); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("second hard delete: expected NotFound, got %v", err)
	}
}

func TestCaseLifecycleMissingEntity(t *testing.T) {
	f := newCaseFixture()
	ctx := context.Background()

	if err := f.svc.SoftDeleteCase(ctx, 77); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if err := f.svc.RestoreCase(ctx, 77); !apperr.Is(err, apperr.NotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}
