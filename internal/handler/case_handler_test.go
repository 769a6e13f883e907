package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lawdesk/internal/auth"
	"lawdesk/internal/middleware"
	"lawdesk/internal/model"
	"lawdesk/internal/service"
)

type stubCaseService struct {
	deleted []uint
}

func (s *stubCaseService) ListCases(context.Context, auth.Principal, int, int) ([]service.CaseResponse, int64, error) {
	return []service.CaseResponse{}, 0, nil
}

func (s *stubCaseService) GetCase(context.Context, auth.Principal, uint) (*service.CaseResponse, error) {
	return &service.CaseResponse{}, nil
}

func (s *stubCaseService) CreateCase(context.Context, auth.Principal, service.CreateCaseRequest) (*service.CaseResponse, error) {
	return &service.CaseResponse{}, nil
}

func (s *stubCaseService) UpdateCase(context.Context, uint, service.UpdateCaseRequest) (*service.CaseResponse, error) {
	return &service.CaseResponse{}, nil
}

func (s *stubCaseService) SoftDeleteCase(context.Context, uint) error { return nil }
func (s *stubCaseService) RestoreCase(context.Context, uint) error    { return nil }

func (s *stubCaseService) DeleteCase(_ context.Context, id uint) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type userDirectory struct {
	users map[uint]*model.User
}

func (d userDirectory) FindByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := d.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newCaseRouter(t *testing.T, svc service.CaseService, user *model.User) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenService(userDirectory{users: map[uint]*model.User{user.ID: user}}, []byte("test-secret"), time.Hour)
	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	router := gin.New()
	NewCaseHandler(svc).RegisterRoutes(router.Group("", middleware.Authenticate(tokens)))
	return router, token
}

func doRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestDeleteCaseAllowsLawyers(t *testing.T) {
	svc := &stubCaseService{}
	lawyer := &model.User{ID: 3, Username: "lena", Role: model.RoleLawyer}
	router, token := newCaseRouter(t, svc, lawyer)

	rec := doRequest(router, http.MethodDelete, "/cases/9", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("lawyer delete: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != 9 {
		t.Fatalf("delete must reach the service, got %v", svc.deleted)
	}
}

func TestDeleteCaseForbidsStaff(t *testing.T) {
	svc := &stubCaseService{}
	staff := &model.User{ID: 4, Username: "sam", Role: model.RoleStaff}
	router, token := newCaseRouter(t, svc, staff)

	rec := doRequest(router, http.MethodDelete, "/cases/9", token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("staff delete: expected 403, got %d", rec.Code)
	}
	if len(svc.deleted) != 0 {
		t.Fatal("forbidden delete must never reach the service")
	}
}

func TestCaseReadsAllowStaff(t *testing.T) {
	svc := &stubCaseService{}
	staff := &model.User{ID: 4, Username: "sam", Role: model.RoleStaff}
	router, token := newCaseRouter(t, svc, staff)

	for _, path := range []string{"/cases", "/cases/9"} {
		rec := doRequest(router, http.MethodGet, path, token)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s as staff: expected 200, got %d", path, rec.Code)
		}
	}
}
