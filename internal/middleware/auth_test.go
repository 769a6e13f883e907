package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lawdesk/internal/auth"
	"lawdesk/internal/model"
)

type stubUsers struct {
	users map[uint]*model.User
}

func (s *stubUsers) FindByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := s.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestRouter(t *testing.T, user *model.User, allowed ...model.Role) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenService(&stubUsers{users: map[uint]*model.User{user.ID: user}}, []byte("test-secret"), time.Hour)
	token, err := tokens.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	router := gin.New()
	group := router.Group("", Authenticate(tokens))
	group.GET("/protected", RequireRole(allowed...), func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": p.ID})
	})
	return router, token
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticateAcceptsValidToken(t *testing.T) {
	user := &model.User{ID: 5, Username: "ana", Role: model.RoleAdmin}
	router, token := newTestRouter(t, user, model.RoleAdmin)

	rec := request(router, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthenticateRejectsMissingOrMalformedHeader(t *testing.T) {
	user := &model.User{ID: 5, Username: "ana", Role: model.RoleAdmin}
	router, token := newTestRouter(t, user, model.RoleAdmin)

	for _, header := range []string{"", "Basic abc", token, "Bearer"} {
		rec := request(router, header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestRequireRoleReturns403AfterAuth(t *testing.T) {
	user := &model.User{ID: 5, Username: "sam", Role: model.RoleStaff}
	router, token := newTestRouter(t, user, model.RoleAdmin)

	// Valid credential, wrong role: Forbidden, not Unauthorized.
	rec := request(router, "Bearer "+token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuthenticateRejectsBlockedUserLive(t *testing.T) {
	user := &model.User{ID: 5, Username: "ana", Role: model.RoleAdmin}
	router, token := newTestRouter(t, user, model.RoleAdmin)

	// Block after issuance; the same token must stop working.
	user.IsBlocked = true
	rec := request(router, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for blocked user, got %d", rec.Code)
	}
}
