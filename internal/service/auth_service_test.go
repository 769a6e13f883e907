package service

import (
	"context"
	"testing"
	"time"

	"lawdesk/internal/apperr"
	"lawdesk/internal/auth"
	"lawdesk/internal/model"
)

func newLoginFixture(t *testing.T) (*stubUserRepo, AuthService) {
	t.Helper()
	repo := newStubUserRepo()
	tokens := auth.NewTokenService(repo, []byte("test-secret"), time.Hour)
	return repo, NewAuthService(repo, tokens)
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password string, mutate func(*model.User)) *model.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user := model.User{
		Username:       username,
		Email:          username + "@example.com",
		Name:           username,
		HashedPassword: hashed,
		Role:           model.RoleLawyer,
	}
	if mutate != nil {
		mutate(&user)
	}
	return repo.add(user)
}

func TestLoginSuccess(t *testing.T) {
	repo, svc := newLoginFixture(t)
	seedUser(t, repo, "ana", "password1", nil)

	token, err := svc.Login(context.Background(), LoginRequest{Username: "ana", Password: "password1"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token.AccessToken == "" {
		t.Fatal("expected a token")
	}
	if token.TokenType != "Bearer" {
		t.Fatalf("unexpected token type: %s", token.TokenType)
	}
}

// All four failure modes must be indistinguishable so a caller cannot probe
// for which usernames exist.
func TestLoginFailuresCollapse(t *testing.T) {
	repo, svc := newLoginFixture(t)
	seedUser(t, repo, "ana", "password1", nil)
	seedUser(t, repo, "blocked", "password1", func(u *model.User) { u.IsBlocked = true })
	seedUser(t, repo, "gone", "password1", func(u *model.User) { u.IsDeleted = true })

	attempts := []LoginRequest{
		{Username: "nobody", Password: "password1"},
		{Username: "ana", Password: "wrong"},
		{Username: "blocked", Password: "password1"},
		{Username: "gone", Password: "password1"},
	}

	for _, req := range attempts {
		_, err := svc.Login(context.Background(), req)
		if err == nil {
			t.Fatalf("login %q must fail", req.Username)
		}
		if !apperr.Is(err, apperr.Unauthorized) {
			t.Fatalf("login %q: expected Unauthorized, got %v", req.Username, err)
		}
		if apperr.Key(err) != "INVALID_CREDENTIAL" {
			t.Fatalf("login %q: expected INVALID_CREDENTIAL, got %s", req.Username, apperr.Key(err))
		}
	}
}
