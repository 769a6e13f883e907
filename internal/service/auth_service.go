package service

import (
	"context"

	"lawdesk/internal/apperr"
	"lawdesk/internal/auth"
	"lawdesk/internal/repository"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthService authenticates credentials and issues access tokens.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) AuthService {
	return &authService{users: users, tokens: tokens}
}

// Login verifies username+password. Absent user, wrong password, blocked and
// soft-deleted all collapse to the same Unauthorized error so responses never
// reveal whether a username exists.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	invalid := apperr.New(apperr.Unauthorized, "INVALID_CREDENTIAL")

	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, invalid
	}
	if !auth.CheckPassword(req.Password, user.HashedPassword) {
		return nil, invalid
	}
	if user.IsBlocked || user.IsDeleted {
		return nil, invalid
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: token, TokenType: "Bearer"}, nil
}
