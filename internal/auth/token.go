package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lawdesk/internal/apperr"
	"lawdesk/internal/model"
)

// UserSource resolves a user id to the live record, including soft-deleted
// rows (the Token Service decides what a dead record means, not the store).
type UserSource interface {
	FindByID(ctx context.Context, id uint) (*model.User, error)
}

// accessClaims is the wire shape of an access token.
type accessClaims struct {
	UserID uint   `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed access tokens. Tokens are stateless:
// there is no revocation list, only the expiry embedded at issuance.
type TokenService struct {
	users  UserSource
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a TokenService around the given signing secret.
// The secret is fixed for the process lifetime; there is no rotation.
func NewTokenService(users UserSource, secret []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &TokenService{users: users, secret: secret, ttl: ttl}
}

// Issue signs a token for user with claims {id, role, sub=username, exp}.
func (s *TokenService) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify decodes and validates tokenString, then re-fetches the current user
// record and derives the Principal from the live row rather than the embedded
// claims. This is deliberately not a pure function: it costs one storage read
// per request so that a role change, block or soft-delete after issuance takes
// effect on the very next call.
func (s *TokenService) Verify(ctx context.Context, tokenString string) (Principal, error) {
	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, apperr.New(apperr.Unauthorized, "TOKEN_EXPIRED")
		}
		return Principal{}, apperr.New(apperr.Unauthorized, "UNAUTHORIZED")
	}
	if !token.Valid || claims.UserID == 0 || claims.Role == "" || claims.Subject == "" {
		return Principal{}, apperr.New(apperr.Unauthorized, "UNAUTHORIZED")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return Principal{}, apperr.New(apperr.Unauthorized, "UNAUTHORIZED")
	}
	if user.IsDeleted || user.IsBlocked {
		return Principal{}, apperr.New(apperr.Unauthorized, "UNAUTHORIZED")
	}

	return Principal{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}
