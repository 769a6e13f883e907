package auth

import (
	"lawdesk/internal/apperr"
	"lawdesk/internal/model"
)

// Principal is the authenticated identity derived from a verified token plus
// the live user record. It is never persisted and never trusted beyond the
// request it was derived for.
type Principal struct {
	ID       uint
	Username string
	Role     model.Role
}

// RequireRole is the single authorization predicate: pure, no I/O. It fails
// with Forbidden (distinct from Unauthorized) when the principal's role is not
// in the allowed set. Callers must invoke it before touching storage so that
// role violations cannot leak entity existence.
func RequireRole(p Principal, allowed ...model.Role) error {
	for _, role := range allowed {
		if p.Role == role {
			return nil
		}
	}
	return apperr.New(apperr.Forbidden, "PERMISSION_DENIED")
}
