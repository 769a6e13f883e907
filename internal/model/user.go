package model

import (
	"time"
)

// Role is the closed set of roles a user can hold. Authorization decisions
// only ever compare against these constants, so an unknown role string can
// never silently pass a check.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleLawyer Role = "lawyer"
	RoleStaff  Role = "staff"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleLawyer || r == RoleStaff
}

// User covers every authenticating actor: admins, lawyers and staff members.
// IsBlocked and IsDeleted are independent flags: a blocked user still shows up
// in listings, a soft-deleted one does not, and neither can log in.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	Address        string    `gorm:"type:varchar(255)" json:"address"`
	Mobile         string    `gorm:"type:varchar(20)" json:"mobile"`
	HashedPassword string    `gorm:"type:varchar(255);not null" json:"-"`
	Role           Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	IsBlocked      bool      `gorm:"not null;default:false" json:"is_blocked"`
	IsDeleted      bool      `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) Deleted() bool { return u.IsDeleted }

// SoftDeletable is implemented by entities whose deletion is a reversible
// visibility flag rather than a row removal.
type SoftDeletable interface {
	Deleted() bool
}
