package model

import "time"

// Client is a party the firm represents. Clients never authenticate and carry
// no password, but they share the block/soft-delete semantics of users.
type Client struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	MobileNumber  string    `gorm:"type:varchar(20);not null" json:"mobile_number"`
	Address       string    `gorm:"type:varchar(255)" json:"address"`
	VATPercentage string    `gorm:"type:varchar(20)" json:"vat_percentage"`
	VATNumber     string    `gorm:"type:varchar(50)" json:"vat_number"`
	CRNumber      string    `gorm:"type:varchar(50)" json:"cr_number"`
	IsBlocked     bool      `gorm:"not null;default:false" json:"is_blocked"`
	IsDeleted     bool      `gorm:"not null;default:false;index" json:"is_deleted"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Client) Deleted() bool { return c.IsDeleted }
