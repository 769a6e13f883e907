package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice bills a client for case work. InvoiceNumber is unique across all
// rows. Invoices are hard-deleted only.
type Invoice struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	InvoiceNumber int             `gorm:"uniqueIndex;not null" json:"invoice_number"`
	ClientID      uint            `gorm:"not null;index" json:"client_id"`
	Client        Client          `gorm:"foreignKey:ClientID" json:"client"`
	CreatedBy     uint            `gorm:"not null" json:"created_by"`
	Creator       User            `gorm:"foreignKey:CreatedBy" json:"creator"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	DueOnDate     time.Time       `gorm:"type:date;not null" json:"due_on_date"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
