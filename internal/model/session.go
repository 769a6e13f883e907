package model

import "time"

// CourtSession records a single hearing outcome for a case.
type CourtSession struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CaseID      uint      `gorm:"not null;index" json:"case_id"`
	Case        Case      `gorm:"foreignKey:CaseID" json:"case"`
	Result      string    `gorm:"type:varchar(100);not null" json:"result"`
	SessionDate time.Time `gorm:"type:date;not null" json:"session_date"`
	CourtType   string    `gorm:"type:varchar(100);not null" json:"court_type"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
