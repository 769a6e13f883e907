package model

import "time"

// Document is a named artifact attached to a case. Only the name is stored;
// file contents live outside this system.
type Document struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DocumentName string    `gorm:"type:varchar(255);not null" json:"document_name"`
	UploadDate   time.Time `gorm:"type:date" json:"upload_date"`
	UploaderID   uint      `gorm:"not null" json:"uploader_id"`
	CaseID       uint      `gorm:"not null;index" json:"case_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
