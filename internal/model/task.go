package model

import "time"

// Task priority and status enum constants
const (
	TaskPriorityHigh   = "high"
	TaskPriorityMedium = "medium"
	TaskPriorityLow    = "low"

	TaskStatusComplete   = "complete"
	TaskStatusNeedReview = "need review"
	TaskStatusIncomplete = "incomplete"
)

// Task is a unit of case work, optionally assigned to one staff member.
// Tasks are hard-deleted only.
type Task struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TaskName      string    `gorm:"type:varchar(255);not null" json:"task_name"`
	DueDate       time.Time `gorm:"type:date;not null" json:"due_date"`
	Priority      string    `gorm:"type:varchar(10);not null" json:"priority"`
	Status        string    `gorm:"type:varchar(20);not null;default:'incomplete'" json:"status"`
	AssignToStaff *uint     `gorm:"index" json:"assign_to_staff"`
	CaseID        uint      `gorm:"not null;index" json:"case_id"`
	CreatedBy     uint      `gorm:"not null" json:"created_by"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
