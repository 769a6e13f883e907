package model

import "time"

// CaseStatus enum constants
const (
	CaseStatusOpen   = "open"
	CaseStatusClosed = "closed"
)

// Case is a legal matter. LawyerID is the creating lawyer and is set once at
// creation. StaffMembers is the many-to-many assignment set; membership is
// validated at link time only and is not revisited when a staff member is
// later blocked or soft-deleted.
type Case struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CaseNumber   string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"case_number"`
	CaseName     string     `gorm:"type:varchar(255);not null" json:"case_name"`
	CaseCategory string     `gorm:"type:varchar(50);not null" json:"case_category"` // theft, fraud, divorce
	CaseStage    string     `gorm:"type:varchar(50);not null" json:"case_stage"`    // appeal, first degree
	CaseStatus   string     `gorm:"type:varchar(10);not null;default:'open'" json:"case_status"`
	IssueDate    *time.Time `json:"issue_date"`
	CityName     string     `gorm:"type:varchar(255)" json:"city_name"`
	Remarks      string     `gorm:"type:text" json:"remarks"`
	IsDeleted    bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	ClientID     uint       `gorm:"not null;index" json:"client_id"`
	Client       Client     `gorm:"foreignKey:ClientID" json:"client"`
	LawyerID     uint       `gorm:"not null;index" json:"lawyer_id"`
	Lawyer       User       `gorm:"foreignKey:LawyerID" json:"lawyer"`
	StaffMembers []User     `gorm:"many2many:case_staff_members;" json:"staff_members"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Case) Deleted() bool { return c.IsDeleted }
