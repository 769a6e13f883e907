package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"lawdesk/internal/model"
)

type CaseCounts struct {
	Total  int64 `json:"total"`
	Open   int64 `json:"open"`
	Closed int64 `json:"closed"`
	New30d int64 `json:"new_30d"`
}

type TaskCounts struct {
	Total      int64 `json:"total"`
	Incomplete int64 `json:"incomplete"`
	NeedReview int64 `json:"need_review"`
	Complete   int64 `json:"complete"`
	Overdue    int64 `json:"overdue"`
}

type InvoiceTotals struct {
	Count       int64           `json:"count"`
	TotalBilled decimal.Decimal `json:"total_billed"`
	OverdueSum  decimal.Decimal `json:"overdue_sum"`
}

type DashboardResponse struct {
	Cases            CaseCounts    `json:"cases"`
	Tasks            TaskCounts    `json:"tasks"`
	Invoices         InvoiceTotals `json:"invoices"`
	ActiveClients    int64         `json:"active_clients"`
	ActiveLawyers    int64         `json:"active_lawyers"`
	ActiveStaff      int64         `json:"active_staff"`
	UpcomingSessions int64         `json:"upcoming_sessions"`
}

type DashboardService interface {
	GetDashboard(ctx context.Context) (*DashboardResponse, error)
}

// dashboardService aggregates straight off the database; the numbers are
// read-only summaries so it bypasses the repositories.
type dashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) DashboardService {
	return &dashboardService{db: db}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*DashboardResponse, error) {
	var response DashboardResponse
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	since := today.AddDate(0, 0, -30)

	db := s.db.WithContext(ctx)

	counts := []struct {
		target *int64
		query  *gorm.DB
	}{
		{&response.Cases.Total, db.Model(&model.Case{}).Where("is_deleted = ?", false)},
		{&response.Cases.Open, db.Model(&model.Case{}).Where("is_deleted = ? AND case_status = ?", false, model.CaseStatusOpen)},
		{&response.Cases.Closed, db.Model(&model.Case{}).Where("is_deleted = ? AND case_status = ?", false, model.CaseStatusClosed)},
		{&response.Cases.New30d, db.Model(&model.Case{}).Where("is_deleted = ? AND created_at >= ?", false, since)},
		{&response.Tasks.Total, db.Model(&model.Task{})},
		{&response.Tasks.Incomplete, db.Model(&model.Task{}).Where("status = ?", model.TaskStatusIncomplete)},
		{&response.Tasks.NeedReview, db.Model(&model.Task{}).Where("status = ?", model.TaskStatusNeedReview)},
		{&response.Tasks.Complete, db.Model(&model.Task{}).Where("status = ?", model.TaskStatusComplete)},
		{&response.Tasks.Overdue, db.Model(&model.Task{}).Where("status <> ? AND due_date < ?", model.TaskStatusComplete, today)},
		{&response.ActiveClients, db.Model(&model.Client{}).Where("is_deleted = ?", false)},
		{&response.ActiveLawyers, db.Model(&model.User{}).Where("is_deleted = ? AND role = ?", false, model.RoleLawyer)},
		{&response.ActiveStaff, db.Model(&model.User{}).Where("is_deleted = ? AND role = ?", false, model.RoleStaff)},
		{&response.UpcomingSessions, db.Model(&model.CourtSession{}).Where("session_date >= ?", today)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.target).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Model(&model.Invoice{}).Count(&response.Invoices.Count).Error; err != nil {
		return nil, err
	}
	var billed struct {
		Value decimal.Decimal
	}
	if err := db.Model(&model.Invoice{}).
		Select("COALESCE(SUM(amount), 0) as value").
		Scan(&billed).Error; err != nil {
		return nil, err
	}
	response.Invoices.TotalBilled = billed.Value

	var overdue struct {
		Value decimal.Decimal
	}
	if err := db.Model(&model.Invoice{}).
		Select("COALESCE(SUM(amount), 0) as value").
		Where("due_on_date < ?", today).
		Scan(&overdue).Error; err != nil {
		return nil, err
	}
	response.Invoices.OverdueSum = overdue.Value

	return &response, nil
}
