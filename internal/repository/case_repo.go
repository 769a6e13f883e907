package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lawdesk/internal/model"
)

// CaseRepository is the data access surface for cases, including the
// case↔staff many-to-many assignment.
//
// The ForStaff variants implement scoped visibility: they only match cases the
// given staff member is assigned to, so an unassigned case behaves exactly
// like a missing one.
type CaseRepository interface {
	Create(ctx context.Context, c *model.Case) error
	FindByNumber(ctx context.Context, caseNumber string) (*model.Case, error)
	FindByID(ctx context.Context, id uint) (*model.Case, error)
	FindActiveByID(ctx context.Context, id uint) (*model.Case, error)
	FindActiveByIDForStaff(ctx context.Context, id, staffID uint) (*model.Case, error)
	ListActive(ctx context.Context, page, limit int) ([]model.Case, int64, error)
	ListActiveForStaff(ctx context.Context, staffID uint, page, limit int) ([]model.Case, int64, error)
	Update(ctx context.Context, c *model.Case) error
	ReplaceStaff(ctx context.Context, c *model.Case, staff []model.User) error
	SetDeleted(ctx context.Context, id uint, deleted bool) error
	Delete(ctx context.Context, id uint) error
}

type caseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &caseRepository{db: db}
}

func (r *caseRepository) preload(db *gorm.DB) *gorm.DB {
	return db.Preload("Client").Preload("Lawyer").Preload("StaffMembers")
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) error {
	return GetDB(ctx, r.db).Create(c).Error
}

func (r *caseRepository) FindByNumber(ctx context.Context, caseNumber string) (*model.Case, error) {
	var c model.Case
	if err := GetDB(ctx, r.db).First(&c, "case_number = ?", caseNumber).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) FindByID(ctx context.Context, id uint) (*model.Case, error) {
	var c model.Case
	if err := GetDB(ctx, r.db).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) FindActiveByID(ctx context.Context, id uint) (*model.Case, error) {
	var c model.Case
	err := r.preload(GetDB(ctx, r.db)).
		First(&c, "id = ? AND is_deleted = ?", id, false).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) FindActiveByIDForStaff(ctx context.Context, id, staffID uint) (*model.Case, error) {
	var c model.Case
	err := r.preload(GetDB(ctx, r.db)).
		Joins("JOIN case_staff_members csm ON csm.case_id = cases.id").
		Where("csm.user_id = ?", staffID).
		First(&c, "cases.id = ? AND cases.is_deleted = ?", id, false).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) ListActive(ctx context.Context, page, limit int) ([]model.Case, int64, error) {
	db := GetDB(ctx, r.db).Model(&model.Case{}).Where("is_deleted = ?", false)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cases []model.Case
	offset := (page - 1) * limit
	if err := r.preload(db).Offset(offset).Limit(limit).Find(&cases).Error; err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

func (r *caseRepository) ListActiveForStaff(ctx context.Context, staffID uint, page, limit int) ([]model.Case, int64, error) {
	db := GetDB(ctx, r.db).Model(&model.Case{}).
		Joins("JOIN case_staff_members csm ON csm.case_id = cases.id").
		Where("csm.user_id = ? AND cases.is_deleted = ?", staffID, false)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cases []model.Case
	offset := (page - 1) * limit
	if err := r.preload(db).Offset(offset).Limit(limit).Find(&cases).Error; err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

func (r *caseRepository) Update(ctx context.Context, c *model.Case) error {
	// Omit the association here; staff membership only changes through
	// ReplaceStaff so field updates cannot touch the assignment set.
	return GetDB(ctx, r.db).Omit("StaffMembers").Save(c).Error
}

// ReplaceStaff clears the current assignment set and applies the new one in a
// single association write. Callers validate the staff list first; by the time
// this runs the batch is known good.
func (r *caseRepository) ReplaceStaff(ctx context.Context, c *model.Case, staff []model.User) error {
	return GetDB(ctx, r.db).Model(c).Association("StaffMembers").Replace(staff)
}

func (r *caseRepository) SetDeleted(ctx context.Context, id uint, deleted bool) error {
	return GetDB(ctx, r.db).Model(&model.Case{}).
		Where("id = ?", id).
		Update("is_deleted", deleted).Error
}

func (r *caseRepository) Delete(ctx context.Context, id uint) error {
	// Select(Associations) removes the join rows along with the case.
	return GetDB(ctx, r.db).Select(clause.Associations).Delete(&model.Case{ID: id}).Error
}
