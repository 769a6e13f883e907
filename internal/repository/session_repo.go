package repository

import (
	"context"

	"gorm.io/gorm"

	"lawdesk/internal/model"
)

// SessionRepository is the data access surface for court sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *model.CourtSession) error
	FindByID(ctx context.Context, id uint) (*model.CourtSession, error)
	List(ctx context.Context, page, limit int) ([]model.CourtSession, int64, error)
	Delete(ctx context.Context, id uint) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.CourtSession) error {
	return GetDB(ctx, r.db).Create(session).Error
}

func (r *sessionRepository) FindByID(ctx context.Context, id uint) (*model.CourtSession, error) {
	var session model.CourtSession
	err := GetDB(ctx, r.db).Preload("Case").First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) List(ctx context.Context, page, limit int) ([]model.CourtSession, int64, error) {
	db := GetDB(ctx, r.db).Model(&model.CourtSession{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []model.CourtSession
	offset := (page - 1) * limit
	if err := db.Preload("Case").Offset(offset).Limit(limit).Find(&sessions).Error; err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Delete(&model.CourtSession{}, "id = ?", id).Error
}
