package repository

import (
	"context"

	"gorm.io/gorm"

	"lawdesk/internal/model"
)

// DocumentRepository is the data access surface for case documents.
type DocumentRepository interface {
	Create(ctx context.Context, document *model.Document) error
	FindByID(ctx context.Context, id uint) (*model.Document, error)
	List(ctx context.Context, page, limit int) ([]model.Document, int64, error)
	Update(ctx context.Context, document *model.Document) error
	Delete(ctx context.Context, id uint) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, document *model.Document) error {
	return GetDB(ctx, r.db).Create(document).Error
}

func (r *documentRepository) FindByID(ctx context.Context, id uint) (*model.Document, error) {
	var document model.Document
	if err := GetDB(ctx, r.db).First(&document, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository) List(ctx context.Context, page, limit int) ([]model.Document, int64, error) {
	db := GetDB(ctx, r.db).Model(&model.Document{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var documents []model.Document
	offset := (page - 1) * limit
	if err := db.Offset(offset).Limit(limit).Find(&documents).Error; err != nil {
		return nil, 0, err
	}
	return documents, total, nil
}

func (r *documentRepository) Update(ctx context.Context, document *model.Document) error {
	return GetDB(ctx, r.db).Save(document).Error
}

func (r *documentRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Delete(&model.Document{}, "id = ?", id).Error
}
