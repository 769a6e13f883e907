package repository

import (
	"context"

	"gorm.io/gorm"

	"lawdesk/internal/model"
)

// ClientRepository is the data access surface for clients. Username/email
// lookups are unscoped for the same reason as users: uniqueness is checked
// against deleted rows too.
type ClientRepository interface {
	Create(ctx context.Context, client *model.Client) error
	FindByID(ctx context.Context, id uint) (*model.Client, error)
	FindActiveByID(ctx context.Context, id uint) (*model.Client, error)
	FindByUsername(ctx context.Context, username string) (*model.Client, error)
	FindByEmail(ctx context.Context, email string) (*model.Client, error)
	ListActive(ctx context.Context, page, limit int) ([]model.Client, int64, error)
	Update(ctx context.Context, client *model.Client) error
	SetDeleted(ctx context.Context, id uint, deleted bool) error
	Delete(ctx context.Context, id uint) error
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Create(client).Error
}

func (r *clientRepository) FindByID(ctx context.Context, id uint) (*model.Client, error) {
	var client model.Client
	if err := GetDB(ctx, r.db).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindActiveByID(ctx context.Context, id uint) (*model.Client, error) {
	var client model.Client
	err := GetDB(ctx, r.db).First(&client, "id = ? AND is_deleted = ?", id, false).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindByUsername(ctx context.Context, username string) (*model.Client, error) {
	var client model.Client
	if err := GetDB(ctx, r.db).First(&client, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindByEmail(ctx context.Context, email string) (*model.Client, error) {
	var client model.Client
	if err := GetDB(ctx, r.db).First(&client, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) ListActive(ctx context.Context, page, limit int) ([]model.Client, int64, error) {
	db := GetDB(ctx, r.db).Model(&model.Client{}).Where("is_deleted = ?", false)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []model.Client
	offset := (page - 1) * limit
	if err := db.Offset(offset).Limit(limit).Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

func (r *clientRepository) Update(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Save(client).Error
}

func (r *clientRepository) SetDeleted(ctx context.Context, id uint, deleted bool) error {
	return GetDB(ctx, r.db).Model(&model.Client{}).
		Where("id = ?", id).
		Update("is_deleted", deleted).Error
}

func (r *clientRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Delete(&model.Client{}, "id = ?", id).Error
}
