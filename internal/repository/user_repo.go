package repository

import (
	"context"

	"gorm.io/gorm"

	"lawdesk/internal/model"
)

// UserRepository is the data access surface for users (admins, lawyers, staff).
//
// FindByID, FindByUsername and FindByEmail are deliberately unscoped: they see
// soft-deleted rows too. The Token Service needs the live record whatever its
// state, and uniqueness checks run against all rows including deleted ones, so
// a deleted user's username is never reusable.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ListActiveByRole(ctx context.Context, role model.Role, page, limit int) ([]model.User, int64, error)
	FindActiveByRole(ctx context.Context, id uint, role model.Role) (*model.User, error)
	FindAnyByRole(ctx context.Context, id uint, role model.Role) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	SetDeleted(ctx context.Context, id uint, deleted bool) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListActiveByRole(ctx context.Context, role model.Role, page, limit int) ([]model.User, int64, error) {
	db := GetDB(ctx, r.db).Model(&model.User{}).
		Where("role = ? AND is_deleted = ?", role, false)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	offset := (page - 1) * limit
	if err := db.Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *userRepository) FindActiveByRole(ctx context.Context, id uint, role model.Role) (*model.User, error) {
	var user model.User
	err := GetDB(ctx, r.db).
		First(&user, "id = ? AND role = ? AND is_deleted = ?", id, role, false).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindAnyByRole(ctx context.Context, id uint, role model.Role) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx, r.db).First(&user, "id = ? AND role = ?", id, role).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return GetDB(ctx, r.db).Save(user).Error
}

func (r *userRepository) SetDeleted(ctx context.Context, id uint, deleted bool) error {
	return GetDB(ctx, r.db).Model(&model.User{}).
		Where("id = ?", id).
		Update("is_deleted", deleted).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Delete(&model.User{}, "id = ?", id).Error
}
