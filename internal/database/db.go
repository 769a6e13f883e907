package database

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"lawdesk/internal/auth"
	"lawdesk/internal/model"
	"lawdesk/pkg/logger"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.Case{},
		&model.Task{},
		&model.Invoice{},
		&model.CourtSession{},
		&model.Document{},
	)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("auto-migrate failed")
	}

	return db, nil
}

// SeedAdmin creates the bootstrap admin account if no user holds that
// username yet. Runs once at startup so a fresh database is immediately
// usable.
func SeedAdmin(ctx context.Context, db *gorm.DB, username, email, password string) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Username:       username,
		Email:          email,
		Name:           "Administrator",
		HashedPassword: hashed,
		Role:           model.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return err
	}
	logger.Get().Info().Str("username", username).Msg("seeded admin account")
	return nil
}
