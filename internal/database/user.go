package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thereayou/dmrooms/internal/chat"
	"github.com/thereayou/dmrooms/internal/models"
)

func (d *Database) SaveUser(ctx context.Context, user *models.User) error {
	err := d.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return chat.ErrDuplicateUser
	}
	if err != nil {
		return &chat.StorageError{Op: "create user", Err: err}
	}
	return nil
}

func (d *Database) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chat.ErrUserNotFound
	}
	if err != nil {
		return nil, &chat.StorageError{Op: "find user", Err: err}
	}
	return &user, nil
}

func (d *Database) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := d.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chat.ErrUserNotFound
	}
	if err != nil {
		return nil, &chat.StorageError{Op: "find user", Err: err}
	}
	return &user, nil
}

func (d *Database) UpdateLastSeen(ctx context.Context, id uuid.UUID) error {
	err := d.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_seen_at", time.Now()).Error
	if err != nil {
		return &chat.StorageError{Op: "update last seen", Err: err}
	}
	return nil
}
