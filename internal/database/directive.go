package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/thereayou/dmrooms/internal/chat"
	"github.com/thereayou/dmrooms/internal/models"
)

func (d *Database) CreateDirective(ctx context.Context, directive *models.Directive) error {
	err := d.db.WithContext(ctx).Create(directive).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		// Room or owner disappeared between validation and insert.
		return chat.ErrInvalidReference
	}
	if err != nil {
		return &chat.StorageError{Op: "create directive", Err: err}
	}
	return nil
}

func (d *Database) DirectiveByID(ctx context.Context, id uuid.UUID) (*models.Directive, error) {
	var directive models.Directive
	err := d.db.WithContext(ctx).First(&directive, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, chat.ErrDirectiveNotFound
	}
	if err != nil {
		return nil, &chat.StorageError{Op: "find directive", Err: err}
	}
	return &directive, nil
}

func (d *Database) SaveDirective(ctx context.Context, directive *models.Directive) error {
	if err := d.db.WithContext(ctx).Save(directive).Error; err != nil {
		return &chat.StorageError{Op: "save directive", Err: err}
	}
	return nil
}

// DirectivesByRoom reads the room's log oldest-first. With a limit it
// returns the most recent entries before the cursor, still in ascending
// order, so pagination walks the log backwards page by page.
func (d *Database) DirectivesByRoom(ctx context.Context, roomID uuid.UUID, limit int, before int64) ([]models.Directive, error) {
	query := d.db.WithContext(ctx).Where("room_id = ?", roomID)
	if before > 0 {
		query = query.Where("created < ?", before)
	}

	var directives []models.Directive
	if limit > 0 {
		err := query.Order("created DESC").Limit(limit).Find(&directives).Error
		if err != nil {
			return nil, &chat.StorageError{Op: "list room directives", Err: err}
		}
		for i, j := 0, len(directives)-1; i < j; i, j = i+1, j-1 {
			directives[i], directives[j] = directives[j], directives[i]
		}
		return directives, nil
	}

	if err := query.Order("created ASC").Find(&directives).Error; err != nil {
		return nil, &chat.StorageError{Op: "list room directives", Err: err}
	}
	return directives, nil
}

func (d *Database) DirectivesByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Directive, error) {
	var directives []models.Directive
	err := d.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created ASC").
		Find(&directives).Error
	if err != nil {
		return nil, &chat.StorageError{Op: "list owner directives", Err: err}
	}
	return directives, nil
}
