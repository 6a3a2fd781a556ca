package database

import (
	"gorm.io/gorm"

	"github.com/thereayou/dmrooms/internal/chat"
)

// Database implements chat.Store on Postgres.
type Database struct {
	db *gorm.DB
}

var _ chat.Store = (*Database)(nil)

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}
