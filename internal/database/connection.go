package database

import (
	"errors"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/thereayou/dmrooms/internal/models"
)

func (d *Database) Connect() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	// TranslateError maps unique and foreign key violations onto
	// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated, which the
	// repository methods turn into the chat package's typed errors.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}

	err = db.AutoMigrate(&models.User{}, &models.Room{}, &models.Directive{})
	if err != nil {
		return err
	}

	d.db = db

	return nil
}
