package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Settings holds the connection parameters for the relational store.
type Settings struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

// Open connects to Postgres and returns the handle. The handle is threaded
// explicitly into repositories; there is no package-level connection.
// TranslateError is enabled so unique violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
func Open(s Settings) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		s.Host, s.User, s.Password, s.Name, s.Port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}
