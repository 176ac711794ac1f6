package database

import (
	"fmt"
	"time"

	"github.com/vladimiradmaev/dm-webhook/internal/config"
	"github.com/vladimiradmaev/dm-webhook/internal/database/migrations"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Record is one per-user document: a named flat map of fields. Writes always
// merge single fields into the JSONB map, never replace the whole record.
type Record struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    int64             `gorm:"not null;uniqueIndex:idx_records_user_name"`
	Name      string            `gorm:"not null;uniqueIndex:idx_records_user_name"`
	Fields    datatypes.JSONMap `gorm:"type:jsonb"`
}

// EventCounter numbers same-day events of one category for one user. Rows
// are incremented atomically in the store, so concurrent webhook calls never
// hand out the same number. Categories that never reset use an empty DateKey.
type EventCounter struct {
	ID       uint   `gorm:"primaryKey"`
	UserID   int64  `gorm:"not null;uniqueIndex:idx_counters_user_cat_date"`
	Category string `gorm:"not null;uniqueIndex:idx_counters_user_cat_date"`
	DateKey  string `gorm:"not null;default:'';uniqueIndex:idx_counters_user_cat_date"`
	Value    int    `gorm:"not null;default:0"`
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&Record{}, &EventCounter{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}
