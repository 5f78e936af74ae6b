package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mnemo-go/internal/config"
	logging "mnemo-go/internal/logging"
)

// Blob is the single table a DBStore persists into: one row per collection.
type Blob struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string
	UpdatedAt time.Time
}

// DBStore is a Store backed by a relational database through GORM.
type DBStore struct {
	db *gorm.DB
}

// Open connects to the configured database and ensures the blobs table
// exists. The sqlite driver is the default and keeps everything in one local
// file; postgres matches shared deployments.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*DBStore, error) {
	gormLogger := logging.NewGormZapLogger(log)

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port)
		dialector = postgres.Open(dsn)
	case "sqlite", "":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("could not create data directory: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	log.Info("Database connection established successfully.",
		zap.String("driver", cfg.Driver))
	return &DBStore{db: db}, nil
}

func (s *DBStore) Get(key string) (string, bool, error) {
	var blob Blob
	err := s.db.First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return blob.Value, true, nil
}

func (s *DBStore) Set(key, value string) error {
	blob := Blob{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
}

func (s *DBStore) Delete(key string) error {
	return s.db.Delete(&Blob{}, "key = ?", key).Error
}
