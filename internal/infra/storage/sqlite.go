package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"trade_console/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Storage is the SQLite-backed key-value store and catalog cache.
type Storage struct {
	db *gorm.DB
}

// NewStorage opens (or creates) the database at path. An empty path
// resolves to the per-user config directory.
func NewStorage(path string) (*Storage, error) {
	dbPath := path
	if dbPath == "" {
		var err error
		dbPath, err = getDBPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve DB path: %w", err)
		}
	}

	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	// Connect to SQLite (Pure Go)
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return newStorage(db)
}

func newStorage(db *gorm.DB) (*Storage, error) {
	if err := db.AutoMigrate(&domain.AppConfig{}, &domain.CatalogRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return &Storage{db: db}, nil
}

// getDBPath resolves the database file path based on OS
func getDBPath() (string, error) {
	var configDir string
	var err error

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("LOCALAPPDATA")
		if configDir == "" {
			configDir, err = os.UserConfigDir()
		}
	} else {
		configDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "TradeConsole", "data", "console.db"), nil
}

// Close releases the underlying connection.
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ======================================================================================
// Key-value Operations
// ======================================================================================

// GetItem returns the value stored under key. Read failures are reported
// as a missing value.
func (s *Storage) GetItem(key string) (string, bool) {
	var entries []domain.AppConfig
	if err := s.db.Where(&domain.AppConfig{Key: key}).Limit(1).Find(&entries).Error; err != nil {
		slog.Warn("Failed to read stored item", slog.String("key", key), slog.Any("error", err))
		return "", false
	}
	if len(entries) == 0 {
		return "", false
	}
	return entries[0].Value, true
}

// SetItem stores value under key.
func (s *Storage) SetItem(key, value string) error {
	entry := domain.AppConfig{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	if err := s.db.Save(&entry).Error; err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// ======================================================================================
// Catalog Cache Operations
// ======================================================================================

// SaveCatalog replaces the cached catalog with groups, keeping their order.
func (s *Storage) SaveCatalog(groups []domain.MarketGroup) error {
	now := time.Now()
	records := make([]domain.CatalogRecord, 0, len(groups))
	for i, g := range groups {
		symbols, err := json.Marshal(g.Instruments)
		if err != nil {
			return err
		}
		closed, err := json.Marshal(g.Closed)
		if err != nil {
			return err
		}
		records = append(records, domain.CatalogRecord{
			MarketName: string(g.MarketName),
			Position:   i,
			Symbols:    string(symbols),
			Closed:     string(closed),
			UpdatedAt:  now,
		})
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.CatalogRecord{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&records).Error
	})
}

// LoadCatalog returns the cached catalog, or nil when nothing is cached.
func (s *Storage) LoadCatalog() ([]domain.MarketGroup, error) {
	var records []domain.CatalogRecord
	if err := s.db.Order("position").Find(&records).Error; err != nil {
		return nil, err
	}

	groups := make([]domain.MarketGroup, 0, len(records))
	for _, r := range records {
		g := domain.MarketGroup{MarketName: domain.Category(r.MarketName)}
		if err := json.Unmarshal([]byte(r.Symbols), &g.Instruments); err != nil {
			return nil, fmt.Errorf("cached catalog %s: %w", r.MarketName, err)
		}
		if r.Closed != "" && r.Closed != "null" {
			if err := json.Unmarshal([]byte(r.Closed), &g.Closed); err != nil {
				return nil, fmt.Errorf("cached catalog %s: %w", r.MarketName, err)
			}
		}
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return nil, nil
	}
	return groups, nil
}
