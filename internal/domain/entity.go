package domain

import (
	"time"
)

// AppConfig represents a persisted key-value entry (favorites, last viewed market)
type AppConfig struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CatalogRecord caches the last good market group snapshot for warm start
type CatalogRecord struct {
	Position   int       `gorm:"primaryKey;autoIncrement:false" json:"position"`
	MarketName string    `json:"market_name"`
	Symbols    string    `json:"symbols"` // JSON list
	Closed     string    `json:"closed"`  // JSON list
	UpdatedAt  time.Time `json:"updated_at"`
}
