// Package testutil provides an isolated SQLite-backed store for package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"runonstreet-backend/models"
	"runonstreet-backend/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewStore opens a private in-memory database, migrates every model and
// registers cleanup. The pool is pinned to a single connection so the
// in-memory database lives as long as the test.
func NewStore(t *testing.T) *store.Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := gorm.Open(sqlite.Open(dsn), store.GormConfig())
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return store.New(db)
}

// SeedOffers inserts offers in order and returns them with ids filled in.
func SeedOffers(t *testing.T, s *store.Store, offers ...models.Offer) []models.Offer {
	t.Helper()
	for i := range offers {
		if err := s.DB.Create(&offers[i]).Error; err != nil {
			t.Fatalf("Failed to seed offer %q: %v", offers[i].Title, err)
		}
	}
	return offers
}

// Offer builds an active offer at the given position.
func Offer(title string, lat, lng float64) models.Offer {
	return models.Offer{
		Title:                title,
		Category:             "food",
		City:                 "Paris",
		Latitude:             lat,
		Longitude:            lng,
		DurationLimitSeconds: 600,
		RewardDescription:    "free coffee",
		Active:               true,
	}
}
