package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jhoncarter0815-dev/telegram-ai-bot/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.SubscriptionModel{}))
	return db
}

// forceLocalZone pins the process timezone for the duration of one test.
func forceLocalZone(t *testing.T, zone *time.Location) {
	t.Helper()
	restore := time.Local
	time.Local = zone
	t.Cleanup(func() { time.Local = restore })
}

func insertSubscription(t *testing.T, db *gorm.DB, userID int64, expiresAt time.Time, active bool) {
	t.Helper()
	now := time.Now()
	require.NoError(t, db.Create(&models.SubscriptionModel{
		UserID:     userID,
		Tier:       "monthly",
		StarsPaid:  100,
		StartedAt:  now.AddDate(0, -1, 0),
		ExpiresAt:  expiresAt,
		IsActive:   active,
		PaymentRef: fmt.Sprintf("ref-%d-%t", userID, active),
		CreatedAt:  now,
		UpdatedAt:  now,
	}).Error)
}

func TestFindExpiredActive_IgnoresFutureExpiryInNonUTCZone(t *testing.T) {
	// West of UTC the driver's zone-suffixed timestamp encoding sorts
	// after SQLite's UTC CURRENT_TIMESTAMP string, which once swept
	// still-valid subscriptions.
	forceLocalZone(t, time.FixedZone("UTC-5", -5*60*60))

	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)

	insertSubscription(t, db, 42, time.Now().Add(3*time.Hour), true)

	subs, err := repo.FindExpiredActive(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs, "subscription expiring 3h from now must not be swept")
}

func TestFindExpiredActive_ReturnsLapsedRows(t *testing.T) {
	forceLocalZone(t, time.FixedZone("UTC-5", -5*60*60))

	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)

	insertSubscription(t, db, 1, time.Now().Add(-time.Hour), true)
	insertSubscription(t, db, 2, time.Now().Add(3*time.Hour), true)
	insertSubscription(t, db, 3, time.Now().Add(-time.Hour), false)

	subs, err := repo.FindExpiredActive(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, int64(1), subs[0].UserID())
}

func TestGetLatestActiveByUserID_SeesExpiredActiveRow(t *testing.T) {
	// Lazy expiry depends on the resolver reading the stale row.
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)

	insertSubscription(t, db, 42, time.Now().Add(-time.Hour), true)

	sub, err := repo.GetLatestActiveByUserID(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, sub.IsActive())
	assert.True(t, sub.IsExpiredAt(time.Now()))
}
