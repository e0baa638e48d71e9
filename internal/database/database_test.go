package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.Nop()
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	// A single connection keeps the in-memory database shared across queries.
	db.SetMaxOpenConns(1)
	return db
}

var baseTime = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func createTestUser(t *testing.T, db *DB, name, email string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, CreatedAt: baseTime, UpdatedAt: baseTime}
	require.NoError(t, db.CreateUser(context.Background(), user))
	return user
}

func createTestItem(t *testing.T, db *DB, ownerID int64, name string, available bool) *models.Item {
	t.Helper()
	item := &models.Item{
		Name:        name,
		Description: name + " description",
		Available:   available,
		OwnerID:     ownerID,
		CreatedAt:   baseTime,
		UpdatedAt:   baseTime,
	}
	require.NoError(t, db.CreateItem(context.Background(), item))
	return item
}

func createTestBooking(t *testing.T, db *DB, itemID, bookerID int64, start, end time.Time) *models.Booking {
	t.Helper()
	booking := &models.Booking{
		ItemID:    itemID,
		BookerID:  bookerID,
		Start:     start,
		End:       end,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	}
	require.NoError(t, db.CreateBooking(context.Background(), booking))
	return booking
}

func TestNewDB_DirectoryCreation(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "db_test_dir")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "dir", "test.db")
	logger := zerolog.Nop()

	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, dbPath)
}

func TestTimeRoundTrip(t *testing.T) {
	original := time.Date(2026, 3, 7, 9, 30, 45, 0, time.UTC)

	parsed, err := parseTime(formatTime(original))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(original))
}

func TestFormatTime_Ordering(t *testing.T) {
	earlier := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Second)

	// Lexicographic order of stored strings must match chronological order.
	assert.Less(t, formatTime(earlier), formatTime(later))
}
