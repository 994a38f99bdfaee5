package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dreamshub/backend/internal/domain/audit"
)

func setupLogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&audit.LogEntry{})
	require.NoError(t, err)

	return db
}

func mustEntry(t *testing.T, action string) *audit.LogEntry {
	t.Helper()
	entry, err := audit.NewLogEntry(audit.TypeSale, action, "Widget", "Alex", "Cashier", audit.LevelInfo)
	require.NoError(t, err)
	return entry
}

func TestGormLogRepository_Append(t *testing.T) {
	db := setupLogTestDB(t)
	repo := NewGormLogRepository(db)
	ctx := context.Background()

	t.Run("appends and reads back", func(t *testing.T) {
		require.NoError(t, repo.Append(ctx, mustEntry(t, "Completed Sale")))

		entries, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Completed Sale", entries[0].Action)
		assert.Equal(t, audit.TypeSale, entries[0].Type)
	})

	t.Run("caps retention at LogCap entries", func(t *testing.T) {
		for i := 0; i < audit.LogCap+20; i++ {
			entry := mustEntry(t, fmt.Sprintf("Action %03d", i))
			entry.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
			require.NoError(t, repo.Append(ctx, entry))
		}

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(audit.LogCap), count)

		// The survivors are the newest entries
		entries, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, entries, audit.LogCap)
		assert.Equal(t, fmt.Sprintf("Action %03d", audit.LogCap+19), entries[0].Action)
	})
}

func TestGormLogRepository_FindSince(t *testing.T) {
	db := setupLogTestDB(t)
	repo := NewGormLogRepository(db)
	ctx := context.Background()

	old := mustEntry(t, "Old Action")
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, repo.Append(ctx, old))

	recent := mustEntry(t, "Recent Action")
	require.NoError(t, repo.Append(ctx, recent))

	t.Run("bounds results by time", func(t *testing.T) {
		entries, err := repo.FindSince(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Recent Action", entries[0].Action)
	})

	t.Run("zero time returns everything", func(t *testing.T) {
		entries, err := repo.FindSince(ctx, time.Time{})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}
