package persistence

import (
	"context"
	"time"

	"github.com/dreamshub/backend/internal/domain/audit"
	"github.com/dreamshub/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormLogRepository implements LogRepository using GORM. The table is
// capped: Append evicts the oldest rows beyond audit.LogCap in the same
// transaction as the insert.
type GormLogRepository struct {
	db *gorm.DB
}

// NewGormLogRepository creates a new GormLogRepository
func NewGormLogRepository(db *gorm.DB) *GormLogRepository {
	return &GormLogRepository{db: db}
}

// Append stores an entry and evicts the oldest ones so that at most
// audit.LogCap entries remain.
func (r *GormLogRepository) Append(ctx context.Context, entry *audit.LogEntry) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		keep := tx.Model(&audit.LogEntry{}).
			Select("id").
			Order("created_at DESC, id DESC").
			Limit(audit.LogCap)
		return tx.Where("id NOT IN (?)", keep).Delete(&audit.LogEntry{}).Error
	})
	if err != nil {
		return shared.NewStoreError(err)
	}
	return nil
}

// FindAll returns all retained entries, newest first
func (r *GormLogRepository) FindAll(ctx context.Context) ([]audit.LogEntry, error) {
	var entries []audit.LogEntry
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, shared.NewStoreError(err)
	}
	return entries, nil
}

// FindSince returns retained entries created at or after the given time,
// newest first. A zero time is equivalent to FindAll.
func (r *GormLogRepository) FindSince(ctx context.Context, since time.Time) ([]audit.LogEntry, error) {
	if since.IsZero() {
		return r.FindAll(ctx)
	}
	var entries []audit.LogEntry
	if err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at DESC, id DESC").
		Find(&entries).Error; err != nil {
		return nil, shared.NewStoreError(err)
	}
	return entries, nil
}

// Count returns the number of retained entries
func (r *GormLogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&audit.LogEntry{}).
		Count(&count).Error; err != nil {
		return 0, shared.NewStoreError(err)
	}
	return count, nil
}

var _ audit.LogRepository = (*GormLogRepository)(nil)
