package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dashboardCache is the MySQL row backing one (owner, kind) entry.
type dashboardCache struct {
	ID        uint      `gorm:"primaryKey"`
	OwnerID   string    `gorm:"column:owner_id;size:64;not null;uniqueIndex:idx_owner_kind"`
	Kind      string    `gorm:"size:16;not null;uniqueIndex:idx_owner_kind"`
	Payload   []byte    `gorm:"type:json"`
	FetchedAt time.Time `gorm:"not null"`
}

func (dashboardCache) TableName() string {
	return "dashboard_caches"
}

// Models returns the gorm models this package needs migrated.
func Models() []any {
	return []any{&dashboardCache{}}
}

// GormStore is the MySQL-backed Store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get returns the entry for (owner, kind), or (nil, nil) when absent.
func (s *GormStore) Get(ctx context.Context, ownerID string, kind Kind) (*Entry, error) {
	var row dashboardCache
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ?", ownerID, kind.String()).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, ErrGet(err)
	}
	return &Entry{
		OwnerID:   row.OwnerID,
		Kind:      kind,
		Payload:   json.RawMessage(row.Payload),
		FetchedAt: row.FetchedAt,
	}, nil
}

// Put upserts the entry, replacing payload and fetched_at on conflict.
func (s *GormStore) Put(ctx context.Context, ownerID string, kind Kind, payload json.RawMessage, fetchedAt time.Time) error {
	row := dashboardCache{
		OwnerID:   ownerID,
		Kind:      kind.String(),
		Payload:   []byte(payload),
		FetchedAt: fetchedAt,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "fetched_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return ErrPut(err)
	}
	return nil
}

// Sweep deletes entries fetched before the given cutoff and returns how many
// rows were removed. The request path only ever supersedes entries; Sweep is
// operational cleanup for long-abandoned owners.
func (s *GormStore) Sweep(ctx context.Context, before time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("fetched_at < ?", before).
		Delete(&dashboardCache{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
