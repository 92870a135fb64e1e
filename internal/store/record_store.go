package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kusgan/internal/model"
)

// Keys of the persisted documents. The names predate this service and must
// stay as-is: data exported from earlier deployments is keyed by them.
const (
	RosterKey        = "kusgan_users"
	SessionKey       = "kusgan_current_user"
	PresenceKey      = "kusgan_login_activity"
	AnnouncementsKey = "kusgan_announcements"
)

// RecordStore holds opaque JSON documents addressed by string key.
type RecordStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

type recordStore struct {
	db *gorm.DB
}

// NewRecordStore creates a record store backed by the records table.
func NewRecordStore(db *gorm.DB) RecordStore {
	return &recordStore{db: db}
}

// Get returns the stored document, or nil when the key is absent.
func (s *recordStore) Get(ctx context.Context, key string) ([]byte, error) {
	var rec model.Record
	if err := s.db.WithContext(ctx).First(&rec, "record_key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return []byte(rec.Value), nil
}

// Set writes the document, replacing any previous value under the key.
func (s *recordStore) Set(ctx context.Context, key string, value []byte) error {
	rec := model.Record{RecordKey: key, Value: string(value)}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "record_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rec).Error
}

// Remove deletes the document. Removing an absent key is not an error.
func (s *recordStore) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&model.Record{}, "record_key = ?", key).Error
}
