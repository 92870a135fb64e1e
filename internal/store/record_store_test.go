package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kusgan/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&model.Record{}))
	return db
}

func TestRecordStore_GetAbsentKey(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(newTestDB(t))

	data, err := s.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestRecordStore_SetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(newTestDB(t))

	doc := []byte(`[{"id":"1","name":"Admin User"}]`)
	assert.NoError(t, s.Set(ctx, RosterKey, doc))

	data, err := s.Get(ctx, RosterKey)
	assert.NoError(t, err)
	assert.Equal(t, doc, data)
}

func TestRecordStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(newTestDB(t))

	assert.NoError(t, s.Set(ctx, SessionKey, []byte(`{"id":"1"}`)))
	assert.NoError(t, s.Set(ctx, SessionKey, []byte(`{"id":"2"}`)))

	data, err := s.Get(ctx, SessionKey)
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"id":"2"}`), data)
}

func TestRecordStore_Remove(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(newTestDB(t))

	assert.NoError(t, s.Set(ctx, SessionKey, []byte(`{"id":"1"}`)))
	assert.NoError(t, s.Remove(ctx, SessionKey))

	data, err := s.Get(ctx, SessionKey)
	assert.NoError(t, err)
	assert.Nil(t, data)

	// Removing again is not an error.
	assert.NoError(t, s.Remove(ctx, SessionKey))
}

func TestRecordStore_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(newTestDB(t))

	assert.NoError(t, s.Set(ctx, RosterKey, []byte(`[]`)))
	assert.NoError(t, s.Set(ctx, PresenceKey, []byte(`[{"date":"2026-08-29"}]`)))
	assert.NoError(t, s.Remove(ctx, RosterKey))

	data, err := s.Get(ctx, PresenceKey)
	assert.NoError(t, err)
	assert.NotNil(t, data)
}
