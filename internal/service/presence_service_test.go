package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kusgan/internal/model"
	"kusgan/internal/repository"
)

func withFixedTime(t *testing.T, fixed time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = orig })
}

func TestPresenceService_RecordDailyPresence_UpsertsPerDay(t *testing.T) {
	ctx := context.Background()
	recordStore := newTestStore(t)
	presenceRepo := repository.NewPresenceRepository(recordStore)
	svc := NewPresenceService(presenceRepo, nil, 0)

	day := time.Date(2026, 8, 29, 9, 0, 0, 0, time.Local)
	withFixedTime(t, day)

	john := model.Member{ID: "2", Name: "John Doe", Email: "john@kusgan.com", Role: model.RoleMember}
	assert.NoError(t, svc.RecordDailyPresence(ctx, john))

	entries, err := presenceRepo.Load(ctx)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "2026-08-29", entries[0].Date)
	assert.Equal(t, "2", entries[0].UserID.String())

	// Same member, same day, later in the afternoon: still one entry, with
	// the newer timestamp.
	withFixedTime(t, day.Add(6*time.Hour))
	assert.NoError(t, svc.RecordDailyPresence(ctx, john))

	entries, err = presenceRepo.Load(ctx)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, day.Add(6*time.Hour).Unix(), entries[0].LastLoginAt.Unix())

	// Next day starts a new entry.
	withFixedTime(t, day.AddDate(0, 0, 1))
	assert.NoError(t, svc.RecordDailyPresence(ctx, john))

	entries, err = presenceRepo.Load(ctx)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestPresenceService_RecordDailyPresence_KeepsListPosition(t *testing.T) {
	ctx := context.Background()
	recordStore := newTestStore(t)
	presenceRepo := repository.NewPresenceRepository(recordStore)
	svc := NewPresenceService(presenceRepo, nil, 0)

	day := time.Date(2026, 8, 29, 8, 0, 0, 0, time.Local)
	withFixedTime(t, day)
	assert.NoError(t, svc.RecordDailyPresence(ctx, model.Member{ID: "1", Name: "Admin User"}))
	withFixedTime(t, day.Add(time.Hour))
	assert.NoError(t, svc.RecordDailyPresence(ctx, model.Member{ID: "2", Name: "John Doe"}))

	// Admin logs in again; the entry is overwritten in place, not re-appended.
	withFixedTime(t, day.Add(2*time.Hour))
	assert.NoError(t, svc.RecordDailyPresence(ctx, model.Member{ID: "1", Name: "Admin User"}))

	entries, err := presenceRepo.Load(ctx)
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, "1", entries[0].UserID.String())
	assert.Equal(t, "2", entries[1].UserID.String())
}

func TestPresenceService_Retention(t *testing.T) {
	ctx := context.Background()
	recordStore := newTestStore(t)
	presenceRepo := repository.NewPresenceRepository(recordStore)

	today := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)
	stale := model.PresenceEntry{Date: today.AddDate(0, 0, -120).Format(dateKeyLayout), UserID: "1", Name: "Admin User"}
	recent := model.PresenceEntry{Date: today.AddDate(0, 0, -5).Format(dateKeyLayout), UserID: "1", Name: "Admin User"}
	assert.NoError(t, presenceRepo.Save(ctx, []model.PresenceEntry{stale, recent}))

	withFixedTime(t, today)

	t.Run("bounded retention prunes old entries", func(t *testing.T) {
		svc := NewPresenceService(presenceRepo, nil, 90)
		assert.NoError(t, svc.RecordDailyPresence(ctx, model.Member{ID: "2", Name: "John Doe"}))

		entries, err := presenceRepo.Load(ctx)
		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		for _, entry := range entries {
			assert.GreaterOrEqual(t, entry.Date, today.AddDate(0, 0, -90).Format(dateKeyLayout))
		}
	})

	t.Run("zero retention keeps everything", func(t *testing.T) {
		assert.NoError(t, presenceRepo.Save(ctx, []model.PresenceEntry{stale, recent}))
		svc := NewPresenceService(presenceRepo, nil, 0)
		assert.NoError(t, svc.RecordDailyPresence(ctx, model.Member{ID: "2", Name: "John Doe"}))

		entries, err := presenceRepo.Load(ctx)
		assert.NoError(t, err)
		assert.Len(t, entries, 3)
	})
}

func TestPresenceService_TodayPresent(t *testing.T) {
	ctx := context.Background()
	recordStore := newTestStore(t)
	presenceRepo := repository.NewPresenceRepository(recordStore)
	svc := NewPresenceService(presenceRepo, nil, 0)

	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.Local)
	yesterday := today.AddDate(0, 0, -1)

	assert.NoError(t, presenceRepo.Save(ctx, []model.PresenceEntry{
		{Date: yesterday.Format(dateKeyLayout), UserID: "3", Name: "Jane Smith", LastLoginAt: yesterday.Add(10 * time.Hour)},
		{Date: today.Format(dateKeyLayout), UserID: "1", Name: "Admin User", LastLoginAt: today.Add(8 * time.Hour)},
		{Date: today.Format(dateKeyLayout), UserID: "2", Name: "John Doe", LastLoginAt: today.Add(11 * time.Hour)},
	}))

	withFixedTime(t, today.Add(12*time.Hour))

	present, err := svc.TodayPresent(ctx)
	assert.NoError(t, err)
	assert.Len(t, present, 2, "yesterday's logins are not present today")
	assert.Equal(t, "John Doe", present[0].Name, "most recent login first")
	assert.Equal(t, "Admin User", present[1].Name)
}

func TestPresenceService_TodayPresent_EmptyLog(t *testing.T) {
	ctx := context.Background()
	recordStore := newTestStore(t)
	svc := NewPresenceService(repository.NewPresenceRepository(recordStore), nil, 0)

	present, err := svc.TodayPresent(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, present)
	assert.Empty(t, present)
}
