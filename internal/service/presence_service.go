package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"kusgan/internal/cache"
	"kusgan/internal/model"
	"kusgan/internal/repository"
)

const (
	presenceTodayCacheKey = "presence:today"
	presenceTodayCacheTTL = time.Minute
)

// dateKeyLayout formats the local calendar day. Presence is keyed by the
// server's local day, not UTC; the day boundary must match everywhere
// presence is read or written.
const dateKeyLayout = "2006-01-02"

// timeNow is swapped out in tests.
var timeNow = time.Now

// PresenceService records and reads daily login attendance.
type PresenceService interface {
	// RecordDailyPresence upserts the (today, member) presence entry:
	// one record per member per calendar day, a repeat login overwrites
	// the timestamp in place.
	RecordDailyPresence(ctx context.Context, member model.Member) error
	// TodayPresent returns today's entries, most recent login first.
	TodayPresent(ctx context.Context) ([]model.PresenceEntry, error)
}

type presenceService struct {
	repo          repository.PresenceRepository
	cache         *cache.Client
	retentionDays int
}

// NewPresenceService builds a PresenceService. retentionDays bounds the log;
// zero keeps entries forever.
func NewPresenceService(repo repository.PresenceRepository, cacheClient *cache.Client, retentionDays int) PresenceService {
	return &presenceService{repo: repo, cache: cacheClient, retentionDays: retentionDays}
}

func (s *presenceService) RecordDailyPresence(ctx context.Context, member model.Member) error {
	entries, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	now := timeNow()
	today := now.Format(dateKeyLayout)
	entry := model.PresenceEntry{
		Date:         today,
		UserID:       member.ID,
		Name:         member.Name,
		Email:        member.Email,
		Role:         member.Role,
		ProfileImage: member.ProfileImage,
		LastLoginAt:  now,
	}

	replaced := false
	for i := range entries {
		if entries[i].Date == today && entries[i].UserID == member.ID {
			// Overwrite in place so the entry keeps its list position.
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	if s.retentionDays > 0 {
		entries = pruneBefore(entries, now.AddDate(0, 0, -s.retentionDays).Format(dateKeyLayout))
	}

	if err := s.repo.Save(ctx, entries); err != nil {
		return fmt.Errorf("save presence log: %w", err)
	}
	_ = s.cache.Delete(ctx, presenceTodayCacheKey)
	return nil
}

func (s *presenceService) TodayPresent(ctx context.Context) ([]model.PresenceEntry, error) {
	if data, _ := s.cache.Get(ctx, presenceTodayCacheKey); data != nil {
		var cached []model.PresenceEntry
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	today := timeNow().Format(dateKeyLayout)
	present := make([]model.PresenceEntry, 0)
	for _, entry := range entries {
		if entry.Date == today {
			present = append(present, entry)
		}
	}
	sort.SliceStable(present, func(i, j int) bool {
		return present[i].LastLoginAt.After(present[j].LastLoginAt)
	})

	if payload, err := json.Marshal(present); err == nil {
		_ = s.cache.Set(ctx, presenceTodayCacheKey, payload, presenceTodayCacheTTL)
	}
	return present, nil
}

// pruneBefore drops entries whose date key sorts before cutoff. Date keys
// are YYYY-MM-DD, so lexicographic order is chronological order.
func pruneBefore(entries []model.PresenceEntry, cutoff string) []model.PresenceEntry {
	kept := entries[:0]
	for _, entry := range entries {
		if entry.Date >= cutoff {
			kept = append(kept, entry)
		}
	}
	return kept
}
