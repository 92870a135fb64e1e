package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"kusgan/internal/model"
	"kusgan/internal/store"
)

// AnnouncementRepository persists the announcements document.
type AnnouncementRepository interface {
	Load(ctx context.Context) ([]model.Announcement, error)
	Save(ctx context.Context, announcements []model.Announcement) error
}

type announcementRepository struct {
	store store.RecordStore
}

// NewAnnouncementRepository creates a new announcement repository.
func NewAnnouncementRepository(s store.RecordStore) AnnouncementRepository {
	return &announcementRepository{store: s}
}

func (r *announcementRepository) Load(ctx context.Context) ([]model.Announcement, error) {
	data, err := r.store.Get(ctx, store.AnnouncementsKey)
	if err != nil {
		return nil, fmt.Errorf("load announcements: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var announcements []model.Announcement
	if err := json.Unmarshal(data, &announcements); err != nil {
		return nil, fmt.Errorf("decode announcements: %w", err)
	}
	return announcements, nil
}

func (r *announcementRepository) Save(ctx context.Context, announcements []model.Announcement) error {
	if announcements == nil {
		announcements = []model.Announcement{}
	}
	data, err := json.Marshal(announcements)
	if err != nil {
		return fmt.Errorf("encode announcements: %w", err)
	}
	if err := r.store.Set(ctx, store.AnnouncementsKey, data); err != nil {
		return fmt.Errorf("save announcements: %w", err)
	}
	return nil
}
