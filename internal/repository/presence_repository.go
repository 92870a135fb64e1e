package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"kusgan/internal/model"
	"kusgan/internal/store"
)

// PresenceRepository persists the daily login-activity log as a single
// document, rewritten whole on every change.
type PresenceRepository interface {
	Load(ctx context.Context) ([]model.PresenceEntry, error)
	Save(ctx context.Context, entries []model.PresenceEntry) error
}

type presenceRepository struct {
	store store.RecordStore
}

// NewPresenceRepository creates a new presence repository.
func NewPresenceRepository(s store.RecordStore) PresenceRepository {
	return &presenceRepository{store: s}
}

func (r *presenceRepository) Load(ctx context.Context) ([]model.PresenceEntry, error) {
	data, err := r.store.Get(ctx, store.PresenceKey)
	if err != nil {
		return nil, fmt.Errorf("load presence log: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var entries []model.PresenceEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode presence log: %w", err)
	}
	return entries, nil
}

func (r *presenceRepository) Save(ctx context.Context, entries []model.PresenceEntry) error {
	if entries == nil {
		entries = []model.PresenceEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode presence log: %w", err)
	}
	if err := r.store.Set(ctx, store.PresenceKey, data); err != nil {
		return fmt.Errorf("save presence log: %w", err)
	}
	return nil
}
