package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"kusgan/internal/model"
	"kusgan/internal/store"
)

// RosterRepository persists the full member roster as a single document.
// Every mutation rewrites the whole document; insertion order is preserved.
type RosterRepository interface {
	// Load returns the roster, or nil when no roster document exists yet.
	Load(ctx context.Context) ([]model.Member, error)
	Save(ctx context.Context, roster []model.Member) error
}

type rosterRepository struct {
	store store.RecordStore
}

// NewRosterRepository creates a new roster repository.
func NewRosterRepository(s store.RecordStore) RosterRepository {
	return &rosterRepository{store: s}
}

func (r *rosterRepository) Load(ctx context.Context) ([]model.Member, error) {
	data, err := r.store.Get(ctx, store.RosterKey)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var roster []model.Member
	if err := json.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	return roster, nil
}

func (r *rosterRepository) Save(ctx context.Context, roster []model.Member) error {
	if roster == nil {
		roster = []model.Member{}
	}
	data, err := json.Marshal(roster)
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}
	if err := r.store.Set(ctx, store.RosterKey, data); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	return nil
}
