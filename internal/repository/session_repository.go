package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"kusgan/internal/model"
	"kusgan/internal/store"
)

// SessionRepository persists the active operator session: the signed-in
// member, already password-stripped, or nothing when logged out.
type SessionRepository interface {
	// Get returns the session member, or nil when logged out.
	Get(ctx context.Context) (*model.Member, error)
	Set(ctx context.Context, member *model.Member) error
	Clear(ctx context.Context) error
}

type sessionRepository struct {
	store store.RecordStore
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(s store.RecordStore) SessionRepository {
	return &sessionRepository{store: s}
}

func (r *sessionRepository) Get(ctx context.Context) (*model.Member, error) {
	data, err := r.store.Get(ctx, store.SessionKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var member model.Member
	if err := json.Unmarshal(data, &member); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &member, nil
}

func (r *sessionRepository) Set(ctx context.Context, member *model.Member) error {
	// The session document never carries credentials.
	redacted := member.Redacted()
	data, err := json.Marshal(redacted)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.store.Set(ctx, store.SessionKey, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Remove(ctx, store.SessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
