package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"kusgan/internal/avatar"
	"kusgan/internal/cache"
	apperrors "kusgan/internal/errors"
	"kusgan/internal/model"
	"kusgan/internal/repository"
)

const (
	membersCacheKey = "members:all"
	membersCacheTTL = 5 * time.Minute
)

// AddUserInput carries the administrative create-member form. A blank ID is
// replaced with a generated one; role and permission flags are always forced
// regardless of input.
type AddUserInput struct {
	ID          string
	Name        string
	Email       string
	Password    string
	Address     string
	Status      string
	MemberSince string
}

// MemberUpdate is a shallow merge: nil fields are left untouched.
type MemberUpdate struct {
	Name        *string
	Email       *string
	Address     *string
	Status      *string
	MemberSince *string
}

// MemberService exposes roster operations. Mutations that name a member id
// which is not on the roster are silent no-ops; callers are trusted admin
// surfaces working from data they just listed.
type MemberService interface {
	GetAllMembers(ctx context.Context) ([]model.Member, error)
	FindByID(ctx context.Context, id string) (*model.Member, error)
	AddUser(ctx context.Context, input AddUserInput) (*model.Member, error)
	DeleteMembers(ctx context.Context, ids []string) error
	UpdateMember(ctx context.Context, id string, updates MemberUpdate) error
	UpdateMemberPermission(ctx context.Context, id, permission string, value bool) error
}

type memberService struct {
	roster  repository.RosterRepository
	session repository.SessionRepository
	cache   *cache.Client
}

// NewMemberService builds a MemberService with repositories and cache.
func NewMemberService(roster repository.RosterRepository, session repository.SessionRepository, cacheClient *cache.Client) MemberService {
	return &memberService{roster: roster, session: session, cache: cacheClient}
}

// GetAllMembers returns the roster with password hashes stripped and avatars
// resolved. The redacted snapshot is cached; every mutation invalidates it.
func (s *memberService) GetAllMembers(ctx context.Context) ([]model.Member, error) {
	if data, _ := s.cache.Get(ctx, membersCacheKey); data != nil {
		var cached []model.Member
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	roster, err := s.roster.Load(ctx)
	if err != nil {
		return nil, err
	}

	members := make([]model.Member, 0, len(roster))
	for i := range roster {
		member := roster[i].Redacted()
		avatar.Enrich(&member)
		members = append(members, member)
	}

	if payload, err := json.Marshal(members); err == nil {
		_ = s.cache.Set(ctx, membersCacheKey, payload, membersCacheTTL)
	}
	return members, nil
}

// FindByID returns the redacted member with the given id.
func (s *memberService) FindByID(ctx context.Context, id string) (*model.Member, error) {
	roster, err := s.roster.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range roster {
		if roster[i].ID.String() == id {
			member := roster[i].Redacted()
			avatar.Enrich(&member)
			return &member, nil
		}
	}
	return nil, apperrors.ErrMemberNotFound
}

// AddUser appends an administratively created member. Unlike Register there
// is no duplicate-email check; the two paths intentionally keep their
// different guarantees.
func (s *memberService) AddUser(ctx context.Context, input AddUserInput) (*model.Member, error) {
	roster, err := s.roster.Load(ctx)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = uuid.NewString()
	}

	password := ""
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		password = string(hashed)
	}

	status := input.Status
	if status == "" {
		status = model.StatusActive
	}
	memberSince := input.MemberSince
	if memberSince == "" {
		memberSince = time.Now().Format(time.RFC3339)
	}

	newMember := model.Member{
		ID:          model.MemberID(id),
		Name:        input.Name,
		Email:       input.Email,
		Password:    password,
		Role:        model.RoleMember,
		Address:     input.Address,
		Status:      status,
		MemberSince: memberSince,
	}

	roster = append(roster, newMember)
	if err := s.roster.Save(ctx, roster); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, membersCacheKey)

	member := newMember.Redacted()
	avatar.Enrich(&member)
	return &member, nil
}

// DeleteMembers removes every roster entry whose id is in ids; unmatched ids
// are ignored. When the session member is among them the session is cleared,
// so nobody stays signed in as a deleted identity.
func (s *memberService) DeleteMembers(ctx context.Context, ids []string) error {
	roster, err := s.roster.Load(ctx)
	if err != nil {
		return err
	}

	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	kept := roster[:0]
	for _, member := range roster {
		if _, deleted := idSet[member.ID.String()]; !deleted {
			kept = append(kept, member)
		}
	}
	if err := s.roster.Save(ctx, kept); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, membersCacheKey)

	session, err := s.session.Get(ctx)
	if err != nil {
		return err
	}
	if session != nil {
		if _, deleted := idSet[session.ID.String()]; deleted {
			return s.session.Clear(ctx)
		}
	}
	return nil
}

// UpdateMember shallow-merges the supplied fields into the matching roster
// entry and mirrors the change into the session copy for the same id.
func (s *memberService) UpdateMember(ctx context.Context, id string, updates MemberUpdate) error {
	return s.mutateMember(ctx, id, func(m *model.Member) {
		if updates.Name != nil {
			m.Name = *updates.Name
		}
		if updates.Email != nil {
			m.Email = *updates.Email
		}
		if updates.Address != nil {
			m.Address = *updates.Address
		}
		if updates.Status != nil {
			m.Status = *updates.Status
		}
		if updates.MemberSince != nil {
			m.MemberSince = *updates.MemberSince
		}
	})
}

// UpdateMemberPermission sets one of the two known permission flags. Unknown
// permission names and unknown ids are silent no-ops.
func (s *memberService) UpdateMemberPermission(ctx context.Context, id, permission string, value bool) error {
	switch permission {
	case model.PermissionCreateAnnouncement, model.PermissionCreatePlan:
	default:
		return nil
	}
	return s.mutateMember(ctx, id, func(m *model.Member) {
		switch permission {
		case model.PermissionCreateAnnouncement:
			m.CanCreateAnnouncement = value
		case model.PermissionCreatePlan:
			m.CanCreatePlan = value
		}
	})
}

// mutateMember applies fn to the roster entry with the given id, persists
// the roster and keeps the session copy in step. A missing id is a no-op.
func (s *memberService) mutateMember(ctx context.Context, id string, fn func(*model.Member)) error {
	roster, err := s.roster.Load(ctx)
	if err != nil {
		return err
	}

	matched := false
	for i := range roster {
		if roster[i].ID.String() == id {
			fn(&roster[i])
			matched = true
			break
		}
	}
	if !matched {
		return nil
	}

	if err := s.roster.Save(ctx, roster); err != nil {
		return err
	}
	_ = s.cache.Delete(ctx, membersCacheKey)

	session, err := s.session.Get(ctx)
	if err != nil {
		return err
	}
	if session != nil && session.ID.String() == id {
		fn(session)
		return s.session.Set(ctx, session)
	}
	return nil
}
