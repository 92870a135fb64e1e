package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"kusgan/internal/model"
	"kusgan/internal/repository"
)

type defaultAccount struct {
	id          string
	name        string
	email       string
	password    string
	role        string
	canAnnounce bool
	canPlan     bool
}

// Built-in accounts created on first start. The fixed credentials are the
// documented bootstrap logins; the passwords are hashed at seed time.
var defaultAccounts = []defaultAccount{
	{id: "1", name: "Admin User", email: "admin@kusgan.com", password: "admin123", role: model.RoleAdmin, canAnnounce: true, canPlan: true},
	{id: "2", name: "John Doe", email: "john@kusgan.com", password: "john123", role: model.RoleMember},
	{id: "3", name: "Jane Smith", email: "jane@kusgan.com", password: "jane123", role: model.RoleMember},
}

// EnsureDefaultRoster seeds the built-in accounts when no roster document
// exists. It never touches an existing roster, even an empty one. Returns
// the number of accounts created.
func EnsureDefaultRoster(ctx context.Context, roster repository.RosterRepository) (int, error) {
	existing, err := roster.Load(ctx)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, nil
	}

	now := time.Now().Format(time.RFC3339)
	members := make([]model.Member, 0, len(defaultAccounts))
	for _, acc := range defaultAccounts {
		hashed, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcryptCost)
		if err != nil {
			return 0, fmt.Errorf("hash password for %s: %w", acc.email, err)
		}
		members = append(members, model.Member{
			ID:                    model.MemberID(acc.id),
			Name:                  acc.name,
			Email:                 acc.email,
			Password:              string(hashed),
			Role:                  acc.role,
			CanCreateAnnouncement: acc.canAnnounce,
			CanCreatePlan:         acc.canPlan,
			Status:                model.StatusActive,
			MemberSince:           now,
		})
	}

	if err := roster.Save(ctx, members); err != nil {
		return 0, err
	}
	return len(members), nil
}
