package model

import "encoding/json"

// Roles assignable to roster members.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Membership statuses.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Permission flag names accepted by permission updates.
const (
	PermissionCreateAnnouncement = "canCreateAnnouncement"
	PermissionCreatePlan         = "canCreatePlan"
)

// MemberID identifies a roster member. Earlier deployments generated ids
// from wall-clock milliseconds and stored them as JSON numbers; ids are
// therefore accepted in either form but always compared and re-serialized
// as strings.
type MemberID string

func (id MemberID) String() string {
	return string(id)
}

// UnmarshalJSON accepts both string and numeric ids.
func (id *MemberID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = MemberID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = MemberID(n.String())
	return nil
}

// Member is one roster entry. JSON field names match the persisted roster
// document exactly so rosters exported from earlier deployments import
// unchanged. Password holds a bcrypt hash and must never appear in any
// API projection; Redacted strips it.
type Member struct {
	ID                    MemberID `json:"id"`
	Name                  string   `json:"name"`
	Email                 string   `json:"email"`
	Password              string   `json:"password,omitempty"`
	Role                  string   `json:"role"`
	CanCreateAnnouncement bool     `json:"canCreateAnnouncement"`
	CanCreatePlan         bool     `json:"canCreatePlan"`
	Address               string   `json:"address"`
	Status                string   `json:"status"`
	MemberSince           string   `json:"memberSince"`
	ProfileImage          string   `json:"profileImage,omitempty"`
}

// Redacted returns a copy of the member with the password hash removed.
func (m Member) Redacted() Member {
	m.Password = ""
	return m
}
