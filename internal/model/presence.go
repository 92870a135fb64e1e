package model

import "time"

// PresenceEntry is one daily-attendance record. The presence log holds at
// most one entry per member per calendar day; a repeat login on the same
// day overwrites LastLoginAt in place.
type PresenceEntry struct {
	Date         string    `json:"date"` // local calendar day, YYYY-MM-DD
	UserID       MemberID  `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ProfileImage string    `json:"profileImage"`
	LastLoginAt  time.Time `json:"lastLoginAt"`
}
