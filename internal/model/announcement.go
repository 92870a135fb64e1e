package model

import "time"

// Announcement categories shown on the dashboard.
const (
	CategoryEnvironmental   = "environmental"
	CategoryReliefOperation = "relief operation"
	CategoryFireResponse    = "fire response"
	CategoryNotes           = "notes"
)

// Categories lists the valid announcement categories in display order.
var Categories = []string{
	CategoryEnvironmental,
	CategoryReliefOperation,
	CategoryFireResponse,
	CategoryNotes,
}

// ValidCategory reports whether c is a known announcement category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Announcement is one entry of the announcements document.
type Announcement struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	AuthorID   MemberID  `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}
