package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "kusgan/internal/errors"
	"kusgan/internal/model"
	"kusgan/internal/repository"
)

// CreateAnnouncementInput carries a new announcement.
type CreateAnnouncementInput struct {
	Title    string
	Content  string
	Category string
}

// CategorySummary is the dashboard aggregation over announcements.
type CategorySummary struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// AnnouncementService manages the announcements document.
type AnnouncementService interface {
	List(ctx context.Context) ([]model.Announcement, error)
	// Create appends an announcement authored by the given member; the
	// member must hold the canCreateAnnouncement flag.
	Create(ctx context.Context, author *model.Member, input CreateAnnouncementInput) (*model.Announcement, error)
	Summary(ctx context.Context) (*CategorySummary, error)
}

type announcementService struct {
	repo repository.AnnouncementRepository
}

// NewAnnouncementService creates a new announcement service.
func NewAnnouncementService(repo repository.AnnouncementRepository) AnnouncementService {
	return &announcementService{repo: repo}
}

func (s *announcementService) List(ctx context.Context) ([]model.Announcement, error) {
	announcements, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if announcements == nil {
		announcements = []model.Announcement{}
	}
	return announcements, nil
}

func (s *announcementService) Create(ctx context.Context, author *model.Member, input CreateAnnouncementInput) (*model.Announcement, error) {
	if !author.CanCreateAnnouncement {
		return nil, apperrors.ErrPermissionDenied
	}
	if !model.ValidCategory(input.Category) {
		return nil, apperrors.ErrInvalidCategory
	}

	announcements, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	announcement := model.Announcement{
		ID:         uuid.NewString(),
		Title:      input.Title,
		Content:    input.Content,
		Category:   input.Category,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		CreatedAt:  time.Now(),
	}
	announcements = append(announcements, announcement)

	if err := s.repo.Save(ctx, announcements); err != nil {
		return nil, fmt.Errorf("save announcements: %w", err)
	}
	return &announcement, nil
}

// Summary counts announcements per category plus the overall total. Every
// known category is present in the result even when zero.
func (s *announcementService) Summary(ctx context.Context) (*CategorySummary, error) {
	announcements, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(model.Categories))
	for _, category := range model.Categories {
		counts[category] = 0
	}
	for _, announcement := range announcements {
		if _, known := counts[announcement.Category]; known {
			counts[announcement.Category]++
		}
	}
	return &CategorySummary{Counts: counts, Total: len(announcements)}, nil
}
