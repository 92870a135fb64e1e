package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "kusgan/internal/errors"
	"kusgan/internal/model"
	"kusgan/internal/repository"
)

func TestAnnouncementService_Create(t *testing.T) {
	ctx := context.Background()
	recordStore := newTestStore(t)
	repo := repository.NewAnnouncementRepository(recordStore)
	svc := NewAnnouncementService(repo)

	author := &model.Member{ID: "1", Name: "Admin User", CanCreateAnnouncement: true}

	t.Run("author without the flag is rejected", func(t *testing.T) {
		plain := &model.Member{ID: "2", Name: "John Doe"}
		_, err := svc.Create(ctx, plain, CreateAnnouncementInput{Title: "t", Content: "c", Category: "notes"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("admin role alone is not enough", func(t *testing.T) {
		admin := &model.Member{ID: "9", Name: "Second Admin", Role: model.RoleAdmin}
		_, err := svc.Create(ctx, admin, CreateAnnouncementInput{Title: "t", Content: "c", Category: "notes"})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, author, CreateAnnouncementInput{Title: "t", Content: "c", Category: "weather"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCategory)
	})

	t.Run("successful create", func(t *testing.T) {
		created, err := svc.Create(ctx, author, CreateAnnouncementInput{
			Title:    "Coastal cleanup",
			Content:  "Saturday 7am at the pier.",
			Category: "environmental",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "1", created.AuthorID.String())
		assert.Equal(t, "Admin User", created.AuthorName)
		assert.False(t, created.CreatedAt.IsZero())

		list, err := svc.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, "Coastal cleanup", list[0].Title)
	})
}

func TestAnnouncementService_List_Empty(t *testing.T) {
	ctx := context.Background()
	svc := NewAnnouncementService(repository.NewAnnouncementRepository(newTestStore(t)))

	list, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestAnnouncementService_Summary(t *testing.T) {
	ctx := context.Background()
	recordStore := newTestStore(t)
	repo := repository.NewAnnouncementRepository(recordStore)
	svc := NewAnnouncementService(repo)

	t.Run("empty log still lists every category", func(t *testing.T) {
		summary, err := svc.Summary(ctx)
		assert.NoError(t, err)
		assert.Zero(t, summary.Total)
		assert.Len(t, summary.Counts, len(model.Categories))
		for _, category := range model.Categories {
			assert.Contains(t, summary.Counts, category)
		}
	})

	t.Run("counts per category", func(t *testing.T) {
		assert.NoError(t, repo.Save(ctx, []model.Announcement{
			{ID: "a", Category: "environmental"},
			{ID: "b", Category: "environmental"},
			{ID: "c", Category: "fire response"},
			{ID: "d", Category: "obsolete-category"},
		}))

		summary, err := svc.Summary(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 4, summary.Total, "total counts every stored announcement")
		assert.Equal(t, 2, summary.Counts["environmental"])
		assert.Equal(t, 1, summary.Counts["fire response"])
		assert.Equal(t, 0, summary.Counts["notes"])
		assert.NotContains(t, summary.Counts, "obsolete-category")
	})
}
