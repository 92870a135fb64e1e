package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kusgan/internal/errors"
	"kusgan/internal/model"
	"kusgan/internal/service"
)

// AnnouncementHandler handles announcement endpoints.
type AnnouncementHandler struct {
	announcementService service.AnnouncementService
	memberService       service.MemberService
}

// NewAnnouncementHandler creates a new announcement handler.
func NewAnnouncementHandler(announcementService service.AnnouncementService, memberService service.MemberService) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
		memberService:       memberService,
	}
}

// CreateAnnouncementRequest represents a new announcement.
type CreateAnnouncementRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"required,oneof='environmental' 'relief operation' 'fire response' 'notes'"`
}

// AnnouncementsResponse wraps the announcement list.
type AnnouncementsResponse struct {
	Announcements []model.Announcement `json:"announcements"`
}

// List godoc
// @Summary List announcements
// @Tags announcements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AnnouncementsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /announcements [get]
func (h *AnnouncementHandler) List(c echo.Context) error {
	announcements, err := h.announcementService.List(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to list announcements",
			Code:  "ANNOUNCEMENT_LIST_FAILED",
		})
	}
	return c.JSON(http.StatusOK, AnnouncementsResponse{Announcements: announcements})
}

// Create godoc
// @Summary Create an announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} model.Announcement
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(c echo.Context) error {
	member, err := memberFromToken(c, h.memberService)
	if err != nil {
		return err
	}

	var req CreateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	announcement, err := h.announcementService.Create(c.Request().Context(), member, service.CreateAnnouncementInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, announcement)
}
