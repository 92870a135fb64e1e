package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kusgan/internal/errors"
	"kusgan/internal/model"
	"kusgan/internal/service"
)

// DashboardHandler assembles the dashboard summary.
type DashboardHandler struct {
	announcementService service.AnnouncementService
	presenceService     service.PresenceService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(announcementService service.AnnouncementService, presenceService service.PresenceService) *DashboardHandler {
	return &DashboardHandler{
		announcementService: announcementService,
		presenceService:     presenceService,
	}
}

// DashboardResponse is the combined dashboard payload: announcement totals
// per category and the members who logged in today.
type DashboardResponse struct {
	Announcements *service.CategorySummary `json:"announcements"`
	PresentToday  []model.PresenceEntry    `json:"presentToday"`
}

// Summary godoc
// @Summary Dashboard summary
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	summary, err := h.announcementService.Summary(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to load dashboard",
			Code:  "DASHBOARD_LOAD_FAILED",
		})
	}

	present, err := h.presenceService.TodayPresent(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to load dashboard",
			Code:  "DASHBOARD_LOAD_FAILED",
		})
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		Announcements: summary,
		PresentToday:  present,
	})
}
