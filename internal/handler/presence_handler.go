package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kusgan/internal/errors"
	"kusgan/internal/model"
	"kusgan/internal/service"
)

// PresenceHandler handles daily-attendance endpoints.
type PresenceHandler struct {
	presenceService service.PresenceService
}

// NewPresenceHandler creates a new presence handler.
func NewPresenceHandler(presenceService service.PresenceService) *PresenceHandler {
	return &PresenceHandler{presenceService: presenceService}
}

// PresenceResponse wraps today's presence entries.
type PresenceResponse struct {
	Present []model.PresenceEntry `json:"present"`
}

// Today godoc
// @Summary Members present today
// @Tags presence
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PresenceResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /presence/today [get]
func (h *PresenceHandler) Today(c echo.Context) error {
	present, err := h.presenceService.TodayPresent(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to load presence",
			Code:  "PRESENCE_LOAD_FAILED",
		})
	}
	return c.JSON(http.StatusOK, PresenceResponse{Present: present})
}
