package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kusgan/internal/errors"
	"kusgan/internal/model"
	"kusgan/internal/service"
)

// MemberHandler handles member directory endpoints.
type MemberHandler struct {
	memberService service.MemberService
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(memberService service.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// AddMemberRequest represents an administrative create-member request.
// Role and permission flags cannot be supplied: new members always start
// as plain members with no extra permissions.
type AddMemberRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password"`
	Address     string `json:"address"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
	MemberSince string `json:"memberSince"`
}

// DeleteMembersRequest represents a bulk delete request.
type DeleteMembersRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// UpdateMemberRequest represents a partial profile update; absent fields
// are left untouched.
type UpdateMemberRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Address     *string `json:"address"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
	MemberSince *string `json:"memberSince"`
}

// UpdatePermissionRequest represents a permission flag change.
type UpdatePermissionRequest struct {
	Permission string `json:"permission" validate:"required,oneof=canCreateAnnouncement canCreatePlan"`
	Value      *bool  `json:"value" validate:"required"`
}

// MembersResponse wraps the redacted roster.
type MembersResponse struct {
	Members []model.Member `json:"members"`
}

// List godoc
// @Summary List all members
// @Tags members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MembersResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /members [get]
func (h *MemberHandler) List(c echo.Context) error {
	members, err := h.memberService.GetAllMembers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to list members",
			Code:  "MEMBER_LIST_FAILED",
		})
	}
	return c.JSON(http.StatusOK, MembersResponse{Members: members})
}

// Get godoc
// @Summary Get one member
// @Tags members
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} model.Member
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /members/{id} [get]
func (h *MemberHandler) Get(c echo.Context) error {
	member, err := h.memberService.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, member)
}

// Add godoc
// @Summary Add a member (admin)
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddMemberRequest true "Member data"
// @Success 201 {object} model.Member
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /members [post]
func (h *MemberHandler) Add(c echo.Context) error {
	if _, err := requireAdmin(c, h.memberService); err != nil {
		return err
	}

	var req AddMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	member, err := h.memberService.AddUser(c.Request().Context(), service.AddUserInput{
		ID:          req.ID,
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Address:     req.Address,
		Status:      req.Status,
		MemberSince: req.MemberSince,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to add member",
			Code:  "MEMBER_ADD_FAILED",
		})
	}
	return c.JSON(http.StatusCreated, member)
}

// Delete godoc
// @Summary Bulk-delete members (admin)
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeleteMembersRequest true "Member IDs"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /members [delete]
func (h *MemberHandler) Delete(c echo.Context) error {
	if _, err := requireAdmin(c, h.memberService); err != nil {
		return err
	}

	var req DeleteMembersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.memberService.DeleteMembers(c.Request().Context(), req.IDs); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to delete members",
			Code:  "MEMBER_DELETE_FAILED",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "members deleted",
	})
}

// Update godoc
// @Summary Update a member profile (admin)
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param request body UpdateMemberRequest true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /members/{id} [patch]
func (h *MemberHandler) Update(c echo.Context) error {
	if _, err := requireAdmin(c, h.memberService); err != nil {
		return err
	}

	var req UpdateMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.memberService.UpdateMember(c.Request().Context(), c.Param("id"), service.MemberUpdate{
		Name:        req.Name,
		Email:       req.Email,
		Address:     req.Address,
		Status:      req.Status,
		MemberSince: req.MemberSince,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to update member",
			Code:  "MEMBER_UPDATE_FAILED",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "member updated",
	})
}

// UpdatePermission godoc
// @Summary Update a member permission flag (admin)
// @Tags members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param request body UpdatePermissionRequest true "Permission change"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /members/{id}/permissions [patch]
func (h *MemberHandler) UpdatePermission(c echo.Context) error {
	if _, err := requireAdmin(c, h.memberService); err != nil {
		return err
	}

	var req UpdatePermissionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.memberService.UpdateMemberPermission(c.Request().Context(), c.Param("id"), req.Permission, *req.Value)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to update permission",
			Code:  "PERMISSION_UPDATE_FAILED",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "permission updated",
	})
}
