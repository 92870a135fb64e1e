package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "kusgan/internal/errors"
	"kusgan/internal/model"
	"kusgan/internal/service"
)

// memberFromToken resolves the calling member from the JWT claims set by the
// auth middleware. The member is looked up on the roster rather than trusted
// from the token, so role and permission changes apply without re-login.
func memberFromToken(c echo.Context, members service.MemberService) (*model.Member, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	id, _ := claims["user_id"].(string)
	if id == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	member, err := members.FindByID(c.Request().Context(), id)
	if err != nil {
		if err == apperrors.ErrMemberNotFound {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown member")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "failed to resolve member",
			Code:  "INTERNAL_ERROR",
		})
	}
	return member, nil
}

// requireAdmin resolves the calling member and rejects non-admins.
func requireAdmin(c echo.Context, members service.MemberService) (*model.Member, error) {
	member, err := memberFromToken(c, members)
	if err != nil {
		return nil, err
	}
	if member.Role != model.RoleAdmin {
		httpErr := apperrors.MapErrorToHTTP(apperrors.ErrAdminOnly)
		return nil, echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return member, nil
}
