package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sunibmakan/server/internal/helpers"
	"github.com/sunibmakan/server/internal/models"
)

// currentUser pulls the authenticated principal out of the Gin context as
// set by the auth middleware. ok is false when the request is anonymous or
// the claims are malformed.
func currentUser(c *gin.Context) (uuid.UUID, *helpers.EnhancedClaims, bool) {
	userClaims, exists := c.Get("user")
	if !exists {
		return uuid.Nil, nil, false
	}
	claims, ok := userClaims.(*helpers.EnhancedClaims)
	if !ok {
		return uuid.Nil, nil, false
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, nil, false
	}
	return userID, claims, true
}

// respondError translates domain sentinel errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("you must be signed in"))
	case errors.Is(err, models.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, models.ErrorResponse("you don't have permission to do that"))
	case errors.Is(err, models.ErrAlreadyVoted):
		c.JSON(http.StatusConflict, models.ErrorResponse("you have already voted on this review"))
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse("not found"))
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
	}
}
