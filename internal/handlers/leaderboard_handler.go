package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sunibmakan/server/internal/models"
	"github.com/sunibmakan/server/internal/services"
)

func GetLeaderboard(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := rs.Leaderboard(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(entries, ""))
	}
}

// GetQuests serves the quest catalog. Anonymous callers get the catalog with
// zero points; signed-in callers get their live counter alongside.
func GetQuests(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, _ := currentUser(c)

		quests, points, err := us.QuestBoard(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{
			"quests": quests,
			"points": points,
		}, ""))
	}
}

func GetMyPoints(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentUser(c)
		if !ok || userID == uuid.Nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("you must be signed in to view your points"))
			return
		}

		points, err := us.GetPoints(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(gin.H{"points": points}, ""))
	}
}
