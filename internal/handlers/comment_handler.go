package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sunibmakan/server/internal/models"
	"github.com/sunibmakan/server/internal/services"
)

func AddComment(cs *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := reviewID(c)
		if !ok {
			return
		}

		userID, claims, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("you need to sign in to leave a comment"))
			return
		}

		var body struct {
			Text string `json:"text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := cs.AddComment(c.Request.Context(), id, userID, claims.DisplayName(), body.Text)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Comment added"))
	}
}

func ListComments(cs *services.CommentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := reviewID(c)
		if !ok {
			return
		}

		comments, err := cs.GetComments(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(comments, ""))
	}
}
