package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sunibmakan/server/internal/models"
	"github.com/sunibmakan/server/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// reviewID normalizes and parses the :id path parameter.
func reviewID(c *gin.Context) (primitive.ObjectID, bool) {
	raw := strings.TrimSpace(c.Param("id"))
	raw = strings.Trim(raw, "\"'")
	if raw == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("review ID is required"))
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid review ID format"))
		return primitive.NilObjectID, false
	}
	return id, true
}

func CreateReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, claims, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("you must be signed in to add a review"))
			return
		}

		var in models.ReviewInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := rs.SubmitReview(c.Request.Context(), in, userID, claims.DisplayName())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Review created successfully"))
	}
}

func ListReviews(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		filter := models.ParseFilterOption(c.DefaultQuery("filter", string(models.FilterAll)))

		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid page parameter"))
			return
		}
		pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(models.DefaultPageSize)))
		if err != nil || pageSize < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid page_size parameter"))
			return
		}

		reviews, total, err := rs.Feed(c.Request.Context(), search, filter, page, pageSize)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.PaginatedResponse(reviews, page, pageSize, total))
	}
}

func GetReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := reviewID(c)
		if !ok {
			return
		}

		review, err := rs.GetReview(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(review, ""))
	}
}

func ListMyReviews(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
			return
		}

		reviews, err := rs.ListUserReviews(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(reviews, ""))
	}
}

// reviewPatch is the JSON body of an edit request. Image fields carry new
// upload payloads; nil field pointers mean "leave unchanged".
type reviewPatch struct {
	Name            *string  `json:"name"`
	Address         *string  `json:"address"`
	Description     *string  `json:"description"`
	PhoneNumber     *string  `json:"phone_number"`
	Rating          *float64 `json:"rating"`
	RestaurantImage string   `json:"restaurant_image"`
	MenuImage       string   `json:"menu_image"`
}

func (p reviewPatch) fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Address != nil {
		fields["address"] = *p.Address
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.PhoneNumber != nil {
		fields["phone_number"] = *p.PhoneNumber
	}
	if p.Rating != nil {
		fields["rating"] = *p.Rating
	}
	return fields
}

func UpdateReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := reviewID(c)
		if !ok {
			return
		}

		userID, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("you must be signed in to update a review"))
			return
		}

		var patch reviewPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		updated, err := rs.UpdateReview(c.Request.Context(), id, userID, patch.fields(), patch.RestaurantImage, patch.MenuImage)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(updated, "Review updated successfully"))
	}
}

func DeleteReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := reviewID(c)
		if !ok {
			return
		}

		userID, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("you must be signed in to delete a review"))
			return
		}

		if err := rs.DeleteReview(c.Request.Context(), id, userID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Review deleted successfully"))
	}
}

func voteHandler(rs *services.ReviewService, kind models.VoteKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := reviewID(c)
		if !ok {
			return
		}

		userID, _, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("you must be signed in to vote"))
			return
		}

		if err := rs.Vote(c.Request.Context(), id, userID, kind); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Vote recorded"))
	}
}

func LikeReview(rs *services.ReviewService) gin.HandlerFunc {
	return voteHandler(rs, models.VoteLike)
}

func DislikeReview(rs *services.ReviewService) gin.HandlerFunc {
	return voteHandler(rs, models.VoteDislike)
}

func RouletteReview(rs *services.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		pick, err := rs.Roulette(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(pick, ""))
	}
}
