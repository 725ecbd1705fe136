package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sunibmakan/server/internal/connect"
	"github.com/sunibmakan/server/internal/helpers"
	"github.com/sunibmakan/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewService struct {
	reviewRepo models.ReviewRepo
	pointsRepo models.PointsRepo
}

func NewReviewService(reviewRepo models.ReviewRepo, pointsRepo models.PointsRepo) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		pointsRepo: pointsRepo,
	}
}

// SubmitReview persists a new review owned by the acting principal, uploads
// any supplied images under IDs derived from the fresh review ID, and awards
// the author a point. The three steps are not transactional: a failure after
// the insert leaves the review in place and is surfaced to the caller.
func (rs *ReviewService) SubmitReview(ctx context.Context, in models.ReviewInput, userID uuid.UUID, reviewerName string) (*models.Review, error) {
	if userID == uuid.Nil {
		return nil, models.ErrUnauthenticated
	}

	review := models.NewReview(in, userID, reviewerName, time.Now())
	if err := models.Validate.Struct(review); err != nil {
		return nil, fmt.Errorf("invalid review data: %v", err)
	}

	created, err := rs.reviewRepo.CreateReview(ctx, review)
	if err != nil {
		return nil, err
	}

	imageFields, err := rs.uploadImages(ctx, created.ID, in.RestaurantImage, in.MenuImage)
	if err != nil {
		return nil, fmt.Errorf("review saved but image upload failed: %w", err)
	}
	if len(imageFields) > 0 {
		if err := rs.reviewRepo.UpdateReview(ctx, created.ID, imageFields); err != nil {
			return nil, fmt.Errorf("review saved but image update failed: %w", err)
		}
		if url, ok := imageFields["restaurant_image"].(string); ok {
			created.RestaurantImage = url
		}
		if url, ok := imageFields["menu_image"].(string); ok {
			created.MenuImage = url
		}
	}

	if err := rs.pointsRepo.IncrementPoints(ctx, userID, models.ReviewCreationPoints); err != nil {
		return nil, fmt.Errorf("review saved but points not awarded: %w", err)
	}

	return created, nil
}

// uploadImages pushes non-empty payloads to Cloudinary and returns the
// field→URL patch for the review document. The public ID embeds the review
// ID and slot role, so repeated uploads replace the slot's asset.
func (rs *ReviewService) uploadImages(ctx context.Context, id primitive.ObjectID, restaurantImage, menuImage string) (map[string]interface{}, error) {
	fields := make(map[string]interface{})

	if restaurantImage != "" {
		publicID := fmt.Sprintf("%s-%s", id.Hex(), models.RestaurantImageRole)
		url, err := helpers.UploadImage(ctx, connect.Cld, restaurantImage, publicID)
		if err != nil {
			return nil, err
		}
		fields["restaurant_image"] = url
	}
	if menuImage != "" {
		publicID := fmt.Sprintf("%s-%s", id.Hex(), models.MenuImageRole)
		url, err := helpers.UploadImage(ctx, connect.Cld, menuImage, publicID)
		if err != nil {
			return nil, err
		}
		fields["menu_image"] = url
	}

	return fields, nil
}

// Feed returns one page of the filtered and ordered review list along with
// the size of the filtered set.
func (rs *ReviewService) Feed(ctx context.Context, searchTerm string, opt models.FilterOption, page, pageSize int) ([]*models.Review, int, error) {
	if page < 1 || pageSize < 1 {
		return nil, 0, fmt.Errorf("invalid page or page size")
	}

	reviews, err := rs.reviewRepo.ListReviews(ctx)
	if err != nil {
		return nil, 0, err
	}

	filtered := models.FilterSortReviews(reviews, searchTerm, opt, time.Now())
	return models.Paginate(filtered, page, pageSize), len(filtered), nil
}

func (rs *ReviewService) GetReview(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("invalid review ID")
	}
	return rs.reviewRepo.GetReviewByID(ctx, id)
}

func (rs *ReviewService) ListUserReviews(ctx context.Context, userID uuid.UUID) ([]*models.Review, error) {
	if userID == uuid.Nil {
		return nil, models.ErrUnauthenticated
	}
	return rs.reviewRepo.ListReviewsByUser(ctx, userID)
}

// updatableFields whitelists what an owner may patch on their review.
var updatableFields = map[string]bool{
	"name":         true,
	"address":      true,
	"description":  true,
	"phone_number": true,
	"rating":       true,
}

// UpdateReview patches an owned review. Image payloads in the input are
// uploaded first and their hosted URLs patched in with the rest.
func (rs *ReviewService) UpdateReview(ctx context.Context, id primitive.ObjectID, userID uuid.UUID, fields map[string]interface{}, restaurantImage, menuImage string) (*models.Review, error) {
	if userID == uuid.Nil {
		return nil, models.ErrUnauthenticated
	}

	review, err := rs.reviewRepo.GetReviewByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !review.IsOwnedBy(userID) {
		return nil, models.ErrPermissionDenied
	}

	patch := make(map[string]interface{})
	for k, v := range fields {
		if !updatableFields[k] {
			continue
		}
		if k == "rating" {
			if rating, ok := v.(float64); ok {
				if rating < 0 || rating > 5 {
					return nil, fmt.Errorf("rating must be between 0 and 5")
				}
			}
		}
		patch[k] = v
	}

	imageFields, err := rs.uploadImages(ctx, id, restaurantImage, menuImage)
	if err != nil {
		return nil, err
	}
	for k, v := range imageFields {
		patch[k] = v
	}

	if len(patch) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	if err := rs.reviewRepo.UpdateReview(ctx, id, patch); err != nil {
		return nil, err
	}
	return rs.reviewRepo.GetReviewByID(ctx, id)
}

func (rs *ReviewService) DeleteReview(ctx context.Context, id primitive.ObjectID, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return models.ErrUnauthenticated
	}

	review, err := rs.reviewRepo.GetReviewByID(ctx, id)
	if err != nil {
		return err
	}
	if !review.IsOwnedBy(userID) {
		return models.ErrPermissionDenied
	}

	return rs.reviewRepo.DeleteReview(ctx, id)
}

// Vote casts a like or dislike. The repo applies the counter increment and
// the membership append as one atomic document update; a duplicate vote of
// the same kind surfaces ErrAlreadyVoted.
func (rs *ReviewService) Vote(ctx context.Context, id primitive.ObjectID, userID uuid.UUID, kind models.VoteKind) error {
	if userID == uuid.Nil {
		return models.ErrUnauthenticated
	}
	return rs.reviewRepo.ApplyVote(ctx, id, userID, kind)
}

// Leaderboard recomputes the full ranking from the live review collection.
func (rs *ReviewService) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	reviews, err := rs.reviewRepo.ListReviews(ctx)
	if err != nil {
		return nil, err
	}
	return models.ComputeLeaderboard(reviews), nil
}

// Roulette draws one random review for the roulette page.
func (rs *ReviewService) Roulette(ctx context.Context) (*models.Review, error) {
	reviews, err := rs.reviewRepo.ListReviews(ctx)
	if err != nil {
		return nil, err
	}
	pick := models.PickRandomReview(reviews)
	if pick == nil {
		return nil, models.ErrNotFound
	}
	return pick, nil
}
