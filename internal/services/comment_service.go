package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sunibmakan/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CommentService struct {
	commentRepo models.CommentRepo
	reviewRepo  models.ReviewRepo
}

func NewCommentService(commentRepo models.CommentRepo, reviewRepo models.ReviewRepo) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// AddComment posts a comment under an existing review. Commenting is open to
// any authenticated principal, not just the review's owner.
func (cs *CommentService) AddComment(ctx context.Context, reviewID primitive.ObjectID, userID uuid.UUID, username, text string) (*models.Comment, error) {
	if userID == uuid.Nil {
		return nil, models.ErrUnauthenticated
	}

	if _, err := cs.reviewRepo.GetReviewByID(ctx, reviewID); err != nil {
		return nil, err
	}

	comment := models.NewComment(reviewID, userID, username, text, time.Now())
	return cs.commentRepo.CreateComment(ctx, comment)
}

func (cs *CommentService) GetComments(ctx context.Context, reviewID primitive.ObjectID) ([]*models.Comment, error) {
	return cs.commentRepo.GetCommentsByReview(ctx, reviewID)
}
