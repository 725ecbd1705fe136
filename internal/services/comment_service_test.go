package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sunibmakan/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeCommentRepo struct {
	comments []*models.Comment
}

func (f *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) (*models.Comment, error) {
	if err := comment.ValidateComment(); err != nil {
		return nil, err
	}
	f.comments = append(f.comments, comment)
	return comment, nil
}

func (f *fakeCommentRepo) GetCommentsByReview(_ context.Context, reviewID primitive.ObjectID) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newCommentTestService() (*CommentService, *fakeReviewRepo, *fakeCommentRepo) {
	reviews := newFakeReviewRepo()
	comments := &fakeCommentRepo{}
	return NewCommentService(comments, reviews), reviews, comments
}

func TestAddCommentRequiresPrincipal(t *testing.T) {
	svc, _, repo := newCommentTestService()

	_, err := svc.AddComment(context.Background(), primitive.NewObjectID(), uuid.Nil, "", "hi")
	if !errors.Is(err, models.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if len(repo.comments) != 0 {
		t.Error("rejected comment was persisted")
	}
}

func TestAddCommentRequiresExistingReview(t *testing.T) {
	svc, _, _ := newCommentTestService()

	_, err := svc.AddComment(context.Background(), primitive.NewObjectID(), uuid.New(), "budi", "hi")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing review, got %v", err)
	}
}

func TestAddCommentAndListByReview(t *testing.T) {
	svc, reviews, _ := newCommentTestService()
	author := uuid.New()

	review := models.NewReview(models.ReviewInput{Name: "Warung"}, author, "budi", time.Now())
	if _, err := reviews.CreateReview(context.Background(), review); err != nil {
		t.Fatalf("seeding review failed: %v", err)
	}
	other := models.NewReview(models.ReviewInput{Name: "Sate"}, author, "budi", time.Now())
	if _, err := reviews.CreateReview(context.Background(), other); err != nil {
		t.Fatalf("seeding review failed: %v", err)
	}

	posted, err := svc.AddComment(context.Background(), review.ID, uuid.New(), "citra", "enak banget")
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if posted.Username != "citra" {
		t.Errorf("username = %q, want citra", posted.Username)
	}
	if _, err := svc.AddComment(context.Background(), other.ID, uuid.New(), "", "biasa aja"); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	got, err := svc.GetComments(context.Background(), review.ID)
	if err != nil {
		t.Fatalf("GetComments failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != posted.ID {
		t.Errorf("expected only the comment on the first review, got %d", len(got))
	}
}
