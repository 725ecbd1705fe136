package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sunibmakan/server/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeReviewRepo keeps reviews in memory and reuses the model's own vote
// logic so the service sees the same error surface as the Mongo repo.
type fakeReviewRepo struct {
	reviews map[primitive.ObjectID]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[primitive.ObjectID]*models.Review)}
}

func (f *fakeReviewRepo) CreateReview(_ context.Context, review *models.Review) (*models.Review, error) {
	f.reviews[review.ID] = review
	return review, nil
}

func (f *fakeReviewRepo) GetReviewByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return r, nil
}

func (f *fakeReviewRepo) ListReviews(_ context.Context) ([]*models.Review, error) {
	out := make([]*models.Review, 0, len(f.reviews))
	for _, r := range f.reviews {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReviewRepo) ListReviewsByUser(_ context.Context, userID uuid.UUID) ([]*models.Review, error) {
	var out []*models.Review
	for _, r := range f.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) UpdateReview(_ context.Context, id primitive.ObjectID, fields map[string]interface{}) error {
	r, ok := f.reviews[id]
	if !ok {
		return models.ErrNotFound
	}
	if name, ok := fields["name"].(string); ok {
		r.Name = name
	}
	if rating, ok := fields["rating"].(float64); ok {
		r.Rating = rating
	}
	return nil
}

func (f *fakeReviewRepo) DeleteReview(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.reviews[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) ApplyVote(_ context.Context, id primitive.ObjectID, userID uuid.UUID, kind models.VoteKind) error {
	r, ok := f.reviews[id]
	if !ok {
		return models.ErrNotFound
	}
	return r.ApplyVote(userID, kind)
}

type fakePointsRepo struct {
	points map[uuid.UUID]int64
}

func newFakePointsRepo() *fakePointsRepo {
	return &fakePointsRepo{points: make(map[uuid.UUID]int64)}
}

func (f *fakePointsRepo) IncrementPoints(_ context.Context, userID uuid.UUID, delta int64) error {
	f.points[userID] += delta
	return nil
}

func (f *fakePointsRepo) GetPoints(_ context.Context, userID uuid.UUID) (int64, error) {
	return f.points[userID], nil
}

func newTestService() (*ReviewService, *fakeReviewRepo, *fakePointsRepo) {
	reviews := newFakeReviewRepo()
	points := newFakePointsRepo()
	return NewReviewService(reviews, points), reviews, points
}

func TestSubmitReviewRequiresPrincipal(t *testing.T) {
	svc, repo, points := newTestService()

	_, err := svc.SubmitReview(context.Background(), models.ReviewInput{Name: "Warung"}, uuid.Nil, "")
	if !errors.Is(err, models.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if len(repo.reviews) != 0 {
		t.Error("rejected submission persisted a review")
	}
	if len(points.points) != 0 {
		t.Error("rejected submission awarded points")
	}
}

func TestSubmitReviewAwardsPoint(t *testing.T) {
	svc, repo, points := newTestService()
	author := uuid.New()

	created, err := svc.SubmitReview(context.Background(), models.ReviewInput{Name: "Warung Tekko", Rating: 4}, author, "budi")
	if err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}
	if _, ok := repo.reviews[created.ID]; !ok {
		t.Error("review not persisted")
	}
	if created.ReviewerName != "budi" {
		t.Errorf("reviewer name = %q, want budi", created.ReviewerName)
	}
	if points.points[author] != models.ReviewCreationPoints {
		t.Errorf("author points = %d, want %d", points.points[author], models.ReviewCreationPoints)
	}
}

func TestVoteDuplicateSameKind(t *testing.T) {
	svc, _, _ := newTestService()
	author := uuid.New()
	voter := uuid.New()

	created, err := svc.SubmitReview(context.Background(), models.ReviewInput{Name: "Warung"}, author, "")
	if err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	if err := svc.Vote(context.Background(), created.ID, voter, models.VoteLike); err != nil {
		t.Fatalf("first like failed: %v", err)
	}
	if err := svc.Vote(context.Background(), created.ID, voter, models.VoteLike); !errors.Is(err, models.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
	if created.Likes != 1 {
		t.Errorf("likes = %d, want 1", created.Likes)
	}
}

func TestVoteMissingReview(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Vote(context.Background(), primitive.NewObjectID(), uuid.New(), models.VoteDislike)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateReviewOwnership(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	created, err := svc.SubmitReview(context.Background(), models.ReviewInput{Name: "Old Name"}, owner, "")
	if err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	_, err = svc.UpdateReview(context.Background(), created.ID, uuid.New(), map[string]interface{}{"name": "Hijacked"}, "", "")
	if !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for a stranger, got %v", err)
	}

	updated, err := svc.UpdateReview(context.Background(), created.ID, owner, map[string]interface{}{"name": "New Name"}, "", "")
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Name != "New Name" {
		t.Errorf("name = %q, want New Name", updated.Name)
	}
}

func TestUpdateReviewIgnoresNonWhitelistedFields(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	created, err := svc.SubmitReview(context.Background(), models.ReviewInput{Name: "Warung"}, owner, "")
	if err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	_, err = svc.UpdateReview(context.Background(), created.ID, owner, map[string]interface{}{"likes": int64(999)}, "", "")
	if err == nil {
		t.Fatal("patch with only counter fields should be rejected as empty")
	}
	if created.Likes != 0 {
		t.Errorf("likes = %d, counters must not be patchable", created.Likes)
	}
}

func TestUpdateReviewRejectsOutOfRangeRating(t *testing.T) {
	svc, _, _ := newTestService()
	owner := uuid.New()

	created, err := svc.SubmitReview(context.Background(), models.ReviewInput{Name: "Warung"}, owner, "")
	if err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	if _, err := svc.UpdateReview(context.Background(), created.ID, owner, map[string]interface{}{"rating": 9.0}, "", ""); err == nil {
		t.Error("rating above 5 accepted")
	}
}

func TestDeleteReviewOwnership(t *testing.T) {
	svc, repo, _ := newTestService()
	owner := uuid.New()

	created, err := svc.SubmitReview(context.Background(), models.ReviewInput{Name: "Warung"}, owner, "")
	if err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	if err := svc.DeleteReview(context.Background(), created.ID, uuid.New()); !errors.Is(err, models.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for a stranger, got %v", err)
	}
	if err := svc.DeleteReview(context.Background(), created.ID, owner); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if len(repo.reviews) != 0 {
		t.Error("review still present after delete")
	}
}

func TestFeedReportsFilteredTotal(t *testing.T) {
	svc, _, _ := newTestService()
	author := uuid.New()

	for i := 0; i < 8; i++ {
		if _, err := svc.SubmitReview(context.Background(), models.ReviewInput{Name: "Bakmi"}, author, ""); err != nil {
			t.Fatalf("SubmitReview failed: %v", err)
		}
	}
	if _, err := svc.SubmitReview(context.Background(), models.ReviewInput{Name: "Sate"}, author, ""); err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	page, total, err := svc.Feed(context.Background(), "bakmi", models.FilterAll, 1, models.DefaultPageSize)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if total != 8 {
		t.Errorf("total = %d, want 8", total)
	}
	if len(page) != models.DefaultPageSize {
		t.Errorf("page size = %d, want %d", len(page), models.DefaultPageSize)
	}

	if _, _, err := svc.Feed(context.Background(), "", models.FilterAll, 0, models.DefaultPageSize); err == nil {
		t.Error("page 0 accepted")
	}
}

func TestRouletteEmptyCollection(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.Roulette(context.Background()); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty collection, got %v", err)
	}
}

func TestRouletteReturnsStoredReview(t *testing.T) {
	svc, _, _ := newTestService()
	author := uuid.New()

	created, err := svc.SubmitReview(context.Background(), models.ReviewInput{Name: "Warung"}, author, "")
	if err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	pick, err := svc.Roulette(context.Background())
	if err != nil {
		t.Fatalf("Roulette failed: %v", err)
	}
	if pick.ID != created.ID {
		t.Error("roulette returned a review that was never stored")
	}
}

func TestListUserReviews(t *testing.T) {
	svc, _, _ := newTestService()
	alice := uuid.New()
	bob := uuid.New()

	if _, err := svc.SubmitReview(context.Background(), models.ReviewInput{Name: "A"}, alice, ""); err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}
	if _, err := svc.SubmitReview(context.Background(), models.ReviewInput{Name: "B"}, bob, ""); err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	mine, err := svc.ListUserReviews(context.Background(), alice)
	if err != nil {
		t.Fatalf("ListUserReviews failed: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != alice {
		t.Errorf("expected exactly alice's review, got %d items", len(mine))
	}

	if _, err := svc.ListUserReviews(context.Background(), uuid.Nil); !errors.Is(err, models.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated for nil principal, got %v", err)
	}
}
