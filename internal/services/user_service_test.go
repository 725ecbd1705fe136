package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sunibmakan/server/internal/models"
)

func TestQuestBoardAnonymous(t *testing.T) {
	svc := NewUserService(nil, newFakePointsRepo())

	quests, points, err := svc.QuestBoard(context.Background(), uuid.Nil)
	if err != nil {
		t.Fatalf("QuestBoard failed: %v", err)
	}
	if len(quests) == 0 {
		t.Error("anonymous caller should still see the quest catalog")
	}
	if points != 0 {
		t.Errorf("anonymous points = %d, want 0", points)
	}
}

func TestQuestBoardWithPoints(t *testing.T) {
	pointsRepo := newFakePointsRepo()
	svc := NewUserService(nil, pointsRepo)
	user := uuid.New()

	if err := pointsRepo.IncrementPoints(context.Background(), user, 3); err != nil {
		t.Fatalf("seeding points failed: %v", err)
	}

	_, points, err := svc.QuestBoard(context.Background(), user)
	if err != nil {
		t.Fatalf("QuestBoard failed: %v", err)
	}
	if points != 3 {
		t.Errorf("points = %d, want 3", points)
	}
}

func TestGetPointsRequiresPrincipal(t *testing.T) {
	svc := NewUserService(nil, newFakePointsRepo())

	if _, err := svc.GetPoints(context.Background(), uuid.Nil); !errors.Is(err, models.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestGetPointsDefaultsToZero(t *testing.T) {
	svc := NewUserService(nil, newFakePointsRepo())

	points, err := svc.GetPoints(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetPoints failed: %v", err)
	}
	if points != 0 {
		t.Errorf("points = %d, want 0 for a user with no record", points)
	}
}
