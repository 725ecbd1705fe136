package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	PointsDbName  = "sunibmakan"
	PointsColName = "users"
)

// UserPoints is the per-user activity counter keyed by the Supabase user ID.
// It only ever goes up; deleting a review does not take points back, so the
// counter and the leaderboard's live tally are allowed to diverge.
type UserPoints struct {
	UserID    uuid.UUID `bson:"_id" json:"user_id"`
	Points    int64     `bson:"points" json:"points"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type PointsRepo interface {
	IncrementPoints(ctx context.Context, userID uuid.UUID, delta int64) error
	GetPoints(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Quest is a static catalog entry shown on the quest page. Only the review
// creation quest is wired to the points counter; the rest are display-only.
type Quest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int64  `json:"points"`
}

func DefaultQuests() []Quest {
	return []Quest{
		{Title: "Create a Review", Description: "Submit a restaurant review and earn +1 point.", Points: 1},
		{Title: "Like 10 Reviews", Description: "Like 10 restaurant reviews to earn +5 points.", Points: 5},
		{Title: "Dislike 10 Reviews", Description: "Dislike 10 restaurant reviews to earn +2 points.", Points: 2},
		{Title: "Leave 5 Comments", Description: "Comment on 5 different restaurant reviews to earn +2 points.", Points: 2},
		{Title: "Complete 10 Reviews", Description: "Write and submit 10 restaurant reviews to earn +10 points.", Points: 10},
	}
}

// IncrementPoints applies an atomic $inc upsert, creating the counter
// document on a user's first review.
func (mdb *MongodbRepo) IncrementPoints(ctx context.Context, userID uuid.UUID, delta int64) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}

	col, err := mdb.GetCollection(ctx, PointsDbName, PointsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	update := bson.M{
		"$inc": bson.M{"points": delta},
		"$set": bson.M{"updated_at": time.Now()},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := col.UpdateOne(ctx, bson.M{"_id": userID}, update, opts); err != nil {
		return fmt.Errorf("error incrementing points: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) GetPoints(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, ErrUnauthenticated
	}

	col, err := mdb.GetCollection(ctx, PointsDbName, PointsColName)
	if err != nil {
		return 0, fmt.Errorf("error getting collection: %w", err)
	}

	var record UserPoints
	if err := col.FindOne(ctx, bson.M{"_id": userID}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("error reading points: %w", err)
	}
	return record.Points, nil
}
