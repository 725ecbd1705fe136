package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReviewRepo interface {
	CreateReview(ctx context.Context, review *Review) (*Review, error)
	GetReviewByID(ctx context.Context, id primitive.ObjectID) (*Review, error)
	ListReviews(ctx context.Context) ([]*Review, error)
	ListReviewsByUser(ctx context.Context, userID uuid.UUID) ([]*Review, error)
	UpdateReview(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error
	DeleteReview(ctx context.Context, id primitive.ObjectID) error
	ApplyVote(ctx context.Context, id primitive.ObjectID, userID uuid.UUID, kind VoteKind) error
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, dbName, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	return mdb.mongodbClient.Database(dbName).Collection(colName), nil
}

func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *Review) (*Review, error) {
	if err := review.ValidateReview(); err != nil {
		return nil, fmt.Errorf("invalid review data: %w", err)
	}
	if review.ID.IsZero() {
		review.ID = primitive.NewObjectID()
	}

	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	if _, err := col.InsertOne(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to insert review into database: %w", err)
	}

	return review, nil
}

func (mdb *MongodbRepo) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*Review, error) {
	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var review Review
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding review: %w", err)
	}
	return &review, nil
}

func (mdb *MongodbRepo) ListReviews(ctx context.Context) ([]*Review, error) {
	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	cursor, err := col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error finding reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []*Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("error decoding reviews: %w", err)
	}
	return reviews, nil
}

func (mdb *MongodbRepo) ListReviewsByUser(ctx context.Context, userID uuid.UUID) ([]*Review, error) {
	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	cursor, err := col.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("error finding user reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []*Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("error decoding user reviews: %w", err)
	}
	return reviews, nil
}

func (mdb *MongodbRepo) UpdateReview(ctx context.Context, id primitive.ObjectID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return fmt.Errorf("no fields to update")
	}

	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating review: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (mdb *MongodbRepo) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting review: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyVote records a like or dislike in one document-level atomic update:
// the filter excludes documents where the principal is already in the
// membership list, and the update pairs $inc with $addToSet so the counter
// and the list can never drift apart. A zero-match result means the review
// is gone or the principal already voted; a follow-up read tells which.
func (mdb *MongodbRepo) ApplyVote(ctx context.Context, id primitive.ObjectID, userID uuid.UUID, kind VoteKind) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}

	var counterField, listField string
	switch kind {
	case VoteLike:
		counterField, listField = "likes", "liked_by"
	case VoteDislike:
		counterField, listField = "dislikes", "disliked_by"
	default:
		return fmt.Errorf("unknown vote kind %q", kind)
	}

	col, err := mdb.GetCollection(ctx, ReviewDbName, ReviewColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{
		"_id":     id,
		listField: bson.M{"$ne": userID},
	}
	update := bson.M{
		"$inc":      bson.M{counterField: 1},
		"$addToSet": bson.M{listField: userID},
	}

	res, err := col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error applying vote: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	if err := col.FindOne(ctx, bson.M{"_id": id}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("error checking review: %w", err)
	}
	return ErrAlreadyVoted
}
