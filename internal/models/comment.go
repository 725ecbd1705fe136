package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CommentDbName  = "sunibmakan"
	CommentColName = "comments"
)

// Comment belongs to one review. Comments are insert-only: they are never
// edited or deleted once posted.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReviewID  primitive.ObjectID `bson:"review_id" json:"review_id"`
	UserID    uuid.UUID          `bson:"user_id" json:"user_id"`
	Username  string             `bson:"username" json:"username"`
	Text      string             `bson:"text" json:"text" validate:"required"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *Comment) (*Comment, error)
	GetCommentsByReview(ctx context.Context, reviewID primitive.ObjectID) ([]*Comment, error)
}

// NewComment fills comment defaults at creation time. An empty display name
// falls back to "Anonymous", matching how reviews render their authors.
func NewComment(reviewID primitive.ObjectID, userID uuid.UUID, username, text string, now time.Time) *Comment {
	if username == "" {
		username = "Anonymous"
	}
	return &Comment{
		ID:        primitive.NewObjectID(),
		ReviewID:  reviewID,
		UserID:    userID,
		Username:  username,
		Text:      strings.TrimSpace(text),
		CreatedAt: now,
	}
}

func (c *Comment) ValidateComment() error {
	if c.UserID == uuid.Nil {
		return ErrUnauthenticated
	}
	if strings.TrimSpace(c.Text) == "" {
		return fmt.Errorf("comment text is required")
	}
	if c.ReviewID.IsZero() {
		return fmt.Errorf("invalid review ID")
	}
	return nil
}

func (mdb *MongodbRepo) CreateComment(ctx context.Context, comment *Comment) (*Comment, error) {
	if err := comment.ValidateComment(); err != nil {
		return nil, err
	}
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}

	col, err := mdb.GetCollection(ctx, CommentDbName, CommentColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}
	if _, err := col.InsertOne(ctx, comment); err != nil {
		return nil, fmt.Errorf("error inserting comment: %w", err)
	}
	return comment, nil
}

func (mdb *MongodbRepo) GetCommentsByReview(ctx context.Context, reviewID primitive.ObjectID) ([]*Comment, error) {
	col, err := mdb.GetCollection(ctx, CommentDbName, CommentColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	cursor, err := col.Find(ctx, bson.M{"review_id": reviewID})
	if err != nil {
		return nil, fmt.Errorf("error finding comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []*Comment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("error decoding comments: %w", err)
	}
	return comments, nil
}
