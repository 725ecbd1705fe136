package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReviewDbName  = "sunibmakan"
	ReviewColName = "restaurants"

	// Points awarded to the author when a review is created.
	ReviewCreationPoints = 1
)

// VoteKind distinguishes the two vote directions on a review.
type VoteKind string

const (
	VoteLike    VoteKind = "like"
	VoteDislike VoteKind = "dislike"
)

// ImageRole names the two image slots on a review. The Cloudinary public ID
// for a slot is "<review-id>-<role>", so re-uploading replaces the old asset.
type ImageRole string

const (
	RestaurantImageRole ImageRole = "restaurant-image"
	MenuImageRole       ImageRole = "menu-image"
)

// Review is a restaurant evaluation stored in the restaurants collection.
// LikedBy/DislikedBy hold the principal IDs that already voted; each ID
// appears at most once per list, but nothing stops the same principal from
// appearing in both (liking and disliking the same review is allowed).
type Review struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name" validate:"required"`
	Address         string             `bson:"address" json:"address"`
	Description     string             `bson:"description" json:"description"`
	PhoneNumber     string             `bson:"phone_number" json:"phone_number"`
	Rating          float64            `bson:"rating" json:"rating" validate:"min=0,max=5"`
	UserID          uuid.UUID          `bson:"user_id" json:"user_id"`
	ReviewerName    string             `bson:"reviewer_name" json:"reviewer_name"`
	RestaurantImage string             `bson:"restaurant_image" json:"restaurant_image"`
	MenuImage       string             `bson:"menu_image" json:"menu_image"`
	Likes           int64              `bson:"likes" json:"likes"`
	Dislikes        int64              `bson:"dislikes" json:"dislikes"`
	LikedBy         []uuid.UUID        `bson:"liked_by" json:"liked_by"`
	DislikedBy      []uuid.UUID        `bson:"disliked_by" json:"disliked_by"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// ReviewInput carries the caller-supplied fields of a review submission.
// Image fields hold upload payloads (data URIs), not stored URLs.
type ReviewInput struct {
	Name            string  `json:"name" binding:"required"`
	Address         string  `json:"address"`
	Description     string  `json:"description"`
	PhoneNumber     string  `json:"phone_number"`
	Rating          float64 `json:"rating"`
	RestaurantImage string  `json:"restaurant_image"`
	MenuImage       string  `json:"menu_image"`
}

// NewReview builds a review record with every default filled in once, at
// creation time. Counters start at zero, membership lists empty, the owner
// is the acting principal. Downstream code never re-derives these defaults.
func NewReview(in ReviewInput, userID uuid.UUID, reviewerName string, now time.Time) *Review {
	return &Review{
		ID:           primitive.NewObjectID(),
		Name:         strings.TrimSpace(in.Name),
		Address:      strings.TrimSpace(in.Address),
		Description:  strings.TrimSpace(in.Description),
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		Rating:       clampRating(in.Rating),
		UserID:       userID,
		ReviewerName: reviewerName,
		Likes:        0,
		Dislikes:     0,
		LikedBy:      []uuid.UUID{},
		DislikedBy:   []uuid.UUID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func clampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}

func (r *Review) ValidateReview() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("restaurant name is required")
	}
	if r.UserID == uuid.Nil {
		return fmt.Errorf("invalid user ID")
	}
	if r.Rating < 0 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	return nil
}

// IsOwnedBy reports whether the acting principal may edit or delete this
// review. The check mirrors the store's own access rule exactly.
func (r *Review) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && r.UserID == userID
}

// ApplyVote applies a like or dislike to the in-memory record. The counter
// and the membership list move together: +1 and one appended ID, or neither.
// A second vote of the same kind by the same principal returns
// ErrAlreadyVoted and leaves the record untouched.
func (r *Review) ApplyVote(userID uuid.UUID, kind VoteKind) error {
	if userID == uuid.Nil {
		return ErrUnauthenticated
	}
	switch kind {
	case VoteLike:
		if containsID(r.LikedBy, userID) {
			return ErrAlreadyVoted
		}
		r.Likes++
		r.LikedBy = append(r.LikedBy, userID)
	case VoteDislike:
		if containsID(r.DislikedBy, userID) {
			return ErrAlreadyVoted
		}
		r.Dislikes++
		r.DislikedBy = append(r.DislikedBy, userID)
	default:
		return fmt.Errorf("unknown vote kind %q", kind)
	}
	return nil
}

// HasVoted reports whether the principal already cast a vote of the given kind.
func (r *Review) HasVoted(userID uuid.UUID, kind VoteKind) bool {
	if kind == VoteLike {
		return containsID(r.LikedBy, userID)
	}
	return containsID(r.DislikedBy, userID)
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
