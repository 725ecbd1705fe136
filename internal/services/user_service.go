package services

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/google/uuid"
	"github.com/sunibmakan/server/internal/helpers"
	"github.com/sunibmakan/server/internal/models"
)

type UserService struct {
	userRepo   models.UserRepo
	pointsRepo models.PointsRepo
}

func NewUserService(userRepo models.UserRepo, pointsRepo models.PointsRepo) *UserService {
	return &UserService{
		userRepo:   userRepo,
		pointsRepo: pointsRepo,
	}
}

func (us *UserService) CreateUser(user *models.User) (interface{}, error) {
	if err := models.Validate.Struct(user); err != nil {
		return nil, err
	}

	if !helpers.IsPasswordStrong(user.Password) {
		return nil, fmt.Errorf("password is not strong enough")
	}

	return us.userRepo.CreateUser(context.Background(), user)
}

func (us *UserService) AuthenticateUser(email, password string) (interface{}, error) {
	if err := models.Validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("invalid email format: %v", err)
	}
	if err := models.Validate.Var(password, "required,min=8"); err != nil {
		return nil, fmt.Errorf("invalid password format: %v", err)
	}
	response, err := us.userRepo.AuthenticateUser(context.Background(), email, password)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %v", err)
	}

	return response, nil
}

func (us *UserService) RefreshToken(refreshToken string) (interface{}, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token is required")
	}
	response, err := us.userRepo.RefreshToken(context.Background(), refreshToken)
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %v", err)
	}
	return response, nil
}

func (us *UserService) GetUser(id uuid.UUID, accessToken string) (*models.User, error) {
	res, err := us.userRepo.GetUser(context.Background(), id, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return res, nil
}

// GetGoogleAuthURL builds the Supabase authorize URL that starts the Google
// OAuth flow and brings the user back to redirectTo.
func (us *UserService) GetGoogleAuthURL(redirectTo string) (string, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	if supabaseURL == "" {
		return "", fmt.Errorf("SUPABASE_URL not set")
	}
	return fmt.Sprintf("%s/auth/v1/authorize?provider=google&redirect_to=%s",
		supabaseURL, url.QueryEscape(redirectTo)), nil
}

// GetPoints reads the caller's activity counter; a user who never earned
// points gets 0, not an error.
func (us *UserService) GetPoints(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, models.ErrUnauthenticated
	}
	return us.pointsRepo.GetPoints(ctx, userID)
}

// QuestBoard bundles the static quest catalog with the caller's points. An
// anonymous caller gets the catalog with zero points.
func (us *UserService) QuestBoard(ctx context.Context, userID uuid.UUID) ([]models.Quest, int64, error) {
	quests := models.DefaultQuests()
	if userID == uuid.Nil {
		return quests, 0, nil
	}
	points, err := us.pointsRepo.GetPoints(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return quests, points, nil
}
