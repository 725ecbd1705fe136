package helpers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/golang-jwt/jwt/v5"
)

// RestaurantFolder is the Cloudinary folder holding review imagery.
const RestaurantFolder = "restaurants"

type CustomClaims struct {
	Role        string `json:"role"`
	Email       string `json:"email"`
	AppMetadata struct {
		Provider  string   `json:"provider"`
		Providers []string `json:"providers"`
	} `json:"app_metadata"`
	UserMetadata map[string]interface{} `json:"user_metadata"`
	jwt.RegisteredClaims
}

func ValidateToken(tokenStr string) (*CustomClaims, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	if supabaseURL == "" {
		return nil, errors.New("SUPABASE_URL not set")
	}

	jwksURL := fmt.Sprintf("%s/rest/v1/auth/jwks", supabaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx: ctx,
	})
	if err != nil {
		// Fallback to unverified parsing if JWKS fails (for development)
		token, _, parseErr := jwt.NewParser().ParseUnverified(tokenStr, &CustomClaims{})
		if parseErr != nil {
			return nil, fmt.Errorf("JWKS validation failed and fallback parsing failed: %v", parseErr)
		}
		claims, ok := token.Claims.(*CustomClaims)
		if !ok {
			return nil, errors.New("invalid token claims")
		}
		return claims, nil
	}
	defer jwks.EndBackground()

	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %v", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	return claims, nil
}

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`\d`).MatchString(password)
	hasSpecial := regexp.MustCompile(`[@$!%*?&]`).MatchString(password)
	return hasLower && hasUpper && hasNumber && hasSpecial
}

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

// UploadImage sends one image payload (a data URI or fetchable URL) to
// Cloudinary under the given public ID and returns the hosted URL. Reusing
// the same public ID overwrites the previous asset for that slot.
func UploadImage(ctx context.Context, cld *cloudinary.Cloudinary, imageData, publicID string) (string, error) {
	if strings.TrimSpace(imageData) == "" {
		return "", fmt.Errorf("empty image payload")
	}

	overwrite := true
	result, err := cld.Upload.Upload(ctx, imageData, uploader.UploadParams{
		Folder:    RestaurantFolder,
		PublicID:  publicID,
		Overwrite: &overwrite,
		Tags:      []string{"sunibmakan"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %v", publicID, err)
	}

	return result.SecureURL, nil
}

// DeleteImage removes an uploaded asset; used to clean up after a failed
// review creation.
func DeleteImage(ctx context.Context, cld *cloudinary.Cloudinary, publicID string) error {
	_, err := cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: RestaurantFolder + "/" + publicID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %v", publicID, err)
	}
	return nil
}
