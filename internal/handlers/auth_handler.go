package handlers

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sunibmakan/server/internal/services"
)

func frontendURL() string {
	if url := os.Getenv("FRONTEND_URL"); url != "" {
		return url
	}
	if os.Getenv("GIN_MODE") == "production" {
		return "https://sunibmakan.app"
	}
	return "http://localhost:3000"
}

// GoogleAuth initiates the Google OAuth flow via Supabase
func GoogleAuth(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		redirectTo := c.Query("redirect_to")
		if redirectTo == "" {
			redirectTo = frontendURL() + "/auth/callback"
		}

		authURL, err := u.GetGoogleAuthURL(redirectTo)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to generate Google auth URL",
				"message": err.Error(),
			})
			return
		}

		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

// GoogleAuthCallback handles the callback from Google OAuth.
// Supabase sends tokens as URL fragments which only the client can read;
// this endpoint exists for error handling and the final redirect.
func GoogleAuthCallback(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		oauthErr := c.Query("error")
		errorDescription := c.Query("error_description")

		if oauthErr != "" {
			redirectURL := fmt.Sprintf("%s/auth/signin?error=%s&error_description=%s",
				frontendURL(), oauthErr, errorDescription)
			c.Redirect(http.StatusTemporaryRedirect, redirectURL)
			return
		}

		c.Redirect(http.StatusTemporaryRedirect, frontendURL()+"/auth/callback")
	}
}

func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		isProduction := os.Getenv("GIN_MODE") == "production"

		c.SetCookie("access_token", "", -1, "/", "", isProduction, true)
		c.SetCookie("refresh_token", "", -1, "/", "", isProduction, true)

		c.JSON(http.StatusOK, gin.H{
			"message": "Logged out successfully",
		})
	}
}
