package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sunibmakan/server/internal/helpers"
	"github.com/sunibmakan/server/internal/services"
	"github.com/supabase-community/gotrue-go/types"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			// Don't return error details in production
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

// AuthMiddleware validates the cookie-carried Supabase JWT (refreshing it
// when expired), resolves the caller's profile, and stores enhanced claims
// in the context. Requests without a valid session are rejected.
func AuthMiddleware(userService *services.UserService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := resolveClaims(c, userService, logger)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized access",
				"error":   "valid session required",
			})
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves claims when a session cookie is present
// but lets anonymous requests straight through. Used by endpoints whose
// response is merely enriched for signed-in callers.
func OptionalAuthMiddleware(userService *services.UserService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := resolveClaims(c, userService, logger); ok {
			c.Set("user", claims)
		}
		c.Next()
	}
}

func resolveClaims(c *gin.Context, userService *services.UserService, logger *slog.Logger) (*helpers.EnhancedClaims, bool) {
	token, err := c.Cookie("access_token")
	if err != nil {
		return nil, false
	}

	claims, err := helpers.ValidateToken(token)
	if err != nil {
		// Token validation failed, try to refresh
		refreshToken, refreshErr := c.Cookie("refresh_token")
		if refreshErr != nil {
			return nil, false
		}

		refreshResponse, refreshErr := userService.RefreshToken(refreshToken)
		if refreshErr != nil {
			logger.Error("Token refresh failed", "error", refreshErr)
			return nil, false
		}

		tokenRes, ok := refreshResponse.(*types.TokenResponse)
		if !ok || tokenRes.AccessToken == "" {
			return nil, false
		}

		logger.Info("Token refreshed successfully",
			"user_id", tokenRes.User.ID,
			"expires_in", tokenRes.ExpiresIn,
		)

		isProduction := os.Getenv("GIN_MODE") == "production"
		c.SetCookie(
			"access_token",
			tokenRes.AccessToken,
			tokenRes.ExpiresIn,
			"/",
			"", // let Gin pick current domain
			isProduction,
			true,
		)
		c.SetCookie(
			"refresh_token",
			tokenRes.RefreshToken,
			3600*24*30, // 30 days
			"/",
			"",
			isProduction,
			true,
		)

		token = tokenRes.AccessToken
		claims, err = helpers.ValidateToken(token)
		if err != nil {
			return nil, false
		}
	}

	// Resolve profile data so reviews and comments carry a display name
	var username, fullname, avatarURL string
	var createdAt time.Time
	userID, parseErr := uuid.Parse(claims.Subject)
	if parseErr != nil {
		logger.Error("Invalid user ID in token", "user_id", claims.Subject, "error", parseErr)
		return nil, false
	}

	user, err := userService.GetUser(userID, token)
	if err != nil {
		logger.Info("Profile not found, continuing without display name",
			"user_id", claims.Subject,
			"error", err,
		)
	} else {
		username = user.Username
		fullname = user.FullName
		avatarURL = user.AvatarURL
		createdAt = user.CreatedAt
	}

	return &helpers.EnhancedClaims{
		CustomClaims: claims,
		UserID:       claims.Subject,
		Email:        claims.Email,
		Username:     username,
		Fullname:     fullname,
		AvatarURL:    avatarURL,
		CreatedAt:    createdAt.Format(time.RFC3339),
	}, true
}
