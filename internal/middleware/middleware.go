package middleware

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/farhank0/grocerylink-golang/internal/auth"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware extracts the bearer token and resolves the acting principal.
// It accepts our own session JWTs first; if that fails and a federated
// verifier is configured, the raw identity token is accepted as-is (the web
// client forwards the identity collaborator's token verbatim).
func AuthMiddleware(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format (must be Bearer)"})
			c.Abort()
			return
		}
		tokenString := parts[1]

		userID, err := auth.ValidateToken(tokenString)
		if err != nil && verifier != nil {
			if id, vErr := verifier.Verify(c.Request.Context(), tokenString); vErr == nil {
				userID, err = id.Subject, nil
			}
		}
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// ProviderMiddleware gates provider-only routes. It looks the user's type up
// so a consumer token cannot manage a catalog.
func ProviderMiddleware(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")

		var userType string
		err := db.QueryRow("SELECT user_type FROM users WHERE id = ?", userID).Scan(&userType)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Could not verify account type"})
			c.Abort()
			return
		}

		if userType != "provider" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only providers can perform this action"})
			c.Abort()
			return
		}

		c.Set("userType", userType)
		c.Next()
	}
}
