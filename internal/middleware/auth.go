package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthMiddleware validates a Bearer JWT and sets an actorID in the gin
// context for handlers that need to pass domain.RecordResultRequest.Actor
// or an Approve actor (spec.md §4.2 "a distinct actor").
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		c.Set("username", claims["username"])
		if actorID, exists := claims["actor_id"].(string); exists {
			parsed, err := uuid.Parse(actorID)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid actor identifier in token"})
				c.Abort()
				return
			}
			c.Set("actorID", parsed)
		}
		c.Next()
	}
}

// Actor pulls the authenticated actor id set by AuthMiddleware.
func Actor(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("actorID")
	if !ok {
		return uuid.UUID{}, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
