package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Sadeghizad/Form-creator/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "user_id"

// JWTAuth validates a bearer token signed with the shared secret and stores
// the subject's user ID in the gin context. Identity is issued elsewhere;
// this service only verifies it.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authorization header required"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid authorization header format"})
			return
		}

		userID, err := parseUserID(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func parseUserID(tokenStr, secret string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid token claims")
	}
	sub, ok := claims["user_id"].(float64)
	if !ok || sub <= 0 {
		return 0, fmt.Errorf("token missing user_id claim")
	}
	return uint(sub), nil
}

// CurrentUserID reads the authenticated user's ID set by JWTAuth.
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}
