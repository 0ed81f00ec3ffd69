package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(testSecret))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUserID(c)})
	})
	return r
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	r := protectedRouter()
	token := signToken(t, testSecret, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestJWTAuthRejectsBadRequests(t *testing.T) {
	r := protectedRouter()

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{
			name: "wrong secret",
			header: "Bearer " + signToken(t, "other-secret", jwt.MapClaims{
				"user_id": 7,
				"exp":     time.Now().Add(time.Hour).Unix(),
			}),
		},
		{
			name: "expired",
			header: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"user_id": 7,
				"exp":     time.Now().Add(-time.Hour).Unix(),
			}),
		},
		{
			name: "missing user claim",
			header: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
				"exp": time.Now().Add(time.Hour).Unix(),
			}),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
