package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pouriamv/art-market-api/internal/repository"
	"github.com/pouriamv/art-market-api/pkg/response"
)

type AuthMiddleware struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	secret    string
}

func NewAuthMiddleware(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		secret:    secret,
	}
}

// RequireAuth validates the bearer token, rejects blocklisted jtis, and
// stores the caller's identity in the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.parseToken(c)
		if !ok {
			return
		}

		blocked, err := m.tokenRepo.IsBlocked(c.Request.Context(), claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"status": "error", "message": "failed to verify token"})
			return
		}
		if blocked {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"status": "error", "message": "token has been revoked"})
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("jti", claims.ID)
		c.Next()
	}
}

// OptionalAuth populates the caller's identity when a valid token is present
// but never rejects the request. Public store reads use it.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc)
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		if blocked, err := m.tokenRepo.IsBlocked(c.Request.Context(), claims.ID); err == nil && !blocked {
			c.Set("user_id", claims.Subject)
			c.Set("jti", claims.ID)
		}
		c.Next()
	}
}

// RequireRole gates a route group to a single role. It runs after
// RequireAuth and looks the role up in the database, so a stale token can
// never keep a demoted user in.
func (m *AuthMiddleware) RequireRole(roleName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := response.GetUserID(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"status": "error", "message": "user not authenticated"})
			return
		}

		user, err := m.userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"status": "error", "message": "user not found"})
			return
		}

		if user.Role.Name != roleName {
			c.AbortWithStatusJSON(http.StatusForbidden,
				gin.H{"status": "error", "message": fmt.Sprintf("Access forbidden: %s role required", roleName)})
			return
		}

		c.Next()
	}
}

func (m *AuthMiddleware) parseToken(c *gin.Context) (*jwt.RegisteredClaims, bool) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			gin.H{"status": "error", "message": "authorization required"})
		return nil, false
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc)
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			gin.H{"status": "error", "message": "invalid or expired token"})
		return nil, false
	}

	return claims, true
}

func (m *AuthMiddleware) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return []byte(m.secret), nil
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
