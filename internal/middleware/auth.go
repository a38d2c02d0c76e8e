package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/user/mediashelf/internal/config"
	"github.com/user/mediashelf/internal/utils"
)

// Claims JWT 载荷
type Claims struct {
	UserID   int    `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateToken 签发 JWT
func GenerateToken(cfg *config.Config, userID int, email, username string) (string, error) {
	claims := Claims{
		UserID:   userID,
		Email:    email,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.JWTExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.AppSecret))
}

// extractClaims 从 Cookie 或 Authorization 头解析 JWT
func extractClaims(c *gin.Context, cfg *config.Config) *Claims {
	tokenString, err := c.Cookie("token")
	if err != nil || tokenString == "" {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	if tokenString == "" {
		return nil
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.AppSecret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	return claims
}

// shouldRefresh 剩余有效期不足一半时滑动续签
func shouldRefresh(claims *Claims, cfg *config.Config) bool {
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < cfg.JWTExpiry/2
}

// refreshToken 续签并写回 Cookie
func refreshToken(c *gin.Context, cfg *config.Config, claims *Claims) {
	newToken, err := GenerateToken(cfg, claims.UserID, claims.Email, claims.Username)
	if err != nil {
		return
	}
	c.SetCookie("token", newToken, int(cfg.JWTExpiry.Seconds()), "/", "", false, true)
}

// RequireAuth 必须登录，否则 401
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := extractClaims(c, cfg)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, utils.Response{
				Code:    http.StatusUnauthorized,
				Message: "请先登录",
				Success: false,
			})
			c.Abort()
			return
		}

		if shouldRefresh(claims, cfg) {
			refreshToken(c, cfg, claims)
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// OptionalAuth 可选登录，有效 token 时注入用户信息
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := extractClaims(c, cfg)
		if claims != nil {
			if shouldRefresh(claims, cfg) {
				refreshToken(c, cfg, claims)
			}
			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("username", claims.Username)
		}
		c.Next()
	}
}

// GetUserID 取当前登录用户 ID，未登录返回 0
func GetUserID(c *gin.Context) int {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(int); ok {
			return id
		}
	}
	return 0
}

// GetUserIDPtr 取当前登录用户 ID 指针，未登录返回 nil
func GetUserIDPtr(c *gin.Context) *int {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(int); ok {
			return &id
		}
	}
	return nil
}
