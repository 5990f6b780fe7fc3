package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/user/animew/internal/utils"
)

// GuestCookieName 游客标识 Cookie 名
const GuestCookieName = "guestUserId"

// gin 上下文键
const (
	ctxUserIDKey  = "user_id"
	ctxRoleKey    = "role"
	ctxGuestIDKey = "guest_id"
)

// Claims JWT 声明
type Claims struct {
	UserID int    `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth 必须携带有效 Token 的中间件，缺失或无效都按契约返回 400
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := extractClaims(c, jwtSecret)
		if err != nil {
			c.Error(utils.NewAppError(400, "Unauthorized!!"))
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxRoleKey, claims.Role)
		c.Next()
	}
}

// OptionalAuth 可选登录中间件，Token 缺失或无效时按匿名继续
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := extractClaims(c, jwtSecret); err == nil {
			c.Set(ctxUserIDKey, claims.UserID)
			c.Set(ctxRoleKey, claims.Role)
		}
		c.Next()
	}
}

// RequireAdmin 管理员权限中间件
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRoleKey)
		if !exists || role != "admin" {
			c.Error(utils.NewAppError(400, "You are not authorized to perform this action!"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Guest 游客标识中间件。
// 已登录用户的游客标识就是其用户 ID，登录后不再跟踪独立的匿名身份；
// 未登录时复用 Cookie 中的标识，没有则生成一个并写回 Cookie。
// 下游拿到的身份只会是 {用户, 游客, 无} 三者之一。
func Guest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := CurrentUserID(c); userID > 0 {
			c.Set(ctxGuestIDKey, strconv.Itoa(userID))
			c.Next()
			return
		}

		guestID, err := c.Cookie(GuestCookieName)
		if err != nil || guestID == "" {
			guestID = uuid.NewString()
			c.SetCookie(GuestCookieName, guestID, 0, "/", "", false, true)
		}

		c.Set(ctxGuestIDKey, guestID)
		c.Next()
	}
}

// ClearGuestCookie 清除游客标识 Cookie（登录归并历史之后调用）
func ClearGuestCookie(c *gin.Context) {
	c.SetCookie(GuestCookieName, "", -1, "/", "", false, true)
}

// extractClaims 从 Authorization 头提取并校验 JWT Claims
func extractClaims(c *gin.Context, jwtSecret string) (*Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, jwt.ErrTokenMalformed
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// CurrentUserID 从上下文获取用户 ID（未登录返回 0）
func CurrentUserID(c *gin.Context) int {
	if userID, exists := c.Get(ctxUserIDKey); exists {
		return userID.(int)
	}
	return 0
}

// CurrentRole 从上下文获取用户角色（未登录返回空串）
func CurrentRole(c *gin.Context) string {
	if role, exists := c.Get(ctxRoleKey); exists {
		return role.(string)
	}
	return ""
}

// GuestID 从上下文获取游客标识（未经过 Guest 中间件时返回空串）
func GuestID(c *gin.Context) string {
	if guestID, exists := c.Get(ctxGuestIDKey); exists {
		return guestID.(string)
	}
	return ""
}

// GenerateToken 生成 JWT Token
func GenerateToken(userID int, role, jwtSecret string, expiry time.Duration) (string, error) {
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}
