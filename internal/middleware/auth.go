package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"codegen-server/internal/models"
)

// Ключи контекста gin, устанавливаемые после аутентификации.
const (
	ContextUserIDKey  = "user_id"
	ContextIsAdminKey = "is_admin"
)

// Claims - структура для пользовательских клеймов JWT
type Claims struct {
	UserID  int64  `json:"user_id"`
	Role    string `json:"role,omitempty"`
	IsAdmin bool   `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuthMiddleware создает middleware для проверки JWT access токена.
// Проверяет подпись, срок действия и извлекает user_id.
// Не проверяет отзыв токена (это остается ответственностью auth-сервиса).
func JWTAuthMiddleware(secretKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Code: models.ErrCodeTokenInvalid, Message: "Authorization header missing",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Code: models.ErrCodeTokenInvalid, Message: "Invalid Authorization header format",
			})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secretKey), nil
		})

		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
					Code: models.ErrCodeTokenExpired, Message: models.ErrTokenExpired.Error(),
				})
			case errors.Is(err, jwt.ErrTokenMalformed):
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
					Code: models.ErrCodeTokenInvalid, Message: models.ErrTokenMalformed.Error(),
				})
			case errors.Is(err, jwt.ErrTokenSignatureInvalid):
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
					Code: models.ErrCodeTokenInvalid, Message: "Token signature is invalid",
				})
			default:
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
					Code: models.ErrCodeTokenInvalid, Message: fmt.Sprintf("Token validation failed: %v", err),
				})
			}
			return
		}

		if !token.Valid || claims.UserID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
				Code: models.ErrCodeTokenInvalid, Message: models.ErrTokenInvalid.Error(),
			})
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextIsAdminKey, claims.IsAdmin || claims.Role == "admin")
		c.Next()
	}
}

// AdminOnlyMiddleware пропускает только администраторов. Ставится после
// JWTAuthMiddleware.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetIsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
				Code: models.ErrCodeForbidden, Message: models.ErrForbidden.Error(),
			})
			return
		}
		c.Next()
	}
}

// GetUserID возвращает ID аутентифицированного пользователя из контекста.
func GetUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := v.(int64)
	return userID, ok
}

// GetIsAdmin возвращает признак администратора из контекста.
func GetIsAdmin(c *gin.Context) bool {
	v, ok := c.Get(ContextIsAdminKey)
	if !ok {
		return false
	}
	isAdmin, _ := v.(bool)
	return isAdmin
}

// GenerateTestJWT создает тестовый JWT токен.
// ВАЖНО: Эта функция предназначена ТОЛЬКО для использования в тестах.
func GenerateTestJWT(userID int64, isAdmin bool, secretKey string, validityDuration time.Duration) (string, error) {
	expirationTime := time.Now().Add(validityDuration)
	claims := &Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign test JWT: %w", err)
	}

	return tokenString, nil
}
