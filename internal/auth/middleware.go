package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"roomescape/internal/response"
)

// MemberIDKey хранит в gin.Context id участника из токена.
const MemberIDKey = "memberID"

// Middleware проверяет access-токен, выданный сервисом идентификации,
// и кладёт member_id в контекст запроса.
func Middleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "NO_AUTH_HEADER",
				Message: "Требуется авторизация",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Неверный или просроченный токен",
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_TOKEN_CLAIMS",
				Message: "Невозможно прочитать claims токена",
			})
			return
		}

		memberID, ok := claims["member_id"].(float64)
		if !ok || memberID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{
				Code:    "INVALID_MEMBER_ID",
				Message: "Невозможно извлечь member_id",
			})
			return
		}

		c.Set(MemberIDKey, int64(memberID))
		c.Next()
	}
}

// MemberID возвращает id участника, выставленный Middleware.
func MemberID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(MemberIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// Sign выпускает HS256-токен с member_id. Используется локально и в тестах;
// в проде токены выдаёт сервис идентификации.
func Sign(secret []byte, memberID int64, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"member_id": memberID,
		"exp":       time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}
