package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type Auth interface {
	CheckAuth(tokenString string) (string, error)
	CheckAuthFromContext(c echo.Context) (string, error)
	Middleware(next echo.HandlerFunc) echo.HandlerFunc
}

const (
	SessionCookie = "session"
	// UserIDKey - ключ echo.Context, под которым Middleware кладёт айди пользователя
	UserIDKey = "user_id"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
)

type jwtLoginClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthManager проверяет токены, выпущенные сервисом пользователей. Сам сервис файлов токены не выдаёт
type AuthManager struct {
	jwtSecretKey []byte
}

func NewAuthManager(jwtSecretKey []byte) *AuthManager {
	return &AuthManager{
		jwtSecretKey: jwtSecretKey,
	}
}

// CheckAuth возвращает айди пользователя из валидного токена, иначе ErrUnauthorized
func (a *AuthManager) CheckAuth(tokenString string) (string, error) {
	claims := jwtLoginClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return a.jwtSecretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", ErrUnauthorized
	}
	return claims.UserID, nil
}

// CheckAuthFromContext берёт токен из заголовка Authorization: Bearer, затем из куки session
func (a *AuthManager) CheckAuthFromContext(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && token != "" {
		return a.CheckAuth(strings.TrimSpace(token))
	}
	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return "", ErrUnauthorized
	}
	return a.CheckAuth(cookie.Value)
}

func (a *AuthManager) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := a.CheckAuthFromContext(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"success": false,
				"error":   "Пользователь не авторизован",
			})
		}
		c.Set(UserIDKey, userID)
		return next(c)
	}
}
