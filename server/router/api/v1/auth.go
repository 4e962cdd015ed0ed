package v1

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// userIDContextKey holds the authenticated user id in the echo context.
const userIDContextKey = "user-id"

// JWTMiddleware authenticates requests with an HS256 bearer token whose
// subject is the user id. Token issuance lives in the identity service; this
// side only verifies.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			userID, err := parseUserID(token, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}

func parseUserID(token, secret string) (int32, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(userID), nil
}

func currentUserID(c echo.Context) int32 {
	if userID, ok := c.Get(userIDContextKey).(int32); ok {
		return userID
	}
	return 0
}

// tokenOwnerVerifier treats a verified token subject as proof of account
// existence. The identity service is the actual system of record.
type tokenOwnerVerifier struct{}

func (tokenOwnerVerifier) VerifyOwner(_ context.Context, ownerID int32) (bool, error) {
	return ownerID > 0, nil
}
