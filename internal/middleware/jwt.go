package middleware // middleware contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// identityKey is the echo context key under which JWTAuth stores the
// caller's decoded identity.
const identityKey = "identity"

// Identity carries the decoded token claims for the authenticated
// caller. It is constructed once by JWTAuth and read by handlers via
// CurrentIdentity, so downstream code never touches raw claims.
type Identity struct {
	UserID   uint64
	Username string
	Role     string
}

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the caller's Identity into the request context.
// A missing or non-Bearer Authorization header yields 401; a token that
// fails signature, algorithm or expiry checks yields 403.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Authorization token is required"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Invalid or expired token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Invalid or expired token"})
			}

			id := Identity{}
			// Numeric JSON claims decode as float64.
			if sub, ok := claims["sub"].(float64); ok {
				id.UserID = uint64(sub)
			}
			if v, ok := claims["username"].(string); ok {
				id.Username = v
			}
			if v, ok := claims["role"].(string); ok {
				id.Role = v
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// CurrentIdentity returns the identity stored by JWTAuth. The second
// return is false when the route was not wrapped by JWTAuth.
func CurrentIdentity(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok
}
