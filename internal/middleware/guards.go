package middleware

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"lifestream/internal/auth"
	apperrors "lifestream/internal/errors"
	"lifestream/internal/model"
	"lifestream/internal/repository"
)

// RequireIdentity verifies the bearer credential on the Authorization header.
// A missing or malformed header yields 401; a present but invalid or expired
// token yields 403. The verified identity is stored on the request context.
func RequireIdentity(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractionErr *echojwt.TokenExtractionError
			if errors.As(err, &extractionErr) {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "missing or malformed credential",
					Code:  "UNAUTHENTICATED",
				})
			}
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "invalid or expired credential",
				Code:  "FORBIDDEN",
			})
		},
	})
}

// CurrentIdentity returns the verified identity set by RequireIdentity.
func CurrentIdentity(c echo.Context) (*auth.Claims, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*auth.Claims)
	return claims, ok
}

// RequireSelfQuery allows the request through only when the verified identity
// matches the email supplied in the named query parameter. A missing
// parameter is a client error; a mismatch is forbidden.
func RequireSelfQuery(param string) echo.MiddlewareFunc {
	return requireSelf(func(c echo.Context) string { return c.QueryParam(param) })
}

// RequireSelfParam is RequireSelfQuery for a path parameter.
func RequireSelfParam(param string) echo.MiddlewareFunc {
	return requireSelf(func(c echo.Context) string { return c.Param(param) })
}

func requireSelf(extract func(echo.Context) string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := CurrentIdentity(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "missing or malformed credential",
					Code:  "UNAUTHENTICATED",
				})
			}

			email := extract(c)
			if email == "" {
				return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
					Error: apperrors.ErrEmailRequired.Error(),
					Code:  "EMAIL_REQUIRED",
				})
			}
			if email != claims.Email {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: "forbidden access",
					Code:  "FORBIDDEN",
				})
			}
			return next(c)
		}
	}
}

// RequireRole allows the request through only when the caller's stored user
// record holds one of the given roles. The role is re-read on every request;
// an absent record fails closed with forbidden, not not-found. A repository
// failure is a server error, not a denial.
func RequireRole(users repository.UserRepository, roles ...model.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := CurrentIdentity(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "missing or malformed credential",
					Code:  "UNAUTHENTICATED",
				})
			}

			user, err := users.FindByEmail(c.Request().Context(), claims.Email)
			if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && user == nil) {
				return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
					Error: "forbidden access",
					Code:  "FORBIDDEN",
				})
			}
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, apperrors.ErrorResponse{
					Error: "internal server error",
					Code:  "INTERNAL_ERROR",
				})
			}
			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "forbidden access",
				Code:  "FORBIDDEN",
			})
		}
	}
}
