package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user record is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when creating a user whose email is taken.
	ErrUserExists = errors.New("user already exists")
	// ErrRequestNotFound is returned when a donation request is missing or was
	// already claimed by another donor.
	ErrRequestNotFound = errors.New("donation request not found")
	// ErrBlogNotFound is returned when a blog post is not found.
	ErrBlogNotFound = errors.New("blog not found")
	// ErrForbidden is returned on identity mismatch or insufficient role.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated is returned when no valid credential accompanies the request.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserBlocked is returned when a blocked user attempts to authenticate.
	ErrUserBlocked = errors.New("user is blocked")
	// ErrInvalidAmount is returned when a funding or payment amount is not positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrEmailRequired is returned when a route needs an email query parameter.
	ErrEmailRequired = errors.New("email is required")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrRequestNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REQUEST_NOT_FOUND")
	case errors.Is(err, ErrBlogNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BLOG_NOT_FOUND")
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_EXISTS")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserBlocked):
		return NewHTTPError(http.StatusForbidden, err.Error(), "USER_BLOCKED")
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrEmailRequired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMAIL_REQUIRED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
