package hardcover

import (
	"errors"
	"fmt"
)

// ErrInvalidToken indicates the provided API token is invalid
var ErrInvalidToken = errors.New("invalid or expired Hardcover token")

// ErrRateLimited indicates the API rate limit was exceeded
var ErrRateLimited = errors.New("hardcover API rate limit exceeded")

// ServerError represents a 5xx error from the Hardcover API
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("Hardcover server error: HTTP %d", e.StatusCode)
}
