// Package domain defines the business logic for the exercise tracker.
package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUserNotFound is returned when a user identifier cannot be resolved.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already taken")
)

// ValidationError marks client input that failed strict validation. The
// message is safe to return verbatim in an error response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// User is a registered account. Users are immutable once created.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// Exercise is a single logged exercise owned by a user. The owning user must
// exist at creation time; exercises are never updated or deleted.
type Exercise struct {
	ID          string
	UserID      string
	Description string
	Duration    int
	Date        time.Time
}
