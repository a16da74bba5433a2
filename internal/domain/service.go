package domain

import (
	"context"
	"log"
	"time"
)

// UserRepository captures persistence operations for users. Find methods
// return nil without error when no user matches; a malformed identifier is
// treated the same as an absent one.
type UserRepository interface {
	CreateUser(ctx context.Context, username string, createdAt time.Time) (*User, error)
	FindUserByID(ctx context.Context, id string) (*User, error)
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

// ExerciseRepository captures persistence operations for exercises.
// FindExercisesByUser returns records in ascending occurrence-date order,
// restricted and capped per the query.
type ExerciseRepository interface {
	CreateExercise(ctx context.Context, exercise Exercise) (*Exercise, error)
	FindExercisesByUser(ctx context.Context, userID string, query LogQuery) ([]Exercise, error)
}

// EventPublisher emits domain events. Publish failures never fail the
// originating request.
type EventPublisher interface {
	ExerciseCreated(ctx context.Context, user User, exercise Exercise) error
}

// Service orchestrates user registration and exercise logging.
type Service struct {
	users     UserRepository
	exercises ExerciseRepository
	publisher EventPublisher
	logger    *log.Logger
	now       func() time.Time
}

// Option customises Service construction.
type Option func(*Service)

// WithPublisher wires an event publisher for exercise creation.
func WithPublisher(publisher EventPublisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

// WithLogger overrides the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService constructs a Service.
func NewService(users UserRepository, exercises ExerciseRepository, opts ...Option) *Service {
	s := &Service{
		users:     users,
		exercises: exercises,
		logger:    log.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser registers a new user. Usernames are unique; a duplicate
// registration fails with ErrUsernameTaken.
func (s *Service) CreateUser(ctx context.Context, username string) (*User, error) {
	name, err := ValidateUsername(username)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.FindUserByUsername(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	return s.users.CreateUser(ctx, name, s.now().UTC())
}

// ListUsers returns all registered users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.users.ListUsers(ctx)
}

// AddExerciseInput carries the raw request-body fields for exercise creation.
// Duration and Date arrive as strings; validation is strict for both.
type AddExerciseInput struct {
	UserID      string
	Description string
	Duration    string
	Date        string
}

// AddExercise validates the input, resolves the owning user and persists the
// exercise. Validation happens before any store call; an absent date defaults
// to the current time.
func (s *Service) AddExercise(ctx context.Context, input AddExerciseInput) (*User, *Exercise, error) {
	description, err := ValidateDescription(input.Description)
	if err != nil {
		return nil, nil, err
	}

	duration, err := ParseDuration(input.Duration)
	if err != nil {
		return nil, nil, err
	}

	date := s.now().UTC()
	if input.Date != "" {
		if date, err = ParseDate(input.Date); err != nil {
			return nil, nil, err
		}
	}

	user, err := s.users.FindUserByID(ctx, input.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	exercise, err := s.exercises.CreateExercise(ctx, Exercise{
		UserID:      user.ID,
		Description: description,
		Duration:    duration,
		Date:        date,
	})
	if err != nil {
		return nil, nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.ExerciseCreated(ctx, *user, *exercise); err != nil {
			s.logger.Printf("publish exercise.created for user %s: %v", user.ID, err)
		}
	}

	return user, exercise, nil
}

// GetUserLog resolves the user and returns their exercises matching the
// query, sorted ascending by occurrence date and capped after sorting.
func (s *Service) GetUserLog(ctx context.Context, userID string, query LogQuery) (*User, []Exercise, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	// A limit of zero asks for zero records; the store treats limit 0 as
	// "no limit", so short-circuit here.
	if query.Limit != nil && *query.Limit == 0 {
		return user, []Exercise{}, nil
	}

	exercises, err := s.exercises.FindExercisesByUser(ctx, user.ID, query)
	if err != nil {
		return nil, nil, err
	}
	return user, exercises, nil
}
