package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubStore struct {
	users     []User
	exercises []Exercise
	nextID    int

	userLookups     int
	exerciseQueries int
}

func (s *stubStore) CreateUser(ctx context.Context, username string, createdAt time.Time) (*User, error) {
	s.nextID++
	user := User{ID: fmt.Sprintf("user-%d", s.nextID), Username: username, CreatedAt: createdAt}
	s.users = append(s.users, user)
	return &user, nil
}

func (s *stubStore) FindUserByID(ctx context.Context, id string) (*User, error) {
	s.userLookups++
	for _, user := range s.users {
		if user.ID == id {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (s *stubStore) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	for _, user := range s.users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (s *stubStore) ListUsers(ctx context.Context) ([]User, error) {
	return append([]User(nil), s.users...), nil
}

func (s *stubStore) CreateExercise(ctx context.Context, exercise Exercise) (*Exercise, error) {
	s.nextID++
	exercise.ID = fmt.Sprintf("exercise-%d", s.nextID)
	s.exercises = append(s.exercises, exercise)
	return &exercise, nil
}

func (s *stubStore) FindExercisesByUser(ctx context.Context, userID string, query LogQuery) ([]Exercise, error) {
	s.exerciseQueries++
	var out []Exercise
	for _, exercise := range s.exercises {
		if exercise.UserID == userID {
			out = append(out, exercise)
		}
	}
	return out, nil
}

type stubPublisher struct {
	calls int
	err   error
}

func (p *stubPublisher) ExerciseCreated(ctx context.Context, user User, exercise Exercise) error {
	p.calls++
	return p.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCreateUserRejectsDuplicate(t *testing.T) {
	store := &stubStore{}
	service := NewService(store, store)

	first, err := service.CreateUser(context.Background(), "alice")
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	_, err = service.CreateUser(context.Background(), "alice")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestCreateUserTrimsAndValidates(t *testing.T) {
	store := &stubStore{}
	service := NewService(store, store)

	user, err := service.CreateUser(context.Background(), "  bob  ")
	require.NoError(t, err)
	require.Equal(t, "bob", user.Username)

	_, err = service.CreateUser(context.Background(), "   ")
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	require.Empty(t, store.users[1:], "no user stored on validation failure")
}

func TestAddExerciseValidatesBeforeStoreCalls(t *testing.T) {
	store := &stubStore{}
	service := NewService(store, store)

	_, _, err := service.AddExercise(context.Background(), AddExerciseInput{
		UserID:      "user-1",
		Description: "run",
		Duration:    "zero",
	})
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	require.Zero(t, store.userLookups, "validation failures must not reach the store")
}

func TestAddExerciseUnknownUser(t *testing.T) {
	store := &stubStore{}
	service := NewService(store, store)

	_, _, err := service.AddExercise(context.Background(), AddExerciseInput{
		UserID:      "missing",
		Description: "run",
		Duration:    "30",
	})
	require.ErrorIs(t, err, ErrUserNotFound)
	require.Empty(t, store.exercises)
}

func TestAddExerciseDefaultsDateToNow(t *testing.T) {
	now := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	store := &stubStore{}
	service := NewService(store, store, WithClock(fixedClock(now)))

	user, err := service.CreateUser(context.Background(), "carol")
	require.NoError(t, err)

	_, exercise, err := service.AddExercise(context.Background(), AddExerciseInput{
		UserID:      user.ID,
		Description: "swim",
		Duration:    "20",
	})
	require.NoError(t, err)
	require.Equal(t, now, exercise.Date)
}

func TestAddExerciseRejectsMalformedDate(t *testing.T) {
	store := &stubStore{}
	service := NewService(store, store)

	user, err := service.CreateUser(context.Background(), "dave")
	require.NoError(t, err)

	_, _, err = service.AddExercise(context.Background(), AddExerciseInput{
		UserID:      user.ID,
		Description: "row",
		Duration:    "15",
		Date:        "next tuesday",
	})
	var invalid *ValidationError
	require.ErrorAs(t, err, &invalid)
	require.Empty(t, store.exercises)
}

func TestAddExercisePublishFailureDoesNotFailRequest(t *testing.T) {
	store := &stubStore{}
	publisher := &stubPublisher{err: errors.New("broker down")}
	service := NewService(store, store, WithPublisher(publisher))

	user, err := service.CreateUser(context.Background(), "erin")
	require.NoError(t, err)

	_, exercise, err := service.AddExercise(context.Background(), AddExerciseInput{
		UserID:      user.ID,
		Description: "lift",
		Duration:    "40",
		Date:        "2023-01-01",
	})
	require.NoError(t, err)
	require.NotNil(t, exercise)
	require.Equal(t, 1, publisher.calls)
}

func TestGetUserLogUnknownUser(t *testing.T) {
	store := &stubStore{}
	service := NewService(store, store)

	_, _, err := service.GetUserLog(context.Background(), "missing", LogQuery{})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserLogZeroLimitSkipsStore(t *testing.T) {
	store := &stubStore{}
	service := NewService(store, store)

	user, err := service.CreateUser(context.Background(), "frank")
	require.NoError(t, err)

	_, _, err = service.AddExercise(context.Background(), AddExerciseInput{
		UserID:      user.ID,
		Description: "walk",
		Duration:    "10",
		Date:        "2023-01-01",
	})
	require.NoError(t, err)

	zero := 0
	_, log, err := service.GetUserLog(context.Background(), user.ID, LogQuery{Limit: &zero})
	require.NoError(t, err)
	require.Empty(t, log)
	require.Zero(t, store.exerciseQueries, "limit 0 should not query the store")
}
