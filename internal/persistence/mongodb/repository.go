// Package mongodb provides document-store persistence for users and exercises.
package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"example.com/tracker/internal/domain"
	"example.com/tracker/internal/observability"
)

const (
	usersCollection     = "users"
	exercisesCollection = "exercises"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	CreatedAt time.Time          `bson:"createdAt"`
}

type exerciseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId"`
	Description string             `bson:"description"`
	Duration    int                `bson:"duration"`
	Date        time.Time          `bson:"date"`
}

// Repository provides MongoDB-backed persistence for both collections.
type Repository struct {
	users     *mongo.Collection
	exercises *mongo.Collection
}

// NewRepository constructs a Repository over the given database.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		users:     db.Collection(usersCollection),
		exercises: db.Collection(exercisesCollection),
	}
}

// EnsureIndexes creates the unique username index. Call before accepting
// traffic so duplicate registrations fail deterministically.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreateUser inserts a user and returns it with the store-assigned ID.
func (r *Repository) CreateUser(ctx context.Context, username string, createdAt time.Time) (*domain.User, error) {
	result, err := r.users.InsertOne(ctx, userDocument{
		Username:  username,
		CreatedAt: createdAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.New("store returned unexpected id type")
	}

	observability.RecordUserCreated()
	return &domain.User{ID: id.Hex(), Username: username, CreatedAt: createdAt}, nil
}

// FindUserByID resolves a user by its hex identifier. A malformed identifier
// or a missing document both yield (nil, nil).
func (r *Repository) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc userDocument
	if err := r.users.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return toUser(doc), nil
}

// FindUserByUsername resolves a user by display name, or (nil, nil).
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	var doc userDocument
	if err := r.users.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return toUser(doc), nil
}

// ListUsers returns all users, projected to identifier and display name.
func (r *Repository) ListUsers(ctx context.Context) ([]domain.User, error) {
	opts := options.Find().SetProjection(bson.M{"username": 1})
	cursor, err := r.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, *toUser(doc))
	}
	return users, nil
}

// CreateExercise inserts an exercise and returns it with the store-assigned ID.
func (r *Repository) CreateExercise(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error) {
	userID, err := primitive.ObjectIDFromHex(exercise.UserID)
	if err != nil {
		return nil, err
	}

	result, err := r.exercises.InsertOne(ctx, exerciseDocument{
		UserID:      userID,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
	})
	if err != nil {
		return nil, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.New("store returned unexpected id type")
	}

	exercise.ID = id.Hex()
	observability.RecordExercisePersisted(exercise.Date)
	return &exercise, nil
}

// FindExercisesByUser returns a user's exercises matching the query, sorted
// ascending by occurrence date and capped after sorting.
func (r *Repository) FindExercisesByUser(ctx context.Context, userID string, query domain.LogQuery) ([]domain.Exercise, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	cursor, err := r.exercises.Find(ctx, logFilter(objectID, query), logFindOptions(query))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []exerciseDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	exercises := make([]domain.Exercise, 0, len(docs))
	for _, doc := range docs {
		exercises = append(exercises, domain.Exercise{
			ID:          doc.ID.Hex(),
			UserID:      doc.UserID.Hex(),
			Description: doc.Description,
			Duration:    doc.Duration,
			Date:        doc.Date,
		})
	}
	return exercises, nil
}

// logFilter translates a LogQuery into a document filter. Both bounds are
// inclusive; a from after to matches nothing, which is correct.
func logFilter(userID primitive.ObjectID, query domain.LogQuery) bson.M {
	filter := bson.M{"userId": userID}

	window := bson.M{}
	if query.From != nil {
		window["$gte"] = *query.From
	}
	if query.To != nil {
		window["$lte"] = *query.To
	}
	if len(window) > 0 {
		filter["date"] = window
	}
	return filter
}

// logFindOptions applies the deterministic ascending date sort, the response
// projection and the post-sort cap. A zero limit never reaches the store.
func logFindOptions(query domain.LogQuery) *options.FindOptions {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}}).
		SetProjection(bson.M{"description": 1, "duration": 1, "date": 1, "userId": 1})

	if query.Limit != nil && *query.Limit > 0 {
		opts.SetLimit(int64(*query.Limit))
	}
	return opts
}

func toUser(doc userDocument) *domain.User {
	return &domain.User{
		ID:        doc.ID.Hex(),
		Username:  doc.Username,
		CreatedAt: doc.CreatedAt,
	}
}
