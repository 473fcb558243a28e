// internal/repository/mongo/exercise_log_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"rcollier/ultra-tracker/internal/domain"
	"rcollier/ultra-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseLogCollectionName = "exercise_logs"

// mongoExerciseLogRepository implements repository.ExerciseLogRepository
type mongoExerciseLogRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseLogRepository creates a new ExerciseLog repository.
func NewMongoExerciseLogRepository(db *mongo.Database) repository.ExerciseLogRepository {
	return &mongoExerciseLogRepository{
		collection: db.Collection(exerciseLogCollectionName),
	}
}

// Create inserts a new set log entry.
func (r *mongoExerciseLogRepository) Create(ctx context.Context, entry *domain.ExerciseLog) (primitive.ObjectID, error) {
	if entry.WorkoutID == primitive.NilObjectID || entry.ExerciseName == "" {
		return primitive.NilObjectID, errors.New("exercise log requires workoutId and exerciseName")
	}
	entry.ID = primitive.NewObjectID()
	if entry.LoggedAt.IsZero() {
		entry.LoggedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted log ID")
	}
	return insertedID, nil
}

// GetByWorkoutID retrieves all set logs for one workout, oldest first.
func (r *mongoExerciseLogRepository) GetByWorkoutID(ctx context.Context, workoutID primitive.ObjectID) ([]domain.ExerciseLog, error) {
	var logs []domain.ExerciseLog
	findOptions := options.Find().SetSort(bson.D{{Key: "loggedAt", Value: 1}, {Key: "setNumber", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"workoutId": workoutID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

// Delete removes one set log entry (swipe-to-delete in the UI).
func (r *mongoExerciseLogRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureExerciseLogIndexes creates necessary indexes. Call during startup.
func EnsureExerciseLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "workoutId", Value: 1}, {Key: "loggedAt", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
