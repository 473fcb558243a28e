// internal/repository/mongo/daily_workout_repo.go
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

const dailyWorkoutCollectionName = "daily_workouts"

// mongoDailyWorkoutRepository implements repository.DailyWorkoutRepository
type mongoDailyWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoDailyWorkoutRepository creates a new DailyWorkout repository.
func NewMongoDailyWorkoutRepository(db *mongo.Database) repository.DailyWorkoutRepository {
	return &mongoDailyWorkoutRepository{
		collection: db.Collection(dailyWorkoutCollectionName),
	}
}

// GetByID retrieves a single workout by its ID.
func (r *mongoDailyWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DailyWorkout, error) {
	var workout domain.DailyWorkout
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// ListByWeekNumber retrieves a week's workouts ordered by workout date.
func (r *mongoDailyWorkoutRepository) ListByWeekNumber(ctx context.Context, weekNumber int) ([]domain.DailyWorkout, error) {
	return r.find(ctx, bson.M{"weekNumber": weekNumber})
}

// ListAll retrieves every workout row, week order then day order.
func (r *mongoDailyWorkoutRepository) ListAll(ctx context.Context) ([]domain.DailyWorkout, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoDailyWorkoutRepository) find(ctx context.Context, filter bson.M) ([]domain.DailyWorkout, error) {
	var workouts []domain.DailyWorkout
	findOptions := options.Find().SetSort(bson.D{{Key: "weekNumber", Value: 1}, {Key: "workoutDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Upsert writes the workout keyed by (weekNumber, dayOfWeek). An existing
// row keeps its _id, which is what keeps historical exercise logs pointing
// at valid workouts across plan reconfigurations.
func (r *mongoDailyWorkoutRepository) Upsert(ctx context.Context, workout *domain.DailyWorkout) (primitive.ObjectID, error) {
	if workout.DayOfWeek == "" {
		return primitive.NilObjectID, errors.New("workout requires dayOfWeek")
	}
	now := time.Now().UTC()

	filter := bson.M{"weekNumber": workout.WeekNumber, "dayOfWeek": workout.DayOfWeek}
	update := bson.M{
		"$set": bson.M{
			"weeklyPlanId":  workout.WeeklyPlanID,
			"workoutDate":   workout.WorkoutDate,
			"type":          workout.Type,
			"title":         workout.Title,
			"description":   workout.Description,
			"distanceMiles": workout.DistanceMiles,
			"vertFeet":      workout.VertFeet,
			"durationMin":   workout.DurationMin,
			"effort":        workout.Effort,
			"exercises":     workout.Exercises,
			"notes":         workout.Notes,
			"updatedAt":     now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved domain.DailyWorkout
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return primitive.NilObjectID, err
	}
	workout.ID = saved.ID
	workout.CreatedAt = saved.CreatedAt
	workout.UpdatedAt = saved.UpdatedAt
	return saved.ID, nil
}

// DeleteWeekDaysExcept removes the week's workouts for days not in keep.
func (r *mongoDailyWorkoutRepository) DeleteWeekDaysExcept(ctx context.Context, weekNumber int, keep []string) error {
	filter := bson.M{
		"weekNumber": weekNumber,
		"dayOfWeek":  bson.M{"$nin": keep},
	}
	_, err := r.collection.DeleteMany(ctx, filter)
	return err
}

// DeleteAboveWeek removes every workout with weekNumber greater than max.
func (r *mongoDailyWorkoutRepository) DeleteAboveWeek(ctx context.Context, max int) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"weekNumber": bson.M{"$gt": max}})
	return err
}

// EnsureDailyWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureDailyWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// (weekNumber, dayOfWeek) is the upsert key for regeneration.
			Keys:    bson.D{{Key: "weekNumber", Value: 1}, {Key: "dayOfWeek", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "weeklyPlanId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "workoutDate", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
