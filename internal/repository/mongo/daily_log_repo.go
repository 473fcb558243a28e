// internal/repository/mongo/daily_log_repo.go
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

const dailyLogCollectionName = "daily_logs"

// mongoDailyLogRepository implements repository.DailyLogRepository
type mongoDailyLogRepository struct {
	collection *mongo.Collection
}

// NewMongoDailyLogRepository creates a new DailyLog repository.
func NewMongoDailyLogRepository(db *mongo.Database) repository.DailyLogRepository {
	return &mongoDailyLogRepository{
		collection: db.Collection(dailyLogCollectionName),
	}
}

// Create inserts a new daily summary entry.
func (r *mongoDailyLogRepository) Create(ctx context.Context, entry *domain.DailyLog) (primitive.ObjectID, error) {
	if entry.Date.IsZero() {
		return primitive.NilObjectID, errors.New("daily log requires a date")
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

// ListByDateRange retrieves day summaries between from and to, inclusive.
func (r *mongoDailyLogRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.DailyLog, error) {
	var logs []domain.DailyLog
	filter := bson.M{"date": bson.M{"$gte": from, "$lte": to}}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
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

// EnsureDailyLogIndexes creates necessary indexes. Call during startup.
func EnsureDailyLogIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
