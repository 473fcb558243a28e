// internal/repository/mongo/weekly_plan_repo.go
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

const weeklyPlanCollectionName = "weekly_plans"

// mongoWeeklyPlanRepository implements repository.WeeklyPlanRepository
type mongoWeeklyPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoWeeklyPlanRepository creates a new WeeklyPlan repository.
func NewMongoWeeklyPlanRepository(db *mongo.Database) repository.WeeklyPlanRepository {
	return &mongoWeeklyPlanRepository{
		collection: db.Collection(weeklyPlanCollectionName),
	}
}

// List retrieves all weeks ordered by week number, Week Zero first.
func (r *mongoWeeklyPlanRepository) List(ctx context.Context) ([]domain.WeeklyPlan, error) {
	var weeks []domain.WeeklyPlan
	findOptions := options.Find().SetSort(bson.D{{Key: "weekNumber", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &weeks); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return weeks, nil
}

// GetByWeekNumber retrieves a single week by its position in the calendar.
func (r *mongoWeeklyPlanRepository) GetByWeekNumber(ctx context.Context, weekNumber int) (*domain.WeeklyPlan, error) {
	var week domain.WeeklyPlan
	filter := bson.M{"weekNumber": weekNumber}
	err := r.collection.FindOne(ctx, filter).Decode(&week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &week, nil
}

// Upsert writes the week keyed by weekNumber. An existing row keeps its _id,
// so references to the week survive regeneration; a missing row is inserted.
func (r *mongoWeeklyPlanRepository) Upsert(ctx context.Context, week *domain.WeeklyPlan) (primitive.ObjectID, error) {
	if week.WeekNumber < 0 {
		return primitive.NilObjectID, errors.New("week number must not be negative")
	}
	now := time.Now().UTC()

	filter := bson.M{"weekNumber": week.WeekNumber}
	update := bson.M{
		"$set": bson.M{
			"originalWeekNumber": week.OriginalWeekNumber,
			"phase":              week.Phase,
			"startDate":          week.StartDate,
			"endDate":            week.EndDate,
			"theme":              week.Theme,
			"blockType":          week.BlockType,
			"targetMiles":        week.TargetMiles,
			"targetVert":         week.TargetVert,
			"updatedAt":          now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved domain.WeeklyPlan
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return primitive.NilObjectID, err
	}
	week.ID = saved.ID
	week.CreatedAt = saved.CreatedAt
	week.UpdatedAt = saved.UpdatedAt
	return saved.ID, nil
}

// DeleteAboveWeek removes every week with weekNumber greater than max.
func (r *mongoWeeklyPlanRepository) DeleteAboveWeek(ctx context.Context, max int) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"weekNumber": bson.M{"$gt": max}})
	return err
}

// EnsureWeeklyPlanIndexes creates necessary indexes. Call during startup.
func EnsureWeeklyPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// weekNumber is the upsert key for regeneration.
			Keys:    bson.D{{Key: "weekNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "startDate", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
