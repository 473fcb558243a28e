// internal/repository/mongo/training_phase_repo.go
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

const trainingPhaseCollectionName = "training_phases"

// mongoTrainingPhaseRepository implements repository.TrainingPhaseRepository
type mongoTrainingPhaseRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingPhaseRepository creates a new TrainingPhase repository.
func NewMongoTrainingPhaseRepository(db *mongo.Database) repository.TrainingPhaseRepository {
	return &mongoTrainingPhaseRepository{
		collection: db.Collection(trainingPhaseCollectionName),
	}
}

// GetByPlanID retrieves the plan's phase records in calendar order.
func (r *mongoTrainingPhaseRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.TrainingPhase, error) {
	var phases []domain.TrainingPhase
	findOptions := options.Find().SetSort(bson.D{{Key: "startDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"planId": planID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &phases); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return phases, nil
}

// Create inserts a new phase record.
func (r *mongoTrainingPhaseRepository) Create(ctx context.Context, phase *domain.TrainingPhase) (primitive.ObjectID, error) {
	if phase.PlanID == primitive.NilObjectID || phase.Name == "" {
		return primitive.NilObjectID, errors.New("phase requires planId and name")
	}
	phase.ID = primitive.NewObjectID()
	phase.UpdatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, phase)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted phase ID")
	}
	return insertedID, nil
}

// UpdateByName rewrites the dates and week count of the plan's phase matched
// by name.
func (r *mongoTrainingPhaseRepository) UpdateByName(ctx context.Context, planID primitive.ObjectID, phase *domain.TrainingPhase) error {
	if planID == primitive.NilObjectID || phase.Name == "" {
		return errors.New("plan ID and phase name are required for update")
	}

	filter := bson.M{"planId": planID, "name": phase.Name}
	updateDoc := bson.M{
		"$set": bson.M{
			"startDate": phase.StartDate,
			"endDate":   phase.EndDate,
			"weekCount": phase.WeekCount,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureTrainingPhaseIndexes creates necessary indexes. Call during startup.
func EnsureTrainingPhaseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
