package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"social-service/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type GoalRepository struct {
	collection *mongo.Collection
	mu         *sync.Mutex
}

func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{
		collection: db.Collection("Goal"),
		mu:         &sync.Mutex{},
	}
}

func (r *GoalRepository) New(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if goal.ID.IsZero() {
		goal.ID = bson.NewObjectID()
	}

	currentTime := int(time.Now().Unix())
	if goal.Metadata.CreatedAt == 0 {
		goal.Metadata.CreatedAt = currentTime
	}
	goal.Metadata.UpdatedAt = currentTime

	_, err := r.collection.InsertOne(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to insert goal: %w", err)
	}
	return goal, nil
}

func (r *GoalRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Goal, error) {
	var goal models.Goal
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&goal)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// FindByUserID lists a user's goals, newest first.
func (r *GoalRepository) FindByUserID(ctx context.Context, userID string) ([]*models.Goal, error) {
	opts := options.Find()
	opts.SetSort(bson.M{"metadata.createdAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find goals: %w", err)
	}
	defer cursor.Close(ctx)

	var goals []*models.Goal
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, fmt.Errorf("failed to decode goals: %w", err)
	}

	return goals, nil
}

// FindPartnershipGoals returns goals linking viewer and target: the viewer
// is on the partner list and the target either owns the goal or is on the
// same partner list. One query keeps the relationship snapshot consistent.
func (r *GoalRepository) FindPartnershipGoals(ctx context.Context, viewerID, targetID string) ([]*models.Goal, error) {
	if viewerID == "" {
		return nil, nil
	}

	filter := bson.M{
		"partners": viewerID,
		"$or": []bson.M{
			{"userId": targetID},
			{"partners": targetID},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find partnership goals: %w", err)
	}
	defer cursor.Close(ctx)

	var goals []*models.Goal
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, fmt.Errorf("failed to decode partnership goals: %w", err)
	}

	return goals, nil
}

func (r *GoalRepository) Update(ctx context.Context, id bson.ObjectID, goal *models.Goal) (*models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	goal.Metadata.UpdatedAt = int(time.Now().Unix())

	filter := bson.M{"_id": id}
	update := bson.M{"$set": goal}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updatedGoal models.Goal
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updatedGoal)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return &updatedGoal, nil
}

func (r *GoalRepository) AddPartner(ctx context.Context, id bson.ObjectID, partnerID string) (*models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filter := bson.M{"_id": id}
	update := bson.M{
		"$addToSet": bson.M{"partners": partnerID},
		"$set":      bson.M{"metadata.updatedAt": int(time.Now().Unix())},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updatedGoal models.Goal
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updatedGoal)
	if err != nil {
		return nil, fmt.Errorf("failed to add goal partner: %w", err)
	}

	return &updatedGoal, nil
}

func (r *GoalRepository) RemovePartner(ctx context.Context, id bson.ObjectID, partnerID string) (*models.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filter := bson.M{"_id": id}
	update := bson.M{
		"$pull": bson.M{"partners": partnerID},
		"$set":  bson.M{"metadata.updatedAt": int(time.Now().Unix())},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updatedGoal models.Goal
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updatedGoal)
	if err != nil {
		return nil, fmt.Errorf("failed to remove goal partner: %w", err)
	}

	return &updatedGoal, nil
}

func (r *GoalRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *GoalRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "metadata.createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "partners", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "visibility", Value: 1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
