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

type FollowRepository struct {
	collection *mongo.Collection
	mu         *sync.Mutex
}

func NewFollowRepository(db *mongo.Database) *FollowRepository {
	return &FollowRepository{
		collection: db.Collection("FollowEdge"),
		mu:         &sync.Mutex{},
	}
}

// Follow inserts the directed edge. It returns false without error when the
// edge already exists or when the pair is a self-follow; the unique pair
// index backs the same guarantee against concurrent writers.
func (r *FollowRepository) Follow(ctx context.Context, followerID, followingID string) (bool, error) {
	if followerID == "" || followingID == "" || followerID == followingID {
		return false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	filter := bson.M{"followerId": followerID, "followingId": followingID}
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check existing follow edge: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	edge := models.FollowEdge{
		ID:          bson.NewObjectID(),
		FollowerID:  followerID,
		FollowingID: followingID,
		CreatedAt:   int(time.Now().Unix()),
	}

	_, err = r.collection.InsertOne(ctx, edge)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to insert follow edge: %w", err)
	}

	return true, nil
}

// Unfollow removes the directed edge if present. Removing an absent edge is
// not an error.
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.collection.DeleteOne(ctx, bson.M{
		"followerId":  followerID,
		"followingId": followingID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete follow edge: %w", err)
	}

	return result.DeletedCount > 0, nil
}

// EdgesBetween loads both directions for one viewer/target pair in a single
// query, so relationship classification runs on one consistent read.
func (r *FollowRepository) EdgesBetween(ctx context.Context, userA, userB string) ([]models.FollowEdge, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"followerId": userA, "followingId": userB},
			{"followerId": userB, "followingId": userA},
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find follow edges: %w", err)
	}
	defer cursor.Close(ctx)

	var followEdges []models.FollowEdge
	if err = cursor.All(ctx, &followEdges); err != nil {
		return nil, fmt.Errorf("failed to decode follow edges: %w", err)
	}

	return followEdges, nil
}

func (r *FollowRepository) ListFollowers(ctx context.Context, userID string, page, limit int) ([]models.FollowEdge, int64, error) {
	return r.listEdges(ctx, bson.M{"followingId": userID}, page, limit)
}

func (r *FollowRepository) ListFollowing(ctx context.Context, userID string, page, limit int) ([]models.FollowEdge, int64, error) {
	return r.listEdges(ctx, bson.M{"followerId": userID}, page, limit)
}

func (r *FollowRepository) listEdges(ctx context.Context, filter bson.M, page, limit int) ([]models.FollowEdge, int64, error) {
	totalCount, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count follow edges: %w", err)
	}

	opts := options.Find()
	opts.SetSort(bson.M{"createdAt": -1})
	opts.SetSkip(int64((page - 1) * limit))
	opts.SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find follow edges: %w", err)
	}
	defer cursor.Close(ctx)

	var followEdges []models.FollowEdge
	if err = cursor.All(ctx, &followEdges); err != nil {
		return nil, 0, fmt.Errorf("failed to decode follow edges: %w", err)
	}

	return followEdges, totalCount, nil
}

// CountFollowers is the number of edges with followingId == userID.
func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"followingId": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return count, nil
}

// CountFollowing is the number of edges with followerId == userID.
func (r *FollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"followerId": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}
	return count, nil
}

func (r *FollowRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "followerId", Value: 1},
				{Key: "followingId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "followingId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "followerId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
