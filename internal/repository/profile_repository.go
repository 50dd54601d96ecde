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

type ProfileRepository struct {
	collection *mongo.Collection
	mu         *sync.Mutex
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		collection: db.Collection("Profile"),
		mu:         &sync.Mutex{},
	}
}

func (r *ProfileRepository) New(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if profile.ID.IsZero() {
		profile.ID = bson.NewObjectID()
	}

	currentTime := int(time.Now().Unix())
	if profile.Metadata.CreatedAt == 0 {
		profile.Metadata.CreatedAt = currentTime
	}
	profile.Metadata.UpdatedAt = currentTime

	_, err := r.collection.InsertOne(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}
	return profile, nil
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Update(ctx context.Context, userID string, profile *models.Profile) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile.Metadata.UpdatedAt = int(time.Now().Unix())

	filter := bson.M{"userId": userID}
	update := bson.M{"$set": profile}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updatedProfile models.Profile
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updatedProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &updatedProfile, nil
}

// UpdateVisibility replaces the whole settings record, owner writes only.
func (r *ProfileRepository) UpdateVisibility(ctx context.Context, userID string, settings models.VisibilitySettings) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	filter := bson.M{"userId": userID}
	update := bson.M{
		"$set": bson.M{
			"visibility":         settings,
			"metadata.updatedAt": int(time.Now().Unix()),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updatedProfile models.Profile
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updatedProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to update visibility settings: %w", err)
	}

	return &updatedProfile, nil
}

// UpdateFollowCounts refreshes the denormalized counters on the profile doc.
func (r *ProfileRepository) UpdateFollowCounts(ctx context.Context, userID string, followers, following int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	filter := bson.M{"userId": userID}
	update := bson.M{
		"$set": bson.M{
			"followersCount":     followers,
			"followingCount":     following,
			"metadata.updatedAt": int(time.Now().Unix()),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update follow counts: %w", err)
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, err := r.collection.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *ProfileRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "metadata.createdAt", Value: -1}},
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
