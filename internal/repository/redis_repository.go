package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	redis_v9 "github.com/redis/go-redis/v9"
)

const followCountTTL = 30 * time.Minute

type RedisRepo struct {
	client *redis_v9.Client
}

func NewRedisRepo(client *redis_v9.Client) *RedisRepo {
	return &RedisRepo{
		client: client,
	}
}

func followerCountKey(userID string) string {
	return "social:counts:followers:" + userID
}

func followingCountKey(userID string) string {
	return "social:counts:following:" + userID
}

func (r *RedisRepo) SaveFollowCounts(ctx context.Context, userID string, followers, following int64) error {
	if err := r.client.Set(ctx, followerCountKey(userID), followers, followCountTTL).Err(); err != nil {
		return fmt.Errorf("error saving follower count to cache: %w", err)
	}
	if err := r.client.Set(ctx, followingCountKey(userID), following, followCountTTL).Err(); err != nil {
		return fmt.Errorf("error saving following count to cache: %w", err)
	}
	return nil
}

// GetFollowCounts returns cached counts; ok is false on a cache miss.
func (r *RedisRepo) GetFollowCounts(ctx context.Context, userID string) (followers, following int64, ok bool) {
	followers, err := r.client.Get(ctx, followerCountKey(userID)).Int64()
	if err != nil {
		if err != redis_v9.Nil {
			log.Printf("error reading follower count from cache: %s", err)
		}
		return 0, 0, false
	}

	following, err = r.client.Get(ctx, followingCountKey(userID)).Int64()
	if err != nil {
		if err != redis_v9.Nil {
			log.Printf("error reading following count from cache: %s", err)
		}
		return 0, 0, false
	}

	return followers, following, true
}

func (r *RedisRepo) InvalidateFollowCounts(ctx context.Context, userID string) error {
	result := r.client.Del(ctx, followerCountKey(userID), followingCountKey(userID))
	if result.Err() != nil {
		return fmt.Errorf("error deleting cached counts for %s: %w", userID, result.Err())
	}
	return nil
}
