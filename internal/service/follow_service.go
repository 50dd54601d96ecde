package service

import (
	"context"
	"fmt"
	"log"

	"social-service/internal/event"
	"social-service/internal/models"
	"social-service/internal/repository"
	"social-service/internal/visibility"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

type FollowService struct {
	followRepo  *repository.FollowRepository
	profileRepo *repository.ProfileRepository
	goalRepo    *repository.GoalRepository
	cache       *repository.RedisRepo
	publisher   event.Publisher
}

func NewFollowService(
	followRepo *repository.FollowRepository,
	profileRepo *repository.ProfileRepository,
	goalRepo *repository.GoalRepository,
	cache *repository.RedisRepo,
	publisher event.Publisher,
) *FollowService {
	return &FollowService{
		followRepo:  followRepo,
		profileRepo: profileRepo,
		goalRepo:    goalRepo,
		cache:       cache,
		publisher:   publisher,
	}
}

// Follow creates the directed edge viewer -> target. Following yourself or
// someone you already follow is a no-op, reported in the response status.
func (s *FollowService) Follow(ctx context.Context, viewerID, targetUserID string) (*models.FollowStatusResponse, error) {
	if viewerID == "" || targetUserID == "" {
		return nil, fmt.Errorf("both follower and target user IDs are required")
	}
	if viewerID == targetUserID {
		return &models.FollowStatusResponse{
			TargetUserID: targetUserID,
			Status:       "no_op",
			Message:      "cannot follow yourself",
		}, nil
	}

	created, err := s.followRepo.Follow(ctx, viewerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if !created {
		return &models.FollowStatusResponse{
			TargetUserID: targetUserID,
			Status:       "no_op",
			Message:      "already following",
		}, nil
	}

	s.refreshCounts(ctx, viewerID)
	s.refreshCounts(ctx, targetUserID)

	if err := s.publisher.PublishSocialEvent(event.NewFollowEvent(models.EventTypeFollowCreated, viewerID, targetUserID)); err != nil {
		log.Printf("Failed to publish follow created event: %v", err)
	}

	return &models.FollowStatusResponse{
		TargetUserID: targetUserID,
		Status:       "following",
	}, nil
}

// Unfollow removes the directed edge if present; removing an absent edge is
// reported as a no-op, never an error.
func (s *FollowService) Unfollow(ctx context.Context, viewerID, targetUserID string) (*models.FollowStatusResponse, error) {
	if viewerID == "" || targetUserID == "" {
		return nil, fmt.Errorf("both follower and target user IDs are required")
	}

	removed, err := s.followRepo.Unfollow(ctx, viewerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return &models.FollowStatusResponse{
			TargetUserID: targetUserID,
			Status:       "no_op",
			Message:      "not following",
		}, nil
	}

	s.refreshCounts(ctx, viewerID)
	s.refreshCounts(ctx, targetUserID)

	if err := s.publisher.PublishSocialEvent(event.NewFollowEvent(models.EventTypeFollowRemoved, viewerID, targetUserID)); err != nil {
		log.Printf("Failed to publish follow removed event: %v", err)
	}

	return &models.FollowStatusResponse{
		TargetUserID: targetUserID,
		Status:       "not_following",
	}, nil
}

// ListFollowers returns who follows the target, if the viewer may see that
// list.
func (s *FollowService) ListFollowers(ctx context.Context, viewerID, targetUserID string, page, limit int) (*models.FollowListResult, error) {
	target, resolver, err := s.loadTarget(ctx, viewerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if !resolver.CanViewFollowers(viewerID, target) {
		return nil, ErrSectionHidden
	}

	page, limit = normalizePage(page, limit)
	followEdges, totalCount, err := s.followRepo.ListFollowers(ctx, targetUserID, page, limit)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(followEdges))
	for _, e := range followEdges {
		userIDs = append(userIDs, e.FollowerID)
	}

	return &models.FollowListResult{UserIDs: userIDs, TotalCount: totalCount}, nil
}

// ListFollowing returns who the target follows, if the viewer may see that
// list.
func (s *FollowService) ListFollowing(ctx context.Context, viewerID, targetUserID string, page, limit int) (*models.FollowListResult, error) {
	target, resolver, err := s.loadTarget(ctx, viewerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if !resolver.CanViewFollowing(viewerID, target) {
		return nil, ErrSectionHidden
	}

	page, limit = normalizePage(page, limit)
	followEdges, totalCount, err := s.followRepo.ListFollowing(ctx, targetUserID, page, limit)
	if err != nil {
		return nil, err
	}

	userIDs := make([]string, 0, len(followEdges))
	for _, e := range followEdges {
		userIDs = append(userIDs, e.FollowingID)
	}

	return &models.FollowListResult{UserIDs: userIDs, TotalCount: totalCount}, nil
}

func (s *FollowService) loadTarget(ctx context.Context, viewerID, targetUserID string) (*models.Profile, *visibility.Resolver, error) {
	target, err := s.profileRepo.FindByUserID(ctx, targetUserID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, ErrProfileNotFound
		}
		return nil, nil, fmt.Errorf("failed to get profile: %w", err)
	}

	resolver, err := buildResolver(ctx, s.followRepo, s.goalRepo, viewerID, targetUserID)
	if err != nil {
		return nil, nil, err
	}

	return target, resolver, nil
}

// refreshCounts recomputes the denormalized counters from the edge set and
// pushes them to the profile document and the cache. A user without a
// profile document only gets the cache entry.
func (s *FollowService) refreshCounts(ctx context.Context, userID string) {
	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		log.Printf("Failed to count followers for %s: %v", userID, err)
		return
	}
	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		log.Printf("Failed to count following for %s: %v", userID, err)
		return
	}

	if err := s.profileRepo.UpdateFollowCounts(ctx, userID, followers, following); err != nil && err != mongo.ErrNoDocuments {
		log.Printf("Failed to update follow counts for %s: %v", userID, err)
	}

	if s.cache != nil {
		if err := s.cache.SaveFollowCounts(ctx, userID, followers, following); err != nil {
			log.Printf("Failed to cache follow counts for %s: %v", userID, err)
		}
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
