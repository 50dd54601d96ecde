package service

import (
	"context"
	"fmt"
	"log"

	"social-service/internal/event"
	"social-service/internal/models"
	"social-service/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type GoalService struct {
	goalRepo    *repository.GoalRepository
	profileRepo *repository.ProfileRepository
	followRepo  *repository.FollowRepository
	publisher   event.Publisher
}

func NewGoalService(
	goalRepo *repository.GoalRepository,
	profileRepo *repository.ProfileRepository,
	followRepo *repository.FollowRepository,
	publisher event.Publisher,
) *GoalService {
	return &GoalService{
		goalRepo:    goalRepo,
		profileRepo: profileRepo,
		followRepo:  followRepo,
		publisher:   publisher,
	}
}

func validGoalVisibility(v models.GoalVisibility) bool {
	switch v {
	case models.GoalVisibilityPublic,
		models.GoalVisibilityFollowers,
		models.GoalVisibilityMutuals,
		models.GoalVisibilityPrivate,
		models.GoalVisibilityPartnersOnly:
		return true
	default:
		return false
	}
}

func (s *GoalService) CreateGoal(ctx context.Context, userID string, req *models.CreateGoalRequest) (*models.Goal, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if req.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	// Unset visibility defaults to private, not public.
	goalVisibility := req.Visibility
	if goalVisibility == "" {
		goalVisibility = models.GoalVisibilityPrivate
	}
	if !validGoalVisibility(goalVisibility) {
		return nil, fmt.Errorf("unknown goal visibility %q", req.Visibility)
	}

	partners := make([]string, 0, len(req.Partners))
	for _, p := range req.Partners {
		if p != "" && p != userID {
			partners = append(partners, p)
		}
	}

	goal := &models.Goal{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.GoalStatusActive,
		Visibility:  goalVisibility,
		Partners:    partners,
	}

	createdGoal, err := s.goalRepo.New(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	if err := s.publisher.PublishSocialEvent(event.NewGoalEvent(models.EventTypeGoalCreated, userID, createdGoal.ID.Hex())); err != nil {
		log.Printf("Failed to publish goal created event: %v", err)
	}

	return createdGoal, nil
}

// GetGoal returns one goal if the viewer passes the goal gate.
func (s *GoalService) GetGoal(ctx context.Context, viewerID, goalID string) (*models.Goal, error) {
	goal, err := s.loadGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}

	target, err := s.profileRepo.FindByUserID(ctx, goal.UserID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get goal owner profile: %w", err)
	}

	resolver, err := buildResolver(ctx, s.followRepo, s.goalRepo, viewerID, goal.UserID)
	if err != nil {
		return nil, err
	}

	if !resolver.CanViewGoal(viewerID, target, goal) {
		return nil, ErrGoalHidden
	}

	return goal, nil
}

// ListUserGoals returns the target's goals filtered down to what the viewer
// may see, in stored order.
func (s *GoalService) ListUserGoals(ctx context.Context, viewerID, targetUserID string) (*models.GoalListResult, error) {
	target, err := s.profileRepo.FindByUserID(ctx, targetUserID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	goals, err := s.goalRepo.FindByUserID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	resolver, err := buildResolver(ctx, s.followRepo, s.goalRepo, viewerID, targetUserID)
	if err != nil {
		return nil, err
	}

	visible := resolver.FilterGoals(goals, viewerID, target)
	return &models.GoalListResult{Goals: visible, TotalCount: len(visible)}, nil
}

func (s *GoalService) UpdateGoal(ctx context.Context, userID, goalID string, req *models.UpdateGoalRequest) (*models.Goal, error) {
	goal, err := s.loadOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	updatedGoal := *goal
	if req.Title != nil {
		if *req.Title == "" {
			return nil, fmt.Errorf("title is required")
		}
		updatedGoal.Title = *req.Title
	}
	if req.Description != nil {
		updatedGoal.Description = *req.Description
	}
	if req.Status != nil {
		updatedGoal.Status = *req.Status
	}
	if req.Visibility != nil {
		if !validGoalVisibility(*req.Visibility) {
			return nil, fmt.Errorf("unknown goal visibility %q", *req.Visibility)
		}
		updatedGoal.Visibility = *req.Visibility
	}

	savedGoal, err := s.goalRepo.Update(ctx, goal.ID, &updatedGoal)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishSocialEvent(event.NewGoalEvent(models.EventTypeGoalUpdated, userID, savedGoal.ID.Hex())); err != nil {
		log.Printf("Failed to publish goal updated event: %v", err)
	}

	return savedGoal, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	goal, err := s.loadOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return err
	}

	if err := s.goalRepo.Delete(ctx, goal.ID); err != nil {
		return err
	}

	if err := s.publisher.PublishSocialEvent(event.NewGoalEvent(models.EventTypeGoalDeleted, userID, goalID)); err != nil {
		log.Printf("Failed to publish goal deleted event: %v", err)
	}

	return nil
}

func (s *GoalService) AddPartner(ctx context.Context, userID, goalID, partnerID string) (*models.Goal, error) {
	goal, err := s.loadOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if partnerID == "" || partnerID == userID {
		return nil, fmt.Errorf("invalid partner ID")
	}

	savedGoal, err := s.goalRepo.AddPartner(ctx, goal.ID, partnerID)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishSocialEvent(event.NewGoalEvent(models.EventTypeGoalUpdated, userID, goalID)); err != nil {
		log.Printf("Failed to publish goal updated event: %v", err)
	}

	return savedGoal, nil
}

func (s *GoalService) RemovePartner(ctx context.Context, userID, goalID, partnerID string) (*models.Goal, error) {
	goal, err := s.loadOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	savedGoal, err := s.goalRepo.RemovePartner(ctx, goal.ID, partnerID)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishSocialEvent(event.NewGoalEvent(models.EventTypeGoalUpdated, userID, goalID)); err != nil {
		log.Printf("Failed to publish goal updated event: %v", err)
	}

	return savedGoal, nil
}

func (s *GoalService) loadGoal(ctx context.Context, goalID string) (*models.Goal, error) {
	if goalID == "" {
		return nil, fmt.Errorf("goal ID is required")
	}

	objectID, err := bson.ObjectIDFromHex(goalID)
	if err != nil {
		return nil, fmt.Errorf("invalid goal ID format: %w", err)
	}

	goal, err := s.goalRepo.FindByID(ctx, objectID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) loadOwnedGoal(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	goal, err := s.loadGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrNotGoalOwner
	}
	return goal, nil
}
