package service

import (
	"context"
	"errors"
	"fmt"

	"social-service/internal/repository"
	"social-service/internal/visibility"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileHidden   = errors.New("profile is not visible to this viewer")
	ErrSectionHidden   = errors.New("section is not visible to this viewer")
	ErrGoalNotFound    = errors.New("goal not found")
	ErrGoalHidden      = errors.New("goal is not visible to this viewer")
	ErrNotGoalOwner    = errors.New("only the goal owner may do this")
	ErrProfileExists   = errors.New("profile already exists")
)

// buildResolver loads the edges and partnership goals for one viewer/target
// pair and hands the visibility package a single consistent snapshot. Every
// gate evaluation for a request runs against this one read.
func buildResolver(ctx context.Context, followRepo *repository.FollowRepository, goalRepo *repository.GoalRepository, viewerID, targetID string) (*visibility.Resolver, error) {
	followEdges, err := followRepo.EdgesBetween(ctx, viewerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load follow edges: %w", err)
	}

	partnershipGoals, err := goalRepo.FindPartnershipGoals(ctx, viewerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load partnership goals: %w", err)
	}

	return visibility.NewResolver(visibility.NewGraph(followEdges), partnershipGoals), nil
}
