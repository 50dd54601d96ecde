package service

import (
	"context"
	"fmt"
	"log"

	"social-service/internal/event"
	"social-service/internal/models"
	"social-service/internal/repository"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ProfileService struct {
	profileRepo *repository.ProfileRepository
	followRepo  *repository.FollowRepository
	goalRepo    *repository.GoalRepository
	cache       *repository.RedisRepo
	publisher   event.Publisher
}

func NewProfileService(
	profileRepo *repository.ProfileRepository,
	followRepo *repository.FollowRepository,
	goalRepo *repository.GoalRepository,
	cache *repository.RedisRepo,
	publisher event.Publisher,
) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		followRepo:  followRepo,
		goalRepo:    goalRepo,
		cache:       cache,
		publisher:   publisher,
	}
}

// CreateProfile creates a new user profile
func (s *ProfileService) CreateProfile(ctx context.Context, req *models.CreateProfileRequest) (*models.Profile, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if req.DisplayName == "" {
		return nil, fmt.Errorf("display name is required")
	}

	existingProfile, err := s.profileRepo.FindByUserID(ctx, req.UserID)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if existingProfile != nil {
		return nil, ErrProfileExists
	}

	settings := models.DefaultVisibilitySettings()
	if req.Visibility != nil {
		settings = *req.Visibility
	}

	profile := &models.Profile{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		AvatarURL:   req.AvatarURL,
		Visibility:  settings,
	}

	createdProfile, err := s.profileRepo.New(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if err := s.publisher.PublishSocialEvent(event.NewProfileEvent(models.EventTypeProfileCreated, createdProfile.UserID, nil)); err != nil {
		log.Printf("Failed to publish profile created event: %v", err)
	}

	return createdProfile, nil
}

// GetOwnProfile returns the full, ungated profile record.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, req *models.UpdateProfileRequest) (*models.Profile, error) {
	existingProfile, err := s.GetOwnProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	changedFields := []string{}
	updatedProfile := *existingProfile

	if req.DisplayName != nil && *req.DisplayName != existingProfile.DisplayName {
		changedFields = append(changedFields, "displayName")
		updatedProfile.DisplayName = *req.DisplayName
	}
	if req.Bio != nil && *req.Bio != existingProfile.Bio {
		changedFields = append(changedFields, "bio")
		updatedProfile.Bio = *req.Bio
	}
	if req.AvatarURL != nil && *req.AvatarURL != existingProfile.AvatarURL {
		changedFields = append(changedFields, "avatarUrl")
		updatedProfile.AvatarURL = *req.AvatarURL
	}

	if len(changedFields) == 0 {
		return existingProfile, nil // No changes
	}

	savedProfile, err := s.profileRepo.Update(ctx, userID, &updatedProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if err := s.publisher.PublishSocialEvent(event.NewProfileEvent(models.EventTypeProfileUpdated, userID, changedFields)); err != nil {
		log.Printf("Failed to publish profile updated event: %v", err)
	}

	return savedProfile, nil
}

// UpdateVisibility replaces the whole settings record. Only the profile
// owner reaches this path; the route guard enforces that.
func (s *ProfileService) UpdateVisibility(ctx context.Context, userID string, settings models.VisibilitySettings) (*models.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	savedProfile, err := s.profileRepo.UpdateVisibility(ctx, userID, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to update visibility settings: %w", err)
	}

	if err := s.publisher.PublishSocialEvent(event.NewProfileEvent(models.EventTypeVisibilityUpdated, userID, []string{"visibility"})); err != nil {
		log.Printf("Failed to publish visibility updated event: %v", err)
	}

	return savedProfile, nil
}

// GetProfileView resolves the target profile as one specific viewer may see
// it: relationship, per-section visibility, and counts for visible lists.
func (s *ProfileService) GetProfileView(ctx context.Context, viewerID, targetUserID string) (*models.ProfileView, error) {
	if targetUserID == "" {
		return nil, fmt.Errorf("target user ID is required")
	}

	target, err := s.profileRepo.FindByUserID(ctx, targetUserID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	resolver, err := buildResolver(ctx, s.followRepo, s.goalRepo, viewerID, targetUserID)
	if err != nil {
		return nil, err
	}

	if !resolver.CanViewProfile(viewerID, target) {
		return nil, ErrProfileHidden
	}

	view := &models.ProfileView{
		UserID:       target.UserID,
		DisplayName:  target.DisplayName,
		Bio:          target.Bio,
		AvatarURL:    target.AvatarURL,
		Relationship: resolver.Classify(viewerID, targetUserID),
		Sections:     resolver.SectionVisibility(viewerID, target),
	}

	followers, following := s.followCounts(ctx, target)
	if resolver.CanViewFollowers(viewerID, target) {
		view.FollowersCount = &followers
	}
	if resolver.CanViewFollowing(viewerID, target) {
		view.FollowingCount = &following
	}

	return view, nil
}

// followCounts prefers the cache and falls back to the denormalized
// counters on the profile document.
func (s *ProfileService) followCounts(ctx context.Context, profile *models.Profile) (int64, int64) {
	if s.cache != nil {
		if followers, following, ok := s.cache.GetFollowCounts(ctx, profile.UserID); ok {
			return followers, following
		}
	}
	return profile.FollowersCount, profile.FollowingCount
}
