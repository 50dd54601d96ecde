package event

import (
	"time"

	"social-service/internal/models"
)

func NewFollowEvent(eventType models.EventType, followerID, followingID string) *models.SocialEvent {
	return &models.SocialEvent{
		EventType:    eventType,
		UserID:       followerID,
		TargetUserID: followingID,
		Timestamp:    time.Now().Unix(),
	}
}

func NewProfileEvent(eventType models.EventType, userID string, changedFields []string) *models.SocialEvent {
	return &models.SocialEvent{
		EventType:     eventType,
		UserID:        userID,
		Timestamp:     time.Now().Unix(),
		ChangedFields: changedFields,
	}
}

func NewGoalEvent(eventType models.EventType, userID, goalID string) *models.SocialEvent {
	return &models.SocialEvent{
		EventType: eventType,
		UserID:    userID,
		GoalID:    goalID,
		Timestamp: time.Now().Unix(),
	}
}
